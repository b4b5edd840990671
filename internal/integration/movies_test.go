package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cinetixhq/booking-api/api"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MoviesTestSuite struct {
	BaseSuite
}

func TestMoviesSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(MoviesTestSuite))
}

func (s *MoviesTestSuite) TestMovies() {
	scenarios := []Scenario{
		{
			Name:           "returns the seeded catalog ordered by title",
			Method:         "GET",
			URL:            "/movies",
			ExpectedStatus: http.StatusOK,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				var resp api.MovieListResponse
				require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))

				require.Len(t, resp.Movies, 6)
				require.Equal(t, "Avatar: The Way of Water", resp.Movies[0].Title)
				require.Equal(t, "Top Gun: Maverick", resp.Movies[5].Title)
			},
		},
		{
			Name:           "returns movie details with showtimes",
			Method:         "GET",
			URL:            "/movies/1",
			ExpectedStatus: http.StatusOK,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				var resp api.MovieDetailResponse
				require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))

				require.Equal(t, "The Dark Knight", resp.Title)
				require.Len(t, resp.Showtimes, 3)

				for _, showtime := range resp.Showtimes {
					require.Equal(t, 96, showtime.AvailableSeats)
				}
			},
		},
		{
			Name:             "returns 404 for unknown movie",
			Method:           "GET",
			URL:              "/movies/999",
			ExpectedStatus:   http.StatusNotFound,
			ExpectedResponse: `{"message": "The requested resource not found"}`,
		},
		{
			Name:             "returns 400 for malformed movie ID",
			Method:           "GET",
			URL:              "/movies/abc",
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedResponse: `{"message": "invalid movie ID"}`,
		},
		{
			Name:           "health endpoint reports status",
			Method:         "GET",
			URL:            "/health",
			ExpectedStatus: http.StatusOK,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				var resp api.HealthcheckResponse
				require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))

				require.Equal(t, "UP", resp.Status)
				require.Equal(t, "test", resp.SystemInfo.Environment)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}
