package app

import (
	"errors"
	"net/http"

	"github.com/cinetixhq/booking-api/api"
	"github.com/cinetixhq/booking-api/internal/domain"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := app.movieRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies: make([]api.MovieSummary, len(movies)),
	}

	for i, movie := range movies {
		resp.Movies[i] = toMovieSummary(&movie)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request, movieID int) {
	if movieID < 1 {
		app.notFoundResponse(w, r)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieDetailResponse{
		MovieSummary: toMovieSummary(movie),
		Showtimes:    make([]api.ShowtimeSummary, len(movie.Showtimes)),
	}

	for i, showtime := range movie.Showtimes {
		resp.Showtimes[i] = api.ShowtimeSummary{
			Id:             showtime.ID,
			Theater:        showtime.TheaterName,
			TheaterType:    showtime.TheaterType,
			Date:           showtime.ShowDate.Format("2006-01-02"),
			Time:           showtime.StartTime.Format("15:04"),
			Price:          showtime.Price,
			AvailableSeats: showtime.AvailableSeats,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieSummary(movie *domain.Movie) api.MovieSummary {
	return api.MovieSummary{
		Id:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		PosterUrl:   movie.PosterURL,
		Duration:    movie.Duration,
		Genre:       movie.Genre,
		Rating:      movie.Rating,
		ImdbRating:  movie.ImdbRating,
		ReleaseYear: movie.ReleaseYear,
	}
}
