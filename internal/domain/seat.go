package domain

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SeatLayout describes the seat grid of a hall. Every showtime materializes
// the same fixed grid on first access.
type SeatLayout struct {
	Rows        string
	SeatsPerRow int
}

var DefaultSeatLayout = SeatLayout{
	Rows:        "ABCDEFGH",
	SeatsPerRow: 12,
}

func (l SeatLayout) Capacity() int {
	return len(l.Rows) * l.SeatsPerRow
}

// ContainsRow reports whether the row letter belongs to the layout.
func (l SeatLayout) ContainsRow(row string) bool {
	return len(row) == 1 && strings.Contains(l.Rows, row)
}

var seatIDRgx = regexp.MustCompile(`^([A-Z])([0-9]{1,2})$`)

// SeatID is the human-readable seat identifier, a row letter followed by a
// one or two digit seat number, e.g. "A7".
type SeatID struct {
	Row    string
	Number int
}

// ParseSeatID validates the identifier format only. Whether the seat actually
// exists for a given showtime is a storage concern, not a parsing one.
func ParseSeatID(s string) (SeatID, error) {
	matches := seatIDRgx.FindStringSubmatch(s)
	if matches == nil {
		return SeatID{}, fmt.Errorf("malformed seat identifier %q: must be a row letter followed by a seat number", s)
	}

	number, err := strconv.Atoi(matches[2])
	if err != nil || number < 1 {
		return SeatID{}, fmt.Errorf("malformed seat identifier %q: seat number must be positive", s)
	}

	return SeatID{Row: matches[1], Number: number}, nil
}

// ParseSeatIDs parses every identifier and rejects duplicates.
func ParseSeatIDs(identifiers []string) ([]SeatID, error) {
	seatIDs := make([]SeatID, 0, len(identifiers))
	seen := make(map[SeatID]bool, len(identifiers))

	for _, identifier := range identifiers {
		seatID, err := ParseSeatID(identifier)
		if err != nil {
			return nil, err
		}

		if seen[seatID] {
			return nil, fmt.Errorf("duplicate seat identifier %q", identifier)
		}
		seen[seatID] = true

		seatIDs = append(seatIDs, seatID)
	}

	return seatIDs, nil
}

func (id SeatID) String() string {
	return fmt.Sprintf("%s%d", id.Row, id.Number)
}

// SortSeatIDs orders identifiers by row, then number.
func SortSeatIDs(ids []SeatID) {
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Row != ids[j].Row {
			return ids[i].Row < ids[j].Row
		}
		return ids[i].Number < ids[j].Number
	})
}

type Seat struct {
	ID         int64
	ShowtimeID int
	Row        string
	Number     int
	Booked     bool
	BookingID  *uuid.UUID
}

func (s Seat) SeatID() SeatID {
	return SeatID{Row: s.Row, Number: s.Number}
}

type SeatRepository interface {
	// MaterializeSeats lazily creates the full seat grid for a showtime.
	// It is idempotent and safe to call concurrently.
	MaterializeSeats(ctx context.Context, showtimeID int) error

	// GetSeatsByShowtime returns the grid ordered by row, then number.
	GetSeatsByShowtime(ctx context.Context, showtimeID int) ([]Seat, error)
}
