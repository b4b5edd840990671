package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrSeatAlreadyBooked = errors.New("seat(s) are already booked")
	ErrStorageContention = errors.New("storage is busy, please try again")
)
