package models

import "errors"

var (
	ErrInvalidDateOrder    = errors.New("start date must not be after end date")
	ErrInvalidWindowOrder  = errors.New("window start date must not be after window end date")
	ErrBookingWindowClosed = errors.New("booking window closed")
)
