// Package bookingcode assigns the participant-facing code to a booking
// after its first successful insert. The code is an 8-character random
// alphanumeric string; collisions are possible and accepted, the code is
// a human-readable reference, not a primary key.
package bookingcode

import (
	"crypto/rand"
	"math/big"

	"github.com/seatserve/seatserve-api/internal/models"
	"gorm.io/gorm"
)

const (
	Length  = 8
	charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Generate returns a new random code of Length characters.
func Generate() (string, error) {
	code := make([]byte, Length)
	max := big.NewInt(int64(len(charset)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = charset[n.Int64()]
	}
	return string(code), nil
}

// Assign backfills the code on a freshly persisted booking as a second
// write to the same row. It runs at most once per booking: a booking
// that already carries a code is left untouched, so the call is safe to
// retry after a crash between insert and backfill.
func Assign(db *gorm.DB, booking *models.Booking) error {
	if booking.BookingCode != "" {
		return nil
	}

	code, err := Generate()
	if err != nil {
		return err
	}

	if err := db.Model(booking).Update("booking_code", code).Error; err != nil {
		return err
	}
	booking.BookingCode = code
	return nil
}
