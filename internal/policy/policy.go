// Package policy derives object-level access for bookings: admins see
// everything, everyone else only what they own.
package policy

import (
	"github.com/seatserve/seatserve-api/internal/models"
)

// CanAccessBooking reports whether the user may read the booking.
// This is the only derivation path; there are no per-field rules.
func CanAccessBooking(user *models.User, booking *models.Booking) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin || user.ID == booking.OwnerID()
}
