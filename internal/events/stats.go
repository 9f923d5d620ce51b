// Package events computes the derived properties of an Event. Nothing
// here is stored or cached; every value is recomputed from the bookings
// table on each call so reads never see stale counts.
package events

import (
	"time"

	"github.com/seatserve/seatserve-api/internal/models"
	"gorm.io/gorm"
)

// Stats is the full derived view of an event at a single instant.
type Stats struct {
	ParticipantCount   int64 `json:"participant_count"`
	RemainingSeats     int64 `json:"remaining_seats"`
	OpenForBooking     bool  `json:"open_for_booking"`
	LastDayBookedCount int64 `json:"last_day_booked_count"`
}

// ParticipantCount returns the number of bookings for the event.
func ParticipantCount(db *gorm.DB, eventID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Booking{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

// RemainingSeats is capacity minus booked seats. It may go negative if
// concurrent bookings overshoot capacity; no clamping happens here.
func RemainingSeats(db *gorm.DB, event *models.Event) (int64, error) {
	count, err := ParticipantCount(db, event.ID)
	if err != nil {
		return 0, err
	}
	return int64(event.Capacity) - count, nil
}

// OpenForBooking reports whether the event accepts bookings at now:
// the booking window must contain now and seats must remain.
func OpenForBooking(db *gorm.DB, event *models.Event, now time.Time) (bool, error) {
	if !event.WindowOpenAt(now) {
		return false, nil
	}
	remaining, err := RemainingSeats(db, event)
	if err != nil {
		return false, err
	}
	return remaining > 0, nil
}

// LastDayBookedCount counts bookings created on the calendar day of the
// event's window end date.
func LastDayBookedCount(db *gorm.DB, event *models.Event) (int64, error) {
	end := event.WindowEndDate
	dayStart := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	err := db.Model(&models.Booking{}).
		Where("event_id = ? AND created_at >= ? AND created_at < ?", event.ID, dayStart, dayEnd).
		Count(&count).Error
	return count, err
}

// Compute assembles all derived properties of an event in one pass.
func Compute(db *gorm.DB, event *models.Event, now time.Time) (Stats, error) {
	count, err := ParticipantCount(db, event.ID)
	if err != nil {
		return Stats{}, err
	}
	lastDay, err := LastDayBookedCount(db, event)
	if err != nil {
		return Stats{}, err
	}

	remaining := int64(event.Capacity) - count
	return Stats{
		ParticipantCount:   count,
		RemainingSeats:     remaining,
		OpenForBooking:     event.WindowOpenAt(now) && remaining > 0,
		LastDayBookedCount: lastDay,
	}, nil
}
