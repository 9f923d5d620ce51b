package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	Title            string    `gorm:"index" json:"title"`
	ShortDescription string    `json:"short_description"`
	LongDescription  string    `json:"long_description"`
	StartDate        time.Time `gorm:"index" json:"start_date"`
	EndDate          time.Time `gorm:"index" json:"end_date"`
	WindowStartDate  time.Time `gorm:"index" json:"window_start_date"`
	WindowEndDate    time.Time `gorm:"index" json:"window_end_date"`
	Capacity         int       `json:"capacity"`
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	OrganizerID      uint      `json:"organizer_id"`
	Organizer        User      `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE" json:"-"`
}

// ValidateDates enforces the ordering invariants. Callers must run it
// before any create or update so that a violation never touches the DB.
func (e *Event) ValidateDates() error {
	if e.StartDate.After(e.EndDate) {
		return ErrInvalidDateOrder
	}
	if e.WindowStartDate.After(e.WindowEndDate) {
		return ErrInvalidWindowOrder
	}
	return nil
}

// WindowOpenAt reports whether the booking window contains now,
// inclusive on both ends.
func (e *Event) WindowOpenAt(now time.Time) bool {
	return !now.Before(e.WindowStartDate) && !now.After(e.WindowEndDate)
}
