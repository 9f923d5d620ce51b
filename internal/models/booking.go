package models

import (
	"gorm.io/gorm"
)

// Booking links a participant to an Event. It carries the booking
// creation time and the participant-facing code; everything else about
// the relationship is derived at read time.
type Booking struct {
	gorm.Model
	EventID       uint   `gorm:"index" json:"event_id"`
	Event         Event  `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	ParticipantID uint   `gorm:"index" json:"participant_id"`
	Participant   User   `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE" json:"-"`
	BookingCode   string `gorm:"index" json:"booking_code"`
}

// OwnerID is the participant, named this way so the access policy can
// treat bookings like any other owned object.
func (b *Booking) OwnerID() uint {
	return b.ParticipantID
}
