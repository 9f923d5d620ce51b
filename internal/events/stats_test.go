package events

import (
	"testing"
	"time"

	"github.com/seatserve/seatserve-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.User{}, &models.Event{}, &models.Booking{})
	return db
}

func TestParticipantCountAndRemainingSeats(t *testing.T) {
	db := setupDB(t)

	organizer := models.User{Username: "organizer", IsAdmin: true}
	db.Create(&organizer)

	event := models.Event{
		Title:           "Conference",
		StartDate:       time.Now().Add(10 * 24 * time.Hour),
		EndDate:         time.Now().Add(11 * 24 * time.Hour),
		WindowStartDate: time.Now().Add(-24 * time.Hour),
		WindowEndDate:   time.Now().Add(24 * time.Hour),
		Capacity:        5,
		IsActive:        true,
		OrganizerID:     organizer.ID,
	}
	db.Create(&event)

	for _, name := range []string{"alice", "bob"} {
		user := models.User{Username: name}
		db.Create(&user)
		db.Create(&models.Booking{EventID: event.ID, ParticipantID: user.ID})
	}

	count, err := ParticipantCount(db, event.ID)
	if err != nil {
		t.Fatalf("ParticipantCount returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 participants, got %d", count)
	}

	remaining, err := RemainingSeats(db, &event)
	if err != nil {
		t.Fatalf("RemainingSeats returned error: %v", err)
	}
	if remaining != 3 {
		t.Errorf("expected 3 remaining seats, got %d", remaining)
	}
}

func TestOpenForBooking(t *testing.T) {
	db := setupDB(t)
	now := time.Now()

	event := models.Event{
		Title:           "Open Event",
		StartDate:       now.Add(10 * 24 * time.Hour),
		EndDate:         now.Add(11 * 24 * time.Hour),
		WindowStartDate: now.Add(-24 * time.Hour),
		WindowEndDate:   now.Add(24 * time.Hour),
		Capacity:        1,
	}
	db.Create(&event)

	open, err := OpenForBooking(db, &event, now)
	if err != nil {
		t.Fatalf("OpenForBooking returned error: %v", err)
	}
	if !open {
		t.Error("expected event to be open for booking")
	}

	t.Run("WindowInFuture", func(t *testing.T) {
		future := event
		future.WindowStartDate = now.Add(5 * 24 * time.Hour)
		future.WindowEndDate = now.Add(10 * 24 * time.Hour)

		open, err := OpenForBooking(db, &future, now)
		if err != nil {
			t.Fatalf("OpenForBooking returned error: %v", err)
		}
		if open {
			t.Error("expected event with future window to be closed")
		}
	})

	t.Run("NoSeatsLeft", func(t *testing.T) {
		user := models.User{Username: "taker"}
		db.Create(&user)
		db.Create(&models.Booking{EventID: event.ID, ParticipantID: user.ID})

		open, err := OpenForBooking(db, &event, now)
		if err != nil {
			t.Fatalf("OpenForBooking returned error: %v", err)
		}
		if open {
			t.Error("expected full event to be closed for booking")
		}
	})
}

func TestLastDayBookedCount(t *testing.T) {
	db := setupDB(t)
	now := time.Now()

	user := models.User{Username: "alice"}
	db.Create(&user)

	t.Run("WindowEndsToday", func(t *testing.T) {
		event := models.Event{
			Title:           "Ends Today",
			WindowStartDate: now.Add(-24 * time.Hour),
			WindowEndDate:   now.Add(time.Minute),
			Capacity:        10,
		}
		db.Create(&event)
		db.Create(&models.Booking{EventID: event.ID, ParticipantID: user.ID})

		count, err := LastDayBookedCount(db, &event)
		if err != nil {
			t.Fatalf("LastDayBookedCount returned error: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 last-day booking, got %d", count)
		}
	})

	t.Run("WindowEndsLater", func(t *testing.T) {
		event := models.Event{
			Title:           "Ends Tomorrow",
			WindowStartDate: now.Add(-24 * time.Hour),
			WindowEndDate:   now.Add(48 * time.Hour),
			Capacity:        10,
		}
		db.Create(&event)
		db.Create(&models.Booking{EventID: event.ID, ParticipantID: user.ID})

		count, err := LastDayBookedCount(db, &event)
		if err != nil {
			t.Fatalf("LastDayBookedCount returned error: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0 last-day bookings, got %d", count)
		}
	})
}

func TestCompute(t *testing.T) {
	db := setupDB(t)
	now := time.Now()

	event := models.Event{
		Title:           "Summary Event",
		WindowStartDate: now.Add(-24 * time.Hour),
		WindowEndDate:   now.Add(24 * time.Hour),
		Capacity:        5,
	}
	db.Create(&event)

	user := models.User{Username: "bob"}
	db.Create(&user)
	db.Create(&models.Booking{EventID: event.ID, ParticipantID: user.ID})

	stats, err := Compute(db, &event, now)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if stats.ParticipantCount != 1 {
		t.Errorf("expected 1 participant, got %d", stats.ParticipantCount)
	}
	if stats.RemainingSeats != 4 {
		t.Errorf("expected 4 remaining seats, got %d", stats.RemainingSeats)
	}
	if !stats.OpenForBooking {
		t.Error("expected event to be open for booking")
	}
}
