package models

import (
	"errors"
	"testing"
	"time"
)

func TestValidateDates(t *testing.T) {
	now := time.Now()

	event := Event{
		StartDate:       now.Add(10 * 24 * time.Hour),
		EndDate:         now.Add(20 * 24 * time.Hour),
		WindowStartDate: now.Add(5 * 24 * time.Hour),
		WindowEndDate:   now.Add(8 * 24 * time.Hour),
	}

	if err := event.ValidateDates(); err != nil {
		t.Fatalf("expected valid dates, got error: %v", err)
	}

	t.Run("InvertedEventDates", func(t *testing.T) {
		bad := event
		bad.StartDate = now.Add(20 * 24 * time.Hour)
		bad.EndDate = now.Add(10 * 24 * time.Hour)

		if err := bad.ValidateDates(); !errors.Is(err, ErrInvalidDateOrder) {
			t.Errorf("expected ErrInvalidDateOrder, got %v", err)
		}
	})

	t.Run("InvertedWindowDates", func(t *testing.T) {
		bad := event
		bad.WindowStartDate = now.Add(8 * 24 * time.Hour)
		bad.WindowEndDate = now.Add(5 * 24 * time.Hour)

		if err := bad.ValidateDates(); !errors.Is(err, ErrInvalidWindowOrder) {
			t.Errorf("expected ErrInvalidWindowOrder, got %v", err)
		}
	})

	t.Run("EqualDatesAllowed", func(t *testing.T) {
		same := event
		same.StartDate = now
		same.EndDate = now
		same.WindowStartDate = now
		same.WindowEndDate = now

		if err := same.ValidateDates(); err != nil {
			t.Errorf("equal dates should be valid, got %v", err)
		}
	})
}

func TestWindowOpenAt(t *testing.T) {
	now := time.Now()
	event := Event{
		WindowStartDate: now.Add(-24 * time.Hour),
		WindowEndDate:   now.Add(24 * time.Hour),
	}

	if !event.WindowOpenAt(now) {
		t.Error("expected window to be open at now")
	}
	if !event.WindowOpenAt(event.WindowStartDate) {
		t.Error("expected window to be open at its start (inclusive)")
	}
	if !event.WindowOpenAt(event.WindowEndDate) {
		t.Error("expected window to be open at its end (inclusive)")
	}
	if event.WindowOpenAt(event.WindowStartDate.Add(-time.Second)) {
		t.Error("expected window to be closed before its start")
	}
	if event.WindowOpenAt(event.WindowEndDate.Add(time.Second)) {
		t.Error("expected window to be closed after its end")
	}
}
