package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/seatserve/seatserve-api/internal/auth"
	"github.com/seatserve/seatserve-api/internal/bookingcode"
	"github.com/seatserve/seatserve-api/internal/clock"
	"github.com/seatserve/seatserve-api/internal/models"
	"github.com/seatserve/seatserve-api/internal/notifier"
	"github.com/seatserve/seatserve-api/internal/policy"
	"gorm.io/gorm"
)

type BookingHandler struct {
	db          *gorm.DB
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
	clock       clock.Clock
}

func NewBookingHandler(db *gorm.DB, n notifier.Notifier, authHandler *auth.AuthHandler, clk clock.Clock) *BookingHandler {
	return &BookingHandler{db: db, notifier: n, authHandler: authHandler, clock: clk}
}

type BookingResponseBody struct {
	ID            uint      `json:"id"`
	EventID       uint      `json:"event_id"`
	ParticipantID uint      `json:"participant_id"`
	BookingCode   string    `json:"booking_code"`
	CreatedAt     time.Time `json:"created_at"`
}

func bookingResponseBody(b *models.Booking) BookingResponseBody {
	return BookingResponseBody{
		ID:            b.ID,
		EventID:       b.EventID,
		ParticipantID: b.ParticipantID,
		BookingCode:   b.BookingCode,
		CreatedAt:     b.CreatedAt,
	}
}

type CreateBookingRequest struct {
	auth.AuthInput
	Body struct {
		EventID uint `json:"event_id" doc:"Event to book" required:"true"`
	}
}

type CreateBookingResponse struct {
	Status int
	Body   BookingResponseBody
}

func (h *BookingHandler) HandleCreate(ctx context.Context, input *CreateBookingRequest) (*CreateBookingResponse, error) {
	user, err := h.authHandler.CurrentUser(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var event models.Event
	var booking models.Booking

	// The eligibility check reads the clock at evaluation time against
	// the currently persisted window, in the same transaction as the
	// insert. Capacity is deliberately not part of the gate; concurrent
	// bookings near exhaustion can overshoot it.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, input.Body.EventID).Error; err != nil {
			return err
		}

		if !event.WindowOpenAt(h.clock.Now()) {
			return models.ErrBookingWindowClosed
		}

		booking = models.Booking{
			EventID:       event.ID,
			ParticipantID: user.ID,
		}
		return tx.Create(&booking).Error
	})

	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, huma.Error404NotFound("Event not found")
	case errors.Is(err, models.ErrBookingWindowClosed):
		return nil, huma.Error400BadRequest("Booking window closed")
	default:
		return nil, huma.Error500InternalServerError("Failed to create booking")
	}

	// Second write, outside the insert transaction. A crash in between
	// leaves a valid code-less booking that Assign can complete later.
	if err := bookingcode.Assign(h.db, &booking); err != nil {
		log.Printf("Failed to assign booking code for booking %d: %v", booking.ID, err)
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyBooking(*user, event, booking); err != nil {
			log.Printf("Failed to send notification: %v", err)
		}
	}

	return &CreateBookingResponse{
		Status: http.StatusCreated,
		Body:   bookingResponseBody(&booking),
	}, nil
}

type ListBookingsRequest struct {
	auth.AuthInput
}

type ListBookingsResponse struct {
	Body []BookingResponseBody
}

func (h *BookingHandler) HandleList(ctx context.Context, input *ListBookingsRequest) (*ListBookingsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var list []models.Booking
	if err := h.db.Where("participant_id = ?", userID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list bookings")
	}

	res := &ListBookingsResponse{Body: make([]BookingResponseBody, 0, len(list))}
	for i := range list {
		res.Body = append(res.Body, bookingResponseBody(&list[i]))
	}
	return res, nil
}

type GetBookingRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type GetBookingResponse struct {
	Body BookingResponseBody
}

func (h *BookingHandler) HandleGet(ctx context.Context, input *GetBookingRequest) (*GetBookingResponse, error) {
	user, err := h.authHandler.CurrentUser(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var booking models.Booking
	if err := h.db.First(&booking, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Booking not found")
	}

	if !policy.CanAccessBooking(user, &booking) {
		return nil, huma.Error403Forbidden("Access denied")
	}

	return &GetBookingResponse{Body: bookingResponseBody(&booking)}, nil
}
