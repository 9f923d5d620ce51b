package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/seatserve/seatserve-api/internal/auth"
	"github.com/seatserve/seatserve-api/internal/clock"
	"github.com/seatserve/seatserve-api/internal/events"
	"github.com/seatserve/seatserve-api/internal/models"
	"gorm.io/gorm"
)

type EventHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
	clock       clock.Clock
}

func NewEventHandler(db *gorm.DB, authHandler *auth.AuthHandler, clk clock.Clock) *EventHandler {
	return &EventHandler{db: db, authHandler: authHandler, clock: clk}
}

// EventFields is shared by the create and update request bodies.
type EventFields struct {
	Title            string    `json:"title" doc:"Event title" required:"true"`
	ShortDescription string    `json:"short_description" doc:"One-line description" required:"true"`
	LongDescription  string    `json:"long_description,omitempty" doc:"Full description"`
	StartDate        time.Time `json:"start_date" doc:"Public event start" required:"true"`
	EndDate          time.Time `json:"end_date" doc:"Public event end" required:"true"`
	WindowStartDate  time.Time `json:"window_start_date" doc:"Booking window opens" required:"true"`
	WindowEndDate    time.Time `json:"window_end_date" doc:"Booking window closes" required:"true"`
	Capacity         int       `json:"capacity" doc:"Maximum number of bookings" minimum:"0" required:"true"`
	IsActive         bool      `json:"is_active" doc:"Whether the event is active"`
}

type EventResponseBody struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"short_description"`
	LongDescription  string    `json:"long_description,omitempty"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	WindowStartDate  time.Time `json:"window_start_date"`
	WindowEndDate    time.Time `json:"window_end_date"`
	Capacity         int       `json:"capacity"`
	IsActive         bool      `json:"is_active"`
	OrganizerID      uint      `json:"organizer_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func eventResponseBody(e *models.Event) EventResponseBody {
	return EventResponseBody{
		ID:               e.ID,
		Title:            e.Title,
		ShortDescription: e.ShortDescription,
		LongDescription:  e.LongDescription,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		WindowStartDate:  e.WindowStartDate,
		WindowEndDate:    e.WindowEndDate,
		Capacity:         e.Capacity,
		IsActive:         e.IsActive,
		OrganizerID:      e.OrganizerID,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func applyEventFields(e *models.Event, f EventFields) {
	e.Title = f.Title
	e.ShortDescription = f.ShortDescription
	e.LongDescription = f.LongDescription
	e.StartDate = f.StartDate
	e.EndDate = f.EndDate
	e.WindowStartDate = f.WindowStartDate
	e.WindowEndDate = f.WindowEndDate
	e.Capacity = f.Capacity
	e.IsActive = f.IsActive
}

type CreateEventRequest struct {
	auth.AuthInput
	Body EventFields
}

type CreateEventResponse struct {
	Status int
	Body   EventResponseBody
}

func (h *EventHandler) HandleCreate(ctx context.Context, input *CreateEventRequest) (*CreateEventResponse, error) {
	organizer, err := h.authHandler.RequireAdmin(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	event := models.Event{OrganizerID: organizer.ID}
	applyEventFields(&event, input.Body)

	if err := event.ValidateDates(); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	if err := h.db.Create(&event).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create event")
	}

	return &CreateEventResponse{
		Status: http.StatusCreated,
		Body:   eventResponseBody(&event),
	}, nil
}

type ListEventsRequest struct {
	auth.AuthInput
	Registered bool `query:"registered" doc:"Only events the caller has a booking for"`
}

type ListEventsResponse struct {
	Body []EventResponseBody
}

func (h *EventHandler) HandleList(ctx context.Context, input *ListEventsRequest) (*ListEventsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	q := h.db.Order("start_date DESC")
	if input.Registered {
		q = q.Where("id IN (?)",
			h.db.Model(&models.Booking{}).Select("event_id").Where("participant_id = ?", userID))
	}

	var list []models.Event
	if err := q.Find(&list).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list events")
	}

	res := &ListEventsResponse{Body: make([]EventResponseBody, 0, len(list))}
	for i := range list {
		res.Body = append(res.Body, eventResponseBody(&list[i]))
	}
	return res, nil
}

type GetEventRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type GetEventResponse struct {
	Body struct {
		EventResponseBody
		RemainingSeats int64 `json:"remaining_seats"`
		OpenForBooking bool  `json:"open_for_booking"`
	}
}

func (h *EventHandler) HandleGet(ctx context.Context, input *GetEventRequest) (*GetEventResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var event models.Event
	if err := h.db.First(&event, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}

	remaining, err := events.RemainingSeats(h.db, &event)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to compute seats")
	}

	res := &GetEventResponse{}
	res.Body.EventResponseBody = eventResponseBody(&event)
	res.Body.RemainingSeats = remaining
	res.Body.OpenForBooking = event.WindowOpenAt(h.clock.Now()) && remaining > 0
	return res, nil
}

type UpdateEventRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body EventFields
}

type UpdateEventResponse struct {
	Body EventResponseBody
}

func (h *EventHandler) HandleUpdate(ctx context.Context, input *UpdateEventRequest) (*UpdateEventResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var event models.Event
	if err := h.db.First(&event, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}

	applyEventFields(&event, input.Body)
	if err := event.ValidateDates(); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	if err := h.db.Save(&event).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update event")
	}

	return &UpdateEventResponse{Body: eventResponseBody(&event)}, nil
}

type DeleteEventRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *EventHandler) HandleDelete(ctx context.Context, input *DeleteEventRequest) (*struct{}, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var event models.Event
	if err := h.db.First(&event, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}

	// Cascade to bookings explicitly; soft deletes bypass FK cascades.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete event")
	}

	return nil, nil
}

type EventSummaryRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type EventSummaryResponse struct {
	Body struct {
		EventResponseBody
		events.Stats
		ParticipantIDs []uint `json:"participant_ids"`
	}
}

func (h *EventHandler) HandleSummary(ctx context.Context, input *EventSummaryRequest) (*EventSummaryResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var event models.Event
	if err := h.db.First(&event, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Event not found")
		}
		return nil, huma.Error500InternalServerError("Database error")
	}

	stats, err := events.Compute(h.db, &event, h.clock.Now())
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to compute stats")
	}

	participantIDs := []uint{}
	if err := h.db.Model(&models.Booking{}).Where("event_id = ?", event.ID).
		Pluck("participant_id", &participantIDs).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list participants")
	}

	res := &EventSummaryResponse{}
	res.Body.EventResponseBody = eventResponseBody(&event)
	res.Body.Stats = stats
	res.Body.ParticipantIDs = participantIDs
	return res, nil
}
