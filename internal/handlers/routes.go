package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/seatserve/seatserve-api/internal/auth"
)

func RegisterRoutes(r *chi.Mux, authHandler *auth.AuthHandler, eventHandler *EventHandler, bookingHandler *BookingHandler, apiKeyHandler *APIKeyHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("SeatServe API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: "auth_token",
		},
		"apiKeyAuth": {
			Type: "apiKey",
			In:   "header",
			Name: "X-API-KEY",
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	huma.Post(api, "/auth/signup", authHandler.HandleSignup)
	huma.Post(api, "/auth/login", authHandler.HandleLogin)

	secured := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}, {"apiKeyAuth": {}}}
	}

	huma.Get(api, "/me", authHandler.HandleMe, secured)

	// Events
	huma.Post(api, "/events", eventHandler.HandleCreate, secured)
	huma.Get(api, "/events", eventHandler.HandleList, secured)
	huma.Get(api, "/events/{id}", eventHandler.HandleGet, secured)
	huma.Put(api, "/events/{id}", eventHandler.HandleUpdate, secured)
	huma.Delete(api, "/events/{id}", eventHandler.HandleDelete, secured)
	huma.Get(api, "/events/{id}/summary", eventHandler.HandleSummary, secured)

	// Bookings
	huma.Post(api, "/bookings", bookingHandler.HandleCreate, secured)
	huma.Get(api, "/bookings", bookingHandler.HandleList, secured)
	huma.Get(api, "/bookings/{id}", bookingHandler.HandleGet, secured)

	// API Keys
	huma.Post(api, "/api-keys", apiKeyHandler.HandleCreate, secured)
	huma.Get(api, "/api-keys", apiKeyHandler.HandleList, secured)
	huma.Delete(api, "/api-keys/{id}", apiKeyHandler.HandleDelete, secured)
}
