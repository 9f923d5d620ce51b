package handlers

import (
	"testing"

	"github.com/seatserve/seatserve-api/internal/auth"
	"github.com/seatserve/seatserve-api/internal/config"
	"github.com/seatserve/seatserve-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gorm.DB, *auth.AuthHandler) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.User{}, &models.Event{}, &models.Booking{}, &models.APIKey{})

	authHandler := auth.NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db)
	return db, authHandler
}

func authInputFor(t *testing.T, authHandler *auth.AuthHandler, user models.User) auth.AuthInput {
	t.Helper()
	token, err := authHandler.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return auth.AuthInput{Cookie: "auth_token=" + token}
}
