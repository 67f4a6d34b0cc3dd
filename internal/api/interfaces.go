package api

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/limbo/dayslide/internal/service"
)

type JWTServiceI interface {
	GenerateToken(deviceID string) (string, error)
	ParseToken(tokenString string) (*JWTClaims, error)
}

type JWTClaims struct {
	jwt.RegisteredClaims
	DeviceID string `json:"device_id"`
}

type SessionRegistryI interface {
	// Registers a new device and returns its booted session
	Create(ctx context.Context) (string, *service.SessionController, error)
	Get(ctx context.Context, deviceID string) (*service.SessionController, error)
}
