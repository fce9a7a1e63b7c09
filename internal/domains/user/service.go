package user

import (
	"context"
)

// Service is the business-logic contract for accounts and sessions.
type Service interface {
	// Register creates an account and logs the new user in.
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)

	// Login authenticates and returns a fresh token pair.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// RefreshToken validates the refresh token and rotates the pair.
	RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error)

	// Logout invalidates the user's stored refresh token.
	Logout(ctx context.Context, userID int64) error
}
