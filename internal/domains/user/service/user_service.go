package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bookcatalog-backend/internal/domains/user"
	"bookcatalog-backend/internal/infrastructure/cache"
	"bookcatalog-backend/pkg/jwt"
)

// bcryptCost balances security and login latency.
const bcryptCost = 12

// TokenStore persists the currently valid refresh token per user.
// Satisfied by cache.TokenStore.
type TokenStore interface {
	Save(ctx context.Context, userID int64, token string, ttl time.Duration) error
	Validate(ctx context.Context, userID int64, token string) error
	Delete(ctx context.Context, userID int64) error
}

type userService struct {
	repo          user.Repository
	jwtManager    *jwt.Manager
	tokens        TokenStore
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewUserService wires the account use cases. The token store keeps one
// valid refresh token per user so logout actually invalidates sessions.
func NewUserService(
	repo user.Repository,
	jwtManager *jwt.Manager,
	tokens TokenStore,
	accessExpiry, refreshExpiry time.Duration,
) user.Service {
	return &userService{
		repo:          repo,
		jwtManager:    jwtManager,
		tokens:        tokens,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Register creates the account and logs the new user straight in.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := &user.User{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
	}

	// The email unique constraint backs up the pre-check under
	// concurrent registrations
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issueTokens(ctx, newUser)
}

// Login authenticates and returns a fresh token pair.
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Neutral error: do not reveal whether the email exists
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u)
}

// RefreshToken rotates the token pair if the presented refresh token is
// the one currently stored for the user.
func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*user.LoginResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidRefreshToken
	}

	if err := s.tokens.Validate(ctx, claims.UserID, refreshToken); err != nil {
		if errors.Is(err, cache.ErrTokenNotFound) {
			return nil, user.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("validate refresh token: %w", err)
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidRefreshToken
	}

	return s.issueTokens(ctx, u)
}

// Logout drops the stored refresh token.
func (s *userService) Logout(ctx context.Context, userID int64) error {
	if err := s.tokens.Delete(ctx, userID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// issueTokens generates the pair and stores the refresh token, replacing
// any previously issued one.
func (s *userService) issueTokens(ctx context.Context, u *user.User) (*user.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokens.Save(ctx, u.ID, refreshToken, s.refreshExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.accessExpiry),
		User:         u.ToDTO(),
	}, nil
}
