package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/user"
	"bookcatalog-backend/internal/infrastructure/cache"
	"bookcatalog-backend/pkg/jwt"
)

// fakeUserRepository keeps users in memory, keyed by email.
type fakeUserRepository struct {
	byEmail map[string]*user.User
	nextID  int64

	// findByEmailErr, when set, is returned by FindByEmail to simulate
	// storage failures.
	findByEmailErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byEmail: make(map[string]*user.User), nextID: 1}
}

func (f *fakeUserRepository) Create(_ context.Context, u *user.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return user.ErrEmailAlreadyExists
	}
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now().UTC()
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	if f.findByEmailErr != nil {
		return nil, f.findByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id int64) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

// fakeTokenStore is an in-memory TokenStore.
type fakeTokenStore struct {
	tokens map[int64]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[int64]string)}
}

func (f *fakeTokenStore) Save(_ context.Context, userID int64, token string, _ time.Duration) error {
	f.tokens[userID] = token
	return nil
}

func (f *fakeTokenStore) Validate(_ context.Context, userID int64, token string) error {
	stored, ok := f.tokens[userID]
	if !ok || stored != token {
		return cache.ErrTokenNotFound
	}
	return nil
}

func (f *fakeTokenStore) Delete(_ context.Context, userID int64) error {
	delete(f.tokens, userID)
	return nil
}

func newTestService() (user.Service, *fakeUserRepository, *fakeTokenStore) {
	repo := newFakeUserRepository()
	tokens := newFakeTokenStore()
	manager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	svc := NewUserService(repo, manager, tokens, 15*time.Minute, 72*time.Hour)
	return svc, repo, tokens
}

// =====================================================
// REGISTER
// =====================================================

func TestRegisterLogsUserIn(t *testing.T) {
	svc, _, tokens := newTestService()

	resp, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "reader@example.com", resp.User.Email)
	assert.Equal(t, resp.RefreshToken, tokens.tokens[resp.User.ID])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	req := user.RegisterRequest{Email: "reader@example.com", Password: "password123"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestRegisterDoesNotStorePlaintextPassword(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	stored := repo.byEmail["reader@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "not-an-email",
		Password: "password123",
	})
	assert.Error(t, err)

	_, err = svc.Register(context.Background(), user.RegisterRequest{
		Email:    "reader@example.com",
		Password: "short",
	})
	assert.Error(t, err)
}

// =====================================================
// LOGIN
// =====================================================

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), user.LoginRequest{
		Email:    "reader@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginStorageFailureIsNotCredentialError(t *testing.T) {
	// A storage outage must surface as an internal error, not as a 401.
	svc, repo, _ := newTestService()

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	repo.findByEmailErr = errors.New("connection refused")

	_, err = svc.Login(context.Background(), user.LoginRequest{
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	// Unknown email and wrong password are indistinguishable to callers.
	svc, _, _ := newTestService()

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

// =====================================================
// REFRESH / LOGOUT
// =====================================================

func TestRefreshTokenRotates(t *testing.T) {
	svc, _, tokens := newTestService()

	reg, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := svc.RefreshToken(context.Background(), reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	// The stored token is now the new one; the old no longer validates
	assert.Equal(t, resp.RefreshToken, tokens.tokens[reg.User.ID])
}

func TestRefreshTokenGarbageRejected(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, user.ErrInvalidRefreshToken)
}

func TestRefreshAfterLogoutRejected(t *testing.T) {
	svc, _, _ := newTestService()

	reg, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), reg.User.ID))

	_, err = svc.RefreshToken(context.Background(), reg.RefreshToken)
	assert.ErrorIs(t, err, user.ErrInvalidRefreshToken)
}

func TestAccessTokenNotAcceptedAsRefreshToken(t *testing.T) {
	svc, _, _ := newTestService()

	reg, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), reg.AccessToken)
	assert.ErrorIs(t, err, user.ErrInvalidRefreshToken)
}
