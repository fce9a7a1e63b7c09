package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{Email: "reader@example.com", Password: "password123"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{Password: "password123"}},
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "password123"}},
		{"missing password", RegisterRequest{Email: "reader@example.com"}},
		{"short password", RegisterRequest{Email: "reader@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	assert.NoError(t, LoginRequest{Email: "reader@example.com", Password: "x"}.Validate())
	assert.Error(t, LoginRequest{Email: "reader@example.com"}.Validate())
	assert.Error(t, LoginRequest{Password: "x"}.Validate())
}

func TestUserToDTOHidesPasswordHash(t *testing.T) {
	u := User{ID: 1, Email: "reader@example.com", PasswordHash: "secret-hash"}
	dto := u.ToDTO()
	assert.Equal(t, int64(1), dto.ID)
	assert.Equal(t, "reader@example.com", dto.Email)
}
