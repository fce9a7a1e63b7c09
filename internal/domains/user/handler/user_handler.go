package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/domains/user"
	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/internal/shared/response"
)

// UserHandler serves the auth endpoints. Stateless; it only holds the
// service dependency.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register handles POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	// Registration logs the new user in directly
	loginResp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, loginResp)
}

// Login handles POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	loginResp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, loginResp)
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req user.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	loginResp, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, loginResp)
}

// Logout handles POST /api/v1/auth/logout (authenticated)
func (h *UserHandler) Logout(c *gin.Context) {
	value, exists := c.Get(middleware.ContextUserID)
	userID, ok := value.(int64)
	if !exists || !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// ========================================
// ERROR MAPPING
// ========================================

func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, "Email is already registered")
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, user.ErrInvalidRefreshToken):
		response.Unauthorized(c, "Invalid or expired refresh token")
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "User not found")
	default:
		response.InternalServerError(c, "Internal server error")
	}
}
