package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/domains/catalog/model"
	"bookcatalog-backend/internal/domains/catalog/service"
	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/internal/shared/response"
)

// =====================================================
// CATALOG HANDLER
// =====================================================

type CatalogHandler struct {
	catalogService service.ServiceInterface
}

func NewCatalogHandler(catalogService service.ServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// dateLayout is the wire format of created_before / created_after.
const dateLayout = "2006-01-02"

// getUserID extracts the authenticated user id set by the auth middleware.
func getUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}

// =====================================================
// LIST BOOKS
// =====================================================

// ListBooks handles GET /api/v1/books
//
// Query params:
//   - category: comma-separated category names
//   - author: comma-separated author ids
//   - created_before / created_after: YYYY-MM-DD, interpreted as UTC
//     day boundaries (before = end of day, after = start of day)
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	filter, err := parseListBooksFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, err := h.catalogService.ListBooks(c.Request.Context(), userID, *filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, books)
}

func parseListBooksFilter(c *gin.Context) (*model.ListBooksFilter, error) {
	filter := &model.ListBooksFilter{}

	if categoryParam := c.Query("category"); categoryParam != "" {
		filter.Categories = strings.Split(categoryParam, ",")
	}

	if authorParam := c.Query("author"); authorParam != "" {
		for _, idStr := range strings.Split(authorParam, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				return nil, errors.New("author must be a comma-separated list of integer ids")
			}
			filter.Authors = append(filter.Authors, id)
		}
	}

	if beforeParam := c.Query("created_before"); beforeParam != "" {
		day, err := time.Parse(dateLayout, beforeParam)
		if err != nil {
			return nil, errors.New("created_before must be a date in YYYY-MM-DD format")
		}
		// Inclusive upper bound: end of that UTC day
		endOfDay := day.Add(24*time.Hour - time.Nanosecond)
		filter.CreatedBefore = &endOfDay
	}

	if afterParam := c.Query("created_after"); afterParam != "" {
		day, err := time.Parse(dateLayout, afterParam)
		if err != nil {
			return nil, errors.New("created_after must be a date in YYYY-MM-DD format")
		}
		// Inclusive lower bound: start of that UTC day
		filter.CreatedAfter = &day
	}

	return filter, nil
}

// =====================================================
// GET BOOK DETAIL
// =====================================================

// GetBookDetail handles GET /api/v1/books/:id
func (h *CatalogHandler) GetBookDetail(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	detail, err := h.catalogService.GetBook(c.Request.Context(), userID, bookID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// =====================================================
// ADD TO FAVOURITE
// =====================================================

// AddToFavourite handles POST /api/v1/books/favourites
func (h *CatalogHandler) AddToFavourite(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.AddFavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	if err := h.catalogService.AddToFavourite(c.Request.Context(), userID, req.BookID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, req)
}

// =====================================================
// CREATE REVIEW
// =====================================================

// CreateReview handles POST /api/v1/books/reviews
func (h *CatalogHandler) CreateReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Rating bounds and required fields are rejected here, before the
	// service layer is reached
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	record, err := h.catalogService.CreateReview(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, record)
}

// =====================================================
// ERROR MAPPING
// =====================================================

// handleError maps domain errors to HTTP status codes.
func (h *CatalogHandler) handleError(c *gin.Context, err error) {
	var catErr *model.CatalogError
	if errors.As(err, &catErr) {
		switch {
		case errors.Is(catErr.Err, model.ErrBookNotFound),
			errors.Is(catErr.Err, model.ErrUserNotFound):
			response.ErrorResponse(c, http.StatusNotFound, catErr.Code, catErr.Message)
		case errors.Is(catErr.Err, model.ErrAlreadyFavourite),
			errors.Is(catErr.Err, model.ErrAlreadyReviewed):
			response.ErrorResponse(c, http.StatusConflict, catErr.Code, catErr.Message)
		default:
			response.InternalServerError(c, "Internal server error")
		}
		return
	}

	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, "Book not found")
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, "User not found")
	default:
		response.InternalServerError(c, "Internal server error")
	}
}
