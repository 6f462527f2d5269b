package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/readshelf/readshelf/internal/auth"
	"github.com/readshelf/readshelf/internal/pagination"
)

// GetUsername extracts the authenticated username from the Gin context.
func GetUsername(c *gin.Context) string {
	return auth.GetUsername(c)
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PaginatedResponse wraps paginated data with the metadata the client needs
// to render page links.
type PaginatedResponse struct {
	Data      any   `json:"data"`
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	PageCount int   `json:"page_count"`
}

func newPaginatedResponse(data any, total int64, page, pageSize int) PaginatedResponse {
	return PaginatedResponse{
		Data:      data,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
		PageCount: pagination.PageCount(total, pageSize),
	}
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response. Ownership failures use
// this too, so a denied resource looks identical to a missing one.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondConflict sends a 409 Conflict response for rejected business
// outcomes such as duplicate names.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 response. The actual
// error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// --- Parameter Parsing ---

// parsePageParam reads the "page" query parameter, defaulting to 1.
// Returns false (after responding) when the value is not a positive integer.
func parsePageParam(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		respondBadRequest(c, "invalid page number requested")
		return 0, false
	}
	return page, true
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// checkPage validates a requested page against the total. An empty result
// set shows page 1 as an empty listing rather than an error.
func checkPage(c *gin.Context, page int, total int64, pageSize int) bool {
	if total == 0 && page == 1 {
		return true
	}
	if !pagination.IsValidPage(page, total, pageSize) {
		respondBadRequest(c, "invalid page number requested")
		return false
	}
	return true
}
