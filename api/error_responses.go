package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/CodeStoryApp/ndx-serializable/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrorCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"
	ErrorCodeDocumentNotFound  ErrorCode = "DOCUMENT_NOT_FOUND"
	ErrorCodeSnapshotNotFound  ErrorCode = "SNAPSHOT_NOT_FOUND"
	ErrorCodeIndexExists       ErrorCode = "INDEX_ALREADY_EXISTS"
	ErrorCodeDuplicateDocument ErrorCode = "DUPLICATE_DOCUMENT"
	ErrorCodeDanglingPosting   ErrorCode = "DANGLING_POSTING"
	ErrorCodeMalformedTable    ErrorCode = "MALFORMED_TABLE"
	ErrorCodeInvalidJSON       ErrorCode = "INVALID_JSON"

	// Server Error Codes (5xx)
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
	ErrorCodePersistenceFailed ErrorCode = "PERSISTENCE_FAILED"
)

// APIError represents a standardized API error response
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// respondWithError maps application errors onto HTTP statuses and writes the
// standardized payload.
func respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrIndexNotFound):
		c.JSON(http.StatusNotFound, APIErrorResponse(ErrorCodeIndexNotFound, err.Error()))
	case errors.Is(err, apperrors.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, APIErrorResponse(ErrorCodeDocumentNotFound, err.Error()))
	case errors.Is(err, apperrors.ErrSnapshotNotFound):
		c.JSON(http.StatusNotFound, APIErrorResponse(ErrorCodeSnapshotNotFound, err.Error()))
	case errors.Is(err, apperrors.ErrIndexAlreadyExists):
		c.JSON(http.StatusConflict, APIErrorResponse(ErrorCodeIndexExists, err.Error()))
	case errors.Is(err, apperrors.ErrDuplicateDocument):
		c.JSON(http.StatusUnprocessableEntity, APIErrorResponse(ErrorCodeDuplicateDocument, err.Error()))
	case errors.Is(err, apperrors.ErrDanglingPosting):
		c.JSON(http.StatusUnprocessableEntity, APIErrorResponse(ErrorCodeDanglingPosting, err.Error()))
	case errors.Is(err, apperrors.ErrMalformedTable):
		c.JSON(http.StatusUnprocessableEntity, APIErrorResponse(ErrorCodeMalformedTable, err.Error()))
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrFieldCountMismatch):
		c.JSON(http.StatusBadRequest, APIErrorResponse(ErrorCodeValidationFailed, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, APIErrorResponse(ErrorCodeInternalError, err.Error()))
	}
}
