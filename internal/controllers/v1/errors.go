package v1

import (
	"errors"
	"net/http"

	"github.com/hotwellkz/app59/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, models.ErrHistoryUnavailable) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")

// Deletion errors
var errDeletionModeInvalid = errors.New("the deletion mode must be 'history' or 'icon'")
