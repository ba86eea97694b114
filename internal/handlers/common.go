package handlers

import (
	"errors"
	"net/http"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// errorStatus maps service errors onto HTTP status codes. Unknown errors
// are treated as internal.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrQuizNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrOptionNotFound),
		errors.Is(err, services.ErrParticipantNotFound),
		errors.Is(err, services.ErrMentionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidCode),
		errors.Is(err, services.ErrInvalidQuestion):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAlreadyAnswered):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
