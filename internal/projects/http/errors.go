package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenforge/screenforge-backend/internal/llm"
	"github.com/screenforge/screenforge-backend/internal/logging"
	"github.com/screenforge/screenforge-backend/internal/projects/domain"
	usersdomain "github.com/screenforge/screenforge-backend/internal/users/domain"
)

// writeError maps domain errors to status codes. Anything unrecognised is logged and
// reported with the fixed fallback message.
func writeError(c *gin.Context, operation, fallback string, err error) {
	status, msg := http.StatusInternalServerError, fallback

	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrInvalidDevice),
		errors.Is(err, domain.ErrInvalidTheme),
		errors.Is(err, domain.ErrUserInputTooLong):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrRunNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, usersdomain.ErrInsufficientCredits):
		status, msg = http.StatusPaymentRequired, err.Error()
	case errors.Is(err, domain.ErrProjectExists),
		errors.Is(err, domain.ErrRunInProgress):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidConfigJSON):
		msg = "Invalid JSON response from AI"
	case errors.Is(err, llm.ErrEmptyResponse):
		msg = "No response from AI"
	}

	if status == http.StatusInternalServerError {
		logging.New(c.Request.Context()).Error(operation, err)
	}
	c.JSON(status, gin.H{"ok": false, "error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
