package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-study-engine/internal/platform/logger"
)

type errorResponse struct {
	Error string `json:"error" example:"module not found"`
}

// handleError writes the HTTP response matching err. Unknown errors are
// logged and hidden behind a generic 500.
func handleError(c *gin.Context, log *logger.Logger, err error) {
	if log == nil {
		log = logger.NewNop()
	}
	status, message := classify(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		log.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	c.JSON(status, errorResponse{Error: message})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"

	case errors.Is(err, domain.ErrModuleNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProgressNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrVoteConflict):
		return http.StatusConflict, err.Error()

	case errors.Is(err, domain.ErrContentNotInModule),
		errors.Is(err, domain.ErrInvalidModuleID),
		errors.Is(err, domain.ErrInvalidContentID),
		errors.Is(err, domain.ErrInvalidVote),
		errors.Is(err, domain.ErrInvalidDay),
		errors.Is(err, domain.ErrTooManyModules),
		errors.Is(err, errInvalidTimezone):
		return http.StatusBadRequest, err.Error()
	}

	return http.StatusInternalServerError, "internal server error"
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}
