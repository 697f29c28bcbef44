package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-study-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-study-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-study-engine/internal/platform/logger"
)

type LoginHandler struct {
	svc   *services.LoginService
	log   *logger.Logger
	clock Clock
}

func NewLoginHandler(svc *services.LoginService, log *logger.Logger, clock Clock) *LoginHandler {
	if clock == nil {
		clock = systemClock
	}
	return &LoginHandler{svc: svc, log: log, clock: clock}
}

func (h *LoginHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/login-days", h.RecordLogin)
	router.GET("/streak", h.GetStreak)
}

// RecordLogin godoc
// @Summary      Record today as an active day
// @Description  Idempotent per calendar day in the caller's time zone.
// @Tags         streak
// @Produce      json
// @Security     BearerAuth
// @Param        tz   query     string  false  "IANA time zone, defaults to UTC"
// @Success      200  {object}  domain.StreakSummary
// @Failure      400  {object}  errorResponse
// @Router       /login-days [post]
func (h *LoginHandler) RecordLogin(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleError(c, h.log, domain.ErrUnauthorized)
		return
	}

	today, err := resolveToday(c, h.clock)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	summary, err := h.svc.RecordLogin(c.Request.Context(), userID, today)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetStreak godoc
// @Summary      Current and longest login streak
// @Tags         streak
// @Produce      json
// @Security     BearerAuth
// @Param        tz   query     string  false  "IANA time zone, defaults to UTC"
// @Success      200  {object}  domain.StreakSummary
// @Failure      400  {object}  errorResponse
// @Router       /streak [get]
func (h *LoginHandler) GetStreak(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleError(c, h.log, domain.ErrUnauthorized)
		return
	}

	today, err := resolveToday(c, h.clock)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	summary, err := h.svc.GetStreak(c.Request.Context(), userID, today)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
