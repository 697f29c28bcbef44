package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-study-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-study-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-study-engine/internal/platform/logger"
)

type StatsHandler struct {
	svc   *services.StatsService
	log   *logger.Logger
	clock Clock
}

func NewStatsHandler(svc *services.StatsService, log *logger.Logger, clock Clock) *StatsHandler {
	if clock == nil {
		clock = systemClock
	}
	return &StatsHandler{svc: svc, log: log, clock: clock}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetStats)
}

// GetStats godoc
// @Summary      Dashboard summary
// @Description  Modules, contents and tracks completed plus the login streak.
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        tz   query     string  false  "IANA time zone, defaults to UTC"
// @Success      200  {object}  domain.UserStats
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
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

	stats, err := h.svc.GetUserStats(c.Request.Context(), userID, today)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
