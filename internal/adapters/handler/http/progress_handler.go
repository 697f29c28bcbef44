package http

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-study-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-study-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-study-engine/internal/platform/logger"
)

const eventsHeartbeat = 25 * time.Second

type ProgressHandler struct {
	svc    *services.ProgressService
	events domain.ProgressSubscriber
	log    *logger.Logger
}

func NewProgressHandler(svc *services.ProgressService, events domain.ProgressSubscriber, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{
		svc:    svc,
		events: events,
		log:    log,
	}
}

type setCompletionRequest struct {
	ModuleID    string `json:"module_id" binding:"required"`
	ContentID   string `json:"content_id" binding:"required"`
	IsCompleted *bool  `json:"is_completed" binding:"required"`
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup) {
	progress := router.Group("/progress")
	{
		progress.GET("/modules", h.GetModules)
		progress.PUT("/contents", h.SetCompletion)
		if h.events != nil {
			progress.GET("/events", h.Stream)
		}
	}
}

// GetModules godoc
// @Summary      Progress of several modules
// @Description  Returns one entry per requested module id, including modules without any data.
// @Tags         progress
// @Produce      json
// @Security     BearerAuth
// @Param        ids  query     string  true  "Comma separated module ids (max 200)"
// @Success      200  {object}  map[string]domain.ModuleProgressInfo
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /progress/modules [get]
func (h *ProgressHandler) GetModules(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleError(c, h.log, domain.ErrUnauthorized)
		return
	}

	raw := c.QueryArray("ids")
	var ids []string
	for _, chunk := range raw {
		ids = append(ids, strings.Split(chunk, ",")...)
	}

	result, err := h.svc.GetModuleProgress(c.Request.Context(), userID, ids)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SetCompletion godoc
// @Summary      Mark a content item as completed or not
// @Tags         progress
// @Accept       json
// @Security     BearerAuth
// @Param        request  body  setCompletionRequest  true  "Completion"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /progress/contents [put]
func (h *ProgressHandler) SetCompletion(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleError(c, h.log, domain.ErrUnauthorized)
		return
	}

	var req setCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	err := h.svc.SetContentCompletion(c.Request.Context(), services.SetCompletionInput{
		UserID:      userID,
		ModuleID:    req.ModuleID,
		ContentID:   req.ContentID,
		IsCompleted: *req.IsCompleted,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Stream godoc
// @Summary      Live progress updates
// @Description  Server-sent events, one "progress" event per recomputed module.
// @Tags         progress
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  {object}  domain.ProgressChanged
// @Router       /progress/events [get]
func (h *ProgressHandler) Stream(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleError(c, h.log, domain.ErrUnauthorized)
		return
	}

	ctx := c.Request.Context()
	events, cancel, err := h.events.Subscribe(ctx, userID)
	if err != nil {
		handleError(c, h.log, fmt.Errorf("subscribe: %w", err))
		return
	}
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	heartbeat := time.NewTicker(eventsHeartbeat)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, open := <-events:
			if !open {
				return false
			}
			c.SSEvent("progress", event)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
}
