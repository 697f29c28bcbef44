package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-study-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-study-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-study-engine/internal/platform/logger"
)

type VoteHandler struct {
	svc *services.VoteService
	log *logger.Logger
}

func NewVoteHandler(svc *services.VoteService, log *logger.Logger) *VoteHandler {
	return &VoteHandler{svc: svc, log: log}
}

type castVoteRequest struct {
	Value *int `json:"value" binding:"required"`
}

func (h *VoteHandler) RegisterRoutes(router *gin.RouterGroup) {
	modules := router.Group("/modules")
	{
		modules.PUT("/:id/vote", h.Cast)
		modules.GET("/:id/votes", h.Tally)
	}
}

// Cast godoc
// @Summary      Vote on a module
// @Description  1 upvotes, -1 downvotes, 0 retracts the caller's vote.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string           true  "Module id"
// @Param        request  body      castVoteRequest  true  "Vote"
// @Success      200      {object}  domain.VoteTally
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /modules/{id}/vote [put]
func (h *VoteHandler) Cast(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleError(c, h.log, domain.ErrUnauthorized)
		return
	}

	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	tally, err := h.svc.Cast(c.Request.Context(), services.CastVoteInput{
		UserID:   userID,
		ModuleID: c.Param("id"),
		Value:    *req.Value,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, tally)
}

// Tally godoc
// @Summary      Vote counts of a module
// @Tags         votes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Module id"
// @Success      200  {object}  domain.VoteTally
// @Failure      404  {object}  errorResponse
// @Router       /modules/{id}/votes [get]
func (h *VoteHandler) Tally(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleError(c, h.log, domain.ErrUnauthorized)
		return
	}

	tally, err := h.svc.Tally(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, tally)
}
