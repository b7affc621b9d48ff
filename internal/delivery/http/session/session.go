package http_session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/boardswap/core/internal/delivery/http/common"
	http_hostauth_middleware "github.com/boardswap/core/internal/delivery/http/middleware/hostauth"
	ws_session "github.com/boardswap/core/internal/delivery/ws/session"
	"github.com/boardswap/core/internal/model"
	service_host_auth "github.com/boardswap/core/internal/service/hostauth"
	usecase_session "github.com/boardswap/core/internal/usecase/session"
)

type Controller struct {
	usecase *usecase_session.Usecase
	auth    *service_host_auth.Service
	hostMW  *http_hostauth_middleware.Middleware
	hub     *ws_session.Hub
	logger  *slog.Logger
}

func New(
	usecase *usecase_session.Usecase,
	auth *service_host_auth.Service,
	hostMW *http_hostauth_middleware.Middleware,
	hub *ws_session.Hub,
) *Controller {
	return &Controller{
		usecase: usecase,
		auth:    auth,
		hostMW:  hostMW,
		hub:     hub,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions")
	{
		sessions.POST("", c.open)
		sessions.GET("/:session_code/status", c.status)
		sessions.GET("/:session_code/preview", c.preview)
		sessions.GET("/:session_code/participants", c.participants)
		sessions.POST("/:session_code/participants", c.join)

		host := sessions.Group("", c.hostMW.HostRequired())
		{
			host.POST("/:session_code/handoff", c.handOff)
			host.POST("/:session_code/selection", c.selectGame)
			host.DELETE("/:session_code/participants/:participant_id", c.leave)
			host.DELETE("/:session_code", c.free)
		}
	}
}

type OpenRequestDTO struct {
	HostName  string `json:"host_name" binding:"required"`
	ShareMode string `json:"share_mode"`
}

type OpenResponseDTO struct {
	SessionCode string `json:"session_code"`
	HostID      string `json:"host_id"`
}

// @Summary Open session
// @Description Open a new game-night session and issue a host token
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body OpenRequestDTO true "Host name and share mode"
// @Success 201 {object} OpenResponseDTO "Session opened"
// @Header 201 {string} X-host-token "Host token"
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Failure 503 {object} http_common.ErrorResponse "No session codes available"
// @Router /sessions [post]
func (c *Controller) open(ctx *gin.Context) {
	var req OpenRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	mode := model.ShareMode(req.ShareMode)
	if mode == "" {
		mode = model.ShareModeLocal
	}

	code, hostID, err := c.usecase.Open(ctx, req.HostName, mode)
	if err != nil {
		c.logger.Error("failed to open session", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_session.ErrSessionsUnavailable):
			ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{Message: "unavailable"})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		}
		return
	}

	token, err := c.auth.Issue(code)
	if err != nil {
		c.logger.Error("failed to issue host token", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	ctx.Header(http_hostauth_middleware.HeaderHostToken, token)
	ctx.JSON(http.StatusCreated, OpenResponseDTO{
		SessionCode: code,
		HostID:      hostID,
	})
}

type StatusResponseDTO struct {
	Status string `json:"status"`
}

// @Summary Session status
// @Tags Sessions
// @Produce json
// @Param session_code path string true "Session code" example("123456")
// @Success 200 {object} StatusResponseDTO
// @Failure 404 {object} http_common.ErrorResponse "Session not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/status [get]
func (c *Controller) status(ctx *gin.Context) {
	code := ctx.Param("session_code")

	status, err := c.usecase.Status(ctx, code)
	if err != nil {
		c.respondError(ctx, err, "failed to get status")
		return
	}

	ctx.JSON(http.StatusOK, StatusResponseDTO{Status: status})
}

type NamedSlotDTO struct {
	Name           string `json:"name"`
	Ready          bool   `json:"ready"`
	HasPreferences bool   `json:"has_preferences"`
}

type PreviewResponseDTO struct {
	HostName   string         `json:"host_name"`
	NamedSlots []NamedSlotDTO `json:"named_slots"`
	ShareMode  string         `json:"share_mode"`
}

// @Summary Participant preview
// @Description Who has claimed a slot and who has submitted, from the shared session document
// @Tags Sessions
// @Produce json
// @Param session_code path string true "Session code" example("123456")
// @Success 200 {object} PreviewResponseDTO
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/preview [get]
func (c *Controller) preview(ctx *gin.Context) {
	code := ctx.Param("session_code")

	preview, err := c.usecase.Preview(ctx, code)
	if err != nil {
		c.respondError(ctx, err, "failed to get preview")
		return
	}

	resp := PreviewResponseDTO{
		HostName:  preview.HostName,
		ShareMode: string(preview.ShareMode),
	}
	for _, slot := range preview.NamedSlots {
		resp.NamedSlots = append(resp.NamedSlots, NamedSlotDTO{
			Name:           slot.Name,
			Ready:          slot.Ready,
			HasPreferences: slot.HasPreferences,
		})
	}
	ctx.JSON(http.StatusOK, resp)
}

type ParticipantDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Origin string `json:"origin"`
}

// @Summary List participants
// @Tags Sessions
// @Produce json
// @Param session_code path string true "Session code" example("123456")
// @Success 200 {array} ParticipantDTO
// @Failure 404 {object} http_common.ErrorResponse "Session not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/participants [get]
func (c *Controller) participants(ctx *gin.Context) {
	code := ctx.Param("session_code")

	participants, err := c.usecase.Participants(ctx, code)
	if err != nil {
		c.respondError(ctx, err, "failed to list participants")
		return
	}

	resp := make([]ParticipantDTO, 0, len(participants))
	for _, p := range participants {
		resp = append(resp, ParticipantDTO{
			ID:     string(p.ID),
			Name:   p.Name,
			Role:   string(p.Role),
			Origin: string(p.Origin),
		})
	}
	ctx.JSON(http.StatusOK, resp)
}

type JoinRequestDTO struct {
	Name   string `json:"name" binding:"required"`
	Origin string `json:"origin" enums:"local,remote"`
}

// @Summary Join session
// @Description Claim a named participant slot
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_code path string true "Session code" example("123456")
// @Param request body JoinRequestDTO true "Participant name"
// @Success 201 {object} ParticipantDTO "Slot claimed"
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 404 {object} http_common.ErrorResponse "Session not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/participants [post]
func (c *Controller) join(ctx *gin.Context) {
	code := ctx.Param("session_code")

	var req JoinRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	origin := model.Origin(req.Origin)
	if origin == "" {
		origin = model.OriginRemote
	}

	p, err := c.usecase.Join(ctx, code, req.Name, origin)
	if err != nil {
		c.respondError(ctx, err, "failed to join session")
		return
	}

	c.hub.BroadcastToSession(model.SessionID(code), ws_session.Message{
		Type:      ws_session.ParticipantJoined,
		SessionID: code,
		Data: map[string]interface{}{
			"participant_id": string(p.ID),
			"name":           p.Name,
		},
	})

	ctx.JSON(http.StatusCreated, ParticipantDTO{
		ID:     string(p.ID),
		Name:   p.Name,
		Role:   string(p.Role),
		Origin: string(p.Origin),
	})
}

type HandOffRequestDTO struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// @Summary Hand off host role
// @Tags Sessions
// @Accept json
// @Param session_code path string true "Session code" example("123456")
// @Param request body HandOffRequestDTO true "Current and next host"
// @Success 200 "Host role transferred"
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 403 {object} http_common.ErrorResponse "Not the host"
// @Failure 404 {object} http_common.ErrorResponse "Session not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/handoff [post]
func (c *Controller) handOff(ctx *gin.Context) {
	code := ctx.Param("session_code")

	var req HandOffRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	err := c.usecase.HandOff(ctx, code, model.ParticipantID(req.From), model.ParticipantID(req.To))
	if err != nil {
		if errors.Is(err, usecase_session.ErrNotHost) {
			ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{Message: "not the host"})
			return
		}
		c.respondError(ctx, err, "failed to hand off host role")
		return
	}

	ctx.Status(http.StatusOK)
}

type SelectGameRequestDTO struct {
	GameID string `json:"game_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title  string `json:"title" binding:"required"`
}

// @Summary Save selected game
// @Description Durably save the group's pick into the shared result slot
// @Tags Sessions
// @Accept json
// @Param session_code path string true "Session code" example("123456")
// @Param request body SelectGameRequestDTO true "Selected game"
// @Success 200 "Selection saved"
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 404 {object} http_common.ErrorResponse "Session not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/selection [post]
func (c *Controller) selectGame(ctx *gin.Context) {
	code := ctx.Param("session_code")

	var req SelectGameRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	gameID, err := uuid.Parse(req.GameID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad game id"})
		return
	}

	if err := c.usecase.SelectGame(ctx, code, model.GameSummary{ID: gameID, Title: req.Title}); err != nil {
		c.respondError(ctx, err, "failed to save selection")
		return
	}

	c.hub.BroadcastToSession(model.SessionID(code), ws_session.Message{
		Type:      ws_session.GameSelected,
		SessionID: code,
		Data: map[string]interface{}{
			"game_id": req.GameID,
			"title":   req.Title,
		},
	})

	ctx.Status(http.StatusOK)
}

// @Summary Remove participant
// @Tags Sessions
// @Param session_code path string true "Session code" example("123456")
// @Param participant_id path string true "Participant id"
// @Success 204 "Participant removed"
// @Failure 404 {object} http_common.ErrorResponse "Not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/participants/{participant_id} [delete]
func (c *Controller) leave(ctx *gin.Context) {
	code := ctx.Param("session_code")
	id := model.ParticipantID(ctx.Param("participant_id"))

	if err := c.usecase.Leave(ctx, code, id); err != nil {
		c.respondError(ctx, err, "failed to remove participant")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// @Summary Delete session
// @Tags Sessions
// @Param session_code path string true "Session code" example("123456")
// @Success 204 "Session deleted"
// @Failure 404 {object} http_common.ErrorResponse "Session not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code} [delete]
func (c *Controller) free(ctx *gin.Context) {
	code := ctx.Param("session_code")

	if err := c.usecase.Free(ctx, code); err != nil {
		c.respondError(ctx, err, "failed to delete session")
		return
	}

	c.hub.BroadcastToSession(model.SessionID(code), ws_session.Message{
		Type:      ws_session.SessionClosed,
		SessionID: code,
	})

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) respondError(ctx *gin.Context, err error, msg string) {
	c.logger.Error(msg, slog.String("error", err.Error()))
	if errors.Is(err, usecase_session.ErrResourceNotFound) {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
		return
	}
	ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
}
