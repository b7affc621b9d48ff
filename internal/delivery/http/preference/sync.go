package http_preference

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/boardswap/core/internal/delivery/http/common"
	ws_session "github.com/boardswap/core/internal/delivery/ws/session"
	"github.com/boardswap/core/internal/model"
	usecase_preference "github.com/boardswap/core/internal/usecase/preference"
	usecase_ready "github.com/boardswap/core/internal/usecase/ready"
	usecase_session "github.com/boardswap/core/internal/usecase/session"
	usecase_syncstate "github.com/boardswap/core/internal/usecase/syncstate"
)

// SyncController exposes the sync-state tracker and the guest ready
// state machine over the session routes.
type SyncController struct {
	tracker  *usecase_syncstate.Tracker
	prefs    *usecase_preference.Usecase
	sessions *usecase_session.Usecase
	ready    *usecase_ready.Service
	hub      *ws_session.Hub
	logger   *slog.Logger
}

func NewSyncController(
	tracker *usecase_syncstate.Tracker,
	prefs *usecase_preference.Usecase,
	sessions *usecase_session.Usecase,
	ready *usecase_ready.Service,
	hub *ws_session.Hub,
) *SyncController {
	return &SyncController{
		tracker:  tracker,
		prefs:    prefs,
		sessions: sessions,
		ready:    ready,
		hub:      hub,
		logger:   slog.Default(),
	}
}

func (c *SyncController) RegisterRoutes(router *gin.RouterGroup) {
	session := router.Group("sessions/:session_code")
	session.POST("/sync-status", c.syncStatus)
	session.POST("/participants/:participant_id/sync", c.sync)

	ready := session.Group("/participants/:participant_id/ready")
	ready.GET("", c.readyStage)
	ready.POST("", c.submitReady)
	ready.POST("/update", c.updateReady)
	ready.POST("/advance", c.advanceReady)
}

// SyncStatusRequestDTO
type SyncStatusRequestDTO struct {
	EligibleGameIDs []string `json:"eligible_game_ids" binding:"required"`
}

// SyncStatusDTO
type SyncStatusDTO struct {
	ParticipantID string `json:"participant_id"`
	State         string `json:"state" enums:"synced,needs-sync,syncing,remote,waiting"`
	LastSyncedAt  string `json:"last_synced_at,omitempty"`
}

// @Summary Sync states of all participants
// @Description Derived per participant from local preferences vs the last pushed snapshot
// @Tags Sync
// @Accept json
// @Produce json
// @Param session_code path string true "Session code" example("123456")
// @Param request body SyncStatusRequestDTO true "Eligible game ids"
// @Success 200 {array} SyncStatusDTO
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 404 {object} http_common.ErrorResponse "Session not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/sync-status [post]
func (c *SyncController) syncStatus(ctx *gin.Context) {
	code := ctx.Param("session_code")

	var req SyncStatusRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	eligible, err := parseIDs(req.EligibleGameIDs)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad game id"})
		return
	}

	participants, err := c.useSession(ctx, code)
	if err != nil {
		c.respondError(ctx, err, "failed to resolve session")
		return
	}

	resp := make([]SyncStatusDTO, 0, len(participants))
	for _, p := range participants {
		var localPrefs []model.Preference
		if p.Origin == model.OriginLocal {
			localPrefs, err = c.prefs.Preferences(ctx, p.ID)
			if err != nil {
				c.respondError(ctx, err, "failed to load preferences")
				return
			}
		}

		status := c.tracker.Status(p, localPrefs, eligible)
		dto := SyncStatusDTO{
			ParticipantID: string(status.ParticipantID),
			State:         string(status.State),
		}
		if !status.LastSyncedAt.IsZero() {
			dto.LastSyncedAt = status.LastSyncedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		resp = append(resp, dto)
	}
	ctx.JSON(http.StatusOK, resp)
}

// SyncRequestDTO
type SyncRequestDTO struct {
	EligibleGameIDs []string `json:"eligible_game_ids" binding:"required"`
}

// @Summary Push one participant's preferences
// @Description Explicit sync of eligible-restricted local preferences to the shared session document
// @Tags Sync
// @Accept json
// @Param session_code path string true "Session code" example("123456")
// @Param participant_id path string true "Participant id"
// @Param request body SyncRequestDTO true "Eligible game ids"
// @Success 200 "Preferences pushed"
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 404 {object} http_common.ErrorResponse "Not found"
// @Failure 502 {object} http_common.ErrorResponse "Push failed, state unchanged"
// @Router /sessions/{session_code}/participants/{participant_id}/sync [post]
func (c *SyncController) sync(ctx *gin.Context) {
	code := ctx.Param("session_code")
	id := model.ParticipantID(ctx.Param("participant_id"))

	var req SyncRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	eligible, err := parseIDs(req.EligibleGameIDs)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad game id"})
		return
	}

	participants, err := c.useSession(ctx, code)
	if err != nil {
		c.respondError(ctx, err, "failed to resolve session")
		return
	}

	p, err := findParticipant(participants, id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "unknown participant"})
		return
	}

	localPrefs, err := c.prefs.Preferences(ctx, p.ID)
	if err != nil {
		c.respondError(ctx, err, "failed to load preferences")
		return
	}

	if err := c.tracker.Sync(ctx, p, localPrefs, eligible); err != nil {
		c.logger.Error("sync failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: "sync failed"})
		return
	}

	c.hub.BroadcastToSession(model.SessionID(code), ws_session.Message{
		Type:      ws_session.SyncUpdate,
		SessionID: code,
		Data: map[string]interface{}{
			"participant_id": string(p.ID),
		},
	})

	ctx.Status(http.StatusOK)
}

// ReadyStageResponseDTO
type ReadyStageResponseDTO struct {
	Stage string `json:"stage"`
}

// @Summary Guest ready stage
// @Tags Ready
// @Produce json
// @Param session_code path string true "Session code" example("123456")
// @Param participant_id path string true "Participant id"
// @Success 200 {object} ReadyStageResponseDTO
// @Failure 404 {object} http_common.ErrorResponse "Not found"
// @Router /sessions/{session_code}/participants/{participant_id}/ready [get]
func (c *SyncController) readyStage(ctx *gin.Context) {
	code := ctx.Param("session_code")
	id := model.ParticipantID(ctx.Param("participant_id"))

	participants, err := c.useSession(ctx, code)
	if err != nil {
		c.respondError(ctx, err, "failed to resolve session")
		return
	}
	p, err := findParticipant(participants, id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "unknown participant"})
		return
	}

	m := c.ready.Machine(model.SessionID(code), p)
	if err := m.Restore(ctx); err != nil {
		c.respondError(ctx, err, "failed to restore ready state")
		return
	}

	ctx.JSON(http.StatusOK, ReadyStageResponseDTO{Stage: string(m.Stage())})
}

// @Summary Submit preferences and become ready
// @Tags Ready
// @Param session_code path string true "Session code" example("123456")
// @Param participant_id path string true "Participant id"
// @Success 200 "Ready"
// @Failure 404 {object} http_common.ErrorResponse "Not found"
// @Failure 409 {object} http_common.ErrorResponse "Invalid stage"
// @Failure 502 {object} http_common.ErrorResponse "Submit failed, state unchanged"
// @Router /sessions/{session_code}/participants/{participant_id}/ready [post]
func (c *SyncController) submitReady(ctx *gin.Context) {
	c.pushReady(ctx, func(m *usecase_ready.Machine, prefs []model.Preference) error {
		return m.Submit(ctx, prefs)
	})
}

// @Summary Re-submit after edits
// @Tags Ready
// @Param session_code path string true "Session code" example("123456")
// @Param participant_id path string true "Participant id"
// @Success 200 "Ready again"
// @Failure 404 {object} http_common.ErrorResponse "Not found"
// @Failure 409 {object} http_common.ErrorResponse "Invalid stage"
// @Failure 502 {object} http_common.ErrorResponse "Submit failed, state unchanged"
// @Router /sessions/{session_code}/participants/{participant_id}/ready/update [post]
func (c *SyncController) updateReady(ctx *gin.Context) {
	c.pushReady(ctx, func(m *usecase_ready.Machine, prefs []model.Preference) error {
		return m.Update(ctx, prefs)
	})
}

// AdvanceReadyRequestDTO
type AdvanceReadyRequestDTO struct {
	Stage string `json:"stage" binding:"required" enums:"mode-select,preference-source-select,preferences-open"`
}

// @Summary Advance the join flow
// @Description Moves the guest to the next pre-ready stage
// @Tags Ready
// @Accept json
// @Param session_code path string true "Session code" example("123456")
// @Param participant_id path string true "Participant id"
// @Param request body AdvanceReadyRequestDTO true "Target stage"
// @Success 200 "Stage entered"
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 404 {object} http_common.ErrorResponse "Not found"
// @Failure 409 {object} http_common.ErrorResponse "Invalid stage"
// @Router /sessions/{session_code}/participants/{participant_id}/ready/advance [post]
func (c *SyncController) advanceReady(ctx *gin.Context) {
	code := ctx.Param("session_code")
	id := model.ParticipantID(ctx.Param("participant_id"))

	var req AdvanceReadyRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	participants, err := c.useSession(ctx, code)
	if err != nil {
		c.respondError(ctx, err, "failed to resolve session")
		return
	}
	p, err := findParticipant(participants, id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "unknown participant"})
		return
	}

	m := c.ready.Machine(model.SessionID(code), p)
	switch usecase_ready.Stage(req.Stage) {
	case usecase_ready.StageModeSelect:
		err = m.BeginModeSelect()
	case usecase_ready.StagePreferenceSourceSelect:
		err = m.BeginPreferenceSourceSelect()
	case usecase_ready.StagePreferencesOpen:
		err = m.OpenPreferences()
	default:
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad stage"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{Message: "invalid stage"})
		return
	}

	ctx.Status(http.StatusOK)
}

func (c *SyncController) pushReady(ctx *gin.Context, push func(*usecase_ready.Machine, []model.Preference) error) {
	code := ctx.Param("session_code")
	id := model.ParticipantID(ctx.Param("participant_id"))

	participants, err := c.useSession(ctx, code)
	if err != nil {
		c.respondError(ctx, err, "failed to resolve session")
		return
	}
	p, err := findParticipant(participants, id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "unknown participant"})
		return
	}

	localPrefs, err := c.prefs.Preferences(ctx, p.ID)
	if err != nil {
		c.respondError(ctx, err, "failed to load preferences")
		return
	}

	m := c.ready.Machine(model.SessionID(code), p)
	if err := push(m, localPrefs); err != nil {
		if errors.Is(err, usecase_ready.ErrInvalidTransition) {
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{Message: "invalid stage"})
			return
		}
		c.logger.Error("ready submit failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: "submit failed"})
		return
	}

	c.hub.BroadcastToSession(model.SessionID(code), ws_session.Message{
		Type:      ws_session.ParticipantReady,
		SessionID: code,
		Data: map[string]interface{}{
			"participant_id": string(p.ID),
		},
	})

	ctx.Status(http.StatusOK)
}

// useSession binds the tracker to the requested session (resetting
// tracked hashes if the active session changed) and returns the
// participant list.
func (c *SyncController) useSession(ctx *gin.Context, code string) ([]model.Participant, error) {
	participants, err := c.sessions.Participants(ctx, code)
	if err != nil {
		return nil, err
	}

	host := model.EmptyParticipantID
	for _, p := range participants {
		if p.Role == model.RoleHost {
			host = p.ID
			break
		}
	}

	c.tracker.UseSession(model.SessionContext{
		SessionID: model.SessionID(code),
		HostID:    host,
	})
	return participants, nil
}

func (c *SyncController) respondError(ctx *gin.Context, err error, msg string) {
	c.logger.Error(msg, slog.String("error", err.Error()))
	if errors.Is(err, usecase_session.ErrResourceNotFound) {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
		return
	}
	ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
}
