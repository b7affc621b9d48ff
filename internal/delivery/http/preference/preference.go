package http_preference

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/boardswap/core/internal/delivery/http/common"
	"github.com/boardswap/core/internal/model"
	usecase_preference "github.com/boardswap/core/internal/usecase/preference"
	usecase_session "github.com/boardswap/core/internal/usecase/session"
)

type Controller struct {
	uc       *usecase_preference.Usecase
	sessions *usecase_session.Usecase
	logger   *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_preference.Usecase,
	sessions *usecase_session.Usecase,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:       uc,
		sessions: sessions,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	prefs := router.Group("sessions/:session_code/participants/:participant_id/preferences")
	prefs.GET("", c.list)
	prefs.PUT("/:game_id", c.upsert)
	prefs.DELETE("/:game_id", c.clear)
	prefs.POST("/reorder", c.reorder)
}

// PreferenceDTO
type PreferenceDTO struct {
	GameID     string `json:"game_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Rank       int    `json:"rank" example:"1"`
	IsTopPick  bool   `json:"is_top_pick"`
	IsDisliked bool   `json:"is_disliked"`
}

// UpsertPreferenceRequestDTO
type UpsertPreferenceRequestDTO struct {
	Rank       int  `json:"rank"`
	IsTopPick  bool `json:"is_top_pick"`
	IsDisliked bool `json:"is_disliked"`
}

// ReorderRequestDTO
type ReorderRequestDTO struct {
	OrderedGameIDs  []string `json:"ordered_game_ids" binding:"required"`
	EligibleGameIDs []string `json:"eligible_game_ids" binding:"required"`
}

// @Summary List preferences
// @Description Current local preferences of one participant
// @Tags Preferences
// @Produce json
// @Param session_code path string true "Session code" example("123456")
// @Param participant_id path string true "Participant id"
// @Success 200 {array} PreferenceDTO
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/participants/{participant_id}/preferences [get]
func (c *Controller) list(ctx *gin.Context) {
	id := model.ParticipantID(ctx.Param("participant_id"))

	prefs, err := c.uc.Preferences(ctx, id)
	if err != nil {
		c.logger.Error("failed to list preferences", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	resp := make([]PreferenceDTO, 0, len(prefs))
	for _, p := range prefs {
		resp = append(resp, PreferenceDTO{
			GameID:     p.GameID.String(),
			Rank:       p.Rank.Value(),
			IsTopPick:  p.IsTopPick,
			IsDisliked: p.IsDisliked,
		})
	}
	ctx.JSON(http.StatusOK, resp)
}

// @Summary Upsert preference
// @Description Set rank / top pick / dislike for one game
// @Tags Preferences
// @Accept json
// @Param session_code path string true "Session code" example("123456")
// @Param participant_id path string true "Participant id"
// @Param game_id path string true "Game id"
// @Param request body UpsertPreferenceRequestDTO true "New preference state"
// @Success 200 "Preference saved"
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/participants/{participant_id}/preferences/{game_id} [put]
func (c *Controller) upsert(ctx *gin.Context) {
	id := model.ParticipantID(ctx.Param("participant_id"))

	gameID, err := uuid.Parse(ctx.Param("game_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad game id"})
		return
	}

	var req UpsertPreferenceRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	err = c.uc.Upsert(ctx, id, gameID, model.PreferenceUpdate{
		Rank:       model.RankOf(req.Rank),
		IsTopPick:  req.IsTopPick,
		IsDisliked: req.IsDisliked,
	})
	if err != nil {
		c.logger.Error("failed to upsert preference", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	ctx.Status(http.StatusOK)
}

// @Summary Clear preference
// @Tags Preferences
// @Param session_code path string true "Session code" example("123456")
// @Param participant_id path string true "Participant id"
// @Param game_id path string true "Game id"
// @Success 204 "Preference cleared"
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/participants/{participant_id}/preferences/{game_id} [delete]
func (c *Controller) clear(ctx *gin.Context) {
	id := model.ParticipantID(ctx.Param("participant_id"))

	gameID, err := uuid.Parse(ctx.Param("game_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad game id"})
		return
	}

	if err := c.uc.Clear(ctx, id, gameID); err != nil {
		c.logger.Error("failed to clear preference", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// @Summary Reorder preferences
// @Description Assign ranks 1..n from a drag-and-drop ordering in one transaction
// @Tags Preferences
// @Accept json
// @Param session_code path string true "Session code" example("123456")
// @Param participant_id path string true "Participant id"
// @Param request body ReorderRequestDTO true "Ordered game ids"
// @Success 200 "Ranks assigned"
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/participants/{participant_id}/preferences/reorder [post]
func (c *Controller) reorder(ctx *gin.Context) {
	id := model.ParticipantID(ctx.Param("participant_id"))

	var req ReorderRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	ordered, err := parseIDs(req.OrderedGameIDs)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad game id"})
		return
	}
	eligible, err := parseIDs(req.EligibleGameIDs)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad game id"})
		return
	}

	if err := c.uc.Reorder(ctx, id, ordered, eligible); err != nil {
		c.logger.Error("failed to reorder preferences", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	ctx.Status(http.StatusOK)
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

var errParticipantUnknown = errors.New("unknown participant")

// findParticipant resolves a path participant id against the session's
// participant list.
func findParticipant(participants []model.Participant, id model.ParticipantID) (model.Participant, error) {
	for _, p := range participants {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Participant{}, errParticipantUnknown
}
