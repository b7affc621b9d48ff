package http_snapshot

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/boardswap/core/internal/delivery/http/common"
	"github.com/boardswap/core/internal/model"
	usecase_snapshot "github.com/boardswap/core/internal/usecase/snapshot"
)

type Controller struct {
	uc     *usecase_snapshot.Usecase
	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_snapshot.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	snap := router.Group("sessions/:session_code/snapshot")
	snap.GET("", c.load)
	snap.PUT("", c.save)
	snap.DELETE("", c.clear)
	snap.POST("/switch", c.switchSession)
}

// FilterSummaryDTO
type FilterSummaryDTO struct {
	GameCount  int `json:"game_count"`
	PlayerMin  int `json:"player_min"`
	PlayerMax  int `json:"player_max"`
	TimeMinMin int `json:"time_min_minutes"`
	TimeMaxMin int `json:"time_max_minutes"`
}

// SnapshotPreferenceDTO
type SnapshotPreferenceDTO struct {
	GameID     string `json:"game_id"`
	Rank       int    `json:"rank"`
	IsTopPick  bool   `json:"is_top_pick"`
	IsDisliked bool   `json:"is_disliked"`
}

// WizardSnapshotDTO
type WizardSnapshotDTO struct {
	Usernames       []string                `json:"usernames"`
	SessionGameIDs  []string                `json:"session_game_ids"`
	ExcludedGameIDs []string                `json:"excluded_game_ids"`
	Filters         FilterSummaryDTO        `json:"filters"`
	Preferences     []SnapshotPreferenceDTO `json:"preferences"`
	ActiveStep      int                     `json:"active_step"`
	SavedAt         time.Time               `json:"saved_at,omitempty"`
}

// SwitchRequestDTO
type SwitchRequestDTO struct {
	To        string             `json:"to" binding:"required"`
	FromState *WizardSnapshotDTO `json:"from_state,omitempty"`
}

// @Summary Load wizard snapshot
// @Description Returns 204 when the session has no snapshot yet
// @Tags Snapshots
// @Produce json
// @Param session_code path string true "Session code" example("123456")
// @Success 200 {object} WizardSnapshotDTO
// @Success 204 "No snapshot"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/snapshot [get]
func (c *Controller) load(ctx *gin.Context) {
	sessionID := model.SessionID(ctx.Param("session_code"))

	snap, err := c.uc.Load(ctx, sessionID)
	if err != nil {
		c.logger.Error("failed to load snapshot", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}
	if snap == nil {
		ctx.Status(http.StatusNoContent)
		return
	}

	ctx.JSON(http.StatusOK, toDTO(*snap))
}

// @Summary Save wizard snapshot
// @Description Replaces the session's snapshot wholesale; last writer wins
// @Tags Snapshots
// @Accept json
// @Param session_code path string true "Session code" example("123456")
// @Param request body WizardSnapshotDTO true "Snapshot"
// @Success 200 "Snapshot saved"
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/snapshot [put]
func (c *Controller) save(ctx *gin.Context) {
	sessionID := model.SessionID(ctx.Param("session_code"))

	var req WizardSnapshotDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	snap, err := toDomain(req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad game id"})
		return
	}

	if err := c.uc.Save(ctx, sessionID, snap); err != nil {
		c.logger.Error("failed to save snapshot", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	ctx.Status(http.StatusOK)
}

// @Summary Clear wizard snapshot
// @Tags Snapshots
// @Param session_code path string true "Session code" example("123456")
// @Success 204 "Snapshot cleared"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/snapshot [delete]
func (c *Controller) clear(ctx *gin.Context) {
	sessionID := model.SessionID(ctx.Param("session_code"))

	if err := c.uc.Clear(ctx, sessionID); err != nil {
		c.logger.Error("failed to clear snapshot", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// @Summary Switch sessions
// @Description Saves the departing session's state, then loads the target session's snapshot. 204 when the target has none
// @Tags Snapshots
// @Accept json
// @Produce json
// @Param session_code path string true "Departing session code, empty context uses target only" example("123456")
// @Param request body SwitchRequestDTO true "Target session and departing state"
// @Success 200 {object} WizardSnapshotDTO
// @Success 204 "Target has no snapshot"
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/snapshot/switch [post]
func (c *Controller) switchSession(ctx *gin.Context) {
	from := model.SessionID(ctx.Param("session_code"))

	var req SwitchRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	var fromState model.WizardSnapshot
	if req.FromState != nil {
		var err error
		fromState, err = toDomain(*req.FromState)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad game id"})
			return
		}
	} else {
		from = model.EmptySessionID
	}

	snap, err := c.uc.Switch(ctx, from, fromState, model.SessionID(req.To))
	if err != nil {
		c.logger.Error("failed to switch sessions", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}
	if snap == nil {
		ctx.Status(http.StatusNoContent)
		return
	}

	ctx.JSON(http.StatusOK, toDTO(*snap))
}

func toDTO(snap model.WizardSnapshot) WizardSnapshotDTO {
	dto := WizardSnapshotDTO{
		Usernames:       snap.Usernames,
		SessionGameIDs:  idsToStrings(snap.SessionGameIDs),
		ExcludedGameIDs: idsToStrings(snap.ExcludedGameIDs),
		Filters: FilterSummaryDTO{
			GameCount:  snap.Filters.GameCount,
			PlayerMin:  snap.Filters.PlayerMin,
			PlayerMax:  snap.Filters.PlayerMax,
			TimeMinMin: snap.Filters.TimeMinMin,
			TimeMaxMin: snap.Filters.TimeMaxMin,
		},
		ActiveStep: snap.ActiveStep,
		SavedAt:    snap.SavedAt,
	}
	dto.Preferences = make([]SnapshotPreferenceDTO, 0, len(snap.Preferences))
	for _, p := range snap.Preferences {
		dto.Preferences = append(dto.Preferences, SnapshotPreferenceDTO{
			GameID:     p.GameID.String(),
			Rank:       p.Rank.Value(),
			IsTopPick:  p.IsTopPick,
			IsDisliked: p.IsDisliked,
		})
	}
	return dto
}

func toDomain(dto WizardSnapshotDTO) (model.WizardSnapshot, error) {
	sessionGames, err := stringsToIDs(dto.SessionGameIDs)
	if err != nil {
		return model.WizardSnapshot{}, err
	}
	excluded, err := stringsToIDs(dto.ExcludedGameIDs)
	if err != nil {
		return model.WizardSnapshot{}, err
	}

	snap := model.WizardSnapshot{
		Usernames:       dto.Usernames,
		SessionGameIDs:  sessionGames,
		ExcludedGameIDs: excluded,
		Filters: model.FilterSummary{
			GameCount:  dto.Filters.GameCount,
			PlayerMin:  dto.Filters.PlayerMin,
			PlayerMax:  dto.Filters.PlayerMax,
			TimeMinMin: dto.Filters.TimeMinMin,
			TimeMaxMin: dto.Filters.TimeMaxMin,
		},
		ActiveStep: dto.ActiveStep,
	}
	for _, p := range dto.Preferences {
		gameID, err := uuid.Parse(p.GameID)
		if err != nil {
			return model.WizardSnapshot{}, err
		}
		snap.Preferences = append(snap.Preferences, model.Preference{
			GameID:     gameID,
			Rank:       model.NormalizeLegacyRank(p.Rank),
			IsTopPick:  p.IsTopPick,
			IsDisliked: p.IsDisliked,
		})
	}
	return snap, nil
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func stringsToIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
