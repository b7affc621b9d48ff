package http_recommend

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/boardswap/core/internal/delivery/http/common"
	"github.com/boardswap/core/internal/model"
	usecase_recommend "github.com/boardswap/core/internal/usecase/recommend"
	usecase_session "github.com/boardswap/core/internal/usecase/session"
)

type Controller struct {
	uc       *usecase_recommend.Usecase
	sessions *usecase_session.Usecase
	logger   *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_recommend.Usecase,
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
	router.POST("sessions/:session_code/recommendation", c.recommend)
}

// RecommendationRequestDTO
type RecommendationRequestDTO struct {
	EligibleGameIDs []string `json:"eligible_game_ids" binding:"required"`
	PromotedGameID  string   `json:"promoted_game_id,omitempty"`
}

// ScoredGameDTO
type ScoredGameDTO struct {
	GameID string  `json:"game_id"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
}

// VetoedGameDTO
type VetoedGameDTO struct {
	GameID   string   `json:"game_id"`
	Title    string   `json:"title"`
	VetoedBy []string `json:"vetoed_by"`
}

// RecommendationResponseDTO
type RecommendationResponseDTO struct {
	TopPick      *ScoredGameDTO  `json:"top_pick,omitempty"`
	Alternatives []ScoredGameDTO `json:"alternatives"`
	Vetoed       []VetoedGameDTO `json:"vetoed"`
}

// @Summary Group recommendation
// @Description Vetoes first, then Normalized Borda Count over the surviving games. A missing top_pick with a non-empty vetoed list means no game survived
// @Tags Recommendation
// @Accept json
// @Produce json
// @Param session_code path string true "Session code" example("123456")
// @Param request body RecommendationRequestDTO true "Eligible games and optional promotion"
// @Success 200 {object} RecommendationResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 404 {object} http_common.ErrorResponse "Session not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /sessions/{session_code}/recommendation [post]
func (c *Controller) recommend(ctx *gin.Context) {
	code := ctx.Param("session_code")

	var req RecommendationRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	eligible := make([]uuid.UUID, 0, len(req.EligibleGameIDs))
	for _, s := range req.EligibleGameIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad game id"})
			return
		}
		eligible = append(eligible, id)
	}

	promoted := uuid.Nil
	if req.PromotedGameID != "" {
		var err error
		promoted, err = uuid.Parse(req.PromotedGameID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad game id"})
			return
		}
	}

	participants, err := c.sessions.Participants(ctx, code)
	if err != nil {
		if errors.Is(err, usecase_session.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
			return
		}
		c.logger.Error("failed to resolve participants", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	result, err := c.uc.Recommend(ctx, model.SessionID(code), participants, eligible, promoted)
	if err != nil {
		c.logger.Error("failed to recommend", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	ctx.JSON(http.StatusOK, toResponse(result))
}

func toResponse(result model.RecommendationResult) RecommendationResponseDTO {
	resp := RecommendationResponseDTO{
		Alternatives: make([]ScoredGameDTO, 0, len(result.Alternatives)),
		Vetoed:       make([]VetoedGameDTO, 0, len(result.Vetoed)),
	}
	if result.TopPick != nil {
		resp.TopPick = &ScoredGameDTO{
			GameID: result.TopPick.Game.ID.String(),
			Title:  result.TopPick.Game.Title,
			Score:  result.TopPick.Score,
		}
	}
	for _, alt := range result.Alternatives {
		resp.Alternatives = append(resp.Alternatives, ScoredGameDTO{
			GameID: alt.Game.ID.String(),
			Title:  alt.Game.Title,
			Score:  alt.Score,
		})
	}
	for _, v := range result.Vetoed {
		by := make([]string, 0, len(v.VetoedBy))
		for _, id := range v.VetoedBy {
			by = append(by, string(id))
		}
		resp.Vetoed = append(resp.Vetoed, VetoedGameDTO{
			GameID: v.Game.ID.String(),
			Title:  v.Game.Title,
			VetoedBy: by,
		})
	}
	return resp
}
