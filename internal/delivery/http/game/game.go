package http_game

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/boardswap/core/internal/delivery/http/common"
	infra_postgres_game "github.com/boardswap/core/internal/infra/postgres/game"
	"github.com/boardswap/core/internal/model"
)

// Controller is the catalog ingest surface. The library UI pushes game
// metadata here so recommendation calls can resolve titles.
type Controller struct {
	catalog *infra_postgres_game.Driver
	logger  *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(catalog *infra_postgres_game.Driver, opts ...ControllerOption) *Controller {
	c := &Controller{
		catalog: catalog,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("games", c.store)
	router.POST("games/resolve", c.resolve)
}

// GameDTO
type GameDTO struct {
	ID              string  `json:"id" binding:"required"`
	Title           string  `json:"title" binding:"required"`
	MinPlayers      int     `json:"min_players"`
	MaxPlayers      int     `json:"max_players"`
	PlaytimeMinutes int     `json:"playtime_minutes"`
	MinAge          int     `json:"min_age"`
	Complexity      float64 `json:"complexity"`
	Rating          float64 `json:"rating"`
}

// ResolveRequestDTO
type ResolveRequestDTO struct {
	GameIDs []string `json:"game_ids" binding:"required"`
}

// @Summary Store game metadata
// @Description Upserts one catalog entry
// @Tags Games
// @Accept json
// @Param request body GameDTO true "Game metadata"
// @Success 200 "Game stored"
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /games [post]
func (c *Controller) store(ctx *gin.Context) {
	var req GameDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad game id"})
		return
	}

	err = c.catalog.Store(ctx, model.GameMeta{
		ID:              id,
		Title:           req.Title,
		MinPlayers:      req.MinPlayers,
		MaxPlayers:      req.MaxPlayers,
		PlaytimeMinutes: req.PlaytimeMinutes,
		MinAge:          req.MinAge,
		Complexity:      req.Complexity,
		Rating:          req.Rating,
	})
	if err != nil {
		c.logger.Error("failed to store game", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	ctx.Status(http.StatusOK)
}

// @Summary Resolve game metadata
// @Description Returns catalog entries for the given ids in input order, dropping unknown ids
// @Tags Games
// @Accept json
// @Produce json
// @Param request body ResolveRequestDTO true "Game ids"
// @Success 200 {array} GameDTO
// @Failure 400 {object} http_common.ErrorResponse "Bad request"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Router /games/resolve [post]
func (c *Controller) resolve(ctx *gin.Context) {
	var req ResolveRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad request"})
		return
	}

	ids := make([]uuid.UUID, 0, len(req.GameIDs))
	for _, s := range req.GameIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "bad game id"})
			return
		}
		ids = append(ids, id)
	}

	games, err := c.catalog.GamesByIDs(ctx, ids)
	if err != nil {
		c.logger.Error("failed to resolve games", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	resp := make([]GameDTO, 0, len(games))
	for _, g := range games {
		resp = append(resp, GameDTO{
			ID:              g.ID.String(),
			Title:           g.Title,
			MinPlayers:      g.MinPlayers,
			MaxPlayers:      g.MaxPlayers,
			PlaytimeMinutes: g.PlaytimeMinutes,
			MinAge:          g.MinAge,
			Complexity:      g.Complexity,
			Rating:          g.Rating,
		})
	}
	ctx.JSON(http.StatusOK, resp)
}
