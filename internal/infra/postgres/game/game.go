package infra_postgres_game

import (
	"context"

	"github.com/boardswap/core/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type gameDB struct {
	ID              uuid.UUID `db:"id"`
	Title           string    `db:"title"`
	MinPlayers      int       `db:"min_players"`
	MaxPlayers      int       `db:"max_players"`
	PlaytimeMinutes int       `db:"playtime_minutes"`
	MinAge          int       `db:"min_age"`
	Complexity      float64   `db:"complexity"`
	Rating          float64   `db:"rating"`
}

func (g *gameDB) ToDomain() model.GameMeta {
	return model.GameMeta{
		ID:              g.ID,
		Title:           g.Title,
		MinPlayers:      g.MinPlayers,
		MaxPlayers:      g.MaxPlayers,
		PlaytimeMinutes: g.PlaytimeMinutes,
		MinAge:          g.MinAge,
		Complexity:      g.Complexity,
		Rating:          g.Rating,
	}
}

func (d *Driver) Store(ctx context.Context, gm model.GameMeta) error {
	query := `
		INSERT INTO games (id, title, min_players, max_players, playtime_minutes, min_age, complexity, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			min_players = EXCLUDED.min_players,
			max_players = EXCLUDED.max_players,
			playtime_minutes = EXCLUDED.playtime_minutes,
			min_age = EXCLUDED.min_age,
			complexity = EXCLUDED.complexity,
			rating = EXCLUDED.rating
	`

	_, err := d.db.ExecContext(ctx, query,
		gm.ID, gm.Title, gm.MinPlayers, gm.MaxPlayers, gm.PlaytimeMinutes, gm.MinAge, gm.Complexity, gm.Rating)
	return err
}

// GamesByIDs resolves metadata for the given ids, preserving the input
// order. Ids missing from the catalog are dropped silently.
func (d *Driver) GamesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.GameMeta, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, title, min_players, max_players, playtime_minutes, min_age, complexity, rating
		FROM games
		WHERE id = ANY($1)
	`

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	var dtos []gameDB
	if err := d.db.SelectContext(ctx, &dtos, query, pq.Array(raw)); err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]model.GameMeta, len(dtos))
	for _, dto := range dtos {
		byID[dto.ID] = dto.ToDomain()
	}

	games := make([]model.GameMeta, 0, len(ids))
	for _, id := range ids {
		if g, ok := byID[id]; ok {
			games = append(games, g)
		}
	}
	return games, nil
}
