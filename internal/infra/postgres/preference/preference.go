package infra_postgres_preference

import (
	"context"

	"github.com/boardswap/core/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

func (d *Driver) Preferences(ctx context.Context, participantID model.ParticipantID) ([]model.Preference, error) {
	query := `
		SELECT participant_id, game_id, rank, is_top_pick, is_disliked, updated_at
		FROM preferences
		WHERE participant_id = $1
		ORDER BY updated_at
	`

	var dtos []preferenceDB
	if err := d.db.SelectContext(ctx, &dtos, query, string(participantID)); err != nil {
		return nil, err
	}

	prefs := make([]model.Preference, 0, len(dtos))
	for _, dto := range dtos {
		prefs = append(prefs, dto.ToDomain())
	}
	return prefs, nil
}

func (d *Driver) Upsert(
	ctx context.Context,
	participantID model.ParticipantID,
	gameID uuid.UUID,
	update model.PreferenceUpdate,
) error {
	query := `
		INSERT INTO preferences (participant_id, game_id, rank, is_top_pick, is_disliked, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (participant_id, game_id) DO UPDATE SET
			rank = EXCLUDED.rank,
			is_top_pick = EXCLUDED.is_top_pick,
			is_disliked = EXCLUDED.is_disliked,
			updated_at = EXCLUDED.updated_at
	`

	_, err := d.db.ExecContext(ctx, query,
		string(participantID), gameID, update.Rank.Value(), update.IsTopPick, update.IsDisliked)
	return err
}

func (d *Driver) Delete(ctx context.Context, participantID model.ParticipantID, gameID uuid.UUID) error {
	query := `
		DELETE FROM preferences
		WHERE participant_id = $1 AND game_id = $2
	`

	_, err := d.db.ExecContext(ctx, query, string(participantID), gameID)
	return err
}

// Reorder assigns ranks 1..n in one transaction and clears the top-pick
// and dislike flags on every reordered entry.
func (d *Driver) Reorder(
	ctx context.Context,
	participantID model.ParticipantID,
	orderedGameIDs []uuid.UUID,
) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO preferences (participant_id, game_id, rank, is_top_pick, is_disliked, updated_at)
		VALUES ($1, $2, $3, false, false, NOW())
		ON CONFLICT (participant_id, game_id) DO UPDATE SET
			rank = EXCLUDED.rank,
			is_top_pick = false,
			is_disliked = false,
			updated_at = EXCLUDED.updated_at
	`

	for i, gameID := range orderedGameIDs {
		if _, err := tx.ExecContext(ctx, query, string(participantID), gameID, i+1); err != nil {
			return err
		}
	}

	return tx.Commit()
}
