package infra_postgres_snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/boardswap/core/internal/model"
	usecase_snapshot "github.com/boardswap/core/internal/usecase/snapshot"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// legacyKeyPrefix is how the old flat key-value writer namespaced
// per-session wizard blobs.
const legacyKeyPrefix = "wizard_state:"

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type snapshotDB struct {
	SessionID string    `db:"session_id"`
	Payload   []byte    `db:"payload"`
	SavedAt   time.Time `db:"saved_at"`
}

type payloadJSON struct {
	Usernames       []string         `json:"usernames"`
	SessionGameIDs  []uuid.UUID      `json:"session_game_ids"`
	ExcludedGameIDs []uuid.UUID      `json:"excluded_game_ids"`
	Filters         filterJSON       `json:"filters"`
	Preferences     []preferenceJSON `json:"preferences"`
	ActiveStep      int              `json:"active_step"`
}

type filterJSON struct {
	GameCount  int `json:"game_count"`
	PlayerMin  int `json:"player_min"`
	PlayerMax  int `json:"player_max"`
	TimeMinMin int `json:"time_min_min"`
	TimeMaxMin int `json:"time_max_min"`
}

type preferenceJSON struct {
	ParticipantID string    `json:"participant_id"`
	GameID        uuid.UUID `json:"game_id"`
	Rank          int       `json:"rank"`
	IsTopPick     bool      `json:"is_top_pick"`
	IsDisliked    bool      `json:"is_disliked"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (d *Driver) Save(ctx context.Context, sessionID model.SessionID, snap model.WizardSnapshot) error {
	payload, err := json.Marshal(toPayload(snap))
	if err != nil {
		return err
	}

	query := `
		INSERT INTO wizard_snapshots (session_id, payload, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			saved_at = EXCLUDED.saved_at
	`

	_, err = d.db.ExecContext(ctx, query, string(sessionID), payload, snap.SavedAt)
	return err
}

func (d *Driver) Load(ctx context.Context, sessionID model.SessionID) (model.WizardSnapshot, error) {
	var dto snapshotDB

	query := `
		SELECT session_id, payload, saved_at
		FROM wizard_snapshots
		WHERE session_id = $1
	`

	err := d.db.GetContext(ctx, &dto, query, string(sessionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.WizardSnapshot{}, usecase_snapshot.ErrResourceNotFound
		}
		return model.WizardSnapshot{}, err
	}

	var payload payloadJSON
	if err := json.Unmarshal(dto.Payload, &payload); err != nil {
		return model.WizardSnapshot{}, err
	}

	snap := fromPayload(payload)
	snap.SavedAt = dto.SavedAt
	return snap, nil
}

func (d *Driver) Delete(ctx context.Context, sessionID model.SessionID) error {
	query := `
		DELETE FROM wizard_snapshots
		WHERE session_id = $1
	`

	result, err := d.db.ExecContext(ctx, query, string(sessionID))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_snapshot.ErrResourceNotFound
	}
	return nil
}

// DrainLegacy moves flat-keyed wizard blobs into wizard_snapshots and
// removes the legacy rows. Structured rows win on conflict. Safe to run
// repeatedly: a second pass finds nothing to move.
func (d *Driver) DrainLegacy(ctx context.Context) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	type legacyRow struct {
		Key     string `db:"key"`
		Payload []byte `db:"payload"`
	}

	var rows []legacyRow
	selectLegacy := `
		SELECT key, payload
		FROM legacy_kv
		WHERE key LIKE $1
		FOR UPDATE
	`
	if err := tx.SelectContext(ctx, &rows, selectLegacy, legacyKeyPrefix+"%"); err != nil {
		return err
	}

	insert := `
		INSERT INTO wizard_snapshots (session_id, payload, saved_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_id) DO NOTHING
	`
	deleteLegacy := `DELETE FROM legacy_kv WHERE key = $1`

	for _, row := range rows {
		sessionID := strings.TrimPrefix(row.Key, legacyKeyPrefix)
		if sessionID == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, insert, sessionID, row.Payload); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, deleteLegacy, row.Key); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func toPayload(snap model.WizardSnapshot) payloadJSON {
	prefs := make([]preferenceJSON, 0, len(snap.Preferences))
	for _, p := range snap.Preferences {
		prefs = append(prefs, preferenceJSON{
			ParticipantID: string(p.ParticipantID),
			GameID:        p.GameID,
			Rank:          p.Rank.Value(),
			IsTopPick:     p.IsTopPick,
			IsDisliked:    p.IsDisliked,
			UpdatedAt:     p.UpdatedAt,
		})
	}

	return payloadJSON{
		Usernames:       snap.Usernames,
		SessionGameIDs:  snap.SessionGameIDs,
		ExcludedGameIDs: snap.ExcludedGameIDs,
		Filters: filterJSON{
			GameCount:  snap.Filters.GameCount,
			PlayerMin:  snap.Filters.PlayerMin,
			PlayerMax:  snap.Filters.PlayerMax,
			TimeMinMin: snap.Filters.TimeMinMin,
			TimeMaxMin: snap.Filters.TimeMaxMin,
		},
		Preferences: prefs,
		ActiveStep:  snap.ActiveStep,
	}
}

func fromPayload(payload payloadJSON) model.WizardSnapshot {
	prefs := make([]model.Preference, 0, len(payload.Preferences))
	for _, p := range payload.Preferences {
		prefs = append(prefs, model.Preference{
			ParticipantID: model.ParticipantID(p.ParticipantID),
			GameID:        p.GameID,
			Rank:          model.NormalizeLegacyRank(p.Rank),
			IsTopPick:     p.IsTopPick,
			IsDisliked:    p.IsDisliked,
			UpdatedAt:     p.UpdatedAt,
		})
	}

	return model.WizardSnapshot{
		Usernames:       payload.Usernames,
		SessionGameIDs:  payload.SessionGameIDs,
		ExcludedGameIDs: payload.ExcludedGameIDs,
		Filters: model.FilterSummary{
			GameCount:  payload.Filters.GameCount,
			PlayerMin:  payload.Filters.PlayerMin,
			PlayerMax:  payload.Filters.PlayerMax,
			TimeMinMin: payload.Filters.TimeMinMin,
			TimeMaxMin: payload.Filters.TimeMaxMin,
		},
		Preferences: prefs,
		ActiveStep:  payload.ActiveStep,
	}
}
