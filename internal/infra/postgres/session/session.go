package infra_postgres_session

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/boardswap/core/internal/model"
	usecase_session "github.com/boardswap/core/internal/usecase/session"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type sessionDTO struct {
	ID     uuid.UUID `db:"id"`
	Code   string    `db:"code"`
	Status string    `db:"status"`
}

type participantDTO struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Role   string `db:"role"`
	Origin string `db:"origin"`
}

func (d *Driver) CreateAndBook(ctx context.Context, session model.Session, host model.Participant) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insertSession := `
		INSERT INTO sessions (id, code, status, updated_at)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := tx.ExecContext(ctx, insertSession, session.ID, session.PublicCode, session.Status); err != nil {
		if strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key") {
			return usecase_session.ErrCodeConflict
		}
		return err
	}

	insertHost := `
		INSERT INTO participants (id, session_id, name, role, origin, ready)
		VALUES ($1, $2, $3, $4, $5, false)
	`

	if _, err := tx.ExecContext(ctx, insertHost,
		string(host.ID), session.ID, host.Name, string(host.Role), string(host.Origin)); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *Driver) AddParticipant(ctx context.Context, code string, p model.Participant) error {
	sessionID, err := d.UUIDByCode(ctx, code)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO participants (id, session_id, name, role, origin, ready)
		VALUES ($1, $2, $3, $4, $5, false)
		ON CONFLICT (id, session_id)
		DO UPDATE SET name = EXCLUDED.name
	`

	_, err = d.db.ExecContext(ctx, query,
		string(p.ID), sessionID, p.Name, string(p.Role), string(p.Origin))
	return err
}

func (d *Driver) RemoveParticipant(ctx context.Context, code string, id model.ParticipantID) error {
	sessionID, err := d.UUIDByCode(ctx, code)
	if err != nil {
		return err
	}

	query := `
		DELETE FROM participants
		WHERE id = $1 AND session_id = $2
	`

	result, err := d.db.ExecContext(ctx, query, string(id), sessionID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_session.ErrResourceNotFound
	}
	return nil
}

func (d *Driver) Participants(ctx context.Context, code string) ([]model.Participant, error) {
	sessionID, err := d.UUIDByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, role, origin
		FROM participants
		WHERE session_id = $1
		ORDER BY joined_at
	`

	var dtos []participantDTO
	if err := d.db.SelectContext(ctx, &dtos, query, sessionID); err != nil {
		return nil, err
	}

	participants := make([]model.Participant, 0, len(dtos))
	for _, dto := range dtos {
		participants = append(participants, model.Participant{
			ID:     model.ParticipantID(dto.ID),
			Name:   dto.Name,
			Role:   model.Role(dto.Role),
			Origin: model.Origin(dto.Origin),
		})
	}
	return participants, nil
}

func (d *Driver) IsHost(ctx context.Context, code string, id model.ParticipantID) (bool, error) {
	query := `
		SELECT p.role
		FROM participants p
		JOIN sessions s ON p.session_id = s.id
		WHERE s.code = $1 AND p.id = $2
	`

	var role string
	err := d.db.GetContext(ctx, &role, query, code, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return false, usecase_session.ErrResourceNotFound
		}
		return false, err
	}

	return model.Role(role) == model.RoleHost, nil
}

func (d *Driver) TransferHost(ctx context.Context, code string, from, to model.ParticipantID) error {
	sessionID, err := d.UUIDByCode(ctx, code)
	if err != nil {
		return err
	}

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	demote := `
		UPDATE participants SET role = $1
		WHERE id = $2 AND session_id = $3 AND role = $4
	`
	result, err := tx.ExecContext(ctx, demote,
		string(model.RoleGuest), string(from), sessionID, string(model.RoleHost))
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return usecase_session.ErrResourceNotFound
	}

	promoteQuery := `
		UPDATE participants SET role = $1
		WHERE id = $2 AND session_id = $3
	`
	result, err = tx.ExecContext(ctx, promoteQuery,
		string(model.RoleHost), string(to), sessionID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return usecase_session.ErrResourceNotFound
	}

	return tx.Commit()
}

func (d *Driver) DeleteByCode(ctx context.Context, code string) error {
	query := `
		DELETE FROM sessions
		WHERE code = $1
	`

	result, err := d.db.ExecContext(ctx, query, code)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_session.ErrResourceNotFound
	}
	return nil
}

func (d *Driver) StatusByCode(ctx context.Context, code string) (string, error) {
	var session sessionDTO

	query := `
		SELECT status
		FROM sessions
		WHERE code = $1
	`

	err := d.db.GetContext(ctx, &session, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", usecase_session.ErrResourceNotFound
		}
		return "", err
	}

	return session.Status, nil
}

func (d *Driver) SetStatusByCode(ctx context.Context, code string, status string) error {
	query := `
		UPDATE sessions
		SET status = $1, updated_at = NOW()
		WHERE code = $2
	`

	result, err := d.db.ExecContext(ctx, query, status, code)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_session.ErrResourceNotFound
	}
	return nil
}

func (d *Driver) UUIDByCode(ctx context.Context, code string) (uuid.UUID, error) {
	var session sessionDTO

	query := `SELECT id FROM sessions WHERE code = $1`

	err := d.db.GetContext(ctx, &session, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, usecase_session.ErrResourceNotFound
		}
		return uuid.Nil, err
	}

	return session.ID, nil
}

func (d *Driver) CleanupOrphanSessions(ctx context.Context, lobbyDeadline, pickingDeadline time.Duration) error {
	query := `
		DELETE FROM sessions
		WHERE (status = $1 AND updated_at < $2)
		   OR (status = $3 AND updated_at < $4)
	`

	now := time.Now()
	_, err := d.db.ExecContext(ctx, query,
		model.StatusLobby, now.Add(-lobbyDeadline),
		model.StatusPicking, now.Add(-pickingDeadline))
	return err
}

// ReadyFlag and SetReadyFlag back the guest ready state machine's durable
// flag. Keyed by session so a reload does not re-prompt a ready guest.
func (d *Driver) ReadyFlag(ctx context.Context, sessionID model.SessionID, id model.ParticipantID) (bool, error) {
	query := `
		SELECT p.ready
		FROM participants p
		JOIN sessions s ON p.session_id = s.id
		WHERE s.code = $1 AND p.id = $2
	`

	var ready bool
	err := d.db.GetContext(ctx, &ready, query, string(sessionID), string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return ready, nil
}

func (d *Driver) SetReadyFlag(ctx context.Context, sessionID model.SessionID, id model.ParticipantID, ready bool) error {
	query := `
		UPDATE participants p
		SET ready = $1
		FROM sessions s
		WHERE p.session_id = s.id AND s.code = $2 AND p.id = $3
	`

	_, err := d.db.ExecContext(ctx, query, ready, string(sessionID), string(id))
	return err
}
