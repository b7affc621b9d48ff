package usecase_session

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/boardswap/core/internal/model"
	"github.com/google/uuid"
)

var (
	ErrCodeConflict        = errors.New("code conflict")
	ErrSessionsUnavailable = errors.New("no available sessions")
	ErrInternal            = errors.New("internal error")
	ErrResourceNotFound    = errors.New("no such resource")
	ErrNotHost             = errors.New("not the session host")
)

//go:generate mockery --name=SessionRepository --output=./mocks/repository --filename=repository.go
type SessionRepository interface {
	CreateAndBook(ctx context.Context, session model.Session, host model.Participant) error
	AddParticipant(ctx context.Context, code string, p model.Participant) error
	RemoveParticipant(ctx context.Context, code string, id model.ParticipantID) error
	Participants(ctx context.Context, code string) ([]model.Participant, error)
	IsHost(ctx context.Context, code string, id model.ParticipantID) (bool, error)
	TransferHost(ctx context.Context, code string, from, to model.ParticipantID) error
	DeleteByCode(ctx context.Context, code string) error
	StatusByCode(ctx context.Context, code string) (string, error)
	SetStatusByCode(ctx context.Context, code string, status string) error
	UUIDByCode(ctx context.Context, code string) (uuid.UUID, error)

	CleanupOrphanSessions(ctx context.Context, lobbyDeadline, pickingDeadline time.Duration) error
}

//go:generate mockery --name=Coordination --output=./mocks/coordination --filename=coordination.go
type Coordination interface {
	RegisterSession(ctx context.Context, sessionID model.SessionID, hostName string, mode model.ShareMode) error
	ParticipantPreview(ctx context.Context, sessionID model.SessionID) (model.ParticipantPreview, error)
	SetSelectedGame(ctx context.Context, sessionID model.SessionID, game model.GameSummary) error
	DropSession(ctx context.Context, sessionID model.SessionID) error
}

type Usecase struct {
	repo         SessionRepository
	coordination Coordination

	// Periodic stuff runs on every Nth open. Opens arrive from
	// concurrent handlers, hence the atomic.
	cleanupPeriod int64
	opensCount    atomic.Int64
}

func New(
	repo SessionRepository,
	coordination Coordination,
	cleanup int,
) *Usecase {
	if cleanup <= 0 {
		cleanup = 20 /* default */
	}

	return &Usecase{
		repo:          repo,
		coordination:  coordination,
		cleanupPeriod: int64(cleanup),
	}
}

// Open books a fresh session and registers its shared document. The
// returned host id identifies the host participant; host authorization
// is a separate token issued by the delivery layer.
func (u *Usecase) Open(ctx context.Context, hostName string, mode model.ShareMode) (sessionCode string, hostID string, err error) {
	host := model.ParticipantID(uuid.New().String())

	if u.opensCount.Add(1)%u.cleanupPeriod == 0 {
		if err := u.repo.CleanupOrphanSessions(ctx, time.Minute*5 /* lobbies */, time.Minute*30 /* picking */); err != nil {
			return "", "", errors.Join(ErrInternal, err)
		}
	}

	sessionCode, err = u.createSessionLobby(ctx, host, hostName)
	if err != nil {
		return "", "", err
	}

	if err := u.coordination.RegisterSession(ctx, model.SessionID(sessionCode), hostName, mode); err != nil {
		return "", "", errors.Join(ErrInternal, err)
	}

	return sessionCode, string(host), nil
}

// Codes can conflict. Retrying.
func (u *Usecase) createSessionLobby(ctx context.Context, hostID model.ParticipantID, hostName string) (string, error) {
	var retries = 3
	for retries > 0 {
		code := u.buildSessionCode()
		err := u.repo.CreateAndBook(ctx, model.Session{
			ID:         uuid.New(),
			PublicCode: code,
			Status:     model.StatusLobby,
		}, model.Participant{
			ID:     hostID,
			Name:   hostName,
			Role:   model.RoleHost,
			Origin: model.OriginLocal,
		})
		if err != nil {
			if errors.Is(err, ErrCodeConflict) {
				retries--
			} else {
				return "", errors.Join(ErrInternal, err)
			}
		} else {
			return code, nil
		}
	}
	return "", ErrSessionsUnavailable
}

func (u *Usecase) buildSessionCode() string {
	const codeLen = 6
	var builder strings.Builder
	builder.Grow(codeLen)

	for i := 0; i < codeLen; i++ {
		builder.WriteByte(byte(rand.Intn(10)) + '0')
	}

	return builder.String()
}

// Join claims a named slot. Participants joining through the coordination
// service are remote from the host device's point of view.
func (u *Usecase) Join(ctx context.Context, code string, name string, origin model.Origin) (model.Participant, error) {
	p := model.Participant{
		ID:     model.ParticipantID(name),
		Name:   name,
		Role:   model.RoleGuest,
		Origin: origin,
	}
	if err := u.repo.AddParticipant(ctx, code, p); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Participant{}, ErrResourceNotFound
		}
		return model.Participant{}, errors.Join(ErrInternal, err)
	}
	return p, nil
}

func (u *Usecase) Leave(ctx context.Context, code string, id model.ParticipantID) error {
	if err := u.repo.RemoveParticipant(ctx, code, id); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) Participants(ctx context.Context, code string) ([]model.Participant, error) {
	participants, err := u.repo.Participants(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}
	return participants, nil
}

func (u *Usecase) Preview(ctx context.Context, code string) (model.ParticipantPreview, error) {
	preview, err := u.coordination.ParticipantPreview(ctx, model.SessionID(code))
	if err != nil {
		return model.ParticipantPreview{}, errors.Join(ErrInternal, err)
	}
	return preview, nil
}

func (u *Usecase) IsHost(ctx context.Context, code string, id model.ParticipantID) (bool, error) {
	isHost, err := u.repo.IsHost(ctx, code, id)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, ErrResourceNotFound
		}
		return false, errors.Join(ErrInternal, err)
	}
	return isHost, nil
}

// HandOff transfers the host role. Participants are otherwise immutable
// once created.
func (u *Usecase) HandOff(ctx context.Context, code string, from, to model.ParticipantID) error {
	isHost, err := u.IsHost(ctx, code, from)
	if err != nil {
		return err
	}
	if !isHost {
		return ErrNotHost
	}

	if err := u.repo.TransferHost(ctx, code, from, to); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// SelectGame durably saves the group's pick into the shared result slot
// and marks the session decided.
func (u *Usecase) SelectGame(ctx context.Context, code string, game model.GameSummary) error {
	if err := u.coordination.SetSelectedGame(ctx, model.SessionID(code), game); err != nil {
		return errors.Join(ErrInternal, err)
	}
	if err := u.repo.SetStatusByCode(ctx, code, model.StatusDecided); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) Free(ctx context.Context, code string) error {
	if err := u.repo.DeleteByCode(ctx, code); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	if err := u.coordination.DropSession(ctx, model.SessionID(code)); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) Status(ctx context.Context, code string) (string, error) {
	status, err := u.repo.StatusByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return "", ErrResourceNotFound
		}
		return "", errors.Join(ErrInternal, err)
	}
	return status, nil
}

func (u *Usecase) SetStatus(ctx context.Context, code string, status string) error {
	if err := u.repo.SetStatusByCode(ctx, code, status); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) UUIDByCode(ctx context.Context, code string) (uuid.UUID, error) {
	id, err := u.repo.UUIDByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return uuid.Nil, ErrResourceNotFound
		}
		return uuid.Nil, errors.Join(ErrInternal, err)
	}
	return id, nil
}
