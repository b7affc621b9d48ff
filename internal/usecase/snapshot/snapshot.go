package usecase_snapshot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/boardswap/core/internal/model"
)

var (
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
)

//go:generate mockery --name=SnapshotRepository --output=./mocks/repository --filename=repository.go
type SnapshotRepository interface {
	Save(ctx context.Context, sessionID model.SessionID, snap model.WizardSnapshot) error
	Load(ctx context.Context, sessionID model.SessionID) (model.WizardSnapshot, error)
	Delete(ctx context.Context, sessionID model.SessionID) error

	// DrainLegacy moves flat-keyed legacy wizard blobs into the
	// structured table and removes the legacy rows. Idempotent.
	DrainLegacy(ctx context.Context) error
}

// Usecase keeps exactly one live wizard snapshot per session id. Writes
// replace the whole record; the last caller to save wins.
type Usecase struct {
	repo SnapshotRepository

	legacyMu      sync.Mutex
	legacyDrained bool
}

func New(repo SnapshotRepository) *Usecase {
	return &Usecase{repo: repo}
}

func (u *Usecase) Save(ctx context.Context, sessionID model.SessionID, snap model.WizardSnapshot) error {
	snap.SavedAt = time.Now()
	if err := u.repo.Save(ctx, sessionID, snap); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// Load returns the session's snapshot, or (nil, nil) when none exists.
// Legacy rank=0 entries normalize to Unranked transparently so scoring
// never sees 0 as a rank-1 contender.
func (u *Usecase) Load(ctx context.Context, sessionID model.SessionID) (*model.WizardSnapshot, error) {
	if err := u.drainLegacy(ctx); err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	snap, err := u.repo.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, nil
		}
		return nil, errors.Join(ErrInternal, err)
	}

	for i := range snap.Preferences {
		snap.Preferences[i].Rank = model.NormalizeLegacyRank(snap.Preferences[i].Rank.Value())
	}
	return &snap, nil
}

// drainLegacy runs the legacy migration once per process. A failed
// attempt does not latch: the next load retries, so a transient outage
// during the first load degrades that load only.
func (u *Usecase) drainLegacy(ctx context.Context) error {
	u.legacyMu.Lock()
	defer u.legacyMu.Unlock()

	if u.legacyDrained {
		return nil
	}
	if err := u.repo.DrainLegacy(ctx); err != nil {
		return err
	}
	u.legacyDrained = true
	return nil
}

func (u *Usecase) Clear(ctx context.Context, sessionID model.SessionID) error {
	if err := u.repo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// Switch persists the departing session's in-memory state and only then
// loads the next session's snapshot. The ordering is a hard requirement:
// loading first would lose in-progress edits of the session being left.
func (u *Usecase) Switch(
	ctx context.Context,
	from model.SessionID,
	fromState model.WizardSnapshot,
	to model.SessionID,
) (*model.WizardSnapshot, error) {
	if from != model.EmptySessionID {
		if err := u.Save(ctx, from, fromState); err != nil {
			return nil, err
		}
	}
	return u.Load(ctx, to)
}
