package usecase_preference

import (
	"context"
	"errors"

	"github.com/boardswap/core/internal/model"
	"github.com/google/uuid"
)

var (
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
)

//go:generate mockery --name=PreferenceRepository --output=./mocks/repository --filename=repository.go
type PreferenceRepository interface {
	Preferences(ctx context.Context, participantID model.ParticipantID) ([]model.Preference, error)
	Upsert(ctx context.Context, participantID model.ParticipantID, gameID uuid.UUID, update model.PreferenceUpdate) error
	Delete(ctx context.Context, participantID model.ParticipantID, gameID uuid.UUID) error

	// Reorder assigns ranks 1..n to the given games in one transaction,
	// clearing top-pick and dislike flags on reordered entries.
	Reorder(ctx context.Context, participantID model.ParticipantID, orderedGameIDs []uuid.UUID) error
}

type Usecase struct {
	repo PreferenceRepository
}

func New(repo PreferenceRepository) *Usecase {
	return &Usecase{repo: repo}
}

func (u *Usecase) Preferences(ctx context.Context, participantID model.ParticipantID) ([]model.Preference, error) {
	prefs, err := u.repo.Preferences(ctx, participantID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return prefs, nil
}

func (u *Usecase) Upsert(
	ctx context.Context,
	participantID model.ParticipantID,
	gameID uuid.UUID,
	update model.PreferenceUpdate,
) error {
	if err := u.repo.Upsert(ctx, participantID, gameID, update); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// Clear drops the participant's choice for one game.
func (u *Usecase) Clear(ctx context.Context, participantID model.ParticipantID, gameID uuid.UUID) error {
	if err := u.repo.Delete(ctx, participantID, gameID); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// Reorder applies a full drag-and-drop ordering. Game ids outside the
// eligible set are dropped silently: the game may have been filtered out
// from under the pending action, which is a recoverable race, not an
// error.
func (u *Usecase) Reorder(
	ctx context.Context,
	participantID model.ParticipantID,
	orderedGameIDs []uuid.UUID,
	eligibleGameIDs []uuid.UUID,
) error {
	inSet := make(map[uuid.UUID]bool, len(eligibleGameIDs))
	for _, id := range eligibleGameIDs {
		inSet[id] = true
	}

	kept := make([]uuid.UUID, 0, len(orderedGameIDs))
	for _, id := range orderedGameIDs {
		if inSet[id] {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	if err := u.repo.Reorder(ctx, participantID, kept); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}
