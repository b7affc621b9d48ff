package usecase_preference

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	"github.com/boardswap/core/internal/model"
	repo_mocks "github.com/boardswap/core/internal/usecase/preference/mocks/repository"
)

type UsecasePreferenceUnitSuite struct {
	suite.Suite
}

func validParticipantID() model.ParticipantID {
	return model.ParticipantID(uuid.New().String())
}

func (s *UsecasePreferenceUnitSuite) TestUpsert(t provider.T) {
	t.Parallel()

	repo := repo_mocks.NewPreferenceRepository(t)
	uc := New(repo)
	ctx := context.Background()
	participantID := validParticipantID()
	gameID := uuid.New()
	update := model.PreferenceUpdate{Rank: model.RankOf(1), IsTopPick: true}

	repo.On("Upsert", ctx, participantID, gameID, update).Return(nil).Once()

	assert.NoError(t, uc.Upsert(ctx, participantID, gameID, update))
}

func (s *UsecasePreferenceUnitSuite) TestClearSwallowsMissingPreference(t provider.T) {
	t.Parallel()

	repo := repo_mocks.NewPreferenceRepository(t)
	uc := New(repo)
	ctx := context.Background()
	participantID := validParticipantID()
	gameID := uuid.New()

	repo.On("Delete", ctx, participantID, gameID).Return(ErrResourceNotFound).Once()

	assert.NoError(t, uc.Clear(ctx, participantID, gameID))
}

func (s *UsecasePreferenceUnitSuite) TestReorder(t provider.T) {
	t.Parallel()

	inGame1, inGame2, outGame := uuid.New(), uuid.New(), uuid.New()

	testCases := []struct {
		name       string
		ordered    []uuid.UUID
		eligible   []uuid.UUID
		setupMocks func(repo *repo_mocks.PreferenceRepository, ctx context.Context, id model.ParticipantID)
	}{
		{
			name:     "Should pass full eligible ordering through",
			ordered:  []uuid.UUID{inGame2, inGame1},
			eligible: []uuid.UUID{inGame1, inGame2},
			setupMocks: func(repo *repo_mocks.PreferenceRepository, ctx context.Context, id model.ParticipantID) {
				repo.On("Reorder", ctx, id, []uuid.UUID{inGame2, inGame1}).Return(nil).Once()
			},
		},
		{
			name:     "Should drop game ids outside the eligible set",
			ordered:  []uuid.UUID{outGame, inGame1, inGame2},
			eligible: []uuid.UUID{inGame1, inGame2},
			setupMocks: func(repo *repo_mocks.PreferenceRepository, ctx context.Context, id model.ParticipantID) {
				repo.On("Reorder", ctx, id, []uuid.UUID{inGame1, inGame2}).Return(nil).Once()
			},
		},
		{
			name:     "Should skip the write entirely when nothing survives",
			ordered:  []uuid.UUID{outGame},
			eligible: []uuid.UUID{inGame1},
			setupMocks: func(repo *repo_mocks.PreferenceRepository, ctx context.Context, id model.ParticipantID) {
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			repo := repo_mocks.NewPreferenceRepository(t)
			uc := New(repo)
			ctx := context.Background()
			participantID := validParticipantID()
			tc.setupMocks(repo, ctx, participantID)

			err := uc.Reorder(ctx, participantID, tc.ordered, tc.eligible)

			assert.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func (s *UsecasePreferenceUnitSuite) TestPreferencesPassThrough(t provider.T) {
	t.Parallel()

	repo := repo_mocks.NewPreferenceRepository(t)
	uc := New(repo)
	ctx := context.Background()
	participantID := validParticipantID()
	expected := []model.Preference{
		{ParticipantID: participantID, GameID: uuid.New(), Rank: model.RankOf(1)},
	}

	repo.On("Preferences", ctx, participantID).Return(expected, nil).Once()

	prefs, err := uc.Preferences(ctx, participantID)

	assert.NoError(t, err)
	assert.Equal(t, expected, prefs)
}

func (s *UsecasePreferenceUnitSuite) TestPreferencesFailure(t provider.T) {
	t.Parallel()

	repo := repo_mocks.NewPreferenceRepository(t)
	uc := New(repo)
	ctx := context.Background()
	participantID := validParticipantID()

	repo.On("Preferences", ctx, participantID).Return(nil, assert.AnError).Once()

	_, err := uc.Preferences(ctx, participantID)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestPreferenceUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecasePreferenceUnitSuite))
}
