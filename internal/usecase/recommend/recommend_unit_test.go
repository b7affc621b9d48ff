package usecase_recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	"github.com/boardswap/core/internal/model"
	catalog_mocks "github.com/boardswap/core/internal/usecase/recommend/mocks/catalog"
	local_mocks "github.com/boardswap/core/internal/usecase/recommend/mocks/local"
	remote_mocks "github.com/boardswap/core/internal/usecase/recommend/mocks/remote"
)

type UsecaseRecommendUnitSuite struct {
	suite.Suite
}

func validGames(n int) []model.GameMeta {
	games := make([]model.GameMeta, n)
	for i := 0; i < n; i++ {
		games[i] = model.GameMeta{
			ID:    uuid.New(),
			Title: string(rune('A' + i)),
		}
	}
	return games
}

func localParticipant(name string) model.Participant {
	return model.Participant{
		ID:     model.ParticipantID(name),
		Name:   name,
		Role:   model.RoleGuest,
		Origin: model.OriginLocal,
	}
}

func ranked(p model.Participant, gameID uuid.UUID, rank int) model.Preference {
	return model.Preference{
		ParticipantID: p.ID,
		GameID:        gameID,
		Rank:          model.RankOf(rank),
	}
}

func topPick(p model.Participant, gameID uuid.UUID) model.Preference {
	return model.Preference{
		ParticipantID: p.ID,
		GameID:        gameID,
		IsTopPick:     true,
	}
}

func disliked(p model.Participant, gameID uuid.UUID) model.Preference {
	return model.Preference{
		ParticipantID: p.ID,
		GameID:        gameID,
		IsDisliked:    true,
	}
}

func (s *UsecaseRecommendUnitSuite) TestTwoBallotScenario(t provider.T) {
	t.Parallel()

	// A=1.0, B=0.0+1.0=1.0, C=0.0; the tie resolves by input order.
	games := validGames(3)
	a, b, c := games[0], games[1], games[2]
	alice := localParticipant("alice")
	bob := localParticipant("bob")

	prefs := map[model.ParticipantID][]model.Preference{
		alice.ID: {ranked(alice, a.ID, 1), ranked(alice, b.ID, 2)},
		bob.ID:   {ranked(bob, b.ID, 1), ranked(bob, c.ID, 2)},
	}

	result := Compute(games, prefs, []model.Participant{alice, bob}, uuid.Nil, 0)

	if assert.NotNil(t, result.TopPick) {
		assert.Equal(t, a.ID, result.TopPick.Game.ID)
		assert.InDelta(t, 1.0, result.TopPick.Score, 1e-9)
	}
	if assert.Len(t, result.Alternatives, 2) {
		assert.Equal(t, b.ID, result.Alternatives[0].Game.ID)
		assert.InDelta(t, 1.0, result.Alternatives[0].Score, 1e-9)
		assert.Equal(t, c.ID, result.Alternatives[1].Game.ID)
		assert.InDelta(t, 0.0, result.Alternatives[1].Score, 1e-9)
	}
	assert.Empty(t, result.Vetoed)
}

func (s *UsecaseRecommendUnitSuite) TestUnrankedTopPickSortsLast(t provider.T) {
	t.Parallel()

	// Ballot is [B(rank 1), A(unranked top pick)], m=2:
	// B=1.0, A=0.0+0.5 bonus. The bonus never outruns a real rank here.
	games := validGames(2)
	a, b := games[0], games[1]
	alice := localParticipant("alice")

	prefs := map[model.ParticipantID][]model.Preference{
		alice.ID: {topPick(alice, a.ID), ranked(alice, b.ID, 1)},
	}

	result := Compute(games, prefs, []model.Participant{alice}, uuid.Nil, 0)

	if assert.NotNil(t, result.TopPick) {
		assert.Equal(t, b.ID, result.TopPick.Game.ID)
		assert.InDelta(t, 1.0, result.TopPick.Score, 1e-9)
	}
	if assert.Len(t, result.Alternatives, 1) {
		assert.Equal(t, a.ID, result.Alternatives[0].Game.ID)
		assert.InDelta(t, 0.5, result.Alternatives[0].Score, 1e-9)
	}
}

func (s *UsecaseRecommendUnitSuite) TestSingleEntryBallotScoresFull(t provider.T) {
	t.Parallel()

	games := validGames(3)
	alice := localParticipant("alice")

	prefs := map[model.ParticipantID][]model.Preference{
		alice.ID: {ranked(alice, games[2].ID, 1)},
	}

	result := Compute(games, prefs, []model.Participant{alice}, uuid.Nil, 0)

	if assert.NotNil(t, result.TopPick) {
		assert.Equal(t, games[2].ID, result.TopPick.Game.ID)
		assert.InDelta(t, 1.0, result.TopPick.Score, 1e-9)
	}
}

func (s *UsecaseRecommendUnitSuite) TestVetoExcludesAndAttributes(t provider.T) {
	t.Parallel()

	games := validGames(3)
	a := games[0]
	alice := localParticipant("alice")
	bob := localParticipant("bob")

	// Alice loves A, Bob vetoes it. The veto is absolute.
	prefs := map[model.ParticipantID][]model.Preference{
		alice.ID: {
			{ParticipantID: alice.ID, GameID: a.ID, Rank: model.RankOf(1), IsTopPick: true},
		},
		bob.ID: {disliked(bob, a.ID)},
	}

	result := Compute(games, prefs, []model.Participant{alice, bob}, uuid.Nil, 0)

	if assert.NotNil(t, result.TopPick) {
		assert.NotEqual(t, a.ID, result.TopPick.Game.ID)
	}
	if assert.Len(t, result.Vetoed, 1) {
		assert.Equal(t, a.ID, result.Vetoed[0].Game.ID)
		assert.Equal(t, []model.ParticipantID{bob.ID}, result.Vetoed[0].VetoedBy)
	}
}

func (s *UsecaseRecommendUnitSuite) TestVetoWinsOverTopPickOnSameEntry(t provider.T) {
	t.Parallel()

	// Both flags set on one entry: the veto pass removes the game before
	// the bonus is ever considered.
	games := validGames(2)
	a := games[0]
	alice := localParticipant("alice")

	prefs := map[model.ParticipantID][]model.Preference{
		alice.ID: {
			{ParticipantID: alice.ID, GameID: a.ID, IsTopPick: true, IsDisliked: true},
		},
	}

	result := Compute(games, prefs, []model.Participant{alice}, uuid.Nil, 0)

	if assert.NotNil(t, result.TopPick) {
		assert.Equal(t, games[1].ID, result.TopPick.Game.ID)
	}
	if assert.Len(t, result.Vetoed, 1) {
		assert.Equal(t, a.ID, result.Vetoed[0].Game.ID)
	}
}

func (s *UsecaseRecommendUnitSuite) TestAllVetoedYieldsNoPick(t provider.T) {
	t.Parallel()

	games := validGames(2)
	alice := localParticipant("alice")

	prefs := map[model.ParticipantID][]model.Preference{
		alice.ID: {disliked(alice, games[0].ID), disliked(alice, games[1].ID)},
	}

	result := Compute(games, prefs, []model.Participant{alice}, uuid.Nil, 0)

	assert.Nil(t, result.TopPick)
	assert.Empty(t, result.Alternatives)
	assert.Len(t, result.Vetoed, 2)
}

func (s *UsecaseRecommendUnitSuite) TestNoPreferencesKeepsInputOrder(t provider.T) {
	t.Parallel()

	games := validGames(3)
	alice := localParticipant("alice")

	result := Compute(games, nil, []model.Participant{alice}, uuid.Nil, 0)

	if assert.NotNil(t, result.TopPick) {
		assert.Equal(t, games[0].ID, result.TopPick.Game.ID)
		assert.InDelta(t, 0.0, result.TopPick.Score, 1e-9)
	}
	if assert.Len(t, result.Alternatives, 2) {
		assert.Equal(t, games[1].ID, result.Alternatives[0].Game.ID)
		assert.Equal(t, games[2].ID, result.Alternatives[1].Game.ID)
	}
}

func (s *UsecaseRecommendUnitSuite) TestZeroGames(t provider.T) {
	t.Parallel()

	alice := localParticipant("alice")
	result := Compute(nil, nil, []model.Participant{alice}, uuid.Nil, 0)

	assert.Nil(t, result.TopPick)
	assert.Empty(t, result.Alternatives)
	assert.Empty(t, result.Vetoed)
}

func (s *UsecaseRecommendUnitSuite) TestZeroParticipantsYieldsEmptyResult(t provider.T) {
	t.Parallel()

	games := validGames(2)
	result := Compute(games, nil, nil, uuid.Nil, 0)

	assert.Nil(t, result.TopPick)
	assert.Empty(t, result.Alternatives)
	assert.Empty(t, result.Vetoed)
}

func (s *UsecaseRecommendUnitSuite) TestPromotionMovesToFront(t provider.T) {
	t.Parallel()

	games := validGames(3)
	alice := localParticipant("alice")
	prefs := map[model.ParticipantID][]model.Preference{
		alice.ID: {ranked(alice, games[0].ID, 1), ranked(alice, games[1].ID, 2)},
	}

	result := Compute(games, prefs, []model.Participant{alice}, games[2].ID, 0)

	if assert.NotNil(t, result.TopPick) {
		assert.Equal(t, games[2].ID, result.TopPick.Game.ID)
	}
	// The remainder keeps its score order.
	if assert.Len(t, result.Alternatives, 2) {
		assert.Equal(t, games[0].ID, result.Alternatives[0].Game.ID)
		assert.Equal(t, games[1].ID, result.Alternatives[1].Game.ID)
	}
}

func (s *UsecaseRecommendUnitSuite) TestPromotionOfUnknownGameIsNoop(t provider.T) {
	t.Parallel()

	games := validGames(2)
	alice := localParticipant("alice")

	result := Compute(games, nil, []model.Participant{alice}, uuid.New(), 0)

	if assert.NotNil(t, result.TopPick) {
		assert.Equal(t, games[0].ID, result.TopPick.Game.ID)
	}
}

func (s *UsecaseRecommendUnitSuite) TestPromotionOfCurrentTopIsNoop(t provider.T) {
	t.Parallel()

	games := validGames(2)
	alice := localParticipant("alice")
	prefs := map[model.ParticipantID][]model.Preference{
		alice.ID: {ranked(alice, games[0].ID, 1)},
	}

	result := Compute(games, prefs, []model.Participant{alice}, games[0].ID, 0)

	if assert.NotNil(t, result.TopPick) {
		assert.Equal(t, games[0].ID, result.TopPick.Game.ID)
	}
}

func (s *UsecaseRecommendUnitSuite) TestIdempotence(t provider.T) {
	t.Parallel()

	games := validGames(4)
	alice := localParticipant("alice")
	bob := localParticipant("bob")
	prefs := map[model.ParticipantID][]model.Preference{
		alice.ID: {ranked(alice, games[1].ID, 1), topPick(alice, games[3].ID)},
		bob.ID:   {ranked(bob, games[2].ID, 1), disliked(bob, games[0].ID)},
	}
	participants := []model.Participant{alice, bob}

	first := Compute(games, prefs, participants, uuid.Nil, 0)
	second := Compute(games, prefs, participants, uuid.Nil, 0)

	assert.Equal(t, first, second)
}

func (s *UsecaseRecommendUnitSuite) TestScoresStayWithinBordaBounds(t provider.T) {
	t.Parallel()

	games := validGames(5)
	alice := localParticipant("alice")
	bob := localParticipant("bob")
	prefs := map[model.ParticipantID][]model.Preference{
		alice.ID: {
			{ParticipantID: alice.ID, GameID: games[0].ID, Rank: model.RankOf(1), IsTopPick: true},
			ranked(alice, games[1].ID, 2),
			ranked(alice, games[2].ID, 3),
		},
		bob.ID: {
			{ParticipantID: bob.ID, GameID: games[0].ID, Rank: model.RankOf(1), IsTopPick: true},
			ranked(bob, games[3].ID, 2),
		},
	}
	participants := []model.Participant{alice, bob}

	result := Compute(games, prefs, participants, uuid.Nil, 0)

	bound := float64(len(participants)) * (1.0 + TopPickBonus)
	if assert.NotNil(t, result.TopPick) {
		assert.GreaterOrEqual(t, result.TopPick.Score, 0.0)
		assert.LessOrEqual(t, result.TopPick.Score, bound)
	}
	for _, alt := range result.Alternatives {
		assert.GreaterOrEqual(t, alt.Score, 0.0)
		assert.LessOrEqual(t, alt.Score, bound)
	}
}

func (s *UsecaseRecommendUnitSuite) TestAlternativesBound(t provider.T) {
	t.Parallel()

	games := validGames(10)
	alice := localParticipant("alice")

	result := Compute(games, nil, []model.Participant{alice}, uuid.Nil, 3)

	assert.Len(t, result.Alternatives, 3)
}

func (s *UsecaseRecommendUnitSuite) TestRecommendMergesLocalAndRemote(t provider.T) {
	t.Parallel()

	games := validGames(2)
	alice := localParticipant("alice")
	carol := model.Participant{
		ID:     model.ParticipantID("carol"),
		Name:   "carol",
		Role:   model.RoleGuest,
		Origin: model.OriginRemote,
	}
	sessionID := model.SessionID("123456")
	ids := []uuid.UUID{games[0].ID, games[1].ID}

	catalog := catalog_mocks.NewGameCatalog(t)
	local := local_mocks.NewLocalPreferences(t)
	remote := remote_mocks.NewRemotePreferences(t)

	catalog.On("GamesByIDs", context.Background(), ids).Return(games, nil).Once()
	local.On("Preferences", context.Background(), alice.ID).
		Return([]model.Preference{ranked(alice, games[0].ID, 1)}, nil).Once()
	remote.On("SessionPreferences", context.Background(), sessionID).
		Return(map[model.ParticipantID][]model.Preference{
			carol.ID: {ranked(carol, games[1].ID, 1)},
		}, nil).Once()

	uc := New(catalog, local, remote, 5)
	result, err := uc.Recommend(context.Background(), sessionID, []model.Participant{alice, carol}, ids, uuid.Nil)

	assert.NoError(t, err)
	if assert.NotNil(t, result.TopPick) {
		// Two single-entry ballots tie at 1.0; input order decides.
		assert.Equal(t, games[0].ID, result.TopPick.Game.ID)
	}
}

func (s *UsecaseRecommendUnitSuite) TestRecommendCatalogFailure(t provider.T) {
	t.Parallel()

	alice := localParticipant("alice")
	sessionID := model.SessionID("123456")

	catalog := catalog_mocks.NewGameCatalog(t)
	local := local_mocks.NewLocalPreferences(t)
	remote := remote_mocks.NewRemotePreferences(t)

	catalog.On("GamesByIDs", context.Background(), []uuid.UUID(nil)).
		Return(nil, errors.New("db down")).Once()

	uc := New(catalog, local, remote, 5)
	_, err := uc.Recommend(context.Background(), sessionID, []model.Participant{alice}, nil, uuid.Nil)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestRecommendUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseRecommendUnitSuite))
}
