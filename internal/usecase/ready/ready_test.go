package usecase_ready

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	"github.com/boardswap/core/internal/model"
	coordination_mocks "github.com/boardswap/core/internal/usecase/ready/mocks/coordination"
	readyflag_mocks "github.com/boardswap/core/internal/usecase/ready/mocks/readyflag"
)

type UsecaseReadyUnitSuite struct {
	suite.Suite
}

type readyResources struct {
	coordination *coordination_mocks.Coordination
	flags        *readyflag_mocks.ReadyFlagStore
	machine      *Machine
	sessionID    model.SessionID
	guest        model.Participant
	ctx          context.Context
}

func initReadyResources(t provider.T) *readyResources {
	coordination := coordination_mocks.NewCoordination(t)
	flags := readyflag_mocks.NewReadyFlagStore(t)
	sessionID := model.SessionID("123456")
	guest := model.Participant{
		ID:     model.ParticipantID("guest"),
		Name:   "guest",
		Role:   model.RoleGuest,
		Origin: model.OriginLocal,
	}

	return &readyResources{
		coordination: coordination,
		flags:        flags,
		machine:      NewMachine(sessionID, guest, coordination, flags),
		sessionID:    sessionID,
		guest:        guest,
		ctx:          context.Background(),
	}
}

func guestPrefs() []model.Preference {
	return []model.Preference{
		{GameID: uuid.New(), Rank: model.RankOf(1)},
	}
}

func expectPush(r *readyResources, prefs []model.Preference) {
	r.coordination.On("SubmitPreferences", r.ctx, r.sessionID, string(r.guest.ID), prefs).
		Return(nil).Once()
	r.coordination.On("SetParticipantReady", r.ctx, r.sessionID, r.guest.ID).
		Return(nil).Once()
	r.flags.On("SetReadyFlag", r.ctx, r.sessionID, r.guest.ID, true).
		Return(nil).Once()
}

func (s *UsecaseReadyUnitSuite) TestHappyPathThroughModeSelect(t provider.T) {
	t.Parallel()

	r := initReadyResources(t)
	prefs := guestPrefs()
	expectPush(r, prefs)

	assert.Equal(t, StageJoining, r.machine.Stage())
	assert.NoError(t, r.machine.BeginModeSelect())
	assert.Equal(t, StageModeSelect, r.machine.Stage())
	assert.NoError(t, r.machine.OpenPreferences())
	assert.Equal(t, StagePreferencesOpen, r.machine.Stage())
	assert.NoError(t, r.machine.Submit(r.ctx, prefs))
	assert.Equal(t, StageReady, r.machine.Stage())
}

func (s *UsecaseReadyUnitSuite) TestHappyPathThroughPreferenceSourceSelect(t provider.T) {
	t.Parallel()

	r := initReadyResources(t)
	prefs := guestPrefs()
	expectPush(r, prefs)

	assert.NoError(t, r.machine.BeginPreferenceSourceSelect())
	assert.NoError(t, r.machine.OpenPreferences())
	assert.NoError(t, r.machine.Submit(r.ctx, prefs))
	assert.Equal(t, StageReady, r.machine.Stage())
}

func (s *UsecaseReadyUnitSuite) TestSubmitFromWrongStage(t provider.T) {
	t.Parallel()

	r := initReadyResources(t)

	err := r.machine.Submit(r.ctx, guestPrefs())

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StageJoining, r.machine.Stage())
}

func (s *UsecaseReadyUnitSuite) TestFailedSubmitLeavesStageAndFlag(t provider.T) {
	t.Parallel()

	r := initReadyResources(t)
	prefs := guestPrefs()
	r.coordination.On("SubmitPreferences", r.ctx, r.sessionID, string(r.guest.ID), prefs).
		Return(errors.New("redis down")).Once()

	assert.NoError(t, r.machine.BeginModeSelect())
	assert.NoError(t, r.machine.OpenPreferences())

	err := r.machine.Submit(r.ctx, prefs)

	assert.ErrorIs(t, err, ErrSubmitFailed)
	assert.Equal(t, StagePreferencesOpen, r.machine.Stage())
	r.flags.AssertNotCalled(t, "SetReadyFlag", r.ctx, r.sessionID, r.guest.ID, true)
}

func (s *UsecaseReadyUnitSuite) TestEditAfterReadyNeedsExplicitUpdate(t provider.T) {
	t.Parallel()

	r := initReadyResources(t)
	prefs := guestPrefs()
	expectPush(r, prefs)

	assert.NoError(t, r.machine.BeginModeSelect())
	assert.NoError(t, r.machine.OpenPreferences())
	assert.NoError(t, r.machine.Submit(r.ctx, prefs))

	r.machine.MarkEdited()
	assert.Equal(t, StageReadyPendingChanges, r.machine.Stage())

	edited := guestPrefs()
	expectPush(r, edited)
	assert.NoError(t, r.machine.Update(r.ctx, edited))
	assert.Equal(t, StageReady, r.machine.Stage())
}

func (s *UsecaseReadyUnitSuite) TestUpdateFromPlainReadyIsRejected(t provider.T) {
	t.Parallel()

	r := initReadyResources(t)
	prefs := guestPrefs()
	expectPush(r, prefs)

	assert.NoError(t, r.machine.BeginModeSelect())
	assert.NoError(t, r.machine.OpenPreferences())
	assert.NoError(t, r.machine.Submit(r.ctx, prefs))

	err := r.machine.Update(r.ctx, prefs)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StageReady, r.machine.Stage())
}

func (s *UsecaseReadyUnitSuite) TestMarkEditedBeforeReadyIsNoop(t provider.T) {
	t.Parallel()

	r := initReadyResources(t)
	r.machine.MarkEdited()

	assert.Equal(t, StageJoining, r.machine.Stage())
}

func (s *UsecaseReadyUnitSuite) TestRestoreSkipsPromptsWhenFlagSet(t provider.T) {
	t.Parallel()

	r := initReadyResources(t)
	r.flags.On("ReadyFlag", r.ctx, r.sessionID, r.guest.ID).Return(true, nil).Once()

	assert.NoError(t, r.machine.Restore(r.ctx))
	assert.Equal(t, StageReady, r.machine.Stage())
}

func (s *UsecaseReadyUnitSuite) TestRestoreWithoutFlagStaysJoining(t provider.T) {
	t.Parallel()

	r := initReadyResources(t)
	r.flags.On("ReadyFlag", r.ctx, r.sessionID, r.guest.ID).Return(false, nil).Once()

	assert.NoError(t, r.machine.Restore(r.ctx))
	assert.Equal(t, StageJoining, r.machine.Stage())
}

func (s *UsecaseReadyUnitSuite) TestServiceReturnsSameMachinePerPair(t provider.T) {
	t.Parallel()

	coordination := coordination_mocks.NewCoordination(t)
	flags := readyflag_mocks.NewReadyFlagStore(t)
	service := NewService(coordination, flags)

	sessionID := model.SessionID("123456")
	guest := model.Participant{ID: model.ParticipantID("guest")}

	m1 := service.Machine(sessionID, guest)
	m2 := service.Machine(sessionID, guest)
	assert.Same(t, m1, m2)

	other := service.Machine(model.SessionID("654321"), guest)
	assert.NotSame(t, m1, other)
}

func (s *UsecaseReadyUnitSuite) TestDropSessionForgetsMachines(t provider.T) {
	t.Parallel()

	coordination := coordination_mocks.NewCoordination(t)
	flags := readyflag_mocks.NewReadyFlagStore(t)
	service := NewService(coordination, flags)

	sessionID := model.SessionID("123456")
	guest := model.Participant{ID: model.ParticipantID("guest")}

	m1 := service.Machine(sessionID, guest)
	assert.NoError(t, m1.BeginModeSelect())

	service.DropSession(sessionID)

	m2 := service.Machine(sessionID, guest)
	assert.NotSame(t, m1, m2)
	assert.Equal(t, StageJoining, m2.Stage())
}

func TestReadyUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseReadyUnitSuite))
}
