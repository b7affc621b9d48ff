package usecase_syncstate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/boardswap/core/internal/model"
	coordination_mocks "github.com/boardswap/core/internal/usecase/syncstate/mocks/coordination"
	remotestatus_mocks "github.com/boardswap/core/internal/usecase/syncstate/mocks/remotestatus"
)

type PollerUnitSuite struct {
	suite.Suite
}

func (s *PollerUnitSuite) TestTickMarksContributingRemotes(t provider.T) {
	t.Parallel()

	session := validSession()
	tracker := New(coordination_mocks.NewCoordination(t))
	tracker.UseSession(session)

	source := remotestatus_mocks.NewRemoteStatusSource(t)
	source.On("ParticipantPreview", mock.Anything, session.SessionID).
		Return(model.ParticipantPreview{
			HostName: "host",
			NamedSlots: []model.NamedSlot{
				{Name: "carol", HasPreferences: true},
				{Name: "dave", HasPreferences: false},
			},
		}, nil).Once()

	poller := NewPoller(source, tracker, time.Second)
	poller.tick(context.Background())

	assert.Equal(t, model.SyncStateRemote, tracker.Status(remoteGuest("carol"), nil, nil).State)
	assert.Equal(t, model.SyncStateWaiting, tracker.Status(remoteGuest("dave"), nil, nil).State)
}

func (s *PollerUnitSuite) TestTickWithoutActiveSessionSkipsFetch(t provider.T) {
	t.Parallel()

	tracker := New(coordination_mocks.NewCoordination(t))
	source := remotestatus_mocks.NewRemoteStatusSource(t)

	poller := NewPoller(source, tracker, time.Second)
	poller.tick(context.Background())

	source.AssertNotCalled(t, "ParticipantPreview", mock.Anything, mock.Anything)
}

func (s *PollerUnitSuite) TestStaleResultIsDropped(t provider.T) {
	t.Parallel()

	session := validSession()
	tracker := New(coordination_mocks.NewCoordination(t))
	tracker.UseSession(session)

	next := model.SessionContext{
		SessionID: model.SessionID("654321"),
		HostID:    session.HostID,
	}

	source := remotestatus_mocks.NewRemoteStatusSource(t)
	source.On("ParticipantPreview", mock.Anything, session.SessionID).
		Run(func(args mock.Arguments) {
			// The session switches while the fetch is in flight.
			tracker.UseSession(next)
		}).
		Return(model.ParticipantPreview{
			NamedSlots: []model.NamedSlot{{Name: "carol", HasPreferences: true}},
		}, nil).Once()

	poller := NewPoller(source, tracker, time.Second)
	poller.tick(context.Background())

	assert.Equal(t, model.SyncStateWaiting, tracker.Status(remoteGuest("carol"), nil, nil).State)
}

func (s *PollerUnitSuite) TestFetchFailureLeavesStateUntouched(t provider.T) {
	t.Parallel()

	session := validSession()
	tracker := New(coordination_mocks.NewCoordination(t))
	tracker.UseSession(session)
	tracker.MarkRemoteContribution(model.ParticipantID("carol"))

	source := remotestatus_mocks.NewRemoteStatusSource(t)
	source.On("ParticipantPreview", mock.Anything, session.SessionID).
		Return(model.ParticipantPreview{}, errors.New("redis down")).Once()

	poller := NewPoller(source, tracker, time.Second)
	poller.tick(context.Background())

	assert.Equal(t, model.SyncStateRemote, tracker.Status(remoteGuest("carol"), nil, nil).State)
}

func (s *PollerUnitSuite) TestRunStops(t provider.T) {
	t.Parallel()

	tracker := New(coordination_mocks.NewCoordination(t))
	source := remotestatus_mocks.NewRemoteStatusSource(t)
	poller := NewPoller(source, tracker, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		poller.Run(context.Background())
		close(done)
	}()

	poller.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Errorf("poller did not stop")
	}
}

func TestPollerUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(PollerUnitSuite))
}
