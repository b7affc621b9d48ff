package usecase_session

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/boardswap/core/internal/model"
	coordination_mocks "github.com/boardswap/core/internal/usecase/session/mocks/coordination"
	repo_mocks "github.com/boardswap/core/internal/usecase/session/mocks/repository"
)

type UsecaseSessionUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase      *Usecase
	repo         *repo_mocks.SessionRepository
	coordination *coordination_mocks.Coordination
	ctx          context.Context
}

func initResources(t provider.T) *resources {
	repo := repo_mocks.NewSessionRepository(t)
	coordination := coordination_mocks.NewCoordination(t)
	usecase := New(repo, coordination, 20)

	return &resources{
		usecase:      usecase,
		repo:         repo,
		coordination: coordination,
		ctx:          context.Background(),
	}
}

func validSessionCode() string {
	return "123456"
}

func validParticipantID() model.ParticipantID {
	return model.ParticipantID(uuid.New().String())
}

func (suite *UsecaseSessionUnitSuite) TestOpen(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should open session successfully",
			setupMocks: func(r *resources) {
				r.repo.On("CreateAndBook", r.ctx, mock.AnythingOfType("model.Session"), mock.AnythingOfType("model.Participant")).
					Return(nil).Once()
				r.coordination.On("RegisterSession", r.ctx, mock.AnythingOfType("model.SessionID"), "alice", model.ShareModeMixed).
					Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should retry and give up after repeated code conflicts",
			setupMocks: func(r *resources) {
				r.repo.On("CreateAndBook", r.ctx, mock.AnythingOfType("model.Session"), mock.AnythingOfType("model.Participant")).
					Return(ErrCodeConflict).Times(3)
			},
			expectError:   true,
			expectedError: ErrSessionsUnavailable,
		},
		{
			name: "Should fail when coordination registration fails",
			setupMocks: func(r *resources) {
				r.repo.On("CreateAndBook", r.ctx, mock.AnythingOfType("model.Session"), mock.AnythingOfType("model.Participant")).
					Return(nil).Once()
				r.coordination.On("RegisterSession", r.ctx, mock.AnythingOfType("model.SessionID"), "alice", model.ShareModeMixed).
					Return(assert.AnError).Once()
			},
			expectError:   true,
			expectedError: ErrInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			code, token, err := r.usecase.Open(r.ctx, "alice", model.ShareModeMixed)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Empty(t, code)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Len(t, code, 6)
				assert.NotEmpty(t, token)
			}
			r.repo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseSessionUnitSuite) TestOpenRunsPeriodicCleanup(t provider.T) {
	t.Parallel()

	const opens = 4
	repo := repo_mocks.NewSessionRepository(t)
	coordination := coordination_mocks.NewCoordination(t)
	usecase := New(repo, coordination, 2)
	ctx := context.Background()

	repo.On("CreateAndBook", mock.Anything, mock.AnythingOfType("model.Session"), mock.AnythingOfType("model.Participant")).
		Return(nil).Times(opens)
	coordination.On("RegisterSession", mock.Anything, mock.AnythingOfType("model.SessionID"), "alice", model.ShareModeMixed).
		Return(nil).Times(opens)
	repo.On("CleanupOrphanSessions", mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Times(opens / 2)

	// Concurrent opens share the counter; every second open must still
	// trigger exactly one cleanup.
	var wg sync.WaitGroup
	for i := 0; i < opens; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := usecase.Open(ctx, "alice", model.ShareModeMixed)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	repo.AssertNumberOfCalls(t, "CleanupOrphanSessions", opens/2)
}

func (suite *UsecaseSessionUnitSuite) TestJoin(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources, code string)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should join session successfully",
			setupMocks: func(r *resources, code string) {
				r.repo.On("AddParticipant", r.ctx, code, mock.AnythingOfType("model.Participant")).
					Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should surface missing session",
			setupMocks: func(r *resources, code string) {
				r.repo.On("AddParticipant", r.ctx, code, mock.AnythingOfType("model.Participant")).
					Return(ErrResourceNotFound).Once()
			},
			expectError:   true,
			expectedError: ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			code := validSessionCode()
			tc.setupMocks(r, code)

			p, err := r.usecase.Join(r.ctx, code, "bob", model.OriginRemote)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "bob", p.Name)
				assert.Equal(t, model.RoleGuest, p.Role)
				assert.Equal(t, model.OriginRemote, p.Origin)
			}
			r.repo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseSessionUnitSuite) TestHandOff(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources, code string, from, to model.ParticipantID)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should transfer host role",
			setupMocks: func(r *resources, code string, from, to model.ParticipantID) {
				r.repo.On("IsHost", r.ctx, code, from).Return(true, nil).Once()
				r.repo.On("TransferHost", r.ctx, code, from, to).Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should reject transfer from non-host",
			setupMocks: func(r *resources, code string, from, to model.ParticipantID) {
				r.repo.On("IsHost", r.ctx, code, from).Return(false, nil).Once()
			},
			expectError:   true,
			expectedError: ErrNotHost,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			code := validSessionCode()
			from := validParticipantID()
			to := validParticipantID()
			tc.setupMocks(r, code, from, to)

			err := r.usecase.HandOff(r.ctx, code, from, to)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			r.repo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseSessionUnitSuite) TestSelectGame(t provider.T) {
	t.Parallel()

	game := model.GameSummary{ID: uuid.New(), Title: "Cascadia"}

	testCases := []struct {
		name          string
		setupMocks    func(r *resources, code string)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should persist selection and mark session decided",
			setupMocks: func(r *resources, code string) {
				r.coordination.On("SetSelectedGame", r.ctx, model.SessionID(code), game).
					Return(nil).Once()
				r.repo.On("SetStatusByCode", r.ctx, code, model.StatusDecided).
					Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should fail when the shared slot write fails",
			setupMocks: func(r *resources, code string) {
				r.coordination.On("SetSelectedGame", r.ctx, model.SessionID(code), game).
					Return(assert.AnError).Once()
			},
			expectError:   true,
			expectedError: ErrInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			code := validSessionCode()
			tc.setupMocks(r, code)

			err := r.usecase.SelectGame(r.ctx, code, game)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			r.repo.AssertExpectations(t)
			r.coordination.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseSessionUnitSuite) TestFree(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources, code string)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should delete the session and drop its shared document",
			setupMocks: func(r *resources, code string) {
				r.repo.On("DeleteByCode", r.ctx, code).Return(nil).Once()
				r.coordination.On("DropSession", r.ctx, model.SessionID(code)).Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should surface missing session without touching the document",
			setupMocks: func(r *resources, code string) {
				r.repo.On("DeleteByCode", r.ctx, code).Return(ErrResourceNotFound).Once()
			},
			expectError:   true,
			expectedError: ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			code := validSessionCode()
			tc.setupMocks(r, code)

			err := r.usecase.Free(r.ctx, code)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			r.repo.AssertExpectations(t)
			r.coordination.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseSessionUnitSuite) TestParticipants(t provider.T) {
	t.Parallel()

	r := initResources(t)
	code := validSessionCode()
	expected := []model.Participant{
		{ID: model.ParticipantID("host"), Role: model.RoleHost, Origin: model.OriginLocal},
		{ID: model.ParticipantID("guest"), Role: model.RoleGuest, Origin: model.OriginRemote},
	}
	r.repo.On("Participants", r.ctx, code).Return(expected, nil).Once()

	participants, err := r.usecase.Participants(r.ctx, code)

	assert.NoError(t, err)
	assert.Equal(t, expected, participants)
}

func TestSessionUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseSessionUnitSuite))
}
