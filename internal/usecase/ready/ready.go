package usecase_ready

import (
	"context"
	"errors"
	"sync"

	"github.com/boardswap/core/internal/model"
)

var (
	ErrInternal          = errors.New("internal error")
	ErrInvalidTransition = errors.New("invalid stage transition")
	ErrSubmitFailed      = errors.New("submit failed")
)

type Stage string

const (
	StageJoining                Stage = "joining"
	StageModeSelect             Stage = "mode-select"
	StagePreferenceSourceSelect Stage = "preference-source-select"
	StagePreferencesOpen        Stage = "preferences-open"
	StageReady                  Stage = "ready"
	StageReadyPendingChanges    Stage = "ready-with-pending-changes"
)

//go:generate mockery --name=Coordination --output=./mocks/coordination --filename=coordination.go
type Coordination interface {
	SubmitPreferences(ctx context.Context, sessionID model.SessionID, participantKey string, prefs []model.Preference) error
	SetParticipantReady(ctx context.Context, sessionID model.SessionID, participantID model.ParticipantID) error
}

// ReadyFlagStore is the durable per-session "already ready" flag, so a
// reload does not re-prompt a guest who has submitted.
//
//go:generate mockery --name=ReadyFlagStore --output=./mocks/readyflag --filename=readyflag.go
type ReadyFlagStore interface {
	ReadyFlag(ctx context.Context, sessionID model.SessionID, participantID model.ParticipantID) (bool, error)
	SetReadyFlag(ctx context.Context, sessionID model.SessionID, participantID model.ParticipantID, ready bool) error
}

// Machine walks one guest through joining a session:
//
//	joining -> (mode-select | preference-source-select) ->
//	preferences-open -> ready -> [ready-with-pending-changes] -> ready
//
// Edits after ready are never auto-pushed; returning to plain ready takes
// an explicit Update.
type Machine struct {
	mu sync.Mutex

	sessionID   model.SessionID
	participant model.Participant
	stage       Stage

	coordination Coordination
	flags        ReadyFlagStore
}

func NewMachine(
	sessionID model.SessionID,
	participant model.Participant,
	coordination Coordination,
	flags ReadyFlagStore,
) *Machine {
	return &Machine{
		sessionID:    sessionID,
		participant:  participant,
		stage:        StageJoining,
		coordination: coordination,
		flags:        flags,
	}
}

func (m *Machine) Stage() Stage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stage
}

// Restore skips the join prompts when the durable ready flag is already
// set for this session.
func (m *Machine) Restore(ctx context.Context) error {
	ready, err := m.flags.ReadyFlag(ctx, m.sessionID, m.participant.ID)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ready {
		m.stage = StageReady
	}
	return nil
}

func (m *Machine) BeginModeSelect() error {
	return m.transition(StageJoining, StageModeSelect)
}

func (m *Machine) BeginPreferenceSourceSelect() error {
	return m.transition(StageJoining, StagePreferenceSourceSelect)
}

func (m *Machine) OpenPreferences() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.stage {
	case StageModeSelect, StagePreferenceSourceSelect:
		m.stage = StagePreferencesOpen
		return nil
	default:
		return ErrInvalidTransition
	}
}

// Submit pushes the guest's current preferences, flips the remote and
// durable ready flags, and enters ready. Any failure leaves the stage and
// the durable flag untouched so the guest can retry explicitly.
func (m *Machine) Submit(ctx context.Context, prefs []model.Preference) error {
	m.mu.Lock()
	if m.stage != StagePreferencesOpen {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	m.mu.Unlock()

	return m.push(ctx, prefs, StageReady)
}

// MarkEdited records a preference edit after the guest was ready.
func (m *Machine) MarkEdited() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stage == StageReady {
		m.stage = StageReadyPendingChanges
	}
}

// Update re-submits after edits, returning to plain ready.
func (m *Machine) Update(ctx context.Context, prefs []model.Preference) error {
	m.mu.Lock()
	if m.stage != StageReadyPendingChanges {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	m.mu.Unlock()

	return m.push(ctx, prefs, StageReady)
}

func (m *Machine) push(ctx context.Context, prefs []model.Preference, next Stage) error {
	if err := m.coordination.SubmitPreferences(ctx, m.sessionID, string(m.participant.ID), prefs); err != nil {
		return errors.Join(ErrSubmitFailed, err)
	}
	if err := m.coordination.SetParticipantReady(ctx, m.sessionID, m.participant.ID); err != nil {
		return errors.Join(ErrSubmitFailed, err)
	}
	if err := m.flags.SetReadyFlag(ctx, m.sessionID, m.participant.ID, true); err != nil {
		return errors.Join(ErrSubmitFailed, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stage = next
	return nil
}

func (m *Machine) transition(from, to Stage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stage != from {
		return ErrInvalidTransition
	}
	m.stage = to
	return nil
}

// Service hands out one machine per (session, participant) pair so the
// delivery layer can address them across requests.
type Service struct {
	mu       sync.Mutex
	machines map[machineKey]*Machine

	coordination Coordination
	flags        ReadyFlagStore
}

type machineKey struct {
	sessionID     model.SessionID
	participantID model.ParticipantID
}

func NewService(coordination Coordination, flags ReadyFlagStore) *Service {
	return &Service{
		machines:     make(map[machineKey]*Machine),
		coordination: coordination,
		flags:        flags,
	}
}

func (s *Service) Machine(sessionID model.SessionID, participant model.Participant) *Machine {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := machineKey{sessionID: sessionID, participantID: participant.ID}
	if m, ok := s.machines[key]; ok {
		return m
	}
	m := NewMachine(sessionID, participant, s.coordination, s.flags)
	s.machines[key] = m
	return m
}

// DropSession forgets all machines of a torn-down session.
func (s *Service) DropSession(sessionID model.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.machines {
		if key.sessionID == sessionID {
			delete(s.machines, key)
		}
	}
}
