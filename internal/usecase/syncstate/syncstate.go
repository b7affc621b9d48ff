package usecase_syncstate

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/boardswap/core/internal/model"
	"github.com/google/uuid"
)

var (
	ErrInternal   = errors.New("internal error")
	ErrSyncFailed = errors.New("sync failed")
)

//go:generate mockery --name=Coordination --output=./mocks/coordination --filename=coordination.go
type Coordination interface {
	SubmitPreferences(ctx context.Context, sessionID model.SessionID, participantKey string, prefs []model.Preference) error
}

// Tracker derives per-participant sync states from an order-independent
// content hash of eligible-restricted local preferences against the hash
// captured at the last successful push. All tracked state belongs to one
// session at a time; switching sessions drops everything.
type Tracker struct {
	mu sync.Mutex

	session    model.SessionContext
	lastSynced map[model.ParticipantID]syncedRecord
	syncingID  model.ParticipantID
	remoteSeen map[model.ParticipantID]bool

	coordination Coordination
}

type syncedRecord struct {
	hash uint64
	at   time.Time
}

func New(coordination Coordination) *Tracker {
	return &Tracker{
		lastSynced:   make(map[model.ParticipantID]syncedRecord),
		remoteSeen:   make(map[model.ParticipantID]bool),
		coordination: coordination,
	}
}

// UseSession switches the active session. A sync for session A must never
// be mistaken for a sync of session B, so every tracked hash and the
// in-flight id reset to their initial unsynced state.
func (t *Tracker) UseSession(session model.SessionContext) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == session {
		return
	}
	t.session = session
	t.lastSynced = make(map[model.ParticipantID]syncedRecord)
	t.remoteSeen = make(map[model.ParticipantID]bool)
	t.syncingID = model.EmptyParticipantID
}

func (t *Tracker) Session() model.SessionContext {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

// MarkRemoteContribution records that a remote participant has submitted
// at least one preference update since joining.
func (t *Tracker) MarkRemoteContribution(id model.ParticipantID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remoteSeen[id] = true
}

// Status recomputes the participant's sync state from scratch.
func (t *Tracker) Status(
	participant model.Participant,
	localPrefs []model.Preference,
	eligibleGameIDs []uuid.UUID,
) model.SyncStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	status := model.SyncStatus{ParticipantID: participant.ID}

	if participant.Origin == model.OriginRemote {
		if t.remoteSeen[participant.ID] {
			status.State = model.SyncStateRemote
		} else {
			status.State = model.SyncStateWaiting
		}
		return status
	}

	if t.syncingID == participant.ID {
		status.State = model.SyncStateSyncing
		return status
	}

	rec, ok := t.lastSynced[participant.ID]
	if ok && rec.hash == PreferencesHash(localPrefs, eligibleGameIDs) {
		status.State = model.SyncStateSynced
		status.LastSyncedAt = rec.at
		status.LastSyncedHash = rec.hash
		return status
	}

	status.State = model.SyncStateNeedsSync
	return status
}

// Sync pushes the participant's eligible-restricted preferences to the
// coordination service and commits the pushed hash on success. A failed
// push leaves the prior hash untouched so the participant still reads as
// needs-sync.
func (t *Tracker) Sync(
	ctx context.Context,
	participant model.Participant,
	localPrefs []model.Preference,
	eligibleGameIDs []uuid.UUID,
) error {
	t.mu.Lock()
	session := t.session
	t.syncingID = participant.ID
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		if t.syncingID == participant.ID {
			t.syncingID = model.EmptyParticipantID
		}
		t.mu.Unlock()
	}()

	restricted := restrict(localPrefs, eligibleGameIDs)
	key := participantKey(session, participant)

	if err := t.coordination.SubmitPreferences(ctx, session.SessionID, key, restricted); err != nil {
		return errors.Join(ErrSyncFailed, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// The session may have switched while the push was in flight.
	if t.session != session {
		return nil
	}
	t.lastSynced[participant.ID] = syncedRecord{
		hash: PreferencesHash(localPrefs, eligibleGameIDs),
		at:   time.Now(),
	}
	return nil
}

// participantKey keeps the host's own sub-document distinct from documents
// the host pushes on behalf of other local participants.
func participantKey(session model.SessionContext, p model.Participant) string {
	if p.Origin == model.OriginLocal && p.ID != session.HostID {
		return fmt.Sprintf("host:%s:for:%s", session.HostID, p.ID)
	}
	return string(p.ID)
}

// PreferencesHash folds each eligible preference into an order-independent
// 64-bit digest. Preferences for games filtered out of the eligible set do
// not participate, so upstream filter changes never flip sync state.
func PreferencesHash(prefs []model.Preference, eligibleGameIDs []uuid.UUID) uint64 {
	inSet := make(map[uuid.UUID]bool, len(eligibleGameIDs))
	for _, id := range eligibleGameIDs {
		inSet[id] = true
	}

	var acc uint64
	var n uint64
	for _, p := range prefs {
		if !inSet[p.GameID] {
			continue
		}
		h := fnv.New64a()
		h.Write(p.GameID[:])
		var enc [6]byte
		binary.BigEndian.PutUint32(enc[:4], uint32(p.Rank.Value()))
		if p.IsTopPick {
			enc[4] = 1
		}
		if p.IsDisliked {
			enc[5] = 1
		}
		h.Write(enc[:])
		acc ^= h.Sum64()
		n++
	}
	return acc ^ (n * 0x9e3779b97f4a7c15)
}

func restrict(prefs []model.Preference, eligibleGameIDs []uuid.UUID) []model.Preference {
	inSet := make(map[uuid.UUID]bool, len(eligibleGameIDs))
	for _, id := range eligibleGameIDs {
		inSet[id] = true
	}
	out := make([]model.Preference, 0, len(prefs))
	for _, p := range prefs {
		if inSet[p.GameID] {
			out = append(out, p)
		}
	}
	return out
}
