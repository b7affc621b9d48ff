package model

import "time"

type SyncState string

const (
	SyncStateSynced    SyncState = "synced"
	SyncStateNeedsSync SyncState = "needs-sync"
	SyncStateSyncing   SyncState = "syncing"
	SyncStateRemote    SyncState = "remote"
	SyncStateWaiting   SyncState = "waiting"
)

// SyncStatus is derived on every call, never persisted.
type SyncStatus struct {
	ParticipantID  ParticipantID
	State          SyncState
	LastSyncedAt   time.Time
	LastSyncedHash uint64
}
