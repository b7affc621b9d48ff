package model

import "github.com/google/uuid"

type SessionID string

const EmptySessionID SessionID = ""

func (id SessionID) BuildUUID() uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(id))
}

const (
	StatusLobby   = "lobby"
	StatusPicking = "picking"
	StatusDecided = "decided"
)

type Session struct {
	ID         uuid.UUID
	PublicCode string
	Status     string
}

// SessionContext carries the identity of the active session explicitly
// into the sync and snapshot components instead of ambient process state.
type SessionContext struct {
	SessionID SessionID
	HostID    ParticipantID
}

type ShareMode string

const (
	ShareModeLocal  ShareMode = "local"
	ShareModeRemote ShareMode = "remote"
	ShareModeMixed  ShareMode = "mixed"
)

// NamedSlot is one claimed participant slot in the shared session document.
type NamedSlot struct {
	Name           string
	Ready          bool
	HasPreferences bool
}

type ParticipantPreview struct {
	HostName   string
	NamedSlots []NamedSlot
	ShareMode  ShareMode
}
