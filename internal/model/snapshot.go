package model

import (
	"time"

	"github.com/google/uuid"
)

// FilterSummary is a display-only digest of the filters a session was
// built with. The core reads it, never writes it.
type FilterSummary struct {
	GameCount  int
	PlayerMin  int
	PlayerMax  int
	TimeMinMin int
	TimeMaxMin int
}

// WizardSnapshot is the whole working state of one session's wizard.
// One live snapshot per session id, replaced wholesale on every save.
type WizardSnapshot struct {
	Usernames       []string
	SessionGameIDs  []uuid.UUID
	ExcludedGameIDs []uuid.UUID
	Filters         FilterSummary
	Preferences     []Preference
	ActiveStep      int
	SavedAt         time.Time
}
