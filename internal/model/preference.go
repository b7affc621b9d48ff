package model

import (
	"time"

	"github.com/google/uuid"
)

// Rank is a 1-based relative position among a participant's ranked games.
// The zero value is Unranked. Legacy writers persisted "unranked" as 0,
// so anything below 1 normalizes to Unranked at the storage boundary.
type Rank struct {
	n int
}

var Unranked = Rank{}

func RankOf(n int) Rank {
	if n < 1 {
		return Unranked
	}
	return Rank{n: n}
}

func NormalizeLegacyRank(n int) Rank {
	return RankOf(n)
}

func (r Rank) IsRanked() bool {
	return r.n >= 1
}

// Value returns the 1-based position, or 0 when unranked.
func (r Rank) Value() int {
	return r.n
}

// Preference is one participant's stance on one game.
// At most one exists per (participant, game) pair.
type Preference struct {
	ParticipantID ParticipantID
	GameID        uuid.UUID
	Rank          Rank
	IsTopPick     bool
	IsDisliked    bool
	UpdatedAt     time.Time
}

// PreferenceUpdate is the mutable part of an upsert.
type PreferenceUpdate struct {
	Rank       Rank
	IsTopPick  bool
	IsDisliked bool
}
