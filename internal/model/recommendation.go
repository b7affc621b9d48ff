package model

type ScoredGame struct {
	Game  GameMeta
	Score float64
}

type VetoedGame struct {
	Game GameMeta
	// Vetoing participants in stable first-seen order.
	VetoedBy []ParticipantID
}

// RecommendationResult is recomputed fully on every call and never
// persisted as authoritative. A nil TopPick with non-empty Vetoed is the
// defined "no possible pick" state, not an error.
type RecommendationResult struct {
	TopPick      *ScoredGame
	Alternatives []ScoredGame
	Vetoed       []VetoedGame
}
