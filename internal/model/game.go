package model

import "github.com/google/uuid"

const EmptyTitle string = ""

type GameMeta struct {
	ID              uuid.UUID
	Title           string
	MinPlayers      int
	MaxPlayers      int
	PlaytimeMinutes int
	MinAge          int
	Complexity      float64
	Rating          float64
}

// GameSummary is the durable shape of the single selected-game result slot.
type GameSummary struct {
	ID    uuid.UUID
	Title string
}
