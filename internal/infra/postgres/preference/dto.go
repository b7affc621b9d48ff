package infra_postgres_preference

import (
	"time"

	"github.com/boardswap/core/internal/model"
	"github.com/google/uuid"
)

type preferenceDB struct {
	ParticipantID string    `db:"participant_id"`
	GameID        uuid.UUID `db:"game_id"`
	Rank          int       `db:"rank"`
	IsTopPick     bool      `db:"is_top_pick"`
	IsDisliked    bool      `db:"is_disliked"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (p *preferenceDB) ToDomain() model.Preference {
	return model.Preference{
		ParticipantID: model.ParticipantID(p.ParticipantID),
		GameID:        p.GameID,
		// Legacy rows persisted "unranked" as 0.
		Rank:       model.NormalizeLegacyRank(p.Rank),
		IsTopPick:  p.IsTopPick,
		IsDisliked: p.IsDisliked,
		UpdatedAt:  p.UpdatedAt,
	}
}
