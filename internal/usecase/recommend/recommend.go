package usecase_recommend

import (
	"context"
	"errors"
	"sort"

	"github.com/boardswap/core/internal/model"
	"github.com/google/uuid"
)

var (
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
)

const (
	// TopPickBonus is added on top of the positional score of any entry
	// flagged as a top pick, independent of its rank contribution.
	TopPickBonus = 0.5

	DefaultAlternativesBound = 5
)

//go:generate mockery --name=GameCatalog --output=./mocks/catalog --filename=catalog.go
type GameCatalog interface {
	GamesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.GameMeta, error)
}

//go:generate mockery --name=LocalPreferences --output=./mocks/local --filename=local.go
type LocalPreferences interface {
	Preferences(ctx context.Context, participantID model.ParticipantID) ([]model.Preference, error)
}

//go:generate mockery --name=RemotePreferences --output=./mocks/remote --filename=remote.go
type RemotePreferences interface {
	SessionPreferences(ctx context.Context, sessionID model.SessionID) (map[model.ParticipantID][]model.Preference, error)
}

type Usecase struct {
	catalog GameCatalog
	local   LocalPreferences
	remote  RemotePreferences

	alternativesBound int
}

func New(
	catalog GameCatalog,
	local LocalPreferences,
	remote RemotePreferences,
	alternativesBound int,
) *Usecase {
	if alternativesBound <= 0 {
		alternativesBound = DefaultAlternativesBound
	}

	return &Usecase{
		catalog:           catalog,
		local:             local,
		remote:            remote,
		alternativesBound: alternativesBound,
	}
}

// Recommend merges local and remote preferences for the session's
// participants, resolves the eligible game ids against the catalog in
// input order, and runs the scoring pass. Unknown game ids are dropped
// silently: the catalog may have moved under a pending request.
func (u *Usecase) Recommend(
	ctx context.Context,
	sessionID model.SessionID,
	participants []model.Participant,
	eligibleGameIDs []uuid.UUID,
	promotedGameID uuid.UUID,
) (model.RecommendationResult, error) {
	games, err := u.catalog.GamesByIDs(ctx, eligibleGameIDs)
	if err != nil {
		return model.RecommendationResult{}, errors.Join(ErrInternal, err)
	}

	remote, err := u.remote.SessionPreferences(ctx, sessionID)
	if err != nil {
		return model.RecommendationResult{}, errors.Join(ErrInternal, err)
	}

	prefs := make(map[model.ParticipantID][]model.Preference, len(participants))
	for _, p := range participants {
		if p.Origin == model.OriginLocal {
			local, err := u.local.Preferences(ctx, p.ID)
			if err != nil {
				return model.RecommendationResult{}, errors.Join(ErrInternal, err)
			}
			prefs[p.ID] = local
			continue
		}
		prefs[p.ID] = remote[p.ID]
	}

	return Compute(games, prefs, participants, promotedGameID, u.alternativesBound), nil
}

// Compute turns the merged preference set into one group recommendation.
// Pure and deterministic: identical inputs yield identical output,
// including alternative ordering.
//
// A single dislike from any participant is an absolute veto. Surviving
// games are scored with a Normalized Borda Count so that every ballot
// contributes on a fixed 0..1 scale regardless of how many games the
// participant bothered to rank, plus TopPickBonus for top picks. Ties
// keep the relative order of the eligible input list.
func Compute(
	games []model.GameMeta,
	prefsByParticipant map[model.ParticipantID][]model.Preference,
	participants []model.Participant,
	promotedGameID uuid.UUID,
	alternativesBound int,
) model.RecommendationResult {
	if alternativesBound <= 0 {
		alternativesBound = DefaultAlternativesBound
	}

	// Nobody to recommend for means nothing to recommend.
	if len(games) == 0 || len(participants) == 0 {
		return model.RecommendationResult{}
	}

	metaByID := make(map[uuid.UUID]model.GameMeta, len(games))
	for _, g := range games {
		metaByID[g.ID] = g
	}

	vetoed := vetoPass(games, prefsByParticipant, participants)

	eligible := make([]model.GameMeta, 0, len(games))
	for _, g := range games {
		if _, gone := vetoed.by[g.ID]; !gone {
			eligible = append(eligible, g)
		}
	}

	scores := scorePass(eligible, prefsByParticipant, participants)

	sorted := make([]model.GameMeta, len(eligible))
	copy(sorted, eligible)
	sort.SliceStable(sorted, func(i, j int) bool {
		return scores[sorted[i].ID] > scores[sorted[j].ID]
	})

	sorted = promote(sorted, promotedGameID)

	result := model.RecommendationResult{
		Vetoed: vetoed.attributions(metaByID),
	}
	if len(sorted) > 0 {
		result.TopPick = &model.ScoredGame{Game: sorted[0], Score: scores[sorted[0].ID]}
	}
	rest := sorted[min(1, len(sorted)):]
	if len(rest) > alternativesBound {
		rest = rest[:alternativesBound]
	}
	for _, g := range rest {
		result.Alternatives = append(result.Alternatives, model.ScoredGame{Game: g, Score: scores[g.ID]})
	}

	return result
}

type vetoSet struct {
	by    map[uuid.UUID][]model.ParticipantID
	order []uuid.UUID
}

func vetoPass(
	games []model.GameMeta,
	prefsByParticipant map[model.ParticipantID][]model.Preference,
	participants []model.Participant,
) vetoSet {
	inSet := make(map[uuid.UUID]bool, len(games))
	for _, g := range games {
		inSet[g.ID] = true
	}

	v := vetoSet{by: make(map[uuid.UUID][]model.ParticipantID)}
	for _, p := range participants {
		for _, pref := range prefsByParticipant[p.ID] {
			if !pref.IsDisliked || !inSet[pref.GameID] {
				continue
			}
			if _, seen := v.by[pref.GameID]; !seen {
				v.order = append(v.order, pref.GameID)
			}
			if !containsParticipant(v.by[pref.GameID], p.ID) {
				v.by[pref.GameID] = append(v.by[pref.GameID], p.ID)
			}
		}
	}
	return v
}

func (v vetoSet) attributions(metaByID map[uuid.UUID]model.GameMeta) []model.VetoedGame {
	out := make([]model.VetoedGame, 0, len(v.order))
	for _, id := range v.order {
		out = append(out, model.VetoedGame{Game: metaByID[id], VetoedBy: v.by[id]})
	}
	return out
}

func scorePass(
	eligible []model.GameMeta,
	prefsByParticipant map[model.ParticipantID][]model.Preference,
	participants []model.Participant,
) map[uuid.UUID]float64 {
	inSet := make(map[uuid.UUID]bool, len(eligible))
	for _, g := range eligible {
		inSet[g.ID] = true
	}

	scores := make(map[uuid.UUID]float64, len(eligible))
	for _, p := range participants {
		ballot := make([]model.Preference, 0, len(prefsByParticipant[p.ID]))
		for _, pref := range prefsByParticipant[p.ID] {
			if !inSet[pref.GameID] {
				continue
			}
			if pref.Rank.IsRanked() || pref.IsTopPick {
				ballot = append(ballot, pref)
			}
		}

		// Ranked entries ascending; unranked top picks sort last,
		// keeping their relative input order.
		sort.SliceStable(ballot, func(i, j int) bool {
			ri, rj := ballot[i].Rank, ballot[j].Rank
			if ri.IsRanked() && rj.IsRanked() {
				return ri.Value() < rj.Value()
			}
			return ri.IsRanked() && !rj.IsRanked()
		})

		m := len(ballot)
		for i, pref := range ballot {
			var s float64
			if m > 1 {
				s = float64(m-1-i) / float64(m-1)
			} else {
				s = 1.0
			}
			if pref.IsTopPick {
				s += TopPickBonus
			}
			scores[pref.GameID] += s
		}
	}
	return scores
}

// promote moves the promoted game to the front without reordering the
// remainder. An unknown or nil id leaves the order untouched.
func promote(sorted []model.GameMeta, promotedGameID uuid.UUID) []model.GameMeta {
	if promotedGameID == uuid.Nil {
		return sorted
	}
	at := -1
	for i, g := range sorted {
		if g.ID == promotedGameID {
			at = i
			break
		}
	}
	if at <= 0 {
		return sorted
	}

	out := make([]model.GameMeta, 0, len(sorted))
	out = append(out, sorted[at])
	out = append(out, sorted[:at]...)
	out = append(out, sorted[at+1:]...)
	return out
}

func containsParticipant(ids []model.ParticipantID, id model.ParticipantID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
