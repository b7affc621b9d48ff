package infra_redis_coordination

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/boardswap/core/internal/model"
	"github.com/go-redis/redis"
	"github.com/google/uuid"
)

// Driver talks to the shared session document. The document is
// multi-writer but single-owner per sub-key: each participant only ever
// writes its own preference field, so sub-key writes never conflict and
// last-write-wins applies per field.
type Driver struct {
	client *redis.Client
	ttl    time.Duration
}

func New(
	client *redis.Client,
	ttl time.Duration,
) *Driver {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Driver{
		client: client,
		ttl:    ttl,
	}
}

type preferenceDoc struct {
	GameID     uuid.UUID `json:"game_id"`
	Rank       int       `json:"rank"`
	IsTopPick  bool      `json:"is_top_pick"`
	IsDisliked bool      `json:"is_disliked"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (d *Driver) RegisterSession(ctx context.Context, sessionID model.SessionID, hostName string, mode model.ShareMode) error {
	meta := d.metaKey(sessionID)
	if err := d.client.HMSet(meta, map[string]interface{}{
		"host": hostName,
		"mode": string(mode),
	}).Err(); err != nil {
		return err
	}
	return d.touch(sessionID)
}

func (d *Driver) SubmitPreferences(
	ctx context.Context,
	sessionID model.SessionID,
	participantKey string,
	prefs []model.Preference,
) error {
	docs := make([]preferenceDoc, 0, len(prefs))
	for _, p := range prefs {
		docs = append(docs, preferenceDoc{
			GameID:     p.GameID,
			Rank:       p.Rank.Value(),
			IsTopPick:  p.IsTopPick,
			IsDisliked: p.IsDisliked,
			UpdatedAt:  p.UpdatedAt,
		})
	}

	payload, err := json.Marshal(docs)
	if err != nil {
		return err
	}

	if err := d.client.HSet(d.prefsKey(sessionID), participantKey, payload).Err(); err != nil {
		return err
	}
	return d.touch(sessionID)
}

func (d *Driver) SetParticipantReady(ctx context.Context, sessionID model.SessionID, id model.ParticipantID) error {
	if err := d.client.SAdd(d.readyKey(sessionID), string(id)).Err(); err != nil {
		return err
	}
	return d.touch(sessionID)
}

func (d *Driver) SetSelectedGame(ctx context.Context, sessionID model.SessionID, game model.GameSummary) error {
	payload, err := json.Marshal(map[string]string{
		"id":    game.ID.String(),
		"title": game.Title,
	})
	if err != nil {
		return err
	}
	return d.client.Set(d.selectedKey(sessionID), payload, d.ttl).Err()
}

func (d *Driver) SelectedGame(ctx context.Context, sessionID model.SessionID) (model.GameSummary, error) {
	raw, err := d.client.Get(d.selectedKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return model.GameSummary{}, nil
		}
		return model.GameSummary{}, err
	}

	var doc struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return model.GameSummary{}, err
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return model.GameSummary{}, err
	}
	return model.GameSummary{ID: id, Title: doc.Title}, nil
}

func (d *Driver) ParticipantPreview(ctx context.Context, sessionID model.SessionID) (model.ParticipantPreview, error) {
	meta, err := d.client.HGetAll(d.metaKey(sessionID)).Result()
	if err != nil && err != redis.Nil {
		return model.ParticipantPreview{}, err
	}

	fields, err := d.client.HKeys(d.prefsKey(sessionID)).Result()
	if err != nil && err != redis.Nil {
		return model.ParticipantPreview{}, err
	}

	ready, err := d.client.SMembers(d.readyKey(sessionID)).Result()
	if err != nil && err != redis.Nil {
		return model.ParticipantPreview{}, err
	}
	readySet := make(map[string]bool, len(ready))
	for _, id := range ready {
		readySet[id] = true
	}

	preview := model.ParticipantPreview{
		HostName:  meta["host"],
		ShareMode: model.ShareMode(meta["mode"]),
	}
	for _, field := range fields {
		preview.NamedSlots = append(preview.NamedSlots, model.NamedSlot{
			Name:           ownerOfKey(field),
			Ready:          readySet[ownerOfKey(field)],
			HasPreferences: true,
		})
	}
	for _, id := range ready {
		if !containsSlot(preview.NamedSlots, id) {
			preview.NamedSlots = append(preview.NamedSlots, model.NamedSlot{
				Name:  id,
				Ready: true,
			})
		}
	}
	return preview, nil
}

func (d *Driver) SessionPreferences(
	ctx context.Context,
	sessionID model.SessionID,
) (map[model.ParticipantID][]model.Preference, error) {
	raw, err := d.client.HGetAll(d.prefsKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	out := make(map[model.ParticipantID][]model.Preference, len(raw))
	for field, payload := range raw {
		var docs []preferenceDoc
		if err := json.Unmarshal([]byte(payload), &docs); err != nil {
			return nil, err
		}

		owner := model.ParticipantID(ownerOfKey(field))
		prefs := make([]model.Preference, 0, len(docs))
		for _, doc := range docs {
			prefs = append(prefs, model.Preference{
				ParticipantID: owner,
				GameID:        doc.GameID,
				Rank:          model.NormalizeLegacyRank(doc.Rank),
				IsTopPick:     doc.IsTopPick,
				IsDisliked:    doc.IsDisliked,
				UpdatedAt:     doc.UpdatedAt,
			})
		}
		out[owner] = prefs
	}
	return out, nil
}

func (d *Driver) DropSession(ctx context.Context, sessionID model.SessionID) error {
	return d.client.Del(
		d.metaKey(sessionID),
		d.prefsKey(sessionID),
		d.readyKey(sessionID),
		d.selectedKey(sessionID),
	).Err()
}

// ownerOfKey unwraps the composite "host:<hostID>:for:<participantID>"
// key a host uses when relaying on behalf of another local participant.
func ownerOfKey(field string) string {
	if !strings.HasPrefix(field, "host:") {
		return field
	}
	if i := strings.Index(field, ":for:"); i >= 0 {
		return field[i+len(":for:"):]
	}
	return field
}

func containsSlot(slots []model.NamedSlot, name string) bool {
	for _, s := range slots {
		if s.Name == name {
			return true
		}
	}
	return false
}

func (d *Driver) touch(sessionID model.SessionID) error {
	for _, key := range []string{d.metaKey(sessionID), d.prefsKey(sessionID), d.readyKey(sessionID)} {
		if err := d.client.Expire(key, d.ttl).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) metaKey(id model.SessionID) string {
	return "session:" + string(id) + ":meta"
}

func (d *Driver) prefsKey(id model.SessionID) string {
	return "session:" + string(id) + ":prefs"
}

func (d *Driver) readyKey(id model.SessionID) string {
	return "session:" + string(id) + ":ready"
}

func (d *Driver) selectedKey(id model.SessionID) string {
	return "session:" + string(id) + ":selected"
}
