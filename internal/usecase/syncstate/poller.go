package usecase_syncstate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/boardswap/core/internal/model"
)

//go:generate mockery --name=RemoteStatusSource --output=./mocks/remotestatus --filename=remotestatus.go
type RemoteStatusSource interface {
	ParticipantPreview(ctx context.Context, sessionID model.SessionID) (model.ParticipantPreview, error)
}

// Poller periodically refreshes remote participant status for the
// tracker's active session. A new tick never starts while the previous
// round-trip is outstanding, and a result that arrives after the active
// session changed is dropped on the floor.
type Poller struct {
	source  RemoteStatusSource
	tracker *Tracker

	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	inFlight bool

	stopOnce sync.Once
	stop     chan struct{}
}

func NewPoller(source RemoteStatusSource, tracker *Tracker, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Poller{
		source:   source,
		tracker:  tracker,
		interval: interval,
		logger:   slog.Default(),
		stop:     make(chan struct{}),
	}
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

func (p *Poller) tick(ctx context.Context) {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return
	}
	p.inFlight = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	session := p.tracker.Session()
	if session.SessionID == model.EmptySessionID {
		return
	}

	preview, err := p.source.ParticipantPreview(ctx, session.SessionID)
	if err != nil {
		p.logger.Error("participant preview poll failed",
			slog.String("session_id", string(session.SessionID)),
			slog.String("error", err.Error()))
		return
	}

	// Stale result: the session switched while the fetch was in flight.
	if p.tracker.Session() != session {
		return
	}

	for _, slot := range preview.NamedSlots {
		if slot.HasPreferences {
			p.tracker.MarkRemoteContribution(model.ParticipantID(slot.Name))
		}
	}
}
