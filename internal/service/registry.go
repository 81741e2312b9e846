package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Player is the per-player state kept between messages: the session engine
// and the question source feeding it.
type Player struct {
	Engine *Engine
	Source *QuestionSource

	lastSeen time.Time
}

// SessionRegistry keeps one Player per key and evicts players idle for
// longer than the configured timeout.
type SessionRegistry struct {
	builder     *SessionBuilder
	loader      RowLoader
	onGameEnd   GameEndFunc
	idleTimeout time.Duration
	now         func() time.Time
	logger      *zap.Logger

	mu      sync.Mutex
	players map[int64]*Player
}

// NewSessionRegistry creates a SessionRegistry.
func NewSessionRegistry(
	builder *SessionBuilder,
	loader RowLoader,
	onGameEnd GameEndFunc,
	idleTimeout time.Duration,
	logger *zap.Logger,
) *SessionRegistry {
	return &SessionRegistry{
		builder:     builder,
		loader:      loader,
		onGameEnd:   onGameEnd,
		idleTimeout: idleTimeout,
		now:         time.Now,
		logger:      logger,
		players:     make(map[int64]*Player),
	}
}

// Get returns the player of key, creating it on first use.
func (r *SessionRegistry) Get(key int64) *Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[key]
	if !ok {
		p = &Player{
			Engine: NewEngine(r.builder, r.onGameEnd, r.logger.With(zap.Int64("player", key))),
			Source: NewQuestionSource(r.loader, r.logger),
		}
		r.players[key] = p
	}
	p.lastSeen = r.now()

	return p
}

// Len returns the number of tracked players.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Evict drops players idle for longer than the timeout and returns how many
// were removed.
func (r *SessionRegistry) Evict() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTimeout)
	removed := 0
	for key, p := range r.players {
		if p.lastSeen.Before(cutoff) {
			p.Engine.Stop()
			delete(r.players, key)
			removed++
		}
	}

	return removed
}

// Run evicts idle players every interval until ctx is done.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(); n > 0 {
				r.logger.Info("evicted idle players",
					zap.Int("count", n),
					zap.Int("remaining", r.Len()),
				)
			}
		}
	}
}
