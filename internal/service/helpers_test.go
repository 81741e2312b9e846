package service

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
)

func makePool(n int, game, difficulty string) []entities.Question {
	pool := make([]entities.Question, n)
	for i := range pool {
		pool[i] = entities.Question{
			entities.FieldGameType:   game,
			entities.FieldDifficulty: difficulty,
			entities.FieldNum1:       strconv.Itoa(i),
			entities.FieldOperation:  "+",
			entities.FieldNum2:       "100",
			entities.FieldAnswer:     strconv.Itoa(i + 100),
			entities.FieldHint:       "add them up",
		}
	}
	return pool
}

func newTestBuilder() *SessionBuilder {
	return NewSessionBuilderWithSource(rand.NewSource(42))
}

// recorder collects the results passed to a GameEndFunc.
type recorder struct {
	mu      sync.Mutex
	results []entities.GameResult
	err     error
}

func (r *recorder) onGameEnd(_ context.Context, res entities.GameResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.results = append(r.results, res)
	return nil
}

func (r *recorder) calls() []entities.GameResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.GameResult(nil), r.results...)
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and runs every timer that became due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []func()
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t.f)
		}
	}
	c.mu.Unlock()

	for _, f := range due {
		f()
	}
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// stubFetcher serves fixed CSV bodies by URL.
type stubFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	err    error
	calls  int
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.bodies[url], nil
}
