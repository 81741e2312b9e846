package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestSessionRegistry(t *testing.T) {
	rec := &recorder{}
	fetcher := &stubFetcher{bodies: map[string]string{}}
	bank := NewQuestionBank(fetcher, nil, time.Hour, zaptest.NewLogger(t))
	r := NewSessionRegistry(newTestBuilder(), bank, rec.onGameEnd, time.Minute, zaptest.NewLogger(t))

	now := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	a := r.Get(1)
	if r.Get(1) != a {
		t.Fatal("same key must return the same player")
	}
	if r.Get(2) == a {
		t.Fatal("different keys must not share a player")
	}

	now = now.Add(30 * time.Second)
	r.Get(2)

	now = now.Add(45 * time.Second)
	if n := r.Evict(); n != 1 {
		t.Fatalf("evicted %d, want 1", n)
	}
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}
	if r.Get(1) == a {
		t.Fatal("evicted player must be recreated")
	}
}

func TestSessionRegistryRunEvicts(t *testing.T) {
	rec := &recorder{}
	fetcher := &stubFetcher{bodies: map[string]string{}}
	bank := NewQuestionBank(fetcher, nil, time.Hour, zaptest.NewLogger(t))
	r := NewSessionRegistry(newTestBuilder(), bank, rec.onGameEnd, time.Minute, zaptest.NewLogger(t))

	var mu sync.Mutex
	now := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	r.Get(1)
	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(ctx, time.Millisecond)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for r.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("idle player not evicted")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	<-done
}
