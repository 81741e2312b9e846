package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/aliskhannn/learning-galaxy/internal/storage"
)

func TestQuestionBankCachesWithinTTL(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{"u": mixedCSV}}
	bank := NewQuestionBank(fetcher, nil, time.Minute, zaptest.NewLogger(t))

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	bank.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		rows, err := bank.Rows(ctx, "u")
		if err != nil || len(rows) != 3 {
			t.Fatalf("Rows = %d, %v", len(rows), err)
		}
	}
	if fetcher.calls != 1 {
		t.Fatalf("fetched %d times, want 1", fetcher.calls)
	}

	now = now.Add(2 * time.Minute)
	if _, err := bank.Rows(ctx, "u"); err != nil {
		t.Fatal(err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("fetched %d times after ttl, want 2", fetcher.calls)
	}
}

func TestQuestionBankServesStaleCopyOnFailure(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{"u": mixedCSV}}
	bank := NewQuestionBank(fetcher, nil, 0, zaptest.NewLogger(t))
	ctx := context.Background()

	if _, err := bank.Rows(ctx, "u"); err != nil {
		t.Fatal(err)
	}

	fetcher.err = errors.New("offline")
	rows, err := bank.Rows(ctx, "u")
	if err != nil || len(rows) != 3 {
		t.Fatalf("Rows = %d, %v; want stale copy", len(rows), err)
	}
}

func TestQuestionBankFallsBackToTextCache(t *testing.T) {
	cache := storage.NewMemoryStore()
	ctx := context.Background()

	warm := NewQuestionBank(&stubFetcher{bodies: map[string]string{"u": mixedCSV}}, cache, time.Hour, zaptest.NewLogger(t))
	if _, err := warm.Rows(ctx, "u"); err != nil {
		t.Fatal(err)
	}

	// A fresh process with no network still has the cached text.
	cold := NewQuestionBank(&stubFetcher{err: errors.New("offline")}, cache, time.Hour, zaptest.NewLogger(t))
	rows, err := cold.Rows(ctx, "u")
	if err != nil || len(rows) != 3 {
		t.Fatalf("Rows = %d, %v; want cached text", len(rows), err)
	}
}

func TestQuestionBankFailureWithoutCopy(t *testing.T) {
	boom := errors.New("offline")
	bank := NewQuestionBank(&stubFetcher{err: boom}, storage.NewMemoryStore(), time.Hour, zaptest.NewLogger(t))

	if _, err := bank.Rows(context.Background(), "u"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestQuestionBankRefresh(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{"a": mixedCSV, "b": "game_type\nx\n"}}
	bank := NewQuestionBank(fetcher, nil, time.Hour, zaptest.NewLogger(t))
	ctx := context.Background()

	for _, u := range []string{"a", "b"} {
		if _, err := bank.Rows(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	fetcher.bodies["a"] = "game_type\nonly-one\n"
	if err := bank.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if fetcher.calls != 4 {
		t.Fatalf("fetched %d times, want 4", fetcher.calls)
	}

	rows, _ := bank.Rows(ctx, "a")
	if len(rows) != 1 {
		t.Fatalf("rows after refresh = %d, want 1", len(rows))
	}

	fetcher.err = errors.New("offline")
	if err := bank.Refresh(ctx); err == nil {
		t.Fatal("expected refresh error")
	}
	if rows, _ := bank.Rows(ctx, "a"); len(rows) != 1 {
		t.Fatal("failed refresh must keep the previous copy")
	}
}
