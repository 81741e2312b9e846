package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
	"github.com/aliskhannn/learning-galaxy/internal/storage"
)

func TestLeaderboardRepositoryAppendOnly(t *testing.T) {
	repo := NewLeaderboardRepository(storage.NewMemoryStore())
	ctx := context.Background()

	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("new leaderboard has %d entries", len(entries))
	}

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	first := entities.LeaderboardEntry{Game: "space-math", Name: "Ada", Stars: 30, Streak: 2, Date: now}
	second := entities.LeaderboardEntry{Game: "story-nebula", Name: "Bo", Stars: 15, Streak: 1, Date: now.Add(time.Minute), HintsUsed: 1}

	if err := repo.Append(ctx, first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append(ctx, second); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0] != first || entries[1] != second {
		t.Fatalf("entries = %+v, want insertion order preserved", entries)
	}
}

// plainStore hides the Updater implementation of the wrapped store.
type plainStore struct {
	storage.Store
}

func TestLeaderboardRepositoryConcurrentAppend(t *testing.T) {
	cases := []struct {
		name  string
		store storage.Store
	}{
		{"updater", storage.NewMemoryStore()},
		{"get and set", plainStore{storage.NewMemoryStore()}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewLeaderboardRepository(tc.store)
			ctx := context.Background()

			const n = 20
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					e := entities.LeaderboardEntry{Game: "space-math", Name: fmt.Sprintf("p%d", i), Stars: i}
					if err := repo.Append(ctx, e); err != nil {
						t.Errorf("Append: %v", err)
					}
				}(i)
			}
			wg.Wait()

			entries, err := repo.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(entries) != n {
				t.Fatalf("got %d entries, want %d", len(entries), n)
			}
		})
	}
}

func TestLeaderboardRepositoryCorrupt(t *testing.T) {
	store := storage.NewMemoryStore()
	if err := store.Set(context.Background(), LeaderboardKey, "{broken"); err != nil {
		t.Fatal(err)
	}

	repo := NewLeaderboardRepository(store)
	if _, err := repo.List(context.Background()); err == nil {
		t.Fatal("List on a corrupt value should fail")
	}
	if err := repo.Append(context.Background(), entities.LeaderboardEntry{Name: "x"}); err == nil {
		t.Fatal("Append on a corrupt value should fail")
	}
}
