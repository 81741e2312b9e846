package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
	"github.com/aliskhannn/learning-galaxy/internal/storage"
)

// LeaderboardKey is the store key of the leaderboard list.
const LeaderboardKey = "learning-galaxy-leaderboard"

// LeaderboardRepository keeps every saved score as one JSON list.
type LeaderboardRepository struct {
	store storage.Store

	// Serializes read-modify-write for stores without Updater.
	mu sync.Mutex
}

func NewLeaderboardRepository(store storage.Store) *LeaderboardRepository {
	return &LeaderboardRepository{store: store}
}

// List returns all entries in insertion order.
func (r *LeaderboardRepository) List(ctx context.Context) ([]entities.LeaderboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

// Append adds an entry to the end of the list. Stores that implement
// storage.Updater append atomically; others are serialized in process.
func (r *LeaderboardRepository) Append(ctx context.Context, e entities.LeaderboardEntry) error {
	if u, ok := r.store.(storage.Updater); ok {
		err := u.Update(ctx, LeaderboardKey, func(current string, found bool) (string, error) {
			entries, err := decodeLeaderboard(current, found)
			if err != nil {
				return "", err
			}
			return encodeLeaderboard(append(entries, e))
		})
		if err != nil {
			return fmt.Errorf("save leaderboard: %w", err)
		}
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx)
	if err != nil {
		return err
	}

	raw, err := encodeLeaderboard(append(entries, e))
	if err != nil {
		return err
	}

	if err := r.store.Set(ctx, LeaderboardKey, raw); err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}

	return nil
}

func (r *LeaderboardRepository) load(ctx context.Context) ([]entities.LeaderboardEntry, error) {
	raw, err := r.store.Get(ctx, LeaderboardKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}

	return decodeLeaderboard(raw, err == nil)
}

// decodeLeaderboard parses a stored list. A missing or empty value is an
// empty leaderboard.
func decodeLeaderboard(raw string, found bool) ([]entities.LeaderboardEntry, error) {
	if !found || raw == "" {
		return []entities.LeaderboardEntry{}, nil
	}

	var entries []entities.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	if entries == nil {
		entries = []entities.LeaderboardEntry{}
	}

	return entries, nil
}

func encodeLeaderboard(entries []entities.LeaderboardEntry) (string, error) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode leaderboard: %w", err)
	}
	return string(raw), nil
}
