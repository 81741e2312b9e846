package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
)

var ErrUnknownGame = errors.New("unknown game")

// DefaultLeaderboardLimit is the size of a top list when no limit is given.
const DefaultLeaderboardLimit = 10

// AppState holds the application settings and the leaderboard. It is passed
// explicitly to every front end and persists through its repositories.
type AppState struct {
	settingsRepo    SettingsRepository
	leaderboardRepo LeaderboardRepository
	now             func() time.Time
	logger          *zap.Logger

	// Serializes settings updates.
	mu sync.Mutex
}

// NewAppState creates an AppState.
func NewAppState(
	settingsRepo SettingsRepository,
	leaderboardRepo LeaderboardRepository,
	logger *zap.Logger,
) *AppState {
	return &AppState{
		settingsRepo:    settingsRepo,
		leaderboardRepo: leaderboardRepo,
		now:             time.Now,
		logger:          logger,
	}
}

// Settings returns the current settings merged over the defaults.
func (a *AppState) Settings(ctx context.Context) (*entities.Settings, error) {
	s, err := a.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return s, nil
}

// UpdateSettings replaces the stored settings.
func (a *AppState) UpdateSettings(ctx context.Context, s *entities.Settings) error {
	if s == nil {
		return errors.New("settings are nil")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.saveSettings(ctx, s)
}

// ModifySettings loads the settings, applies fn and saves the result as
// one step. When fn fails nothing is saved and its error is returned as is.
func (a *AppState) ModifySettings(ctx context.Context, fn func(s *entities.Settings) error) (*entities.Settings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if err := fn(s); err != nil {
		return nil, err
	}

	if err := a.saveSettings(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}

func (a *AppState) saveSettings(ctx context.Context, s *entities.Settings) error {
	if err := a.settingsRepo.Save(ctx, s); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}

	a.logger.Info("settings updated",
		zap.Bool("timed_mode", s.TimedMode),
		zap.String("default_difficulty", s.DefaultDifficulty),
	)

	return nil
}

// Leaderboard returns every saved entry in insertion order.
func (a *AppState) Leaderboard(ctx context.Context) ([]entities.LeaderboardEntry, error) {
	entries, err := a.leaderboardRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	return entries, nil
}

// TopScores returns the best entries of a game, or of all games when game
// is empty.
func (a *AppState) TopScores(ctx context.Context, game string, limit int) ([]entities.LeaderboardEntry, error) {
	if game != "" {
		if _, ok := entities.LookupGameKind(game); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownGame, game)
		}
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	entries, err := a.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	return entities.TopEntries(entries, game, limit), nil
}

// AddLeaderboardEntry appends an entry to the leaderboard.
func (a *AppState) AddLeaderboardEntry(ctx context.Context, e entities.LeaderboardEntry) error {
	if err := a.leaderboardRepo.Append(ctx, e); err != nil {
		return fmt.Errorf("add leaderboard entry: %w", err)
	}
	return nil
}

// OnGameEnd records a finished game on the leaderboard. It is the
// GameEndFunc handed to every Engine.
func (a *AppState) OnGameEnd(ctx context.Context, r entities.GameResult) error {
	return a.AddLeaderboardEntry(ctx, entities.NewLeaderboardEntry(r, a.now()))
}
