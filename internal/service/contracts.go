package service

import (
	"context"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
)

// SheetFetcher downloads the CSV text of a question bank.
type SheetFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// TextCache keeps the last downloaded text of each question bank.
type TextCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// RowLoader returns the parsed rows of a question bank.
type RowLoader interface {
	Rows(ctx context.Context, url string) ([]entities.Question, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*entities.Settings, error)
	Save(ctx context.Context, settings *entities.Settings) error
}

type LeaderboardRepository interface {
	List(ctx context.Context) ([]entities.LeaderboardEntry, error)
	Append(ctx context.Context, e entities.LeaderboardEntry) error
}

// GameEndFunc receives the result of a session when the player saves the score.
type GameEndFunc func(ctx context.Context, result entities.GameResult) error
