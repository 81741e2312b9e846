package httpapi

import (
	"context"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
)

type AppState interface {
	Settings(ctx context.Context) (*entities.Settings, error)
	ModifySettings(ctx context.Context, fn func(s *entities.Settings) error) (*entities.Settings, error)
	TopScores(ctx context.Context, game string, limit int) ([]entities.LeaderboardEntry, error)
}

// RowLoader returns the parsed rows of a question bank.
type RowLoader interface {
	Rows(ctx context.Context, url string) ([]entities.Question, error)
}

type SessionBuilder interface {
	Build(kind entities.GameKind, pool []entities.Question, filter entities.DifficultyFilter) []entities.Question
	Prompts(kind entities.GameKind, session []entities.Question) []entities.Prompt
}
