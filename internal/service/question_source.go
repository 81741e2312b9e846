package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
)

// SourceState is the observable result of the latest load.
type SourceState struct {
	Data    []entities.Question
	Loading bool
	Err     error
}

// QuestionSource loads the rows of one game from a question bank.
// Only the most recent Load publishes its result; a load superseded by a
// newer one is discarded when it settles.
type QuestionSource struct {
	loader RowLoader
	logger *zap.Logger

	mu    sync.RWMutex
	gen   uint64
	state SourceState
}

// NewQuestionSource creates a QuestionSource.
func NewQuestionSource(loader RowLoader, logger *zap.Logger) *QuestionSource {
	return &QuestionSource{
		loader: loader,
		logger: logger,
		state:  SourceState{Data: []entities.Question{}},
	}
}

// Load fetches url and keeps the rows whose game_type equals gameType.
// An empty gameType keeps every row and an empty url settles immediately
// with no data. The returned state is the result of this call, which is
// only published when no newer Load has started in the meantime.
func (s *QuestionSource) Load(ctx context.Context, url, gameType string) SourceState {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state.Loading = true
	s.mu.Unlock()

	var result SourceState
	if url == "" {
		result = SourceState{Data: []entities.Question{}}
	} else {
		rows, err := s.loader.Rows(ctx, url)
		if err != nil {
			s.logger.Warn("failed to load questions",
				zap.String("url", url),
				zap.String("game", gameType),
				zap.Error(err),
			)
			result = SourceState{Data: []entities.Question{}, Err: err}
		} else {
			result = SourceState{Data: FilterByGameType(rows, gameType)}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.logger.Debug("discarding superseded load",
			zap.String("url", url),
			zap.String("game", gameType),
		)
		return result
	}
	s.state = result

	return result
}

// State returns a copy of the latest published state.
func (s *QuestionSource) State() SourceState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	st.Data = append([]entities.Question(nil), s.state.Data...)
	return st
}
