package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
	"github.com/aliskhannn/learning-galaxy/internal/infra/sheet"
)

const sheetCacheKeyPrefix = "learning-galaxy-sheet:"

type cachedSheet struct {
	rows      []entities.Question
	fetchedAt time.Time
}

// QuestionBank downloads and parses question banks and keeps them in memory
// for ttl. The text of every successful download is also written to an
// optional TextCache, which serves as a fallback when a later download fails.
type QuestionBank struct {
	fetcher SheetFetcher
	cache   TextCache
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger

	mu     sync.RWMutex
	sheets map[string]cachedSheet
}

// NewQuestionBank creates a QuestionBank. cache may be nil.
func NewQuestionBank(fetcher SheetFetcher, cache TextCache, ttl time.Duration, logger *zap.Logger) *QuestionBank {
	return &QuestionBank{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
		sheets:  make(map[string]cachedSheet),
	}
}

// Rows returns the parsed rows of url, downloading them when the in-memory
// copy is missing or older than the ttl.
func (b *QuestionBank) Rows(ctx context.Context, url string) ([]entities.Question, error) {
	b.mu.RLock()
	cached, ok := b.sheets[url]
	b.mu.RUnlock()

	if ok && b.now().Sub(cached.fetchedAt) < b.ttl {
		return cached.rows, nil
	}

	rows, err := b.download(ctx, url)
	if err == nil {
		return rows, nil
	}

	if ok {
		b.logger.Warn("serving stale question bank", zap.String("url", url), zap.Error(err))
		return cached.rows, nil
	}

	if rows, cerr := b.fromCache(ctx, url); cerr == nil {
		b.logger.Warn("serving cached question bank", zap.String("url", url), zap.Error(err))
		return rows, nil
	}

	return nil, err
}

// Refresh downloads every known question bank again. A failed download
// keeps the previous copy.
func (b *QuestionBank) Refresh(ctx context.Context) error {
	b.mu.RLock()
	urls := make([]string, 0, len(b.sheets))
	for url := range b.sheets {
		urls = append(urls, url)
	}
	b.mu.RUnlock()

	var errs []error
	for _, url := range urls {
		if _, err := b.download(ctx, url); err != nil {
			errs = append(errs, err)
		}
	}

	b.logger.Info("question banks refreshed",
		zap.Int("total", len(urls)),
		zap.Int("failed", len(errs)),
	)

	return errors.Join(errs...)
}

// Start refreshes the question banks on the cron schedule until ctx is done.
func (b *QuestionBank) Start(ctx context.Context, schedule string) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(schedule, func() {
		if err := b.Refresh(ctx); err != nil {
			b.logger.Error("failed to refresh question banks", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add refresh job: %w", err)
	}

	c.Start()
	b.logger.Info("question bank refresh scheduled", zap.String("schedule", schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	b.logger.Info("question bank refresh stopped")

	return nil
}

func (b *QuestionBank) download(ctx context.Context, url string) ([]entities.Question, error) {
	text, err := b.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}

	rows := sheet.Parse(text)

	b.mu.Lock()
	b.sheets[url] = cachedSheet{rows: rows, fetchedAt: b.now()}
	b.mu.Unlock()

	if b.cache != nil {
		if err := b.cache.Set(ctx, sheetCacheKeyPrefix+url, text); err != nil {
			b.logger.Warn("failed to cache question bank", zap.String("url", url), zap.Error(err))
		}
	}

	return rows, nil
}

func (b *QuestionBank) fromCache(ctx context.Context, url string) ([]entities.Question, error) {
	if b.cache == nil {
		return nil, errors.New("no text cache")
	}

	text, err := b.cache.Get(ctx, sheetCacheKeyPrefix+url)
	if err != nil {
		return nil, err
	}

	return sheet.Parse(text), nil
}
