package service

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
)

// SessionSize is the number of questions sampled for a regular session.
const SessionSize = 10

// SessionBuilder selects and orders the questions of a play-through.
// It is safe for concurrent use.
type SessionBuilder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSessionBuilder creates a SessionBuilder seeded from the clock.
func NewSessionBuilder() *SessionBuilder {
	return NewSessionBuilderWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewSessionBuilderWithSource creates a SessionBuilder with a fixed random source.
func NewSessionBuilderWithSource(src rand.Source) *SessionBuilder {
	return &SessionBuilder{rng: rand.New(src)}
}

// Build filters pool by difficulty and returns the ordered session.
// Storied games play every row of one randomly picked story; other games
// play a shuffled sample of up to SessionSize rows drawn without replacement.
func (b *SessionBuilder) Build(kind entities.GameKind, pool []entities.Question, filter entities.DifficultyFilter) []entities.Question {
	filtered := filterByDifficulty(pool, filter)
	if len(filtered) == 0 {
		return nil
	}

	if kind.Storied {
		if story := b.pickStory(filtered); len(story) > 0 {
			return story
		}
		// No row carries a story id: fall back to a regular sample.
	}

	return takeFirst(b.shuffled(filtered), SessionSize)
}

// pickStory returns the rows of one random story ordered by sequence.
// Rows without a sequence keep their sheet order after the numbered ones.
func (b *SessionBuilder) pickStory(rows []entities.Question) []entities.Question {
	groups := make(map[string][]entities.Question)
	var ids []string
	for _, q := range rows {
		id := q.StoryID()
		if id == "" {
			continue
		}
		if _, ok := groups[id]; !ok {
			ids = append(ids, id)
		}
		groups[id] = append(groups[id], q)
	}
	if len(ids) == 0 {
		return nil
	}

	b.mu.Lock()
	id := ids[b.rng.Intn(len(ids))]
	b.mu.Unlock()

	story := append([]entities.Question(nil), groups[id]...)
	sort.SliceStable(story, func(i, j int) bool {
		si, iok := story[i].Sequence()
		sj, jok := story[j].Sequence()
		switch {
		case iok && jok:
			return si < sj
		case iok:
			return true
		default:
			return false
		}
	})

	return story
}

// shuffled returns a shuffled copy of the input slice.
func (b *SessionBuilder) shuffled(in []entities.Question) []entities.Question {
	out := append([]entities.Question(nil), in...)
	b.mu.Lock()
	b.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	b.mu.Unlock()
	return out
}

func (b *SessionBuilder) shuffledStrings(in []string) []string {
	out := append([]string(nil), in...)
	b.mu.Lock()
	b.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	b.mu.Unlock()
	return out
}

// filterByDifficulty keeps rows without a difficulty or matching the filter.
func filterByDifficulty(pool []entities.Question, filter entities.DifficultyFilter) []entities.Question {
	out := make([]entities.Question, 0, len(pool))
	for _, q := range pool {
		if filter.Matches(q) {
			out = append(out, q)
		}
	}
	return out
}

// FilterByGameType keeps rows tagged with gameType. An empty gameType keeps every row.
func FilterByGameType(rows []entities.Question, gameType string) []entities.Question {
	out := make([]entities.Question, 0, len(rows))
	for _, q := range rows {
		if gameType == "" || q.GameType() == gameType {
			out = append(out, q)
		}
	}
	return out
}

// takeFirst returns the first n elements of qs, or the whole slice if it is shorter.
func takeFirst(qs []entities.Question, n int) []entities.Question {
	if n <= 0 {
		return nil
	}
	if len(qs) <= n {
		return qs
	}
	return qs[:n]
}
