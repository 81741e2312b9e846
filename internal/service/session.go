package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
)

var ErrNoQuestions = errors.New("no questions available")

// Snapshot is a read-only view of a session for renderers.
type Snapshot struct {
	ID         string
	Game       entities.GameKind
	Difficulty entities.DifficultyFilter
	State      entities.SessionState
	Index      int
	Length     int
	Prompt     *entities.Prompt
	Answer     *entities.AnswerRecord // answer given at Index
	HintShown  bool
	HintsUsed  int
	Answered   int
	Score      entities.Score
	Feedback   *entities.Feedback
	ScoreSaved bool
	Elapsed    time.Duration
	Remaining  time.Duration // zero unless timed
	Timed      bool
}

// Engine runs one play-through at a time: it owns the session, the score
// and the per-question answer and hint records. All methods are safe for
// concurrent use.
type Engine struct {
	builder   *SessionBuilder
	onGameEnd GameEndFunc
	clock     Clock
	logger    *zap.Logger
	onExpire  func(Snapshot)

	mu         sync.Mutex
	id         string
	kind       entities.GameKind
	filter     entities.DifficultyFilter
	state      entities.SessionState
	questions  []entities.Question
	prompts    []entities.Prompt
	index      int
	answers    map[int]entities.AnswerRecord
	hints      map[int]bool
	score      entities.Score
	feedback   *entities.Feedback
	scoreSaved bool
	startedAt  time.Time
	endedAt    time.Time
	timed      bool
	deadline   time.Time
	timer      Timer
}

// NewEngine creates an idle Engine.
func NewEngine(builder *SessionBuilder, onGameEnd GameEndFunc, logger *zap.Logger) *Engine {
	return &Engine{
		builder:   builder,
		onGameEnd: onGameEnd,
		clock:     systemClock{},
		logger:    logger,
		state:     entities.SessionIdle,
		answers:   make(map[int]entities.AnswerRecord),
		hints:     make(map[int]bool),
	}
}

// SetClock replaces the time source. Call before Start.
func (e *Engine) SetClock(c Clock) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock = c
}

// SetExpireHandler registers a callback run when a timed session runs out.
func (e *Engine) SetExpireHandler(f func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onExpire = f
}

// Start builds a new session from pool and resets every counter. When no
// question survives the difficulty filter the engine stays idle and
// ErrNoQuestions is returned.
func (e *Engine) Start(kind entities.GameKind, pool []entities.Question, filter entities.DifficultyFilter, timed bool) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTimer()

	session := e.builder.Build(kind, pool, filter)

	e.id = uuid.NewString()
	e.kind = kind
	e.filter = filter
	e.questions = session
	e.prompts = e.builder.Prompts(kind, session)
	e.index = 0
	e.answers = make(map[int]entities.AnswerRecord)
	e.hints = make(map[int]bool)
	e.score = entities.Score{}
	e.feedback = nil
	e.scoreSaved = false
	e.startedAt = e.clock.Now()
	e.endedAt = time.Time{}
	e.timed = timed
	e.deadline = time.Time{}

	if len(session) == 0 {
		e.state = entities.SessionIdle
		e.logger.Info("session not started: empty pool",
			zap.String("game", kind.ID),
			zap.Int("pool", len(pool)),
			zap.Stringer("difficulty", filter),
		)
		return e.snapshot(), ErrNoQuestions
	}

	e.state = entities.SessionActive

	if timed {
		limit := filter.TimeLimit()
		e.deadline = e.startedAt.Add(limit)
		id := e.id
		e.timer = e.clock.AfterFunc(limit, func() { e.expire(id) })
	}

	e.logger.Info("session started",
		zap.String("session_id", e.id),
		zap.String("game", kind.ID),
		zap.Int("questions", len(session)),
		zap.Stringer("difficulty", filter),
		zap.Bool("timed", timed),
	)

	return e.snapshot(), nil
}

// Answer records selected as the answer at the current position, judged by
// exact equality with correct. It is a no-op unless the session is active
// and the position is still unanswered; accepted reports which case applied.
// The session never advances on its own.
func (e *Engine) Answer(selected, correct string) (fb entities.Feedback, accepted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.answer(selected, correct)
}

// Submit answers the current question against its canonical answer.
func (e *Engine) Submit(selected string) (entities.Feedback, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != entities.SessionActive {
		return entities.Feedback{}, false
	}

	return e.answer(selected, e.prompts[e.index].Answer)
}

// SubmitAt answers question index of session id. ok is false when the
// session or its position has moved on since the caller looked.
func (e *Engine) SubmitAt(id string, index int, selected string) (entities.Feedback, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.at(id, index) {
		return entities.Feedback{}, false
	}

	return e.answer(selected, e.prompts[e.index].Answer)
}

func (e *Engine) answer(selected, correct string) (entities.Feedback, bool) {
	if e.state != entities.SessionActive {
		return entities.Feedback{}, false
	}
	if _, done := e.answers[e.index]; done {
		return entities.Feedback{}, false
	}

	record := entities.CheckAnswer(selected, correct)
	e.answers[e.index] = record

	earned := e.score.Apply(record.IsCorrect, e.filter)

	fb := entities.Feedback{
		Correct:     record.IsCorrect,
		Explanation: e.prompts[e.index].Explanation,
		Earned:      earned,
	}
	if record.IsCorrect {
		fb.Celebrate = e.score.Streak%entities.StreakCelebrationThreshold == 0
	} else {
		fb.Answer = correct
	}
	e.feedback = &fb

	return fb, true
}

// Navigate moves to the next or previous question. Moving past the last
// question finishes the session; moving before the first is a no-op.
// Any feedback shown is cleared.
func (e *Engine) Navigate(dir entities.Direction) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != entities.SessionActive {
		return e.snapshot()
	}

	e.move(dir)

	return e.snapshot()
}

func (e *Engine) move(dir entities.Direction) {
	e.feedback = nil

	switch dir {
	case entities.DirectionNext:
		if e.index < len(e.questions)-1 {
			e.index++
		} else {
			e.finish()
		}
	case entities.DirectionPrev:
		if e.index > 0 {
			e.index--
		}
	}
}

// NavigateFrom moves like Navigate, but only while session id is still at
// index.
func (e *Engine) NavigateFrom(id string, index int, dir entities.Direction) (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.at(id, index) {
		return e.snapshot(), false
	}
	e.move(dir)

	return e.snapshot(), true
}

// ToggleHint reveals the hint of the current question. Revealing is
// one-way: repeated calls change nothing.
func (e *Engine) ToggleHint() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == entities.SessionActive {
		e.hints[e.index] = true
	}

	return e.snapshot()
}

// HintAt reveals the hint of question index of session id.
func (e *Engine) HintAt(id string, index int) (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.at(id, index) {
		return e.snapshot(), false
	}
	e.hints[e.index] = true

	return e.snapshot(), true
}

// Finish ends an active session early.
func (e *Engine) Finish() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == entities.SessionActive {
		e.finish()
	}

	return e.snapshot()
}

// FinishSession ends session id early. It is a no-op once another session
// has started.
func (e *Engine) FinishSession(id string) (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.id != id || e.state != entities.SessionActive {
		return e.snapshot(), false
	}
	e.finish()

	return e.snapshot(), true
}

// SaveScore reports the result under name. Blank names and already saved
// sessions are ignored. A failing callback leaves the score unsaved.
func (e *Engine) SaveScore(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	e.mu.Lock()
	if name == "" || e.scoreSaved || e.state == entities.SessionIdle {
		e.mu.Unlock()
		return nil
	}
	result := entities.GameResult{
		Game:      e.kind.ID,
		Name:      name,
		Stars:     e.score.Stars,
		Streak:    e.score.MaxStreak,
		HintsUsed: len(e.hints),
		PlayedFor: e.elapsed(),
	}
	id := e.id
	// Claimed before the callback runs so concurrent saves report once.
	e.scoreSaved = true
	e.mu.Unlock()

	if err := e.onGameEnd(ctx, result); err != nil {
		e.mu.Lock()
		if e.id == id {
			e.scoreSaved = false
		}
		e.mu.Unlock()
		return fmt.Errorf("save score: %w", err)
	}

	e.logger.Info("score saved",
		zap.String("session_id", id),
		zap.String("game", result.Game),
		zap.Int("stars", result.Stars),
		zap.Int("streak", result.Streak),
		zap.Int("hints_used", result.HintsUsed),
	)

	return nil
}

// Snapshot returns the current view of the session.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshot()
}

// Stop cancels a pending countdown.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTimer()
}

func (e *Engine) expire(id string) {
	e.mu.Lock()
	if e.id != id || e.state != entities.SessionActive {
		e.mu.Unlock()
		return
	}
	e.timer = nil
	e.finish()
	snap := e.snapshot()
	onExpire := e.onExpire
	e.mu.Unlock()

	e.logger.Info("session timed out", zap.String("session_id", id))

	if onExpire != nil {
		onExpire(snap)
	}
}

func (e *Engine) at(id string, index int) bool {
	return e.state == entities.SessionActive && e.id == id && e.index == index
}

func (e *Engine) finish() {
	e.stopTimer()
	e.feedback = nil
	e.state = entities.SessionFinished
	e.endedAt = e.clock.Now()

	e.logger.Info("session finished",
		zap.String("session_id", e.id),
		zap.String("game", e.kind.ID),
		zap.Int("stars", e.score.Stars),
		zap.Int("max_streak", e.score.MaxStreak),
		zap.Int("answered", len(e.answers)),
	)
}

func (e *Engine) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) elapsed() time.Duration {
	if e.startedAt.IsZero() {
		return 0
	}
	if !e.endedAt.IsZero() {
		return e.endedAt.Sub(e.startedAt)
	}
	return e.clock.Now().Sub(e.startedAt)
}

func (e *Engine) snapshot() Snapshot {
	s := Snapshot{
		ID:         e.id,
		Game:       e.kind,
		Difficulty: e.filter,
		State:      e.state,
		Index:      e.index,
		Length:     len(e.questions),
		HintShown:  e.hints[e.index],
		HintsUsed:  len(e.hints),
		Answered:   len(e.answers),
		Score:      e.score,
		ScoreSaved: e.scoreSaved,
		Elapsed:    e.elapsed(),
		Timed:      e.timed,
	}

	if e.state != entities.SessionIdle && e.index < len(e.prompts) {
		p := e.prompts[e.index]
		s.Prompt = &p
	}
	if a, ok := e.answers[e.index]; ok {
		s.Answer = &a
	}
	if e.feedback != nil {
		fb := *e.feedback
		s.Feedback = &fb
	}
	if e.timed && e.state == entities.SessionActive {
		s.Remaining = max(e.deadline.Sub(e.clock.Now()), 0)
	}

	return s
}
