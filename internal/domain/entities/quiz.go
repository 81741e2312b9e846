package entities

import "time"

// SessionState is the lifecycle state of a play-through.
type SessionState string

const (
	SessionIdle     SessionState = "idle"     // no session, nothing to play
	SessionActive   SessionState = "active"   // questions are being answered
	SessionFinished SessionState = "finished" // past the last question or out of time
)

// Direction is a navigation step inside a session.
type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// ParseDirection parses "next" or "prev".
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirectionNext, DirectionPrev:
		return Direction(s), true
	default:
		return "", false
	}
}

// AnswerRecord is the answer given at one session position.
// It is written once and never replaced.
type AnswerRecord struct {
	SelectedOption string `json:"selectedOption"`
	IsCorrect      bool   `json:"isCorrect"`
}

// CheckAnswer builds the record for a selected value. Correctness is exact
// string equality with the canonical answer.
func CheckAnswer(selected, correct string) AnswerRecord {
	return AnswerRecord{
		SelectedOption: selected,
		IsCorrect:      selected == correct,
	}
}

// Score holds the counters of one play-through.
type Score struct {
	Stars     int `json:"stars"`     // never decreases within a session
	Streak    int `json:"streak"`    // consecutive correct answers
	MaxStreak int `json:"maxStreak"` // high-water mark of Streak
}

// Apply updates the score with one answer and returns the stars earned.
func (s *Score) Apply(correct bool, f DifficultyFilter) int {
	if !correct {
		s.Streak = 0
		return 0
	}

	earned := Points(s.Streak, f)
	s.Stars += earned
	s.Streak++
	s.MaxStreak = max(s.MaxStreak, s.Streak)

	return earned
}

// Feedback is the transient result shown after answering the current question.
// Navigation clears it.
type Feedback struct {
	Correct     bool   `json:"correct"`
	Answer      string `json:"answer,omitempty"` // canonical answer, set on a miss
	Explanation string `json:"explanation,omitempty"`
	Earned      int    `json:"earned"`
	Celebrate   bool   `json:"celebrate"` // streak reached a celebration multiple
}

// GameResult is what a finished session reports to the leaderboard.
type GameResult struct {
	Game      string
	Name      string
	Stars     int
	Streak    int
	HintsUsed int
	PlayedFor time.Duration
}
