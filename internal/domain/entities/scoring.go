package entities

import (
	"math"
	"time"
)

// Scoring policy shared by every sheet-driven game.
const (
	BasePoints                 = 15
	StreakBonus                = 3
	StreakCelebrationThreshold = 5
)

// Session countdowns for timed play.
const (
	TimeLimitEasy   = 50 * time.Second
	TimeLimitMedium = 40 * time.Second
	TimeLimitHard   = 30 * time.Second
)

// Multiplier returns the score multiplier of a filter.
// The wildcard scores like Easy.
func (f DifficultyFilter) Multiplier() float64 {
	switch f.level {
	case DifficultyHard:
		return 2
	case DifficultyMedium:
		return 1.5
	default:
		return 1
	}
}

// TimeLimit returns the countdown used by timed sessions.
// The wildcard counts down like Easy.
func (f DifficultyFilter) TimeLimit() time.Duration {
	switch f.level {
	case DifficultyHard:
		return TimeLimitHard
	case DifficultyMedium:
		return TimeLimitMedium
	default:
		return TimeLimitEasy
	}
}

// Points returns the stars earned by a correct answer given the streak
// before that answer. The floor is applied after the multiplication.
func Points(streak int, f DifficultyFilter) int {
	return int(math.Floor(float64(BasePoints+streak*StreakBonus) * f.Multiplier()))
}
