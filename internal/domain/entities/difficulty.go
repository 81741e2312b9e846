package entities

import "strings"

// Difficulty is the level of a question or a play-through.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists all levels from easiest to hardest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty parses a level name case-insensitively.
// Empty strings, "None" and unknown values report ok=false.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, true
	case "medium":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	default:
		return "", false
	}
}

// DifficultyFilter selects the questions of a play-through: either any level
// or exactly one level. The zero value matches any level.
type DifficultyFilter struct {
	level Difficulty
	set   bool
}

// AnyDifficulty returns a filter that matches every question.
func AnyDifficulty() DifficultyFilter {
	return DifficultyFilter{}
}

// OnlyDifficulty returns a filter restricted to d.
func OnlyDifficulty(d Difficulty) DifficultyFilter {
	return DifficultyFilter{level: d, set: true}
}

// ParseDifficultyFilter maps a user or settings value to a filter.
// "None", "any", "" and unknown values all mean any level.
func ParseDifficultyFilter(s string) DifficultyFilter {
	if d, ok := ParseDifficulty(s); ok {
		return OnlyDifficulty(d)
	}
	return AnyDifficulty()
}

// Level returns the selected level, if any.
func (f DifficultyFilter) Level() (Difficulty, bool) {
	return f.level, f.set
}

// IsAny reports whether the filter matches every level.
func (f DifficultyFilter) IsAny() bool {
	return !f.set
}

// Matches reports whether q belongs to the filter. Rows without a
// difficulty match every filter.
func (f DifficultyFilter) Matches(q Question) bool {
	if !f.set {
		return true
	}
	if strings.TrimSpace(q[FieldDifficulty]) == "" {
		return true
	}
	return q[FieldDifficulty] == string(f.level)
}

// String returns the level name, or "None" for the wildcard.
func (f DifficultyFilter) String() string {
	if !f.set {
		return "None"
	}
	return string(f.level)
}
