package entities

import (
	"testing"
	"time"
)

func TestDifficultyFilterTimeLimit(t *testing.T) {
	cases := []struct {
		name   string
		filter DifficultyFilter
		want   time.Duration
	}{
		{name: "wildcard", filter: AnyDifficulty(), want: 50 * time.Second},
		{name: "easy", filter: OnlyDifficulty(DifficultyEasy), want: 50 * time.Second},
		{name: "medium", filter: OnlyDifficulty(DifficultyMedium), want: 40 * time.Second},
		{name: "hard", filter: OnlyDifficulty(DifficultyHard), want: 30 * time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.TimeLimit(); got != tc.want {
				t.Fatalf("TimeLimit() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPoints(t *testing.T) {
	cases := []struct {
		name   string
		streak int
		filter DifficultyFilter
		want   int
	}{
		{name: "first answer", streak: 0, filter: AnyDifficulty(), want: 15},
		{name: "streak bonus", streak: 2, filter: OnlyDifficulty(DifficultyEasy), want: 21},
		{name: "medium floors", streak: 1, filter: OnlyDifficulty(DifficultyMedium), want: 27},
		{name: "hard doubles", streak: 0, filter: OnlyDifficulty(DifficultyHard), want: 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Points(tc.streak, tc.filter); got != tc.want {
				t.Fatalf("Points(%d) = %d, want %d", tc.streak, got, tc.want)
			}
		})
	}
}
