package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
	"github.com/aliskhannn/learning-galaxy/internal/repository"
	"github.com/aliskhannn/learning-galaxy/internal/storage"
)

func newTestAppState(t *testing.T) *AppState {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewAppState(
		repository.NewSettingsRepository(store),
		repository.NewLeaderboardRepository(store),
		zaptest.NewLogger(t),
	)
}

func TestAppStateSettings(t *testing.T) {
	app := newTestAppState(t)
	ctx := context.Background()

	s, err := app.Settings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.TimedMode {
		t.Fatal("timed mode should be off by default")
	}

	updated, err := app.ModifySettings(ctx, func(s *entities.Settings) error {
		s.TimedMode = true
		s.GameSheetURLs["story-nebula"] = "https://example.com/stories.csv"
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.TimedMode {
		t.Fatal("modify did not apply")
	}

	s, err = app.Settings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	kind, _ := entities.LookupGameKind("story-nebula")
	if !s.TimedMode || s.SheetURL(kind) != "https://example.com/stories.csv" {
		t.Fatalf("settings not persisted: %+v", s)
	}
	if s.SheetURL(spaceMath) != entities.DefaultMathSheetURL {
		t.Fatalf("math url = %q", s.SheetURL(spaceMath))
	}
}

func TestAppStateModifySettingsError(t *testing.T) {
	app := newTestAppState(t)
	ctx := context.Background()
	errReject := errors.New("rejected")

	_, err := app.ModifySettings(ctx, func(s *entities.Settings) error {
		s.TimedMode = true
		return errReject
	})
	if !errors.Is(err, errReject) {
		t.Fatalf("err = %v, want the callback error", err)
	}

	s, err := app.Settings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.TimedMode {
		t.Fatal("settings saved although the callback failed")
	}

	s.SoundEnabled = false
	if err := app.UpdateSettings(ctx, s); err != nil {
		t.Fatal(err)
	}
	if got, _ := app.Settings(ctx); got.SoundEnabled {
		t.Fatal("UpdateSettings did not persist")
	}
}

func TestAppStateOnGameEndAndTopScores(t *testing.T) {
	app := newTestAppState(t)
	app.now = func() time.Time { return time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	results := []entities.GameResult{
		{Game: "space-math", Name: "Ada", Stars: 30, Streak: 2},
		{Game: "space-math", Name: "Bo", Stars: 45, Streak: 3, HintsUsed: 2},
		{Game: "space-math", Name: "Cy", Stars: 30, Streak: 4},
		{Game: "bubble-pop", Name: "Di", Stars: 99, Streak: 9},
	}
	for _, r := range results {
		if err := app.OnGameEnd(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	all, err := app.Leaderboard(ctx)
	if err != nil || len(all) != 4 {
		t.Fatalf("leaderboard = %d entries, %v", len(all), err)
	}
	if all[1].HintsUsed != 2 || all[1].Date.IsZero() {
		t.Fatalf("entry = %+v", all[1])
	}

	top, err := app.TopScores(ctx, "space-math", 0)
	if err != nil {
		t.Fatal(err)
	}
	names := []string{top[0].Name, top[1].Name, top[2].Name}
	if len(top) != 3 || names[0] != "Bo" || names[1] != "Cy" || names[2] != "Ada" {
		t.Fatalf("top = %v", names)
	}

	if _, err := app.TopScores(ctx, "no-such-game", 5); !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("err = %v, want ErrUnknownGame", err)
	}

	overall, err := app.TopScores(ctx, "", 1)
	if err != nil || len(overall) != 1 || overall[0].Name != "Di" {
		t.Fatalf("overall = %+v, %v", overall, err)
	}
}
