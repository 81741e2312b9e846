package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
	"github.com/aliskhannn/learning-galaxy/internal/repository"
	"github.com/aliskhannn/learning-galaxy/internal/service"
	"github.com/aliskhannn/learning-galaxy/internal/storage"
)

type loaderFunc func(ctx context.Context, url string) ([]entities.Question, error)

func (f loaderFunc) Rows(ctx context.Context, url string) ([]entities.Question, error) {
	return f(ctx, url)
}

func bankRows() []entities.Question {
	var rows []entities.Question
	for i := 0; i < 12; i++ {
		rows = append(rows, entities.Question{
			"game_type":  "space-math",
			"difficulty": "Easy",
			"num1":       "1",
			"num2":       "1",
			"operation":  "+",
			"answer":     "2",
			"option1":    "2",
			"option2":    "3",
		})
	}
	rows = append(rows, entities.Question{"game_type": "space-math", "difficulty": "Hard", "num1": "9", "num2": "9", "operation": "x", "answer": "81"})
	rows = append(rows, entities.Question{"game_type": "word-wizard", "text1": "Pick the noun", "answer": "cat"})
	return rows
}

type testServer struct {
	router *gin.Engine
	app    *service.AppState
}

func newTestServer(t *testing.T, loader RowLoader) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zaptest.NewLogger(t)
	store := storage.NewMemoryStore()
	app := service.NewAppState(
		repository.NewSettingsRepository(store),
		repository.NewLeaderboardRepository(store),
		logger,
	)
	builder := service.NewSessionBuilderWithSource(rand.NewSource(1))

	return &testServer{
		router: NewRouter(NewHandler(app, loader, builder, logger), logger),
		app:    app,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, loaderFunc(func(context.Context, string) ([]entities.Question, error) { return nil, nil }))

	w := s.do(t, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestListGames(t *testing.T) {
	s := newTestServer(t, loaderFunc(func(context.Context, string) ([]entities.Question, error) { return nil, nil }))

	_, err := s.app.ModifySettings(context.Background(), func(st *entities.Settings) error {
		st.EnabledGames["bubble-pop"] = false
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	w := s.do(t, http.MethodGet, "/api/games", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	games := decode[[]GameResponse](t, w)
	if len(games) != len(entities.GameKinds()) {
		t.Fatalf("got %d games, want %d", len(games), len(entities.GameKinds()))
	}
	for _, g := range games {
		if g.ID == "bubble-pop" && g.Enabled {
			t.Fatal("bubble-pop should be disabled")
		}
		if g.ID == "space-math" && (!g.Enabled || g.SheetURL != entities.DefaultMathSheetURL) {
			t.Fatalf("space-math = %+v", g)
		}
	}
}

func TestGetQuestions(t *testing.T) {
	s := newTestServer(t, loaderFunc(func(context.Context, string) ([]entities.Question, error) {
		return bankRows(), nil
	}))

	cases := []struct {
		name   string
		path   string
		status int
		count  int
	}{
		{name: "any level", path: "/api/games/space-math/questions", status: http.StatusOK, count: service.SessionSize},
		{name: "hard only", path: "/api/games/space-math/questions?difficulty=hard", status: http.StatusOK, count: 1},
		{name: "other game", path: "/api/games/word-wizard/questions", status: http.StatusOK, count: 1},
		{name: "no rows", path: "/api/games/idiom-island/questions", status: http.StatusNotFound},
		{name: "unknown game", path: "/api/games/chess/questions", status: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, tc.path, "")
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tc.status, w.Body.String())
			}
			if tc.status != http.StatusOK {
				return
			}

			resp := decode[QuestionsResponse](t, w)
			if resp.Count != tc.count || len(resp.Questions) != tc.count {
				t.Fatalf("count = %d (%d questions), want %d", resp.Count, len(resp.Questions), tc.count)
			}
			if strings.Contains(w.Body.String(), `"answer"`) {
				t.Fatalf("answers leaked: %s", w.Body.String())
			}
		})
	}
}

func TestGetQuestionsBankDown(t *testing.T) {
	s := newTestServer(t, loaderFunc(func(context.Context, string) ([]entities.Question, error) {
		return nil, errors.New("connection refused")
	}))

	w := s.do(t, http.MethodGet, "/api/games/space-math/questions", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if resp := decode[ErrorResponse](t, w); resp.Message == "" {
		t.Fatalf("error without message: %+v", resp)
	}
}

func TestLeaderboard(t *testing.T) {
	s := newTestServer(t, loaderFunc(func(context.Context, string) ([]entities.Question, error) { return nil, nil }))
	ctx := context.Background()

	for i, r := range []entities.GameResult{
		{Game: "space-math", Name: "Ada", Stars: 40, Streak: 2, PlayedFor: time.Minute},
		{Game: "space-math", Name: "Bob", Stars: 90, Streak: 5},
		{Game: "word-wizard", Name: "Cy", Stars: 60, Streak: 3},
	} {
		if err := s.app.OnGameEnd(ctx, r); err != nil {
			t.Fatalf("OnGameEnd #%d: %v", i, err)
		}
	}

	w := s.do(t, http.MethodGet, "/api/leaderboard/space-math", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	board := decode[LeaderboardResponse](t, w)
	if len(board.Entries) != 2 || board.Entries[0].Name != "Bob" {
		t.Fatalf("space-math board = %+v", board.Entries)
	}

	board = decode[LeaderboardResponse](t, s.do(t, http.MethodGet, "/api/leaderboard?limit=1", ""))
	if len(board.Entries) != 1 || board.Entries[0].Name != "Bob" {
		t.Fatalf("top of all games = %+v", board.Entries)
	}

	if w := s.do(t, http.MethodGet, "/api/leaderboard/chess", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown game status = %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/leaderboard?limit=zero", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad limit status = %d", w.Code)
	}
}

func TestSettings(t *testing.T) {
	s := newTestServer(t, loaderFunc(func(context.Context, string) ([]entities.Question, error) { return nil, nil }))

	w := s.do(t, http.MethodPut, "/api/settings", `{"timedMode":true,"defaultDifficulty":"medium"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	got := decode[entities.Settings](t, s.do(t, http.MethodGet, "/api/settings", ""))
	if !got.TimedMode || got.DefaultDifficulty != "Medium" {
		t.Fatalf("settings = %+v", got)
	}
	if got.MathSheetURL != entities.DefaultMathSheetURL || !got.SoundEnabled {
		t.Fatalf("unrelated keys lost their defaults: %+v", got)
	}

	for _, body := range []string{
		`{"defaultDifficulty":"impossible"}`,
		`{"enabledGames":{"chess":true}}`,
		`not json`,
	} {
		if w := s.do(t, http.MethodPut, "/api/settings", body); w.Code != http.StatusBadRequest {
			t.Fatalf("PUT %s status = %d, want 400", body, w.Code)
		}
	}
}

func TestSettingsConcurrentUpdatesKeepBoth(t *testing.T) {
	s := newTestServer(t, loaderFunc(func(context.Context, string) ([]entities.Question, error) { return nil, nil }))
	ctx := context.Background()

	for round := range 20 {
		_, err := s.app.ModifySettings(ctx, func(st *entities.Settings) error {
			st.TimedMode = false
			st.SoundEnabled = true
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if w := s.do(t, http.MethodPut, "/api/settings", `{"soundEnabled":false}`); w.Code != http.StatusOK {
				t.Errorf("status = %d", w.Code)
			}
		}()
		go func() {
			defer wg.Done()
			_, _ = s.app.ModifySettings(ctx, func(st *entities.Settings) error {
				st.TimedMode = true
				return nil
			})
		}()
		wg.Wait()

		got, err := s.app.Settings(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !got.TimedMode || got.SoundEnabled {
			t.Fatalf("round %d: timed=%v sound=%v, want both updates kept", round, got.TimedMode, got.SoundEnabled)
		}
	}
}

func TestSettingsRejectedUpdateIsNotSaved(t *testing.T) {
	s := newTestServer(t, loaderFunc(func(context.Context, string) ([]entities.Question, error) { return nil, nil }))

	w := s.do(t, http.MethodPut, "/api/settings", `{"timedMode":true,"defaultDifficulty":"impossible"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	got := decode[entities.Settings](t, s.do(t, http.MethodGet, "/api/settings", ""))
	if got.TimedMode {
		t.Fatal("invalid update was partly saved")
	}
}
