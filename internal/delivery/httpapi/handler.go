// Package httpapi serves games, question previews, settings and the
// leaderboard as JSON.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
	"github.com/aliskhannn/learning-galaxy/internal/service"
)

type Handler struct {
	app     AppState
	rows    RowLoader
	builder SessionBuilder
	logger  *zap.Logger
}

func NewHandler(app AppState, rows RowLoader, builder SessionBuilder, logger *zap.Logger) *Handler {
	return &Handler{
		app:     app,
		rows:    rows,
		builder: builder,
		logger:  logger,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListGames returns every registered game with its enabled flag and bank.
func (h *Handler) ListGames(c *gin.Context) {
	settings, err := h.app.Settings(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	games := entities.GameKinds()
	out := make([]GameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, newGameResponse(g, settings))
	}

	c.JSON(http.StatusOK, out)
}

// GetQuestions builds a session preview for a game.
// Query: difficulty=easy|medium|hard (default: the settings filter).
func (h *Handler) GetQuestions(c *gin.Context) {
	kind, ok := entities.LookupGameKind(c.Param("id"))
	if !ok {
		jsonError(c, http.StatusNotFound, "unknown game")
		return
	}

	ctx := c.Request.Context()

	settings, err := h.app.Settings(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !settings.GameEnabled(kind.ID) {
		jsonError(c, http.StatusForbidden, "game is disabled")
		return
	}

	filter := settings.DifficultyFilter()
	if d := c.Query("difficulty"); d != "" {
		filter = entities.ParseDifficultyFilter(d)
	}

	rows, err := h.rows.Rows(ctx, settings.SheetURL(kind))
	if err != nil {
		h.logger.Warn("question bank unavailable",
			zap.String("game", kind.ID),
			zap.Error(err),
		)
		jsonError(c, http.StatusBadGateway, "question bank unavailable")
		return
	}

	session := h.builder.Build(kind, service.FilterByGameType(rows, kind.ID), filter)
	if len(session) == 0 {
		jsonError(c, http.StatusNotFound, service.ErrNoQuestions.Error())
		return
	}

	c.JSON(http.StatusOK, QuestionsResponse{
		Game:       kind.ID,
		Difficulty: filter.String(),
		Count:      len(session),
		Questions:  h.builder.Prompts(kind, session),
	})
}

// GetLeaderboard returns the best scores of all games or of the game in
// the path. Query: limit (default 10).
func (h *Handler) GetLeaderboard(c *gin.Context) {
	game := c.Param("game")

	limit := service.DefaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			jsonError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.app.TopScores(c.Request.Context(), game, limit)
	if err != nil {
		if errors.Is(err, service.ErrUnknownGame) {
			jsonError(c, http.StatusNotFound, "unknown game")
			return
		}
		_ = c.Error(err)
		return
	}

	if entries == nil {
		entries = []entities.LeaderboardEntry{}
	}

	c.JSON(http.StatusOK, LeaderboardResponse{Game: game, Entries: entries})
}

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.app.Settings(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings merges the request body over the current settings.
// Keys missing from the body keep their value.
func (h *Handler) UpdateSettings(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.app.ModifySettings(c.Request.Context(), func(s *entities.Settings) error {
		if err := binding.JSON.BindBody(body, s); err != nil {
			return badRequestError("invalid request body")
		}
		return validateSettings(s)
	})
	if err != nil {
		var br badRequestError
		if errors.As(err, &br) {
			jsonError(c, http.StatusBadRequest, string(br))
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

type badRequestError string

func (e badRequestError) Error() string { return string(e) }

// validateSettings normalizes the default difficulty and rejects unknown
// levels and game ids.
func validateSettings(s *entities.Settings) error {
	if s.DefaultDifficulty != "None" {
		d, ok := entities.ParseDifficulty(s.DefaultDifficulty)
		if !ok {
			return badRequestError("defaultDifficulty must be Easy, Medium, Hard or None")
		}
		s.DefaultDifficulty = string(d)
	}
	for id := range s.EnabledGames {
		if _, ok := entities.LookupGameKind(id); !ok {
			return badRequestError("unknown game in enabledGames: " + id)
		}
	}
	return nil
}
