package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func jsonError(c *gin.Context, status int, message ...string) {
	msg := ""
	if len(message) > 0 {
		msg = message[0]
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: msg,
	})
}

type GameResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
	Layout   string `json:"layout"`
	Storied  bool   `json:"storied"`
	Enabled  bool   `json:"enabled"`
	SheetURL string `json:"sheetUrl"`
}

func newGameResponse(g entities.GameKind, s *entities.Settings) GameResponse {
	return GameResponse{
		ID:       g.ID,
		Title:    g.Title,
		Icon:     g.Icon,
		Category: string(g.Category),
		Layout:   string(g.Layout),
		Storied:  g.Storied,
		Enabled:  s.GameEnabled(g.ID),
		SheetURL: s.SheetURL(g),
	}
}

// QuestionsResponse is a preview of one session. Answers are never included.
type QuestionsResponse struct {
	Game       string            `json:"game"`
	Difficulty string            `json:"difficulty"`
	Count      int               `json:"count"`
	Questions  []entities.Prompt `json:"questions"`
}

type LeaderboardResponse struct {
	Game    string                      `json:"game,omitempty"`
	Entries []entities.LeaderboardEntry `json:"entries"`
}
