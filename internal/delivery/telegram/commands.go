package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
	"github.com/aliskhannn/learning-galaxy/internal/service"
)

const (
	leaderboardSize = 10
	maxNameLength   = 32
)

// gamesHandler lists the enabled games with a play button for each.
func (h *Handler) gamesHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, err := h.app.Settings(ctx)
		if err != nil {
			return err
		}

		games := enabledGames(settings)

		msg := newHTMLMessage(chatID, renderGames(games))
		msg.ReplyMarkup = buildGamesKeyboard(games)
		h.send(msg)

		return nil
	}
}

// playCommandHandler parses "/play <game> [difficulty]".
func (h *Handler) playCommandHandler(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		fields := strings.Fields(args)
		if len(fields) == 0 {
			return userFacing(msgUsePlay)
		}

		difficulty := ""
		if len(fields) > 1 {
			difficulty = fields[1]
		}

		return h.startGame(ctx, chatID, strings.ToLower(fields[0]), difficulty)
	}
}

// startGame loads the questions of a game and sends the first one.
// An empty difficulty uses the settings default.
func (h *Handler) startGame(ctx context.Context, chatID int64, gameID, difficulty string) error {
	kind, ok := entities.LookupGameKind(gameID)
	if !ok {
		return userFacing(msgUnknownGame)
	}

	settings, err := h.app.Settings(ctx)
	if err != nil {
		return err
	}
	if !settings.GameEnabled(kind.ID) {
		return userFacing(msgGameDisabled)
	}

	filter := settings.DifficultyFilter()
	if difficulty != "" {
		filter = entities.ParseDifficultyFilter(difficulty)
	}

	player := h.players.Get(chatID)

	st := player.Source.Load(ctx, settings.SheetURL(kind), kind.ID)
	if st.Err != nil {
		h.logger.Warn("question load failed",
			zap.Int64("chat_id", chatID),
			zap.String("game", kind.ID),
			zap.Error(st.Err),
		)
		return userFacing(msgLoadFailed)
	}

	player.Engine.SetExpireHandler(func(s service.Snapshot) {
		h.onTimeUp(chatID, s)
	})

	snap, err := player.Engine.Start(kind, st.Data, filter, settings.TimedMode)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestions) {
			return userFacing(msgNoQuestions)
		}
		return err
	}

	h.sendQuestion(chatID, snap)

	return nil
}

// leaderboardHandler shows the top scores of a game, or of all games when
// args is empty. A non-zero messageID edits that message instead of sending.
func (h *Handler) leaderboardHandler(args string, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		game := strings.ToLower(strings.TrimSpace(args))

		entries, err := h.app.TopScores(ctx, game, leaderboardSize)
		if err != nil {
			if errors.Is(err, service.ErrUnknownGame) {
				return userFacing(msgUnknownGame)
			}
			return err
		}

		text := renderLeaderboard(game, entries)
		kb := buildLeaderboardKeyboard()

		if messageID != 0 {
			h.send(newHTMLEdit(chatID, messageID, text, &kb))
			return nil
		}

		msg := newHTMLMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)

		return nil
	}
}

// settingsHandler shows the settings screen.
func (h *Handler) settingsHandler(messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, err := h.app.Settings(ctx)
		if err != nil {
			return err
		}

		kb := buildSettingsKeyboard(settings)

		if messageID != 0 {
			h.send(newHTMLEdit(chatID, messageID, renderSettings(settings), &kb))
			return nil
		}

		msg := newHTMLMessage(chatID, renderSettings(settings))
		msg.ReplyMarkup = kb
		h.send(msg)

		return nil
	}
}

// textHandler treats plain text after a finished game as the player name.
func (h *Handler) textHandler(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		player := h.players.Get(chatID)
		snap := player.Engine.Snapshot()

		switch {
		case snap.State == entities.SessionActive:
			h.send(newHTMLMessage(chatID, "Use the buttons under the question to answer."))
			return nil
		case snap.State != entities.SessionFinished:
			return userFacing(msgNoSession)
		case snap.ScoreSaved:
			return userFacing(msgAlreadySaved)
		}

		name := sanitizeName(text)
		if name == "" {
			return userFacing("Send a name with at least one letter.")
		}

		if err := player.Engine.SaveScore(ctx, name); err != nil {
			return err
		}

		h.send(newHTMLMessage(chatID, fmt.Sprintf(msgScoreSaved, esc(name))))

		return nil
	}
}

// sendQuestion sends a new question message and strips the keyboard from
// the previous one.
func (h *Handler) sendQuestion(chatID int64, snap service.Snapshot) {
	msg := newHTMLMessage(chatID, renderQuestion(snap))
	msg.ReplyMarkup = buildQuestionKeyboard(snap)

	sent, ok := h.send(msg)
	if !ok {
		return
	}

	if prev, had := h.messages.Replace(chatID, sent.MessageID); had && prev.MessageID != sent.MessageID {
		h.send(tgbotapi.NewEditMessageReplyMarkup(chatID, prev.MessageID, tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
		}))
	}
}

// onTimeUp replaces the live question with the result screen.
func (h *Handler) onTimeUp(chatID int64, snap service.Snapshot) {
	kb := buildResultKeyboard(snap)
	text := renderResult(snap, true)

	if tracked, ok := h.messages.Get(chatID); ok {
		h.messages.Delete(chatID)
		h.send(newHTMLEdit(chatID, tracked.MessageID, text, &kb))
		return
	}

	msg := newHTMLMessage(chatID, text)
	msg.ReplyMarkup = kb
	h.send(msg)
}

func enabledGames(s *entities.Settings) []entities.GameKind {
	all := entities.GameKinds()
	out := make([]entities.GameKind, 0, len(all))
	for _, g := range all {
		if s.GameEnabled(g.ID) {
			out = append(out, g)
		}
	}
	return out
}

// sanitizeName trims the name and caps its length.
func sanitizeName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) > maxNameLength {
		s = string([]rune(s)[:maxNameLength])
	}
	return s
}
