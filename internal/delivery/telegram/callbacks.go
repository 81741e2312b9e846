package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
	"github.com/aliskhannn/learning-galaxy/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	data := decodeCallback(cb.Data)

	var (
		toast string
		fn    HandlerFunc
	)

	switch data.Action {
	case actionPlay:
		fn = func(ctx context.Context, chatID int64) error {
			return h.startGame(ctx, chatID, data.param(0), data.param(1))
		}
	case actionAnswer, actionHint, actionNav, actionFinish:
		toast = h.handleSessionCallback(chatID, messageID, data)
	case actionSettings:
		fn = func(ctx context.Context, chatID int64) error {
			var err error
			toast, err = h.handleSettingsCallback(ctx, chatID, messageID, data)
			return err
		}
	case actionLeaderboard:
		fn = h.leaderboardHandler(data.param(0), messageID)
	case actionGames:
		fn = h.gamesHandler()
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	if fn != nil {
		_ = h.withErrorHandling(fn)(ctx, chatID)
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, toast)
}

// handleSessionCallback applies a button press to the running session.
// Presses on a keyboard of another session or question are ignored; the
// engine repeats that check under its own lock.
func (h *Handler) handleSessionCallback(chatID int64, messageID int, data callbackData) string {
	engine := h.players.Get(chatID).Engine
	snap := engine.Snapshot()

	if snap.State != entities.SessionActive || sessionTag(snap.ID) != data.param(0) {
		return msgStaleQuestion
	}

	index := snap.Index
	if data.Action != actionFinish {
		if n, err := strconv.Atoi(data.param(1)); err != nil || n != index {
			return msgStaleQuestion
		}
	}

	var (
		toast string
		ok    bool
	)

	switch data.Action {
	case actionAnswer:
		choice, err := strconv.Atoi(data.param(2))
		if err != nil || snap.Prompt == nil || choice < 0 || choice >= len(snap.Prompt.Choices) {
			return msgStaleQuestion
		}
		var fb entities.Feedback
		if fb, ok = engine.SubmitAt(snap.ID, index, snap.Prompt.Choices[choice]); !ok {
			return msgStaleQuestion
		}
		toast = "❌"
		if fb.Correct {
			toast = "✅ +" + strconv.Itoa(fb.Earned) + " ⭐"
		}
		snap = engine.Snapshot()

	case actionHint:
		snap, ok = engine.HintAt(snap.ID, index)

	case actionNav:
		dir, valid := entities.ParseDirection(data.param(2))
		if !valid {
			return msgStaleQuestion
		}
		snap, ok = engine.NavigateFrom(snap.ID, index, dir)

	case actionFinish:
		snap, ok = engine.FinishSession(snap.ID)
	}

	if !ok {
		return msgStaleQuestion
	}

	h.showSession(chatID, messageID, snap)

	return toast
}

// showSession edits the session message to its current state.
func (h *Handler) showSession(chatID int64, messageID int, snap service.Snapshot) {
	switch snap.State {
	case entities.SessionActive:
		kb := buildQuestionKeyboard(snap)
		h.send(newHTMLEdit(chatID, messageID, renderQuestion(snap), &kb))
	case entities.SessionFinished:
		h.messages.Delete(chatID)
		kb := buildResultKeyboard(snap)
		h.send(newHTMLEdit(chatID, messageID, renderResult(snap, false), &kb))
	}
}

func (h *Handler) handleSettingsCallback(ctx context.Context, chatID int64, messageID int, data callbackData) (string, error) {
	updated, err := h.app.ModifySettings(ctx, func(s *entities.Settings) error {
		switch data.param(0) {
		case settingsTimed:
			s.TimedMode = !s.TimedMode
		case settingsSound:
			s.SoundEnabled = !s.SoundEnabled
		case settingsFilter:
			s.DifficultyFilterEnabled = !s.DifficultyFilterEnabled
		case settingsDifficulty:
			if d, ok := entities.ParseDifficulty(data.param(1)); ok {
				s.DefaultDifficulty = string(d)
				s.DifficultyFilterEnabled = true
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	kb := buildSettingsKeyboard(updated)
	h.send(newHTMLEdit(chatID, messageID, renderSettings(updated), &kb))

	return msgSettingsSaved, nil
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
