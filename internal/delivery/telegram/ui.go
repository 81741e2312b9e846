package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
	"github.com/aliskhannn/learning-galaxy/internal/service"
)

const gamesPerRow = 2

// buildGamesKeyboard builds one button per enabled game.
func buildGamesKeyboard(games []entities.GameKind) tgbotapi.InlineKeyboardMarkup {
	var (
		rows [][]tgbotapi.InlineKeyboardButton
		row  []tgbotapi.InlineKeyboardButton
	)

	for _, g := range games {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(g.Icon+" "+g.Title, buildPlayCallback(g.ID, "")))
		if len(row) == gamesPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuestionKeyboard builds the choices of an unanswered question and
// the hint and navigation buttons.
func buildQuestionKeyboard(s service.Snapshot) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if s.Answer == nil && s.Prompt != nil {
		var row []tgbotapi.InlineKeyboardButton
		for i, choice := range s.Prompt.Choices {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(choice, buildAnswerCallback(s.ID, s.Index, i)))
			if len(row) == 2 {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}

		if s.Prompt.HasHint() && !s.HintShown {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("💡 Hint", buildHintCallback(s.ID, s.Index)),
			))
		}
	}

	var nav []tgbotapi.InlineKeyboardButton
	if s.Index > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Back", buildNavCallback(s.ID, s.Index, entities.DirectionPrev)))
	}
	if s.Index < s.Length-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildNavCallback(s.ID, s.Index, entities.DirectionNext)))
	} else {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("🏁 Finish", buildNavCallback(s.ID, s.Index, entities.DirectionNext)))
	}
	rows = append(rows, nav)

	if s.Index < s.Length-1 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏹ End game", buildFinishCallback(s.ID)),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultKeyboard builds keyboard for the game over screen.
func buildResultKeyboard(s service.Snapshot) tgbotapi.InlineKeyboardMarkup {
	difficulty := ""
	if !s.Difficulty.IsAny() {
		difficulty = s.Difficulty.String()
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", buildPlayCallback(s.Game.ID, difficulty)),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Leaderboard", buildLeaderboardCallback(s.Game.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎮 Other games", buildGamesCallback()),
		),
	)
}

// buildSettingsKeyboard builds main settings keyboard.
func buildSettingsKeyboard(s *entities.Settings) tgbotapi.InlineKeyboardMarkup {
	diffRow := make([]tgbotapi.InlineKeyboardButton, 0, len(entities.Difficulties)+1)
	for _, d := range entities.Difficulties {
		label := string(d)
		if s.DefaultDifficulty == string(d) {
			label = "• " + label
		}
		diffRow = append(diffRow, tgbotapi.NewInlineKeyboardButtonData(label, buildSettingsCallback(settingsDifficulty, string(d))))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏱ Timed mode", buildSettingsCallback(settingsTimed)),
			tgbotapi.NewInlineKeyboardButtonData("🔊 Sound", buildSettingsCallback(settingsSound)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎚 Difficulty filter", buildSettingsCallback(settingsFilter)),
		),
		diffRow,
	)
}

// buildLeaderboardKeyboard offers a quick way back to the games.
func buildLeaderboardKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎮 Games", buildGamesCallback()),
		),
	)
}
