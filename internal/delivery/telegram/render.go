package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
	"github.com/aliskhannn/learning-galaxy/internal/service"
)

// renderQuestion renders the current question of an active session.
func renderQuestion(s service.Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s <b>%s</b> · %s\n", s.Game.Icon, esc(s.Game.Title), s.Difficulty)
	fmt.Fprintf(&sb, "Question %d/%d · ⭐ %d · 🔥 %d", s.Index+1, s.Length, s.Score.Stars, s.Score.Streak)
	if s.Timed {
		fmt.Fprintf(&sb, " · ⏱ %s", formatDuration(s.Remaining))
	}
	sb.WriteString("\n\n")

	if p := s.Prompt; p != nil {
		if p.Heading != "" {
			fmt.Fprintf(&sb, "<i>%s</i>\n", esc(p.Heading))
		}
		if p.Passage != "" {
			fmt.Fprintf(&sb, "<blockquote>%s</blockquote>\n", esc(p.Passage))
		}
		if p.Body != "" {
			fmt.Fprintf(&sb, "<b>%s</b>\n", esc(p.Body))
		}
		if p.ImageURL != "" {
			fmt.Fprintf(&sb, "<a href=\"%s\">🖼 picture</a>\n", esc(p.ImageURL))
		}
		if s.HintShown && p.HasHint() {
			fmt.Fprintf(&sb, "\n💡 %s\n", esc(p.Hint))
		}
	}

	if s.Answer != nil {
		fmt.Fprintf(&sb, "\nYour answer: <b>%s</b>\n", esc(s.Answer.SelectedOption))
	}

	if fb := s.Feedback; fb != nil {
		sb.WriteString("\n")
		if fb.Correct {
			fmt.Fprintf(&sb, "✅ Correct! +%d ⭐", fb.Earned)
			if fb.Celebrate {
				fmt.Fprintf(&sb, "\n🎉 %d in a row!", s.Score.Streak)
			}
		} else {
			fmt.Fprintf(&sb, "❌ Not quite. The answer is <b>%s</b>", esc(fb.Answer))
		}
		if fb.Explanation != "" {
			fmt.Fprintf(&sb, "\n<i>%s</i>", esc(fb.Explanation))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// renderResult renders the game over screen.
func renderResult(s service.Snapshot, timedOut bool) string {
	var sb strings.Builder

	if timedOut {
		sb.WriteString(msgTimeUp + "\n\n")
	}
	fmt.Fprintf(&sb, "🏁 <b>%s: game over</b>\n\n", esc(s.Game.Title))
	fmt.Fprintf(&sb, "⭐ Stars: <b>%d</b>\n", s.Score.Stars)
	fmt.Fprintf(&sb, "🔥 Best streak: %d\n", s.Score.MaxStreak)
	fmt.Fprintf(&sb, "✔️ Answered: %d/%d\n", s.Answered, s.Length)
	fmt.Fprintf(&sb, "💡 Hints used: %d\n", s.HintsUsed)
	fmt.Fprintf(&sb, "⏱ Time: %s\n", formatDuration(s.Elapsed))

	if s.ScoreSaved {
		sb.WriteString("\n🏆 Score saved.")
	} else {
		sb.WriteString("\nSend your name to save the score on the leaderboard.")
	}

	return sb.String()
}

// renderGames renders the list of games grouped by category.
func renderGames(games []entities.GameKind) string {
	titles := map[entities.Category]string{
		entities.CategoryMath:          "🔢 Math",
		entities.CategoryEnglish:       "🔤 English",
		entities.CategoryComprehension: "📚 Reading",
	}

	var sb strings.Builder
	sb.WriteString("<b>🎮 Games</b>\n")

	var current entities.Category
	for _, g := range games {
		if g.Category != current {
			current = g.Category
			fmt.Fprintf(&sb, "\n<b>%s</b>\n", titles[current])
		}
		fmt.Fprintf(&sb, "%s %s <code>%s</code>\n", g.Icon, esc(g.Title), g.ID)
	}

	sb.WriteString("\nTap a game or send /play &lt;game&gt; [difficulty].")

	return sb.String()
}

// renderLeaderboard renders a top list.
func renderLeaderboard(game string, entries []entities.LeaderboardEntry) string {
	var sb strings.Builder

	title := "All games"
	if g, ok := entities.LookupGameKind(game); ok {
		title = g.Icon + " " + g.Title
	}
	fmt.Fprintf(&sb, "🏆 <b>Leaderboard</b> · %s\n\n", esc(title))

	if len(entries) == 0 {
		sb.WriteString(msgEmptyBoard)
		return sb.String()
	}

	for i, e := range entries {
		fmt.Fprintf(&sb, "%d. <b>%s</b> · %d ⭐ · streak %d", i+1, esc(e.Name), e.Stars, e.Streak)
		if game == "" {
			fmt.Fprintf(&sb, " · %s", e.Game)
		}
		fmt.Fprintf(&sb, " · %s\n", e.Date.Format("2006-01-02"))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// renderSettings renders the settings screen.
func renderSettings(s *entities.Settings) string {
	return fmt.Sprintf(
		"<b>⚙️ Settings</b>\n\n"+
			"⏱ <b>Timed mode:</b> %s\n"+
			"🔊 <b>Sound:</b> %s\n"+
			"🎚 <b>Difficulty filter:</b> %s\n"+
			"📊 <b>Default difficulty:</b> %s\n",
		formatBool(s.TimedMode),
		formatBool(s.SoundEnabled),
		formatBool(s.DifficultyFilterEnabled),
		esc(s.DefaultDifficulty),
	)
}
