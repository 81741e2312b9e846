// messages.go contains message templates for Telegram.

package telegram

const (
	msgWelcome = "🌌 <b>Welcome to Learning Galaxy!</b>\n\n" +
		"Short quizzes in math, English and reading comprehension.\n" +
		"Every correct answer earns stars, and streaks earn more.\n\n" +
		"Tap /games to pick a game or /help to see all commands."

	msgHelp = "<b>Commands</b>\n\n" +
		"/games - list the games\n" +
		"/play &lt;game&gt; [easy|medium|hard] - start a game\n" +
		"/leaderboard [game] - best scores\n" +
		"/settings - timed mode and difficulty\n\n" +
		"Answer with the buttons under each question. Use 💡 for a hint.\n" +
		"When a game ends, send your name to save the score."

	msgUnknownCommand = "Unknown command. Send /help to see what I can do."
	msgInternalError  = "Something went wrong. Please try again later."
	msgUsePlay        = "Usage: /play &lt;game&gt; [easy|medium|hard]\nSee /games for the list."
	msgUnknownGame    = "I don't know that game. See /games for the list."
	msgGameDisabled   = "This game is switched off in the settings."
	msgLoadFailed     = "Could not load the questions. Please try again later."
	msgNoQuestions    = "There are no questions for this game and difficulty yet."
	msgStaleQuestion  = "This question is no longer active."
	msgNoSession      = "Start a game with /games first."
	msgScoreSaved     = "🏆 Score saved for <b>%s</b>! See /leaderboard."
	msgAlreadySaved   = "Your score is already saved. Start a new game with /games."
	msgTimeUp         = "⏰ Time is up!"
	msgSettingsSaved  = "Settings saved"
	msgEmptyBoard     = "No scores yet. Be the first!"
)
