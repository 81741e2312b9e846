package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
)

// Callback action constants.
const (
	actionPlay        = "play"
	actionAnswer      = "ans"
	actionHint        = "hint"
	actionNav         = "nav"
	actionFinish      = "fin"
	actionSettings    = "set"
	actionLeaderboard = "lb"
	actionGames       = "games"
)

// Settings sub-actions.
const (
	settingsTimed      = "timed"
	settingsFilter     = "filter"
	settingsDifficulty = "diff"
	settingsSound      = "sound"
)

// sessionTagLen is how much of the session id goes into callback data.
// Telegram limits callback data to 64 bytes.
const sessionTagLen = 8

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns parameter i or an empty string.
func (cd callbackData) param(i int) string {
	if i < len(cd.Params) {
		return cd.Params[i]
	}
	return ""
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func sessionTag(id string) string {
	if len(id) > sessionTagLen {
		return id[:sessionTagLen]
	}
	return id
}

// buildPlayCallback builds callback data for starting a game. An empty
// difficulty uses the settings default.
func buildPlayCallback(game string, difficulty string) string {
	return callbackData{
		Action: actionPlay,
		Params: []string{game, difficulty},
	}.encode()
}

// buildAnswerCallback builds callback data for picking choice n of question index.
func buildAnswerCallback(sessionID string, index, choice int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{sessionTag(sessionID), strconv.Itoa(index), strconv.Itoa(choice)},
	}.encode()
}

func buildHintCallback(sessionID string, index int) string {
	return callbackData{
		Action: actionHint,
		Params: []string{sessionTag(sessionID), strconv.Itoa(index)},
	}.encode()
}

func buildNavCallback(sessionID string, index int, dir entities.Direction) string {
	return callbackData{
		Action: actionNav,
		Params: []string{sessionTag(sessionID), strconv.Itoa(index), string(dir)},
	}.encode()
}

func buildFinishCallback(sessionID string) string {
	return callbackData{
		Action: actionFinish,
		Params: []string{sessionTag(sessionID)},
	}.encode()
}

// buildSettingsCallback builds callback data for settings-related actions.
func buildSettingsCallback(subAction string, value ...string) string {
	params := []string{subAction}
	params = append(params, value...)
	return callbackData{
		Action: actionSettings,
		Params: params,
	}.encode()
}

func buildLeaderboardCallback(game string) string {
	return callbackData{
		Action: actionLeaderboard,
		Params: []string{game},
	}.encode()
}

func buildGamesCallback() string {
	return actionGames
}
