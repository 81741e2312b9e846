package telegram

import (
	"reflect"
	"testing"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
)

func TestCallbackDataRoundTrip(t *testing.T) {
	const sessionID = "0b5d7c8e-1f2a-4b3c-9d4e-5f6a7b8c9d0e"

	cases := []struct {
		name   string
		data   string
		action string
		params []string
	}{
		{"play default", buildPlayCallback("space-math", ""), actionPlay, []string{"space-math", ""}},
		{"play hard", buildPlayCallback("space-math", "Hard"), actionPlay, []string{"space-math", "Hard"}},
		{"answer", buildAnswerCallback(sessionID, 3, 1), actionAnswer, []string{"0b5d7c8e", "3", "1"}},
		{"hint", buildHintCallback(sessionID, 0), actionHint, []string{"0b5d7c8e", "0"}},
		{"nav", buildNavCallback(sessionID, 9, entities.DirectionNext), actionNav, []string{"0b5d7c8e", "9", "next"}},
		{"finish", buildFinishCallback(sessionID), actionFinish, []string{"0b5d7c8e"}},
		{"settings", buildSettingsCallback(settingsDifficulty, "Easy"), actionSettings, []string{"diff", "Easy"}},
		{"leaderboard all", buildLeaderboardCallback(""), actionLeaderboard, []string{""}},
		{"games", buildGamesCallback(), actionGames, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if len(tc.data) > 64 {
				t.Fatalf("callback data %q is %d bytes, Telegram allows 64", tc.data, len(tc.data))
			}

			cd := decodeCallback(tc.data)
			if cd.Action != tc.action {
				t.Fatalf("action = %q, want %q", cd.Action, tc.action)
			}
			if !reflect.DeepEqual(cd.Params, tc.params) {
				t.Fatalf("params = %q, want %q", cd.Params, tc.params)
			}
			if cd.encode() != tc.data {
				t.Fatalf("encode = %q, want %q", cd.encode(), tc.data)
			}
		})
	}
}

func TestCallbackDataParam(t *testing.T) {
	cd := decodeCallback("nav:abc:2")

	if cd.param(0) != "abc" || cd.param(1) != "2" {
		t.Fatalf("unexpected params %q", cd.Params)
	}
	if cd.param(5) != "" {
		t.Fatalf("param out of range = %q, want empty", cd.param(5))
	}
}

func TestSessionTag(t *testing.T) {
	if got := sessionTag("short"); got != "short" {
		t.Fatalf("sessionTag(short) = %q", got)
	}
	if got := sessionTag("0123456789abcdef"); got != "01234567" {
		t.Fatalf("sessionTag = %q, want 01234567", got)
	}
}
