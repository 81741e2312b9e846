package entities

import (
	"sort"
	"time"
)

// LeaderboardEntry is one saved score. Entries are appended and never changed.
type LeaderboardEntry struct {
	Game      string    `json:"game"`
	Name      string    `json:"name"`
	Stars     int       `json:"stars"`
	Streak    int       `json:"streak"`
	Date      time.Time `json:"date"`
	HintsUsed int       `json:"hintsUsed"`
}

// NewLeaderboardEntry builds an entry from a finished game.
func NewLeaderboardEntry(r GameResult, now time.Time) LeaderboardEntry {
	return LeaderboardEntry{
		Game:      r.Game,
		Name:      r.Name,
		Stars:     r.Stars,
		Streak:    r.Streak,
		Date:      now.UTC(),
		HintsUsed: r.HintsUsed,
	}
}

// TopEntries returns up to limit entries of a game ordered by stars, then
// streak, then the earliest date. An empty game selects every game.
// limit <= 0 returns all matching entries.
func TopEntries(entries []LeaderboardEntry, game string, limit int) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if game == "" || e.Game == game {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Stars != out[j].Stars {
			return out[i].Stars > out[j].Stars
		}
		if out[i].Streak != out[j].Streak {
			return out[i].Streak > out[j].Streak
		}
		return out[i].Date.Before(out[j].Date)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
