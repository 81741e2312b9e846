package entities

// Settings stores the application preferences and question bank locations.
// Persisted as one JSON object; missing keys take their default values.
type Settings struct {
	MathSheetURL            string            `json:"mathSheetUrl"`
	EnglishSheetURL         string            `json:"englishSheetUrl"`
	GameSheetURLs           map[string]string `json:"gameSheetUrls,omitempty"` // per-game overrides
	DefaultDifficulty       string            `json:"defaultDifficulty"`       // "Easy", "Medium", "Hard" or "None"
	DifficultyFilterEnabled bool              `json:"difficultyFilterEnabled"`
	SoundEnabled            bool              `json:"soundEnabled"`
	TimedMode               bool              `json:"timedMode"`
	EnabledGames            map[string]bool   `json:"enabledGames"`
}

// Default question banks: published spreadsheet CSV exports.
const (
	DefaultMathSheetURL    = "https://docs.google.com/spreadsheets/d/e/2PACX-1vQr3nlml1JTPMR4ROfCKarFSayMFxYyOwZO-v_A0INlG1oMloM5wm0wltURipcy0A/pub?output=csv"
	DefaultEnglishSheetURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vRses_Y74IwZ6nFvmwMygKruq0HgQZZmOEYSdf3sE0pInXXByyU0uSf8KPY8Z6Giw/pub?output=csv"
)

// NewSettings returns the default settings.
func NewSettings() *Settings {
	return &Settings{
		MathSheetURL:      DefaultMathSheetURL,
		EnglishSheetURL:   DefaultEnglishSheetURL,
		GameSheetURLs:     map[string]string{},
		DefaultDifficulty: "None",
		SoundEnabled:      true,
		EnabledGames:      map[string]bool{},
	}
}

// SheetURL returns the question bank URL a game reads from.
func (s *Settings) SheetURL(g GameKind) string {
	if u, ok := s.GameSheetURLs[g.ID]; ok && u != "" {
		return u
	}
	if g.IsMath() {
		return s.MathSheetURL
	}
	return s.EnglishSheetURL
}

// DifficultyFilter returns the filter used when a player does not pick a level.
func (s *Settings) DifficultyFilter() DifficultyFilter {
	if !s.DifficultyFilterEnabled {
		return AnyDifficulty()
	}
	return ParseDifficultyFilter(s.DefaultDifficulty)
}

// GameEnabled reports whether a game is playable. Games are enabled
// unless explicitly switched off.
func (s *Settings) GameEnabled(id string) bool {
	enabled, ok := s.EnabledGames[id]
	return !ok || enabled
}
