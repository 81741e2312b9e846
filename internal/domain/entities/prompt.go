package entities

// Prompt is the typed, render-ready view of one question for its game.
// It is built once when the session starts.
type Prompt struct {
	Heading     string   `json:"heading,omitempty"`
	Body        string   `json:"body"`
	Passage     string   `json:"passage,omitempty"`
	Choices     []string `json:"choices"`
	Answer      string   `json:"-"`
	Hint        string   `json:"hint,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
}

// HasHint reports whether a hint can be revealed for the prompt.
func (p Prompt) HasHint() bool {
	return p.Hint != ""
}
