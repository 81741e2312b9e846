package entities

import (
	"strconv"
	"strings"
)

// Recognized question bank columns.
const (
	FieldGameType     = "game_type"
	FieldDifficulty   = "difficulty"
	FieldAnswer       = "answer"
	FieldHint         = "hint"
	FieldText1        = "text1"
	FieldText2        = "text2"
	FieldNum1         = "num1"
	FieldNum2         = "num2"
	FieldOperation    = "operation"
	FieldImageURL     = "image_url"
	FieldStoryID      = "story_id"
	FieldSequence     = "sequence"
	FieldPassage      = "passage"
	FieldQuestionType = "question_type"
	FieldExplanation  = "explanation"
	FieldKnowMore     = "know_more"
	FieldTopic        = "topic"
	FieldSubtopic     = "subtopic"
)

// optionFields lists the multiple choice columns in display order.
var optionFields = []string{"option1", "option2", "option3", "option4"}

// Question is one row of a question bank: lowercased column name to cell value.
// Rows are never modified after parsing.
type Question map[string]string

// Get returns the value of a column, or an empty string if the column is missing.
func (q Question) Get(field string) string {
	return q[field]
}

func (q Question) GameType() string { return q[FieldGameType] }
func (q Question) Answer() string   { return q[FieldAnswer] }
func (q Question) Hint() string     { return q[FieldHint] }
func (q Question) StoryID() string  { return strings.TrimSpace(q[FieldStoryID]) }

// Difficulty returns the row difficulty. ok is false when the row has no
// (or an unrecognized) difficulty, meaning it matches any level.
func (q Question) Difficulty() (Difficulty, bool) {
	return ParseDifficulty(q[FieldDifficulty])
}

// Sequence returns the explicit position of the row inside its story.
func (q Question) Sequence() (int, bool) {
	raw := strings.TrimSpace(q[FieldSequence])
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Options returns the non-empty option columns in order.
func (q Question) Options() []string {
	out := make([]string, 0, len(optionFields))
	for _, f := range optionFields {
		if v := q[f]; v != "" {
			out = append(out, v)
		}
	}
	return out
}

// OptionAt returns option column n (1-based).
func (q Question) OptionAt(n int) string {
	if n < 1 || n > len(optionFields) {
		return ""
	}
	return q[optionFields[n-1]]
}
