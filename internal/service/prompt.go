package service

import (
	"strings"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
)

var (
	wordClassChoices   = []string{"noun", "verb", "adjective", "adverb"}
	punctuationChoices = []string{".", "?", "!", ","}
)

// Prompts builds the render-ready view of every session row.
func (b *SessionBuilder) Prompts(kind entities.GameKind, session []entities.Question) []entities.Prompt {
	out := make([]entities.Prompt, len(session))
	for i, q := range session {
		out[i] = b.prompt(kind, q)
	}
	return out
}

// prompt reads a row according to the layout of its game.
func (b *SessionBuilder) prompt(kind entities.GameKind, q entities.Question) entities.Prompt {
	p := entities.Prompt{
		Body:        q.Get(entities.FieldText1),
		Choices:     q.Options(),
		Answer:      q.Answer(),
		Hint:        q.Hint(),
		Explanation: firstNonEmpty(q.Get(entities.FieldExplanation), q.Get(entities.FieldKnowMore)),
		ImageURL:    q.Get(entities.FieldImageURL),
	}

	switch kind.Layout {
	case entities.LayoutEquation:
		p.Heading = "Solve"
		p.Body = strings.Join(nonEmpty(
			q.Get(entities.FieldNum1),
			q.Get(entities.FieldOperation),
			q.Get(entities.FieldNum2),
		), " ") + " = ?"
	case entities.LayoutSequence:
		p.Heading = "What comes next?"
		p.Body = q.Get(entities.FieldNum1)
	case entities.LayoutSentence:
		p.Heading = q.Get(entities.FieldText2)
	case entities.LayoutWordClass:
		p.Heading = "Which word class is it?"
		p.Choices = append([]string(nil), wordClassChoices...)
	case entities.LayoutPunctuation:
		p.Heading = "Pick the missing punctuation"
		p.Choices = append([]string(nil), punctuationChoices...)
	case entities.LayoutTense:
		p.Heading = strings.ToUpper(firstNonEmpty(q.Get(entities.FieldText2), "tense"))
	case entities.LayoutSynonym, entities.LayoutAntonym:
		// The answer column doubles as the first option.
		p.Heading = q.Get(entities.FieldText2)
		p.Choices = b.shuffledStrings(nonEmpty(
			q.Answer(),
			q.OptionAt(2),
			q.OptionAt(3),
			q.OptionAt(4),
		))
	case entities.LayoutStory:
		p.Passage = firstNonEmpty(q.Get(entities.FieldPassage), q.Get(entities.FieldText2))
	default:
		if p.Body == "" {
			p.Body = q.Get(entities.FieldNum1)
		}
	}

	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
