// Package sheet loads question banks published as CSV.
package sheet

import (
	"strings"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
)

// Parse converts CSV text into question rows. The first non-blank line is
// the header. Parse never fails: blank lines are skipped, missing cells
// become empty strings, extra cells are dropped and an unterminated quote
// simply runs to the end of the line.
func Parse(text string) []entities.Question {
	lines := nonBlankLines(text)
	if len(lines) < 2 {
		return []entities.Question{}
	}

	headers := parseHeader(lines[0])

	rows := make([]entities.Question, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitRecord(line)

		q := make(entities.Question, len(headers))
		for i, h := range headers {
			if i < len(values) {
				q[h] = values[i]
			} else {
				q[h] = ""
			}
		}
		rows = append(rows, q)
	}

	return rows
}

func nonBlankLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// parseHeader splits the header on plain commas; header cells are not
// expected to contain commas.
func parseHeader(line string) []string {
	cells := strings.Split(line, ",")
	headers := make([]string, len(cells))
	for i, c := range cells {
		c = strings.ToLower(strings.TrimSpace(c))
		headers[i] = strings.NewReplacer(`"`, "", `'`, "").Replace(c)
	}
	return headers
}

// splitRecord splits one data line on commas outside double quotes.
// A doubled quote is a literal quote character.
func splitRecord(line string) []string {
	var (
		values   []string
		current  strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))

	return values
}
