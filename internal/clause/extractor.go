// Package clause carves named clause bodies out of document text.
//
// A clause starts at the first occurrence of its name in capital letters and
// runs to the next heading line or the end of the text. A heading line is one
// whose leading run of capital letters and spaces holds at least three letters.
package clause

import (
	"strings"

	"github.com/spherical/legal-analyzer/internal/domain"
)

// MinHeadingLetters is the number of leading capital letters that make a line a heading
const MinHeadingLetters = 3

// Extractor finds clauses by heading.
type Extractor struct {
	names []string
}

// NewExtractor creates an extractor for domain.ImportantClauses.
func NewExtractor() *Extractor {
	return &Extractor{names: domain.ImportantClauses}
}

// Extract returns the clauses found in text in the extractor's name order.
// Names without a capitalised occurrence, or with an empty body, are left out.
func (e *Extractor) Extract(text string) domain.ClauseMap {
	clauses := domain.ClauseMap{}
	for _, name := range e.names {
		if body, ok := extractOne(text, strings.ToUpper(name)); ok {
			clauses = append(clauses, domain.Clause{Name: name, Text: body})
		}
	}
	return clauses
}

func extractOne(text, heading string) (string, bool) {
	idx := strings.Index(text, heading)
	if idx < 0 {
		return "", false
	}

	lines := strings.Split(text[idx+len(heading):], "\n")

	// The remainder of the heading line always belongs to the body.
	end := 1
	for end < len(lines) && !IsHeading(lines[end]) {
		end++
	}

	body := strings.TrimSpace(strings.Join(lines[:end], "\n"))
	if body == "" {
		return "", false
	}
	return body, true
}

// IsHeading reports whether line starts with at least MinHeadingLetters
// capital letters, ignoring interleaved spaces.
func IsHeading(line string) bool {
	letters := 0
	for _, r := range strings.TrimRight(line, "\r") {
		switch {
		case r == ' ':
		case r >= 'A' && r <= 'Z':
			letters++
			if letters >= MinHeadingLetters {
				return true
			}
		default:
			return false
		}
	}
	return false
}
