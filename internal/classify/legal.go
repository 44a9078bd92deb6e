// Package classify decides whether a text is a legal document and which
// kind of agreement it is.
package classify

import (
	"strings"

	"github.com/spherical/legal-analyzer/internal/domain"
)

// MatchedKeywords returns the distinct legal keywords contained in text,
// in LegalKeywords order.
func MatchedKeywords(text string) []string {
	folded := strings.ToLower(text)
	var matched []string
	for _, kw := range domain.LegalKeywords {
		if strings.Contains(folded, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// LegalScore counts the distinct legal keywords present in text.
func LegalScore(text string) int {
	return len(MatchedKeywords(text))
}

// IsLegalDocument reports whether text contains at least threshold distinct
// legal keywords.
func IsLegalDocument(text string, threshold int) bool {
	return LegalScore(text) >= threshold
}
