package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegalScore_CountsDistinctKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "single keyword repeated", text: "agreement agreement AGREEMENT", want: 1},
		{name: "case folded", text: "WHEREAS the Party accepts Liability", want: 3},
		{name: "multi word keyword", text: "This is subject to Governing Law.", want: 1},
		{name: "substring containment", text: "the parties", want: 1},
		{name: "all ten", text: "agreement whereas party liability termination arbitration jurisdiction indemnity governing law confidentiality", want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LegalScore(tt.text))
		})
	}
}

func TestIsLegalDocument_Threshold(t *testing.T) {
	text := "This Agreement is made WHEREAS each party consents."

	assert.True(t, IsLegalDocument(text, 3))
	assert.False(t, IsLegalDocument(text, 4))
	assert.False(t, IsLegalDocument("Only one agreement here.", 3))
}

func TestIsLegalDocument_MonotonicInThreshold(t *testing.T) {
	texts := []string{
		"",
		"agreement",
		"agreement whereas",
		"agreement whereas party liability",
		"indemnity arbitration jurisdiction confidentiality governing law termination",
	}

	for _, text := range texts {
		prev := true
		for threshold := 0; threshold <= 11; threshold++ {
			got := IsLegalDocument(text, threshold)
			if !prev {
				assert.False(t, got, "threshold %d turned false into true for %q", threshold, text)
			}
			prev = got
		}
	}
}

func TestMatchedKeywords_Order(t *testing.T) {
	assert.Equal(t,
		[]string{"agreement", "party", "confidentiality"},
		MatchedKeywords("CONFIDENTIALITY binds each party to this agreement"))
}
