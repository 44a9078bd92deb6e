package clause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical/legal-analyzer/internal/domain"
)

func TestExtract_TerminationBeforePayment(t *testing.T) {
	text := "This agreement between each party sets out liability.\n" +
		"TERMINATION\nThis agreement ends after 12 months.\nPAYMENT\nRent is due monthly."

	got := NewExtractor().Extract(text)

	body, ok := got.Get("termination")
	require.True(t, ok)
	assert.Equal(t, "This agreement ends after 12 months.", body)

	body, ok = got.Get("payment")
	require.True(t, ok)
	assert.Equal(t, "Rent is due monthly.", body)
}

func TestExtract_OmitsAbsentClauses(t *testing.T) {
	got := NewExtractor().Extract("PAYMENT\nDue on the first.\n")

	assert.Equal(t, []string{"payment"}, got.Names())
	for _, name := range []string{"termination", "liability", "indemnity", "confidentiality", "governing law", "arbitration"} {
		_, ok := got.Get(name)
		assert.False(t, ok, name)
	}
}

func TestExtract_CaseSensitiveHeading(t *testing.T) {
	got := NewExtractor().Extract("Termination\nLowercase headings do not count.\nliability is limited.")
	assert.Empty(t, got)
}

func TestExtract_FirstOccurrenceOnly(t *testing.T) {
	text := "ARBITRATION\nFirst venue is Lahore.\nPAYMENT\nMonthly.\nARBITRATION\nSecond venue is Karachi."

	body, ok := NewExtractor().Extract(text).Get("arbitration")
	require.True(t, ok)
	assert.Equal(t, "First venue is Lahore.", body)
}

func TestExtract_RunsToEndOfText(t *testing.T) {
	text := "GOVERNING LAW\nThe laws of Punjab apply.\nDisputes go to court.\n\n"

	body, ok := NewExtractor().Extract(text).Get("governing law")
	require.True(t, ok)
	assert.Equal(t, "The laws of Punjab apply.\nDisputes go to court.", body)
}

func TestExtract_RemainderOfHeadingLine(t *testing.T) {
	body, ok := NewExtractor().Extract("INDEMNITY: Tenant covers all losses.\nSIGNED").Get("indemnity")
	require.True(t, ok)
	assert.Equal(t, ": Tenant covers all losses.", body)
}

func TestExtract_EmptyBodyOmitted(t *testing.T) {
	got := NewExtractor().Extract("LIABILITY\nPAYMENT\nMonthly rent.")

	_, ok := got.Get("liability")
	assert.False(t, ok)
	assert.Equal(t, []string{"payment"}, got.Names())
}

func TestExtract_ResultOrderFollowsClauseList(t *testing.T) {
	text := "PAYMENT\nMonthly.\nCONFIDENTIALITY\nKeep quiet.\nTERMINATION\nThirty days."

	got := NewExtractor().Extract(text)
	assert.Equal(t, []string{"termination", "confidentiality", "payment"}, got.Names())
}

func TestExtract_CRLFLines(t *testing.T) {
	body, ok := NewExtractor().Extract("PAYMENT\r\nDue monthly.\r\nSIGNATURES\r\n").Get("payment")
	require.True(t, ok)
	assert.Equal(t, "Due monthly.", body)
}

func TestExtract_KeysAreImportantClauses(t *testing.T) {
	text := "TERMINATION\na\nLIABILITY\nb\nINDEMNITY\nc\nCONFIDENTIALITY\nd\nGOVERNING LAW\ne\nARBITRATION\nf\nPAYMENT\ng"

	got := NewExtractor().Extract(text)
	assert.Equal(t, domain.ImportantClauses, got.Names())
}

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"PAYMENT", true},
		{"GOVERNING LAW", true},
		{"  ABC", true},
		{"A B C", true},
		{"ABC\r", true},
		{"AB", false},
		{"AB c", false},
		{"Payment", false},
		{"", false},
		{"1. TERMINATION", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsHeading(tt.line), "%q", tt.line)
	}
}
