package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClauseResults_MarshalKeepsOrder(t *testing.T) {
	result := AnalysisResult{
		Document:      "lease.pdf",
		AgreementType: &AgreementClassification{Type: "lease agreement", Confidence: 0.87},
		Clauses: ClauseResults{
			{Name: "termination", EasyEnglish: "Ends in 30 days.", EasyUrdu: "u1"},
			{Name: "governing law", EasyEnglish: "Punjab law applies.", EasyUrdu: "u2"},
			{Name: "payment", EasyEnglish: "Pay monthly.", EasyUrdu: "u3"},
		},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	assert.Equal(t,
		`{"document":"lease.pdf","agreement_type":{"type":"lease agreement","confidence":0.87},`+
			`"clauses":{"termination":{"easy_english":"Ends in 30 days.","easy_urdu":"u1"},`+
			`"governing law":{"easy_english":"Punjab law applies.","easy_urdu":"u2"},`+
			`"payment":{"easy_english":"Pay monthly.","easy_urdu":"u3"}}}`,
		string(data))
}

func TestAnalysisResult_OmitsAgreementTypeWhenSkipped(t *testing.T) {
	data, err := json.Marshal(AnalysisResult{Document: "a.pdf", Clauses: ClauseResults{}})
	require.NoError(t, err)
	assert.Equal(t, `{"document":"a.pdf","clauses":{}}`, string(data))
}

func TestClauseMap_Lookup(t *testing.T) {
	m := ClauseMap{{Name: "termination", Text: "ends"}, {Name: "payment", Text: "pay"}}

	body, ok := m.Get("payment")
	assert.True(t, ok)
	assert.Equal(t, "pay", body)

	_, ok = m.Get("liability")
	assert.False(t, ok)
	assert.Equal(t, []string{"termination", "payment"}, m.Names())
}

func TestFixedSets(t *testing.T) {
	assert.Len(t, LegalKeywords, 10)
	assert.Len(t, AgreementTypes, 11)
	assert.Len(t, ImportantClauses, 7)
}
