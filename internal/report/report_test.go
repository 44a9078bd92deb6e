package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spherical/legal-analyzer/internal/domain"
)

func sampleResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Document:      "media/legal_document.pdf",
		AgreementType: &domain.AgreementClassification{Type: "rental agreement", Confidence: 0.9},
		Clauses: domain.ClauseResults{
			{Name: "termination", EasyEnglish: "The lease ends after a year.", EasyUrdu: "u-termination"},
			{Name: "governing law", EasyEnglish: "Punjab law applies.", EasyUrdu: "u-law"},
		},
	}
}

func TestNewRenderer(t *testing.T) {
	for format, want := range map[string]Renderer{
		"":     &TextRenderer{},
		"text": &TextRenderer{},
		"JSON": &JSONRenderer{},
		"xlsx": &XLSXRenderer{},
	} {
		r, err := NewRenderer(format)
		require.NoError(t, err, format)
		assert.IsType(t, want, r, format)
	}

	_, err := NewRenderer("pdf")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrorTypeValidation))
}

func TestTextRenderer(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer().Render(&buf, sampleResult()))

	want := "\n✅ LEGAL DOCUMENT ANALYSIS\n\n" +
		"Agreement Type: RENTAL AGREEMENT (confidence: 0.9)\n\n" +
		"--- TERMINATION ---\nEasy English:\nThe lease ends after a year.\n\nEasy Urdu:\nu-termination\n\n\n" +
		"--- GOVERNING LAW ---\nEasy English:\nPunjab law applies.\n\nEasy Urdu:\nu-law\n\n\n"
	assert.Equal(t, want, buf.String())
}

func TestTextRenderer_WithoutAgreementType(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	res := sampleResult()
	res.AgreementType = nil

	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer().Render(&buf, res))
	assert.NotContains(t, buf.String(), "Agreement Type")
	assert.Contains(t, buf.String(), "--- TERMINATION ---")
}

// failingWriter accepts ok writes and fails every one after.
type failingWriter struct {
	ok int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.ok == 0 {
		return 0, errors.New("disk full")
	}
	f.ok--
	return len(p), nil
}

func TestTextRenderer_PropagatesWriteErrors(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	// Title, agreement line, then five writes per clause.
	total := 2 + 5*len(sampleResult().Clauses)
	for ok := 0; ok < total; ok++ {
		err := NewTextRenderer().Render(&failingWriter{ok: ok}, sampleResult())
		assert.Error(t, err, "write %d", ok+1)
	}
	assert.NoError(t, NewTextRenderer().Render(&failingWriter{ok: total}, sampleResult()))
}

func TestFormatConfidence(t *testing.T) {
	cases := map[float64]string{0.9: "0.9", 0.73: "0.73", 1: "1.0", 0: "0.0", 0.05: "0.05"}
	for in, want := range cases {
		assert.Equal(t, want, formatConfidence(in))
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer(false).Render(&buf, sampleResult()))

	assert.JSONEq(t, `{
		"document": "media/legal_document.pdf",
		"agreement_type": {"type": "rental agreement", "confidence": 0.9},
		"clauses": {
			"termination": {"easy_english": "The lease ends after a year.", "easy_urdu": "u-termination"},
			"governing law": {"easy_english": "Punjab law applies.", "easy_urdu": "u-law"}
		}
	}`, buf.String())

	// Clause order follows extraction order.
	out := buf.String()
	assert.Less(t, bytes.Index([]byte(out), []byte("termination")), bytes.Index([]byte(out), []byte("governing law")))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
}

func TestXLSXRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXRenderer().Render(&buf, sampleResult()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, clausesSheet}, f.GetSheetList())

	get := func(sheet, cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "rental agreement", get(summarySheet, "B2"))
	assert.Equal(t, "0.9", get(summarySheet, "B3"))
	assert.Equal(t, "2", get(summarySheet, "B4"))

	assert.Equal(t, "Clause", get(clausesSheet, "A1"))
	assert.Equal(t, "termination", get(clausesSheet, "A2"))
	assert.Equal(t, "Punjab law applies.", get(clausesSheet, "B3"))
	assert.Equal(t, "u-law", get(clausesSheet, "C3"))
}
