package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/spherical/legal-analyzer/internal/domain"
)

// TextRenderer prints the console report.
type TextRenderer struct {
	title   *color.Color
	heading *color.Color
	label   *color.Color
}

// NewTextRenderer creates a text renderer. Colors follow color.NoColor.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{
		title:   color.New(color.FgGreen, color.Bold),
		heading: color.New(color.FgCyan, color.Bold),
		label:   color.New(color.Bold),
	}
}

// Render writes the agreement type, when present, followed by one block per clause.
func (r *TextRenderer) Render(w io.Writer, res *domain.AnalysisResult) error {
	if _, err := r.title.Fprint(w, "\n✅ LEGAL DOCUMENT ANALYSIS\n\n"); err != nil {
		return err
	}

	if at := res.AgreementType; at != nil {
		if _, err := fmt.Fprintf(w, "Agreement Type: %s (confidence: %s)\n\n",
			strings.ToUpper(at.Type), formatConfidence(at.Confidence)); err != nil {
			return err
		}
	}

	for _, c := range res.Clauses {
		if err := r.renderClause(w, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) renderClause(w io.Writer, c domain.ClauseResult) error {
	if _, err := r.heading.Fprintf(w, "--- %s ---\n", strings.ToUpper(c.Name)); err != nil {
		return err
	}
	if _, err := r.label.Fprintln(w, "Easy English:"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, c.EasyEnglish); err != nil {
		return err
	}
	if _, err := r.label.Fprintln(w, "\nEasy Urdu:"); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n\n\n", c.EasyUrdu)
	return err
}

// formatConfidence prints a two-decimal score without trailing zeros, as 0.9 or 0.73.
func formatConfidence(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
