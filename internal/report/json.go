package report

import (
	"encoding/json"
	"io"

	"github.com/spherical/legal-analyzer/internal/domain"
)

// JSONRenderer writes the result object.
type JSONRenderer struct {
	indent bool
}

// NewJSONRenderer creates a JSON renderer.
func NewJSONRenderer(indent bool) *JSONRenderer {
	return &JSONRenderer{indent: indent}
}

func (r *JSONRenderer) Render(w io.Writer, res *domain.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if r.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}
