// Package report renders analysis results for people and machines.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/spherical/legal-analyzer/internal/domain"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Renderer writes an analysis result to w.
type Renderer interface {
	Render(w io.Writer, res *domain.AnalysisResult) error
}

// NewRenderer returns the renderer for format.
func NewRenderer(format string) (Renderer, error) {
	switch Format(strings.ToLower(format)) {
	case FormatText, "":
		return NewTextRenderer(), nil
	case FormatJSON:
		return NewJSONRenderer(true), nil
	case FormatXLSX:
		return NewXLSXRenderer(), nil
	default:
		return nil, domain.ValidationError(fmt.Sprintf("unknown output format %q", format), nil)
	}
}
