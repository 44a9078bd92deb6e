package pdf

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// FitzReader reads page text with MuPDF.
type FitzReader struct{}

// NewFitzReader creates a MuPDF-backed page reader
func NewFitzReader() *FitzReader {
	return &FitzReader{}
}

// ReadPages returns the text of every page in order.
func (r *FitzReader) ReadPages(ctx context.Context, path string) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}

	return pages, nil
}
