package pdf

import (
	"context"
	"fmt"

	ledongthuc "github.com/ledongthuc/pdf"
)

// NativeReader reads page text without cgo.
type NativeReader struct{}

// NewNativeReader creates a pure Go page reader
func NewNativeReader() *NativeReader {
	return &NativeReader{}
}

// ReadPages returns the text of every page in order. Pages without content
// yield an empty string.
func (r *NativeReader) ReadPages(ctx context.Context, path string) (pages []string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("parse PDF: %v", rec)
		}
	}()

	f, reader, err := ledongthuc.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i, err)
		}
		pages = append(pages, text)
	}

	return pages, nil
}
