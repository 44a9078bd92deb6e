package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical/legal-analyzer/internal/domain"
)

const (
	leaseFixture   = "testdata/lease.pdf"
	corruptFixture = "testdata/corrupt.pdf"
)

type stubPages struct {
	pages []string
	err   error
	paths []string
}

func (s *stubPages) ReadPages(ctx context.Context, path string) ([]string, error) {
	s.paths = append(s.paths, path)
	return s.pages, s.err
}

type stubFetcher struct {
	local   string
	err     error
	cleaned bool
}

func (s *stubFetcher) Fetch(ctx context.Context, path string) (string, func(), error) {
	return s.local, func() { s.cleaned = true }, s.err
}

func TestJoinPages(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{name: "no pages", pages: nil, want: ""},
		{name: "single", pages: []string{"  hello  "}, want: "hello"},
		{name: "skips empty pages", pages: []string{"first", "", "third"}, want: "first\nthird"},
		{name: "keeps whitespace-only pages", pages: []string{"first", "   \n", "third"}, want: "first\n   \n\nthird"},
		{name: "trims whitespace-only edges", pages: []string{" \n", "body", "\t"}, want: "body"},
		{name: "keeps inner layout", pages: []string{"A\n\nB\n", "C"}, want: "A\n\nB\n\nC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinPages(tt.pages))
		})
	}
}

func TestExtractText_NotFound(t *testing.T) {
	reader := &stubPages{}
	e := NewExtractor(reader)

	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.pdf"), t.TempDir()} {
		_, err := e.ExtractText(context.Background(), path)
		require.Error(t, err, path)
		assert.True(t, domain.IsKind(err, domain.ErrorTypeNotFound), path)
	}
	assert.Empty(t, reader.paths, "reader must not run for invalid paths")
}

func TestExtractText_ReaderFailureIsCapabilityError(t *testing.T) {
	e := NewExtractor(&stubPages{err: errors.New("xref table broken")})

	_, err := e.ExtractText(context.Background(), corruptFixture)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrorTypeExternalCapability))
}

func TestExtractText_UsesReaderPages(t *testing.T) {
	e := NewExtractor(&stubPages{pages: []string{"AGREEMENT\n", "", "PAYMENT\nMonthly."}})

	text, err := e.ExtractText(context.Background(), corruptFixture)
	require.NoError(t, err)
	assert.Equal(t, "AGREEMENT\n\nPAYMENT\nMonthly.", text)
}

func TestExtractText_RemoteSource(t *testing.T) {
	reader := &stubPages{pages: []string{"remote text"}}
	fetcher := &stubFetcher{local: corruptFixture}
	e := NewExtractor(reader, WithFetcher(fetcher))

	text, err := e.ExtractText(context.Background(), "gs://contracts/lease.pdf")
	require.NoError(t, err)

	assert.Equal(t, "remote text", text)
	assert.Equal(t, []string{corruptFixture}, reader.paths)
	assert.True(t, fetcher.cleaned)
}

func TestExtractText_RemoteWithoutFetcher(t *testing.T) {
	_, err := NewExtractor(&stubPages{}).ExtractText(context.Background(), "gs://contracts/lease.pdf")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrorTypeNotFound))
}

func TestExtractText_StructureValidationRejectsCorrupt(t *testing.T) {
	reader := &stubPages{pages: []string{"never read"}}
	e := NewExtractor(reader, WithStructureValidation(true))

	_, err := e.ExtractText(context.Background(), corruptFixture)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrorTypeExternalCapability))
	assert.Empty(t, reader.paths)
}

func TestParseGCSPath(t *testing.T) {
	bucket, object, err := ParseGCSPath("gs://contracts/2024/lease.pdf")
	require.NoError(t, err)
	assert.Equal(t, "contracts", bucket)
	assert.Equal(t, "2024/lease.pdf", object)

	for _, bad := range []string{"gs://", "gs://bucket", "gs:///object", "/local/file.pdf"} {
		_, _, err := ParseGCSPath(bad)
		assert.Error(t, err, bad)
	}
}

func TestReaders_LeaseFixture(t *testing.T) {
	if _, err := os.Stat(leaseFixture); err != nil {
		t.Skip("fixture missing")
	}

	readers := map[string]PageReader{
		"fitz":   NewFitzReader(),
		"native": NewNativeReader(),
	}

	for name, reader := range readers {
		t.Run(name, func(t *testing.T) {
			e := NewExtractor(reader)

			first, err := e.ExtractText(context.Background(), leaseFixture)
			require.NoError(t, err)
			assert.Contains(t, first, "TERMINATION")
			assert.Contains(t, first, "GOVERNING LAW")
			assert.Contains(t, first, "Punjab")

			second, err := e.ExtractText(context.Background(), leaseFixture)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestReaders_CorruptFixture(t *testing.T) {
	for name, reader := range map[string]PageReader{"fitz": NewFitzReader(), "native": NewNativeReader()} {
		t.Run(name, func(t *testing.T) {
			_, err := NewExtractor(reader).ExtractText(context.Background(), corruptFixture)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.ErrorTypeExternalCapability))
		})
	}
}
