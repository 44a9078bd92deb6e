package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Format(t *testing.T) {
	plain := NotLegalDocumentError("This PDF is NOT a legal document.")
	assert.Equal(t, "[not_legal_document] This PDF is NOT a legal document.", plain.Error())

	wrapped := NotFoundError("PDF file not found", errors.New("stat media/x.pdf: no such file"))
	assert.Equal(t, "[not_found] PDF file not found: stat media/x.pdf: no such file", wrapped.Error())
}

func TestKindOf(t *testing.T) {
	base := CapabilityError("summarization failed", errors.New("HTTP 503"))
	wrapped := fmt.Errorf("clause termination: %w", base)

	assert.Equal(t, ErrorTypeExternalCapability, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, ErrorTypeExternalCapability))
	assert.False(t, IsKind(wrapped, ErrorTypeNotFound))
	assert.Equal(t, ErrorType(""), KindOf(errors.New("plain")))
	assert.False(t, IsKind(nil, ErrorTypeNotFound))
}

func TestAsCapabilityError(t *testing.T) {
	assert.NoError(t, AsCapabilityError("x", nil))

	lifted := AsCapabilityError("translation failed", errors.New("timeout"))
	assert.True(t, IsKind(lifted, ErrorTypeExternalCapability))

	notFound := NotFoundError("gone", nil)
	assert.Same(t, notFound, AsCapabilityError("x", notFound))
}
