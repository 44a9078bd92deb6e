package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", TruncateRunes("abcdef", 3))
	assert.Equal(t, "abc", TruncateRunes("abc", 10))
	assert.Equal(t, "", TruncateRunes("abc", 0))

	urdu := strings.Repeat("معاہدہ", 10)
	cut := TruncateRunes(urdu, 7)
	assert.Equal(t, 7, utf8.RuneCountInString(cut))
	assert.True(t, utf8.ValidString(cut))
}
