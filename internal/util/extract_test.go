package util

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintableASCII(t *testing.T) {
	in := []byte{'a', 0x00, 'b', '\n', 'c', '\r', 0xff, '~', 0x7f}
	assert.Equal(t, "ab c ~", printableASCII(in))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "Maria Silva Engenharia", collapseWhitespace("  Maria \t Silva\n\n Engenharia  "))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "açã", truncateRunes("açãoo", 3))
	assert.Equal(t, "abc", truncateRunes("abc", 10))
}

func TestExtractResumeTextFallsBackToByteFilter(t *testing.T) {
	body := strings.Repeat("Experiencia com Go e Postgres. ", 10)
	data := append([]byte{0x00, 0x01, 0x02}, []byte(body)...)

	text, err := ExtractResumeText(data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Experiencia com Go"))
	assert.GreaterOrEqual(t, utf8.RuneCountInString(text), MinResumeTextLength)
}

func TestExtractResumeTextTooShort(t *testing.T) {
	_, err := ExtractResumeText([]byte("curto demais"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResumeTextUnreadable))
}

func TestExtractResumeTextTruncates(t *testing.T) {
	data := []byte(strings.Repeat("abcdefghij ", 2000))

	text, err := ExtractResumeText(data)
	require.NoError(t, err)
	assert.Equal(t, MaxResumeTextLength, utf8.RuneCountInString(text))
}
