package util

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gen2brain/go-fitz"
)

const (
	MinResumeTextLength = 100
	MaxResumeTextLength = 10000
)

var ErrResumeTextUnreadable = errors.New("Não foi possível extrair texto do PDF. Tente outro arquivo.")

// ExtractResumeText pulls plain text out of a PDF résumé. MuPDF is tried
// first; when it yields too little text the raw bytes are filtered down to
// printable ASCII instead. The result is whitespace-collapsed and capped at
// MaxResumeTextLength characters.
func ExtractResumeText(data []byte) (string, error) {
	text, err := extractPDFText(data)
	text = collapseWhitespace(text)
	if utf8.RuneCountInString(text) < MinResumeTextLength {
		text = collapseWhitespace(printableASCII(data))
	}

	if utf8.RuneCountInString(text) < MinResumeTextLength {
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrResumeTextUnreadable, err)
		}
		return "", ErrResumeTextUnreadable
	}
	return truncateRunes(text, MaxResumeTextLength), nil
}

func extractPDFText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return b.String(), fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// printableASCII keeps bytes 32..126 and turns line breaks into spaces.
func printableASCII(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		switch {
		case c >= 32 && c <= 126:
			b.WriteByte(c)
		case c == '\n' || c == '\r':
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
