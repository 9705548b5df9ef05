// Package metrics derives size features from chat text without keeping
// the text itself.
package metrics

import (
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Features holds basic local text features derived from an input string.
type Features struct {
	Bytes int
	Runes int
	Words int
	Lines int
}

// CountFeatures computes byte, rune, word and line counts in one pass.
// Words are runs of non-space runes; lines are 0 for "" and otherwise one
// more than the number of '\n'.
func CountFeatures(s string) Features {
	f := Features{Bytes: len(s)}
	if s == "" {
		return f
	}
	f.Lines = 1
	inWord := false
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		f.Runes++
		if r == '\n' {
			f.Lines++
		}
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			f.Words++
			inWord = true
		}
	}
	return f
}

// Fields renders f as zap fields under prefix (e.g. "prompt_runes").
func (f Features) Fields(prefix string) []zap.Field {
	return []zap.Field{
		zap.Int(prefix+"_bytes", f.Bytes),
		zap.Int(prefix+"_runes", f.Runes),
		zap.Int(prefix+"_words", f.Words),
		zap.Int(prefix+"_lines", f.Lines),
	}
}
