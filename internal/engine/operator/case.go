package operator

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
)

var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)
)

// recase rewrites columns [from, to) of line with the case operator k.
func recase(tx *history.Transaction, line, from, to int, k Kind) {
	text := tx.Line(line)
	start := buffer.ByteOffset(text, from)
	end := buffer.ByteOffset(text, to)
	if start >= end {
		return
	}
	mid := text[start:end]
	switch k {
	case Uppercase:
		mid = upper.String(mid)
	case Lowercase:
		mid = lower.String(mid)
	default:
		mid = ToggleString(mid)
	}
	tx.RewriteLine(line, text[:start]+mid+text[end:])
}

// ToggleString swaps the case of every letter in s.
func ToggleString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			sb.WriteRune(unicode.ToLower(r))
		case unicode.IsLower(r):
			sb.WriteRune(unicode.ToUpper(r))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
