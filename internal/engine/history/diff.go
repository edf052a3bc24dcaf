package history

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// tokenBase maps grapheme clusters onto runes outside the BMP so that the
// differ never splits a cluster.
const tokenBase = 0x10000

// RewriteLine replaces the text of line with newText, recording only the
// characters that differ.
func (tx *Transaction) RewriteLine(line int, newText string) {
	old := tx.f.Line(line)
	if old == newText {
		return
	}

	a, b, table := tokenizeGraphemes(old, newText)
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(a, b, false)

	col := 0
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		n := len([]rune(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			col += n
		case diffmatchpatch.DiffDelete:
			span := buffer.Span{
				Start: buffer.Point{Line: line, Column: col},
				End:   buffer.Point{Line: line, Column: col + n},
			}
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				ins := diffs[i+1]
				tx.Replace(span, detokenize(ins.Text, table))
				col += len([]rune(ins.Text))
				i++
				continue
			}
			tx.Delete(span)
		case diffmatchpatch.DiffInsert:
			tx.Insert(buffer.Point{Line: line, Column: col}, detokenize(d.Text, table))
			col += n
		}
	}
}

// tokenizeGraphemes encodes two strings as rune slices with one rune per
// grapheme cluster and returns the decoding table.
func tokenizeGraphemes(a, b string) ([]rune, []rune, []string) {
	index := make(map[string]rune)
	var table []string
	encode := func(s string) []rune {
		clusters := buffer.Graphemes(s)
		out := make([]rune, len(clusters))
		for i, c := range clusters {
			r, ok := index[c]
			if !ok {
				r = rune(tokenBase + len(table))
				index[c] = r
				table = append(table, c)
			}
			out[i] = r
		}
		return out
	}
	return encode(a), encode(b), table
}

func detokenize(s string, table []string) string {
	var sb strings.Builder
	for _, r := range s {
		sb.WriteString(table[int(r)-tokenBase])
	}
	return sb.String()
}
