package buffer

import (
	"strings"

	"github.com/rivo/uniseg"
)

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	if isASCII(s) {
		return len(s)
	}
	return uniseg.GraphemeClusterCount(s)
}

// Graphemes splits s into its grapheme clusters.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	if isASCII(s) {
		out := make([]string, len(s))
		for i := 0; i < len(s); i++ {
			out[i] = s[i : i+1]
		}
		return out
	}
	out := make([]string, 0, len(s))
	state := -1
	rest := s
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		out = append(out, cluster)
	}
	return out
}

// ByteOffset returns the byte offset of grapheme column col within s.
// Columns past the end map to len(s).
func ByteOffset(s string, col int) int {
	if col <= 0 {
		return 0
	}
	if isASCII(s) {
		if col > len(s) {
			return len(s)
		}
		return col
	}
	offset := 0
	state := -1
	rest := s
	for i := 0; i < col && rest != ""; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		offset += len(cluster)
	}
	return offset
}

// SliceColumns returns the text between grapheme columns from and to.
func SliceColumns(s string, from, to int) string {
	if to < from {
		from, to = to, from
	}
	return s[ByteOffset(s, from):ByteOffset(s, to)]
}

// Advance returns the position reached after inserting text at p.
func Advance(p Point, text string) Point {
	nl := strings.Count(text, "\n")
	if nl == 0 {
		return Point{Line: p.Line, Column: p.Column + GraphemeCount(text)}
	}
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return Point{Line: p.Line + nl, Column: GraphemeCount(last)}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
