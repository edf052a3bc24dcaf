package textobj

import (
	"fmt"
	"slices"
)

// Kind identifies a family of text objects.
type Kind uint8

const (
	KindWord Kind = iota
	KindBigWord
	KindSentence
	KindParagraph
	KindQuote
	KindBracket
	KindTag
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindBigWord:
		return "WORD"
	case KindSentence:
		return "sentence"
	case KindParagraph:
		return "paragraph"
	case KindQuote:
		return "quote"
	case KindBracket:
		return "bracket"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Scope selects inner or around semantics.
type Scope uint8

const (
	// Inner excludes delimiters and surrounding whitespace.
	Inner Scope = iota
	// Around includes delimiters or one adjacent whitespace run.
	Around
)

// Prefix returns the key that selects the scope.
func (s Scope) Prefix() rune {
	if s == Around {
		return 'a'
	}
	return 'i'
}

// ScopeFor returns the scope selected by prefix key r.
func ScopeFor(r rune) (Scope, bool) {
	switch r {
	case 'i':
		return Inner, true
	case 'a':
		return Around, true
	}
	return 0, false
}

// Object is a text object: a kind plus, for quotes and brackets, its
// delimiters.
type Object struct {
	Kind  Kind
	Open  string
	Close string
}

// String returns a human-readable representation of the object.
func (o Object) String() string {
	if o.Open != "" {
		return fmt.Sprintf("%s%s%s", o.Kind, o.Open, o.Close)
	}
	return o.Kind.String()
}

// Linewise reports whether operators should act on whole lines.
func (o Object) Linewise() bool {
	return o.Kind == KindParagraph
}

var (
	Word      = Object{Kind: KindWord}
	BigWord   = Object{Kind: KindBigWord}
	Sentence  = Object{Kind: KindSentence}
	Paragraph = Object{Kind: KindParagraph}
	Tag       = Object{Kind: KindTag}
	Paren     = Object{Kind: KindBracket, Open: "(", Close: ")"}
	Square    = Object{Kind: KindBracket, Open: "[", Close: "]"}
	Brace     = Object{Kind: KindBracket, Open: "{", Close: "}"}
	Angle     = Object{Kind: KindBracket, Open: "<", Close: ">"}
)

// QuoteObject returns the quote object delimited by q.
func QuoteObject(q string) Object {
	return Object{Kind: KindQuote, Open: q, Close: q}
}

// objectLetters maps the letter typed after i/a to its object.
var objectLetters = map[rune]Object{
	'w':  Word,
	'W':  BigWord,
	's':  Sentence,
	'p':  Paragraph,
	't':  Tag,
	'"':  QuoteObject(`"`),
	'\'': QuoteObject("'"),
	'`':  QuoteObject("`"),
	'(':  Paren,
	')':  Paren,
	'b':  Paren,
	'[':  Square,
	']':  Square,
	'{':  Brace,
	'}':  Brace,
	'B':  Brace,
	'<':  Angle,
	'>':  Angle,
}

// Lookup returns the object selected by letter.
func Lookup(letter rune) (Object, bool) {
	o, ok := objectLetters[letter]
	return o, ok
}

// Letters returns every letter Lookup accepts, sorted.
func Letters() []rune {
	out := make([]rune, 0, len(objectLetters))
	for r := range objectLetters {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}
