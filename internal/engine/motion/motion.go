package motion

import (
	"slices"
	"strings"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/textobj"
)

// Type describes how an operator treats the region a motion covers.
type Type uint8

const (
	// Charwise motions cover the characters between two points.
	Charwise Type = iota
	// Linewise motions cover whole lines.
	Linewise
)

// String returns the type name.
func (t Type) String() string {
	if t == Linewise {
		return "linewise"
	}
	return "charwise"
}

// Func computes a motion target. count is the typed count, or 0 when no
// count was typed. arg holds the character argument of f, F, t and T.
// The boolean is false when the motion cannot move.
type Func func(r buffer.Reader, ctx *Context, from buffer.Point, count int, arg string) (buffer.Point, bool)

// Motion describes a cursor motion.
type Motion struct {
	Name      string
	Keys      string
	Action    string
	Type      Type
	Inclusive bool
	// Jump motions may move far. Hosts may record them in a jump list.
	Jump bool
	// NeedsChar motions read one more key as their argument.
	NeedsChar bool
	Move      Func

	inclusiveFrom func(*Context) bool
}

// IsInclusive reports whether the target character belongs to the region.
// For ; and , it depends on the search being repeated.
func (m Motion) IsInclusive(ctx *Context) bool {
	if m.inclusiveFrom != nil && ctx != nil {
		return m.inclusiveFrom(ctx)
	}
	return m.Inclusive
}

// Apply runs the motion.
func (m Motion) Apply(r buffer.Reader, ctx *Context, from buffer.Point, count int, arg string) (buffer.Point, bool) {
	if r.LineCount() == 0 || m.Move == nil {
		return from, false
	}
	if ctx == nil {
		ctx = NewContext()
	}
	return m.Move(r, ctx, buffer.Clamp(r, from), count, arg)
}

// Context is the state shared by the motions of one editing session.
type Context struct {
	// Section reports whether a line starts a section for [[ and ]].
	Section SectionFunc
	// Sentences splits text into sentences for ( and ).
	Sentences *textobj.Resolver
	// LastFind is the most recent f, F, t or T search.
	LastFind Find
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithSection sets the section predicate.
func WithSection(fn SectionFunc) ContextOption {
	return func(c *Context) {
		if fn != nil {
			c.Section = fn
		}
	}
}

// WithSentences sets the resolver used to find sentences.
func WithSentences(r *textobj.Resolver) ContextOption {
	return func(c *Context) {
		if r != nil {
			c.Sentences = r
		}
	}
}

// NewContext creates a Context with the default section and sentence
// rules.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		Section:   DefaultSection,
		Sentences: textobj.NewResolver(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func countOf(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

var motions = []Motion{
	{Name: "left", Keys: "h", Action: "cursor.left", Move: left},
	{Name: "right", Keys: "l", Action: "cursor.right", Move: right},
	{Name: "down", Keys: "j", Action: "cursor.down", Type: Linewise, Move: down},
	{Name: "up", Keys: "k", Action: "cursor.up", Type: Linewise, Move: up},
	{Name: "next line", Keys: "+", Action: "cursor.nextLine", Type: Linewise, Move: nextLine},
	{Name: "previous line", Keys: "-", Action: "cursor.prevLine", Type: Linewise, Move: prevLine},
	{Name: "line start", Keys: "0", Action: "cursor.lineStart", Move: lineStart},
	{Name: "first non-blank", Keys: "^", Action: "cursor.firstNonBlank", Move: firstNonBlank},
	{Name: "line end", Keys: "$", Action: "cursor.lineEnd", Inclusive: true, Move: lineEnd},
	{Name: "current line", Keys: "_", Action: "cursor.currentLine", Type: Linewise, Move: currentLine},
	{Name: "word forward", Keys: "w", Action: "cursor.wordForward", Move: wordMotion(false, wordForward)},
	{Name: "WORD forward", Keys: "W", Action: "cursor.bigWordForward", Move: wordMotion(true, wordForward)},
	{Name: "word backward", Keys: "b", Action: "cursor.wordBackward", Move: wordMotion(false, wordBackward)},
	{Name: "WORD backward", Keys: "B", Action: "cursor.bigWordBackward", Move: wordMotion(true, wordBackward)},
	{Name: "word end", Keys: "e", Action: "cursor.wordEnd", Inclusive: true, Move: wordMotion(false, wordEnd)},
	{Name: "WORD end", Keys: "E", Action: "cursor.bigWordEnd", Inclusive: true, Move: wordMotion(true, wordEnd)},
	{Name: "word end backward", Keys: "ge", Action: "cursor.wordEndBackward", Inclusive: true, Move: wordMotion(false, wordEndBackward)},
	{Name: "WORD end backward", Keys: "gE", Action: "cursor.bigWordEndBackward", Inclusive: true, Move: wordMotion(true, wordEndBackward)},
	{Name: "document start", Keys: "gg", Action: "cursor.documentStart", Type: Linewise, Jump: true, Move: documentStart},
	{Name: "document end", Keys: "G", Action: "cursor.documentEnd", Type: Linewise, Jump: true, Move: documentEnd},
	{Name: "find char", Keys: "f", Action: "cursor.findChar", Inclusive: true, NeedsChar: true, Move: findMotion(FindForward)},
	{Name: "find char backward", Keys: "F", Action: "cursor.findCharBack", NeedsChar: true, Move: findMotion(FindBackward)},
	{Name: "till char", Keys: "t", Action: "cursor.tillChar", Inclusive: true, NeedsChar: true, Move: findMotion(TillForward)},
	{Name: "till char backward", Keys: "T", Action: "cursor.tillCharBack", NeedsChar: true, Move: findMotion(TillBackward)},
	{
		Name: "repeat find", Keys: ";", Action: "cursor.repeatFind", Move: repeatFind(false),
		inclusiveFrom: func(c *Context) bool { return c.LastFind.Kind.Forward() },
	},
	{
		Name: "repeat find reverse", Keys: ",", Action: "cursor.repeatFindReverse", Move: repeatFind(true),
		inclusiveFrom: func(c *Context) bool { return !c.LastFind.Kind.Forward() },
	},
	{Name: "paragraph forward", Keys: "}", Action: "cursor.paragraphForward", Jump: true, Move: paragraphForward},
	{Name: "paragraph backward", Keys: "{", Action: "cursor.paragraphBackward", Jump: true, Move: paragraphBackward},
	{Name: "sentence forward", Keys: ")", Action: "cursor.sentenceForward", Jump: true, Move: sentenceForward},
	{Name: "sentence backward", Keys: "(", Action: "cursor.sentenceBackward", Jump: true, Move: sentenceBackward},
	{Name: "section forward", Keys: "]]", Action: "cursor.sectionForward", Jump: true, Move: sectionForward},
	{Name: "section backward", Keys: "[[", Action: "cursor.sectionBackward", Jump: true, Move: sectionBackward},
	{Name: "match pair", Keys: "%", Action: "cursor.matchPair", Inclusive: true, Jump: true, Move: matchPair},
}

var byAction = func() map[string]Motion {
	m := make(map[string]Motion, len(motions))
	for _, mo := range motions {
		m[mo.Action] = mo
	}
	return m
}()

// Lookup returns the motion bound to an action name.
func Lookup(action string) (Motion, bool) {
	m, ok := byAction[action]
	return m, ok
}

// All returns every motion, sorted by action name.
func All() []Motion {
	out := slices.Clone(motions)
	slices.SortFunc(out, func(a, b Motion) int {
		return strings.Compare(a.Action, b.Action)
	})
	return out
}
