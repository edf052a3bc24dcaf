package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses one key written either as a single character or in <...>
// notation.
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	events, err := ParseSequence(spec)
	if err != nil {
		return Event{}, err
	}
	if len(events) != 1 {
		return Event{}, fmt.Errorf("%w: %q is more than one key", ErrInvalidSpec, spec)
	}
	return events[0], nil
}

// MustParse is like Parse but panics on error. Use it only for constants.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic("key: " + err.Error())
	}
	return e
}

// ParseSequence parses a string of keys in Vim notation. A '<' that does
// not start a recognised <...> group is taken literally.
func ParseSequence(s string) ([]Event, error) {
	var out []Event
	for i := 0; i < len(s); {
		if s[i] == '<' {
			end := strings.IndexByte(s[i:], '>')
			if end > 1 {
				if e, err := parseBracket(s[i+1 : i+end]); err == nil {
					out = append(out, e)
					i += end + 1
					continue
				} else if !errors.Is(err, errNotNotation) {
					return nil, err
				}
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrInvalidSpec, i)
		}
		out = append(out, Rune(r))
		i += size
	}
	return out, nil
}

var errNotNotation = errors.New("not key notation")

// parseBracket parses the inside of a <...> group.
func parseBracket(inner string) (Event, error) {
	var mods Modifier
	name := inner
	for len(name) > 2 && name[1] == '-' {
		m := modifierFromLetter(name[:1])
		if m == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in <%s>", ErrInvalidSpec, name[:1], inner)
		}
		mods = mods.With(m)
		name = name[2:]
	}

	if k := FromName(name); k != KeyNone {
		return Special(k, mods), nil
	}
	if r, ok := runeAliases[strings.ToLower(name)]; ok {
		return Event{Key: KeyRune, Rune: r, Modifiers: mods}.Normalize(), nil
	}
	if r, size := utf8.DecodeRuneInString(name); size == len(name) && mods != ModNone {
		return Event{Key: KeyRune, Rune: r, Modifiers: mods}.Normalize(), nil
	}
	if mods != ModNone {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
	}
	return Event{}, errNotNotation
}

// Format writes events in Vim notation. ParseSequence(Format(es))
// returns es.
func Format(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(e.String())
	}
	return sb.String()
}

// MustParseSequence is like ParseSequence but panics on error. Use it only
// for constants.
func MustParseSequence(s string) []Event {
	events, err := ParseSequence(s)
	if err != nil {
		panic("key: " + err.Error())
	}
	return events
}
