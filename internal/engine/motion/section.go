package motion

import "strings"

// SectionFunc reports whether a line starts a section. index is the
// zero-based line number.
type SectionFunc func(line string, index int) bool

// DefaultSection treats a line beginning with an open brace as a section
// start.
func DefaultSection(line string, _ int) bool {
	return strings.HasPrefix(line, "{")
}

// PrefixSection returns a predicate matching lines that begin with any of
// the prefixes. With no prefixes it behaves like DefaultSection.
func PrefixSection(prefixes ...string) SectionFunc {
	var ps []string
	for _, p := range prefixes {
		if p != "" {
			ps = append(ps, p)
		}
	}
	if len(ps) == 0 {
		return DefaultSection
	}
	return func(line string, _ int) bool {
		for _, p := range ps {
			if strings.HasPrefix(line, p) {
				return true
			}
		}
		return false
	}
}

// AnySection matches a line if any of the predicates does.
func AnySection(fns ...SectionFunc) SectionFunc {
	return func(line string, index int) bool {
		for _, fn := range fns {
			if fn != nil && fn(line, index) {
				return true
			}
		}
		return false
	}
}
