package operator

import "strings"

// shift indents or unindents one line by a shift width. Blank lines are not
// indented.
func shift(line string, indent bool, s Settings) string {
	sw := s.ShiftWidth
	if sw < 1 {
		sw = DefaultSettings.ShiftWidth
	}
	if indent {
		if strings.TrimSpace(line) == "" {
			return line
		}
		if s.ExpandTab {
			return strings.Repeat(" ", sw) + line
		}
		return "\t" + line
	}

	width := 0
	cut := 0
	for cut < len(line) && width < sw {
		switch line[cut] {
		case ' ':
			width++
		case '\t':
			width = sw
		default:
			return line[cut:]
		}
		cut++
	}
	return line[cut:]
}
