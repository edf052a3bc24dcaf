package mode

// Mode is an editing mode.
type Mode uint8

const (
	Normal Mode = iota
	Insert
	OperatorPending
	// Visual selects characters from an anchor to the cursor.
	Visual
	// VisualLine selects whole lines. It shares the visual bindings.
	VisualLine
)

// Standard mode names, as used in binding tables.
const (
	NameNormal          = "normal"
	NameInsert          = "insert"
	NameOperatorPending = "operator-pending"
	NameVisual          = "visual"
	NameVisualLine      = "visual-line"
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Normal:
		return NameNormal
	case Insert:
		return NameInsert
	case OperatorPending:
		return NameOperatorPending
	case Visual:
		return NameVisual
	case VisualLine:
		return NameVisualLine
	default:
		return "unknown"
	}
}

// IsVisual reports whether m is one of the visual modes.
func (m Mode) IsVisual() bool {
	return m == Visual || m == VisualLine
}

// Bindings returns the mode whose bindings m uses.
func (m Mode) Bindings() Mode {
	if m == VisualLine {
		return Visual
	}
	return m
}

// DisplayName returns the name shown in a status line.
func (m Mode) DisplayName() string {
	switch m {
	case Insert:
		return "-- INSERT --"
	case OperatorPending:
		return "-- (op) --"
	case Visual:
		return "-- VISUAL --"
	case VisualLine:
		return "-- VISUAL LINE --"
	default:
		return ""
	}
}

// Parse returns the mode with the given name. "op" and "o" are accepted
// for operator-pending, "v" and "x" for visual and "V" for visual-line.
func Parse(name string) (Mode, bool) {
	switch name {
	case NameNormal, "n":
		return Normal, true
	case NameInsert, "i":
		return Insert, true
	case NameOperatorPending, "op", "o":
		return OperatorPending, true
	case NameVisual, "v", "x":
		return Visual, true
	case NameVisualLine, "V":
		return VisualLine, true
	}
	return Normal, false
}

// All returns every mode.
func All() []Mode {
	return []Mode{Normal, Insert, OperatorPending, Visual, VisualLine}
}

// CursorStyle is the cursor shape a mode asks for.
type CursorStyle uint8

const (
	CursorBlock CursorStyle = iota
	CursorBar
	CursorUnderline
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "unknown"
	}
}

// CursorStyle returns the cursor style for m.
func (m Mode) CursorStyle() CursorStyle {
	switch m {
	case Insert:
		return CursorBar
	case OperatorPending:
		return CursorUnderline
	default:
		return CursorBlock
	}
}
