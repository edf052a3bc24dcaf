package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input/mode"
)

// DefaultTabStop is the display width of a tab.
const DefaultTabStop = 8

// View is what the screen draws. *session.Session implements it.
type View interface {
	Lines() []string
	Cursor() buffer.Point
	Mode() mode.Mode
	PendingKeys() string
	Recording() (rune, bool)
}

var (
	statusStyle = tcell.StyleDefault.Reverse(true)
	tildeStyle  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
)

// Screen draws a View onto a tcell screen. The last row is the status
// line.
type Screen struct {
	screen  tcell.Screen
	tabStop int
	top     int
	message string
}

// ScreenOption configures a Screen.
type ScreenOption func(*Screen)

// WithTabStop sets the display width of a tab.
func WithTabStop(n int) ScreenOption {
	return func(s *Screen) {
		if n > 0 {
			s.tabStop = n
		}
	}
}

// NewScreen wraps an initialised tcell screen.
func NewScreen(screen tcell.Screen, opts ...ScreenOption) *Screen {
	s := &Screen{screen: screen, tabStop: DefaultTabStop}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetMessage shows msg in the status line until the next call.
func (s *Screen) SetMessage(msg string) {
	s.message = msg
}

// Top returns the first visible line.
func (s *Screen) Top() int {
	return s.top
}

// Draw renders v and shows the result.
func (s *Screen) Draw(v View) {
	width, height := s.screen.Size()
	rows := height - 1
	if width <= 0 || rows <= 0 {
		return
	}
	s.screen.Clear()

	lines := v.Lines()
	cur := v.Cursor()
	s.scrollTo(cur.Line, rows)

	for y := 0; y < rows; y++ {
		n := s.top + y
		if n >= len(lines) {
			s.screen.SetContent(0, y, '~', nil, tildeStyle)
			continue
		}
		s.drawLine(y, width, lines[n])
	}
	s.drawStatus(v, rows, width)

	x := 0
	if cur.Line < len(lines) {
		x = DisplayColumn(lines[cur.Line], cur.Column, s.tabStop)
	}
	s.screen.SetCursorStyle(cursorStyle(v.Mode()))
	s.screen.ShowCursor(x, cur.Line-s.top)
	s.screen.Show()
}

func (s *Screen) scrollTo(line, rows int) {
	if line < s.top {
		s.top = line
	}
	if line >= s.top+rows {
		s.top = line - rows + 1
	}
}

func (s *Screen) drawLine(y, width int, line string) {
	x := 0
	for _, g := range buffer.Graphemes(line) {
		if x >= width {
			return
		}
		if g == "\t" {
			next := (x/s.tabStop + 1) * s.tabStop
			for ; x < next && x < width; x++ {
				s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
			}
			continue
		}
		runes := []rune(g)
		w := runewidth.StringWidth(g)
		if w == 0 {
			continue
		}
		s.screen.SetContent(x, y, runes[0], runes[1:], tcell.StyleDefault)
		x += w
	}
}

func (s *Screen) drawStatus(v View, y, width int) {
	for x := 0; x < width; x++ {
		s.screen.SetContent(x, y, ' ', nil, statusStyle)
	}

	left := v.Mode().DisplayName()
	if reg, ok := v.Recording(); ok {
		left = strings.TrimSpace(left + " recording @" + string(reg))
	}
	if s.message != "" {
		left = strings.TrimSpace(left + " " + s.message)
	}
	cur := v.Cursor()
	right := fmt.Sprintf("%s  %d,%d", v.PendingKeys(), cur.Line+1, cur.Column+1)

	putString(s.screen, 0, y, width, left, statusStyle)
	rw := runewidth.StringWidth(right)
	putString(s.screen, max(width-rw, 0), y, width, right, statusStyle)
}

func putString(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

// DisplayColumn returns the screen column of grapheme column col in line.
func DisplayColumn(line string, col, tabStop int) int {
	if tabStop <= 0 {
		tabStop = DefaultTabStop
	}
	x := 0
	for i, g := range buffer.Graphemes(line) {
		if i >= col {
			break
		}
		if g == "\t" {
			x = (x/tabStop + 1) * tabStop
			continue
		}
		x += runewidth.StringWidth(g)
	}
	return x
}

func cursorStyle(m mode.Mode) tcell.CursorStyle {
	switch m.CursorStyle() {
	case mode.CursorBar:
		return tcell.CursorStyleSteadyBar
	case mode.CursorUnderline:
		return tcell.CursorStyleSteadyUnderline
	default:
		return tcell.CursorStyleSteadyBlock
	}
}
