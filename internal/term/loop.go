package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modalcore/internal/input"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/logging"
)

// Session is the part of a session the loop drives.
type Session interface {
	View
	SubmitKey(ev key.Event) input.Outcome
	FlushPendingOnTimeout() input.Outcome
	Timeout() time.Duration
}

// Loop feeds terminal keys to a session and redraws after each one. It
// owns the pending-sequence timer: after a Partial outcome it waits for
// the session timeout and then flushes.
type Loop struct {
	screen  tcell.Screen
	view    *Screen
	session Session

	quit   key.Event
	save   key.Event
	onSave func() error
	onKey  func(key.Event, input.Outcome)
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithQuitKey sets the key that ends the loop. Default <C-q>.
func WithQuitKey(ev key.Event) LoopOption {
	return func(l *Loop) {
		l.quit = ev
	}
}

// WithSave calls fn when <C-s> is pressed.
func WithSave(fn func() error) LoopOption {
	return func(l *Loop) {
		l.onSave = fn
	}
}

// WithKeyHook calls fn after every submitted key.
func WithKeyHook(fn func(key.Event, input.Outcome)) LoopOption {
	return func(l *Loop) {
		l.onKey = fn
	}
}

// NewLoop creates a loop over an initialised screen.
func NewLoop(screen tcell.Screen, sess Session, opts ...LoopOption) *Loop {
	l := &Loop{
		screen:  screen,
		view:    NewScreen(screen),
		session: sess,
		quit:    key.Ctrl('q'),
		save:    key.Ctrl('s'),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Screen returns the drawing surface.
func (l *Loop) Screen() *Screen {
	return l.view
}

// Run processes events until the quit key, ctx is done or the screen
// closes.
func (l *Loop) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go l.screen.ChannelEvents(events, quit)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	l.view.Draw(l.session)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-timer.C:
			l.session.FlushPendingOnTimeout()
			l.view.Draw(l.session)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch e := ev.(type) {
			case *tcell.EventResize:
				l.screen.Sync()
			case *tcell.EventKey:
				k, ok := FromTcell(e)
				if !ok {
					continue
				}
				if k == l.quit {
					return nil
				}
				timer.Stop()
				l.view.SetMessage("")
				if k == l.save && l.onSave != nil {
					l.handleSave()
				} else {
					out := l.session.SubmitKey(k)
					if out.Err != nil {
						l.view.SetMessage(out.Err.Error())
					}
					if out.Kind == input.Partial {
						timer.Reset(l.session.Timeout())
					}
					if l.onKey != nil {
						l.onKey(k, out)
					}
				}
			}
			l.view.Draw(l.session)
		}
	}
}

func (l *Loop) handleSave() {
	if err := l.onSave(); err != nil {
		logging.Error("save failed", "error", err)
		l.view.SetMessage("save failed: " + err.Error())
		return
	}
	l.view.SetMessage("written")
}
