// Package watcher reports changes to settings and keymap files so hosts
// can reload them while running.
//
// Files are watched through their parent directories: editors save by
// writing a temporary file and renaming it over the original, which would
// drop a watch placed on the file itself.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/modalcore/internal/logging"
)

// DefaultDebounce is how long a file must stay quiet before its change is
// delivered.
const DefaultDebounce = 100 * time.Millisecond

var ErrClosed = errors.New("watcher: closed")

// Op is what happened to a watched file.
type Op uint8

const (
	OpWrite Op = iota
	OpCreate
	OpRemove
	// OpRename means the file was renamed away from its watched path.
	OpRename
)

var opNames = [...]string{
	OpWrite:  "write",
	OpCreate: "create",
	OpRemove: "remove",
	OpRename: "rename",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Event reports one settled change to a watched file. Path is absolute.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// Handler receives events on the watcher's goroutine.
type Handler func(Event)

// Watcher delivers debounced change events for a set of files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu       sync.Mutex
	files    map[string]string // file -> directory
	dirs     map[string]int    // directory -> watched files in it
	handlers []Handler
	bursts   map[string]*burst
	running  bool
	closed   bool

	wg sync.WaitGroup
}

// burst is a run of events on one file that has not settled yet.
type burst struct {
	op    Op
	last  time.Time
	timer *time.Timer
}

type Option func(*Watcher)

// WithDebounce sets the quiet period. Zero delivers every event as it
// arrives.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = max(d, 0)
	}
}

// New returns a watcher that watches nothing and delivers nothing until
// Watch and Start are called.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: DefaultDebounce,
		files:    make(map[string]string),
		dirs:     make(map[string]int),
		bursts:   make(map[string]*burst),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds path. The file may be missing but its directory must exist.
func (w *Watcher) Watch(path string) error {
	file, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if _, ok := w.files[file]; ok {
		return nil
	}
	dir := filepath.Dir(file)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watcher: watch %s: %w", dir, err)
		}
	}
	w.files[file] = dir
	w.dirs[dir]++
	return nil
}

// Unwatch removes path. A path that is not watched is ignored.
func (w *Watcher) Unwatch(path string) error {
	file, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	dir, ok := w.files[file]
	if !ok {
		return nil
	}
	delete(w.files, file)
	if w.dirs[dir]--; w.dirs[dir] > 0 {
		return nil
	}
	delete(w.dirs, dir)
	return w.fsw.Remove(dir)
}

// OnChange adds h to the handlers called for every delivered event.
func (w *Watcher) OnChange(h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
}

// WatchedFiles lists the watched paths, sorted.
func (w *Watcher) WatchedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}

// Start begins reading filesystem events. A second call does nothing.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.closed:
		return ErrClosed
	case w.running:
		return nil
	}
	w.running = true
	w.wg.Add(1)
	go w.run()
	return nil
}

func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Close stops the watcher and drops changes still settling.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.running = false
	for path, b := range w.bursts {
		b.timer.Stop()
		delete(w.bursts, path)
	}
	w.mu.Unlock()

	// Closing fsnotify closes its channels, which ends run.
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.observe(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) observe(ev fsnotify.Event) {
	op, ok := translate(ev.Op)
	if !ok {
		return
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	if _, watched := w.files[path]; !watched || w.closed {
		w.mu.Unlock()
		return
	}
	if w.debounce == 0 {
		w.mu.Unlock()
		w.deliver(Event{Path: path, Op: op, Time: time.Now()})
		return
	}
	w.record(path, op, time.Now())
	w.mu.Unlock()
}

// record folds op into the burst for path and restarts its quiet period.
// The caller holds mu.
func (w *Watcher) record(path string, op Op, at time.Time) {
	b, ok := w.bursts[path]
	if !ok {
		b = &burst{op: op, last: at}
		b.timer = time.AfterFunc(w.debounce, func() { w.settle(path) })
		w.bursts[path] = b
		return
	}
	b.op = merge(b.op, op)
	b.last = at
	b.timer.Reset(w.debounce)
}

func (w *Watcher) settle(path string) {
	w.mu.Lock()
	b, ok := w.bursts[path]
	if ok {
		delete(w.bursts, path)
	}
	w.mu.Unlock()
	if ok {
		w.deliver(Event{Path: path, Op: b.op, Time: b.last})
	}
}

// merge folds the next operation of a burst into what was seen so far.
// Removal wins. A create stays a create through later writes. A create
// after a removal or rename is an atomic save and reads as a write.
func merge(seen, next Op) Op {
	switch next {
	case OpCreate:
		if seen != OpCreate {
			return OpWrite
		}
	case OpWrite:
		if seen == OpCreate {
			return OpCreate
		}
	}
	return next
}

func translate(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	}
	// chmod
	return 0, false
}

func (w *Watcher) deliver(ev Event) {
	w.mu.Lock()
	handlers := slices.Clone(w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		call(h, ev)
	}
}

func call(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("config watcher handler panic", "path", ev.Path, "panic", r)
		}
	}()
	h(ev)
}
