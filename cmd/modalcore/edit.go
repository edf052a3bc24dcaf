package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/modalcore/internal/config"
	"github.com/dshills/modalcore/internal/config/watcher"
	"github.com/dshills/modalcore/internal/logging"
	"github.com/dshills/modalcore/internal/session"
	"github.com/dshills/modalcore/internal/term"
)

func newEditCmd(a *app) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Edit a file in the terminal",
		Long: `Open a file in a minimal terminal editor driven by the modal engine.

<C-s> writes the file and <C-q> quits. Keymap files are reloaded when
they change on disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd.Context(), args[0], !noWatch)
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload keymap files when they change")
	return cmd
}

func (a *app) edit(ctx context.Context, path string, watch bool) error {
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	sess, err := a.newSession(splitLines(string(content)))
	if err != nil {
		return err
	}
	defer a.finish(sess)

	if watch {
		w, err := a.watchKeymaps(sess)
		if err != nil {
			logging.Warn("keymap reload disabled", "error", err)
		} else {
			defer w.Close()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := term.NewLoop(screen, sess, term.WithSave(func() error {
		return writeFileAtomic(path, joinLines(sess.Lines()))
	}))
	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchKeymaps merges keymap files into the session table again whenever
// one of them is written.
func (a *app) watchKeymaps(sess *session.Session) (*watcher.Watcher, error) {
	files := append(append([]string(nil), a.settings.Keymaps.Files...), a.keymaps...)
	w, err := watcher.New()
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := w.Watch(f); err != nil {
			w.Close()
			return nil, err
		}
	}
	if a.configPath != "" {
		if err := w.Watch(a.configPath); err != nil {
			logging.Debug("not watching settings", "path", a.configPath, "error", err)
		}
	}

	loader := config.NewLoader()
	w.OnChange(func(ev watcher.Event) {
		if ev.Path != "" && ev.Op != watcher.OpRemove && ev.Op != watcher.OpRename {
			for _, f := range files {
				if sameFile(f, ev.Path) {
					reloadKeymap(loader, sess, ev.Path)
					return
				}
			}
		}
		logging.Info("settings file changed; restart to apply", "path", ev.Path, "op", ev.Op.String())
	})
	if err := w.Start(); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func reloadKeymap(l *config.Loader, sess *session.Session, path string) {
	f, err := l.LoadKeymap(path)
	if err != nil {
		logging.Warn("keymap reload failed", "path", path, "error", err)
		return
	}
	if err := f.Apply(sess.Table()); err != nil {
		logging.Warn("keymap reload failed", "path", path, "error", err)
		return
	}
	logging.Info("keymap reloaded", "path", path)
}

func sameFile(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}
