package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/modalcore/internal/config"
	"github.com/dshills/modalcore/internal/config/loader"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/logging"
	"github.com/dshills/modalcore/internal/script"
	"github.com/dshills/modalcore/internal/session"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	envFile    string
	logLevel   string
	logFile    string
	keymaps    []string
	macrosPath string

	settings config.Settings
	table    *keymap.Table
	closers  []io.Closer
}

func newRootCmd(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "modalcore",
		Short: "A Vim-style modal editing engine",
		Long: `modalcore drives a modal editing session: key sequences, counts,
operators and text objects, repeat, macros and undo.

Settings come from a TOML or YAML file, then MODALCORE_* environment
variables (optionally read from --env-file), then flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", defaultConfigPath(), "settings file (.toml or .yaml)")
	flags.StringVar(&a.envFile, "env-file", "", "dotenv file with MODALCORE_* overrides")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error or off")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.StringSliceVarP(&a.keymaps, "keymap", "k", nil, "keymap file merged over the defaults (repeatable)")
	flags.StringVar(&a.macrosPath, "macros", "", "macros file to load at start and save on exit")

	root.AddCommand(newRunCmd(a), newEditCmd(a), newKeysCmd(a))
	return root
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "modalcore", "settings.toml")
}

// setup loads settings, starts logging and builds the binding table.
func (a *app) setup(cmd *cobra.Command) error {
	var opts []config.LoaderOption
	if a.envFile != "" {
		environ, err := loader.DotenvEnviron(a.envFile)
		if err != nil {
			return err
		}
		opts = append(opts, config.WithEnv(loader.NewEnvLoader(config.EnvPrefix, loader.WithEnviron(environ))))
	}
	s, err := config.NewLoader(opts...).Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		s.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-file") {
		s.Log.File = a.logFile
	}
	if err := s.Validate(); err != nil {
		return err
	}
	a.settings = s

	if err := a.setupLogging(cmd.ErrOrStderr()); err != nil {
		return err
	}

	files := append(append([]string(nil), s.Keymaps.Files...), a.keymaps...)
	a.table, err = config.LoadTable(files...)
	if err != nil {
		return err
	}
	logging.Debug("settings loaded", "config", a.configPath, "keymaps", len(files))
	return nil
}

func (a *app) setupLogging(stderr io.Writer) error {
	level := logging.ParseLevel(a.settings.Log.Level)
	if a.settings.Log.File == "" {
		logging.Configure(stderr, level)
		return nil
	}
	f, err := os.OpenFile(a.settings.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.closers = append(a.closers, f)
	logging.Configure(f, level)
	return nil
}

// newSession builds a session over lines with the loaded settings.
func (a *app) newSession(lines []string) (*session.Session, error) {
	opts := append(a.settings.SessionOptions(), session.WithTable(a.table))

	if path := a.settings.Sections.LuaScript; path != "" {
		sec, err := script.LoadSection(path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, sec)
		fn := sec.Func()
		if len(a.settings.Sections.Prefixes) > 0 {
			fn = motion.AnySection(motion.PrefixSection(a.settings.Sections.Prefixes...), fn)
		}
		opts = append(opts, session.WithSection(fn))
	}

	sess := session.New(buffer.NewBuffer(buffer.WithLines(lines...)), opts...)
	if a.macrosPath != "" {
		if err := sess.LoadMacros(a.macrosPath); err != nil {
			sess.Close()
			return nil, err
		}
	}
	return sess, nil
}

// finish saves macros when a macros file is configured.
func (a *app) finish(sess *session.Session) error {
	defer sess.Close()
	if a.macrosPath == "" {
		return nil
	}
	return sess.SaveMacros(a.macrosPath)
}

func (a *app) close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
