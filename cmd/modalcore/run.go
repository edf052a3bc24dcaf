package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/modalcore/internal/input"
)

type runOptions struct {
	keys  string
	write bool
	stats bool
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Apply a key sequence to a file and print the result",
		Long: `Apply a key sequence, in Vim notation, to a file or standard input.

The result is printed to standard output unless --write is given. A
command left incomplete at the end of the keys is flushed as if the
sequence timeout had expired.

Examples:
  modalcore run notes.txt --keys 'dwjdd'
  printf 'one two\n' | modalcore run --keys 'cwuno<Esc>'
  modalcore run main.go --keys 'gg>ip' --write`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 && args[0] != "-" {
				path = args[0]
			}
			return a.run(cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.keys, "keys", "e", "", "key sequence to apply")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print key resolution counters to stderr")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}

func (a *app) run(cmd *cobra.Command, path string, opts runOptions) error {
	if opts.write && path == "" {
		return errors.New("--write needs a file")
	}

	var content []byte
	var err error
	if path == "" {
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}

	sess, err := a.newSession(splitLines(string(content)))
	if err != nil {
		return err
	}

	out, err := sess.SubmitKeys(opts.keys)
	if err != nil {
		sess.Close()
		return fmt.Errorf("--keys: %w", err)
	}
	if out.Kind == input.Partial {
		sess.FlushPendingOnTimeout()
	}
	if out.Err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", out.Err)
	}
	text := joinLines(sess.Lines())

	if opts.stats {
		data, err := yaml.Marshal(sess.Metrics().Snapshot())
		if err == nil {
			cmd.ErrOrStderr().Write(data)
		}
	}
	if err := a.finish(sess); err != nil {
		return err
	}

	if opts.write {
		return writeFileAtomic(path, text)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), text)
	return err
}

// splitLines splits file content into buffer lines. A final newline ends
// the last line rather than starting an empty one.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

func writeFileAtomic(path, text string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), mode); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
