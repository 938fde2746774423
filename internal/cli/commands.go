package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/codalotl/textdiffy/internal/config"
	"github.com/codalotl/textdiffy/internal/diff"
	"github.com/codalotl/textdiffy/internal/export"
	"github.com/codalotl/textdiffy/internal/simplelogger"
	"github.com/codalotl/textdiffy/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Replaced in tests.
var (
	loadConfig = config.Load
	runViewer  = tui.Run
)

// runEnv is the state shared by all commands of one Run.
type runEnv struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	log *slog.Logger
	cfg *config.Config
}

func (e *runEnv) logger() *slog.Logger {
	if e.log == nil {
		e.log = simplelogger.New("cli")
	}
	return e.log
}

// flagKeys maps flag names to the configuration keys they override.
var flagKeys = map[string]string{
	"granularity":       config.KeyGranularity,
	"ignore-whitespace": config.KeyIgnoreWhitespace,
	"ignore-case":       config.KeyIgnoreCase,
	"color":             config.KeyColor,
	"format":            config.KeyFormat,
	"context":           config.KeyContext,
	"output":            config.KeyExportFile,
	"watch":             config.KeyWatch,
}

// prepare loads the configuration and applies the flags the user set on cmd.
func (e *runEnv) prepare(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	var flagErr error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || flagErr != nil {
			return
		}
		if err := cfg.Set(key, f.Value.String(), config.Provenance{SourceType: "flag", SourceIdentifier: "--" + f.Name}); err != nil {
			flagErr = UsageError{Message: fmt.Sprintf("--%s: %v", f.Name, err)}
		}
	})
	if flagErr != nil {
		return flagErr
	}

	e.cfg = cfg
	return nil
}

func newRootCommand(env *runEnv) *cobra.Command {
	var exitCode bool

	root := &cobra.Command{
		Use:   "textdiffy [flags] <old> <new>",
		Short: "Compare two texts line by line, with word, character or grapheme detail for changed lines",
		Long: `textdiffy compares an old and a new text with a patience diff. Lines are matched after optional
whitespace and case normalization, and each changed line can be broken into same/added/removed parts.

Use "-" for one of the inputs to read it from stdin.`,
		Version:       Version,
		Args:          exactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.Context(), env, args, exitCode)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError{Message: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.BoolP("ignore-whitespace", "w", false, "treat runs of whitespace as equal and ignore leading/trailing whitespace")
	pf.BoolP("ignore-case", "i", false, "compare lines case-insensitively")
	pf.StringP("granularity", "g", "line", "detail for changed lines: line, word, char or grapheme")
	pf.String("color", "auto", "colorize output: auto, always or never")

	root.Flags().StringP("format", "f", "pretty", "output format: pretty, plain, unified, side or json")
	root.Flags().IntP("context", "U", 3, "lines of context for the unified format")
	root.Flags().BoolVar(&exitCode, "exit-code", false, "exit with status 1 when the texts differ")

	root.AddCommand(
		newViewCommand(env),
		newExportCommand(env),
		newCopyCommand(env),
		newStatsCommand(env),
		newApplyCommand(env),
		newConfigCommand(env),
		newVersionCommand(env),
	)
	return root
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("%s: expected %d arguments, got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// buildDiff reads the two inputs named by args and diffs them under env's configuration.
func buildDiff(ctx context.Context, env *runEnv, cmdName string, args []string) (export.Input, error) {
	in, err := readInputs(args[0], args[1], env.in)
	if err != nil {
		return export.Input{}, err
	}

	opts := env.cfg.Options()
	start := time.Now()
	entries, err := diff.BuildContext(ctx, in.Old, in.New, opts)
	if err != nil {
		return export.Input{}, err
	}
	in.Entries = entries

	s := diff.Summarize(entries)
	env.logger().Info("built diff",
		"cmd", cmdName,
		"old", in.OldName,
		"new", in.NewName,
		"granularity", opts.Granularity.String(),
		"whitespace_sensitive", opts.WhitespaceSensitive,
		"case_sensitive", opts.CaseSensitive,
		"entries", len(entries),
		"added", s.Added,
		"removed", s.Removed,
		"modified", s.Modified,
		"elapsed", time.Since(start),
	)
	return in, nil
}

func runDiff(ctx context.Context, env *runEnv, args []string, exitCode bool) error {
	in, err := buildDiff(ctx, env, "diff", args)
	if err != nil {
		return err
	}

	cfg := env.cfg
	color := useColor(cfg.Color, env.out)

	var out string
	switch cfg.Format {
	case config.FormatPlain:
		out = diff.RenderPlain(in.Entries) + "\n"
	case config.FormatUnified:
		out = diff.RenderUnified(in.Entries, in.OldName, in.NewName, cfg.Context, color) + "\n"
	case config.FormatSide:
		out = diff.RenderSideBySide(in.Entries, terminalWidth(env.out), color) + "\n"
	case config.FormatJSON:
		data, err := export.JSON(in, color)
		if err != nil {
			return err
		}
		out = string(data)
	default:
		out = diff.RenderPretty(in.Entries, color) + "\n"
	}
	if _, err := io.WriteString(env.out, out); err != nil {
		return err
	}

	if exitCode && diff.Summarize(in.Entries).Changed() {
		return ExitError{Code: 1}
	}
	return nil
}

func newViewCommand(env *runEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <old> <new>",
		Short: "Browse the diff interactively (w: whitespace, c: case, g: granularity, y: copy, e: export, q: quit)",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := env.cfg
			if cfg.Watch && (args[0] == stdinName || args[1] == stdinName) {
				return usageErrorf("view: --watch cannot be used with stdin")
			}
			in, err := readInputs(args[0], args[1], env.in)
			if err != nil {
				return err
			}
			env.logger().Info("starting viewer", "old", in.OldName, "new", in.NewName, "watch", cfg.Watch)

			opts := tui.Options{
				OldName:    in.OldName,
				NewName:    in.NewName,
				OldText:    in.Old,
				NewText:    in.New,
				Diff:       cfg.Options(),
				ExportFile: cfg.ExportFile,
				Color:      useColor(cfg.Color, env.out),
				Output:     env.out,
				// Stdin is the diff input when one side is "-"; keys then come from the terminal.
				InputTTY: args[0] == stdinName || args[1] == stdinName,
			}
			if cfg.Watch {
				opts.WatchOld, opts.WatchNew = args[0], args[1]
			}
			if _, ok := env.in.(*os.File); !ok {
				opts.Input = env.in
			}
			return runViewer(cmd.Context(), opts)
		},
	}
	cmd.Flags().Bool("watch", false, "recompute when either file changes")
	return cmd
}

func newExportCommand(env *runEnv) *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "export <old> <new>",
		Short: "Write the diff to a file (plain, json, html or patch)",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := env.cfg.ExportFile
			format := export.FormatForPath(path)
			if as != "" {
				f, err := export.ParseFormat(as)
				if err != nil {
					return UsageError{Message: "--as: " + err.Error()}
				}
				format = f
			}

			in, err := buildDiff(cmd.Context(), env, "export", args)
			if err != nil {
				return err
			}
			n, err := export.WriteFile(path, format, in)
			if err != nil {
				return err
			}
			env.logger().Info("exported", "path", path, "format", string(format), "bytes", n)
			fmt.Fprintf(env.out, "Wrote %s (%s, %s)\n", path, format, humanBytes(n))
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "textdiffy-diff.txt", "file to write")
	cmd.Flags().StringVar(&as, "as", "", "format: plain, json, html or patch (default: from the file extension)")
	return cmd
}

func newCopyCommand(env *runEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <old> <new>",
		Short: "Copy the plain diff transcript to the clipboard",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := buildDiff(cmd.Context(), env, "copy", args)
			if err != nil {
				return err
			}
			text := diff.RenderPlain(in.Entries)
			if err := writeClipboard(text); err != nil {
				// The transcript still goes to stdout so it can be copied by hand.
				env.logger().Warn("clipboard write failed", "err", err)
				fmt.Fprintf(env.errOut, "Could not copy to the clipboard (%v); printing the transcript instead.\n", err)
				if _, err := io.WriteString(env.out, text+"\n"); err != nil {
					return err
				}
				return ExitError{Code: 1}
			}
			fmt.Fprintf(env.out, "Copied %s lines to the clipboard\n", humanCount(len(in.Entries)))
			return nil
		},
	}
}

func newStatsCommand(env *runEnv) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats <old> <new>",
		Short: "Print counts of added, removed, modified and unchanged lines",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := buildDiff(cmd.Context(), env, "stats", args)
			if err != nil {
				return err
			}
			s := diff.Summarize(in.Entries)
			if asJSON {
				data, err := statsJSON(s, useColor(env.cfg.Color, env.out))
				if err != nil {
					return err
				}
				_, err = env.out.Write(data)
				return err
			}
			_, err = io.WriteString(env.out, formatStats(s))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the counts as JSON")
	return cmd
}

func newApplyCommand(env *runEnv) *cobra.Command {
	var inPlace bool

	cmd := &cobra.Command{
		Use:   "apply <file> <patch>",
		Short: "Apply a patch written by 'export --as patch' and print the result",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == stdinName && args[1] == stdinName {
				return usageErrorf("apply: only one of <file> and <patch> can be %q (stdin)", stdinName)
			}
			if inPlace && args[0] == stdinName {
				return usageErrorf("apply: --in-place needs a file, not stdin")
			}
			text, err := readInput(args[0], env.in)
			if err != nil {
				return err
			}
			patchText, err := readInput(args[1], env.in)
			if err != nil {
				return err
			}

			out, err := export.Apply(text, patchText)
			if err != nil {
				if errors.Is(err, export.ErrPatchFailed) {
					env.logger().Warn("patch failed", "file", args[0], "err", err)
				}
				return fmt.Errorf("apply %s: %w", args[1], err)
			}
			if inPlace {
				return os.WriteFile(args[0], []byte(out), 0o644)
			}
			_, err = io.WriteString(env.out, out)
			return err
		},
	}
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "overwrite <file> instead of printing")
	return cmd
}

func newConfigCommand(env *runEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration and where each value comes from",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(env.out, formatConfig(env.cfg))
			return err
		},
	}
}

func newVersionCommand(env *runEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  exactArgs(0),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(env.out, "textdiffy %s\n", Version)
			return err
		},
	}
}
