// Package cli implements the textdiffy command line: the root diff command and the view, export, copy, stats, apply, config and version subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/codalotl/textdiffy/internal/simplelogger"
	"github.com/spf13/cobra"
)

// Version is the textdiffy version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.3.0"

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (flags are correct, etc). With --exit-code, also returned when the texts differ.
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	return RunContext(context.Background(), args, opts)
}

// RunContext is Run with a context that cancels long diffs and the viewer.
func RunContext(ctx context.Context, args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	env := &runEnv{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	if opts != nil {
		if opts.In != nil {
			env.in = opts.In
		}
		if opts.Out != nil {
			env.out = opts.Out
		}
		if opts.Err != nil {
			env.errOut = opts.Err
		}
	}

	root := newRootCommand(env)
	root.SetArgs(argv)
	root.SetIn(env.in)
	root.SetOut(env.out)
	root.SetErr(env.errOut)

	err := execute(ctx, root)
	if err == nil {
		return 0, nil
	}

	code := 1
	var ec ExitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}

	var silent ExitError
	if errors.As(err, &silent) && silent.Err == nil {
		return code, err
	}

	fmt.Fprintf(env.errOut, "Error: %s\n", strings.TrimSpace(err.Error()))
	if code == 2 {
		fmt.Fprintf(env.errOut, "Run '%s --help' for usage.\n", root.Name())
	}
	env.logger().Error("command failed", "code", code, "err", err)
	return code, err
}

// execute runs root. A panic (ex: a failed self-check in diff.Build) is logged with its stack and returned as an error.
func execute(ctx context.Context, root *cobra.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			simplelogger.Log("panic: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return root.ExecuteContext(ctx)
}
