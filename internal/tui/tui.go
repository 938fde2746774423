// Package tui is textdiffy's interactive viewer: a scrollable pretty rendering of a diff whose comparison options can be toggled while it runs.
//
// Keys:
//   - w: toggle whitespace sensitivity
//   - c: toggle case sensitivity
//   - g: cycle granularity (line, word, char, grapheme)
//   - y: copy the plain transcript to the clipboard
//   - e: export to the configured file
//   - q, ctrl+c: quit
//   - arrows, pgup/pgdn, mouse wheel: scroll
//
// Every toggle starts a new build in a command. Builds are numbered; a result whose number is not the latest is dropped.
package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codalotl/textdiffy/internal/diff"
	"github.com/codalotl/textdiffy/internal/simplelogger"
)

// Options configure Run.
type Options struct {
	OldName string // label of the old side
	NewName string // label of the new side
	OldText string
	NewText string

	Diff       diff.Options // initial comparison options
	ExportFile string       // target of the export key; its extension picks the format
	Color      bool         // colorize the diff

	// WatchOld and WatchNew, when both non-empty, are files that are reloaded (and the diff recomputed) whenever they change.
	WatchOld string
	WatchNew string

	Input    io.Reader // keyboard input; nil means stdin
	InputTTY bool      // read keys from the controlling terminal instead of Input (ex: when stdin holds one of the texts)
	Output   io.Writer // nil means stdout
}

// Run shows the viewer until the user quits or ctx is canceled.
func Run(ctx context.Context, opts Options) error {
	log := simplelogger.New("tui")
	m := newModel(ctx, opts)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion()}
	switch {
	case opts.InputTTY:
		progOpts = append(progOpts, tea.WithInputTTY())
	case opts.Input != nil:
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(m, progOpts...)

	if opts.WatchOld != "" && opts.WatchNew != "" {
		stop, err := watchFiles(ctx, []string{opts.WatchOld, opts.WatchNew}, watchDebounce, p.Send)
		if err != nil {
			return err
		}
		defer stop()
		log.Info("watching", "old", opts.WatchOld, "new", opts.WatchNew)
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
