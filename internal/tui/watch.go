package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/codalotl/textdiffy/internal/simplelogger"
)

const watchDebounce = 100 * time.Millisecond

// filesChangedMsg reports that at least one watched file changed.
type filesChangedMsg struct{}

// reloadedMsg carries freshly read texts, or the error that prevented reading them.
type reloadedMsg struct {
	oldText string
	newText string
	err     error
}

// watchFiles calls send with a filesChangedMsg after one or more of paths change, once things have been quiet for debounce. It watches the parent directories so that editors that
// save by renaming a new file into place are seen too. The returned stop function ends watching; watching also ends when ctx is done.
func watchFiles(ctx context.Context, paths []string, debounce time.Duration, send func(tea.Msg)) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, err
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
		dirs[dir] = true
	}

	log := simplelogger.New("tui")
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !targets[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				log.Debug("watch event", "path", ev.Name, "op", ev.Op.String())
				if timer == nil {
					timer = time.AfterFunc(debounce, func() { send(filesChangedMsg{}) })
				} else {
					timer.Reset(debounce)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("watch error", "err", err)
			}
		}
	}()

	return func() {
		cancel()
		w.Close()
		<-done
	}, nil
}

// reload reads both files.
func reload(oldPath, newPath string) tea.Cmd {
	return func() tea.Msg {
		oldData, err := os.ReadFile(oldPath)
		if err != nil {
			return reloadedMsg{err: err}
		}
		newData, err := os.ReadFile(newPath)
		if err != nil {
			return reloadedMsg{err: err}
		}
		return reloadedMsg{oldText: string(oldData), newText: string(newData)}
	}
}
