package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/codalotl/textdiffy/internal/config"
	"github.com/codalotl/textdiffy/internal/diff"
	"github.com/codalotl/textdiffy/internal/export"
	"github.com/codalotl/textdiffy/internal/q/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/pretty"
	"golang.org/x/term"
)

// Replaced in tests.
var writeClipboard = clipboard.Write

const (
	stdinName    = "-"
	defaultWidth = 100
)

// readInputs reads the old and new texts. At most one of them may be stdinName, which reads stdin.
func readInputs(oldPath, newPath string, stdin io.Reader) (export.Input, error) {
	if oldPath == stdinName && newPath == stdinName {
		return export.Input{}, usageErrorf("only one of <old> and <new> can be %q (stdin)", stdinName)
	}
	oldText, err := readInput(oldPath, stdin)
	if err != nil {
		return export.Input{}, err
	}
	newText, err := readInput(newPath, stdin)
	if err != nil {
		return export.Input{}, err
	}
	return export.Input{
		OldName: displayName(oldPath),
		NewName: displayName(newPath),
		Old:     oldText,
		New:     newText,
	}, nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func displayName(path string) string {
	if path == stdinName {
		return "stdin"
	}
	return path
}

// useColor resolves c for output going to w. Auto colorizes only terminals, and never when NO_COLOR is set.
func useColor(c config.Color, w io.Writer) bool {
	switch c {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w if it is a terminal, and defaultWidth otherwise.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

func formatStats(s diff.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "added:    %s\n", humanize.Comma(int64(s.Added)))
	fmt.Fprintf(&b, "removed:  %s\n", humanize.Comma(int64(s.Removed)))
	fmt.Fprintf(&b, "modified: %s\n", humanize.Comma(int64(s.Modified)))
	fmt.Fprintf(&b, "same:     %s\n", humanize.Comma(int64(s.Same)))
	return b.String()
}

func statsJSON(s diff.Stats, color bool) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	data = pretty.Pretty(data)
	if color {
		data = pretty.Color(data, nil)
	}
	return data, nil
}

// formatConfig prints one "key = value  (provenance)" line per key, with values aligned.
func formatConfig(cfg *config.Config) string {
	keyWidth, valWidth := 0, 0
	values := make([]string, len(config.Keys))
	for i, k := range config.Keys {
		v, _ := cfg.Value(k)
		values[i] = v
		keyWidth = max(keyWidth, len(k))
		valWidth = max(valWidth, len(v))
	}

	var b bytes.Buffer
	for i, k := range config.Keys {
		fmt.Fprintf(&b, "%-*s = %-*s  (%s)\n", keyWidth, k, valWidth, values[i], cfg.ProvenanceOf(k))
	}
	return b.String()
}

func humanBytes(n int) string {
	return humanize.Bytes(uint64(n))
}

func humanCount(n int) string {
	return humanize.Comma(int64(n))
}
