// Package simplelogger appends log output to the file named by TEXTDIFFY_LOG_FILE. Nothing is ever written to stdout or stderr, so it is safe to use from the interactive viewer.
package simplelogger

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// EnvVar names the environment variable holding the log file path.
const EnvVar = "TEXTDIFFY_LOG_FILE"

var mu sync.Mutex

// Log is a minimal printf-style logger. It appends formatted output to the file specified by TEXTDIFFY_LOG_FILE.
//
// If TEXTDIFFY_LOG_FILE is unset/empty or the path can't be opened as a file, Log is a no-op.
func Log(format string, args ...any) {
	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = appendFile(os.Getenv(EnvVar), b.Bytes())
}

// New returns a structured logger whose records carry component=name and are appended, in slog's text format, to the file specified by TEXTDIFFY_LOG_FILE. The variable is read
// once, here. If it is unset/empty, records are discarded.
func New(name string) *slog.Logger {
	path := os.Getenv(EnvVar)
	if path == "" {
		return slog.New(slog.DiscardHandler)
	}
	h := slog.NewTextHandler(fileWriter{path: path}, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h).With("component", name)
}

// fileWriter opens path for each Write so that a log file removed or rotated while running is recreated.
type fileWriter struct {
	path string
}

func (w fileWriter) Write(p []byte) (int, error) {
	return appendFile(w.path, p)
}

func appendFile(path string, p []byte) (int, error) {
	if path == "" {
		return len(p), nil
	}

	// Serialize open/write/close to reduce interleaving within a single process.
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.Write(p)
}
