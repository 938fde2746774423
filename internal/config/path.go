package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading "~" to the user's home directory and makes path absolute. Works cross-OS (including Windows, which doesn't traditionally treat ~ as the home directory).
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	expanded := path
	if strings.HasPrefix(expanded, "~") {
		if home, _ := os.UserHomeDir(); home != "" {
			switch {
			case expanded == "~" || expanded == "~/" || expanded == `~\`:
				expanded = home
			case strings.HasPrefix(expanded, "~/") || strings.HasPrefix(expanded, `~\`):
				expanded = filepath.Join(home, expanded[2:])
			}
		}
	}

	if !filepath.IsAbs(expanded) {
		if abs, err := filepath.Abs(expanded); err == nil {
			expanded = abs
		}
	}
	return expanded
}

// firstExisting returns the first regular file dir/base+ext for ext in fileExtensions, or "".
func firstExisting(dir, base string) string {
	for _, ext := range fileExtensions {
		p := filepath.Join(dir, base+ext)
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p
		}
	}
	return ""
}

// nearestFile searches upward from start (a directory or a file in it) for the first directory containing base+ext for some ext in fileExtensions. The search stops at the
// filesystem root. It returns "" if nothing is found.
func nearestFile(start, base string) string {
	if start == "" {
		return ""
	}
	start = ExpandPath(start)
	if fi, err := os.Stat(start); err == nil && !fi.IsDir() {
		start = filepath.Dir(start)
	}

	for dir := start; ; {
		if p := firstExisting(dir, base); p != "" {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
