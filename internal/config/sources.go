package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVars maps configuration keys to the environment variables that set them.
var EnvVars = map[string]string{
	KeyGranularity:      "TEXTDIFFY_GRANULARITY",
	KeyIgnoreWhitespace: "TEXTDIFFY_IGNORE_WHITESPACE",
	KeyIgnoreCase:       "TEXTDIFFY_IGNORE_CASE",
	KeyColor:            "TEXTDIFFY_COLOR",
	KeyContext:          "TEXTDIFFY_CONTEXT",
	KeyFormat:           "TEXTDIFFY_FORMAT",
}

// fileExtensions are tried in order, both for the user file and for each directory of the project file search.
var fileExtensions = []string{".yaml", ".yml", ".toml", ".json"}

// source supplies a flat map of lowercased keys to raw values.
type source interface {
	// Name returns a human-readable label for the source, used in error messages.
	Name() string

	// values returns the raw key/value pairs and the provenance of each key.
	values() (map[string]any, func(key string) Provenance, error)
}

// fileSource reads a YAML, TOML or JSON file, chosen by extension. Empty or whitespace-only files contribute no values.
type fileSource struct {
	path string
}

func (s fileSource) Name() string {
	return "file " + s.path
}

func (s fileSource) values() (map[string]any, func(string) Provenance, error) {
	prov := func(string) Provenance { return Provenance{SourceType: "file", SourceIdentifier: s.path} }

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, prov, nil
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		_, err = toml.Decode(string(data), &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		err = fmt.Errorf("unsupported config file extension %q", filepath.Ext(s.path))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: parse: %v", ErrInvalid, err)
	}

	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[strings.ToLower(k)] = v
	}
	return out, prov, nil
}

// envSource reads the variables in EnvVars. Missing and empty variables are ignored; present values are strings.
type envSource struct {
	lookup func(string) (string, bool)
}

func (s envSource) Name() string {
	return "environment"
}

func (s envSource) values() (map[string]any, func(string) Provenance, error) {
	out := map[string]any{}
	for key, name := range EnvVars {
		v, ok := s.lookup(name)
		if !ok || v == "" {
			continue
		}
		out[key] = v
	}
	prov := func(key string) Provenance { return Provenance{SourceType: "env", SourceIdentifier: EnvVars[key]} }
	return out, prov, nil
}

// Loader locates and applies configuration sources. The zero value reads the real home directory, working directory and environment.
type Loader struct {
	HomeDir   string                      // if "", os.UserHomeDir is used
	WorkDir   string                      // starting directory of the project file search; if "", os.Getwd is used
	LookupEnv func(string) (string, bool) // if nil, os.LookupEnv is used
}

// Load returns the configuration from defaults, files and the environment of the running process.
func Load() (*Config, error) {
	return (&Loader{}).Load()
}

// Load applies, in increasing priority, defaults, the user file, the project file and the environment. It fails fast on the first invalid source; later sources are not consulted
// to "fix" bad values.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()
	for _, src := range l.sources() {
		m, prov, err := src.values()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", src.Name(), err)
		}

		// Apply in a stable order so that the reported error does not depend on map iteration.
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := cfg.Set(k, m[k], prov(k)); err != nil {
				return nil, fmt.Errorf("%s: %w", src.Name(), err)
			}
		}
	}
	return cfg, nil
}

// Files returns the user and project files Load would read, in increasing priority. Missing files are not included.
func (l *Loader) Files() []string {
	var out []string
	for _, src := range l.sources() {
		if fsrc, ok := src.(fileSource); ok {
			out = append(out, fsrc.path)
		}
	}
	return out
}

func (l *Loader) sources() []source {
	var out []source

	home := l.HomeDir
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	if home != "" {
		if p := firstExisting(filepath.Join(home, ".textdiffy"), "config"); p != "" {
			out = append(out, fileSource{path: p})
		}
	}

	wd := l.WorkDir
	if wd == "" {
		wd, _ = os.Getwd()
	}
	if p := nearestFile(wd, ".textdiffy"); p != "" {
		out = append(out, fileSource{path: p})
	}

	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	out = append(out, envSource{lookup: lookup})
	return out
}
