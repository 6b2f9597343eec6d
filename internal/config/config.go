// Package config loads hirexpand.toml project settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"hirexpand/internal/trace"
)

// FileName is the name of the project configuration file.
const FileName = "hirexpand.toml"

// Config mirrors hirexpand.toml. Zero values mean "not set".
type Config struct {
	Expand ExpandConfig `toml:"expand"`
	Trace  TraceConfig  `toml:"trace"`
}

type ExpandConfig struct {
	Jobs           int    `toml:"jobs"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Cache          bool   `toml:"cache"`
	CacheDir       string `toml:"cache_dir"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

// File is a loaded configuration together with its location.
type File struct {
	Path   string
	Root   string
	Config Config
	meta   toml.MetaData
}

// IsSet reports whether key (e.g. "expand", "jobs") was present in the file.
func (f *File) IsSet(key ...string) bool {
	if f == nil {
		return false
	}
	return f.meta.IsDefined(key...)
}

// Find ищет hirexpand.toml, поднимаясь от startDir к корню.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the configuration governing path (a file or a
// directory). ok is false when no hirexpand.toml exists above it.
func Discover(path string) (*File, bool, error) {
	start := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		start = filepath.Dir(path)
	}
	cfgPath, ok, err := Find(start)
	if err != nil || !ok {
		return nil, ok, err
	}
	f, err := Load(cfgPath)
	if err != nil {
		return nil, true, err
	}
	return f, true, nil
}

// Load decodes and validates the file at path. Unknown keys are errors.
func Load(path string) (*File, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := validate(&cfg, meta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
		meta:   meta,
	}, nil
}

func validate(cfg *Config, meta toml.MetaData) error {
	if meta.IsDefined("expand", "jobs") && cfg.Expand.Jobs < 0 {
		return fmt.Errorf("[expand].jobs must be >= 0, got %d", cfg.Expand.Jobs)
	}
	if meta.IsDefined("expand", "max_diagnostics") && cfg.Expand.MaxDiagnostics <= 0 {
		return fmt.Errorf("[expand].max_diagnostics must be positive, got %d", cfg.Expand.MaxDiagnostics)
	}
	if meta.IsDefined("expand", "cache_dir") && strings.TrimSpace(cfg.Expand.CacheDir) == "" {
		return errors.New("[expand].cache_dir must not be empty")
	}
	if meta.IsDefined("trace", "level") {
		if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
			return fmt.Errorf("[trace].level: %w", err)
		}
	}
	if meta.IsDefined("trace", "mode") {
		if _, err := trace.ParseMode(cfg.Trace.Mode); err != nil {
			return fmt.Errorf("[trace].mode: %w", err)
		}
	}
	return nil
}

// CacheDir returns [expand].cache_dir resolved against the config root.
func (f *File) CacheDir() string {
	if f == nil || f.Config.Expand.CacheDir == "" {
		return ""
	}
	dir := filepath.FromSlash(f.Config.Expand.CacheDir)
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(f.Root, dir)
}
