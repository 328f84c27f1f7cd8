package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"pycheck/internal/diag"
)

// Manifest is a loaded pycheck.toml with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Project ProjectConfig `toml:"project"`
	Check   CheckConfig   `toml:"check"`
}

type ProjectConfig struct {
	Name string `toml:"name"`
	// Root is the source directory to check, relative to the manifest
	// directory. Empty means the manifest directory itself.
	Root string `toml:"root"`
}

type CheckConfig struct {
	// Mode is "default", "strict" or "unsafe".
	Mode string `toml:"mode"`
	// Ignore lists numeric diagnostic codes suppressed project-wide.
	Ignore []uint16 `toml:"ignore"`
	// Jobs caps worker parallelism; 0 means one worker per CPU.
	Jobs int `toml:"jobs"`
	// MaxDiagnostics caps the number of reported diagnostics; 0 means
	// the built-in default.
	MaxDiagnostics int `toml:"max_diagnostics"`
	// Exclude lists path globs (relative to the source root) that are
	// skipped during discovery.
	Exclude []string `toml:"exclude"`
}

// LoadManifest walks up from startDir, loads and validates pycheck.toml.
// ok is false when no manifest exists anywhere above startDir.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifestPath(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return Config{}, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [project].name", path)
	}
	if _, err := ParseMode(cfg.Check.Mode); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Check.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	return cfg, nil
}

// SourceRoot resolves the directory to check.
func (m *Manifest) SourceRoot() string {
	root := strings.TrimSpace(m.Config.Project.Root)
	if root == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(root))
}

// Mode resolves the project-wide suppression mode.
func (m *Manifest) Mode() diag.Mode {
	mode, _ := ParseMode(m.Config.Check.Mode)
	return mode
}

// IgnoredCodes converts the configured numeric codes.
func (m *Manifest) IgnoredCodes() []diag.Code {
	out := make([]diag.Code, 0, len(m.Config.Check.Ignore))
	for _, c := range m.Config.Check.Ignore {
		out = append(out, diag.Code(c))
	}
	return out
}

// ParseMode maps the manifest mode string to a diag.Mode. The empty string
// means default.
func ParseMode(s string) (diag.Mode, error) {
	switch strings.TrimSpace(s) {
	case "", "default":
		return diag.ModeDefault, nil
	case "strict":
		return diag.ModeStrict, nil
	case "unsafe":
		return diag.ModeUnsafe, nil
	}
	return diag.ModeDefault, fmt.Errorf("unknown check mode %q", s)
}
