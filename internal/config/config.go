// internal/config/config.go
//
// This package handles configuration and the .wackywidget directory.
// Nothing in here is organization state; the org chart lives only in memory
// for the length of a session.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the name of the directory looked up in the working directory
	Dir = ".wackywidget"

	// EnvConfigPath overrides where the config file is read from
	EnvConfigPath = "WACKYWIDGET_CONFIG"

	ModeAuto = "auto"
	ModeLine = "line"
	ModeTUI  = "tui"

	defaultJournalTail = 8
)

const defaultConfigYAML = `# wackywidget configuration
version: 1

interface:
  # auto picks the TUI when stdin is a terminal, the line interpreter otherwise.
  mode: auto
  # Print a prompt before each command in line mode.
  prompt: false

logging:
  # Diagnostic log. Leave empty to disable.
  path: logs/wackywidget.log

journal:
  # Every command outcome is appended here when set. Relative to this directory.
  path: ""
  # How many recent entries the TUI activity panel shows.
  tail: 8

metrics:
  # Serve Prometheus metrics on this address, e.g. 127.0.0.1:9464. Empty disables.
  addr: ""
`

// InterfaceConfig selects how commands are read.
type InterfaceConfig struct {
	Mode   string `yaml:"mode"`
	Prompt bool   `yaml:"prompt"`
}

// LoggingConfig points at the diagnostic log file.
type LoggingConfig struct {
	Path string `yaml:"path"`
}

// JournalConfig controls the command journal.
type JournalConfig struct {
	Path string `yaml:"path"`
	Tail int    `yaml:"tail"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// FileConfig models .wackywidget/config.yaml.
type FileConfig struct {
	Version   int             `yaml:"version"`
	Interface InterfaceConfig `yaml:"interface"`
	Logging   LoggingConfig   `yaml:"logging"`
	Journal   JournalConfig   `yaml:"journal"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// Config holds the runtime configuration.
type Config struct {
	// WorkDir is the directory the binary was started from
	WorkDir string

	// Path is the config file that was (or would have been) read
	Path string

	File FileConfig
}

// DefaultPath returns where the config file lives for a working directory,
// honouring WACKYWIDGET_CONFIG.
func DefaultPath(workDir string) string {
	if env := strings.TrimSpace(os.Getenv(EnvConfigPath)); env != "" {
		return resolvePath(workDir, env)
	}
	return filepath.Join(workDir, Dir, "config.yaml")
}

// InitDir creates the .wackywidget directory and writes a commented default
// config if none exists. It returns the config path.
func InitDir(workDir string) (string, error) {
	dir := filepath.Join(workDir, Dir)
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return "", fmt.Errorf("config: ensure %s: %w", dir, err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := ensureConfigFile(path); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}

// Load reads the config at path. A missing file yields defaults. Relative
// paths inside the file resolve against the file's directory.
func Load(workDir, path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath(workDir)
	}
	cfg := &Config{
		WorkDir: workDir,
		Path:    path,
		File:    defaultFileConfig(),
	}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Mode returns the configured interface mode.
func (c *Config) Mode() string {
	return c.File.Interface.Mode
}

// SetMode overrides the interface mode, e.g. from a command-line flag.
func (c *Config) SetMode(mode string) error {
	mode = normalizeMode(mode)
	if err := validateMode(mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.File.Interface.Mode = mode
	return nil
}

// Prompt reports whether the line interpreter prints prompts.
func (c *Config) Prompt() bool {
	return c.File.Interface.Prompt
}

// LogPath returns the diagnostic log path, or "" when logging is disabled.
func (c *Config) LogPath() string {
	return c.File.Logging.Path
}

// JournalPath returns the journal file path, or "" to keep it in memory only.
func (c *Config) JournalPath() string {
	return c.File.Journal.Path
}

// JournalTail is the number of journal entries shown in the TUI.
func (c *Config) JournalTail() int {
	return c.File.Journal.Tail
}

// MetricsAddr returns the metrics listen address, or "" when disabled.
func (c *Config) MetricsAddr() string {
	return c.File.Metrics.Addr
}

// SetMetricsAddr overrides the metrics address.
func (c *Config) SetMetricsAddr(addr string) {
	c.File.Metrics.Addr = strings.TrimSpace(addr)
}

func (c *Config) load() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", c.Path, err)
	}

	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", c.Path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(filepath.Dir(c.Path))
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.File = parsed
	return nil
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version:   1,
		Interface: InterfaceConfig{Mode: ModeAuto},
		Journal:   JournalConfig{Tail: defaultJournalTail},
	}
}

func (fc *FileConfig) applyDefaults() {
	if fc.Version == 0 {
		fc.Version = 1
	}
	if fc.Journal.Tail == 0 {
		fc.Journal.Tail = defaultJournalTail
	}
}

func (fc *FileConfig) normalize(base string) {
	fc.Interface.Mode = normalizeMode(fc.Interface.Mode)
	fc.Logging.Path = resolvePath(base, fc.Logging.Path)
	fc.Journal.Path = resolvePath(base, fc.Journal.Path)
	fc.Metrics.Addr = strings.TrimSpace(fc.Metrics.Addr)
}

func (fc *FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if err := validateMode(fc.Interface.Mode); err != nil {
		return err
	}
	if fc.Journal.Tail < 0 {
		return fmt.Errorf("journal.tail must be >= 0")
	}
	return nil
}

func normalizeMode(value string) string {
	mode := strings.ToLower(strings.TrimSpace(value))
	if mode == "" {
		return ModeAuto
	}
	return mode
}

func validateMode(mode string) error {
	switch mode {
	case ModeAuto, ModeLine, ModeTUI:
		return nil
	default:
		return fmt.Errorf("interface.mode must be 'auto', 'line' or 'tui'")
	}
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0644)
}
