// Package config loads the .bitbench.yml configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileNames are searched in order by Load.
var FileNames = []string{".bitbench.yml", ".bitbench.yaml"}

const maxFileSize = 1 << 20

// History configures the result history store.
type History struct {
	Path     string `yaml:"path,omitempty" validate:"required_without_all=InMemory Disabled"`
	InMemory bool   `yaml:"in_memory,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// Config represents the .bitbench.yml configuration file.
type Config struct {
	// Workers bounds concurrent plugin computations. Zero means NumCPU.
	Workers int `yaml:"workers,omitempty" validate:"gte=0,lte=1024"`

	// ProgressInterval is the minimum spacing between progress updates.
	ProgressInterval time.Duration `yaml:"progress_interval,omitempty" validate:"gte=0"`

	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`

	History History `yaml:"history,omitempty"`
}

var validate = validator.New()

// Default returns a config with defaults applied.
func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills in zero values.
func (c *Config) ApplyDefaults() {
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ProgressInterval == 0 {
		c.ProgressInterval = 100 * time.Millisecond
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.History.Path == "" && !c.History.InMemory && !c.History.Disabled {
		c.History.Path = defaultHistoryPath()
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Level maps LogLevel to a slog level.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Load reads a config file. path may be a file or a directory searched for
// FileNames. A missing file is not an error: defaults are returned.
func Load(path string) (Config, error) {
	file, err := locate(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", file, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", file, err)
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func locate(path string) (string, error) {
	if path == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	if !info.IsDir() {
		if info.Size() > maxFileSize {
			return "", fmt.Errorf("config file too large: %s (%d bytes, max 1 MB)", path, info.Size())
		}
		return path, nil
	}
	for _, name := range FileNames {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return locate(candidate)
		}
	}
	return "", nil
}

func defaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "bitbench", "history")
}
