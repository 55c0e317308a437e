package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultAddr         = "127.0.0.1:8787"
	defaultHistoryLimit = 100
)

var ErrConfigFileExists = errors.New("config file already exists")

// File represents config.yml.
type File struct {
	Server ServerConfig `yaml:"server"`
	Pages  PagesConfig  `yaml:"pages"`
}

// ServerConfig configures the local HTTP front-end.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// PagesConfig configures the internal pages.
type PagesConfig struct {
	HistoryLimit int `yaml:"history_limit"`
}

// Defaults returns the built-in config.yml values.
func Defaults() *File {
	return &File{
		Server: ServerConfig{Addr: defaultAddr},
		Pages:  PagesConfig{HistoryLimit: defaultHistoryLimit},
	}
}

// Validate replaces empty or invalid values with their defaults.
func (f *File) Validate() {
	if f.Server.Addr == "" {
		slog.Warn("empty server address, loading default", "addr", defaultAddr)
		f.Server.Addr = defaultAddr
	}

	if f.Pages.HistoryLimit <= 0 {
		slog.Warn("invalid history limit, loading default", "limit", f.Pages.HistoryLimit)
		f.Pages.HistoryLimit = defaultHistoryLimit
	}
}

// LoadFile reads config.yml from p. A missing file yields the defaults.
func LoadFile(p string) (*File, error) {
	f := Defaults()

	content, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("config file not found, loading defaults", "path", p)
			return f, nil
		}

		return f, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(content, f); err != nil {
		return Defaults(), fmt.Errorf("unmarshalling YAML: %w", err)
	}

	f.Validate()
	slog.Debug("loaded config file", "path", p)

	return f, nil
}

// WriteFile writes f as YAML to p. An existing file is kept unless force.
func WriteFile(p string, f *File, force bool) error {
	if _, err := os.Stat(p); err == nil && !force {
		return fmt.Errorf("%q %w", p, ErrConfigFileExists)
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshalling YAML: %w", err)
	}

	if err := os.WriteFile(p, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
