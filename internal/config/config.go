// Package config holds the application configuration, paths and logging
// setup.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

// version of the application.
var version = "0.1.0"

const (
	appName          string = "neobrowser"            // Default name of the application
	command          string = "neo"                   // Default name of the executable
	scheme           string = "neo"                   // Internal URL scheme
	configFilename   string = "config.yml"            // Default config filename
	settingsFilename string = "browser_settings.json" // User preferences filename
	databaseFilename string = "browser_data.db"       // History, bookmarks and downloads
	FallbackDBName   string = "neobrowser_data.db"    // Database name in the temp dir
)

type (
	AppConfig struct {
		Name   string      `json:"name"`   // Name of the application
		Cmd    string      `json:"cmd"`    // Name of the executable
		Scheme string      `json:"scheme"` // Internal URL scheme
		Info   information `json:"data"`   // Application information
		Env    environment `json:"env"`    // Application environment variables
		Path   path        `json:"path"`   // Application path
		File   *File       `json:"config"` // Values loaded from config.yml
		Flags  *Flags      `json:"-"`      // Command line flags
	}

	path struct {
		Data       string `json:"data"`     // Application home
		ConfigFile string `json:"config"`   // Path to config file
		Settings   string `json:"settings"` // Path to the settings JSON
		Database   string `json:"database"` // Path to the SQLite database
		Backup     string `json:"backup"`   // Path to store backups
	}

	information struct {
		URL     string `json:"url"`     // URL of the application
		Title   string `json:"title"`   // Title of the application
		Desc    string `json:"desc"`    // Description of the application
		Version string `json:"version"` // Version of the application
	}

	environment struct {
		Home string `json:"home"` // Environment variable for the home directory
	}
)

// Version returns the application version.
func Version() string {
	return version
}

func SetVerbosity(verbose int) {
	levels := []slog.Level{
		slog.LevelError,
		slog.LevelWarn,
		slog.LevelInfo,
		slog.LevelDebug,
	}
	level := levels[max(0, min(verbose, len(levels)-1))]

	logger := slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: true,
			Level:     level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == "source" {
					if source, ok := a.Value.Any().(*slog.Source); ok {
						dir, file := filepath.Split(source.File)
						source.File = filepath.Join(filepath.Base(filepath.Clean(dir)), file)

						return slog.Attr{Key: "source", Value: slog.AnyValue(source)}
					}
				}

				return a
			},
		}),
	)
	slog.SetDefault(logger)

	slog.Debug("logging", "level", level)
}
