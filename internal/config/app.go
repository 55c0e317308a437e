package config

import "path/filepath"

// Flags holds the global command line flags.
type Flags struct {
	Home    string // Override for the application home
	JSON    bool   // JSON output
	Verbose int    // Verbose flag
}

// App is the default application configuration.
var App = &AppConfig{
	Name:   appName,
	Cmd:    command,
	Scheme: scheme,
	Flags:  &Flags{},
	Info: information{
		URL:     "https://github.com/mateconpizza/neo#readme",
		Title:   "neobrowser: a small browser shell",
		Desc:    "History, bookmarks, downloads and settings for a web-engine shell",
		Version: version,
	},
	Env: environment{
		Home: "NEO_HOME",
	},
	File: Defaults(),
}

// SetAppPaths sets the paths of every file the application keeps under p.
func SetAppPaths(p string) {
	App.Path.Data = p
	App.Path.ConfigFile = filepath.Join(p, configFilename)
	App.Path.Settings = filepath.Join(p, settingsFilename)
	App.Path.Database = filepath.Join(p, databaseFilename)
	App.Path.Backup = filepath.Join(p, "backup")
}
