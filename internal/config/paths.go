package config

import (
	"fmt"
	"os"

	gap "github.com/muesli/go-app-paths"
)

// ConfigPath returns the per-OS config directory for the application.
//
// Linux: $XDG_CONFIG_HOME/neobrowser, macOS: ~/Library/Preferences/neobrowser,
// Windows: %APPDATA%\neobrowser.
func ConfigPath() (string, error) {
	scope := gap.NewScope(gap.User, appName)
	configDir, err := scope.ConfigPath("")
	if err != nil {
		return "", fmt.Errorf("getting config path: %w", err)
	}

	return configDir, nil
}

// HomePath resolves the application home: the flag value, then the
// environment variable, then the per-OS config directory.
func HomePath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	if p, ok := os.LookupEnv(App.Env.Home); ok && p != "" {
		return p, nil
	}

	return ConfigPath()
}
