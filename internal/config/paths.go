package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppName names the config directory and the environment prefix.
const AppName = "tilekeys"

// GetConfigDir returns $XDG_CONFIG_HOME/tilekeys, or ~/.config/tilekeys.
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// ExpandPath replaces a leading "~/" with the home directory. Any other
// value, including a full command line starting with "~/", keeps the rest
// unchanged.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return home + p[1:]
}
