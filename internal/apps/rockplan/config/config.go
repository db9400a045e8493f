// Package appconfig resolves rockplan's per-user paths.
package appconfig

import (
	"os"
	"path/filepath"
)

func ConfigBasePath() string {
	homedir, err := os.UserHomeDir()
	if err != nil {
		// CI containers occasionally run without a resolvable home.
		return filepath.Join(os.TempDir(), "rockplan")
	}
	return filepath.Join(homedir, ".config", "rockplan")
}

func StateDBFile() string {
	return filepath.Join(ConfigBasePath(), "state.db")
}
