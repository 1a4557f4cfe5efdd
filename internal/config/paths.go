// ABOUTME: Standard filesystem paths for kirby configuration
// ABOUTME: Resolves ~/.kirby/ for global and .kirby/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const dirName = ".kirby"

// GlobalDir returns the user-global config directory (~/.kirby/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", dirName)
	}
	return filepath.Join(home, dirName)
}

// ProjectDir returns the project-local config directory (.kirby/ under projectRoot).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, dirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.yaml")
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "config.yaml")
}
