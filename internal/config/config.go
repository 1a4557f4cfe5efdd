// ABOUTME: Settings loading with global + project config merge
// ABOUTME: YAML configuration via gopkg.in/yaml.v3; unknown fields are rejected

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the merged configuration.
type Settings struct {
	LogLevel    string              `yaml:"log_level,omitempty"`
	LogFile     string              `yaml:"log_file,omitempty"`
	Keybindings map[string][]string `yaml:"keybindings,omitempty"`
}

// Load reads and merges global and project-local settings.
// Project settings override global settings. Missing files are not errors.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	return merged, nil
}

// LoadPath reads settings from one explicit file, skipping the global and
// project lookup. The file must exist.
func LoadPath(path string) (*Settings, error) {
	s, err := loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	ResolveEnvVars(s)
	return s, nil
}

// loadFile reads Settings from a YAML file. It returns zero Settings along
// with the error when the file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}

	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings. Non-empty project
// values win; keybindings merge per action.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}
	if project.LogFile != "" {
		result.LogFile = project.LogFile
	}

	if len(project.Keybindings) > 0 {
		kb := make(map[string][]string, len(global.Keybindings)+len(project.Keybindings))
		for action, keys := range global.Keybindings {
			kb[action] = keys
		}
		for action, keys := range project.Keybindings {
			kb[action] = keys
		}
		result.Keybindings = kb
	}

	return &result
}
