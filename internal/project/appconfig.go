// Package project handles application-wide persistence: the per-user
// config file, full-data backup/restore, and the tabular (.xlsx)
// project file format.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rafiqul27/RebarOpt/internal/model"
)

// configFileExists reports whether os.Stat succeeds on path,
// used so LoadAppConfig can branch on existence up front rather than
// inspecting the error returned by a failed read.
func configFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DefaultConfigDir returns the default directory for application
// configuration: ~/.rebaropt/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".rebaropt")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists config to path as JSON, creating parent
// directories as needed.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSONFile(path, config)
}

// LoadAppConfig reads an AppConfig from path. If the file does not
// exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	if !configFileExists(path) {
		return model.DefaultAppConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.AppConfig{}, err
	}
	var config model.AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

// RememberProject prepends path to config's recent-projects list,
// deduplicating and capping it at maxRecentProjects entries.
const maxRecentProjects = 10

func RememberProject(config model.AppConfig, path string) model.AppConfig {
	filtered := make([]string, 0, len(config.RecentProjects)+1)
	filtered = append(filtered, path)
	for _, p := range config.RecentProjects {
		if p != path {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) > maxRecentProjects {
		filtered = filtered[:maxRecentProjects]
	}
	config.RecentProjects = filtered
	return config
}
