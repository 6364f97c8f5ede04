package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"eyecare/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	ContinuousSeconds int   `yaml:"continuous_seconds"`
	BreakSeconds      int   `yaml:"break_seconds"`
	Notifications     *bool `yaml:"notifications,omitempty"`
}

var userConfigDir = os.UserConfigDir

// DefaultPath returns the settings file location under the user config dir.
// Without one (no HOME, no XDG_CONFIG_HOME) the file lives in the working
// directory.
func DefaultPath(appName string) string {
	configDir, err := userConfigDir()
	if err != nil || configDir == "" {
		return settingsFileName
	}
	return filepath.Join(configDir, appName, settingsFileName)
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}
	if fileData.ContinuousSeconds < 0 || fileData.BreakSeconds < 0 {
		return settings, fmt.Errorf("parse settings yaml: durations must not be negative")
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	notifications := settings.Notifications
	fileData := yamlSettings{
		ContinuousSeconds: int(settings.Continuous / time.Second),
		BreakSeconds:      int(settings.Break / time.Second),
		Notifications:     &notifications,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.ContinuousSeconds > 0 {
		settings.Continuous = time.Duration(fileData.ContinuousSeconds) * time.Second
	}
	if fileData.BreakSeconds > 0 {
		settings.Break = time.Duration(fileData.BreakSeconds) * time.Second
	}
	if fileData.Notifications != nil {
		settings.Notifications = *fileData.Notifications
	}
}
