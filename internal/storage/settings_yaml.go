package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"focustimer/internal/core/model"
	"focustimer/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusMinutes      int   `yaml:"focus_minutes"`
	ShortBreakMinutes int   `yaml:"short_break_minutes"`
	LongBreakMinutes  int   `yaml:"long_break_minutes"`
	Muted             *bool `yaml:"muted"`
}

// LoadSettings reads startup preferences from YAML. An empty path resolves
// to the user config directory. If the file does not exist, default
// settings are returned. The file is never written back.
func LoadSettings(appName, path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	if path == "" {
		resolved, err := resolveConfigPath(appName)
		if err != nil {
			return settings, err
		}
		path = resolved
	}

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

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	settings.Durations.Set(model.ModeFocus, fileData.FocusMinutes)
	settings.Durations.Set(model.ModeShortBreak, fileData.ShortBreakMinutes)
	settings.Durations.Set(model.ModeLongBreak, fileData.LongBreakMinutes)
	if fileData.Muted != nil {
		settings.Muted = *fileData.Muted
	}
}
