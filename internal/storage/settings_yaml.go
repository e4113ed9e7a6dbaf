package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"intervaltimer/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	TotalMinutes        int    `yaml:"total_minutes"`
	IntervalSeconds     int    `yaml:"interval_seconds"`
	Repeats             int    `yaml:"repeats"`
	GraceMillis         int    `yaml:"grace_millis"`
	NotificationTitle   string `yaml:"notification_title"`
	NotificationMessage string `yaml:"notification_message"`
	LogLevel            string `yaml:"log_level"`
	MetricsAddr         string `yaml:"metrics_addr"`
}

// LoadSettings reads the settings file from the user config directory.
// If the file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads settings from path. Fields that are missing or out of
// range keep their defaults.
func LoadSettingsFile(path string) (preferences.Settings, error) {
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

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// ResolveConfigPath returns the settings file location for appName.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.TotalMinutes > 0 {
		settings.TotalMinutes = fileData.TotalMinutes
	}
	if fileData.IntervalSeconds > 0 {
		settings.IntervalSeconds = fileData.IntervalSeconds
	}
	if fileData.Repeats > 0 {
		settings.Repeats = fileData.Repeats
	}
	if fileData.GraceMillis > 0 {
		settings.GraceDelay = time.Duration(fileData.GraceMillis) * time.Millisecond
	}
	if fileData.NotificationTitle != "" {
		settings.NotificationTitle = fileData.NotificationTitle
	}
	if fileData.NotificationMessage != "" {
		settings.NotificationMessage = fileData.NotificationMessage
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
	settings.MetricsAddr = fileData.MetricsAddr
}
