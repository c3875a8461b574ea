package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/platform"
	"annoyingtimer/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Alarm          string   `yaml:"alarm"`
	Volume         *float64 `yaml:"volume"`
	TickIntervalMS int      `yaml:"tick_interval_ms"`
	FlashOnAlarm   *bool    `yaml:"flash_on_alarm"`
}

// SettingsPath returns the location of the preferences file for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
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

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	volume := settings.Volume
	flash := settings.FlashOnAlarm
	fileData := yamlSettings{
		Alarm:          string(settings.Alarm),
		Volume:         &volume,
		TickIntervalMS: int(settings.TickInterval / time.Millisecond),
		FlashOnAlarm:   &flash,
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
	if clip, err := alarm.Parse(fileData.Alarm); err == nil {
		settings.Alarm = clip
	}
	if fileData.Volume != nil && *fileData.Volume >= 0 && *fileData.Volume <= 1 {
		settings.Volume = *fileData.Volume
	}
	if tick := time.Duration(fileData.TickIntervalMS) * time.Millisecond; preferences.ValidTickInterval(tick) {
		settings.TickInterval = tick
	}
	if fileData.FlashOnAlarm != nil {
		settings.FlashOnAlarm = *fileData.FlashOnAlarm
	}
}
