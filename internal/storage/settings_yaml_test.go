package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/ui/preferences"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", settingsFileName)
	want := preferences.Settings{
		Alarm:        alarm.Rooster,
		Volume:       0.35,
		TickInterval: 100 * time.Millisecond,
		FlashOnAlarm: false,
	}
	require.NoError(t, SaveSettings(path, want))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "alarm: rooster")
	assert.Contains(t, string(raw), "tick_interval_ms: 100")

	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettingsKeepsDefaultsForBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	content := "alarm: kazoo\nvolume: 3\ntick_interval_ms: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestLoadSettingsZeroVolumeMutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("volume: 0\nflash_on_alarm: false\n"), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, settings.Volume)
	assert.False(t, settings.FlashOnAlarm)
}

func TestLoadSettingsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("alarm: [unterminated"), 0o644))

	settings, err := LoadSettings(path)
	require.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path, err := SettingsPath("AnnoyingTimer")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("AnnoyingTimer", settingsFileName), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
