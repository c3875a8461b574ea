package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/storage"
	"annoyingtimer/internal/ui/preferences"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := newRootCommand()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestHelpListsFlags(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	for _, flag := range []string{"--verbose", "--alarm", "--tick", "--no-tray", "--config", "--minutes", "--seconds"} {
		assert.Contains(t, out, flag)
	}
	assert.Contains(t, out, "tui")
}

func TestRejectsBadOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "settings.yaml")

	_, err := execute(t, "tui", "--config", configPath, "--alarm", "kazoo")
	require.ErrorIs(t, err, alarm.ErrUnknownClip)

	_, err = execute(t, "tui", "--config", configPath, "--seconds", "60")
	require.Error(t, err)

	_, err = execute(t, "tui", "--config", configPath, "--tick", "1ns")
	require.ErrorIs(t, err, errInvalidFlag)
}

func TestApplyOverridesTickRange(t *testing.T) {
	defaults := preferences.DefaultSettings()

	for _, tick := range []time.Duration{time.Nanosecond, 49 * time.Millisecond, 2 * time.Second, -time.Second} {
		_, err := applyOverrides(&options{tick: tick}, defaults)
		assert.ErrorIs(t, err, errInvalidFlag, "tick %s", tick)
	}

	effective, err := applyOverrides(&options{tick: 100 * time.Millisecond}, defaults)
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, effective.TickInterval)

	effective, err = applyOverrides(&options{}, defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, effective)
}

func TestOverridesAreNotPersisted(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "settings.yaml")
	saved := preferences.DefaultSettings()
	saved.Alarm = alarm.Rooster
	require.NoError(t, storage.SaveSettings(configPath, saved))

	loaded, err := storage.LoadSettings(configPath)
	require.NoError(t, err)
	effective, err := applyOverrides(&options{alarmName: "submarine", tick: 500 * time.Millisecond}, loaded)
	require.NoError(t, err)
	assert.Equal(t, alarm.Submarine, effective.Alarm)
	assert.Equal(t, alarm.Rooster, loaded.Alarm)

	sess := &session{settingsPath: configPath, settings: loaded}
	sess.settings.FlashOnAlarm = false
	sess.save()

	reloaded, err := storage.LoadSettings(configPath)
	require.NoError(t, err)
	assert.Equal(t, alarm.Rooster, reloaded.Alarm)
	assert.Equal(t, saved.TickInterval, reloaded.TickInterval)
	assert.False(t, reloaded.FlashOnAlarm)
}

func TestVolumeControlFeedsFactory(t *testing.T) {
	control := &volumeControl{value: 0.5}
	control.set(0.25)
	assert.Equal(t, 0.25, control.value)
	assert.NotNil(t, control.factory())
}
