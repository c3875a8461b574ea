package preferences

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annoyingtimer/internal/alarm"
)

func TestWindowSave(t *testing.T) {
	app := test.NewTempApp(t)

	var saved []Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = append(saved, settings)
	})
	assert.Equal(t, "Foghorn", prefs.alarms.Selected)
	assert.Equal(t, "80%", prefs.volumeLabel.Text)

	prefs.alarms.SetSelected("Submarine")
	prefs.volume.SetValue(0.25)
	prefs.flash.SetChecked(false)
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.Equal(t, alarm.Submarine, saved[0].Alarm)
	assert.InDelta(t, 0.25, saved[0].Volume, 0.001)
	assert.False(t, saved[0].FlashOnAlarm)
	assert.Equal(t, DefaultSettings().TickInterval, saved[0].TickInterval)
}

func TestWindowUpdateSettings(t *testing.T) {
	app := test.NewTempApp(t)
	prefs := New(app, DefaultSettings(), nil)

	updated := DefaultSettings()
	updated.Alarm = alarm.Rooster
	updated.FlashOnAlarm = false
	prefs.UpdateSettings(updated)

	assert.Equal(t, "Rooster", prefs.alarms.Selected)
	assert.False(t, prefs.flash.Checked)

	prefs.handleSave()
}

func TestClipByTitle(t *testing.T) {
	clip, ok := clipByTitle("Rooster")
	require.True(t, ok)
	assert.Equal(t, alarm.Rooster, clip)

	_, ok = clipByTitle("Kazoo")
	assert.False(t, ok)
}

func TestDefaultSettingsCountdownConfig(t *testing.T) {
	settings := DefaultSettings()
	assert.Equal(t, settings.TickInterval, settings.CountdownConfig().TickInterval)
}

func TestValidTickInterval(t *testing.T) {
	assert.True(t, ValidTickInterval(DefaultSettings().TickInterval))
	assert.True(t, ValidTickInterval(MinTickInterval))
	assert.True(t, ValidTickInterval(MaxTickInterval))
	assert.False(t, ValidTickInterval(time.Nanosecond))
	assert.False(t, ValidTickInterval(2*time.Second))
}
