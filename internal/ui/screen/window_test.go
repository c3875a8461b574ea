package screen

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/core/countdown"
	"annoyingtimer/internal/core/model"
)

type recorded struct {
	minutes []int
	seconds []int
	actions int
	resets  int
	alarms  []alarm.Clip
	prefs   int
}

func newTestScreen(t *testing.T) (*Screen, *recorded) {
	t.Helper()
	test.NewTempApp(t)

	rec := &recorded{}
	screen := New(Handlers{
		OnMinutes:     func(value int) { rec.minutes = append(rec.minutes, value) },
		OnSeconds:     func(value int) { rec.seconds = append(rec.seconds, value) },
		OnAction:      func() { rec.actions++ },
		OnReset:       func() { rec.resets++ },
		OnAlarm:       func(clip alarm.Clip) { rec.alarms = append(rec.alarms, clip) },
		OnPreferences: func() { rec.prefs++ },
	}, false)
	t.Cleanup(screen.Close)

	window := test.NewWindow(screen.Content())
	t.Cleanup(window.Close)
	return screen, rec
}

func stoppedView(config model.CountdownConfig) countdown.View {
	return countdown.View{
		State:          countdown.StateStopped,
		Display:        model.FormatClock(config.TotalSeconds()),
		Config:         config,
		Action:         countdown.ActionStart,
		SlidersEnabled: true,
		Alarm:          alarm.Foghorn,
	}
}

func TestApplyStoppedView(t *testing.T) {
	screen, rec := newTestScreen(t)
	screen.Apply(stoppedView(model.CountdownConfig{Minutes: 4, Seconds: 20}))

	assert.Equal(t, "04:20", screen.timeLabel.Text)
	assert.Equal(t, 4.0, screen.minutes.Value)
	assert.Equal(t, 20.0, screen.seconds.Value)
	assert.False(t, screen.minutes.Disabled())
	assert.False(t, screen.seconds.Disabled())
	assert.False(t, screen.reset.Visible())
	assert.Equal(t, "Start", screen.action.Text)
	assert.Equal(t, "Alarm: Foghorn", screen.alarmLabel.Text)
	assert.True(t, screen.alarmItems[alarm.Foghorn].Checked)
	assert.False(t, screen.alarmItems[alarm.Rooster].Checked)

	assert.Empty(t, rec.minutes, "applying a view must not echo slider changes")
	assert.Empty(t, rec.seconds)
}

func TestApplyRunningAndCompletedViews(t *testing.T) {
	screen, _ := newTestScreen(t)
	config := model.CountdownConfig{Seconds: 30}

	screen.Apply(countdown.View{
		State:     countdown.StateStarted,
		Display:   "00:12",
		Remaining: 12,
		Config:    config,
		Action:    countdown.ActionPause,
		Alarm:     alarm.Foghorn,
	})
	assert.Equal(t, "00:12", screen.timeLabel.Text)
	assert.True(t, screen.minutes.Disabled())
	assert.True(t, screen.seconds.Disabled())
	assert.False(t, screen.reset.Visible())
	assert.Equal(t, "Pause", screen.action.Text)

	screen.Apply(countdown.View{
		State:        countdown.StateCompleted,
		Display:      "00:00",
		Config:       config,
		Action:       countdown.ActionSnooze,
		ResetVisible: true,
		Alarm:        alarm.Submarine,
		Ringing:      true,
	})
	assert.Equal(t, "00:00", screen.timeLabel.Text)
	assert.True(t, screen.reset.Visible())
	assert.Equal(t, "Snooze", screen.action.Text)
	assert.Equal(t, "Alarm: Submarine", screen.alarmLabel.Text)
	assert.True(t, screen.alarmItems[alarm.Submarine].Checked)
	assert.False(t, screen.alarmItems[alarm.Foghorn].Checked)
	assert.False(t, screen.flash.Running(), "flash disabled in preferences")
}

func TestButtonsForwardToHandlers(t *testing.T) {
	screen, rec := newTestScreen(t)
	screen.Apply(countdown.View{
		State:        countdown.StatePaused,
		Display:      "00:05",
		Action:       countdown.ActionResume,
		ResetVisible: true,
		Alarm:        alarm.Foghorn,
	})

	test.Tap(screen.action)
	test.Tap(screen.reset)
	assert.Equal(t, 1, rec.actions)
	assert.Equal(t, 1, rec.resets)
}

func TestSlidersForwardWholeValues(t *testing.T) {
	screen, rec := newTestScreen(t)
	screen.Apply(stoppedView(model.CountdownConfig{}))

	screen.minutes.OnChanged(7.2)
	screen.seconds.OnChanged(44.8)

	require.Equal(t, []int{7}, rec.minutes)
	require.Equal(t, []int{45}, rec.seconds)
}

func TestMenuSelectsAlarm(t *testing.T) {
	screen, rec := newTestScreen(t)
	menu := screen.MainMenu()
	require.Len(t, menu.Items, 1)

	items := menu.Items[0].Items
	require.Len(t, items, 5)
	items[1].Action()
	items[4].Action()

	assert.Equal(t, []alarm.Clip{alarm.Rooster}, rec.alarms)
	assert.Equal(t, 1, rec.prefs)
}

func TestFlashFollowsRinging(t *testing.T) {
	screen, _ := newTestScreen(t)
	screen.Apply(stoppedView(model.CountdownConfig{Seconds: 1}))

	screen.SetFlashOnAlarm(true)
	assert.False(t, screen.flash.Running(), "nothing rings while stopped")

	completed := countdown.View{
		State:        countdown.StateCompleted,
		Display:      "00:00",
		Config:       model.CountdownConfig{Seconds: 1},
		Action:       countdown.ActionSnooze,
		ResetVisible: true,
		Alarm:        alarm.Foghorn,
		Ringing:      true,
	}
	screen.Apply(completed)
	assert.True(t, screen.flash.Running())

	completed.Ringing = false
	screen.Apply(completed)
	assert.False(t, screen.flash.Running(), "snooze stops the flash")
	assert.Equal(t, timeColor, screen.timeLabel.Color)

	completed.Ringing = true
	screen.Apply(completed)
	require.True(t, screen.flash.Running())
	screen.SetFlashOnAlarm(false)
	assert.False(t, screen.flash.Running(), "disabling flash stops it mid-ring")
	assert.Equal(t, timeColor, screen.timeLabel.Color)
}
