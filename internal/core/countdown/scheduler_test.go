package countdown

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/core/model"
)

func TestTickerSchedulerStops(t *testing.T) {
	var ticks atomic.Int32
	stop := NewTickerScheduler().Every(5*time.Millisecond, func(time.Time) {
		ticks.Add(1)
	})

	require.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)
	stop()
	stop()

	time.Sleep(20 * time.Millisecond)
	settled := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, ticks.Load())
}

func TestControllerWithRealScheduler(t *testing.T) {
	player := &fakePlayer{clip: alarm.Rooster}
	controller, err := New(model.CountdownConfig{Seconds: 1}, alarm.Rooster, func(alarm.Clip) (alarm.Player, error) {
		return player, nil
	}, Config{TickInterval: 10 * time.Millisecond})
	require.NoError(t, err)
	defer controller.Close()

	events := controller.Subscribe(16)
	require.NoError(t, controller.Start())

	deadline := time.After(3 * time.Second)
	for {
		select {
		case event := <-events:
			if event.View.State == StateCompleted {
				assert.True(t, event.View.Ringing)
				return
			}
		case <-deadline:
			t.Fatal("countdown did not complete")
		}
	}
}
