package preferences

import (
	"time"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/core/countdown"
)

// Tick intervals outside this range are rejected wherever they come from.
const (
	MinTickInterval = 50 * time.Millisecond
	MaxTickInterval = time.Second
)

// Settings defines editable user preferences.
type Settings struct {
	Alarm        alarm.Clip
	Volume       float64
	TickInterval time.Duration
	FlashOnAlarm bool
}

// DefaultSettings returns default settings for AnnoyingTimer.
func DefaultSettings() Settings {
	return Settings{
		Alarm:        alarm.DefaultClip,
		Volume:       0.8,
		TickInterval: countdown.DefaultTickInterval,
		FlashOnAlarm: true,
	}
}

// CountdownConfig converts settings to controller options.
func (settings Settings) CountdownConfig() countdown.Config {
	return countdown.Config{
		TickInterval: settings.TickInterval,
	}
}

// ValidTickInterval reports whether interval lies within the accepted range.
func ValidTickInterval(interval time.Duration) bool {
	return interval >= MinTickInterval && interval <= MaxTickInterval
}
