package model

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxMinutes is the largest value of the minutes slider.
	MaxMinutes = 59
	// MaxSeconds is the largest value of the seconds slider.
	MaxSeconds = 59
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CountdownConfig holds the slider positions that define a countdown.
type CountdownConfig struct {
	Minutes int `validate:"gte=0,lte=59"`
	Seconds int `validate:"gte=0,lte=59"`
}

// TotalSeconds returns the countdown duration in whole seconds.
func (config CountdownConfig) TotalSeconds() int {
	return config.Minutes*60 + config.Seconds
}

// Duration returns the countdown duration.
func (config CountdownConfig) Duration() time.Duration {
	return time.Duration(config.TotalSeconds()) * time.Second
}

// Validate checks that both slider positions are within range.
func (config CountdownConfig) Validate() error {
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("invalid countdown config %d:%d: %w", config.Minutes, config.Seconds, err)
	}
	return nil
}

// FormatClock renders whole seconds as zero-padded MM:SS.
func FormatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
