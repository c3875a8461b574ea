package animation

import "time"

// DefaultConfig returns the blink timing used while the alarm rings.
func DefaultConfig() Config {
	return Config{
		Visible: Range{
			Min: 450 * time.Millisecond,
			Max: 550 * time.Millisecond,
		},
		Hidden: Range{
			Min: 250 * time.Millisecond,
			Max: 300 * time.Millisecond,
		},
	}
}
