// Package alarm synthesizes the preset alarm clips and plays them.
package alarm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownClip indicates a clip name outside the preset list.
var ErrUnknownClip = errors.New("unknown alarm clip")

// Clip identifies one of the preset alarm sounds.
type Clip string

const (
	Foghorn   Clip = "foghorn"
	Rooster   Clip = "rooster"
	Submarine Clip = "submarine"
)

// DefaultClip is selected when nothing else is configured.
const DefaultClip = Foghorn

// Presets returns the selectable clips in menu order.
func Presets() []Clip {
	return []Clip{Foghorn, Rooster, Submarine}
}

// Title returns the display name of the clip.
func (clip Clip) Title() string {
	switch clip {
	case Foghorn:
		return "Foghorn"
	case Rooster:
		return "Rooster"
	case Submarine:
		return "Submarine"
	default:
		return string(clip)
	}
}

// Valid reports whether clip is one of the presets.
func (clip Clip) Valid() bool {
	for _, preset := range Presets() {
		if clip == preset {
			return true
		}
	}
	return false
}

// Parse resolves a clip by name, ignoring case and surrounding spaces.
func Parse(name string) (Clip, error) {
	clip := Clip(strings.ToLower(strings.TrimSpace(name)))
	if !clip.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownClip, name)
	}
	return clip, nil
}
