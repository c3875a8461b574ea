package alarm

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
)

const headroom = 0.8

// Stream returns a finite streamer rendering clip at the given sample rate.
func Stream(clip Clip, rate beep.SampleRate) (beep.Streamer, error) {
	switch clip {
	case Foghorn:
		return foghorn(rate), nil
	case Rooster:
		return rooster(rate), nil
	case Submarine:
		return submarine(rate), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownClip, string(clip))
	}
}

// foghorn is two long low blasts.
func foghorn(rate beep.SampleRate) beep.Streamer {
	blast := func() beep.Streamer {
		return &voice{
			rate:      rate,
			length:    rate.N(1400 * time.Millisecond),
			freq:      constant(98),
			amp:       attackRelease(0.12, 0.2),
			harmonics: []float64{0.6, 0.3, 0.1},
		}
	}
	return beep.Seq(blast(), beep.Silence(rate.N(350*time.Millisecond)), blast())
}

// rooster is four chirps with a long final glide.
func rooster(rate beep.SampleRate) beep.Streamer {
	type chirp struct {
		duration   time.Duration
		start, end float64
	}
	chirps := []chirp{
		{duration: 180 * time.Millisecond, start: 620, end: 900},
		{duration: 180 * time.Millisecond, start: 700, end: 980},
		{duration: 220 * time.Millisecond, start: 760, end: 1150},
		{duration: 700 * time.Millisecond, start: 1150, end: 640},
	}

	parts := make([]beep.Streamer, 0, len(chirps)*2)
	for index, c := range chirps {
		if index > 0 {
			parts = append(parts, beep.Silence(rate.N(60*time.Millisecond)))
		}
		parts = append(parts, &voice{
			rate:      rate,
			length:    rate.N(c.duration),
			freq:      sweep(c.start, c.end),
			amp:       attackRelease(0.1, 0.25),
			harmonics: []float64{0.7, 0.2, 0.1},
		})
	}
	return beep.Seq(parts...)
}

// submarine is three decaying sonar pings.
func submarine(rate beep.SampleRate) beep.Streamer {
	const pings = 3
	parts := make([]beep.Streamer, 0, pings*2)
	for index := 0; index < pings; index++ {
		if index > 0 {
			parts = append(parts, beep.Silence(rate.N(500*time.Millisecond)))
		}
		parts = append(parts, &voice{
			rate:      rate,
			length:    rate.N(900 * time.Millisecond),
			freq:      constant(1180),
			amp:       decay(5),
			harmonics: []float64{1},
		})
	}
	return beep.Seq(parts...)
}

// voice is an additive oscillator whose frequency and amplitude follow
// functions of normalised progress in [0,1).
type voice struct {
	rate      beep.SampleRate
	length    int
	pos       int
	phase     float64
	freq      func(progress float64) float64
	amp       func(progress float64) float64
	harmonics []float64
}

func (v *voice) Stream(samples [][2]float64) (int, bool) {
	if v.pos >= v.length {
		return 0, false
	}
	written := 0
	for index := range samples {
		if v.pos >= v.length {
			break
		}
		progress := float64(v.pos) / float64(v.length)
		value := 0.0
		for k, weight := range v.harmonics {
			value += weight * math.Sin(float64(k+1)*v.phase)
		}
		value *= headroom * v.amp(progress)
		samples[index][0] = value
		samples[index][1] = value

		v.phase += 2 * math.Pi * v.freq(progress) / float64(v.rate)
		if v.phase > 2*math.Pi {
			v.phase -= 2 * math.Pi
		}
		v.pos++
		written++
	}
	return written, true
}

func (v *voice) Err() error {
	return nil
}

func constant(hz float64) func(float64) float64 {
	return func(float64) float64 { return hz }
}

func sweep(from, to float64) func(float64) float64 {
	return func(progress float64) float64 {
		return from + (to-from)*progress
	}
}

func attackRelease(attack, release float64) func(float64) float64 {
	return func(progress float64) float64 {
		switch {
		case progress < attack:
			return progress / attack
		case progress > 1-release:
			return (1 - progress) / release
		default:
			return 1
		}
	}
}

func decay(rate float64) func(float64) float64 {
	return func(progress float64) float64 {
		return math.Exp(-rate * progress)
	}
}
