package alarm

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

// ErrReleased indicates an operation on a handle that was already released.
var ErrReleased = errors.New("alarm player released")

// SampleRate is the rate clips are rendered and mixed at.
const SampleRate = beep.SampleRate(44100)

// Player is a playback handle bound to a single clip.
type Player interface {
	Play() error
	Stop() error
	Release() error
}

// Factory creates a playback handle for a clip.
type Factory func(Clip) (Player, error)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// ProbeSpeaker initialises the shared audio output and reports whether it is usable.
func ProbeSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(time.Second/10))
	})
	return speakerErr
}

// SpeakerPlayer plays a pre-rendered clip through the shared speaker mixer.
type SpeakerPlayer struct {
	mu       sync.Mutex
	clip     Clip
	volume   float64
	buffer   *beep.Buffer
	ctrl     *beep.Ctrl
	released bool
}

// NewSpeakerFactory returns a Factory producing speaker-backed handles.
// Volume is linear in [0,1]; zero mutes.
func NewSpeakerFactory(volume float64) Factory {
	return func(clip Clip) (Player, error) {
		return NewSpeakerPlayer(clip, volume)
	}
}

// NewSpeakerPlayer renders clip into memory and binds it to the speaker.
func NewSpeakerPlayer(clip Clip, volume float64) (*SpeakerPlayer, error) {
	if err := ProbeSpeaker(); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	buffer, err := Render(clip)
	if err != nil {
		return nil, err
	}
	return &SpeakerPlayer{
		clip:   clip,
		volume: volume,
		buffer: buffer,
	}, nil
}

// Render synthesizes clip into an in-memory buffer.
func Render(clip Clip) (*beep.Buffer, error) {
	streamer, err := Stream(clip, SampleRate)
	if err != nil {
		return nil, err
	}
	buffer := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	buffer.Append(streamer)
	return buffer, nil
}

// Clip returns the clip this handle is bound to.
func (player *SpeakerPlayer) Clip() Clip {
	return player.clip
}

// Play starts the clip from the beginning, cutting off a previous run.
func (player *SpeakerPlayer) Play() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.released {
		return ErrReleased
	}
	player.silenceLocked()

	ctrl := &beep.Ctrl{Streamer: volumeEffect(player.buffer.Streamer(0, player.buffer.Len()), player.volume)}
	player.ctrl = ctrl
	speaker.Play(ctrl)
	return nil
}

// Stop silences the clip if it is playing.
func (player *SpeakerPlayer) Stop() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.released {
		return ErrReleased
	}
	player.silenceLocked()
	return nil
}

// Release stops playback and drops the rendered clip.
func (player *SpeakerPlayer) Release() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.released {
		return ErrReleased
	}
	player.silenceLocked()
	player.buffer = nil
	player.released = true
	return nil
}

func (player *SpeakerPlayer) silenceLocked() {
	if player.ctrl == nil {
		return
	}
	speaker.Lock()
	player.ctrl.Streamer = nil
	speaker.Unlock()
	player.ctrl = nil
}

func volumeEffect(streamer beep.Streamer, volume float64) *effects.Volume {
	if volume > 1 {
		volume = 1
	}
	effect := &effects.Volume{Streamer: streamer, Base: 2}
	if volume <= 0 {
		effect.Silent = true
		return effect
	}
	effect.Volume = math.Log2(volume)
	return effect
}

// BellPlayer rings the terminal bell instead of playing audio.
type BellPlayer struct {
	mu       sync.Mutex
	out      io.Writer
	released bool
}

// NewBellFactory returns a Factory producing bell handles writing to out.
func NewBellFactory(out io.Writer) Factory {
	return func(clip Clip) (Player, error) {
		if !clip.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownClip, string(clip))
		}
		return &BellPlayer{out: out}, nil
	}
}

func (player *BellPlayer) Play() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.released {
		return ErrReleased
	}
	if _, err := io.WriteString(player.out, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

func (player *BellPlayer) Stop() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.released {
		return ErrReleased
	}
	return nil
}

func (player *BellPlayer) Release() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.released {
		return ErrReleased
	}
	player.released = true
	return nil
}
