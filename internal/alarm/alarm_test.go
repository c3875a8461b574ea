package alarm

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	clip, err := Parse("  Rooster ")
	require.NoError(t, err)
	assert.Equal(t, Rooster, clip)

	_, err = Parse("kazoo")
	require.ErrorIs(t, err, ErrUnknownClip)
}

func TestPresetsHaveTitles(t *testing.T) {
	titles := make([]string, 0, len(Presets()))
	for _, clip := range Presets() {
		assert.True(t, clip.Valid())
		titles = append(titles, clip.Title())
	}
	assert.Equal(t, []string{"Foghorn", "Rooster", "Submarine"}, titles)
	assert.False(t, Clip("kazoo").Valid())
}

func TestStreamIsFiniteAndBounded(t *testing.T) {
	const rate = beep.SampleRate(8000)
	for _, clip := range Presets() {
		streamer, err := Stream(clip, rate)
		require.NoError(t, err)

		total := 0
		peak := 0.0
		samples := make([][2]float64, 512)
		for {
			n, ok := streamer.Stream(samples)
			for _, sample := range samples[:n] {
				assert.Equal(t, sample[0], sample[1])
				peak = math.Max(peak, math.Abs(sample[0]))
			}
			total += n
			if !ok {
				break
			}
			require.Less(t, total, rate.N(10*time.Second), "clip %s does not terminate", clip)
		}

		assert.Greater(t, total, rate.N(time.Second), "clip %s too short", clip)
		assert.LessOrEqual(t, peak, 1.0)
		assert.Greater(t, peak, 0.1, "clip %s is silent", clip)
	}
}

func TestStreamUnknownClip(t *testing.T) {
	_, err := Stream(Clip("kazoo"), SampleRate)
	require.ErrorIs(t, err, ErrUnknownClip)
}

func TestRenderBuffersWholeClip(t *testing.T) {
	buffer, err := Render(Submarine)
	require.NoError(t, err)
	// three pings of 900ms separated by two 500ms gaps
	want := 3*SampleRate.N(900*time.Millisecond) + 2*SampleRate.N(500*time.Millisecond)
	assert.Equal(t, want, buffer.Len())
}

func TestVolumeEffect(t *testing.T) {
	muted := volumeEffect(beep.Silence(1), 0)
	assert.True(t, muted.Silent)

	full := volumeEffect(beep.Silence(1), 1.5)
	assert.False(t, full.Silent)
	assert.Equal(t, 0.0, full.Volume)

	half := volumeEffect(beep.Silence(1), 0.5)
	assert.Equal(t, -1.0, half.Volume)
}

func TestBellPlayer(t *testing.T) {
	var out bytes.Buffer
	player, err := NewBellFactory(&out)(Foghorn)
	require.NoError(t, err)

	require.NoError(t, player.Play())
	require.NoError(t, player.Stop())
	assert.Equal(t, "\a", out.String())

	require.NoError(t, player.Release())
	require.ErrorIs(t, player.Play(), ErrReleased)
	require.ErrorIs(t, player.Release(), ErrReleased)

	_, err = NewBellFactory(&out)(Clip("kazoo"))
	require.ErrorIs(t, err, ErrUnknownClip)
}
