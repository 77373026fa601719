package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// tone is a single enveloped note.
type tone struct {
	freq     float64
	phase    float64
	duration int
	position int
	attack   int
	wave     WaveType
	rate     beep.SampleRate
}

// NewTone creates a note of freq Hz lasting d. It fades in over a few
// milliseconds and decays linearly to silence so notes don't click.
func NewTone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:     freq,
		duration: rate.N(d),
		attack:   rate.N(5 * time.Millisecond),
		wave:     wave,
		rate:     rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(t.phase-0.5) - 1
		default:
			val = math.Sin(2 * math.Pi * t.phase)
		}

		val *= t.envelope()
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) envelope() float64 {
	if t.attack > 0 && t.position < t.attack {
		return float64(t.position) / float64(t.attack)
	}
	return 1 - float64(t.position)/float64(t.duration)
}

func (t *tone) Err() error {
	return nil
}

// note is one step of a jingle.
type note struct {
	freq float64
	dur  time.Duration
}

// jingle plays notes back to back.
func jingle(rate beep.SampleRate, wave WaveType, notes ...note) beep.Streamer {
	streamers := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		streamers = append(streamers, NewTone(n.freq, n.dur, wave, rate))
	}
	return beep.Seq(streamers...)
}
