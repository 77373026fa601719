// Package audio plays short cues for captures with gopxl/beep.
// Without a working audio device every call is a no-op.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/tomz197/cookierun/internal/engine"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a sound.
type Cue int

const (
	CueCatch Cue = iota
	CueHit
	CueMagnet
	CueExtraLife
	CueGameOver
	CueRecord
)

// Player mixes cues onto the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	volume      float64
}

// NewPlayer creates a player. volume is in beep's exponential scale
// (0 is unchanged, -1 halves).
func NewPlayer(volume float64) *Player {
	return &Player{mixer: &beep.Mixer{}, volume: volume}
}

// Initialize opens the speaker. The error is informational: a player that
// failed to initialize stays silent.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(&effects.Volume{Streamer: p.mixer, Base: 2, Volume: p.volume})
	p.initialized = true
	return nil
}

// Close stops all sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Play queues a cue.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(streamerFor(c))
	speaker.Unlock()
}

// OnCollision plays the cues for a collision result. The ending cue
// replaces the hit sound.
func (p *Player) OnCollision(res engine.CollisionResult) {
	for _, c := range CuesFor(res) {
		p.Play(c)
	}
}

// CuesFor lists the cues for a collision result, most important first.
func CuesFor(res engine.CollisionResult) []Cue {
	var cues []Cue
	switch {
	case res.GameOver && res.NewRecord:
		cues = append(cues, CueRecord)
	case res.GameOver:
		cues = append(cues, CueGameOver)
	case res.Hits > 0:
		cues = append(cues, CueHit)
	}
	if res.Magnets > 0 {
		cues = append(cues, CueMagnet)
	}
	if res.ExtraLives > 0 {
		cues = append(cues, CueExtraLife)
	}
	if res.Caught > 0 {
		cues = append(cues, CueCatch)
	}
	return cues
}

func streamerFor(c Cue) beep.Streamer {
	switch c {
	case CueHit:
		return NewTone(110, 180*time.Millisecond, WaveSquare, sampleRate)
	case CueMagnet:
		return jingle(sampleRate, WaveTriangle,
			note{523, 60 * time.Millisecond}, note{659, 60 * time.Millisecond}, note{784, 90 * time.Millisecond})
	case CueExtraLife:
		return jingle(sampleRate, WaveSine,
			note{660, 80 * time.Millisecond}, note{990, 120 * time.Millisecond})
	case CueGameOver:
		return jingle(sampleRate, WaveSquare,
			note{392, 150 * time.Millisecond}, note{330, 150 * time.Millisecond}, note{262, 300 * time.Millisecond})
	case CueRecord:
		return jingle(sampleRate, WaveTriangle,
			note{523, 100 * time.Millisecond}, note{659, 100 * time.Millisecond},
			note{784, 100 * time.Millisecond}, note{1047, 250 * time.Millisecond})
	default:
		return NewTone(880, 50*time.Millisecond, WaveSine, sampleRate)
	}
}

// Start initializes a player and logs instead of failing when no audio
// device is available.
func Start(volume float64, logger *log.Logger) *Player {
	p := NewPlayer(volume)
	if err := p.Initialize(); err != nil {
		logger.Warn("audio disabled", "err", err)
	}
	return p
}
