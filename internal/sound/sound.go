// Package sound plays short synthesized cues for gameplay moments.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"mathdefense/pkg/logger"
)

const sampleRate = beep.SampleRate(44100)

// Player turns game cues into tones. A Player whose speaker could not be
// opened stays silent; the game never waits on audio.
type Player struct {
	mu     sync.Mutex
	volume float64
	ready  bool
	play   func(beep.Streamer)
}

// New opens the speaker when enabled. Failure to open it is logged and
// leaves the player silent.
func New(enabled bool, volume float64) *Player {
	p := &Player{volume: volume, play: func(s beep.Streamer) { speaker.Play(s) }}
	if !enabled {
		return p
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		logger.Log.WithError(err).Warn("audio unavailable, continuing without sound")
		return p
	}
	p.ready = true
	return p
}

// Close stops anything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		speaker.Clear()
		p.ready = false
	}
}

// Enabled reports whether cues reach the speaker.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// Hit is a short high ping.
func (p *Player) Hit() { p.emit(HitSound) }

// Miss is a low buzz.
func (p *Player) Miss() { p.emit(MissSound) }

// Breach is a falling pair of notes.
func (p *Player) Breach() { p.emit(BreachSound) }

// GameOver is a long low tone.
func (p *Player) GameOver() { p.emit(GameOverSound) }

func (p *Player) emit(build func(beep.SampleRate) beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	s := build(sampleRate)
	if s == nil {
		return
	}
	p.play(withVolume(s, p.volume))
}

// HitSound builds the hit cue.
func HitSound(sr beep.SampleRate) beep.Streamer {
	return tone(sr, 880, 60*time.Millisecond)
}

// MissSound builds the miss cue.
func MissSound(sr beep.SampleRate) beep.Streamer {
	return tone(sr, 120, 150*time.Millisecond)
}

// BreachSound builds the breach cue.
func BreachSound(sr beep.SampleRate) beep.Streamer {
	hi := tone(sr, 440, 120*time.Millisecond)
	lo := tone(sr, 220, 200*time.Millisecond)
	if hi == nil || lo == nil {
		return nil
	}
	return beep.Seq(hi, lo)
}

// GameOverSound builds the game over cue.
func GameOverSound(sr beep.SampleRate) beep.Streamer {
	return tone(sr, 110, 800*time.Millisecond)
}

func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		logger.Log.WithError(err).WithField("freq", freq).Debug("cannot build tone")
		return nil
	}
	return beep.Take(sr.N(d), sine)
}

// withVolume scales s linearly; 0 is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
