// Package audio synthesizes the mechanical sounds of a split-flap board.
// Every flip step clicks; a settling board gets a softer final clack. All
// sounds are generated, no sample files are shipped.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	clickDuration = 15 * time.Millisecond
	clackDuration = 40 * time.Millisecond
)

// Clicker plays flap sounds through a shared mixer. When the audio device
// cannot be opened the clicker stays silent and every method is a no-op, so
// a headless viewer keeps working.
type Clicker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewClicker creates a silent clicker. Call Initialize to open the device.
func NewClicker() *Clicker {
	return &Clicker{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device and starts the mixer. Returns the
// device error; the clicker remains usable, just silent, when it fails.
func (c *Clicker) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup silences the mixer. The device itself stays open; beep has no
// speaker close.
func (c *Clicker) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	c.mixer.Clear()
	c.initialized = false
}

// SetMuted toggles sound output without touching the device.
func (c *Clicker) SetMuted(muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = muted
}

// Muted reports the mute state.
func (c *Clicker) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// Click plays one flap tick: a short noise burst with a sharp decay.
func (c *Clicker) Click() {
	c.play(NewClickGenerator(sampleRate, clickDuration, 0.18))
}

// Clack plays the heavier final-step sound of a settling flap.
func (c *Clicker) Clack() {
	c.play(NewClackGenerator(sampleRate, clackDuration))
}

func (c *Clicker) play(s beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized || c.muted {
		return
	}
	c.mixer.Add(s)
}

// ClickGenerator produces a filtered noise burst shaped like a flap hitting
// its stop. Finite: the stream ends after the configured duration, which
// lets the mixer drop it on its own.
type ClickGenerator struct {
	sr      beep.SampleRate
	gain    float64
	pos     int
	samples int
	seed    int64
	prev    float64
}

// NewClickGenerator creates a click of the given length and gain.
func NewClickGenerator(sr beep.SampleRate, duration time.Duration, gain float64) *ClickGenerator {
	return &ClickGenerator{
		sr:      sr,
		gain:    gain,
		samples: sr.N(duration),
		seed:    time.Now().UnixNano() | 1,
	}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			return i, false
		}
		t := float64(g.pos) / float64(g.sr)

		// Sharp exponential decay over the burst.
		envelope := math.Exp(-t * 400)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		// One-pole low-pass takes the hiss off the noise.
		g.prev += 0.35 * (noise - g.prev)
		sample := g.gain * envelope * g.prev

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error { return nil }

// ClackGenerator produces the final-step sound: a low sine thump under a
// quieter noise tail.
type ClackGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
	seed    int64
}

// NewClackGenerator creates a clack of the given length.
func NewClackGenerator(sr beep.SampleRate, duration time.Duration) *ClackGenerator {
	return &ClackGenerator{
		sr:      sr,
		samples: sr.N(duration),
		seed:    time.Now().UnixNano() | 1,
	}
}

func (g *ClackGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			return i, false
		}
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 120)
		thump := 0.3 * math.Sin(2*math.Pi*140*t)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		sample := envelope * (thump + 0.08*noise)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClackGenerator) Err() error { return nil }
