package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestClickGeneratorStream(t *testing.T) {
	rate := beep.SampleRate(44100)
	g := NewClickGenerator(rate, 15*time.Millisecond, 0.2)

	samples := make([][2]float64, 128)
	n, ok := g.Stream(samples)
	if !ok {
		t.Error("Expected stream to return ok=true")
	}
	if n != 128 {
		t.Errorf("Expected to stream 128 samples, got %d", n)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Errorf("Sample %d channels differ", i)
		}
	}
	if g.Err() != nil {
		t.Errorf("Expected no error, got: %v", g.Err())
	}
}

func TestClickGeneratorEnds(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 10 * time.Millisecond
	g := NewClickGenerator(rate, duration, 0.2)

	total := 0
	buf := make([][2]float64, 64)
	for {
		n, ok := g.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if want := rate.N(duration); total != want {
		t.Errorf("Streamed %d samples before ending, want %d", total, want)
	}
}

func TestClickGeneratorDecays(t *testing.T) {
	rate := beep.SampleRate(44100)
	g := NewClickGenerator(rate, 15*time.Millisecond, 0.2)

	buf := make([][2]float64, rate.N(15*time.Millisecond))
	g.Stream(buf)

	// Peak of the first quarter must dominate the peak of the last quarter.
	quarter := len(buf) / 4
	head, tail := 0.0, 0.0
	for i := 0; i < quarter; i++ {
		if v := abs(buf[i][0]); v > head {
			head = v
		}
	}
	for i := len(buf) - quarter; i < len(buf); i++ {
		if v := abs(buf[i][0]); v > tail {
			tail = v
		}
	}
	if head <= tail {
		t.Errorf("Click does not decay: head peak %f, tail peak %f", head, tail)
	}
}

func TestClackGeneratorStream(t *testing.T) {
	rate := beep.SampleRate(44100)
	g := NewClackGenerator(rate, 40*time.Millisecond)

	samples := make([][2]float64, 256)
	n, ok := g.Stream(samples)
	if !ok {
		t.Error("Expected stream to return ok=true")
	}
	if n != 256 {
		t.Errorf("Expected to stream 256 samples, got %d", n)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
	}
	if g.Err() != nil {
		t.Errorf("Expected no error, got: %v", g.Err())
	}
}

func TestClickerSilentWithoutDevice(t *testing.T) {
	c := NewClicker()

	// No Initialize: everything must be a safe no-op.
	c.Click()
	c.Clack()
	c.SetMuted(true)
	if !c.Muted() {
		t.Error("Mute state not stored")
	}
	c.Cleanup()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
