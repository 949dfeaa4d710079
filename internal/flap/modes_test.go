package flap

import (
	"strings"
	"testing"
	"time"

	"github.com/whaeuser/splitflap/internal/model"
)

func TestModeExclusivity(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartBlink([]int{1}, ""); err != nil {
		t.Fatal(err)
	}
	if got := d.ActiveMode(); got != "blink" {
		t.Fatalf("ActiveMode = %q, want blink", got)
	}

	if err := d.StartMarquee("LAUFTEXT", true); err != nil {
		t.Fatal(err)
	}
	if got := d.ActiveMode(); got != "marquee" {
		t.Fatalf("ActiveMode = %q, want marquee", got)
	}

	// The blink timer is disarmed: line 1 follows the marquee ring, never a
	// blink blank, no matter how far time advances.
	d.advance(5 * time.Second)
	if got := d.ActiveMode(); got != "marquee" {
		t.Fatalf("marquee ended unexpectedly, ActiveMode = %q", got)
	}
}

func TestModeStartDroppedWhileAnimating(t *testing.T) {
	d, _ := newTestDisplay()
	d.SetDisplay([]string{"BESETZT"}, nil)

	if err := d.StartMarquee("LAUFTEXT", true); err != nil {
		t.Fatal(err)
	}
	if got := d.ActiveMode(); got != "" {
		t.Fatalf("mode admitted during animation: %q", got)
	}
	d.advance(10 * time.Second)
	if got := d.CurrentDisplay()[0]; got != "BESETZT" {
		t.Fatalf("display shows %q", got)
	}
}

func TestSetLineDroppedWhileModeActive(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartRainbow(3, []string{"BUNT"}, time.Second); err != nil {
		t.Fatal(err)
	}
	d.SetLine(2, "DIREKT")
	d.advance(10 * time.Second)
	if got := d.CurrentDisplay()[2]; got == "DIREKT" {
		t.Fatal("direct write admitted while a mode was active")
	}
}

func TestScrollShortTextWritesDirectly(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartScrolling(1, "KURZ", false); err != nil {
		t.Fatal(err)
	}
	if got := d.ActiveMode(); got != "" {
		t.Fatalf("short text armed a mode: %q", got)
	}
	d.advance(10 * time.Second)
	if got := d.CurrentDisplay()[1]; got != "KURZ" {
		t.Fatalf("line 1 = %q", got)
	}
	if d.livePending() != 0 {
		t.Error("timers remain armed after a direct write")
	}
}

func TestScrollLongTextTerminates(t *testing.T) {
	d, _ := newTestDisplay()
	text := "DIESE ZEILE IST VIEL ZU LANG"
	if err := d.StartScrolling(0, text, false); err != nil {
		t.Fatal(err)
	}
	if got := d.ActiveMode(); got != "scroll" {
		t.Fatalf("ActiveMode = %q", got)
	}

	// First window shows the head of the text.
	if got := d.CurrentDisplay()[0]; got != "DIESE ZEILE IST" {
		t.Fatalf("first window = %q", got)
	}

	// One position per tick through text plus one blank line width.
	steps := len(text) + Cols
	d.advance(time.Duration(steps) * scrollSpeed)
	if got := d.ActiveMode(); got != "" {
		t.Fatalf("scroll still running after full traversal: %q", got)
	}
}

func TestScrollLoopWraps(t *testing.T) {
	d, _ := newTestDisplay()
	text := "DIESE ZEILE IST VIEL ZU LANG"
	if err := d.StartScrolling(0, text, true); err != nil {
		t.Fatal(err)
	}
	d.advance(time.Duration(len(text)+Cols) * scrollSpeed)
	if got := d.ActiveMode(); got != "scroll" {
		t.Fatalf("looping scroll stopped: %q", got)
	}
	// After exactly one wrap the head window repeats.
	if got := d.CurrentDisplay()[0]; got != "DIESE ZEILE IST" {
		t.Fatalf("window after wrap = %q", got)
	}
}

func TestScrollInvalidLine(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartScrolling(6, "X", false); err == nil {
		t.Fatal("expected error for out-of-range line")
	}
}

func TestMarqueeFillsBoard(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartMarquee("ANKUNFT", true); err != nil {
		t.Fatal(err)
	}
	if got := d.CurrentDisplay()[0]; !strings.HasPrefix(got, "ANKUNFT") {
		t.Fatalf("row 0 window = %q", got)
	}
	for i, l := range d.CurrentDisplay() {
		if strings.TrimSpace(l) == "" {
			t.Errorf("row %d is blank, the ring should cover the whole board", i)
		}
	}

	before := d.CurrentDisplay()
	d.advance(marqueeSpeed)
	if d.CurrentDisplay() == before {
		t.Fatal("the ring did not advance after one tick")
	}
}

func TestMarqueeEmptyText(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartMarquee("   ", true); err == nil {
		t.Fatal("expected error for empty marquee text")
	}
}

func TestBlinkTogglesAndRestores(t *testing.T) {
	d, _ := newTestDisplay()
	d.SetLine(2, "ACHTUNG")
	d.advance(10 * time.Second)

	if err := d.StartBlink([]int{2}, ""); err != nil {
		t.Fatal(err)
	}
	// Content is untouched until the first toggle.
	if got := d.CurrentDisplay()[2]; got != "ACHTUNG" {
		t.Fatalf("line changed before first toggle: %q", got)
	}

	d.advance(blinkInterval)
	if got := d.CurrentDisplay()[2]; got != "" {
		t.Fatalf("line not blanked after first toggle: %q", got)
	}

	d.advance(blinkInterval)
	if got := d.CurrentDisplay()[2]; got != "ACHTUNG" {
		t.Fatalf("original content not restored: %q", got)
	}
}

func TestBlinkOverrideText(t *testing.T) {
	d, _ := newTestDisplay()
	d.SetLine(1, "ALT")
	d.advance(10 * time.Second)

	if err := d.StartBlink([]int{1}, "NEU"); err != nil {
		t.Fatal(err)
	}
	d.advance(2 * blinkInterval) // blank, then visible phase
	if got := d.CurrentDisplay()[1]; got != "NEU" {
		t.Fatalf("visible phase shows %q, want override", got)
	}
}

func TestBlinkValidation(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartBlink(nil, ""); err == nil {
		t.Error("expected error for empty line list")
	}
	if err := d.StartBlink([]int{0, 7}, ""); err == nil {
		t.Error("expected error for out-of-range line")
	}
}

func TestWaveRevealsColumnByColumn(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartWave([]string{"WELLE", "WOGE"}); err != nil {
		t.Fatal(err)
	}
	// Column 0 lands immediately, the rest is still blank.
	if got := d.CurrentDisplay()[0]; got != "W" {
		t.Fatalf("after first step line 0 = %q", got)
	}

	d.advance(time.Duration(Cols-1) * waveStepDelay)
	if got := d.ActiveMode(); got != "" {
		t.Fatalf("wave still running after the last column: %q", got)
	}
	if got := d.CurrentDisplay()[0]; got != "WELLE" {
		t.Fatalf("line 0 = %q", got)
	}
	if got := d.CurrentDisplay()[1]; got != "WOGE" {
		t.Fatalf("line 1 = %q", got)
	}
}

func TestTypewriterSequence(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartTypewriter(4, "HI"); err != nil {
		t.Fatal(err)
	}

	if got := d.CurrentDisplay()[4]; got != "H-" {
		t.Fatalf("first reveal = %q", got)
	}

	d.advance(typewriterCharDelay)
	if got := d.CurrentDisplay()[4]; got != "HI-" {
		t.Fatalf("second reveal = %q", got)
	}

	// Hold elapses, the cursor drops, the mode ends.
	d.advance(typewriterCharDelay + typewriterHold)
	if got := d.CurrentDisplay()[4]; got != "HI" {
		t.Fatalf("final text = %q", got)
	}
	if got := d.ActiveMode(); got != "" {
		t.Fatalf("typewriter still active: %q", got)
	}
}

func TestRainbowCyclesTextAndColor(t *testing.T) {
	d, _ := newTestDisplay()
	texts := []string{"EINS", "ZWEI", "DREI"}
	if err := d.StartRainbow(3, texts, time.Second); err != nil {
		t.Fatal(err)
	}

	if got := d.CurrentDisplay()[3]; got != "EINS" {
		t.Fatalf("first text = %q", got)
	}
	if got := d.LineColors()[3]; got != model.ColorBlau {
		t.Fatalf("first color = %q, want %q", got, model.ColorBlau)
	}

	d.advance(time.Second)
	if got := d.CurrentDisplay()[3]; got != "ZWEI" {
		t.Fatalf("second text = %q", got)
	}
	if got := d.LineColors()[3]; got != model.ColorHellblau {
		t.Fatalf("second color = %q", got)
	}

	// Wraps past the end of the text list.
	d.advance(2 * time.Second)
	if got := d.CurrentDisplay()[3]; got != "EINS" {
		t.Fatalf("wrapped text = %q", got)
	}
	if got := d.ActiveMode(); got != "rainbow" {
		t.Fatal("rainbow should run until superseded")
	}
}

func TestRainbowValidation(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartRainbow(0, nil, time.Second); err == nil {
		t.Error("expected error for empty text list")
	}
	if err := d.StartRainbow(0, []string{"X"}, 0); err == nil {
		t.Error("expected error for non-positive interval")
	}
	if err := d.StartRainbow(-1, []string{"X"}, time.Second); err == nil {
		t.Error("expected error for out-of-range line")
	}
}

func TestCountdownStopsAtBound(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartCountdown(5, 3, 1, -1, time.Second); err != nil {
		t.Fatal(err)
	}
	if got := d.CurrentDisplay()[5]; got != "3" {
		t.Fatalf("first value = %q", got)
	}

	d.advance(time.Second)
	if got := d.CurrentDisplay()[5]; got != "2" {
		t.Fatalf("second value = %q", got)
	}

	d.advance(time.Second)
	if got := d.CurrentDisplay()[5]; got != "1" {
		t.Fatalf("final value = %q", got)
	}
	if got := d.ActiveMode(); got != "" {
		t.Fatalf("countdown still active after the bound: %q", got)
	}

	d.advance(5 * time.Second)
	if got := d.CurrentDisplay()[5]; got != "1" {
		t.Fatalf("value changed after stop: %q", got)
	}
}

func TestCountdownCountsUp(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartCountdown(0, 8, 10, 1, time.Second); err != nil {
		t.Fatal(err)
	}
	d.advance(2 * time.Second)
	if got := d.CurrentDisplay()[0]; got != "10" {
		t.Fatalf("final value = %q", got)
	}
	if got := d.ActiveMode(); got != "" {
		t.Fatal("countdown should have ended")
	}
}

func TestCountdownValidation(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartCountdown(0, 3, 1, 0, time.Second); err == nil {
		t.Error("expected error for zero step")
	}
	if err := d.StartCountdown(0, 1, 3, -1, time.Second); err == nil {
		t.Error("expected error for a step pointing away from the bound")
	}
	if err := d.StartCountdown(0, 3, 1, -1, 0); err == nil {
		t.Error("expected error for non-positive interval")
	}
}

func TestStopAllModes(t *testing.T) {
	d, _ := newTestDisplay()
	if err := d.StartMarquee("ENDLOS", true); err != nil {
		t.Fatal(err)
	}
	d.advance(time.Second)

	d.StopAllModes()
	if got := d.ActiveMode(); got != "" {
		t.Fatalf("ActiveMode = %q after stop", got)
	}

	// Once the in-flight flips land, no timers remain armed.
	d.advance(10 * time.Second)
	if n := d.livePending(); n != 0 {
		t.Fatalf("%d tasks still armed after stop", n)
	}

	frozen := d.CurrentDisplay()
	d.advance(5 * time.Second)
	if d.CurrentDisplay() != frozen {
		t.Fatal("board kept changing after stop")
	}
}
