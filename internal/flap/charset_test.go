package flap

import "testing"

func TestDefaultCharsetOrder(t *testing.T) {
	c := DefaultCharset()
	if c.Size() != 41 {
		t.Fatalf("Size() = %d, want 41", c.Size())
	}
	want := map[rune]int{' ': 0, 'A': 1, 'Z': 26, '0': 27, '9': 36, ':': 37, '-': 38, '.': 39, '/': 40}
	for r, idx := range want {
		if got := c.IndexOf(r); got != idx {
			t.Errorf("IndexOf(%q) = %d, want %d", r, got, idx)
		}
	}
	if c.IndexOf('?') != -1 {
		t.Error("IndexOf of non-member should be -1")
	}
}

func TestAtWraps(t *testing.T) {
	c := DefaultCharset()
	if c.At(41) != ' ' {
		t.Errorf("At(41) = %q, want space", c.At(41))
	}
	if c.At(-1) != '/' {
		t.Errorf("At(-1) = %q, want /", c.At(-1))
	}
}

func TestNormalize(t *testing.T) {
	c := DefaultCharset()
	cases := map[rune]rune{
		'a': 'A',
		'Z': 'Z',
		'7': '7',
		'?': ' ',
		'ü': ' ',
		' ': ' ',
		'/': '/',
	}
	for in, want := range cases {
		if got := c.Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeLinePadding(t *testing.T) {
	c := DefaultCharset()
	got := string(func() []rune { n := c.NormalizeLine("hi"); return n[:] }())
	if got != "HI              " {
		t.Fatalf("NormalizeLine(%q) = %q", "hi", got)
	}
}

func TestNormalizeLineTruncation(t *testing.T) {
	c := DefaultCharset()
	n := c.NormalizeLine("THIS IS WAY TOO LONG")
	if got := string(n[:]); got != "THIS IS WAY TOO " {
		t.Fatalf("truncation gave %q", got)
	}
}
