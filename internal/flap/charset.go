package flap

import (
	"strings"
	"unicode"

	"github.com/whaeuser/splitflap/internal/model"
)

// Board geometry, re-exported for engine callers.
const (
	Rows = model.Rows
	Cols = model.Cols
)

// DefaultSymbols is the flap order of the standard 41-symbol drum: blank
// first, then letters, digits and the four punctuation flaps.
const DefaultSymbols = " ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789:-./"

// Charset is the ordered alphabet of a flap drum. The order is significant:
// flip paths travel along it cyclically, so neighbouring symbols are one
// mechanical flap apart.
type Charset struct {
	symbols []rune
	index   map[rune]int
}

// NewCharset builds a charset from an ordered string of unique symbols.
func NewCharset(symbols string) *Charset {
	runes := []rune(symbols)
	idx := make(map[rune]int, len(runes))
	for i, r := range runes {
		idx[r] = i
	}
	return &Charset{symbols: runes, index: idx}
}

// DefaultCharset returns the standard 41-symbol drum.
func DefaultCharset() *Charset {
	return NewCharset(DefaultSymbols)
}

// Size returns the number of flaps on the drum.
func (c *Charset) Size() int { return len(c.symbols) }

// IndexOf returns the drum position of r, or -1 when r is not a member.
func (c *Charset) IndexOf(r rune) int {
	if i, ok := c.index[r]; ok {
		return i
	}
	return -1
}

// At returns the symbol at drum position i, wrapping cyclically.
func (c *Charset) At(i int) rune {
	n := len(c.symbols)
	return c.symbols[((i%n)+n)%n]
}

// Normalize folds r to its displayable form: uppercase, and any symbol
// outside the drum degrades to a blank flap rather than rejecting the input.
func (c *Charset) Normalize(r rune) rune {
	r = unicode.ToUpper(r)
	if _, ok := c.index[r]; ok {
		return r
	}
	return ' '
}

// NormalizeLine folds a requested line into exactly Cols drum symbols:
// uppercased, truncated, right-padded with blanks.
func (c *Charset) NormalizeLine(s string) [Cols]rune {
	var out [Cols]rune
	runes := []rune(s)
	for i := 0; i < Cols; i++ {
		if i < len(runes) {
			out[i] = c.Normalize(runes[i])
		} else {
			out[i] = ' '
		}
	}
	return out
}

// trimLine renders a normalized line back to its right-trimmed string form.
func trimLine(runes [Cols]rune) string {
	return strings.TrimRight(string(runes[:]), " ")
}
