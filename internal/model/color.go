package model

// Color is a per-line styling attribute. The vocabulary is fixed and passed
// through to the renderer unchanged; the engine never interprets it.
type Color string

const (
	ColorBlau      Color = "blau"
	ColorHellblau  Color = "hellblau"
	ColorRot       Color = "rot"
	ColorGruen     Color = "gruen"
	ColorHellgruen Color = "hellgruen"
	ColorOrange    Color = "orange"
	ColorViolett   Color = "violett"
	ColorRosa      Color = "rosa"
	ColorGelb      Color = "gelb"
	ColorWeiss     Color = "weiss"
)

// Colors lists the full vocabulary in its canonical order.
var Colors = []Color{
	ColorBlau, ColorHellblau, ColorRot, ColorGruen, ColorHellgruen,
	ColorOrange, ColorViolett, ColorRosa, ColorGelb, ColorWeiss,
}

var colorSet = func() map[Color]struct{} {
	m := make(map[Color]struct{}, len(Colors))
	for _, c := range Colors {
		m[c] = struct{}{}
	}
	return m
}()

// Valid reports whether c is part of the vocabulary.
func (c Color) Valid() bool {
	_, ok := colorSet[c]
	return ok
}

// ParseColor maps a requested color name onto the vocabulary. Empty or
// unrecognized names fall back to weiss.
func ParseColor(name string) Color {
	c := Color(name)
	if c.Valid() {
		return c
	}
	return ColorWeiss
}
