package render

import (
	"unicode/utf8"

	"video-stats-updater/domain/model"
)

// Point is a canvas position in pixels.
type Point struct {
	X, Y float64
}

// MeasureFunc returns the horizontal advance of a character in pixels.
type MeasureFunc func(r rune) float64

// Layout places text on a single line, left to right, starting at origin.
// Every glyph shares the origin baseline; the pen advances by the glyph width
// plus letterSpacing after each character.
func Layout(text string, origin Point, letterSpacing float64, measure MeasureFunc) []model.GlyphPlacement {
	out := make([]model.GlyphPlacement, 0, utf8.RuneCountInString(text))
	x := origin.X
	for _, r := range text {
		out = append(out, model.GlyphPlacement{Char: string(r), X: x, Y: origin.Y})
		x += measure(r) + letterSpacing
	}
	return out
}

// Advance is the width Layout covers for text, without trailing spacing.
func Advance(text string, letterSpacing float64, measure MeasureFunc) float64 {
	var w float64
	n := 0
	for _, r := range text {
		w += measure(r)
		n++
	}
	if n > 1 {
		w += letterSpacing * float64(n-1)
	}
	return w
}
