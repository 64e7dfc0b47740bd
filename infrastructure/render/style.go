package render

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"video-stats-updater/domain/model"
)

// Anchor is a position expressed as fractions of the canvas width and height.
// Y is the text baseline.
type Anchor struct {
	X, Y float64
}

// MetricStyle is the per-metric part of a RenderStyle.
type MetricStyle struct {
	Threshold int64
	Caption   string
	Anchor    Anchor
}

// RenderStyle is every visual knob of the thumbnail in one value.
// Sizes are fractions of the canvas height; LetterSpacing is a fraction of the
// font size; CaptionGap is a fraction of the canvas width.
type RenderStyle struct {
	EmphasisColor color.RGBA
	CaptionColor  color.RGBA
	OutlineColor  color.RGBA
	Outline       bool
	OutlineWidth  float64
	LabelSize     float64
	CaptionSize   float64
	LetterSpacing float64
	CaptionGap    float64

	Views    MetricStyle
	Likes    MetricStyle
	Comments MetricStyle
}

// DefaultRenderStyle is the stock look: yellow counts, white captions, black outline.
func DefaultRenderStyle() RenderStyle {
	return RenderStyle{
		EmphasisColor: color.RGBA{R: 0xFF, G: 0xD4, B: 0x00, A: 0xFF},
		CaptionColor:  color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		OutlineColor:  color.RGBA{A: 0xFF},
		Outline:       true,
		OutlineWidth:  4,
		LabelSize:     0.18,
		CaptionSize:   0.08,
		LetterSpacing: 0.02,
		CaptionGap:    0.02,
		Views:         MetricStyle{Threshold: 1_000_000, Caption: "VIEWS", Anchor: Anchor{X: 0.06, Y: 0.30}},
		Likes:         MetricStyle{Threshold: 1_000, Caption: "LIKES", Anchor: Anchor{X: 0.06, Y: 0.58}},
		Comments:      MetricStyle{Threshold: 1_000, Caption: "COMMENTS", Anchor: Anchor{X: 0.06, Y: 0.86}},
	}
}

// For returns the style of one metric.
func (s RenderStyle) For(m model.Metric) MetricStyle {
	switch m {
	case model.MetricLikes:
		return s.Likes
	case model.MetricComments:
		return s.Comments
	default:
		return s.Views
	}
}

// Validate rejects styles that would draw nothing or off-canvas.
func (s RenderStyle) Validate() error {
	if s.LabelSize <= 0 || s.CaptionSize <= 0 {
		return fmt.Errorf("font sizes must be positive: label=%v caption=%v", s.LabelSize, s.CaptionSize)
	}
	if s.LetterSpacing < 0 || s.OutlineWidth < 0 {
		return fmt.Errorf("letter spacing and outline width must not be negative")
	}
	for _, m := range model.Metrics {
		ms := s.For(m)
		if ms.Threshold <= 0 {
			return fmt.Errorf("%s threshold must be positive", m)
		}
		if ms.Anchor.X < 0 || ms.Anchor.X > 1 || ms.Anchor.Y < 0 || ms.Anchor.Y > 1 {
			return fmt.Errorf("%s anchor %+v outside the canvas", m, ms.Anchor)
		}
	}
	return nil
}

// Fingerprint identifies the style for cache keys.
func (s RenderStyle) Fingerprint() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%+v", s)))
	return hex.EncodeToString(sum[:8])
}

// ParseHexColor accepts #RGB, #RRGGBB and #RRGGBBAA (leading # optional).
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
