package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-stats-updater/domain/model"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#FFD400", color.RGBA{R: 0xFF, G: 0xD4, A: 0xFF}},
		{"ffffff", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
		{"#000", color.RGBA{A: 0xFF}},
		{"#11223380", color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#12", "#GGGGGG", "red"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestDefaultRenderStyle(t *testing.T) {
	s := DefaultRenderStyle()
	require.NoError(t, s.Validate())

	assert.Equal(t, "VIEWS", s.For(model.MetricViews).Caption)
	assert.Equal(t, "LIKES", s.For(model.MetricLikes).Caption)
	assert.Equal(t, "COMMENTS", s.For(model.MetricComments).Caption)
	assert.GreaterOrEqual(t, s.Views.Threshold, 10*s.Likes.Threshold)
	assert.NotEqual(t, s.EmphasisColor, s.CaptionColor)
}

func TestRenderStyle_Validate(t *testing.T) {
	s := DefaultRenderStyle()
	s.LabelSize = 0
	assert.Error(t, s.Validate())

	s = DefaultRenderStyle()
	s.Likes.Threshold = 0
	assert.Error(t, s.Validate())

	s = DefaultRenderStyle()
	s.Comments.Anchor.Y = 1.5
	assert.Error(t, s.Validate())
}

func TestRenderStyle_Fingerprint(t *testing.T) {
	a := DefaultRenderStyle()
	b := DefaultRenderStyle()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Outline = false
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
