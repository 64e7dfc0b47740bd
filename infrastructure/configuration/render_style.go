package configuration

import (
	"fmt"
	"image/color"

	"video-stats-updater/infrastructure/render"
)

// RenderStyle layers the configured overrides on top of the default style.
func (c Config) RenderStyle() (render.RenderStyle, error) {
	s := render.DefaultRenderStyle()
	o := c.Render.Style

	colors := []struct {
		raw string
		dst *color.RGBA
	}{
		{o.EmphasisColor, &s.EmphasisColor},
		{o.CaptionColor, &s.CaptionColor},
		{o.OutlineColor, &s.OutlineColor},
	}
	for _, col := range colors {
		if col.raw == "" {
			continue
		}
		parsed, err := render.ParseHexColor(col.raw)
		if err != nil {
			return render.RenderStyle{}, fmt.Errorf("render.style: %w", err)
		}
		*col.dst = parsed
	}

	if o.Outline != nil {
		s.Outline = *o.Outline
	}
	setPositive(&s.OutlineWidth, o.OutlineWidth)
	setPositive(&s.LabelSize, o.LabelSize)
	setPositive(&s.CaptionSize, o.CaptionSize)
	setPositive(&s.LetterSpacing, o.LetterSpacing)
	setPositive(&s.CaptionGap, o.CaptionGap)

	if o.ViewsThreshold > 0 {
		s.Views.Threshold = o.ViewsThreshold
	}
	if o.LikesThreshold > 0 {
		s.Likes.Threshold = o.LikesThreshold
	}
	if o.CommentsThreshold > 0 {
		s.Comments.Threshold = o.CommentsThreshold
	}

	// captions are positional: views, likes, comments
	captions := []*string{&s.Views.Caption, &s.Likes.Caption, &s.Comments.Caption}
	for i, caption := range o.Captions {
		if i < len(captions) && caption != "" {
			*captions[i] = caption
		}
	}

	if err := s.Validate(); err != nil {
		return render.RenderStyle{}, fmt.Errorf("render.style: %w", err)
	}
	return s, nil
}

func setPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}
