package model

// GlyphPlacement is the draw position of one character on the canvas.
// X, Y are the pen position on the baseline.
type GlyphPlacement struct {
	Char string  `json:"char"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// RenderedThumbnail is an encoded thumbnail buffer plus its dimensions.
type RenderedThumbnail struct {
	Data        []byte           `json:"-"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	ContentType string           `json:"content_type"`
	Labels      []FormattedLabel `json:"labels"`
}
