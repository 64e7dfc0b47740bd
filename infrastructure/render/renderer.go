package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"video-stats-updater/domain/model"
	"video-stats-updater/infrastructure/logger"
)

// ThumbnailRenderer draws the three counts and their captions over the
// background held by a RenderContext.
type ThumbnailRenderer struct {
	rc         *RenderContext
	assetErr   error
	style      RenderStyle
	outputPath string
}

// NewThumbnailRenderer renders with an already loaded context.
func NewThumbnailRenderer(rc *RenderContext, style RenderStyle) *ThumbnailRenderer {
	r := &ThumbnailRenderer{rc: rc, style: style}
	if rc == nil {
		r.assetErr = fmt.Errorf("%w: render context not loaded", model.ErrAssetLoad)
	}
	return r
}

// NewThumbnailRendererFromAssets loads the assets once. A load failure does
// not prevent construction: every Render call then fails with the load error,
// so only the thumbnail stage is affected.
func NewThumbnailRendererFromAssets(backgroundPath, labelFontPath, captionFontPath string, style RenderStyle) *ThumbnailRenderer {
	rc, err := NewRenderContext(backgroundPath, labelFontPath, captionFontPath)
	if err != nil {
		return &ThumbnailRenderer{assetErr: err, style: style}
	}
	return NewThumbnailRenderer(rc, style)
}

// WithOutputPath makes every render also persist its buffer at path.
func (r *ThumbnailRenderer) WithOutputPath(path string) *ThumbnailRenderer {
	r.outputPath = path
	return r
}

// AssetError is the startup load error, if any.
func (r *ThumbnailRenderer) AssetError() error { return r.assetErr }

func (r *ThumbnailRenderer) Style() RenderStyle { return r.style }

// Labels formats the snapshot counts in metric order with the style thresholds.
// It needs no assets, so titles can be built even when rendering cannot.
func (r *ThumbnailRenderer) Labels(snapshot model.StatSnapshot) []model.FormattedLabel {
	labels := make([]model.FormattedLabel, 0, len(model.Metrics))
	for _, m := range model.Metrics {
		labels = append(labels, FormatLabel(snapshot.Count(m), r.style.For(m).Threshold))
	}
	return labels
}

// Captions returns the caption words in metric order.
func (r *ThumbnailRenderer) Captions() []string {
	captions := make([]string, 0, len(model.Metrics))
	for _, m := range model.Metrics {
		captions = append(captions, r.style.For(m).Caption)
	}
	return captions
}

// Render composes the thumbnail for a snapshot.
func (r *ThumbnailRenderer) Render(ctx context.Context, snapshot model.StatSnapshot) (*model.RenderedThumbnail, error) {
	if r.assetErr != nil {
		return nil, r.assetErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrRender, err)
	}

	canvas := r.rc.canvas()
	w, h := float64(r.rc.Width()), float64(r.rc.Height())

	labelPx := r.style.LabelSize * h
	captionPx := r.style.CaptionSize * h
	labelFace, err := r.rc.labelFace(labelPx)
	if err != nil {
		return nil, err
	}
	defer labelFace.Close()
	captionFace, err := r.rc.captionFace(captionPx)
	if err != nil {
		return nil, err
	}
	defer captionFace.Close()

	labelMeasure := FaceMeasure(labelFace)
	captionMeasure := FaceMeasure(captionFace)
	labelSpacing := r.style.LetterSpacing * labelPx
	captionSpacing := r.style.LetterSpacing * captionPx

	labels := r.Labels(snapshot)
	for i, m := range model.Metrics {
		ms := r.style.For(m)
		label := labels[i]

		origin := Point{X: ms.Anchor.X * w, Y: ms.Anchor.Y * h}
		glyphs := Layout(label.Text, origin, labelSpacing, labelMeasure)
		if r.style.Outline && r.style.OutlineWidth > 0 {
			strokeGlyphs(canvas, labelFace, glyphs, r.style.OutlineColor, r.style.OutlineWidth)
		}
		drawGlyphs(canvas, labelFace, glyphs, r.style.EmphasisColor, 0, 0)

		captionOrigin := Point{
			X: origin.X + Advance(label.Text, labelSpacing, labelMeasure) + r.style.CaptionGap*w,
			Y: origin.Y,
		}
		captionGlyphs := Layout(ms.Caption, captionOrigin, captionSpacing, captionMeasure)
		drawGlyphs(canvas, captionFace, captionGlyphs, r.style.CaptionColor, 0, 0)
	}

	data, contentType, err := Encode(canvas)
	if err != nil {
		return nil, err
	}

	thumb := &model.RenderedThumbnail{
		Data:        data,
		Width:       canvas.Bounds().Dx(),
		Height:      canvas.Bounds().Dy(),
		ContentType: contentType,
		Labels:      labels,
	}

	r.persist(data)
	return thumb, nil
}

// persist writes data to the output path, if one is set. Failures are only
// logged: the buffer is still usable for the upload.
func (r *ThumbnailRenderer) persist(data []byte) {
	if r.outputPath == "" {
		return
	}
	if err := WriteFileAtomic(r.outputPath, data); err != nil {
		logger.GetLogger().WithField("error", err).WithField("path", r.outputPath).Warn("Failed to persist rendered thumbnail")
	}
}

// FaceMeasure adapts a font face to a MeasureFunc.
func FaceMeasure(face font.Face) MeasureFunc {
	return func(r rune) float64 {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv, _ = face.GlyphAdvance('?')
		}
		return float64(adv) / 64
	}
}

var strokeDirections = func() [8][2]float64 {
	var d [8][2]float64
	for i := range d {
		a := float64(i) * math.Pi / 4
		d[i] = [2]float64{math.Cos(a), math.Sin(a)}
	}
	return d
}()

func strokeGlyphs(dst draw.Image, face font.Face, glyphs []model.GlyphPlacement, c color.RGBA, width float64) {
	for _, dir := range strokeDirections {
		drawGlyphs(dst, face, glyphs, c, dir[0]*width, dir[1]*width)
	}
}

func drawGlyphs(dst draw.Image, face font.Face, glyphs []model.GlyphPlacement, c color.RGBA, dx, dy float64) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	for _, g := range glyphs {
		d.Dot = fixed.Point26_6{X: toFixed(g.X + dx), Y: toFixed(g.Y + dy)}
		d.DrawString(g.Char)
	}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
