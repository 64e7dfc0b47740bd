package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // background may be a JPEG
	_ "image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"video-stats-updater/domain/model"
)

// RenderContext holds the read-only assets shared by every render: the
// decoded background and the parsed fonts. It is built once at startup and
// never mutated afterwards, so concurrent renders can share it.
type RenderContext struct {
	background  *image.RGBA
	labelFont   *opentype.Font
	captionFont *opentype.Font
}

// NewRenderContext loads the background image and fonts from disk.
// An empty font path selects the embedded Go Bold face; an empty caption font
// path reuses the label font. Failures wrap model.ErrAssetLoad.
func NewRenderContext(backgroundPath, labelFontPath, captionFontPath string) (*RenderContext, error) {
	if backgroundPath == "" {
		return nil, fmt.Errorf("%w: background path not configured", model.ErrAssetLoad)
	}
	raw, err := os.ReadFile(backgroundPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read background %s: %v", model.ErrAssetLoad, backgroundPath, err)
	}
	bg, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode background %s: %v", model.ErrAssetLoad, backgroundPath, err)
	}

	labelTTF, err := readFont(labelFontPath)
	if err != nil {
		return nil, err
	}
	captionTTF := labelTTF
	if captionFontPath != "" {
		if captionTTF, err = readFont(captionFontPath); err != nil {
			return nil, err
		}
	}
	return NewRenderContextFromImage(bg, labelTTF, captionTTF)
}

// NewRenderContextFromImage builds a context from an already decoded
// background and raw font data. Nil font data selects Go Bold.
func NewRenderContextFromImage(bg image.Image, labelTTF, captionTTF []byte) (*RenderContext, error) {
	if bg == nil {
		return nil, fmt.Errorf("%w: nil background", model.ErrAssetLoad)
	}
	b := bg.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: background has no pixels", model.ErrAssetLoad)
	}
	if labelTTF == nil {
		labelTTF = gobold.TTF
	}
	if captionTTF == nil {
		captionTTF = labelTTF
	}

	labelFont, err := opentype.Parse(labelTTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parse label font: %v", model.ErrAssetLoad, err)
	}
	captionFont, err := opentype.Parse(captionTTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parse caption font: %v", model.ErrAssetLoad, err)
	}

	// normalize to an RGBA anchored at (0,0)
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), bg, b.Min, draw.Src)

	return &RenderContext{background: canvas, labelFont: labelFont, captionFont: captionFont}, nil
}

func readFont(path string) ([]byte, error) {
	if path == "" {
		return gobold.TTF, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read font %s: %v", model.ErrAssetLoad, path, err)
	}
	return data, nil
}

func (rc *RenderContext) Width() int  { return rc.background.Bounds().Dx() }
func (rc *RenderContext) Height() int { return rc.background.Bounds().Dy() }

// canvas returns a private, writable copy of the background.
func (rc *RenderContext) canvas() *image.RGBA {
	c := image.NewRGBA(rc.background.Bounds())
	copy(c.Pix, rc.background.Pix)
	return c
}

// Faces hold per-call buffers and are not safe for concurrent use, so each
// render opens its own.
func (rc *RenderContext) labelFace(px float64) (font.Face, error) {
	return newFace(rc.labelFont, px)
}

func (rc *RenderContext) captionFace(px float64) (font.Face, error) {
	return newFace(rc.captionFont, px)
}

func newFace(f *opentype.Font, px float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open face at %.1fpx: %v", model.ErrAssetLoad, px, err)
	}
	return face, nil
}
