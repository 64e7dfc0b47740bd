package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"video-stats-updater/domain/model"
)

// MaxThumbnailBytes is the largest custom thumbnail the platform accepts.
const MaxThumbnailBytes = 2 << 20

const fallbackJPEGQuality = 90

// Encode writes img as PNG, falling back to JPEG when the PNG is over the
// upload limit. It returns the buffer and its content type.
func Encode(img image.Image) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("%w: encode png: %v", model.ErrRender, err)
	}
	if buf.Len() <= MaxThumbnailBytes {
		return buf.Bytes(), "image/png", nil
	}

	buf.Reset()
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: fallbackJPEGQuality}); err != nil {
		return nil, "", fmt.Errorf("%w: encode jpeg: %v", model.ErrRender, err)
	}
	if buf.Len() > MaxThumbnailBytes {
		return nil, "", fmt.Errorf("%w: encoded thumbnail is %d bytes, limit %d", model.ErrRender, buf.Len(), MaxThumbnailBytes)
	}
	return buf.Bytes(), "image/jpeg", nil
}

// WriteFileAtomic replaces path with data through a temp file and rename, so
// readers never see a partially written image.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
