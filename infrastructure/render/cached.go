package render

import (
	"context"
	"time"

	"video-stats-updater/domain/model"
	"video-stats-updater/domain/repository"
	"video-stats-updater/infrastructure/logger"
)

// KeyFunc derives a cache key from parts.
type KeyFunc func(parts ...string) string

// CachedRenderer serves thumbnails for already seen label combinations from
// a cache. Two snapshots with equal labels render identical images, so the
// key is the labels plus the style fingerprint.
type CachedRenderer struct {
	inner  *ThumbnailRenderer
	cache  repository.IThumbnailCache
	key    KeyFunc
	ttl    time.Duration
	onLook func(hit bool)
}

func NewCachedRenderer(inner *ThumbnailRenderer, cache repository.IThumbnailCache, key KeyFunc, ttl time.Duration) *CachedRenderer {
	return &CachedRenderer{inner: inner, cache: cache, key: key, ttl: ttl}
}

// OnLookup registers a hit/miss observer.
func (c *CachedRenderer) OnLookup(fn func(hit bool)) *CachedRenderer {
	c.onLook = fn
	return c
}

func (c *CachedRenderer) Labels(snapshot model.StatSnapshot) []model.FormattedLabel {
	return c.inner.Labels(snapshot)
}

func (c *CachedRenderer) Render(ctx context.Context, snapshot model.StatSnapshot) (*model.RenderedThumbnail, error) {
	if err := c.inner.AssetError(); err != nil {
		return nil, err
	}

	labels := c.inner.Labels(snapshot)
	parts := make([]string, 0, len(labels)+1)
	parts = append(parts, c.inner.Style().Fingerprint())
	for _, l := range labels {
		parts = append(parts, l.Text)
	}
	key := c.key(parts...)

	cached, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("key", key).Warn("Thumbnail cache lookup failed")
	}
	c.observe(cached != nil)
	if cached != nil {
		// the output file must always hold the image of the latest render
		c.inner.persist(cached.Data)
		return cached, nil
	}

	thumb, err := c.inner.Render(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, thumb, c.ttl); err != nil {
		logger.GetLogger().WithField("error", err).WithField("key", key).Warn("Thumbnail cache store failed")
	}
	return thumb, nil
}

func (c *CachedRenderer) observe(hit bool) {
	if c.onLook != nil {
		c.onLook(hit)
	}
}
