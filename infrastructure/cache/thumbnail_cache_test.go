package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-stats-updater/domain/model"
	"video-stats-updater/infrastructure/cache"
)

func thumb(text string) *model.RenderedThumbnail {
	return &model.RenderedThumbnail{
		Data:        []byte("png-" + text),
		Width:       1280,
		Height:      720,
		ContentType: "image/png",
		Labels:      []model.FormattedLabel{{Text: text, SourceValue: 1}},
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, cache.Key("1.2M", "45.2k", "980"), cache.Key("1.2M", "45.2k", "980"))
	assert.NotEqual(t, cache.Key("1.2M", "45.2k", "980"), cache.Key("1.2M", "45.2k", "981"))
	assert.NotEqual(t, cache.Key("a|b"), cache.Key("a", "b", "c"))
}

func TestThumbnailCache_MemoryOnly(t *testing.T) {
	ctx := context.Background()
	c := cache.NewThumbnailCache(nil, 0)

	got, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, "k", thumb("1.2M"), time.Minute))
	got, err = c.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, thumb("1.2M"), got)
}

func TestThumbnailCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := cache.NewThumbnailCache(nil, 0)

	require.NoError(t, c.Set(ctx, "k", thumb("x"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestThumbnailCache_ZeroTTLIsNotStored(t *testing.T) {
	ctx := context.Background()
	c := cache.NewThumbnailCache(nil, 0)

	require.NoError(t, c.Set(ctx, "k", thumb("x"), 0))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestThumbnailCache_Eviction(t *testing.T) {
	ctx := context.Background()
	c := cache.NewThumbnailCache(nil, 2)

	require.NoError(t, c.Set(ctx, "a", thumb("a"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", thumb("b"), 2*time.Minute))
	require.NoError(t, c.Set(ctx, "c", thumb("c"), 3*time.Minute))

	got, _ := c.Get(ctx, "a")
	assert.Nil(t, got, "soonest-expiring entry is evicted first")
	got, _ = c.Get(ctx, "b")
	assert.NotNil(t, got)
	got, _ = c.Get(ctx, "c")
	assert.NotNil(t, got)
}

func TestThumbnailCache_KeepsImageBytes(t *testing.T) {
	ctx := context.Background()
	c := cache.NewThumbnailCache(nil, 0)
	want := thumb("45.2k")

	require.NoError(t, c.Set(ctx, "k", want, time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Data, got.Data)
	assert.Equal(t, "image/png", got.ContentType)
	assert.Equal(t, want.Labels, got.Labels)
}

func TestThumbnailCache_EmptyDataIsNotStored(t *testing.T) {
	ctx := context.Background()
	c := cache.NewThumbnailCache(nil, 0)

	require.NoError(t, c.Set(ctx, "k", &model.RenderedThumbnail{ContentType: "image/png"}, time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}
