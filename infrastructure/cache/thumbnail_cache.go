package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"video-stats-updater/domain/model"
	"video-stats-updater/infrastructure/logger"
)

// ThumbnailCache keeps rendered thumbnails in memory (L1) and, when a redis
// client is given, in redis (L2) so restarts keep warm entries.
type ThumbnailCache struct {
	l1         sync.Map // key -> *entry
	rdb        *redis.Client
	maxEntries int
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// storedThumbnail is the serialized form shared by both tiers. It carries
// the image bytes, which model.RenderedThumbnail keeps out of its JSON.
type storedThumbnail struct {
	Data        []byte                 `json:"data"`
	Width       int                    `json:"width"`
	Height      int                    `json:"height"`
	ContentType string                 `json:"content_type"`
	Labels      []model.FormattedLabel `json:"labels"`
}

func encodeThumbnail(thumb *model.RenderedThumbnail) ([]byte, error) {
	return json.Marshal(storedThumbnail{
		Data:        thumb.Data,
		Width:       thumb.Width,
		Height:      thumb.Height,
		ContentType: thumb.ContentType,
		Labels:      thumb.Labels,
	})
}

func decodeThumbnail(data []byte) (*model.RenderedThumbnail, error) {
	var st storedThumbnail
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	if len(st.Data) == 0 {
		return nil, errors.New("cached thumbnail has no image data")
	}
	return &model.RenderedThumbnail{
		Data:        st.Data,
		Width:       st.Width,
		Height:      st.Height,
		ContentType: st.ContentType,
		Labels:      st.Labels,
	}, nil
}

// NewThumbnailCache creates the cache. rdb may be nil.
func NewThumbnailCache(rdb *redis.Client, maxEntries int) *ThumbnailCache {
	return &ThumbnailCache{rdb: rdb, maxEntries: maxEntries}
}

// Key builds a deterministic cache key from parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("thumb:%x", hash[:12])
}

// Get tries L1, then L2. A miss returns (nil, nil).
func (c *ThumbnailCache) Get(ctx context.Context, key string) (*model.RenderedThumbnail, error) {
	if val, ok := c.l1.Load(key); ok {
		e := val.(*entry)
		if time.Now().Before(e.expiresAt) {
			if thumb, err := decodeThumbnail(e.data); err == nil {
				return thumb, nil
			}
		}
		c.l1.Delete(key)
	}

	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}

	thumb, err := decodeThumbnail(data)
	if err != nil {
		logger.GetLogger().WithField("key", key).WithField("error", err).Warn("Dropping corrupt cached thumbnail")
		return nil, nil
	}
	ttl, err := c.rdb.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		ttl = time.Minute
	}
	c.l1.Store(key, &entry{data: data, expiresAt: time.Now().Add(ttl)})
	return thumb, nil
}

// Set stores the thumbnail in both tiers.
func (c *ThumbnailCache) Set(ctx context.Context, key string, thumb *model.RenderedThumbnail, ttl time.Duration) error {
	if thumb == nil || len(thumb.Data) == 0 || ttl <= 0 {
		return nil
	}
	data, err := encodeThumbnail(thumb)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	c.evictIfNeeded()
	c.l1.Store(key, &entry{data: data, expiresAt: time.Now().Add(ttl)})

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
			return fmt.Errorf("cache set %s: %w", key, err)
		}
	}
	return nil
}

// evictIfNeeded drops expired entries, then the soonest-expiring ones,
// until L1 has room for one more.
func (c *ThumbnailCache) evictIfNeeded() {
	if c.maxEntries <= 0 {
		return
	}
	count := 0
	c.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count < c.maxEntries {
		return
	}

	now := time.Now()
	c.l1.Range(func(key, val any) bool {
		if now.After(val.(*entry).expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return true
	})

	for count >= c.maxEntries {
		var oldestKey any
		var oldestAt time.Time
		c.l1.Range(func(key, val any) bool {
			e := val.(*entry)
			if oldestKey == nil || e.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = key, e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			return
		}
		c.l1.Delete(oldestKey)
		count--
	}
}
