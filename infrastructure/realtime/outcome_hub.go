package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"video-stats-updater/domain/model"
)

const allVideos = ""

// Hub fans finished pipeline outcomes out to SSE subscribers. Subscribers
// may filter on one video id.
type Hub struct {
	mu     sync.RWMutex
	videos map[string]map[chan model.UpdateOutcome]struct{}
}

func NewOutcomeHub() *Hub {
	return &Hub{videos: make(map[string]map[chan model.UpdateOutcome]struct{})}
}

// Serve streams outcomes as "event: outcome" until the client goes away.
// ?video_id= restricts the stream to one video.
func (h *Hub) Serve(c *gin.Context) {
	videoID := c.Query("video_id")
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering
	c.Status(http.StatusOK)

	ch := make(chan model.UpdateOutcome, 8)
	h.addSubscriber(videoID, ch)
	defer h.removeSubscriber(videoID, ch)

	// Initial comment to keep connection open
	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case outcome := <-ch:
			data, err := json.Marshal(outcome)
			if err != nil {
				continue
			}
			_, _ = c.Writer.Write([]byte("event: outcome\ndata: "))
			_, _ = c.Writer.Write(data)
			_, _ = c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		}
	}
}

// PublishOutcome delivers to subscribers of the video and of all videos.
// Slow subscribers miss events rather than block the pipeline.
func (h *Hub) PublishOutcome(_ context.Context, outcome model.UpdateOutcome) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, key := range []string{outcome.VideoID, allVideos} {
		for ch := range h.videos[key] {
			select { // non-blocking
			case ch <- outcome:
			default:
			}
		}
		if outcome.VideoID == allVideos {
			break
		}
	}
	return nil
}

// Subscribers counts open streams.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, subs := range h.videos {
		n += len(subs)
	}
	return n
}

func (h *Hub) addSubscriber(videoID string, ch chan model.UpdateOutcome) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.videos[videoID] == nil {
		h.videos[videoID] = make(map[chan model.UpdateOutcome]struct{})
	}
	h.videos[videoID][ch] = struct{}{}
}

func (h *Hub) removeSubscriber(videoID string, ch chan model.UpdateOutcome) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs := h.videos[videoID]; subs != nil {
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(h.videos, videoID)
		}
	}
}
