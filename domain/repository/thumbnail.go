package repository

import (
	"context"
	"time"

	"video-stats-updater/domain/model"
)

// IThumbnailRenderer produces a thumbnail for a snapshot.
type IThumbnailRenderer interface {
	// Labels formats the counts exactly as Render draws them.
	Labels(snapshot model.StatSnapshot) []model.FormattedLabel
	Render(ctx context.Context, snapshot model.StatSnapshot) (*model.RenderedThumbnail, error)
}

// IThumbnailCache stores encoded thumbnails by key.
// A miss is reported as (nil, nil).
type IThumbnailCache interface {
	Get(ctx context.Context, key string) (*model.RenderedThumbnail, error)
	Set(ctx context.Context, key string, thumb *model.RenderedThumbnail, ttl time.Duration) error
}

// IOutcomePublisher fans pipeline outcomes out to other systems.
type IOutcomePublisher interface {
	PublishOutcome(ctx context.Context, outcome model.UpdateOutcome) error
}

// IRunRecorder receives per-stage and per-run measurements.
type IRunRecorder interface {
	StageFinished(result model.StageResult, elapsed time.Duration)
	RunFinished(state model.PipelineState)
}
