package repository

import (
	"context"

	"video-stats-updater/domain/model"
)

// IYouTube is the subset of the video platform API the updater needs.
type IYouTube interface {
	// GetVideoSnippet reads the snippet of a video. Returns an error wrapping
	// model.ErrNotFound when no video has the id.
	GetVideoSnippet(ctx context.Context, videoID string) (*model.VideoSnippet, error)
	// UpdateVideoSnippet writes the full snippet back.
	UpdateVideoSnippet(ctx context.Context, snippet model.VideoSnippet) (*model.VideoSnippet, error)
	// SetThumbnail replaces the custom thumbnail of a video.
	SetThumbnail(ctx context.Context, videoID string, thumb *model.RenderedThumbnail) error
}

// IYouTubeClientFactory turns a request credential into an authorized client.
// Token refresh, if any, happens inside the returned client's transport.
type IYouTubeClientFactory interface {
	ForCredential(ctx context.Context, cred model.Credential) (IYouTube, error)
}
