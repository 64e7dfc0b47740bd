package usecase

import (
	"context"
	"fmt"

	"video-stats-updater/domain/model"
	"video-stats-updater/domain/repository"
)

// IMetadataUpdater changes the remote title and thumbnail of a video.
type IMetadataUpdater interface {
	UpdateTitle(ctx context.Context, videoID string, cred model.Credential, newTitle string) (*model.VideoSnippet, error)
	UpdateThumbnail(ctx context.Context, videoID string, cred model.Credential, thumb *model.RenderedThumbnail) error
}

type MetadataUpdater struct {
	clients repository.IYouTubeClientFactory
}

func NewMetadataUpdater(clients repository.IYouTubeClientFactory) IMetadataUpdater {
	return &MetadataUpdater{clients: clients}
}

// UpdateTitle reads the current snippet and writes it back with only the
// title replaced.
func (u *MetadataUpdater) UpdateTitle(ctx context.Context, videoID string, cred model.Credential, newTitle string) (*model.VideoSnippet, error) {
	if err := ValidateTitle(newTitle); err != nil {
		return nil, err
	}
	api, err := u.clients.ForCredential(ctx, cred)
	if err != nil {
		return nil, err
	}

	current, err := api.GetVideoSnippet(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, videoID)
	}
	return api.UpdateVideoSnippet(ctx, current.WithTitle(newTitle))
}

// UpdateThumbnail uploads the rendered thumbnail.
func (u *MetadataUpdater) UpdateThumbnail(ctx context.Context, videoID string, cred model.Credential, thumb *model.RenderedThumbnail) error {
	if thumb == nil || len(thumb.Data) == 0 {
		return fmt.Errorf("%w: no thumbnail to upload", model.ErrValidation)
	}
	api, err := u.clients.ForCredential(ctx, cred)
	if err != nil {
		return err
	}
	return api.SetThumbnail(ctx, videoID, thumb)
}
