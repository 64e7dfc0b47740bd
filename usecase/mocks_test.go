package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"video-stats-updater/domain/model"
	"video-stats-updater/domain/repository"
)

// Mock implementations
type MockYouTube struct {
	mock.Mock
}

func (m *MockYouTube) GetVideoSnippet(ctx context.Context, videoID string) (*model.VideoSnippet, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoSnippet), args.Error(1)
}

func (m *MockYouTube) UpdateVideoSnippet(ctx context.Context, snippet model.VideoSnippet) (*model.VideoSnippet, error) {
	args := m.Called(ctx, snippet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoSnippet), args.Error(1)
}

func (m *MockYouTube) SetThumbnail(ctx context.Context, videoID string, thumb *model.RenderedThumbnail) error {
	args := m.Called(ctx, videoID, thumb)
	return args.Error(0)
}

type MockClientFactory struct {
	mock.Mock
}

func (m *MockClientFactory) ForCredential(ctx context.Context, cred model.Credential) (repository.IYouTube, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.IYouTube), args.Error(1)
}

type MockMetadataUpdater struct {
	mock.Mock
}

func (m *MockMetadataUpdater) UpdateTitle(ctx context.Context, videoID string, cred model.Credential, newTitle string) (*model.VideoSnippet, error) {
	args := m.Called(ctx, videoID, cred, newTitle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoSnippet), args.Error(1)
}

func (m *MockMetadataUpdater) UpdateThumbnail(ctx context.Context, videoID string, cred model.Credential, thumb *model.RenderedThumbnail) error {
	args := m.Called(ctx, videoID, cred, thumb)
	return args.Error(0)
}

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Labels(snapshot model.StatSnapshot) []model.FormattedLabel {
	args := m.Called(snapshot)
	return args.Get(0).([]model.FormattedLabel)
}

func (m *MockRenderer) Render(ctx context.Context, snapshot model.StatSnapshot) (*model.RenderedThumbnail, error) {
	args := m.Called(ctx, snapshot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RenderedThumbnail), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOutcome(ctx context.Context, outcome model.UpdateOutcome) error {
	args := m.Called(ctx, outcome)
	return args.Error(0)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) StageFinished(result model.StageResult, elapsed time.Duration) {
	m.Called(result, elapsed)
}

func (m *MockRecorder) RunFinished(state model.PipelineState) {
	m.Called(state)
}
