package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"video-stats-updater/domain/model"
	"video-stats-updater/domain/repository"
	"video-stats-updater/infrastructure/logger"
	"video-stats-updater/infrastructure/utils"
)

// IUpdatePipeline applies one snapshot to the remote video.
type IUpdatePipeline interface {
	Run(ctx context.Context, snapshot model.StatSnapshot) model.UpdateOutcome
}

// PipelineConfig holds the title wording.
type PipelineConfig struct {
	TitlePrefix string
	// Captions in model.Metrics order.
	Captions []string
}

// UpdatePipeline runs the title stage, then the thumbnail stage. A failing
// stage never stops the other one.
type UpdatePipeline struct {
	renderer   repository.IThumbnailRenderer
	updater    IMetadataUpdater
	recorder   repository.IRunRecorder
	publishers []repository.IOutcomePublisher
	config     PipelineConfig
	newRunID   func() string
}

func NewUpdatePipeline(renderer repository.IThumbnailRenderer, updater IMetadataUpdater, config PipelineConfig) *UpdatePipeline {
	return &UpdatePipeline{
		renderer: renderer,
		updater:  updater,
		config:   config,
		newRunID: uuid.NewString,
	}
}

// WithRecorder reports stage and run metrics to r.
func (p *UpdatePipeline) WithRecorder(r repository.IRunRecorder) *UpdatePipeline {
	p.recorder = r
	return p
}

// WithPublishers sends every finished outcome to pubs.
func (p *UpdatePipeline) WithPublishers(pubs ...repository.IOutcomePublisher) *UpdatePipeline {
	for _, pub := range pubs {
		if pub != nil {
			p.publishers = append(p.publishers, pub)
		}
	}
	return p
}

// Run never returns an error: every failure ends up in the outcome.
func (p *UpdatePipeline) Run(ctx context.Context, snapshot model.StatSnapshot) model.UpdateOutcome {
	outcome := model.UpdateOutcome{
		RunID:     p.newRunID(),
		VideoID:   snapshot.VideoID,
		State:     model.StateIdle,
		StartedAt: utils.GetCurrentTime(),
	}
	entry := logger.GetLogger().WithField("runId", outcome.RunID).WithField("videoId", snapshot.VideoID)
	entry.WithFields(log.Fields{
		"views":    snapshot.Views,
		"likes":    snapshot.Likes,
		"comments": snapshot.Comments,
	}).Info("Pipeline started")

	labels, labelErr := p.labels(snapshot)
	outcome.Labels = labels

	outcome.State = model.StateTitleUpdating
	outcome.Title = p.runStage(entry, model.StageTitle, func(res *model.StageResult) error {
		if labelErr != nil {
			return labelErr
		}
		res.Title = BuildTitle(p.config.TitlePrefix, labels, p.config.Captions)
		_, err := p.updater.UpdateTitle(ctx, snapshot.VideoID, snapshot.Credential, res.Title)
		return err
	})

	outcome.State = model.StateThumbnailUpdating
	outcome.Thumbnail = p.runStage(entry, model.StageThumbnail, func(res *model.StageResult) error {
		thumb, err := p.renderer.Render(ctx, snapshot)
		if err != nil {
			return err
		}
		res.ContentType = thumb.ContentType
		res.Bytes = len(thumb.Data)
		return p.updater.UpdateThumbnail(ctx, snapshot.VideoID, snapshot.Credential, thumb)
	})

	for _, res := range []model.StageResult{outcome.Title, outcome.Thumbnail} {
		if !res.OK {
			outcome.FailedStages = append(outcome.FailedStages, res.Stage)
		}
	}
	outcome.State = model.StateDone
	if len(outcome.FailedStages) > 0 {
		outcome.State = model.StateFailed
	}
	outcome.FinishedAt = utils.GetCurrentTime()

	if p.recorder != nil {
		p.recorder.RunFinished(outcome.State)
	}
	p.publish(ctx, entry, outcome)

	entry.WithField("state", outcome.State).WithField("failedStages", outcome.FailedStages).Info("Pipeline finished")
	return outcome
}

func (p *UpdatePipeline) labels(snapshot model.StatSnapshot) (labels []model.FormattedLabel, err error) {
	defer func() {
		if r := recover(); r != nil {
			labels, err = nil, fmt.Errorf("format labels: panic: %v", r)
		}
	}()
	return p.renderer.Labels(snapshot), nil
}

// runStage converts errors and panics of fn into a failed result.
func (p *UpdatePipeline) runStage(entry *log.Entry, stage model.Stage, fn func(*model.StageResult) error) (res model.StageResult) {
	start := time.Now()
	res.Stage = stage
	entry = entry.WithField("stage", stage)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%s stage panicked: %v", stage, r)
			res.OK = false
			res.ErrorKind = model.ErrorKind(err)
			res.Error = err.Error()
		}
		res.DurationMs = utils.ElapsedMs(start)

		if res.OK {
			entry.WithField("durationMs", res.DurationMs).Info("Stage succeeded")
		} else {
			entry.WithField("errorKind", res.ErrorKind).WithField("error", res.Error).Error("Stage failed")
		}
		if p.recorder != nil {
			p.recorder.StageFinished(res, time.Since(start))
		}
	}()

	if err := fn(&res); err != nil {
		res.ErrorKind = model.ErrorKind(err)
		res.Error = err.Error()
		return res
	}
	res.OK = true
	return res
}

func (p *UpdatePipeline) publish(ctx context.Context, entry *log.Entry, outcome model.UpdateOutcome) {
	for _, pub := range p.publishers {
		if err := publishSafely(ctx, pub, outcome); err != nil {
			entry.WithField("error", err).Warn("Failed to publish outcome")
		}
	}
}

func publishSafely(ctx context.Context, pub repository.IOutcomePublisher, outcome model.UpdateOutcome) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("publisher panicked: %v", r)
		}
	}()
	return pub.PublishOutcome(ctx, outcome)
}
