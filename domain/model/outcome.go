package model

import "time"

// Stage is one of the two independent update operations of a pipeline run.
type Stage string

const (
	StageTitle     Stage = "title"
	StageThumbnail Stage = "thumbnail"
)

// PipelineState is the state of one pipeline run.
type PipelineState string

const (
	StateIdle              PipelineState = "idle"
	StateTitleUpdating     PipelineState = "title_updating"
	StateThumbnailUpdating PipelineState = "thumbnail_updating"
	StateDone              PipelineState = "done"
	StateFailed            PipelineState = "failed"
)

// StageResult describes how a single stage ended.
type StageResult struct {
	Stage       Stage  `json:"stage"`
	OK          bool   `json:"ok"`
	ErrorKind   string `json:"error_kind,omitempty"`
	Error       string `json:"error,omitempty"`
	Title       string `json:"title,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Bytes       int    `json:"bytes,omitempty"`
	DurationMs  int64  `json:"duration_ms"`
}

// UpdateOutcome is the structured result of one pipeline run.
type UpdateOutcome struct {
	RunID        string           `json:"run_id"`
	VideoID      string           `json:"video_id"`
	State        PipelineState    `json:"state"`
	FailedStages []Stage          `json:"failed_stages,omitempty"`
	Labels       []FormattedLabel `json:"labels,omitempty"`
	Title        StageResult      `json:"title"`
	Thumbnail    StageResult      `json:"thumbnail"`
	StartedAt    time.Time        `json:"started_at"`
	FinishedAt   time.Time        `json:"finished_at"`
}

// Succeeded reports whether both stages completed.
func (o UpdateOutcome) Succeeded() bool {
	return o.Title.OK && o.Thumbnail.OK
}
