package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"video-stats-updater/domain/dto"
	"video-stats-updater/domain/model"
	"video-stats-updater/infrastructure/logger"
	"video-stats-updater/usecase"

	"github.com/gin-gonic/gin"
)

const (
	// CredentialHeader carries the poller's platform credential.
	CredentialHeader         = "Google-Client-Secret"
	fallbackCredentialHeader = "X-Google-Credential"
)

type IStatsHandler interface {
	UpdateStats(ctx *gin.Context)
}

type StatsHandler struct {
	pipeline usecase.IUpdatePipeline
}

func NewStatsHandler(pipeline usecase.IUpdatePipeline) IStatsHandler {
	return &StatsHandler{pipeline: pipeline}
}

// UpdateStats handles POST / and POST /api/stats
func (h *StatsHandler) UpdateStats(ctx *gin.Context) {
	snapshot, err := bindSnapshot(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Rejected stats update")
		ctx.JSON(http.StatusBadRequest, dto.Res{Error: true, Message: err.Error()})
		return
	}

	outcome := h.pipeline.Run(ctx.Request.Context(), snapshot)
	message := "updated"
	if !outcome.Succeeded() {
		message = fmt.Sprintf("failed stages: %v", outcome.FailedStages)
	}
	ctx.JSON(http.StatusOK, dto.Res{Error: false, Message: message, Data: outcome})
}

func bindSnapshot(ctx *gin.Context) (model.StatSnapshot, error) {
	var req dto.StatsUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return model.StatSnapshot{}, fmt.Errorf("invalid payload: %w", err)
	}

	videoID := req.ID()
	if videoID == "" {
		return model.StatSnapshot{}, errors.New("video_id is required")
	}
	var missing []string
	for _, f := range []struct {
		name string
		c    dto.Count
	}{{"views", req.Views}, {"likes", req.Likes}, {"comments", req.Comments}} {
		if !f.c.Set {
			missing = append(missing, f.name)
		} else if f.c.Value < 0 {
			return model.StatSnapshot{}, fmt.Errorf("%s must not be negative", f.name)
		}
	}
	if len(missing) > 0 {
		return model.StatSnapshot{}, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}

	raw := strings.TrimSpace(ctx.GetHeader(CredentialHeader))
	if raw == "" {
		raw = strings.TrimSpace(ctx.GetHeader(fallbackCredentialHeader))
	}
	if raw == "" {
		return model.StatSnapshot{}, fmt.Errorf("missing %s header", CredentialHeader)
	}

	return model.StatSnapshot{
		VideoID:    videoID,
		Views:      req.Views.Value,
		Likes:      req.Likes.Value,
		Comments:   req.Comments.Value,
		Credential: model.Credential{Raw: raw},
	}, nil
}
