package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"video-stats-updater/domain/model"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("bad payload: %w", model.ErrValidation), "validation"},
		{fmt.Errorf("open background: %w", model.ErrAssetLoad), "asset_load"},
		{fmt.Errorf("encode: %w", model.ErrRender), "render"},
		{fmt.Errorf("videos.list abc: %w", model.ErrNotFound), "not_found"},
		{fmt.Errorf("token: %w", model.ErrAuth), "auth"},
		{fmt.Errorf("videos.update: %w", model.ErrRemote), "remote"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, model.ErrorKind(tt.err))
	}
}

func TestVideoSnippet_WithTitle(t *testing.T) {
	orig := model.VideoSnippet{
		VideoID:     "abc123",
		Title:       "old",
		Description: "keep me",
		Tags:        []string{"gym", "tondo"},
		CategoryID:  "17",
	}

	updated := orig.WithTitle("new")
	updated.Tags[0] = "changed"

	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "old", orig.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, "17", updated.CategoryID)
	assert.Equal(t, "gym", orig.Tags[0], "tags must be copied, not shared")
}

func TestCredential_String(t *testing.T) {
	assert.Equal(t, "<none>", model.Credential{}.String())
	assert.Equal(t, "<redacted>", model.Credential{Raw: `{"access_token":"secret"}`}.String())
}
