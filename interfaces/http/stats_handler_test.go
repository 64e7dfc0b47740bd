package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"video-stats-updater/domain/model"
)

type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Run(ctx context.Context, snapshot model.StatSnapshot) model.UpdateOutcome {
	args := m.Called(ctx, snapshot)
	return args.Get(0).(model.UpdateOutcome)
}

func newStatsRouter(p *MockPipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewStatsHandler(p)
	r.POST("/", h.UpdateStats)
	return r
}

func post(r *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestUpdateStats_Accepted(t *testing.T) {
	p := new(MockPipeline)
	want := model.StatSnapshot{
		VideoID:    "abc123",
		Views:      1_234_567,
		Likes:      45_200,
		Comments:   980,
		Credential: model.Credential{Raw: "ya29.token"},
	}
	p.On("Run", mock.Anything, want).Return(model.UpdateOutcome{
		RunID:     "run-1",
		VideoID:   "abc123",
		State:     model.StateDone,
		Title:     model.StageResult{Stage: model.StageTitle, OK: true},
		Thumbnail: model.StageResult{Stage: model.StageThumbnail, OK: true},
	}).Once()

	rec := post(newStatsRouter(p),
		`{"video_id":"abc123","views":"1234567","likes":45200,"comments":980}`,
		map[string]string{CredentialHeader: "ya29.token"})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["error"])
	assert.Equal(t, "done", body["data"].(map[string]interface{})["state"])
	p.AssertExpectations(t)
}

func TestUpdateStats_FallbackHeaderAndCamelCase(t *testing.T) {
	p := new(MockPipeline)
	p.On("Run", mock.Anything, mock.MatchedBy(func(s model.StatSnapshot) bool {
		return s.VideoID == "xyz" && s.Credential.Raw == "tok"
	})).Return(model.UpdateOutcome{State: model.StateFailed, FailedStages: []model.Stage{model.StageTitle}}).Once()

	rec := post(newStatsRouter(p),
		`{"videoId":"xyz","views":1,"likes":2,"comments":3}`,
		map[string]string{"X-Google-Credential": "tok"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], "title")
	p.AssertExpectations(t)
}

func TestUpdateStats_Rejected(t *testing.T) {
	auth := map[string]string{CredentialHeader: "ya29.token"}
	tests := []struct {
		name    string
		body    string
		headers map[string]string
	}{
		{"malformed json", `{"video_id":`, auth},
		{"missing video id", `{"views":1,"likes":2,"comments":3}`, auth},
		{"missing count", `{"video_id":"abc","views":1,"likes":2}`, auth},
		{"negative count", `{"video_id":"abc","views":-1,"likes":2,"comments":3}`, auth},
		{"non numeric count", `{"video_id":"abc","views":"many","likes":2,"comments":3}`, auth},
		{"fractional count", `{"video_id":"abc","views":1.5,"likes":2,"comments":3}`, auth},
		{"missing credential", `{"video_id":"abc","views":1,"likes":2,"comments":3}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := new(MockPipeline)
			rec := post(newStatsRouter(p), tt.body, tt.headers)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, true, body["error"])
			assert.NotEmpty(t, body["message"])
			p.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHealthHandler(nil)
	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
