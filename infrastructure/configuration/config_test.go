package configuration

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-stats-updater/infrastructure/render"
)

func TestGetConfigValue(t *testing.T) {
	t.Setenv("VSU_TEST_KEY", "")
	assert.Equal(t, "fallback", getConfigValue("", "VSU_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getConfigValue("YOUR_CLIENT_ID", "VSU_TEST_KEY", "fallback"))
	assert.Equal(t, "from-config", getConfigValue("from-config", "VSU_TEST_KEY", "fallback"))

	t.Setenv("VSU_TEST_KEY", "from-env")
	assert.Equal(t, "from-env", getConfigValue("from-config", "VSU_TEST_KEY", "fallback"))
}

func TestInitApp_Port(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	var c Config
	initApp(&c)
	assert.Equal(t, 2003, c.App.Port)

	t.Setenv("PORT", "8081")
	c = Config{}
	initApp(&c)
	assert.Equal(t, 8081, c.App.Port)

	t.Setenv("APP_PORT", "9090")
	c = Config{}
	initApp(&c)
	assert.Equal(t, 9090, c.App.Port)
}

func TestInitRender_Defaults(t *testing.T) {
	t.Setenv("RENDER_BACKGROUND_PATH", "")
	t.Setenv("TITLE_PREFIX", "")
	var c Config
	initRender(&c)
	assert.Equal(t, "assets/background.png", c.Render.BackgroundPath)
	assert.Equal(t, "This video has", c.Title.Prefix)
	assert.Equal(t, 3600, c.Render.CacheTTLSeconds)

	t.Setenv("TITLE_PREFIX", "Right now this video has")
	initRender(&c)
	assert.Equal(t, "Right now this video has", c.Title.Prefix)
}

func TestRenderStyle_DefaultsWhenUnset(t *testing.T) {
	s, err := Config{}.RenderStyle()
	require.NoError(t, err)
	assert.Equal(t, render.DefaultRenderStyle(), s)
}

func TestRenderStyle_Overrides(t *testing.T) {
	off := false
	c := Config{Render: Render{Style: Style{
		EmphasisColor:  "#00FF00",
		Outline:        &off,
		LabelSize:      0.2,
		ViewsThreshold: 10_000,
		Captions:       []string{"", "THUMBS"},
	}}}

	s, err := c.RenderStyle()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 0xFF, A: 0xFF}, s.EmphasisColor)
	assert.False(t, s.Outline)
	assert.Equal(t, 0.2, s.LabelSize)
	assert.Equal(t, int64(10_000), s.Views.Threshold)
	assert.Equal(t, "VIEWS", s.Views.Caption)
	assert.Equal(t, "THUMBS", s.Likes.Caption)
}

func TestRenderStyle_BadColor(t *testing.T) {
	c := Config{Render: Render{Style: Style{CaptionColor: "white"}}}
	_, err := c.RenderStyle()
	assert.Error(t, err)
}

func TestLoadEnvFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.env")
	content := "# comment\nVSU_ENV_A=one\nVSU_ENV_B=\"two\"\n\nVSU_ENV_KEEP=file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("VSU_ENV_KEEP", "process")
	t.Cleanup(func() {
		os.Unsetenv("VSU_ENV_A")
		os.Unsetenv("VSU_ENV_B")
	})

	LoadEnvFromFile(filepath.Join(t.TempDir(), "missing.env"), path)
	assert.Equal(t, "one", os.Getenv("VSU_ENV_A"))
	assert.Equal(t, "two", os.Getenv("VSU_ENV_B"))
	assert.Equal(t, "process", os.Getenv("VSU_ENV_KEEP"))
}

func TestLoadEnvFromFile_ExportAndQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "export VSU_ENV_EXPORT=yes\nVSU_ENV_SINGLE='a b'\nnot a pair\n=novalue\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("VSU_ENV_EXPORT")
		os.Unsetenv("VSU_ENV_SINGLE")
	})

	assert.Equal(t, 2, LoadEnvFromFile(path))
	assert.Equal(t, "yes", os.Getenv("VSU_ENV_EXPORT"))
	assert.Equal(t, "a b", os.Getenv("VSU_ENV_SINGLE"))
}

func TestLoad_EnvFileValuesReachConfig(t *testing.T) {
	saved, savedFiles := C, EnvFiles
	t.Cleanup(func() { C, EnvFiles = saved, savedFiles })

	// restored to the process value (or unset) after the test
	t.Setenv("TITLE_PREFIX", "")
	t.Setenv("REDIS_HOST", "")
	require.NoError(t, os.Unsetenv("TITLE_PREFIX"))
	require.NoError(t, os.Unsetenv("REDIS_HOST"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TITLE_PREFIX=\"Right now\"\nREDIS_HOST=cache.internal\n"), 0o644))
	EnvFiles = []string{path}

	Load()
	assert.Equal(t, "Right now", C.Title.Prefix)
	assert.Equal(t, "cache.internal", C.RedisClient.Host)
}
