package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	conf, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelInfo, conf.Logger.Level)
	assert.Equal(t, "file", conf.Storage.Kind)
	assert.Equal(t, ".projector/state.yaml", conf.Storage.File.Path)
	assert.Equal(t, "localhost:6379", conf.Storage.Redis.Addr)
	assert.Equal(t, ".", conf.Templates.OutputDir)
	assert.Empty(t, conf.Surface.Kind)
	assert.Equal(t, "Projector", conf.Surface.Title)
	assert.Equal(t, 7, conf.Prompt.PageSize)
	assert.Equal(t, "==", conf.Prompt.HeadingPrefix)
	assert.True(t, conf.Templates.Validate)
	assert.False(t, conf.Templates.ExternalRefs)
}

func TestParse_Environment(t *testing.T) {
	t.Setenv("PROJECTOR_LOGGER_LEVEL", "debug")
	t.Setenv("PROJECTOR_STORAGE_KIND", "redis")
	t.Setenv("PROJECTOR_STORAGE_REDIS_DB", "3")
	t.Setenv("PROJECTOR_TEMPLATES_OPERATION", "createPet")
	t.Setenv("PROJECTOR_TEMPLATES_EXTERNAL_REFS", "true")
	t.Setenv("PROJECTOR_THEME_DIR", "$HOME/themes")
	t.Setenv("HOME", "/home/ada")
	t.Setenv("PROJECTOR_PROMPT_PAGE_SIZE", "12")

	conf, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, conf.Logger.Level)
	assert.Equal(t, "redis", conf.Storage.Kind)
	assert.Equal(t, 3, conf.Storage.Redis.DB)
	assert.Equal(t, "createPet", conf.Templates.Operation)
	assert.True(t, conf.Templates.ExternalRefs)
	assert.Equal(t, "/home/ada/themes", conf.Theme.Dir)
	assert.Equal(t, 12, conf.Prompt.PageSize)
}

func TestParse_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PROJECTOR_SURFACE_KIND=prompt\nPROJECTOR_THEME_VARIANT=dark\n"), 0o600))
	t.Setenv("PROJECTOR_THEME_VARIANT", "light")
	t.Cleanup(func() { _ = os.Unsetenv("PROJECTOR_SURFACE_KIND") })

	conf, err := Parse(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "prompt", conf.Surface.Kind)
	assert.Equal(t, "light", conf.Theme.Variant)
}

func TestParse_InvalidValue(t *testing.T) {
	t.Setenv("PROJECTOR_STORAGE_REDIS_DB", "three")

	_, err := Parse()
	assert.Error(t, err)
}
