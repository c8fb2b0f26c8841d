package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/atsparse")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("EXTRACTOR_CMD", "/usr/local/bin/extract-resume")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-1.5-flash", cfg.GenModel)
	assert.Equal(t, "text-embedding-004", cfg.EmbedModel)
	assert.Equal(t, 20*time.Second, cfg.LLMTimeout)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Equal(t, ExtractorModeExternal, cfg.ExtractorMode)
	assert.Equal(t, "/usr/local/bin/extract-resume", cfg.ExtractorCmd)
	assert.Empty(t, cfg.ExtractorArgs)
	assert.Equal(t, 60*time.Second, cfg.ExtractorTimeout)
	assert.Equal(t, "us-east-2", cfg.AwsRegion)
}

func TestLoadConfig_ExtractorArgsSplitOnWhitespace(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EXTRACTOR_CMD", "python3")
	t.Setenv("EXTRACTOR_ARGS", "-u  resume_parser.py")

	cfg := LoadConfig()

	assert.Equal(t, []string{"-u", "resume_parser.py"}, cfg.ExtractorArgs)
}

func TestLoadConfig_NativeModeNeedsNoCommand(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EXTRACTOR_CMD", "")
	t.Setenv("EXTRACTOR_MODE", ExtractorModeNative)

	cfg := LoadConfig()

	assert.Equal(t, ExtractorModeNative, cfg.ExtractorMode)
	assert.Empty(t, cfg.ExtractorCmd)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_UPLOAD_MB", "10")
	t.Setenv("EXTRACTOR_TIMEOUT_SECONDS", "15")
	t.Setenv("LLM_TIMEOUT_SECONDS", "30")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 15*time.Second, cfg.ExtractorTimeout)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
}

func TestLoadConfig_BadIntFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAX_UPLOAD_MB", "lots")

	cfg := LoadConfig()

	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
}

func TestArchiveEnabled(t *testing.T) {
	setRequiredEnv(t)

	cfg := LoadConfig()
	require.False(t, cfg.ArchiveEnabled())

	t.Setenv("AWS_ACCESS_KEY", "AKIA...")
	t.Setenv("AWS_SECRET_KEY", "secret")
	t.Setenv("BUCKET_NAME", "resume-archive")

	cfg = LoadConfig()
	assert.True(t, cfg.ArchiveEnabled())
}
