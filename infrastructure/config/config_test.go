package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"CONFIG_FILE", "ENVIRONMENT", "AWS_REGION", "TEXTRACT_REGION", "MAX_FILE_SIZE",
		"ALLOWED_FILE_TYPES", "PRESIGNED_URL_EXPIRATION", "CLAUDE_MODEL", "OPENAI_MODEL",
		"AI_MAX_TOKENS", "AI_REQUEST_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAIN_TABLE_NAME", "essays-main")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sa-east-1", cfg.AWSRegion)
	assert.Equal(t, "sa-east-1", cfg.TextractRegion)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, DefaultAllowedFileTypes, cfg.Upload.AllowedFileTypes)
	assert.Equal(t, 300*time.Second, cfg.PresignExpiry())
	assert.Equal(t, "claude-3-5-haiku-20241022", cfg.AI.ClaudeModel)
	assert.Equal(t, 4096, cfg.AI.MaxTokens)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfigRequiresTable(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAIN_TABLE_NAME", "")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "MAIN_TABLE_NAME")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAIN_TABLE_NAME", "t")
	t.Setenv("ALLOWED_FILE_TYPES", "application/pdf, image/png")
	t.Setenv("MAX_FILE_SIZE", "2048")
	t.Setenv("AI_REQUEST_TIMEOUT", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"application/pdf", "image/png"}, cfg.Upload.AllowedFileTypes)
	assert.Equal(t, int64(2048), cfg.Upload.MaxFileSize)
	assert.Equal(t, 30*time.Second, cfg.AI.RequestTimeout)
}

func TestLoadConfigFileOverlay(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
upload:
  presigned_url_expiration: 600
ai:
  openai_model: gpt-4o-mini
  max_tokens: 2048
`), 0o600))

	t.Setenv("MAIN_TABLE_NAME", "t")
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("AI_MAX_TOKENS", "1024")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 600, cfg.Upload.PresignedURLExpiration)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.OpenAIModel)
	assert.Equal(t, 1024, cfg.AI.MaxTokens, "env wins over file")
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize, "unset file keys keep defaults")
}

func TestValidateFor(t *testing.T) {
	cfg := defaults()
	cfg.TableName = "t"

	err := cfg.ValidateFor(ProfileAPI)
	assert.ErrorContains(t, err, "ESSAYS_BUCKET_NAME")
	assert.ErrorContains(t, err, "USER_POOL_ID")

	cfg.BucketName = "b"
	err = cfg.ValidateFor(ProfileWorker)
	assert.ErrorContains(t, err, "ANTHROPIC_API_KEY or OPENAI_API_KEY")

	cfg.AI.OpenAIAPIKey = "sk"
	assert.NoError(t, cfg.ValidateFor(ProfileWorker))
}
