package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile names the entry point a configuration is validated for.
type Profile string

const (
	ProfileAPI    Profile = "api"
	ProfileWorker Profile = "worker"
)

// Config holds all application configuration
type Config struct {
	Environment string
	LogLevel    string
	Port        string

	// AWS
	AWSRegion          string
	TableName          string
	GSI1IndexName      string // status projection
	GSI2IndexName      string // owner projection
	BucketName         string
	ProcessingQueueURL string
	DeadLetterQueueURL string
	UserPoolID         string
	UserPoolClientID   string
	TextractRegion     string
	EventBusName       string

	Upload UploadConfig `yaml:"upload"`
	AI     AIConfig     `yaml:"ai"`

	// Auth route throttling; a zero limit disables it
	AuthRateLimit  int
	AuthRateWindow time.Duration

	EnableMetrics    bool
	MetricsNamespace string
	EnableTracing    bool
}

// UploadConfig limits direct uploads.
type UploadConfig struct {
	MaxFileSize            int64    `yaml:"max_file_size"`
	AllowedFileTypes       []string `yaml:"allowed_file_types"`
	PresignedURLExpiration int      `yaml:"presigned_url_expiration"` // seconds
}

// AIConfig configures the grading providers.
type AIConfig struct {
	AnthropicAPIKey string        `yaml:"-"`
	OpenAIAPIKey    string        `yaml:"-"`
	ClaudeModel     string        `yaml:"claude_model"`
	OpenAIModel     string        `yaml:"openai_model"`
	AnthropicURL    string        `yaml:"anthropic_url"`
	OpenAIURL       string        `yaml:"openai_url"`
	MaxTokens       int           `yaml:"max_tokens"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
}

// DefaultAllowedFileTypes are the content types accepted for uploads.
var DefaultAllowedFileTypes = []string{
	"image/jpeg",
	"image/png",
	"image/jpg",
	"application/pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func defaults() *Config {
	return &Config{
		Upload: UploadConfig{
			MaxFileSize:            10 * 1024 * 1024,
			AllowedFileTypes:       DefaultAllowedFileTypes,
			PresignedURLExpiration: 300,
		},
		AI: AIConfig{
			ClaudeModel:    "claude-3-5-haiku-20241022",
			OpenAIModel:    "gpt-4o",
			AnthropicURL:   "https://api.anthropic.com/v1/messages",
			OpenAIURL:      "https://api.openai.com/v1/chat/completions",
			MaxTokens:      4096,
			RequestTimeout: 120 * time.Second,
		},
	}
}

// LoadConfig loads configuration from an optional YAML file named by
// CONFIG_FILE and then from environment variables, which take precedence.
func LoadConfig() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Environment = getEnv("ENVIRONMENT", "development")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.Port = getEnv("PORT", "8080")

	cfg.AWSRegion = getEnv("AWS_REGION", "sa-east-1")
	cfg.TableName = getEnv("MAIN_TABLE_NAME", "")
	cfg.GSI1IndexName = getEnv("GSI1_INDEX_NAME", "GSI1")
	cfg.GSI2IndexName = getEnv("GSI2_INDEX_NAME", "GSI2")
	cfg.BucketName = getEnv("ESSAYS_BUCKET_NAME", "")
	cfg.ProcessingQueueURL = getEnv("ESSAY_PROCESSING_QUEUE_URL", "")
	cfg.DeadLetterQueueURL = getEnv("ESSAY_DLQ_URL", "")
	cfg.UserPoolID = getEnv("USER_POOL_ID", "")
	cfg.UserPoolClientID = getEnv("USER_POOL_CLIENT_ID", "")
	cfg.TextractRegion = getEnv("TEXTRACT_REGION", cfg.AWSRegion)
	cfg.EventBusName = getEnv("EVENT_BUS_NAME", "")

	cfg.Upload.MaxFileSize = int64(getEnvInt("MAX_FILE_SIZE", int(cfg.Upload.MaxFileSize)))
	cfg.Upload.AllowedFileTypes = getEnvList("ALLOWED_FILE_TYPES", cfg.Upload.AllowedFileTypes)
	cfg.Upload.PresignedURLExpiration = getEnvInt("PRESIGNED_URL_EXPIRATION", cfg.Upload.PresignedURLExpiration)

	cfg.AI.AnthropicAPIKey = getEnv("ANTHROPIC_API_KEY", "")
	cfg.AI.OpenAIAPIKey = getEnv("OPENAI_API_KEY", "")
	cfg.AI.ClaudeModel = getEnv("CLAUDE_MODEL", cfg.AI.ClaudeModel)
	cfg.AI.OpenAIModel = getEnv("OPENAI_MODEL", cfg.AI.OpenAIModel)
	cfg.AI.MaxTokens = getEnvInt("AI_MAX_TOKENS", cfg.AI.MaxTokens)
	cfg.AI.RequestTimeout = getEnvDuration("AI_REQUEST_TIMEOUT", cfg.AI.RequestTimeout)

	cfg.AuthRateLimit = getEnvInt("AUTH_RATE_LIMIT", 20)
	cfg.AuthRateWindow = getEnvDuration("AUTH_RATE_WINDOW", time.Minute)

	cfg.EnableMetrics = getEnvBool("ENABLE_METRICS", false)
	cfg.MetricsNamespace = getEnv("METRICS_NAMESPACE", "EssayBackend")
	cfg.EnableTracing = getEnvBool("ENABLE_TRACING", false)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var file struct {
		Upload *UploadConfig `yaml:"upload"`
		AI     *AIConfig     `yaml:"ai"`
	}
	file.Upload = &c.Upload
	file.AI = &c.AI
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate checks the settings every entry point needs.
func (c *Config) Validate() error {
	if c.TableName == "" {
		return fmt.Errorf("MAIN_TABLE_NAME is required")
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	if c.Upload.PresignedURLExpiration <= 0 {
		return fmt.Errorf("PRESIGNED_URL_EXPIRATION must be positive")
	}
	return nil
}

// ValidateFor checks the settings a specific entry point needs.
func (c *Config) ValidateFor(p Profile) error {
	if err := c.Validate(); err != nil {
		return err
	}

	var missing []string
	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	switch p {
	case ProfileAPI:
		require("ESSAYS_BUCKET_NAME", c.BucketName)
		require("ESSAY_PROCESSING_QUEUE_URL", c.ProcessingQueueURL)
		require("USER_POOL_ID", c.UserPoolID)
		require("USER_POOL_CLIENT_ID", c.UserPoolClientID)
	case ProfileWorker:
		require("ESSAYS_BUCKET_NAME", c.BucketName)
		if c.AI.AnthropicAPIKey == "" && c.AI.OpenAIAPIKey == "" {
			missing = append(missing, "ANTHROPIC_API_KEY or OPENAI_API_KEY")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// PresignExpiry returns the presigned URL lifetime
func (c *Config) PresignExpiry() time.Duration {
	return time.Duration(c.Upload.PresignedURLExpiration) * time.Second
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
