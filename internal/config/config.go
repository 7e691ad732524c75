package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is loaded once at startup
// and passed explicitly to constructors.
type Config struct {
	Server ServerConfig
	OCR    OCRConfig
	LLM    LLMConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// OCRConfig holds Mistral OCR backend settings.
type OCRConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// LLMConfig holds OpenAI backend settings for summarization and extraction.
type LLMConfig struct {
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	Endpoint      string `mapstructure:"endpoint"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	SummaryPrompt string `mapstructure:"summary_prompt"`
}

// S3Config holds object storage settings. All three of endpoint, access key
// and secret key must be set for the S3 refinement route to be available.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Configured reports whether object storage credentials are present.
func (s *S3Config) Configured() bool {
	return s.AccessKey != "" && s.SecretKey != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the REFINERY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REFINERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// OCR defaults
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.model", "mistral-ocr-latest")
	v.SetDefault("ocr.endpoint", "https://api.mistral.ai")
	v.SetDefault("ocr.timeout_secs", 120)

	// LLM defaults
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.endpoint", "https://api.openai.com")
	v.SetDefault("llm.timeout_secs", 120)
	v.SetDefault("llm.summary_prompt", "")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	// 5 minutes: long enough for the OCR backend to fetch the object.
	v.SetDefault("s3.presign_expiry", 300)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "REFINERY_SERVER_PORT",
		"server.read_timeout":  "REFINERY_SERVER_READ_TIMEOUT",
		"server.write_timeout": "REFINERY_SERVER_WRITE_TIMEOUT",
		"server.environment":   "REFINERY_SERVER_ENVIRONMENT",
		"ocr.api_key":          "REFINERY_OCR_API_KEY",
		"ocr.model":            "REFINERY_OCR_MODEL",
		"ocr.endpoint":         "REFINERY_OCR_ENDPOINT",
		"ocr.timeout_secs":     "REFINERY_OCR_TIMEOUT_SECS",
		"llm.api_key":          "REFINERY_LLM_API_KEY",
		"llm.model":            "REFINERY_LLM_MODEL",
		"llm.endpoint":         "REFINERY_LLM_ENDPOINT",
		"llm.timeout_secs":     "REFINERY_LLM_TIMEOUT_SECS",
		"llm.summary_prompt":   "REFINERY_LLM_SUMMARY_PROMPT",
		"s3.region":            "REFINERY_S3_REGION",
		"s3.endpoint":          "REFINERY_S3_ENDPOINT",
		"s3.access_key":        "REFINERY_S3_ACCESS_KEY",
		"s3.secret_key":        "REFINERY_S3_SECRET_KEY",
		"s3.presign_expiry":    "REFINERY_S3_PRESIGN_EXPIRY",
		"log.level":            "REFINERY_LOG_LEVEL",
		"log.format":           "REFINERY_LOG_FORMAT",
		"cors.allowed_origins": "REFINERY_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if REFINERY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("REFINERY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.OCR = OCRConfig{
		APIKey:      v.GetString("ocr.api_key"),
		Model:       v.GetString("ocr.model"),
		Endpoint:    strings.TrimRight(v.GetString("ocr.endpoint"), "/"),
		TimeoutSecs: v.GetInt("ocr.timeout_secs"),
	}
	cfg.LLM = LLMConfig{
		APIKey:        v.GetString("llm.api_key"),
		Model:         v.GetString("llm.model"),
		Endpoint:      strings.TrimRight(v.GetString("llm.endpoint"), "/"),
		TimeoutSecs:   v.GetInt("llm.timeout_secs"),
		SummaryPrompt: v.GetString("llm.summary_prompt"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitAndTrim(v.GetString("cors.allowed_origins")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.OCR.APIKey == "" {
		return fmt.Errorf("REFINERY_OCR_API_KEY is required")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("REFINERY_LLM_API_KEY is required")
	}
	return nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
