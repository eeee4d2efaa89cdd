package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	OpenAI OpenAIConfig
	Audit  AuditConfig
	JWT    JWTConfig
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

// OpenAIConfig holds generative-model provider settings.
type OpenAIConfig struct {
	APIKey          string `mapstructure:"api_key"`
	BaseURL         string `mapstructure:"base_url"`
	ChatModel       string `mapstructure:"chat_model"`
	TranscribeModel string `mapstructure:"transcribe_model"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
	MaxRetries      int    `mapstructure:"max_retries"`
}

// AuditConfig holds raw-response audit persistence settings.
type AuditConfig struct {
	Backend   string `mapstructure:"backend"` // "fs" or "s3"
	Dir       string `mapstructure:"dir"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	QueueSize int    `mapstructure:"queue_size"`
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
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

// Load reads configuration from environment variables with the AITOOLS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AITOOLS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":3000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.chat_model", "gpt-4o-mini")
	v.SetDefault("openai.transcribe_model", "whisper-1")
	v.SetDefault("openai.timeout_secs", 60)
	v.SetDefault("openai.max_retries", 2)

	// Audit defaults
	v.SetDefault("audit.backend", "fs")
	v.SetDefault("audit.dir", "logs")
	v.SetDefault("audit.bucket", "ai-tools-audit")
	v.SetDefault("audit.region", "us-east-1")
	v.SetDefault("audit.endpoint", "")
	v.SetDefault("audit.queue_size", 64)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "24h")
	v.SetDefault("jwt.issuer", "ai-tools-api")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "AITOOLS_SERVER_PORT",
		"server.read_timeout":     "AITOOLS_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "AITOOLS_SERVER_WRITE_TIMEOUT",
		"server.environment":      "AITOOLS_SERVER_ENVIRONMENT",
		"openai.api_key":          "AITOOLS_OPENAI_API_KEY",
		"openai.base_url":         "AITOOLS_OPENAI_BASE_URL",
		"openai.chat_model":       "AITOOLS_OPENAI_CHAT_MODEL",
		"openai.transcribe_model": "AITOOLS_OPENAI_TRANSCRIBE_MODEL",
		"openai.timeout_secs":     "AITOOLS_OPENAI_TIMEOUT_SECS",
		"openai.max_retries":      "AITOOLS_OPENAI_MAX_RETRIES",
		"audit.backend":           "AITOOLS_AUDIT_BACKEND",
		"audit.dir":               "AITOOLS_AUDIT_DIR",
		"audit.bucket":            "AITOOLS_AUDIT_BUCKET",
		"audit.region":            "AITOOLS_AUDIT_REGION",
		"audit.endpoint":          "AITOOLS_AUDIT_ENDPOINT",
		"audit.access_key":        "AITOOLS_AUDIT_ACCESS_KEY",
		"audit.secret_key":        "AITOOLS_AUDIT_SECRET_KEY",
		"audit.queue_size":        "AITOOLS_AUDIT_QUEUE_SIZE",
		"jwt.secret":              "AITOOLS_JWT_SECRET",
		"jwt.access_expiry":       "AITOOLS_JWT_ACCESS_EXPIRY",
		"jwt.issuer":              "AITOOLS_JWT_ISSUER",
		"log.level":               "AITOOLS_LOG_LEVEL",
		"log.format":              "AITOOLS_LOG_FORMAT",
		"cors.allowed_origins":    "AITOOLS_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// Legacy OPENAI_API_KEY is honored when the prefixed variable is unset.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && os.Getenv("AITOOLS_OPENAI_API_KEY") == "" {
		v.Set("openai.api_key", key)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if AITOOLS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("AITOOLS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.OpenAI = OpenAIConfig{
		APIKey:          v.GetString("openai.api_key"),
		BaseURL:         v.GetString("openai.base_url"),
		ChatModel:       v.GetString("openai.chat_model"),
		TranscribeModel: v.GetString("openai.transcribe_model"),
		TimeoutSecs:     v.GetInt("openai.timeout_secs"),
		MaxRetries:      v.GetInt("openai.max_retries"),
	}
	cfg.Audit = AuditConfig{
		Backend:   v.GetString("audit.backend"),
		Dir:       v.GetString("audit.dir"),
		Bucket:    v.GetString("audit.bucket"),
		Region:    v.GetString("audit.region"),
		Endpoint:  v.GetString("audit.endpoint"),
		AccessKey: v.GetString("audit.access_key"),
		SecretKey: v.GetString("audit.secret_key"),
		QueueSize: v.GetInt("audit.queue_size"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required (set AITOOLS_OPENAI_API_KEY)")
	}

	return cfg, nil
}
