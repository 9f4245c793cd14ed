package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrNoDatabaseURL is returned when neither RAG_DATABASE_URL nor AIVEN_POSTGRES_SERVICE_URI is set.
var ErrNoDatabaseURL = errors.New("RAG_DATABASE_URL (or AIVEN_POSTGRES_SERVICE_URI) is required")

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	// ServiceURI is the connection string variable used by the original workshop scripts.
	ServiceURI string `envconfig:"AIVEN_POSTGRES_SERVICE_URI"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"1"`

	EmbeddingBaseURL    string `envconfig:"EMBEDDING_BASE_URL" default:"http://localhost:11434/v1"`
	EmbeddingAPIKey     string `envconfig:"EMBEDDING_API_KEY"`
	EmbeddingModel      string `envconfig:"EMBEDDING_MODEL" default:"nomic-embed-text"`
	EmbeddingDimensions int    `envconfig:"EMBEDDING_DIMENSIONS" default:"768"`

	LLMBaseURL string `envconfig:"LLM_BASE_URL" default:"http://localhost:11434/v1"`
	LLMAPIKey  string `envconfig:"LLM_API_KEY"`
	LLMModel   string `envconfig:"LLM_MODEL" default:"llama3.2"`

	ChunkSize    int `envconfig:"CHUNK_SIZE" default:"300"`
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP" default:"20"`

	// Show metadata stamped on every ingested transcription.
	ShowName    string `envconfig:"SHOW_NAME" default:"Conduit"`
	NetworkName string `envconfig:"NETWORK_NAME" default:"Relay"`
	NetworkURL  string `envconfig:"NETWORK_URL" default:"https://relay.fm"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("RAG", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = cfg.ServiceURI
	}
	if cfg.DatabaseURL == "" {
		return nil, ErrNoDatabaseURL
	}

	return &cfg, nil
}

func (c *Config) HasS3() bool {
	return c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasSentry() bool {
	return c.SentryDSN != ""
}
