package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all run settings, populated from environment variables.
type Config struct {
	RawDir       string
	ProcessedDir string

	S3Bucket           string
	S3KeyPrefix        string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	PublishTimeout     time.Duration

	FileLimit int

	LogLevel  string
	LogFormat string
	LogFile   string

	PushgatewayURL string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
//
// Storage settings are deliberately not validated here: a missing bucket or
// missing credentials must fail the publish step of each file, not the whole
// run at startup.
func Load() (*Config, error) {
	fileLimit, err := parseFileLimit()
	if err != nil {
		return nil, err
	}

	publishTimeout, err := parsePublishTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RawDir:       envOrDefault("RAW_DATA_DIR", "data/raw/2025"),
		ProcessedDir: envOrDefault("PROCESSED_DATA_DIR", "data/processed/2025"),

		S3Bucket:           os.Getenv("S3_BUCKET_NAME"),
		S3KeyPrefix:        envOrDefault("S3_KEY_PREFIX", "processed/2025"),
		AWSRegion:          envOrDefault("AWS_REGION", "eu-north-1"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		PublishTimeout:     publishTimeout,

		FileLimit: fileLimit,

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),
		LogFile:   envOrDefault("LOG_FILE", "logs/gsod_processing.log"),

		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseFileLimit reads the per-run file cap. Zero disables the cap.
func parseFileLimit() (int, error) {
	s := envOrDefault("FILE_LIMIT", "400")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid FILE_LIMIT %q", s)
	}
	return n, nil
}

func parsePublishTimeout() (time.Duration, error) {
	s := envOrDefault("PUBLISH_TIMEOUT", "2m")
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid PUBLISH_TIMEOUT %q", s)
	}
	return d, nil
}
