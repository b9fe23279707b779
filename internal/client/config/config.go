package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophupload/internal/common"
	"github.com/dmitrijs2005/gophupload/internal/logging"
)

const (
	ModeS3        = "s3"
	ModePresigned = "presigned"
)

// Config holds runtime settings for the gophupload CLI.
type Config struct {
	Mode string

	S3Endpoint    string
	S3Region      string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string
	// S3MaxAttempts caps attempts per storage request, retries included.
	S3MaxAttempts int

	PresignExpiry time.Duration

	MaxWidth  int
	MaxHeight int
	Quality   int

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with settings for a local MinIO.
func (c *Config) LoadDefaults() {
	c.Mode = ModeS3
	c.S3Endpoint = "http://127.0.0.1:9000"
	c.S3Region = "us-east-1"
	c.S3Bucket = "gophupload"
	c.S3AccessKey = "minioadmin"
	c.S3SecretKey = "minioadmin"
	c.S3MaxAttempts = 3
	c.PresignExpiry = 15 * time.Minute
	c.MaxWidth = 1000
	c.MaxHeight = 1000
	c.Quality = 80
	c.LogLevel = "info"
	c.LogFormat = "text"
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModeS3, ModePresigned:
	default:
		return fmt.Errorf("%w: unknown mode %q", common.ErrInvalidConfig, c.Mode)
	}
	if c.S3Bucket == "" {
		return fmt.Errorf("%w: bucket is required", common.ErrInvalidConfig)
	}
	if c.S3MaxAttempts < 1 || c.S3MaxAttempts > 10 {
		return fmt.Errorf("%w: max attempts %d not in 1..10", common.ErrInvalidConfig, c.S3MaxAttempts)
	}
	if c.PresignExpiry <= 0 || c.PresignExpiry > 7*24*time.Hour {
		return fmt.Errorf("%w: presign expiry %v out of range", common.ErrInvalidConfig, c.PresignExpiry)
	}
	if c.MaxWidth <= 0 || c.MaxHeight <= 0 {
		return fmt.Errorf("%w: max size must be positive", common.ErrInvalidConfig)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("%w: quality %d not in 1..100", common.ErrInvalidConfig, c.Quality)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: unknown log format %q", common.ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// LoadConfig applies defaults, then JSON (if -c/-config is given), then flags.
// Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
