package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophupload/internal/flagx"
	"github.com/dmitrijs2005/gophupload/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// tell an absent key apart from a zero value.
type JsonConfig struct {
	Mode          *string         `json:"mode"`
	S3Endpoint    *string         `json:"s3_endpoint"`
	S3Region      *string         `json:"s3_region"`
	S3Bucket      *string         `json:"s3_bucket"`
	S3AccessKey   *string         `json:"s3_access_key"`
	S3SecretKey   *string         `json:"s3_secret_key"`
	S3MaxAttempts *int            `json:"s3_max_attempts"`
	PresignExpiry *timex.Duration `json:"presign_expiry"`
	MaxWidth      *int            `json:"max_width"`
	MaxHeight     *int            `json:"max_height"`
	Quality       *int            `json:"quality"`
	LogLevel      *string         `json:"log_level"`
	LogFormat     *string         `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c or -config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set(&cfg.Mode, jc.Mode)
	set(&cfg.S3Endpoint, jc.S3Endpoint)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3Bucket, jc.S3Bucket)
	set(&cfg.S3AccessKey, jc.S3AccessKey)
	set(&cfg.S3SecretKey, jc.S3SecretKey)
	set(&cfg.S3MaxAttempts, jc.S3MaxAttempts)
	if jc.PresignExpiry != nil {
		cfg.PresignExpiry = jc.PresignExpiry.Duration
	}
	set(&cfg.MaxWidth, jc.MaxWidth)
	set(&cfg.MaxHeight, jc.MaxHeight)
	set(&cfg.Quality, jc.Quality)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFormat, jc.LogFormat)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
