// Package config loads runtime configuration for the gophupload CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-m string          transport mode: s3 or presigned
//	-e string          S3-compatible endpoint URL
//	-r string          S3 region
//	-b string          bucket name
//	-k string          access key
//	-s string          secret key
//	-x int             presigned URL lifetime (seconds)
//	-max-attempts int  attempts per storage request, 1..10
//	-max-width int     compression bounding box width
//	-max-height int    compression bounding box height
//	-quality int       JPEG quality, 1..100
//	-log-level string  debug, info, warn or error
//	-log-format string text or json
//
// # JSON schema
//
// Durations go through timex.Duration, so they may be strings like "15m" or
// integer nanoseconds. Absent keys keep their default:
//
//	{
//	  "mode": "s3",
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "s3_region": "us-east-1",
//	  "s3_bucket": "gophupload",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin",
//	  "s3_max_attempts": 3,
//	  "presign_expiry": "15m",
//	  "max_width": 1000,
//	  "max_height": 1000,
//	  "quality": 80,
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
