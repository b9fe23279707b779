package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gophupload/internal/flagx"
)

var settingFlags = []string{
	"-m", "-e", "-r", "-b", "-k", "-s", "-x", "-max-attempts",
	"-max-width", "-max-height", "-quality", "-log-level", "-log-format",
}

// ValuedFlags lists every flag that consumes the following argument,
// including the config file switches. Anything else is a positional argument.
var ValuedFlags = append(append([]string(nil), settingFlags...), "-c", "-config")

// parseFlags populates Config fields from command-line flags.
//
// args is filtered with flagx.FilterArgs so positional file names and the
// config file switches do not reach the flag set.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, settingFlags)

	fs := flag.NewFlagSet("gophupload", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Mode, "m", cfg.Mode, "transport mode: s3 or presigned")
	fs.StringVar(&cfg.S3Endpoint, "e", cfg.S3Endpoint, "S3-compatible endpoint URL")
	fs.StringVar(&cfg.S3Region, "r", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "bucket name")
	fs.StringVar(&cfg.S3AccessKey, "k", cfg.S3AccessKey, "access key")
	fs.StringVar(&cfg.S3SecretKey, "s", cfg.S3SecretKey, "secret key")
	fs.IntVar(&cfg.S3MaxAttempts, "max-attempts", cfg.S3MaxAttempts, "attempts per storage request")
	expiry := fs.Int("x", int(cfg.PresignExpiry.Seconds()), "presigned URL lifetime (in seconds)")
	fs.IntVar(&cfg.MaxWidth, "max-width", cfg.MaxWidth, "max image width after compression")
	fs.IntVar(&cfg.MaxHeight, "max-height", cfg.MaxHeight, "max image height after compression")
	fs.IntVar(&cfg.Quality, "quality", cfg.Quality, "JPEG quality")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.PresignExpiry = time.Duration(*expiry) * time.Second
	return nil
}
