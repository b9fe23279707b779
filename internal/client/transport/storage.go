package transport

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophupload/internal/client/models"
	"github.com/dmitrijs2005/gophupload/internal/common"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Settings describe the bucket and how to reach it.
type Settings struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PresignExpiry bounds presigned PUT and GET URLs.
	PresignExpiry time.Duration
	// MaxAttempts caps SDK retries. Zero keeps the SDK default.
	MaxAttempts int
}

const DefaultPresignExpiry = 15 * time.Minute

func (s Settings) expiry() time.Duration {
	if s.PresignExpiry <= 0 {
		return DefaultPresignExpiry
	}
	return s.PresignExpiry
}

func newClient(ctx context.Context, s Settings) (*s3.Client, error) {
	if s.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", common.ErrInvalidConfig)
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.AccessKey,
			s.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
			// MinIO and friends serve buckets under the path.
			o.UsePathStyle = true
		}
		if s.MaxAttempts > 0 {
			o.RetryMaxAttempts = s.MaxAttempts
		}
		// Trailing checksums would make the SDK read the body ahead of the wire.
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	}), nil
}

// StorageKey builds a unique object key for name, partitioned by day.
func StorageKey(name string, now time.Time) string {
	return fmt.Sprintf("%s/%d/%d/%d/%v-%s", common.StorageKeyPrefix,
		now.Year(), now.Month(), now.Day(), uuid.New(), sanitize(name))
}

func sanitize(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return strings.ReplaceAll(name, " ", "_")
}

// contentType prefers what the file knows about itself and sniffs otherwise.
// The reader is rewound before returning.
func contentType(f models.File, r io.ReadSeeker) (string, error) {
	if ct, ok := f.(models.ContentTyper); ok && ct.ContentType() != "" {
		return ct.ContentType(), nil
	}
	m, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if m == nil || m.String() == "" {
		return common.DefaultContentType, nil
	}
	return m.String(), nil
}
