package transport

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophupload/internal/client/models"
	"github.com/dmitrijs2005/gophupload/internal/common"
	"github.com/dmitrijs2005/gophupload/internal/cryptox"
)

// S3Uploader writes objects with a direct PutObject call.
type S3Uploader struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

func NewS3Uploader(ctx context.Context, s Settings) (*S3Uploader, error) {
	client, err := newClient(ctx, s)
	if err != nil {
		return nil, err
	}
	return &S3Uploader{client: client, bucket: s.Bucket, now: time.Now}, nil
}

// Upload stores f under a fresh key and returns the key.
func (u *S3Uploader) Upload(ctx context.Context, f models.File, onProgress func(int64)) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %w", common.ErrTransport, f.Name(), err)
	}
	defer rc.Close()

	digest, err := cryptox.Digest(rc)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrTransport, err)
	}
	if _, err := rc.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("%w: rewind: %w", common.ErrTransport, err)
	}

	ct, err := contentType(f, rc)
	if err != nil {
		return "", fmt.Errorf("%w: detect content type: %w", common.ErrTransport, err)
	}

	key := StorageKey(f.Name(), u.now())

	// An unsigned payload lets the body stream straight to the wire so progress
	// tracks the transfer instead of a pre-signing hash pass.
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          newProgressReader(rc, onProgress),
		ContentLength: aws.Int64(f.Size()),
		ContentType:   aws.String(ct),
		Metadata:      map[string]string{common.DigestMetadataKey: digest},
	}, s3.WithAPIOptions(v4.SwapComputePayloadSHA256ForUnsignedPayloadMiddleware))
	if err != nil {
		return "", classify(ctx, err)
	}

	return key, nil
}
