package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophupload/internal/client/models"
	"github.com/dmitrijs2005/gophupload/internal/common"
	"github.com/dmitrijs2005/gophupload/internal/netx"
)

// PresignedUploader presigns a PUT for every upload and streams the payload
// over plain HTTP.
type PresignedUploader struct {
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
	http    *http.Client
	now     func() time.Time
}

func NewPresignedUploader(ctx context.Context, s Settings, httpClient *http.Client) (*PresignedUploader, error) {
	client, err := newClient(ctx, s)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PresignedUploader{
		presign: newS3PresignClient(client),
		bucket:  s.Bucket,
		expiry:  s.expiry(),
		http:    httpClient,
		now:     time.Now,
	}, nil
}

func (u *PresignedUploader) Upload(ctx context.Context, f models.File, onProgress func(int64)) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %w", common.ErrTransport, f.Name(), err)
	}
	defer rc.Close()

	ct, err := contentType(f, rc)
	if err != nil {
		return "", fmt.Errorf("%w: detect content type: %w", common.ErrTransport, err)
	}

	key := StorageKey(f.Name(), u.now())

	req, err := presignPutObject(u.presign, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(ct),
	}, s3.WithPresignExpires(u.expiry))
	if err != nil {
		return "", classify(ctx, fmt.Errorf("presign put: %w", err))
	}

	err = netx.Put(ctx, u.http, req.URL, newProgressReader(rc, onProgress), f.Size(), ct)
	if err != nil {
		return "", classify(ctx, err)
	}

	return key, nil
}
