package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophupload/internal/common"
)

// Linker turns remote references into time-limited download URLs.
type Linker struct {
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

func NewLinker(ctx context.Context, s Settings) (*Linker, error) {
	client, err := newClient(ctx, s)
	if err != nil {
		return nil, err
	}
	return &Linker{presign: newS3PresignClient(client), bucket: s.Bucket, expiry: s.expiry()}, nil
}

// Link returns a presigned GET URL for the object stored under ref.
func (l *Linker) Link(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", common.ErrorNotFound
	}
	req, err := presignGetObject(l.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(ref),
	}, s3.WithPresignExpires(l.expiry))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}
