package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/latted-app/latted/internal/common"
)

// Blobs is the remote media storage, one object per (userID, entryID).
// Upload returns the stable download URL recorded on the entry.
type Blobs interface {
	Upload(ctx context.Context, userID, entryID string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, userID, entryID string) error
	Download(ctx context.Context, url string) ([]byte, error)
}

// S3Config carries the bucket coordinates and credentials.
type S3Config struct {
	Region       string
	Bucket       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// S3Blobs implements Blobs against an S3-compatible object store.
type S3Blobs struct {
	cfg    S3Config
	client *s3.Client
	http   *http.Client
}

func NewS3Blobs(ctx context.Context, cfg S3Config) (*S3Blobs, error) {
	awscfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to configure blob storage: %w", err)
	}

	client := s3.NewFromConfig(awscfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
	})

	return &S3Blobs{cfg: cfg, client: client, http: &http.Client{}}, nil
}

func mediaKey(userID, entryID string) string {
	return fmt.Sprintf("users/%s/media/%s", userID, entryID)
}

func (b *S3Blobs) Upload(ctx context.Context, userID, entryID string, data []byte, contentType string) (string, error) {
	bucket := b.cfg.Bucket
	key := mediaKey(userID, entryID)

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: blob upload: %v", common.ErrUnavailable, err)
	}

	// Presigned GET is the "stable" URL the documents carry; it is re-issued
	// on each upload, which is the only time the URL is recorded.
	presign := s3.NewPresignClient(b.client)
	req, err := presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(7*24*time.Hour))
	if err != nil {
		return "", fmt.Errorf("%w: blob url: %v", common.ErrUnavailable, err)
	}

	return req.URL, nil
}

func (b *S3Blobs) Delete(ctx context.Context, userID, entryID string) error {
	bucket := b.cfg.Bucket
	key := mediaKey(userID, entryID)

	// DeleteObject on a missing key succeeds, which matches the contract.
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("%w: blob delete: %v", common.ErrUnavailable, err)
	}
	return nil
}

func (b *S3Blobs) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: blob download: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: blob download: status %d", common.ErrUnavailable, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
