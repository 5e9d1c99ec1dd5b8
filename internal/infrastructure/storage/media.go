package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/joyability/pkg/config"
)

// MediaStore keeps generated media and hands back a URL to fetch it
type MediaStore interface {
	PutMedia(ctx context.Context, prefix string, data []byte, contentType string) (string, error)
}

// MinIOStore stores media in an S3-compatible bucket
type MinIOStore struct {
	client    *minio.Client
	bucket    string
	publicURL string // rewrites presigned URLs when MinIO sits behind a proxy
	expiry    time.Duration
}

// NewMinIOStore connects and makes sure the bucket exists
func NewMinIOStore(ctx context.Context, cfg config.StorageConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStore{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		expiry:    cfg.PresignExpiry,
	}, nil
}

// PutMedia uploads data under prefix/<date>/<uuid><ext> and returns a presigned GET URL
func (m *MinIOStore) PutMedia(ctx context.Context, prefix string, data []byte, contentType string) (string, error) {
	objectName := ObjectName(prefix, contentType, time.Now(), uuid.NewString())

	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, m.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return RewriteHost(u, m.publicURL)
}

// ObjectName builds the key for a new object
func ObjectName(prefix, contentType string, at time.Time, id string) string {
	ext := ""
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		ext = exts[0]
	}
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	case "video/mp4":
		ext = ".mp4"
	}
	return path.Join(prefix, at.UTC().Format("2006/01/02"), id+ext)
}

// RewriteHost swaps the scheme and host of u for publicURL, keeping path and query
func RewriteHost(u *url.URL, publicURL string) (string, error) {
	if publicURL == "" {
		return u.String(), nil
	}
	pub, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("invalid public URL: %w", err)
	}
	out := *u
	out.Scheme = pub.Scheme
	out.Host = pub.Host
	out.Path = strings.TrimRight(pub.Path, "/") + u.Path
	return out.String(), nil
}
