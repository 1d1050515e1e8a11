package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"srgbot/internal/core/domain"

	"github.com/gofrs/uuid/v5"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// MinIO keeps artifacts as objects in a bucket.
type MinIO struct {
	client *minio.Client
	bucket string
	prefix string
}

type MinIOConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// NewMinIO connects to the object store and makes sure the bucket exists.
func NewMinIO(ctx context.Context, cfg MinIOConfig) (*MinIO, error) {
	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed creating minio client: %w", err)
	}

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed checking bucket: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed creating bucket: %w", err)
		}
	}

	return &MinIO{client: cli, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (m *MinIO) Put(ctx context.Context, filename, contentType string, kind domain.ArtifactKind,
	r io.Reader) (*domain.Artifact, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	key := path.Join(m.prefix, id.String()+path.Ext(filename))

	info, err := m.client.PutObject(ctx, m.bucket, key, r, -1, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("failed uploading artifact: %w", err)
	}

	log.Debug().Str("bucket", m.bucket).Str("key", key).Int64("bytes", info.Size).Msg("uploaded artifact")

	return &domain.Artifact{
		ID:          id.String(),
		Key:         key,
		Filename:    filename,
		ContentType: contentType,
		Kind:        kind,
		Size:        info.Size,
	}, nil
}

func (m *MinIO) Open(ctx context.Context, artifact *domain.Artifact) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, artifact.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed fetching artifact: %w", err)
	}

	return obj, nil
}

func (m *MinIO) Release(ctx context.Context, artifact *domain.Artifact) error {
	err := m.client.RemoveObject(ctx, m.bucket, artifact.Key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed removing artifact: %w", err)
	}

	return nil
}
