package port

import (
	"context"
	"io"
	"srgbot/internal/core/domain"
)

type ArtifactStore interface {
	// Put stores the content read from r and returns a handle to it.
	Put(ctx context.Context, filename, contentType string, kind domain.ArtifactKind, r io.Reader) (*domain.Artifact, error)
	// Open returns a reader over the stored artifact.
	Open(ctx context.Context, artifact *domain.Artifact) (io.ReadCloser, error)
	// Release reclaims the backing storage of the artifact.
	Release(ctx context.Context, artifact *domain.Artifact) error
}
