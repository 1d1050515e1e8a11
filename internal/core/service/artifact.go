package service

import (
	"context"
	"fmt"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// ArtifactManager scopes transient artifacts to a single use. Whatever happens
// inside the scope, the artifact is released afterwards.
type ArtifactManager struct {
	store port.ArtifactStore
}

func NewArtifactManager(store port.ArtifactStore) *ArtifactManager {
	return &ArtifactManager{store: store}
}

// WithArtifact opens the artifact carried by result, hands it to use and
// releases it once use returns or panics. Without an artifact, use receives nil.
func (m *ArtifactManager) WithArtifact(ctx context.Context, result *domain.Result,
	use func(ctx context.Context, attachment *domain.Attachment) error) error {
	if !result.HasArtifact() {
		return use(ctx, nil)
	}

	artifact := result.Artifact
	l := log.With().
		Str("artifactId", artifact.ID).
		Str("key", artifact.Key).
		Logger()

	defer func() {
		// storage must be reclaimed even if the invocation was cancelled
		err := m.store.Release(context.WithoutCancel(ctx), artifact)
		if err != nil {
			l.Warn().Err(err).Msg("could not release artifact")
			return
		}
		l.Debug().Msg("released artifact")
	}()

	rc, err := m.store.Open(ctx, artifact)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer rc.Close()

	return use(ctx, &domain.Attachment{
		Filename:    artifact.Filename,
		ContentType: artifact.ContentType,
		Reader:      rc,
	})
}
