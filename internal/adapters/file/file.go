package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"srgbot/internal/core/domain"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// TempStore keeps artifacts as files in a local directory.
type TempStore struct {
	dir string
}

// NewTempStore creates dir if needed. An empty dir uses the OS temp directory.
func NewTempStore(dir string) (*TempStore, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("error creating artifact dir %w", err)
	}

	return &TempStore{dir: dir}, nil
}

// Put saves the content of r to a uuid-named file and returns its handle.
func (s *TempStore) Put(_ context.Context, filename, contentType string, kind domain.ArtifactKind,
	r io.Reader) (*domain.Artifact, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, id.String()+filepath.Ext(filename))

	f, err := os.Create(path)
	if err != nil {
		err = fmt.Errorf("error creating temp file %w", err)
		log.Error().Err(err).Send()
		return nil, err
	}

	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		err = fmt.Errorf("error writing temp file %w", err)
		log.Error().Err(err).Send()
		removeFile(path)
		return nil, err
	}

	log.Debug().Str("path", path).Int64("bytes", n).Msg("created file")

	return &domain.Artifact{
		ID:          id.String(),
		Key:         path,
		Filename:    filename,
		ContentType: contentType,
		Kind:        kind,
		Size:        n,
	}, nil
}

// Open retrieves a stored file by its handle.
func (s *TempStore) Open(_ context.Context, artifact *domain.Artifact) (io.ReadCloser, error) {
	f, err := os.Open(artifact.Key)
	if err != nil {
		err = fmt.Errorf("error reading temp file %w", err)
		log.Error().Err(err).Send()
		return nil, err
	}

	return f, nil
}

// Release removes the file backing the artifact. Already removed files are not an error.
func (s *TempStore) Release(_ context.Context, artifact *domain.Artifact) error {
	err := os.Remove(artifact.Key)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not clean up temp file %w", err)
	}
	log.Debug().Str("path", artifact.Key).Msg("cleaned up temp file")

	return nil
}

func removeFile(path string) {
	err := os.Remove(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not clean up temp file")
	}
}
