package exportstore

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

type localStore struct {
	logger   zerolog.Logger
	basePath string
}

func NewLocalStore(logger zerolog.Logger, basePath string) (*localStore, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, errors.Wrapf(err, "error creating export directory %s", basePath)
	}
	return &localStore{logger: logger, basePath: basePath}, nil
}

func (l *localStore) Put(ctx context.Context, name string, data []byte) (Resource, error) {
	p := filepath.Join(l.basePath, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), os.ModePerm); err != nil {
		return nil, err
	}
	logger := l.logger.With().Str("path", p).Logger()
	logger.Debug().Msgf("creating file")
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return nil, errors.Wrapf(err, "error writing %s", p)
	}
	logger.Debug().Int("bytes", len(data)).Msgf("wrote file")
	return &localResource{path: p}, nil
}

type localResource struct {
	path string
}

func (l *localResource) URL() string {
	return l.path
}

func (l *localResource) Reader(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(l.path)
}
