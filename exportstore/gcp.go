package exportstore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sheetcmp/export"
	"github.com/cockroachdb/sheetcmp/retry"
	"github.com/rs/zerolog"
)

type gcpStore struct {
	logger zerolog.Logger
	bucket string
	client *storage.Client
	opts   storeOpts
}

func NewGCPStore(logger zerolog.Logger, client *storage.Client, bucket string, inOpts ...Opt) *gcpStore {
	return &gcpStore{
		logger: logger,
		bucket: bucket,
		client: client,
		opts:   makeOpts(inOpts),
	}
}

func (s *gcpStore) Put(ctx context.Context, key string, data []byte) (Resource, error) {
	logger := s.logger.With().Str("bucket", s.bucket).Str("key", key).Logger()
	if err := retry.Do(ctx, s.opts.retrySettings, func(attempt int) error {
		logger.Debug().Int("attempt", attempt).Msgf("uploading file")
		wc := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
		wc.ContentType = export.ContentType
		if _, err := io.Copy(wc, bytes.NewReader(data)); err != nil {
			_ = wc.Close()
			return err
		}
		if err := wc.Close(); err != nil {
			logger.Warn().Err(err).Int("attempt", attempt).Msgf("upload failed")
			return err
		}
		return nil
	}); err != nil {
		return nil, errors.Wrapf(err, "error uploading gs://%s/%s", s.bucket, key)
	}
	logger.Debug().Int("bytes", len(data)).Msgf("gcp upload complete")
	return &gcpResource{store: s, key: key}, nil
}

type gcpResource struct {
	store *gcpStore
	key   string
}

func (r *gcpResource) URL() string {
	return fmt.Sprintf("gs://%s/%s", r.store.bucket, r.key)
}

func (r *gcpResource) Reader(ctx context.Context) (io.ReadCloser, error) {
	return r.store.client.Bucket(r.store.bucket).Object(r.key).NewReader(ctx)
}
