package exportstore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sheetcmp/export"
	"github.com/cockroachdb/sheetcmp/retry"
	"github.com/rs/zerolog"
)

type s3Store struct {
	logger  zerolog.Logger
	bucket  string
	session *session.Session
	opts    storeOpts
}

func NewS3Store(logger zerolog.Logger, session *session.Session, bucket string, inOpts ...Opt) *s3Store {
	return &s3Store{
		logger:  logger,
		bucket:  bucket,
		session: session,
		opts:    makeOpts(inOpts),
	}
}

func (s *s3Store) Put(ctx context.Context, key string, data []byte) (Resource, error) {
	logger := s.logger.With().Str("bucket", s.bucket).Str("key", key).Logger()
	uploader := s3manager.NewUploader(s.session)
	if err := retry.Do(ctx, s.opts.retrySettings, func(attempt int) error {
		logger.Debug().Int("attempt", attempt).Msgf("uploading file")
		_, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			ContentType: aws.String(export.ContentType),
			Body:        bytes.NewReader(data),
		})
		if err != nil {
			logger.Warn().Err(err).Int("attempt", attempt).Msgf("upload failed")
		}
		return err
	}); err != nil {
		return nil, errors.Wrapf(err, "error uploading s3://%s/%s", s.bucket, key)
	}
	logger.Debug().Int("bytes", len(data)).Msgf("s3 upload complete")
	return &s3Resource{store: s, key: key}, nil
}

type s3Resource struct {
	store *s3Store
	key   string
}

func (r *s3Resource) URL() string {
	return fmt.Sprintf("s3://%s/%s", r.store.bucket, r.key)
}

func (r *s3Resource) Reader(ctx context.Context) (io.ReadCloser, error) {
	out, err := s3.New(r.store.session).GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.store.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
