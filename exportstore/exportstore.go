// Package exportstore writes exported workbooks to local disk or to cloud
// storage buckets.
package exportstore

import (
	"context"
	"io"

	"github.com/cockroachdb/sheetcmp/retry"
)

type Store interface {
	// Put stores data under name, replacing any existing object.
	Put(ctx context.Context, name string, data []byte) (Resource, error)
}

type Resource interface {
	// URL locates the stored object, e.g. s3://bucket/key.
	URL() string
	Reader(ctx context.Context) (io.ReadCloser, error)
}

type Opt func(*storeOpts)

type storeOpts struct {
	retrySettings retry.Settings
}

// WithRetrySettings sets the backoff used for uploads to remote stores.
func WithRetrySettings(s retry.Settings) Opt {
	return func(o *storeOpts) {
		o.retrySettings = s
	}
}

func makeOpts(inOpts []Opt) storeOpts {
	opts := storeOpts{retrySettings: retry.DefaultSettings()}
	for _, applyOpt := range inOpts {
		applyOpt(&opts)
	}
	return opts
}
