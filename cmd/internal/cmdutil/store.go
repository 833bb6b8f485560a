package cmdutil

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sheetcmp/exportstore"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

type storeConfig struct {
	localPath string
	s3Bucket  string
	gcpBucket string
	prefix    string
}

var storeCfg = storeConfig{
	localPath: ".",
}

func RegisterStoreFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&storeCfg.localPath,
		"local-path",
		storeCfg.localPath,
		"directory to write exported workbooks to",
	)
	cmd.PersistentFlags().StringVar(
		&storeCfg.s3Bucket,
		"s3-bucket",
		"",
		"s3 bucket to upload exported workbooks to instead of --local-path",
	)
	cmd.PersistentFlags().StringVar(
		&storeCfg.gcpBucket,
		"gcp-bucket",
		"",
		"gcp bucket to upload exported workbooks to instead of --local-path",
	)
	cmd.PersistentFlags().StringVar(
		&storeCfg.prefix,
		"export-prefix",
		"",
		"path prefix prepended to the exported file names",
	)
}

// ExportPrefix returns the prefix to put in front of exported file names.
func ExportPrefix() string {
	return storeCfg.prefix
}

// Store returns the destination for exported workbooks.
func Store(ctx context.Context, logger zerolog.Logger) (exportstore.Store, error) {
	switch {
	case storeCfg.gcpBucket != "":
		creds, err := google.FindDefaultCredentials(ctx, storage.ScopeReadWrite)
		if err != nil {
			return nil, errors.Wrap(err, "error finding gcp credentials")
		}
		client, err := storage.NewClient(ctx, option.WithCredentials(creds))
		if err != nil {
			return nil, err
		}
		return exportstore.NewGCPStore(logger, client, storeCfg.gcpBucket), nil
	case storeCfg.s3Bucket != "":
		sess, err := session.NewSession()
		if err != nil {
			return nil, err
		}
		if _, err := sess.Config.Credentials.Get(); err != nil {
			return nil, errors.Wrap(err, "error finding aws credentials")
		}
		return exportstore.NewS3Store(logger, sess, storeCfg.s3Bucket), nil
	case storeCfg.localPath != "":
		return exportstore.NewLocalStore(logger, storeCfg.localPath)
	}
	return nil, errors.Newf("an export destination must be configured (--local-path, --s3-bucket, --gcp-bucket)")
}
