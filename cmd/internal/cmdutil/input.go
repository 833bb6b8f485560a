package cmdutil

import (
	"context"

	"github.com/cockroachdb/sheetcmp/dbconn"
	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/cockroachdb/sheetcmp/sheetload"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type inputConfig struct {
	source      string
	target      string
	sourceQuery string
	targetQuery string
	sheet       string
}

var inputCfg = inputConfig{}

func RegisterInputFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&inputCfg.source,
		"source",
		"",
		"path of the source spreadsheet (xlsx or csv), or URL of the source database",
	)
	cmd.PersistentFlags().StringVar(
		&inputCfg.target,
		"target",
		"",
		"path of the target spreadsheet (xlsx or csv), or URL of the target database",
	)
	cmd.PersistentFlags().StringVar(
		&inputCfg.sourceQuery,
		"source-query",
		"",
		"query producing the source table if --source is a database URL",
	)
	cmd.PersistentFlags().StringVar(
		&inputCfg.targetQuery,
		"target-query",
		"",
		"query producing the target table if --target is a database URL",
	)
	cmd.PersistentFlags().StringVar(
		&inputCfg.sheet,
		"sheet",
		"",
		"worksheet to read from xlsx inputs; defaults to the first worksheet",
	)

	for _, required := range []string{"source", "target"} {
		if err := cmd.MarkPersistentFlagRequired(required); err != nil {
			panic(err)
		}
	}
}

// LoadTables loads the source and target tables concurrently. Files with
// identical contents are only parsed once.
func LoadTables(ctx context.Context, logger zerolog.Logger) (source, target *sheet.Table, err error) {
	memo := sheetload.NewMemo(&sheetload.Detect{Sheet: inputCfg.sheet}, logger)
	g, gCtx := errgroup.WithContext(ctx)
	for _, in := range []struct {
		id    dbconn.ID
		path  string
		query string
		out   **sheet.Table
	}{
		{id: "source", path: inputCfg.source, query: inputCfg.sourceQuery, out: &source},
		{id: "target", path: inputCfg.target, query: inputCfg.targetQuery, out: &target},
	} {
		g.Go(func() error {
			var t *sheet.Table
			var err error
			if dbconn.IsConnString(in.path) {
				t, err = dbconn.Load(gCtx, in.id, in.path, in.query)
			} else {
				t, err = sheetload.LoadFile(gCtx, memo, in.path)
			}
			if err != nil {
				return err
			}
			logger.Info().
				Str("input", string(in.id)).
				Str("table", t.Name).
				Int("columns", len(t.Columns)).
				Int("rows", t.NumRows()).
				Msgf("loaded table")
			*in.out = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return source, target, nil
}
