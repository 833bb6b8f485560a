package compare

import (
	"context"
	"fmt"
	"path"

	"github.com/cockroachdb/sheetcmp/cmd/internal/cmdutil"
	"github.com/cockroachdb/sheetcmp/export"
	"github.com/cockroachdb/sheetcmp/match"
	"github.com/cockroachdb/sheetcmp/report"
	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/spf13/cobra"
)

var (
	matchesFound = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sheetcmp",
		Subsystem: "compare",
		Name:      "matches",
		Help:      "Number of matching row pairs found.",
	}, []string{"mode"})
)

func Command() *cobra.Command {
	var (
		sourceKey string
		targetKey string
		modeStr   string
		search    string
		lang      string
		format    string
		rowOffset int
		noExport  bool
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compares two tables on a key column from each",
		Long: `Compares the rows of a source table with the rows of a target table, pairing
rows whose key columns are equal (exact mode) or where either key contains the
other, ignoring case (partial mode). Prints statistics and the number of
repetitions of each matched value, and exports the matches and counts as xlsx
workbooks.`,

		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			logger, err := cmdutil.Logger()
			if err != nil {
				return err
			}
			defer cmdutil.RunMetricsServer(logger)()

			mode, err := match.ParseMode(modeStr)
			if err != nil {
				return err
			}
			labels, err := report.LabelsFor(lang)
			if err != nil {
				return err
			}
			outFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			source, target, err := cmdutil.LoadTables(ctx, logger)
			if err != nil {
				return err
			}

			reporter := report.CombinedReporter{
				Reporters: []report.Reporter{report.LogReporter{Logger: logger}},
			}
			defer reporter.Close()

			reporter.Report(report.StatusReport{
				Info: fmt.Sprintf("comparing %s[%s] with %s[%s]", source.Name, sourceKey, target.Name, targetKey),
			})
			res, err := match.Compare(
				source,
				target,
				sheet.ColumnName(sourceKey),
				sheet.ColumnName(targetKey),
				mode,
				match.WithRowOffset(rowOffset),
			)
			if err != nil {
				return err
			}
			matchesFound.WithLabelValues(string(mode)).Add(float64(len(res.Entries)))
			if res.Empty() {
				reporter.Report(report.NoMatches{Mode: mode})
				return nil
			}
			reporter.Report(report.Summarize(res))

			var needle *string
			if cmd.Flags().Changed("search") {
				needle = &search
				i := 0
				for e := range report.Search(res, search) {
					i++
					reporter.Report(report.SearchHit{Needle: search, Index: i, Entry: e})
				}
			}
			if err := report.NewPrinter(cmd.OutOrStdout(), outFormat, labels).Print(
				report.BuildOutput(res, needle),
			); err != nil {
				return err
			}

			if noExport {
				return nil
			}
			store, err := cmdutil.Store(ctx, logger)
			if err != nil {
				return err
			}
			for _, out := range []struct {
				file  string
				table *sheet.Table
			}{
				{file: labels.DetailFile, table: report.DetailTable(res, mode, labels)},
				{file: labels.CountFile, table: report.CountTable(res.Counts, labels)},
			} {
				b, err := export.Bytes(out.table, export.WithSheetName(labels.Sheet))
				if err != nil {
					return err
				}
				r, err := store.Put(ctx, path.Join(cmdutil.ExportPrefix(), out.file), b)
				if err != nil {
					return err
				}
				reporter.Report(report.StatusReport{Info: fmt.Sprintf("exported %s", r.URL())})
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(
		&sourceKey,
		"source-key",
		"",
		"column of the source table to compare",
	)
	cmd.PersistentFlags().StringVar(
		&targetKey,
		"target-key",
		"",
		"column of the target table to compare",
	)
	cmd.PersistentFlags().StringVar(
		&modeStr,
		"mode",
		string(match.ModeExact),
		"comparison mode (exact|partial)",
	)
	cmd.PersistentFlags().StringVar(
		&search,
		"search",
		"",
		"if set, lists the matches whose value contains this text, ignoring case",
	)
	cmd.PersistentFlags().StringVar(
		&lang,
		"lang",
		"en",
		"language of exported column, sheet and file names (en|pt)",
	)
	cmd.PersistentFlags().StringVar(
		&format,
		"format",
		string(report.FormatText),
		"output format (text|json|yaml)",
	)
	cmd.PersistentFlags().IntVar(
		&rowOffset,
		"row-offset",
		match.DefaultRowOffset,
		"number added to a row's zero-based position to give the reported row number",
	)
	cmd.PersistentFlags().BoolVar(
		&noExport,
		"no-export",
		false,
		"skip writing the xlsx exports",
	)
	for _, required := range []string{"source-key", "target-key"} {
		if err := cmd.MarkPersistentFlagRequired(required); err != nil {
			panic(err)
		}
	}

	cmdutil.RegisterInputFlags(cmd)
	cmdutil.RegisterStoreFlags(cmd)
	cmdutil.RegisterLoggerFlags(cmd)
	cmdutil.RegisterMetricsFlags(cmd)
	return cmd
}
