package cmd

import (
	"fmt"
	"os"

	"github.com/cockroachdb/sheetcmp/cmd/compare"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sheetcmp",
	Short: "Compare two spreadsheets on a key column",
	Long:  `sheetcmp finds the rows of two spreadsheets (or query results) that share a key value, counts how often each value repeats and exports the matches as xlsx workbooks.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(compare.Command())
}
