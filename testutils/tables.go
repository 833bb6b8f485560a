package testutils

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/cockroachdb/sheetcmp/sheetload"
	"github.com/stretchr/testify/require"
)

// CSVTable loads input as a comma separated table with a header row,
// inferring numbers and booleans.
func CSVTable(t *testing.T, name string, input string) *sheet.Table {
	l := &sheetload.CSV{Comma: ',', InferTypes: true}
	tbl, err := l.Load(context.Background(), name, strings.NewReader(input))
	require.NoError(t, err)
	return tbl
}

// TableCommand handles a datadriven "table name=<name>" directive, storing
// the CSV table in its input under the given name.
func TableCommand(t *testing.T, d *datadriven.TestData, tables map[string]*sheet.Table) string {
	var name string
	d.ScanArgs(t, "name", &name)
	tbl := CSVTable(t, name, d.Input)
	tables[name] = tbl
	return FormatTable(tbl)
}

// FormatTable renders a table as one line per row, with typed values.
func FormatTable(tbl *sheet.Table) string {
	var sb strings.Builder
	sb.WriteString(tbl.String())
	sb.WriteString("\n")
	for _, rec := range tbl.Records {
		for i, f := range rec {
			if i > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(FormatValue(f.Value))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatValue renders a value with its kind so tests can tell "1" from 1.
func FormatValue(v sheet.Value) string {
	switch v.Kind() {
	case sheet.KindNull:
		return "NULL"
	case sheet.KindText:
		return "'" + v.String() + "'"
	}
	return v.String()
}
