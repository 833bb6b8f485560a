// Package sheetload reads spreadsheet-like files into sheet.Tables.
package sheetload

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrUnreadableSource marks every error caused by input which cannot be
// loaded as a table.
var ErrUnreadableSource = errors.New("unreadable source")

var (
	rowsLoaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sheetcmp",
		Subsystem: "load",
		Name:      "rows_loaded",
		Help:      "Number of rows loaded from input tables.",
	}, []string{"format"})
)

// Loader parses a table out of r. name identifies the input in errors and
// becomes the table name.
type Loader interface {
	Load(ctx context.Context, name string, r io.Reader) (*sheet.Table, error)
}

func unreadable(err error, name string) error {
	return errors.Mark(errors.Wrapf(err, "error loading %s", name), ErrUnreadableSource)
}

func unreadablef(name string, format string, args ...interface{}) error {
	return unreadable(errors.Newf(format, args...), name)
}

// LoadFile opens path and loads it with l.
func LoadFile(ctx context.Context, l Loader, path string) (*sheet.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, unreadable(err, path)
	}
	defer func() { _ = f.Close() }()
	return l.Load(ctx, filepath.Base(path), f)
}

// ColumnNames turns raw header cells into unique column names. Blank headers
// (empty or whitespace only) become "Unnamed: <i>" and repeated names get a
// ".<n>" suffix. Other names are kept as written, surrounding spaces included.
func ColumnNames(raw []string) []sheet.ColumnName {
	seen := make(map[sheet.ColumnName]int, len(raw))
	ret := make([]sheet.ColumnName, len(raw))
	for i, h := range raw {
		name := sheet.ColumnName(h)
		if strings.TrimSpace(h) == "" {
			name = sheet.ColumnName("Unnamed: " + strconv.Itoa(i))
		}
		base := name
		for seen[name] > 0 {
			name = sheet.ColumnName(string(base) + "." + strconv.Itoa(seen[base]))
			seen[base]++
		}
		seen[name]++
		ret[i] = name
	}
	return ret
}

// trimBlankRows drops trailing records which have no non-null value.
func trimBlankRows(t *sheet.Table) {
	n := len(t.Records)
	for n > 0 && isBlank(t.Records[n-1]) {
		n--
	}
	t.Records = t.Records[:n]
}

func isBlank(r sheet.Record) bool {
	for _, f := range r {
		if !f.Value.IsNull() {
			return false
		}
	}
	return true
}
