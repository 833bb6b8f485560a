// Package export serializes tables into xlsx workbooks.
package export

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the name of the single worksheet written.
const DefaultSheetName = "Results"

// ContentType is the MIME type of the produced bytes.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	bytesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sheetcmp",
		Subsystem: "export",
		Name:      "bytes_written",
		Help:      "Number of xlsx bytes produced.",
	})
)

type Opt func(*exportOpts)

type exportOpts struct {
	sheetName string
}

func WithSheetName(name string) Opt {
	return func(o *exportOpts) {
		o.sheetName = name
	}
}

// Write writes t to w as a workbook with a single worksheet. The first row
// holds the column names in order; no index column is added.
func Write(w io.Writer, t *sheet.Table, inOpts ...Opt) error {
	opts := exportOpts{sheetName: DefaultSheetName}
	for _, applyOpt := range inOpts {
		applyOpt(&opts)
	}
	if t == nil {
		return errors.AssertionFailedf("cannot export a nil table")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName(f.GetSheetName(0), opts.sheetName); err != nil {
		return errors.Wrapf(err, "error naming worksheet %q", opts.sheetName)
	}
	sw, err := f.NewStreamWriter(opts.sheetName)
	if err != nil {
		return errors.Wrap(err, "error creating worksheet writer")
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = string(c)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return errors.Wrap(err, "error writing header row")
	}
	for i, rec := range t.Records {
		row := make([]interface{}, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = rec.Get(c).Native()
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return errors.Wrapf(err, "error writing row %d", i+2)
		}
	}
	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "error flushing worksheet")
	}
	cw := &countingWriter{w: w}
	if _, err := f.WriteTo(cw); err != nil {
		return errors.Wrap(err, "error writing workbook")
	}
	bytesWritten.Add(float64(cw.n))
	return nil
}

// Bytes returns the workbook produced by Write.
func Bytes(t *sheet.Table, opts ...Opt) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
