package sheetload

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"io"

	"github.com/cockroachdb/sheetcmp/sheet"
)

// CSV loads delimited text with a header row.
type CSV struct {
	// Comma is the field delimiter. If 0, it is detected from the header line
	// among ',', ';' and '\t'.
	Comma rune
	// InferTypes converts cells into numbers and booleans where they parse as
	// such. Otherwise every non-empty cell is text.
	InferTypes bool
}

var _ Loader = (*CSV)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (c *CSV) Load(ctx context.Context, name string, r io.Reader) (*sheet.Table, error) {
	br := bufio.NewReader(r)
	if bom, _ := br.Peek(len(utf8BOM)); bytes.Equal(bom, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	comma := c.Comma
	if comma == 0 {
		comma = sniffDelimiter(br)
	}
	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, unreadablef(name, "no header row found")
		}
		return nil, unreadable(err, name)
	}
	t := sheet.NewTable(name, ColumnNames(header)...)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, unreadable(err, name)
		}
		if len(record) > len(t.Columns) {
			line, _ := cr.FieldPos(0)
			return nil, unreadablef(name, "line %d has %d fields but the header has %d", line, len(record), len(t.Columns))
		}
		vals := make([]sheet.Value, len(record))
		for i, s := range record {
			if c.InferTypes {
				vals[i] = sheet.Infer(s)
			} else if s != "" {
				vals[i] = sheet.Text(s)
			}
		}
		if err := t.AppendRow(vals...); err != nil {
			return nil, unreadable(err, name)
		}
	}
	trimBlankRows(t)
	rowsLoaded.WithLabelValues("csv").Add(float64(t.NumRows()))
	return t, nil
}

// sniffDelimiter picks the most frequent candidate delimiter in the first
// line, defaulting to a comma.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(64 * 1024)
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		peek = peek[:i]
	}
	best, bestCount := ',', 0
	for _, cand := range []rune{',', ';', '\t'} {
		if n := bytes.Count(peek, []byte(string(cand))); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}
