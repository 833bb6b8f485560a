package sheetload

import (
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/xuri/excelize/v2"
)

// XLSX loads the first worksheet (or Sheet, if set) of an Office Open XML
// workbook. The first row is the header.
type XLSX struct {
	Sheet string
}

var _ Loader = (*XLSX)(nil)

func (x *XLSX) Load(ctx context.Context, name string, r io.Reader) (*sheet.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, unreadable(err, name)
	}
	defer func() { _ = f.Close() }()

	sheetName := x.Sheet
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, unreadablef(name, "workbook has no worksheets")
		}
		sheetName = sheets[0]
	}
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		return nil, unreadablef(name, "worksheet %q not found", sheetName)
	}

	rd := cellReader{f: f, sheet: sheetName, dateStyles: make(map[int]bool)}
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, unreadable(err, name)
	}

	var header []string
	var body [][]sheet.Value
	width := 0
	for i, raw := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i == 0 {
			header = append([]string{}, raw...)
			if len(header) == 0 {
				return nil, unreadablef(name, "worksheet %q has an empty header row", sheetName)
			}
			continue
		}
		vals := make([]sheet.Value, len(raw))
		for j, s := range raw {
			if vals[j], err = rd.value(j+1, i+1, s); err != nil {
				return nil, unreadable(err, name)
			}
		}
		if n := lastNonNull(vals); n > width {
			width = n
		}
		body = append(body, vals)
	}
	if header == nil {
		return nil, unreadablef(name, "worksheet %q is empty", sheetName)
	}
	for len(header) < width {
		header = append(header, "")
	}

	t := sheet.NewTable(name, ColumnNames(header)...)
	for _, vals := range body {
		if len(vals) > len(t.Columns) {
			vals = vals[:len(t.Columns)]
		}
		if err := t.AppendRow(vals...); err != nil {
			return nil, unreadable(err, name)
		}
	}
	trimBlankRows(t)
	rowsLoaded.WithLabelValues("xlsx").Add(float64(t.NumRows()))
	return t, nil
}

func lastNonNull(vals []sheet.Value) int {
	for i := len(vals) - 1; i >= 0; i-- {
		if !vals[i].IsNull() {
			return i + 1
		}
	}
	return 0
}

// cellReader types raw cell contents using the cell's declared type and
// style.
type cellReader struct {
	f          *excelize.File
	sheet      string
	dateStyles map[int]bool
}

func (c *cellReader) value(col, row int, raw string) (sheet.Value, error) {
	if raw == "" {
		return sheet.Null(), nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return sheet.Value{}, err
	}
	typ, err := c.f.GetCellType(c.sheet, cell)
	if err != nil {
		return sheet.Value{}, errors.Wrapf(err, "error reading type of cell %s", cell)
	}
	switch typ {
	case excelize.CellTypeBool:
		return sheet.Bool(raw == "1" || strings.EqualFold(raw, "true")), nil
	case excelize.CellTypeError:
		return sheet.Null(), nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return sheet.Text(raw), nil
	case excelize.CellTypeDate:
		return c.formatted(cell)
	}
	isDate, err := c.isDate(cell)
	if err != nil {
		return sheet.Value{}, err
	}
	if isDate {
		return c.formatted(cell)
	}
	v, err := sheet.ParseNumber(raw)
	if err != nil {
		return sheet.Text(raw), nil
	}
	if f, err := v.Decimal().Float64(); err == nil {
		return sheet.Float(f)
	}
	return v, nil
}

func (c *cellReader) formatted(cell string) (sheet.Value, error) {
	s, err := c.f.GetCellValue(c.sheet, cell)
	if err != nil {
		return sheet.Value{}, errors.Wrapf(err, "error formatting cell %s", cell)
	}
	return sheet.Text(s), nil
}

// isDate reports whether the cell's number format renders a date or time.
func (c *cellReader) isDate(cell string) (bool, error) {
	styleID, err := c.f.GetCellStyle(c.sheet, cell)
	if err != nil {
		return false, errors.Wrapf(err, "error reading style of cell %s", cell)
	}
	if isDate, ok := c.dateStyles[styleID]; ok {
		return isDate, nil
	}
	style, err := c.f.GetStyle(styleID)
	if err != nil {
		return false, errors.Wrapf(err, "error reading style %d", styleID)
	}
	isDate := false
	switch {
	case style.NumFmt >= 14 && style.NumFmt <= 22, style.NumFmt >= 45 && style.NumFmt <= 47:
		isDate = true
	case style.CustomNumFmt != nil:
		isDate = isDateFormat(*style.CustomNumFmt)
	}
	c.dateStyles[styleID] = isDate
	return isDate, nil
}

func isDateFormat(fmtCode string) bool {
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(fmtCode) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		case r == 'y', r == 'd', r == 'h', r == 's':
			return true
		}
	}
	return false
}
