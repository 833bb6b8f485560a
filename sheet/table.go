package sheet

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
)

type ColumnName string

// Field is a single named cell of a Record.
type Field struct {
	Column ColumnName
	Value  Value
}

// Record is one row of a table, with fields in column order.
type Record []Field

// Get returns the value of the given column, or null if the record does not
// have the column.
func (r Record) Get(c ColumnName) Value {
	for _, f := range r {
		if f.Column == c {
			return f.Value
		}
	}
	return Null()
}

// MarshalJSON writes the record as an object, preserving column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(string(f.Column))
		if err != nil {
			return nil, err
		}
		v, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Table is an ordered sequence of records sharing a header row.
// Tables are not modified once loaded.
type Table struct {
	Name    string
	Columns []ColumnName
	Records []Record
}

func NewTable(name string, columns ...ColumnName) *Table {
	return &Table{Name: name, Columns: columns}
}

// AppendRow adds a record built from vals in column order. Missing trailing
// values are null; extra values are an error.
func (t *Table) AppendRow(vals ...Value) error {
	if len(vals) > len(t.Columns) {
		return errors.Newf("row has %d values but table %q has %d columns", len(vals), t.Name, len(t.Columns))
	}
	rec := make(Record, len(t.Columns))
	for i, c := range t.Columns {
		rec[i].Column = c
		if i < len(vals) {
			rec[i].Value = vals[i]
		}
	}
	t.Records = append(t.Records, rec)
	return nil
}

func (t *Table) HasColumn(c ColumnName) bool {
	for _, col := range t.Columns {
		if col == c {
			return true
		}
	}
	return false
}

func (t *Table) NumRows() int {
	return len(t.Records)
}

// ColumnValues returns the values of a column in row order.
func (t *Table) ColumnValues(c ColumnName) ([]Value, bool) {
	if !t.HasColumn(c) {
		return nil, false
	}
	ret := make([]Value, len(t.Records))
	for i, r := range t.Records {
		ret[i] = r.Get(c)
	}
	return ret, true
}

func (t *Table) String() string {
	return fmt.Sprintf("%s (%d columns, %d rows)", t.Name, len(t.Columns), len(t.Records))
}
