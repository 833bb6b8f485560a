// Package match pairs the rows of a source table with the rows of a target
// table on a key column from each.
package match

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sheetcmp/sheet"
)

var (
	// ErrInvalidColumn marks errors caused by a key column missing from its
	// table.
	ErrInvalidColumn = errors.New("invalid column")
	// ErrInvalidMode marks errors caused by an unknown comparison mode.
	ErrInvalidMode = errors.New("invalid comparison mode")
)

// DefaultRowOffset converts a zero-based record position into the row number
// a spreadsheet shows for it, accounting for the header row.
const DefaultRowOffset = 2

type Opt func(*compareOpts)

type compareOpts struct {
	rowOffset int
}

// WithRowOffset sets the number added to a record's position to produce the
// row index reported in entries.
func WithRowOffset(n int) Opt {
	return func(o *compareOpts) {
		o.rowOffset = n
	}
}

// Compare finds every pairing of source and target rows whose key values
// satisfy mode. Entries are ordered by source row, then target row. Null keys
// never match.
func Compare(
	source, target *sheet.Table,
	sourceKey, targetKey sheet.ColumnName,
	mode Mode,
	inOpts ...Opt,
) (Result, error) {
	opts := compareOpts{rowOffset: DefaultRowOffset}
	for _, applyOpt := range inOpts {
		applyOpt(&opts)
	}
	if source == nil || target == nil {
		return Result{}, errors.AssertionFailedf("source and target tables must be loaded")
	}
	if err := mode.validate(); err != nil {
		return Result{}, err
	}
	sourceVals, err := keyValues(source, sourceKey)
	if err != nil {
		return Result{}, err
	}
	targetVals, err := keyValues(target, targetKey)
	if err != nil {
		return Result{}, err
	}

	c := comparer{
		source:     source,
		target:     target,
		sourceVals: sourceVals,
		targetVals: targetVals,
		opts:       opts,
		res:        Result{Mode: mode},
	}
	switch mode {
	case ModeExact:
		c.exact()
	case ModePartial:
		c.partial()
	}
	return c.res, nil
}

func keyValues(t *sheet.Table, c sheet.ColumnName) ([]sheet.Value, error) {
	vals, ok := t.ColumnValues(c)
	if !ok {
		return nil, errors.Mark(
			errors.Newf("column %q not found in table %q", string(c), t.Name),
			ErrInvalidColumn,
		)
	}
	return vals, nil
}

type comparer struct {
	source, target         *sheet.Table
	sourceVals, targetVals []sheet.Value
	opts                   compareOpts
	res                    Result
}

func (c *comparer) addEntry(sourceIdx, targetIdx int) {
	c.res.Entries = append(c.res.Entries, Entry{
		SourceValue:  c.sourceVals[sourceIdx],
		TargetValue:  c.targetVals[targetIdx],
		SourceRow:    sourceIdx + c.opts.rowOffset,
		TargetRow:    targetIdx + c.opts.rowOffset,
		SourceRecord: c.source.Records[sourceIdx],
		TargetRecord: c.target.Records[targetIdx],
	})
}

// exact probes a hash index of the target keys with each source key in row
// order. Positions in the index are ascending, which keeps entries
// target-row-major within a source row.
func (c *comparer) exact() {
	index := make(map[string][]int)
	for i, v := range c.targetVals {
		if v.IsNull() {
			continue
		}
		k := v.Key()
		index[k] = append(index[k], i)
	}
	for i, v := range c.sourceVals {
		if v.IsNull() {
			continue
		}
		positions, ok := index[v.Key()]
		if !ok {
			continue
		}
		for _, pos := range positions {
			c.addEntry(i, pos)
		}
		c.res.Counts.add(v, len(positions))
	}
}

// partial tests every pair of non-null keys for containment in either
// direction. The predicate is evaluated once per pair, so a pair which
// contains itself both ways produces a single entry.
func (c *comparer) partial() {
	targetStrs := make([]string, len(c.targetVals))
	for i, v := range c.targetVals {
		targetStrs[i] = strings.ToLower(v.String())
	}
	for i, sv := range c.sourceVals {
		if sv.IsNull() {
			continue
		}
		s := strings.ToLower(sv.String())
		for j, tv := range c.targetVals {
			if tv.IsNull() {
				continue
			}
			if t := targetStrs[j]; strings.Contains(t, s) || strings.Contains(s, t) {
				c.addEntry(i, j)
				c.res.Counts.add(sv, 1)
			}
		}
	}
}
