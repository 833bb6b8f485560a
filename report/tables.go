// Package report turns comparison results into flat tables, summaries and
// human readable output.
package report

import (
	"sort"

	"github.com/cockroachdb/sheetcmp/match"
	"github.com/cockroachdb/sheetcmp/sheet"
)

// DetailTable projects every entry into a flat row. Exact mode rows hold the
// value and both row indexes; partial mode rows hold both values and both row
// indexes. Full records are not included.
func DetailTable(res match.Result, mode match.Mode, l Labels) *sheet.Table {
	var t *sheet.Table
	switch mode {
	case match.ModePartial:
		t = sheet.NewTable(l.Sheet,
			sheet.ColumnName(l.SourceValue),
			sheet.ColumnName(l.TargetValue),
			sheet.ColumnName(l.SourceRow),
			sheet.ColumnName(l.TargetRow),
		)
	default:
		t = sheet.NewTable(l.Sheet,
			sheet.ColumnName(l.Value),
			sheet.ColumnName(l.SourceRow),
			sheet.ColumnName(l.TargetRow),
		)
	}
	for _, e := range res.Entries {
		src, tgt := sheet.Int(int64(e.SourceRow)), sheet.Int(int64(e.TargetRow))
		rec := make(sheet.Record, 0, len(t.Columns))
		if mode == match.ModePartial {
			rec = append(rec,
				sheet.Field{Column: t.Columns[0], Value: e.SourceValue},
				sheet.Field{Column: t.Columns[1], Value: e.TargetValue},
				sheet.Field{Column: t.Columns[2], Value: src},
				sheet.Field{Column: t.Columns[3], Value: tgt},
			)
		} else {
			rec = append(rec,
				sheet.Field{Column: t.Columns[0], Value: e.SourceValue},
				sheet.Field{Column: t.Columns[1], Value: src},
				sheet.Field{Column: t.Columns[2], Value: tgt},
			)
		}
		t.Records = append(t.Records, rec)
	}
	return t
}

// SortedCounts returns the counts ordered by descending count. Equal counts
// keep their first-encounter order.
func SortedCounts(counts match.Counts) []match.Count {
	all := counts.All()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].N > all[j].N
	})
	return all
}

// CountTable has one row per distinct source value with its repetition count,
// sorted as SortedCounts.
func CountTable(counts match.Counts, l Labels) *sheet.Table {
	t := sheet.NewTable(l.Sheet, sheet.ColumnName(l.Value), sheet.ColumnName(l.Count))
	for _, c := range SortedCounts(counts) {
		t.Records = append(t.Records, sheet.Record{
			{Column: t.Columns[0], Value: c.Value},
			{Column: t.Columns[1], Value: sheet.Int(int64(c.N))},
		})
	}
	return t
}
