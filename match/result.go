package match

import "github.com/cockroachdb/sheetcmp/sheet"

// Entry is one pairing of a source row with a target row.
type Entry struct {
	SourceValue sheet.Value
	// TargetValue is always recorded; in exact mode it equals SourceValue.
	TargetValue sheet.Value

	// SourceRow and TargetRow are display row indexes, i.e. the physical
	// position plus the row offset.
	SourceRow int
	TargetRow int

	SourceRecord sheet.Record
	TargetRecord sheet.Record
}

// Value returns the primary value of the entry, which is the source key.
func (e Entry) Value() sheet.Value {
	return e.SourceValue
}

// Count is the number of matches accumulated for a source key value.
type Count struct {
	Value sheet.Value
	N     int
}

// Counts maps source key values to their repetition count, remembering the
// order in which values were first seen.
type Counts struct {
	idx   map[string]int
	items []Count
}

func (c *Counts) add(v sheet.Value, n int) {
	if c.idx == nil {
		c.idx = make(map[string]int)
	}
	k := v.Key()
	if i, ok := c.idx[k]; ok {
		c.items[i].N += n
		return
	}
	c.idx[k] = len(c.items)
	c.items = append(c.items, Count{Value: v, N: n})
}

// Get returns the count for v and whether v was matched at all.
func (c Counts) Get(v sheet.Value) (int, bool) {
	i, ok := c.idx[v.Key()]
	if !ok {
		return 0, false
	}
	return c.items[i].N, true
}

func (c Counts) Len() int {
	return len(c.items)
}

// All returns a copy of the counts in first-encounter order.
func (c Counts) All() []Count {
	return append([]Count(nil), c.items...)
}

// Result is the outcome of a single Compare call.
type Result struct {
	Mode    Mode
	Entries []Entry
	Counts  Counts
}

// Empty reports whether no matches were found. An empty result is not an
// error.
func (r Result) Empty() bool {
	return len(r.Entries) == 0
}
