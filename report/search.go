package report

import (
	"iter"
	"strings"

	"github.com/cockroachdb/sheetcmp/match"
)

// Search yields the entries whose primary value contains needle, ignoring
// case. The filter runs each time the sequence is iterated. An empty needle
// yields every entry.
func Search(res match.Result, needle string) iter.Seq[match.Entry] {
	return func(yield func(match.Entry) bool) {
		n := strings.ToLower(needle)
		for _, e := range res.Entries {
			if !strings.Contains(strings.ToLower(e.Value().String()), n) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
