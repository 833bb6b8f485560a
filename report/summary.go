package report

import "github.com/cockroachdb/sheetcmp/match"

// Summary holds the headline statistics of a comparison.
type Summary struct {
	Mode           match.Mode `json:"mode" yaml:"mode"`
	TotalMatches   int        `json:"total_matches" yaml:"total_matches"`
	UniqueValues   int        `json:"unique_values" yaml:"unique_values"`
	MaxRepetitions int        `json:"max_repetitions" yaml:"max_repetitions"`
}

func Summarize(res match.Result) Summary {
	s := Summary{
		Mode:         res.Mode,
		TotalMatches: len(res.Entries),
		UniqueValues: res.Counts.Len(),
	}
	for _, c := range res.Counts.All() {
		if c.N > s.MaxRepetitions {
			s.MaxRepetitions = c.N
		}
	}
	return s
}
