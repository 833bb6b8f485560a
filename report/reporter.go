package report

import (
	"fmt"

	"github.com/cockroachdb/sheetcmp/match"
	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/rs/zerolog"
)

// ReportableObject is anything a Reporter knows how to report.
type ReportableObject interface{}

type Reporter interface {
	Report(obj ReportableObject)
	Close()
}

type CombinedReporter struct {
	Reporters []Reporter
}

func (c CombinedReporter) Report(obj ReportableObject) {
	for _, r := range c.Reporters {
		r.Report(obj)
	}
}

func (c CombinedReporter) Close() {
	for _, r := range c.Reporters {
		r.Close()
	}
}

type StatusReport struct {
	Info string
}

// NoMatches is reported when a comparison finds nothing.
type NoMatches struct {
	Mode match.Mode
}

// SearchHit is a single entry found by Search. Index is 1-based.
type SearchHit struct {
	Needle string
	Index  int
	Entry  match.Entry
}

// LogReporter reports to `zerolog`.
type LogReporter struct {
	zerolog.Logger
}

func (l LogReporter) Report(obj ReportableObject) {
	switch obj := obj.(type) {
	case StatusReport:
		l.Info().Msg(obj.Info)
	case Summary:
		l.Info().
			Str("mode", string(obj.Mode)).
			Int("total_matches", obj.TotalMatches).
			Int("unique_values", obj.UniqueValues).
			Int("max_repetitions", obj.MaxRepetitions).
			Msgf("found %d matches", obj.TotalMatches)
	case NoMatches:
		l.Warn().
			Str("mode", string(obj.Mode)).
			Msgf("no matches found between the tables")
	case SearchHit:
		l.Debug().
			Str("needle", obj.Needle).
			Int("occurrence", obj.Index).
			Int("source_row", obj.Entry.SourceRow).
			Int("target_row", obj.Entry.TargetRow).
			Dict("source", recordDict(obj.Entry.SourceRecord)).
			Dict("target", recordDict(obj.Entry.TargetRecord)).
			Msgf("search hit")
	default:
		l.Error().
			Str("type", fmt.Sprintf("%T", obj)).
			Msgf("unknown object type")
	}
}

func recordDict(r sheet.Record) *zerolog.Event {
	d := zerolog.Dict()
	for _, f := range r {
		d = d.Str(string(f.Column), f.Value.String())
	}
	return d
}

func (l LogReporter) Close() {
}
