package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sheetcmp/match"
	"github.com/cockroachdb/sheetcmp/sheet"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", errors.Newf("invalid output format %q (expected text|json|yaml)", s)
}

// Output is everything printed for a comparison.
type Output struct {
	Summary Summary       `json:"summary" yaml:"summary"`
	Counts  []CountOutput `json:"counts" yaml:"counts"`
	Search  *SearchOutput `json:"search,omitempty" yaml:"search,omitempty"`
}

type CountOutput struct {
	Value sheet.Value `json:"value" yaml:"value"`
	Count int         `json:"count" yaml:"count"`
}

type SearchOutput struct {
	Needle string      `json:"needle" yaml:"needle"`
	Hits   []HitOutput `json:"hits" yaml:"hits"`
}

type HitOutput struct {
	SourceRow int           `json:"source_row" yaml:"source_row"`
	TargetRow int           `json:"target_row" yaml:"target_row"`
	Source    orderedRecord `json:"source" yaml:"source"`
	Target    orderedRecord `json:"target" yaml:"target"`
}

// orderedRecord keeps column order when encoded as a YAML mapping.
type orderedRecord sheet.Record

func (r orderedRecord) MarshalJSON() ([]byte, error) {
	return sheet.Record(r).MarshalJSON()
}

func (r orderedRecord) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range r {
		var v yaml.Node
		if err := v.Encode(f.Value.Native()); err != nil {
			return nil, err
		}
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(f.Column)},
			&v,
		)
	}
	return n, nil
}

// BuildOutput assembles the printable view of res. If search is non-nil, the
// entries matching *search are included with their full records.
func BuildOutput(res match.Result, search *string) Output {
	out := Output{Summary: Summarize(res), Counts: []CountOutput{}}
	for _, c := range SortedCounts(res.Counts) {
		out.Counts = append(out.Counts, CountOutput{Value: c.Value, Count: c.N})
	}
	if search != nil {
		so := &SearchOutput{Needle: *search, Hits: []HitOutput{}}
		for e := range Search(res, *search) {
			so.Hits = append(so.Hits, HitOutput{
				SourceRow: e.SourceRow,
				TargetRow: e.TargetRow,
				Source:    orderedRecord(e.SourceRecord),
				Target:    orderedRecord(e.TargetRecord),
			})
		}
		out.Search = so
	}
	return out
}

// Printer writes an Output in the configured format.
type Printer struct {
	w      io.Writer
	format Format
	labels Labels
}

func NewPrinter(w io.Writer, format Format, l Labels) *Printer {
	return &Printer{w: w, format: format, labels: l}
}

func (p *Printer) Print(out Output) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(out)
	case FormatText:
		return p.printText(out)
	}
	return errors.AssertionFailedf("unsupported format: %s", p.format)
}

func (p *Printer) printText(out Output) error {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "mode:\t%s\n", out.Summary.Mode)
	fmt.Fprintf(tw, "total matches:\t%d\n", out.Summary.TotalMatches)
	fmt.Fprintf(tw, "unique values:\t%d\n", out.Summary.UniqueValues)
	fmt.Fprintf(tw, "max repetitions:\t%d\n", out.Summary.MaxRepetitions)
	if len(out.Counts) > 0 {
		fmt.Fprintf(tw, "\n%s\t%s\n", strings.ToUpper(p.labels.Value), strings.ToUpper(p.labels.Count))
		for _, c := range out.Counts {
			fmt.Fprintf(tw, "%s\t%d\n", c.Value.String(), c.Count)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if out.Search == nil {
		return nil
	}
	fmt.Fprintf(p.w, "\nsearch %q: %d occurrence(s)\n", out.Search.Needle, len(out.Search.Hits))
	for i, h := range out.Search.Hits {
		fmt.Fprintf(p.w, "#%d  %s %d  %s %d\n", i+1, p.labels.SourceRow, h.SourceRow, p.labels.TargetRow, h.TargetRow)
		fmt.Fprintf(p.w, "  source: %s\n", formatRecord(sheet.Record(h.Source)))
		fmt.Fprintf(p.w, "  target: %s\n", formatRecord(sheet.Record(h.Target)))
	}
	return nil
}

func formatRecord(r sheet.Record) string {
	parts := make([]string, len(r))
	for i, f := range r {
		parts[i] = fmt.Sprintf("%s=%s", f.Column, f.Value.String())
	}
	return strings.Join(parts, " ")
}
