package report

import (
	"testing"

	"github.com/cockroachdb/sheetcmp/match"
	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/stretchr/testify/require"
)

func keyTable(t *testing.T, name string, keys ...string) *sheet.Table {
	tbl := sheet.NewTable(name, "k")
	for _, k := range keys {
		require.NoError(t, tbl.AppendRow(sheet.Text(k)))
	}
	return tbl
}

// sampleResult has entries A(2,2), B(3,3), B(3,4), A(4,2) and both values
// counted twice.
func sampleResult(t *testing.T) match.Result {
	res, err := match.Compare(
		keyTable(t, "s", "A", "B", "A"),
		keyTable(t, "t", "A", "B", "B"),
		"k", "k",
		match.ModeExact,
	)
	require.NoError(t, err)
	return res
}

func tableRows(tbl *sheet.Table) [][]string {
	var ret [][]string
	for _, rec := range tbl.Records {
		row := make([]string, len(rec))
		for i, f := range rec {
			row[i] = f.Value.String()
		}
		ret = append(ret, row)
	}
	return ret
}

func TestDetailTable(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		tbl := DetailTable(sampleResult(t), match.ModeExact, LabelsEN)
		require.Equal(t, []sheet.ColumnName{"Value", "Source Row", "Target Row"}, tbl.Columns)
		require.Equal(t, [][]string{
			{"A", "2", "2"},
			{"B", "3", "3"},
			{"B", "3", "4"},
			{"A", "4", "2"},
		}, tableRows(tbl))
		require.Equal(t, sheet.KindNumber, tbl.Records[0][1].Value.Kind())
	})

	t.Run("partial", func(t *testing.T) {
		res, err := match.Compare(
			keyTable(t, "s", "A0"),
			keyTable(t, "t", "x", "A001"),
			"k", "k",
			match.ModePartial,
		)
		require.NoError(t, err)
		tbl := DetailTable(res, match.ModePartial, LabelsPT)
		require.Equal(t, "Resultados", tbl.Name)
		require.Equal(t, []sheet.ColumnName{
			"Valor Planilha 1", "Valor Planilha 2", "Linha Planilha 1", "Linha Planilha 2",
		}, tbl.Columns)
		require.Equal(t, [][]string{{"A0", "A001", "2", "3"}}, tableRows(tbl))
	})

	t.Run("empty", func(t *testing.T) {
		tbl := DetailTable(match.Result{Mode: match.ModeExact}, match.ModeExact, LabelsEN)
		require.Len(t, tbl.Columns, 3)
		require.Equal(t, 0, tbl.NumRows())
	})
}

func TestCountTable(t *testing.T) {
	res, err := match.Compare(
		keyTable(t, "s", "C", "A", "B"),
		keyTable(t, "t", "A", "B", "B", "C", "A"),
		"k", "k",
		match.ModeExact,
	)
	require.NoError(t, err)
	tbl := CountTable(res.Counts, LabelsEN)
	require.Equal(t, []sheet.ColumnName{"Value", "Repetitions"}, tbl.Columns)
	// Ties keep first-encounter order.
	require.Equal(t, [][]string{{"A", "2"}, {"B", "2"}, {"C", "1"}}, tableRows(tbl))

	empty := CountTable(match.Counts{}, LabelsPT)
	require.Equal(t, []sheet.ColumnName{"Valor", "Quantidade de Repetições"}, empty.Columns)
	require.Equal(t, 0, empty.NumRows())
}

func TestSearch(t *testing.T) {
	res := sampleResult(t)
	for _, tc := range []struct {
		needle   string
		expected [][2]int
	}{
		{needle: "", expected: [][2]int{{2, 2}, {3, 3}, {3, 4}, {4, 2}}},
		{needle: "b", expected: [][2]int{{3, 3}, {3, 4}}},
		{needle: "A", expected: [][2]int{{2, 2}, {4, 2}}},
		{needle: "zz", expected: nil},
	} {
		t.Run(tc.needle, func(t *testing.T) {
			var got [][2]int
			for e := range Search(res, tc.needle) {
				got = append(got, [2]int{e.SourceRow, e.TargetRow})
			}
			require.Equal(t, tc.expected, got)
		})
	}

	t.Run("stops early", func(t *testing.T) {
		n := 0
		for range Search(res, "") {
			n++
			if n == 2 {
				break
			}
		}
		require.Equal(t, 2, n)
	})
}

func TestSummarize(t *testing.T) {
	require.Equal(t, Summary{
		Mode:           match.ModeExact,
		TotalMatches:   4,
		UniqueValues:   2,
		MaxRepetitions: 2,
	}, Summarize(sampleResult(t)))
	require.Equal(t, Summary{Mode: match.ModePartial}, Summarize(match.Result{Mode: match.ModePartial}))
}

func TestLabelsFor(t *testing.T) {
	for _, tc := range []struct {
		lang     string
		expected Labels
	}{
		{lang: "", expected: LabelsEN},
		{lang: "EN", expected: LabelsEN},
		{lang: "pt", expected: LabelsPT},
		{lang: "pt-BR", expected: LabelsPT},
	} {
		t.Run(tc.lang, func(t *testing.T) {
			l, err := LabelsFor(tc.lang)
			require.NoError(t, err)
			require.Equal(t, tc.expected, l)
		})
	}
	_, err := LabelsFor("fr")
	require.Error(t, err)
}
