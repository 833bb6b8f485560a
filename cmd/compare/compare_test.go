package compare

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sheetcmp/match"
	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/cockroachdb/sheetcmp/sheetload"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(contents), 0o644))
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	cmd := Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	source := writeFile(t, dir, "products.csv", "Code,Product\nA001,Notebook\nB002,Mouse\nC003,Keyboard\n")
	target := writeFile(t, dir, "stock.csv", "ID;Desc\nB002;Mouse pad\nA001;Notebook bag\nA001;Sleeve\n")
	exportDir := filepath.Join(dir, "out")

	out, err := run(t,
		"--source", source,
		"--target", target,
		"--source-key", "Code",
		"--target-key", "ID",
		"--format", "json",
		"--lang", "pt",
		"--local-path", exportDir,
	)
	require.NoError(t, err)

	var decoded struct {
		Summary struct {
			Mode         string `json:"mode"`
			TotalMatches int    `json:"total_matches"`
		} `json:"summary"`
		Counts []struct {
			Value string `json:"value"`
			Count int    `json:"count"`
		} `json:"counts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Equal(t, "exact", decoded.Summary.Mode)
	require.Equal(t, 3, decoded.Summary.TotalMatches)
	require.Len(t, decoded.Counts, 2)
	require.Equal(t, "A001", decoded.Counts[0].Value)
	require.Equal(t, 2, decoded.Counts[0].Count)

	f, err := excelize.OpenFile(filepath.Join(exportDir, "resultados_comparacao.xlsx"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Resultados")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Valor", "Linha Planilha 1", "Linha Planilha 2"},
		{"A001", "2", "3"},
		{"A001", "2", "4"},
		{"B002", "3", "2"},
	}, rows)

	counts, err := sheetload.LoadFile(
		context.Background(), &sheetload.XLSX{}, filepath.Join(exportDir, "contagem_repeticoes.xlsx"),
	)
	require.NoError(t, err)
	require.Equal(t, []sheet.ColumnName{"Valor", "Quantidade de Repetições"}, counts.Columns)
	require.Equal(t, 2, counts.NumRows())
}

func TestCompareCommandPartialSearch(t *testing.T) {
	dir := t.TempDir()
	source := writeFile(t, dir, "a.csv", "Code\nA0\nzz\n")
	target := writeFile(t, dir, "b.csv", "Code\nA001\nA002\nB001\n")

	out, err := run(t,
		"--source", source,
		"--target", target,
		"--source-key", "Code",
		"--target-key", "Code",
		"--mode", "parcial",
		"--search", "a0",
		"--no-export",
	)
	require.NoError(t, err)
	require.Contains(t, out, `search "a0": 2 occurrence(s)`)
	require.Contains(t, out, "target: Code=A002")
	_, err = os.Stat(filepath.Join(".", "comparison_results.xlsx"))
	require.True(t, os.IsNotExist(err))
}

func TestCompareCommandNoMatches(t *testing.T) {
	dir := t.TempDir()
	source := writeFile(t, dir, "a.csv", "Code\nA\n")
	target := writeFile(t, dir, "b.csv", "Code\nB\n")
	exportDir := filepath.Join(dir, "out")

	out, err := run(t,
		"--source", source,
		"--target", target,
		"--source-key", "Code",
		"--target-key", "Code",
		"--local-path", exportDir,
	)
	require.NoError(t, err)
	require.Empty(t, out)
	_, err = os.Stat(exportDir)
	require.True(t, os.IsNotExist(err))
}

func TestCompareCommandErrors(t *testing.T) {
	dir := t.TempDir()
	source := writeFile(t, dir, "a.csv", "Code\nA\n")

	for _, tc := range []struct {
		desc string
		args []string
		mark error
	}{
		{
			desc: "missing column",
			args: []string{"--source", source, "--target", source, "--source-key", "Code", "--target-key", "Nope"},
			mark: match.ErrInvalidColumn,
		},
		{
			desc: "bad mode",
			args: []string{"--source", source, "--target", source, "--source-key", "Code", "--target-key", "Code", "--mode", "fuzzy"},
			mark: match.ErrInvalidMode,
		},
		{
			desc: "missing file",
			args: []string{"--source", source, "--target", filepath.Join(dir, "nope.csv"), "--source-key", "Code", "--target-key", "Code"},
			mark: sheetload.ErrUnreadableSource,
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := run(t, append(tc.args, "--no-export")...)
			require.True(t, errors.Is(err, tc.mark), "unexpected error: %v", err)
		})
	}
}
