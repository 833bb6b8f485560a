package report

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Labels names the columns, worksheet and files of exported tables.
type Labels struct {
	Sheet       string
	Value       string
	SourceValue string
	TargetValue string
	SourceRow   string
	TargetRow   string
	Count       string
	DetailFile  string
	CountFile   string
}

var LabelsEN = Labels{
	Sheet:       "Results",
	Value:       "Value",
	SourceValue: "Source Value",
	TargetValue: "Target Value",
	SourceRow:   "Source Row",
	TargetRow:   "Target Row",
	Count:       "Repetitions",
	DetailFile:  "comparison_results.xlsx",
	CountFile:   "repetition_counts.xlsx",
}

var LabelsPT = Labels{
	Sheet:       "Resultados",
	Value:       "Valor",
	SourceValue: "Valor Planilha 1",
	TargetValue: "Valor Planilha 2",
	SourceRow:   "Linha Planilha 1",
	TargetRow:   "Linha Planilha 2",
	Count:       "Quantidade de Repetições",
	DetailFile:  "resultados_comparacao.xlsx",
	CountFile:   "contagem_repeticoes.xlsx",
}

// LabelsFor returns the label set for a language code ("en" or "pt").
func LabelsFor(lang string) (Labels, error) {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "", "en":
		return LabelsEN, nil
	case "pt", "pt-br", "pt_br":
		return LabelsPT, nil
	}
	return Labels{}, errors.Newf("unsupported language %q (expected en or pt)", lang)
}
