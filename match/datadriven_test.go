package match

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/cockroachdb/sheetcmp/testutils"
)

func TestDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata/compare", func(t *testing.T, path string) {
		tables := make(map[string]*sheet.Table)
		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "table":
				return testutils.TableCommand(t, d, tables)
			case "compare":
				var sourceName, targetName, sourceKey, targetKey, modeStr string
				d.ScanArgs(t, "source", &sourceName)
				d.ScanArgs(t, "target", &targetName)
				d.ScanArgs(t, "source-key", &sourceKey)
				d.ScanArgs(t, "target-key", &targetKey)
				d.ScanArgs(t, "mode", &modeStr)
				mode, err := ParseMode(modeStr)
				if err != nil {
					return fmt.Sprintf("error: %v", err)
				}
				res, err := Compare(
					tables[sourceName],
					tables[targetName],
					sheet.ColumnName(sourceKey),
					sheet.ColumnName(targetKey),
					mode,
				)
				if err != nil {
					return fmt.Sprintf("error: %v", err)
				}
				return formatResult(res)
			default:
				t.Fatalf("unknown command: %s", d.Cmd)
			}
			return ""
		})
	})
}

func formatResult(res Result) string {
	if res.Empty() {
		return "no matches"
	}
	var sb strings.Builder
	sb.WriteString("entries:\n")
	for _, e := range res.Entries {
		if res.Mode == ModePartial {
			sb.WriteString(fmt.Sprintf("  %s ~ %s",
				testutils.FormatValue(e.SourceValue), testutils.FormatValue(e.TargetValue)))
		} else {
			sb.WriteString("  " + testutils.FormatValue(e.SourceValue))
		}
		sb.WriteString(fmt.Sprintf(" rows=%d,%d\n", e.SourceRow, e.TargetRow))
	}
	sb.WriteString("counts:\n")
	for _, c := range res.Counts.All() {
		sb.WriteString(fmt.Sprintf("  %s: %d\n", testutils.FormatValue(c.Value), c.N))
	}
	return sb.String()
}
