package dbconn

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sheetcmp/sheet"
	"github.com/jackc/pgx/v5/pgtype"
)

// ConvertValue converts a value decoded by a database driver into a cell.
func ConvertValue(val interface{}) (sheet.Value, error) {
	switch val := val.(type) {
	case nil:
		return sheet.Null(), nil
	case string:
		return sheet.Text(val), nil
	case []byte:
		return sheet.Text(string(val)), nil
	case bool:
		return sheet.Bool(val), nil
	case int:
		return sheet.Int(int64(val)), nil
	case int8:
		return sheet.Int(int64(val)), nil
	case int16:
		return sheet.Int(int64(val)), nil
	case int32:
		return sheet.Int(int64(val)), nil
	case int64:
		return sheet.Int(val), nil
	case uint8:
		return sheet.Int(int64(val)), nil
	case uint16:
		return sheet.Int(int64(val)), nil
	case uint32:
		return sheet.Int(int64(val)), nil
	case uint64:
		var d apd.Decimal
		d.Coeff.SetUint64(val)
		return sheet.Number(&d), nil
	case float32:
		return convertFloat(float64(val))
	case float64:
		return convertFloat(val)
	case pgtype.Numeric:
		return convertNumeric(val)
	case time.Time:
		return sheet.Text(formatTime(val)), nil
	case [16]byte:
		return sheet.Text(fmt.Sprintf("%x-%x-%x-%x-%x", val[0:4], val[4:6], val[6:8], val[8:10], val[10:16])), nil
	case fmt.Stringer:
		return sheet.Text(val.String()), nil
	}
	return sheet.Text(fmt.Sprint(val)), nil
}

// convertFloat keeps non-finite floats as the text PostgreSQL prints for them.
func convertFloat(f float64) (sheet.Value, error) {
	switch {
	case math.IsNaN(f):
		return sheet.Text("NaN"), nil
	case math.IsInf(f, 1):
		return sheet.Text("Infinity"), nil
	case math.IsInf(f, -1):
		return sheet.Text("-Infinity"), nil
	}
	return sheet.Float(f)
}

func convertNumeric(n pgtype.Numeric) (sheet.Value, error) {
	switch {
	case !n.Valid:
		return sheet.Null(), nil
	case n.NaN:
		return sheet.Text("NaN"), nil
	case n.InfinityModifier == pgtype.Infinity:
		return sheet.Text("Infinity"), nil
	case n.InfinityModifier == pgtype.NegativeInfinity:
		return sheet.Text("-Infinity"), nil
	case n.Int == nil:
		return sheet.Value{}, errors.AssertionFailedf("valid numeric without a coefficient")
	}
	var coeff apd.BigInt
	coeff.SetMathBigInt(n.Int)
	return sheet.Number(apd.NewWithBigInt(&coeff, n.Exp)), nil
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

// convertMySQLValue handles the text protocol, where the driver returns
// numbers as []byte. dbType is the column's DatabaseTypeName.
func convertMySQLValue(val interface{}, dbType string) (sheet.Value, error) {
	b, ok := val.([]byte)
	if !ok {
		return ConvertValue(val)
	}
	switch strings.ToUpper(dbType) {
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "BIGINT",
		"UNSIGNED TINYINT", "UNSIGNED SMALLINT", "UNSIGNED MEDIUMINT", "UNSIGNED INT", "UNSIGNED BIGINT",
		"DECIMAL", "FLOAT", "DOUBLE", "YEAR":
		v, err := sheet.ParseNumber(string(b))
		if err != nil {
			return sheet.Value{}, err
		}
		return v, nil
	}
	return sheet.Text(string(b)), nil
}
