// Package sheet contains the in-memory representation of a loaded table.
package sheet

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
)

// Kind is the type of a cell value.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a single cell. The zero Value is null.
// Values are immutable; the decimal behind a number is never modified after
// construction.
type Value struct {
	kind Kind
	text string
	num  *apd.Decimal
	b    bool
}

func Null() Value {
	return Value{}
}

func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func Int(i int64) Value {
	return Value{kind: KindNumber, num: apd.New(i, 0)}
}

// Number returns a number value holding a copy of d.
func Number(d *apd.Decimal) Value {
	var c apd.Decimal
	c.Set(d)
	return Value{kind: KindNumber, num: &c}
}

// ParseNumber parses s as a finite decimal number.
func ParseNumber(s string) (Value, error) {
	d, _, err := apd.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Value{}, errors.Wrapf(err, "error parsing number %q", s)
	}
	if d.Form != apd.Finite {
		return Value{}, errors.Newf("number %q is not finite", s)
	}
	return Value{kind: KindNumber, num: d}, nil
}

// Float returns a number value for f using its shortest decimal
// representation, so 4.4000000000000004 stored by a spreadsheet reads as 4.4.
func Float(f float64) (Value, error) {
	return ParseNumber(strconv.FormatFloat(f, 'g', 15, 64))
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Decimal returns the number held by v, or nil if v is not a number.
// The returned decimal must not be modified.
func (v Value) Decimal() *apd.Decimal {
	return v.num
}

// String returns the representation used for display and for containment
// tests: text verbatim, numbers in their shortest plain decimal form and
// booleans as true/false. Null is the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return formatDecimal(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

func formatDecimal(d *apd.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	var r apd.Decimal
	r.Reduce(d)
	return r.Text('f')
}

// Equal reports whether v and o hold the same kind and value. Values of
// different kinds are never equal; nulls are equal to each other.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.num.Cmp(o.num) == 0
	case KindBool:
		return v.b == o.b
	}
	return true
}

// Key returns a string which is identical for two values iff they are Equal.
func (v Value) Key() string {
	switch v.kind {
	case KindText:
		return "t" + v.text
	case KindNumber:
		return "n" + formatDecimal(v.num)
	case KindBool:
		if v.b {
			return "b1"
		}
		return "b0"
	}
	return "0"
}

// Native returns the value as a plain Go type: nil, string, bool, int64 for
// integral numbers that fit and float64 for every other number.
func (v Value) Native() interface{} {
	switch v.kind {
	case KindText:
		return v.text
	case KindBool:
		return v.b
	case KindNumber:
		var r apd.Decimal
		r.Reduce(v.num)
		if r.Exponent >= 0 || r.IsZero() {
			if i, err := r.Int64(); err == nil {
				return i
			}
		}
		f, err := v.num.Float64()
		if err != nil {
			return formatDecimal(v.num)
		}
		return f
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return []byte(formatDecimal(v.num)), nil
	case KindNull:
		return []byte("null"), nil
	}
	return json.Marshal(v.Native())
}

func (v Value) MarshalYAML() (interface{}, error) {
	return v.Native(), nil
}

// Infer converts a raw textual cell into a typed value. Empty strings are
// null, true/false (any case) are booleans, finite decimals are numbers and
// everything else is text.
func Infer(s string) Value {
	if s == "" {
		return Null()
	}
	switch strings.ToLower(s) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if looksNumeric(s) {
		if v, err := ParseNumber(s); err == nil {
			return v
		}
	}
	return Text(s)
}

// looksNumeric rejects strings apd would accept but a spreadsheet user would
// not consider numbers, such as "NaN" or "Infinity".
func looksNumeric(s string) bool {
	digits := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == 'e' || r == 'E':
		case (r == '-' || r == '+') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
		default:
			return false
		}
	}
	return digits > 0
}
