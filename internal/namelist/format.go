package namelist

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// ErrUnsupportedValue is returned for values that have no namelist literal,
// such as maps, nested lists or nulls.
var ErrUnsupportedValue = errors.New("unsupported namelist value")

// FormatReal renders f the way Python's repr does: plain decimal notation
// with at least one fractional digit for 1e-4 <= |f| < 1e16, shortest
// exponent notation otherwise.
func FormatReal(f float64) string {
	abs := math.Abs(f)
	if f != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".nN") {
		s += ".0"
	}
	return s
}

// FormatLogical renders b as a Fortran logical literal.
func FormatLogical(b bool) string {
	if b {
		return ".true."
	}
	return ".false."
}

// FormatNumber renders a cty number. Integral values are written as integers
// unless real is set.
func FormatNumber(n *big.Float, real bool) string {
	if !real && n.IsInt() {
		i, _ := n.Int(nil)
		return i.String()
	}
	f, _ := n.Float64()
	return FormatReal(f)
}

// FormatString quotes s with single quotes, doubling embedded quotes.
func FormatString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// FormatValue renders v as namelist value text. like is the kind of the
// literal being replaced; numbers follow it so that a real stays a real.
func FormatValue(v cty.Value, like Kind) (string, error) {
	if v.IsNull() || !v.IsWhollyKnown() {
		return "", fmt.Errorf("%w: null or unknown value", ErrUnsupportedValue)
	}
	ty := v.Type()
	if ty.IsListType() || ty.IsTupleType() || ty.IsSetType() {
		if v.LengthInt() == 0 {
			return "", fmt.Errorf("%w: empty sequence", ErrUnsupportedValue)
		}
		parts := make([]string, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if !ev.Type().IsPrimitiveType() {
				return "", fmt.Errorf("%w: nested %s", ErrUnsupportedValue, ev.Type().FriendlyName())
			}
			s, err := formatScalar(ev, like)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", "), nil
	}
	return formatScalar(v, like)
}

func formatScalar(v cty.Value, like Kind) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("%w: null element", ErrUnsupportedValue)
	}
	switch v.Type() {
	case cty.String:
		return FormatString(v.AsString()), nil
	case cty.Bool:
		return FormatLogical(v.True()), nil
	case cty.Number:
		return FormatNumber(v.AsBigFloat(), like == KindReal), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedValue, v.Type().FriendlyName())
}
