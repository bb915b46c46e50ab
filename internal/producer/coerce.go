package producer

import (
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

func known(value cty.Value) error {
	if value.IsNull() {
		return Domainf("value must not be null")
	}
	if !value.IsWhollyKnown() {
		return Domainf("value must be known")
	}
	return nil
}

// Float converts value to a finite float64.
func Float(value cty.Value) (float64, error) {
	if err := known(value); err != nil {
		return 0, err
	}
	n, err := convert.Convert(value, cty.Number)
	if err != nil {
		return 0, Domainf("expected a number, got %s", value.Type().FriendlyName())
	}
	f, _ := n.AsBigFloat().Float64()
	if math.IsInf(f, 0) {
		return 0, Domainf("number %s is out of range", n.AsBigFloat().String())
	}
	return f, nil
}

// Bool converts value to a Go bool.
func Bool(value cty.Value) (bool, error) {
	if err := known(value); err != nil {
		return false, err
	}
	b, err := convert.Convert(value, cty.Bool)
	if err != nil {
		return false, Domainf("expected a bool, got %s", value.Type().FriendlyName())
	}
	return b.True(), nil
}

// String converts value to a Go string.
func String(value cty.Value) (string, error) {
	if err := known(value); err != nil {
		return "", err
	}
	s, err := convert.Convert(value, cty.String)
	if err != nil {
		return "", Domainf("expected a string, got %s", value.Type().FriendlyName())
	}
	return s.AsString(), nil
}

// NumberList builds a cty list of numbers from values.
func NumberList(values []float64) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.Number)
	}
	elems := make([]cty.Value, len(values))
	for i, v := range values {
		elems[i] = cty.NumberFloatVal(v)
	}
	return cty.ListVal(elems)
}
