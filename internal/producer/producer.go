package producer

import (
	"github.com/vk/modelopt/internal/edit"
	"github.com/zclconf/go-cty/cty"
)

// Producer converts one parameter value into one or more edits.
type Producer interface {
	Produce(value cty.Value) ([]edit.Edit, error)
}

// Func adapts an ordinary function to the Producer interface.
type Func func(value cty.Value) ([]edit.Edit, error)

// Produce calls f(value).
func (f Func) Produce(value cty.Value) ([]edit.Edit, error) {
	return f(value)
}

// Target names a namelist group within a file. Model specific producers embed
// it to build their edits.
type Target struct {
	File  string
	Group string
}

// NewTarget validates that file and group are set.
func NewTarget(file, group string) (Target, error) {
	if file == "" {
		return Target{}, Configf("namelist file must not be empty")
	}
	if group == "" {
		return Target{}, Configf("namelist group must not be empty in %s", file)
	}
	return Target{File: file, Group: group}, nil
}

// Targeter is implemented by producers that can report where their edits
// land without being run.
type Targeter interface {
	Targets() []Target
}

// Targets implements Targeter for producers embedding a single Target.
func (t Target) Targets() []Target {
	return []Target{t}
}

// Edit builds an edit of key inside the target group.
func (t Target) Edit(key string, value cty.Value) edit.Edit {
	return edit.Edit{File: t.File, Group: t.Group, Key: key, Value: value}
}

// Direct passes the value through unchanged to a single key.
type Direct struct {
	Target
	Key string
}

// NewDirect returns a producer that assigns the value to file:group.key.
func NewDirect(file, group, key string) (*Direct, error) {
	target, err := NewTarget(file, group)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, Configf("namelist key must not be empty in %s:%s", file, group)
	}
	return &Direct{Target: target, Key: key}, nil
}

// Produce implements Producer.
func (d *Direct) Produce(value cty.Value) ([]edit.Edit, error) {
	return []edit.Edit{d.Edit(d.Key, value)}, nil
}

// FanOut assigns the same value to several keys of one group.
type FanOut struct {
	Target
	Keys []string
}

// NewFanOut returns a producer that repeats the value for every key, in the
// given order.
func NewFanOut(file, group string, keys ...string) (*FanOut, error) {
	target, err := NewTarget(file, group)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, Configf("fan-out into %s:%s needs at least one key", file, group)
	}
	for _, key := range keys {
		if key == "" {
			return nil, Configf("namelist key must not be empty in %s:%s", file, group)
		}
	}
	return &FanOut{Target: target, Keys: append([]string(nil), keys...)}, nil
}

// Produce implements Producer.
func (f *FanOut) Produce(value cty.Value) ([]edit.Edit, error) {
	edits := make([]edit.Edit, 0, len(f.Keys))
	for _, key := range f.Keys {
		edits = append(edits, f.Edit(key, value))
	}
	return edits, nil
}

// Interpolated assigns the value to Key and a piecewise-linear function of
// it to DerivedKey.
type Interpolated struct {
	Target
	Key        string
	DerivedKey string
	Table      *Interpolator
}

// NewInterpolated builds an Interpolated producer over the control points
// (xs[i], ys[i]). xs must be strictly ascending.
func NewInterpolated(file, group, key, derivedKey string, xs, ys []float64) (*Interpolated, error) {
	target, err := NewTarget(file, group)
	if err != nil {
		return nil, err
	}
	if key == "" || derivedKey == "" {
		return nil, Configf("interpolated producer in %s:%s needs both keys", file, group)
	}
	table, err := NewInterpolator(xs, ys)
	if err != nil {
		return nil, err
	}
	return &Interpolated{Target: target, Key: key, DerivedKey: derivedKey, Table: table}, nil
}

// Produce implements Producer.
func (p *Interpolated) Produce(value cty.Value) ([]edit.Edit, error) {
	x, err := Float(value)
	if err != nil {
		return nil, err
	}
	y, err := p.Table.At(x)
	if err != nil {
		return nil, err
	}
	return []edit.Edit{
		p.Edit(p.Key, cty.NumberFloatVal(x)),
		p.Edit(p.DerivedKey, cty.NumberFloatVal(y)),
	}, nil
}
