// Package schema holds the HCL structures of user supplied model mapping
// files. They are decoded with gohcl and translated into registry models by
// the hcl_adapter package.
package schema

import "github.com/hashicorp/hcl/v2"

// MappingFile is the top-level structure of a mapping file. A file may
// declare any number of models.
type MappingFile struct {
	Models []*Model `hcl:"model,block"`
	Body   hcl.Body `hcl:",remain"`
}

// Model represents a `model` block: the parameter table of one target model.
type Model struct {
	Name        string       `hcl:"name,label"`
	Description string       `hcl:"description,optional"`
	Format      string       `hcl:"format,optional"`
	Parameters  []*Parameter `hcl:"parameter,block"`
}

// Parameter represents a `parameter` block. Exactly one of its producer
// blocks must be set.
type Parameter struct {
	Name         string        `hcl:"name,label"`
	Direct       *Direct       `hcl:"direct,block"`
	FanOut       *FanOut       `hcl:"fanout,block"`
	Interpolated *Interpolated `hcl:"interpolated,block"`
}

// Direct assigns the parameter value to a single namelist key.
type Direct struct {
	File  string `hcl:"file"`
	Group string `hcl:"group"`
	Key   string `hcl:"key"`
}

// FanOut assigns the parameter value to several keys of one group.
type FanOut struct {
	File  string   `hcl:"file"`
	Group string   `hcl:"group"`
	Keys  []string `hcl:"keys"`
}

// Interpolated assigns the value to key and a piecewise-linear function of it
// to derived_key.
type Interpolated struct {
	File       string    `hcl:"file"`
	Group      string    `hcl:"group"`
	Key        string    `hcl:"key"`
	DerivedKey string    `hcl:"derived_key"`
	Xs         []float64 `hcl:"xs"`
	Ys         []float64 `hcl:"ys"`
}
