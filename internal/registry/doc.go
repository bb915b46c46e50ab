// Package registry provides the central lookup of target models.
//
// The Registry maps the model identifiers used on the command line and in
// configuration (e.g. "HadCM3", "UKESM") to the parameter mapping that
// translates tuning parameters for that model. Built-in models are compiled
// in as Modules; further models can be added from mapping files at startup.
//
// After population the registry is validated so that a broken mapping is
// reported before any run directory is touched.
package registry
