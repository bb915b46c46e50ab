// Package mapping binds tuning-parameter names to producers for one target
// model and drives the translate-and-patch cycle against a run directory.
//
// Translation is all-or-nothing: every parameter name is checked and every
// producer is run before any file is touched, so a configuration or domain
// error never leaves a run directory half written.
package mapping
