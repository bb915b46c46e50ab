// Package edit defines the atomic (file, group, key, value) instruction
// produced when translating tuning parameters, and the EditSet that folds
// many such instructions into a per-file, per-group, per-key view.
//
// Values are cty.Values so that scalars, logicals, strings and numeric
// sequences travel through the translation without losing their shape.
package edit
