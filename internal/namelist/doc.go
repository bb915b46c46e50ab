// Package namelist reads and patches Fortran namelist files.
//
// Patching is textual: only the value span of an assigned key is rewritten,
// so comments, spacing and any group or key that is not edited survive
// byte-for-byte. Group and key names match case-insensitively, as they do
// for the Fortran runtime that consumes the files.
package namelist
