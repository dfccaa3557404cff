// Package version provides semantic version parsing and comparison for
// artifact version boundaries.
//
// The provisioning pipeline changes artifact URL layout at a fixed release
// boundary, so comparisons must use full major.minor.patch precedence rather
// than lexicographic string ordering ("0.10.0" is older than "0.9.0" as a
// string but newer as a version). Parse enforces exactly three numeric
// components and fails fast with an INVALID_VERSION_FORMAT structured error
// for anything else.
package version
