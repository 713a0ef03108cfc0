// Package sema holds the InlineData rules: the Argument Binder (Bind), the
// Conversion Oracle (NullLegal, Convertible) and the diagnostic assembly that
// ties them to a call site (CheckSite, Check).
//
// Everything here is a pure function of its descriptors. The package never
// looks at syntax; internal/resolve turns parsed attributes into Sites.
package sema
