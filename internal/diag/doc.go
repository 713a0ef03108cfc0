// Package diag defines the diagnostic model shared by the front end, the
// InlineData rules and the driver.
//
// A Diagnostic is a plain value: severity, a numeric Code with a stable
// string ID, a message, the primary span and optional notes. Rule codes live
// in the 1000 range and render as "xUnit1009".."xUnit1012", matching the IDs
// test authors already know; host codes use LEX, SYN, IO and PRJ prefixes.
//
// Producers emit through a Reporter. BagReporter stores into a Bag, which
// supports sorting, deduplication, filtering and warning promotion.
// Rendering lives in internal/diagfmt.
//
// Diagnostics carry msgpack tags: the driver caches them on disk per file.
package diag
