package diagfmt

import (
	"theorycheck/internal/source"
)

// displayPath formats the path of the file span points into.
func displayPath(fs *source.FileSet, span source.Span, mode PathMode) string {
	if fs == nil || !fs.Has(span.File) {
		return "<unknown>"
	}
	f := fs.Get(span.File)
	baseDir := ""
	if mode == PathModeRelative {
		baseDir = fs.BaseDir()
	}
	return f.FormatPath(mode.String(), baseDir)
}

// position returns 1-based line/column of both ends of span.
func position(fs *source.FileSet, span source.Span) (start, end source.LineCol, ok bool) {
	if fs == nil || !fs.Has(span.File) {
		return source.LineCol{}, source.LineCol{}, false
	}
	start, end = fs.Resolve(span)
	return start, end, true
}
