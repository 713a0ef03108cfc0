package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"theorycheck/internal/source"
)

// Line is one diagnostic, or one of its notes, flattened for one-line
// output.
type Line struct {
	Label   string // severity label, or "note"
	Code    string
	Path    string
	Line    uint32
	Column  uint32
	Message string
}

func (l Line) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.Label, l.Code, l.Path, l.Line, l.Column, l.Message)
}

// LineOptions controls Lines.
type LineOptions struct {
	Notes bool
	// SkipGenerated drops entries under bin/ or obj/.
	SkipGenerated bool
}

// Lines flattens diags into position order. Paths are relative to the file
// set base with forward slashes; spans into unknown files are dropped.
func Lines(diags []*Diagnostic, fs *source.FileSet, opts LineOptions) []Line {
	if fs == nil {
		return nil
	}
	var out []Line
	add := func(label string, code Code, span source.Span, msg string) {
		if !fs.Has(span.File) {
			return
		}
		path := strings.TrimPrefix(filepath.ToSlash(fs.Get(span.File).FormatPath("relative", fs.BaseDir())), "./")
		if opts.SkipGenerated && generatedPath(path) {
			return
		}
		start, _ := fs.Resolve(span)
		out = append(out, Line{
			Label:   label,
			Code:    code.ID(),
			Path:    path,
			Line:    start.Line,
			Column:  start.Col,
			Message: strings.Join(strings.Fields(msg), " "),
		})
	}
	for _, d := range diags {
		add(d.Severity.Label(), d.Code, d.Primary, d.Message)
		if opts.Notes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Span, n.Msg)
			}
		}
	}
	slices.SortStableFunc(out, func(a, b Line) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.Label, b.Label),
			cmp.Compare(a.Code, b.Code),
			cmp.Compare(a.Message, b.Message),
		)
	})
	return out
}

// generatedPath matches build output such as obj/Debug/AssemblyInfo.cs.
func generatedPath(p string) bool {
	p = "/" + strings.TrimLeft(p, "/")
	return strings.Contains(p, "/obj/") || strings.Contains(p, "/bin/")
}

func joinLines(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

// FormatGoldenDiagnostics renders diags one per line for golden comparisons
// in tests, without generated files.
func FormatGoldenDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return joinLines(Lines(diags, fs, LineOptions{Notes: includeNotes, SkipGenerated: true}))
}

// FormatShortDiagnostics is the layout of `check --format short`.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return joinLines(Lines(diags, fs, LineOptions{Notes: includeNotes}))
}
