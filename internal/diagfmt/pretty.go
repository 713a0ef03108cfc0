package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"theorycheck/internal/diag"
	"theorycheck/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	path := displayPath(fs, d.Primary, opts.PathMode)
	start, end, ok := position(fs, d.Primary)
	label := strings.ToUpper(d.Severity.String())
	header := fmt.Sprintf("%s %s:", label, d.Code.ID())
	if ok {
		fmt.Fprintf(w, "%s: %s %s\n", p.bold.Sprintf("%s:%d:%d", path, start.Line, start.Col), p.severity(d.Severity).Sprint(header), d.Message)
		writeSnippet(w, fs.Get(d.Primary.File), start, end, opts, p)
	} else {
		fmt.Fprintf(w, "%s: %s %s\n", p.bold.Sprint(path), p.severity(d.Severity).Sprint(header), d.Message)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nstart, nend, nok := position(fs, n.Span)
		if !nok {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
			continue
		}
		npath := displayPath(fs, n.Span, opts.PathMode)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), npath, nstart.Line, nstart.Col, n.Msg)
		writeSnippet(w, fs.Get(n.Span.File), nstart, nend, opts, p)
	}
}

// writeSnippet prints the primary line with context and a caret underline.
// Multi-line spans are underlined to the end of their first line.
func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts, p palette) {
	ctx := uint32(max(opts.Context, 0)) // #nosec G115 -- non-negative int8
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := min(start.Line+ctx, uint32(len(f.LineIdx)+1)) // #nosec G115 -- line count fits, see FileSet.Add
	last = max(last, start.Line)
	gutterWidth := len(fmt.Sprint(last))

	for line := first; line <= last; line++ {
		text := f.GetLine(line)
		shown := expandTabs(text)
		if opts.Width > 0 {
			shown = runewidth.Truncate(shown, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, line), shown)
		if line != start.Line {
			continue
		}

		startCol := int(start.Col) - 1
		endCol := len(text)
		if end.Line == start.Line {
			endCol = int(end.Col) - 1
		}
		startCol = min(max(startCol, 0), len(text))
		endCol = min(max(endCol, startCol), len(text))

		pad := runewidth.StringWidth(expandTabs(text[:startCol]))
		width := max(runewidth.StringWidth(expandTabs(text[startCol:endCol])), 1)
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
	}
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
