package diagfmt

import (
	"io"

	"theorycheck/internal/diag"
	"theorycheck/internal/source"
)

// Short prints one line per diagnostic: `<sev> <code> <path>:<line>:<col> <message>`.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, withNotes bool) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	out := diag.FormatShortDiagnostics(bag.Pointers(), fs, withNotes)
	if _, err := io.WriteString(w, out+"\n"); err != nil {
		return err
	}
	return nil
}
