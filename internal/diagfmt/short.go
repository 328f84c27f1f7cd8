package diagfmt

import (
	"io"

	"pycheck/internal/diag"
	"pycheck/internal/source"
)

// Short writes one line per diagnostic in the compact path:line:col form.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) {
	io.WriteString(w, diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes))
}
