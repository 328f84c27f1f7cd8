package diagfmt

import (
	"encoding/json"
	"io"

	"pycheck/internal/diag"
	"pycheck/internal/source"
)

// Output is the root structure of the JSON rendering.
type Output struct {
	Diagnostics []diag.Display `json:"diagnostics"`
	Count       int            `json:"count"`
	Truncated   bool           `json:"truncated,omitempty"`
}

// JSON writes the bag as a single JSON document. Count always reflects the
// full bag even when Max truncates the listed diagnostics.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	displays := diag.InstantiateAll(fs, bag, opts.PathMode.formatArg(), fs.BaseDir())
	out := Output{Diagnostics: displays, Count: len(displays)}
	if opts.Max > 0 && len(displays) > opts.Max {
		out.Diagnostics = displays[:opts.Max]
		out.Truncated = true
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
