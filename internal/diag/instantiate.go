package diag

import "pycheck/internal/source"

// Display is a diagnostic made concrete against a file set: the span is
// resolved to a path and line/column, and the kind's messages are rendered
// to strings. This is the shape formatters and the disk cache consume.
type Display struct {
	Path        string `json:"path" msgpack:"path"`
	Line        uint32 `json:"line" msgpack:"line"`
	Col         uint32 `json:"column" msgpack:"column"`
	StopLine    uint32 `json:"stop_line" msgpack:"stop_line"`
	StopCol     uint32 `json:"stop_column" msgpack:"stop_column"`
	Code        uint16 `json:"code" msgpack:"code"`
	Name        string `json:"name" msgpack:"name"`
	Severity    string `json:"severity" msgpack:"severity"`
	Description string `json:"description" msgpack:"description"`
	Concise     string `json:"concise_description" msgpack:"concise_description"`
}

// Instantiate resolves a diagnostic against the file set. pathMode and
// baseDir control path rendering the same way File.FormatPath does.
func Instantiate(fs *source.FileSet, d Diagnostic, pathMode, baseDir string) Display {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	return Display{
		Path:        f.FormatPath(pathMode, baseDir),
		Line:        start.Line,
		Col:         start.Col,
		StopLine:    end.Line,
		StopCol:     end.Col,
		Code:        uint16(d.Code()),
		Name:        d.Code().ID(),
		Severity:    d.Severity.Label(),
		Description: d.Description(),
		Concise:     d.Concise(),
	}
}

// InstantiateAll resolves every diagnostic in the bag, preserving order.
func InstantiateAll(fs *source.FileSet, bag *Bag, pathMode, baseDir string) []Display {
	out := make([]Display, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, Instantiate(fs, d, pathMode, baseDir))
	}
	return out
}
