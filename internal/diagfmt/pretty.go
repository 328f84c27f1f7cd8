package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pycheck/internal/diag"
	"pycheck/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.Bold)
	pathColor    = color.New(color.FgWhite, color.Bold)
	underColor   = color.New(color.FgGreen)
	noteColor    = color.New(color.FgBlue)
)

// Pretty renders each diagnostic as a header line followed by the offending
// source line with an underline, then any notes. The bag is expected to be
// sorted already.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writePretty(w, d, fs, opts)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	path := f.FormatPath(opts.PathMode.formatArg(), fs.BaseDir())

	msg := d.Concise()
	if opts.Verbose {
		msg = d.Description()
	}
	header := fmt.Sprintf("%s:%d:%d: %s %s: %s",
		paint(opts, pathColor, path), start.Line, start.Col,
		paint(opts, severityColor(d.Severity), d.Severity.Label()),
		paint(opts, codeColor, d.Code().ID()),
		msg)
	if !d.Signature.Definition.Empty() {
		header += " (in " + d.Signature.Definition.String() + ")"
	}
	fmt.Fprintln(w, clip(header, opts.Width))

	writeContext(w, f, start, end, opts, underColor)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, ne := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				paint(opts, noteColor, "note:"),
				nf.FormatPath(opts.PathMode.formatArg(), fs.BaseDir()), ns.Line, ns.Col, n.Msg)
			writeContext(w, nf, ns, ne, opts, noteColor)
		}
	}
}

// writeContext prints the first line the span touches with a ^~~~ underline
// beneath it. Multi-line spans are underlined to the end of the first line.
func writeContext(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts, c *color.Color) {
	line := f.Line(start.Line)
	if line == "" {
		return
	}
	line = strings.TrimRight(line, "\r\n")
	fmt.Fprintf(w, "  %s\n", clip(expandTabs(line), opts.Width))

	runes := []rune(expandTabs(line))
	startCol := int(start.Col)
	stopCol := len(runes) + 1
	if end.Line == start.Line && int(end.Col) <= stopCol {
		stopCol = int(end.Col)
	}
	if startCol < 1 || startCol > len(runes) {
		return
	}
	pad := runewidth.StringWidth(string(runes[:startCol-1]))
	width := runewidth.StringWidth(string(runes[startCol-1 : stopCol-1]))
	if width < 1 {
		width = 1
	}
	marks := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), paint(opts, c, marks))
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func paint(opts PrettyOpts, c *color.Color, s string) string {
	if !opts.Color {
		return s
	}
	return c.Sprint(s)
}

func clip(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
