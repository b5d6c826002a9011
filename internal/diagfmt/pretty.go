// Package diagfmt renders collected diagnostics for the CLI: a pretty,
// optionally colorised human format and a machine-readable JSON form. It
// never mutates bags; callers sort before rendering.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"datacheck/internal/diag"
	"datacheck/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Pretty writes diagnostics in a human-readable form:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed, when opts.Context is set, by the offending source line and a
// ^~~~ underline sized to the span, then notes in the same shape.
// Call bag.Sort() first for a deterministic order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writePretty(w, &d, fs, opts)
	}
}

func writePretty(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		file.RelPath(fs.BaseDir()), start.Line, start.Col, sev, d.Code.ID(), d.Message)

	if opts.Context {
		writeContext(w, file, d.Primary, start, opts.Color)
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			nfile := fs.Get(note.Span.File)
			nstart, _ := fs.Resolve(note.Span)
			label := "note"
			if opts.Color {
				label = noteColor.Sprint(label)
			}
			fmt.Fprintf(w, "  %s:%d:%d: %s: %s\n",
				nfile.RelPath(fs.BaseDir()), nstart.Line, nstart.Col, label, note.Msg)
		}
	}
}

// writeContext prints the source line and a caret underline. The underline
// is measured in display cells, not bytes, so wide runes stay aligned.
func writeContext(w io.Writer, file *source.File, span source.Span, start source.LineCol, colored bool) {
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(line[:col])

	length := int(span.Len())
	if length < 1 {
		length = 1
	}
	if col+length > len(line) {
		length = len(line) - col
		if length < 1 {
			length = 1
		}
	}
	caretWidth := runewidth.StringWidth(line[col:min(col+length, len(line))])
	if caretWidth < 1 {
		caretWidth = 1
	}

	caret := "^" + strings.Repeat("~", caretWidth-1)
	if colored {
		caret = caretColor.Sprint(caret)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), caret)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
