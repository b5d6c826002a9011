package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	Context   bool // print the offending source line with a caret underline
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col alongside byte offsets
	IncludeNotes     bool
	Max              int // output truncation; the Bag itself is untouched
}
