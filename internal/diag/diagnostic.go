package diag

import (
	"datacheck/internal/source"
)

// Note attaches secondary context to a diagnostic, e.g. "first declared here".
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one classified finding attached to a source span. Findings
// are data only: producers record and continue, they never unwind.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
