package diag

import (
	"testing"

	"datacheck/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	file := fs.Add("/workspace/testdata/calls.toml", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     CallTooManyArguments,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     DataInfo,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
	}

	expected := "error CAL3001 testdata/calls.toml:1:1 first line second\n" +
		"note CAL3001 testdata/calls.toml:2:1 note line\n" +
		"warning DCL2000 testdata/calls.toml:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestCodeIDRanges(t *testing.T) {
	tests := []struct {
		code Code
		id   string
	}{
		{FixBadLiteral, "FIX1001"},
		{DataDefaultOrderingViolation, "DCL2001"},
		{CallArgumentTypeMismatch, "CAL3005"},
		{IOReadFail, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.id)
		}
	}
}
