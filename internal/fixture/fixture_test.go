package fixture

import (
	"testing"

	"datacheck/internal/ast"
	"datacheck/internal/diag"
	"datacheck/internal/source"
	"datacheck/internal/types"
)

const barFixture = `
[[class]]
name = "Bar"

[[class.member]]
name = "bbb"
type = "int"

[[class.member]]
name = "ccc"
type = "str"

[[class.member]]
name = "aaa"
value = "'string'"

[[call]]
class = "Bar"
args = ["5", "'hello'"]
`

func load(t *testing.T, content string) (*ast.Module, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(50)
	mod, err := LoadBytes(fs, "test.toml", []byte(content), diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	return mod, bag
}

func TestLoadClassAndCall(t *testing.T) {
	mod, bag := load(t, barFixture)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	classes := mod.Classes()
	if len(classes) != 1 {
		t.Fatalf("classes = %d, want 1", len(classes))
	}
	class := mod.Class(classes[0])
	if got := mod.Strings.MustLookup(class.Name); got != "Bar" {
		t.Errorf("class name = %q, want Bar", got)
	}
	if len(class.Members) != 3 {
		t.Fatalf("members = %d, want 3", len(class.Members))
	}
	if mod.Member(class.Members[2]).Kind != ast.MemberAssign {
		t.Error("member without a type must load as a plain assignment")
	}

	calls := mod.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	call := mod.Call(calls[0])
	if len(call.Positional) != 2 || len(call.Keywords) != 0 {
		t.Fatalf("call shape = %d pos / %d kw, want 2/0", len(call.Positional), len(call.Keywords))
	}
	b := mod.Types.Builtins()
	if mod.Expr(call.Positional[0]).Type != b.Int {
		t.Error("literal 5 must classify as int")
	}
	if mod.Expr(call.Positional[1]).Type != b.Str {
		t.Error("quoted literal must classify as str")
	}
}

func TestLoadKeywordsSorted(t *testing.T) {
	mod, _ := load(t, `
[[class]]
name = "Bar"

[[class.member]]
name = "bbb"
type = "int"

[[call]]
class = "Bar"
[call.kwargs]
zzz = "1"
aaa = "2"
`)
	call := mod.Call(mod.Calls()[0])
	if len(call.Keywords) != 2 {
		t.Fatalf("keywords = %d, want 2", len(call.Keywords))
	}
	if mod.Strings.MustLookup(call.Keywords[0].Name) != "aaa" {
		t.Error("keywords must be sorted by name for determinism")
	}
}

func TestLoadInitVarAnnotation(t *testing.T) {
	mod, bag := load(t, `
[[class]]
name = "Baz2"

[[class.member]]
name = "aaa"
type = "str"

[[class.member]]
name = "ddd"
type = "InitVar[int]"
default = "3"
`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	class := mod.Class(mod.Classes()[0])
	ddd := mod.Member(class.Members[1])
	inner, wrapped := mod.Types.Unwrap(ddd.Annotation)
	if !wrapped || inner != mod.Types.Builtins().Int {
		t.Errorf("InitVar[int] must load as a wrapper around int")
	}
	if !ddd.HasDefault() {
		t.Error("default literal must attach to the field")
	}
}

func TestLoadDiagnostics(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		_, bag := load(t, `
[[class]]
name = "Oops"

[[class.member]]
name = "x"
type = "complex"
`)
		if bag.Len() != 1 || bag.Items()[0].Code != diag.FixUnknownType {
			t.Fatalf("want one FixUnknownType, got %v", bag.Items())
		}
	})

	t.Run("bad literal", func(t *testing.T) {
		_, bag := load(t, `
[[class]]
name = "Oops"

[[class.member]]
name = "x"
type = "int"
default = "not a literal"
`)
		if bag.Len() != 1 || bag.Items()[0].Code != diag.FixBadLiteral {
			t.Fatalf("want one FixBadLiteral, got %v", bag.Items())
		}
	})

	t.Run("invalid toml is an error", func(t *testing.T) {
		fs := source.NewFileSet()
		if _, err := LoadBytes(fs, "broken.toml", []byte("[[class"), diag.NopReporter{}); err == nil {
			t.Fatal("syntactically invalid TOML must fail the load")
		}
	})
}

func TestClassifyLiteral(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	tests := []struct {
		text string
		want types.TypeID
		ok   bool
	}{
		{"5", b.Int, true},
		{"-12", b.Int, true},
		{"3.25", b.Float, true},
		{"'hello'", b.Str, true},
		{`"hello"`, b.Str, true},
		{"True", b.Bool, true},
		{"false", b.Bool, true},
		{"None", b.None, true},
		{"", types.NoTypeID, false},
		{"not a literal", types.NoTypeID, false},
	}
	for _, tt := range tests {
		got, ok := classifyLiteral(in, tt.text)
		if got != tt.want || ok != tt.ok {
			t.Errorf("classifyLiteral(%q) = (%d, %v), want (%d, %v)", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSpannerRecoversPositions(t *testing.T) {
	mod, _ := load(t, barFixture)
	class := mod.Class(mod.Classes()[0])
	bbb := mod.Member(class.Members[0])
	if bbb.Span.Empty() {
		t.Error("member span must be recovered from the raw content")
	}
	call := mod.Call(mod.Calls()[0])
	if call.Span.Empty() {
		t.Error("call span must cover the call's tokens")
	}
}
