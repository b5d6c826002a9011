package types

import (
	"testing"

	"datacheck/internal/source"
)

func TestInternStable(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	if b.Int == NoTypeID || b.Str == NoTypeID {
		t.Fatal("builtins must be interned")
	}
	if in.Intern(Type{Kind: KindInt}) != b.Int {
		t.Error("re-interning a builtin must return the same ID")
	}

	wrapped := in.InternInitOnly(b.Int)
	if wrapped == b.Int {
		t.Error("wrapper must get its own ID")
	}
	if again := in.InternInitOnly(b.Int); again != wrapped {
		t.Errorf("wrapper interning not stable: %d != %d", again, wrapped)
	}
}

func TestUnwrap(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	wrapped := in.InternInitOnly(b.Int)
	inner, was := in.Unwrap(wrapped)
	if !was || inner != b.Int {
		t.Errorf("Unwrap = (%d, %v), want (%d, true)", inner, was, b.Int)
	}

	same, was := in.Unwrap(b.Str)
	if was || same != b.Str {
		t.Errorf("Unwrap on a plain type must be identity, got (%d, %v)", same, was)
	}
}

func TestAssignable(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	tests := []struct {
		name             string
		actual, declared TypeID
		want             bool
	}{
		{"identical", b.Int, b.Int, true},
		{"int to float widening", b.Int, b.Float, true},
		{"float not to int", b.Float, b.Int, false},
		{"str not to int", b.Str, b.Int, false},
		{"any accepts str", b.Str, b.Any, true},
		{"any provides int", b.Any, b.Int, true},
		{"none only to none", b.None, b.Str, false},
		{"none to none", b.None, b.None, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := in.Assignable(tt.actual, tt.declared); got != tt.want {
				t.Errorf("Assignable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassLabel(t *testing.T) {
	in := NewInterner()
	strs := source.NewInterner()

	id := in.RegisterClass(strs.Intern("Bar"), source.Span{})
	if got := in.Label(id, strs); got != "Bar" {
		t.Errorf("Label = %q, want Bar", got)
	}
	if got := in.Label(in.InternInitOnly(in.Builtins().Int), strs); got != "InitVar[int]" {
		t.Errorf("Label = %q, want InitVar[int]", got)
	}
}
