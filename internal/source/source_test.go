package source

import (
	"testing"
)

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("NoStringID must resolve to the empty string, got %q, ok=%v", s, ok)
	}

	id1 := interner.Intern("bbb")
	if id1 == NoStringID {
		t.Error("Intern must not return NoStringID for a non-empty string")
	}
	if id2 := interner.Intern("bbb"); id1 != id2 {
		t.Errorf("same string must keep its ID: %d != %d", id1, id2)
	}
	if s, ok := interner.Lookup(id1); !ok || s != "bbb" {
		t.Errorf("Lookup returned %q, ok=%v", s, ok)
	}
	if id3 := interner.Intern("ccc"); id3 == id1 {
		t.Error("distinct strings must get distinct IDs")
	}
	if interner.Len() != 3 { // "", "bbb", "ccc"
		t.Errorf("Len = %d, want 3", interner.Len())
	}
}

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "widen to the right",
			a:        Span{File: 1, Start: 2, End: 4},
			b:        Span{File: 1, Start: 3, End: 9},
			expected: Span{File: 1, Start: 2, End: 9},
		},
		{
			name:     "widen to the left",
			a:        Span{File: 1, Start: 5, End: 8},
			b:        Span{File: 1, Start: 1, End: 6},
			expected: Span{File: 1, Start: 1, End: 8},
		},
		{
			name:     "different files untouched",
			a:        Span{File: 1, Start: 5, End: 8},
			b:        Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 5, End: 8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("fixture.toml", []byte("first\nsecond\nthird\n"))

	start, end := fs.Resolve(Span{File: id, Start: 6, End: 12})
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("start = %d:%d, want 2:1", start.Line, start.Col)
	}
	if end.Line != 3 || end.Col != 1 {
		t.Errorf("end = %d:%d, want 3:1", end.Line, end.Col)
	}

	if line := fs.Get(id).GetLine(2); line != "second" {
		t.Errorf("GetLine(2) = %q, want %q", line, "second")
	}
	if line := fs.Get(id).GetLine(99); line != "" {
		t.Errorf("GetLine(99) = %q, want empty", line)
	}
}

func TestFileSetLatestWins(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("a.toml", []byte("old"))
	second := fs.AddVirtual("a.toml", []byte("new"))

	if first == second {
		t.Fatal("re-adding a path must allocate a new FileID")
	}
	latest, ok := fs.GetLatest("a.toml")
	if !ok || latest != second {
		t.Errorf("GetLatest = %d, ok=%v, want %d", latest, ok, second)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc\n"))
	if !changed {
		t.Error("expected a change")
	}
	if string(out) != "a\nb\rc\n" {
		t.Errorf("got %q", out)
	}

	out, changed = normalizeCRLF([]byte("plain\n"))
	if changed {
		t.Error("no \\r means no change")
	}
	if string(out) != "plain\n" {
		t.Errorf("got %q", out)
	}
}
