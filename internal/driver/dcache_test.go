package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"datacheck/internal/diag"
	"datacheck/internal/fixture"
	"datacheck/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	var key Digest
	key[0] = 0xAB

	in := &SignaturePayload{
		ClassName: "Bar",
		Params: []ParamPayload{
			{Name: "bbb", Type: "int", Required: true},
			{Name: "ccc", Type: "str", Required: true},
		},
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out SignaturePayload
	hit, err := cache.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("Get = (%v, %v), want hit", hit, err)
	}
	if out.ClassName != "Bar" || len(out.Params) != 2 || !out.Params[0].Required {
		t.Errorf("round trip mangled the payload: %+v", out)
	}

	var miss Digest
	miss[0] = 0xCD
	if hit, err := cache.Get(miss, &out); err != nil || hit {
		t.Errorf("unknown key must be a clean miss, got (%v, %v)", hit, err)
	}
}

func TestSignatureKeyChangesWithContent(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.Get(fs.AddVirtual("a.toml", []byte("one")))
	b := fs.Get(fs.AddVirtual("b.toml", []byte("two")))

	if SignatureKey(a, "Bar") == SignatureKey(b, "Bar") {
		t.Error("different content must produce different keys")
	}
	if SignatureKey(a, "Bar") == SignatureKey(a, "Baz") {
		t.Error("different class names must produce different keys")
	}
	if SignatureKey(a, "Bar") != SignatureKey(a, "Bar") {
		t.Error("the key must be deterministic")
	}
}

func TestStoreSignatures(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("sample.toml", []byte(dataclassSample))
	mod, err := fixture.DecodeLoaded(fs, fileID, diag.NopReporter{})
	if err != nil {
		t.Fatalf("DecodeLoaded: %v", err)
	}
	res := Analyze(mod, 100)

	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	if err := cache.StoreSignatures(res, fs.Get(fileID)); err != nil {
		t.Fatalf("StoreSignatures: %v", err)
	}

	var out SignaturePayload
	hit, err := cache.Get(SignatureKey(fs.Get(fileID), "Baz2"), &out)
	if err != nil || !hit {
		t.Fatalf("Baz2 signature must be cached, got (%v, %v)", hit, err)
	}
	if len(out.Params) != 2 || out.Params[1].Type != "int" || out.Params[1].Required {
		t.Errorf("Baz2 payload wrong: %+v", out)
	}
	if !out.Broken {
		t.Error("sample has call errors; Broken must be set")
	}
}

func TestAnalyzeWithCacheReusesSignatures(t *testing.T) {
	content := []byte(`
[[class]]
name = "Ok"

[[class.member]]
name = "x"
type = "int"

[[class.member]]
name = "y"
type = "str"
default = "'fallback'"

[[call]]
class = "Ok"
args = ["1"]
`)
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("ok.toml", content)
	file := fs.Get(fileID)

	mod, err := fixture.DecodeLoaded(fs, fileID, diag.NopReporter{})
	if err != nil {
		t.Fatalf("DecodeLoaded: %v", err)
	}
	cold := Analyze(mod, 50)
	if cold.Bag.HasErrors() || cold.CachedClasses != 0 {
		t.Fatalf("cold run: errors=%v cached=%d", cold.Bag.HasErrors(), cold.CachedClasses)
	}
	coldSig := cold.Cache.Signature(mod, mod.Classes()[0], diag.NopReporter{})

	dc, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	if err := dc.StoreSignatures(cold, file); err != nil {
		t.Fatalf("StoreSignatures: %v", err)
	}

	// Second process: fresh module from the same content.
	mod2, err := fixture.DecodeLoaded(fs, fileID, diag.NopReporter{})
	if err != nil {
		t.Fatalf("DecodeLoaded: %v", err)
	}
	warm := AnalyzeWithCache(mod2, file, dc, 50)
	if warm.CachedClasses != 1 {
		t.Fatalf("CachedClasses = %d, want 1", warm.CachedClasses)
	}
	if warm.Bag.Len() != 0 || warm.ValidCalls != 1 {
		t.Fatalf("warm run regressed: %d diagnostics, %d valid calls", warm.Bag.Len(), warm.ValidCalls)
	}

	warmSig := warm.Cache.Signature(mod2, mod2.Classes()[0], diag.NopReporter{})
	if len(warmSig.Params) != len(coldSig.Params) {
		t.Fatalf("param counts differ: %d vs %d", len(warmSig.Params), len(coldSig.Params))
	}
	for i := range coldSig.Params {
		if warmSig.Params[i].Required != coldSig.Params[i].Required {
			t.Errorf("param %d requiredness lost on the cached path", i)
		}
		if warmSig.Params[i].Span != coldSig.Params[i].Span {
			t.Errorf("param %d span lost on the cached path: %v vs %v",
				i, warmSig.Params[i].Span, coldSig.Params[i].Span)
		}
	}
}

func TestAnalyzeWithCacheBrokenReanalyzes(t *testing.T) {
	content := []byte(`
[[class]]
name = "Bad"

[[class.member]]
name = "x"
type = "int"
default = "1"

[[class.member]]
name = "y"
type = "str"
`)
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("bad.toml", content)
	file := fs.Get(fileID)

	mod, err := fixture.DecodeLoaded(fs, fileID, diag.NopReporter{})
	if err != nil {
		t.Fatalf("DecodeLoaded: %v", err)
	}
	cold := Analyze(mod, 50)
	if !cold.Bag.HasErrors() {
		t.Fatal("cold run must surface the ordering violation")
	}

	dc, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	if err := dc.StoreSignatures(cold, file); err != nil {
		t.Fatalf("StoreSignatures: %v", err)
	}

	mod2, err := fixture.DecodeLoaded(fs, fileID, diag.NopReporter{})
	if err != nil {
		t.Fatalf("DecodeLoaded: %v", err)
	}
	warm := AnalyzeWithCache(mod2, file, dc, 50)

	// A Broken entry is a forced miss: the class re-derives and its
	// declaration diagnostic fires again.
	if warm.CachedClasses != 0 {
		t.Errorf("CachedClasses = %d, want 0", warm.CachedClasses)
	}
	found := false
	for _, d := range warm.Bag.Items() {
		if d.Code == diag.DataDefaultOrderingViolation {
			found = true
		}
	}
	if !found {
		t.Error("re-analysis must re-emit the ordering violation")
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	good := `
[[class]]
name = "Ok"

[[class.member]]
name = "x"
type = "int"

[[call]]
class = "Ok"
args = ["1"]
`
	bad := `
[[class]]
name = "Bad"

[[class.member]]
name = "x"
type = "int"

[[call]]
class = "Bad"
args = ["'nope'"]
`
	if err := os.WriteFile(filepath.Join(dir, "b_good.toml"), []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a_bad.toml"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	fileSet, results, err := CheckDir(context.Background(), dir, 50, 2, nil)
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if fileSet.Len() != 2 || len(results) != 2 {
		t.Fatalf("results = %d, files = %d, want 2/2", len(results), fileSet.Len())
	}

	// Sorted-path order: a_bad first.
	if filepath.Base(results[0].Path) != "a_bad.toml" {
		t.Errorf("results[0] = %s, want a_bad.toml", results[0].Path)
	}
	if !results[0].Bag.HasErrors() {
		t.Error("a_bad.toml must surface its type mismatch")
	}
	if results[1].Bag.HasErrors() {
		t.Errorf("b_good.toml must be clean, got %v", results[1].Bag.Items())
	}
}

func TestCheckDirEmpty(t *testing.T) {
	fileSet, results, err := CheckDir(context.Background(), t.TempDir(), 50, 0, nil)
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if fileSet == nil || len(results) != 0 {
		t.Errorf("empty dir must yield an empty result set")
	}
}
