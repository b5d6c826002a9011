// Package driver orchestrates whole-module analysis: it derives every
// class's field table and signature through a shared cache, validates every
// call site against its callee, and collects diagnostics per module. The
// engine itself lives in internal/dataclass; the driver only wires inputs,
// memoization and sinks together.
package driver

import (
	"fmt"

	"datacheck/internal/ast"
	"datacheck/internal/dataclass"
	"datacheck/internal/diag"
	"datacheck/internal/source"
)

// Result carries everything one module's analysis produced.
type Result struct {
	Module *ast.Module
	Bag    *diag.Bag
	Cache  *dataclass.Cache

	// ValidCalls counts call sites that bound without a single diagnostic.
	ValidCalls int
	// CachedClasses counts classes whose signature was recovered from the
	// disk cache instead of being derived.
	CachedClasses int
}

// Analyze runs the full derivation-and-validation pass over a module.
// Class derivations run before call validation, so declaration diagnostics
// come first within the bag; within one call site the binding algorithm's
// fixed step order keeps diagnostics deterministic.
func Analyze(mod *ast.Module, maxDiagnostics int) *Result {
	res := &Result{
		Module: mod,
		Bag:    diag.NewBag(maxDiagnostics),
		Cache:  dataclass.NewCache(),
	}
	analyze(res)
	return res
}

// AnalyzeWithCache is Analyze with a persistent signature cache consulted
// first: an entry for the file's unchanged content seeds the class
// signature so its derivation is skipped. Entries marked Broken are
// ignored, since the class must re-derive for its declaration diagnostics
// to surface again. The cache is best-effort; any miss falls back to
// derivation.
func AnalyzeWithCache(mod *ast.Module, file *source.File, dc *DiskCache, maxDiagnostics int) *Result {
	res := &Result{
		Module: mod,
		Bag:    diag.NewBag(maxDiagnostics),
		Cache:  dataclass.NewCache(),
	}
	if dc != nil && file != nil {
		for _, classID := range mod.Classes() {
			class := mod.Class(classID)
			name := mod.Strings.MustLookup(class.Name)

			var payload SignaturePayload
			hit, err := dc.Get(SignatureKey(file, name), &payload)
			if err != nil || !hit || payload.Broken {
				continue
			}
			if sig, ok := signatureFromPayload(mod, classID, file.ID, &payload); ok {
				res.Cache.Seed(classID, sig)
				res.CachedClasses++
			}
		}
	}
	analyze(res)
	return res
}

func analyze(res *Result) {
	mod := res.Module
	reporter := diag.BagReporter{Bag: res.Bag}

	for _, classID := range mod.Classes() {
		res.Cache.Signature(mod, classID, reporter)
	}

	for _, callID := range mod.Calls() {
		call := mod.Call(callID)
		classID, ok := mod.LookupClass(call.Callee)
		if !ok {
			diag.ReportError(reporter, diag.FixUnknownCallee, call.Span,
				fmt.Sprintf("call references undeclared class %q", mod.Strings.MustLookup(call.Callee))).
				Emit()
			continue
		}
		sig := res.Cache.Signature(mod, classID, reporter)
		if dataclass.ValidateCall(mod, sig, callID, mod.Types, reporter) {
			res.ValidCalls++
		}
	}
}
