package dataclass

import (
	"fmt"

	"datacheck/internal/ast"
	"datacheck/internal/diag"
	"datacheck/internal/types"
)

// ValidateCall binds the call site's arguments against the signature and
// emits one diagnostic per violation. Returns true iff nothing was emitted.
//
// The binding order is fixed and its steps are independent checks, not an
// early-exit chain: a call with an unknown keyword, a missing required
// parameter and a mismatched argument surfaces all three.
//
//  1. positional arguments bind left to right; each excess argument past the
//     parameter count is reported at its own span
//  2. keyword arguments bind by name; an unknown name and a collision with
//     an already-bound slot are distinct findings
//  3. every required parameter left unbound is reported individually
//  4. every bound argument is checked for assignability to its parameter
func ValidateCall(m *ast.Module, sig *Signature, callID ast.CallID, oracle types.Oracle, r diag.Reporter) bool {
	call := m.Call(callID)
	if call == nil || sig == nil {
		return false
	}

	callee := m.Strings.MustLookup(sig.Name)
	paramCount := len(sig.Params)
	bound := make([]ast.ExprID, paramCount)
	byPosition := make([]bool, paramCount)
	clean := true

	// Step 1: positional walk.
	for i, argID := range call.Positional {
		if i >= paramCount {
			span := call.Span
			if arg := m.Expr(argID); arg != nil {
				span = arg.Span
			}
			diag.ReportError(r, diag.CallTooManyArguments, span,
				fmt.Sprintf("too many positional arguments: %s expects at most %d", callee, paramCount)).
				Emit()
			clean = false
			continue
		}
		bound[i] = argID
		byPosition[i] = true
	}

	// Step 2: keyword binding. The lookup consults every parameter,
	// including slots already filled by position, so a name collision is
	// reported as a duplicate rather than as unknown.
	for _, kw := range call.Keywords {
		idx := sig.paramIndex(kw.Name)
		name := m.Strings.MustLookup(kw.Name)
		if idx < 0 {
			diag.ReportError(r, diag.CallUnknownKeywordArgument, kw.NameSpan,
				fmt.Sprintf("%s has no parameter named %q", callee, name)).
				Emit()
			clean = false
			continue
		}
		if bound[idx].IsValid() {
			msg := fmt.Sprintf("multiple values for argument %q", name)
			if byPosition[idx] {
				msg = fmt.Sprintf("argument %q was already bound by position", name)
			}
			diag.ReportError(r, diag.CallDuplicateArgument, kw.NameSpan, msg).
				WithNote(sig.Params[idx].Span, "parameter declared here").
				Emit()
			clean = false
			continue
		}
		bound[idx] = kw.Value
	}

	// Step 3: required parameters left unbound, one finding each.
	for i := range sig.Params {
		p := &sig.Params[i]
		if p.Required && !bound[i].IsValid() {
			diag.ReportError(r, diag.CallMissingRequiredArgument, call.Span,
				fmt.Sprintf("missing required argument %q for %s", m.Strings.MustLookup(p.Name), callee)).
				WithNote(p.Span, "parameter declared here").
				Emit()
			clean = false
		}
	}

	// Step 4: assignability of every bound argument, independent of the
	// outcome of the earlier steps.
	for i := range sig.Params {
		if !bound[i].IsValid() {
			continue
		}
		arg := m.Expr(bound[i])
		if arg == nil {
			continue
		}
		p := &sig.Params[i]
		if !oracle.Assignable(arg.Type, p.Type) {
			diag.ReportError(r, diag.CallArgumentTypeMismatch, arg.Span,
				fmt.Sprintf("argument %q expects %s, got %s",
					m.Strings.MustLookup(p.Name),
					m.Types.Label(p.Type, m.Strings),
					m.Types.Label(arg.Type, m.Strings))).
				Emit()
			clean = false
		}
	}

	return clean
}
