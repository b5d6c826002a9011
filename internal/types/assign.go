package types

// Oracle answers assignability questions for the call-site validator. The
// engine never infers types itself; it only asks whether an already-inferred
// argument type may flow into a declared parameter type.
type Oracle interface {
	Assignable(actual, declared TypeID) bool
}

// Assignable implements the default compatibility rules:
//
//   - identical types are assignable
//   - Any accepts and provides everything
//   - int widens to float
//   - None is assignable only to itself (and Any)
//
// These rules stand in for the host checker's full inference; the engine
// depends only on the Oracle interface, so a richer implementation can be
// swapped in without touching the binding algorithm.
func (in *Interner) Assignable(actual, declared TypeID) bool {
	if actual == declared {
		return true
	}
	at, aok := in.Lookup(actual)
	dt, dok := in.Lookup(declared)
	if !aok || !dok {
		return false
	}
	if at.Kind == KindAny || dt.Kind == KindAny {
		return true
	}
	if at.Kind == KindInt && dt.Kind == KindFloat {
		return true
	}
	return false
}
