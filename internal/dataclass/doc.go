// Package dataclass implements constructor synthesis for classes that follow
// the data-class pattern: every type-annotated member becomes a parameter of
// an implicit constructor, in declaration order.
//
// The pipeline is a one-way derivation:
//
//	class declaration -> field table -> synthesized signature -> call binding
//
// BuildFieldTable walks members in source order, classifying annotated
// fields, plain assignments and init-only wrappers, and enforces the
// default-ordering invariant. Synthesize maps the table onto an ordered
// parameter list. ValidateCall binds a call site's positional and keyword
// arguments against a signature with the general argument-binding algorithm.
//
// Every violation is a diagnostic, never an error return: each pass records
// what it found and keeps going, so one malformed field or argument does not
// mask the next. Tables and signatures are pure functions of the class and
// may be memoized (Cache) and computed concurrently across classes.
package dataclass
