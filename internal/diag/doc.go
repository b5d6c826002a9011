// Package diag defines the diagnostic model shared by all analysis phases.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form, a human-oriented Message, the primary source.Span, and
// optional Notes pointing at secondary locations ("first declared here").
//
// Producers emit through the Reporter interface so emission stays decoupled
// from storage and formatting. BagReporter aggregates into a Bag, which
// supports capping, sorting, deduplication and merging; NopReporter discards;
// DedupReporter filters exact repeats before forwarding.
//
// Diagnostics are data only. A detected violation never aborts the pass that
// found it: the field-table builder and the call-site validator record and
// continue, so one malformed member or argument does not hide the next one.
// Rendering lives in internal/diagfmt; orchestration lives in the driver.
package diag
