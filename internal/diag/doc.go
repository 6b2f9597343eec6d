// Package diag defines the core diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the lexer, the macro call scanner and the expansion driver.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO or CLI integration.
// Rendering lives in internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     (LEXnnnn, SYNnnnn, EXPnnnn, IOnnnn).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Expansion failures returned by internal/builtin are plain Go errors; the
// driver is the only place that turns them into diagnostics.
//
// # Emitting diagnostics
//
// Phases report through a diag.Reporter. ReportError, ReportWarning and
// ReportInfo start a Pending diagnostic; chain WithNote and call Emit.
// BagReporter aggregates into a Bag, which sorts, deduplicates and counts
// what does not fit its limit.
package diag
