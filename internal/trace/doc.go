// Package trace records what the expander is doing: the run, each file,
// the phases inside a file and every builtin macro call.
//
//	hirexpand expand --trace=- --trace-level=call src/
//
// Spans travel through context. A file span names its path and a call span
// names its macro and interned call id; nested spans inherit both, so every
// event says which file and call it belongs to:
//
//	ctx, span := trace.Start(ctx, trace.ScopeFile, "file", trace.File(path))
//	defer span.End("done")
//
// Events go to a StreamTracer (text, NDJSON or chrome://tracing), to a
// RingTracer that keeps the last events for a dump on failure, or to both.
package trace
