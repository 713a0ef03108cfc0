// Package trace is the structured event log of theorycheck.
//
// Enable it from the command line:
//
//	theorycheck check --trace=- --trace-level=detail ./tests
//
// Implementations: Nop (tracing off), StreamTracer (immediate text or NDJSON
// output), RingTracer (last N events kept in memory and dumped when a run
// fails) and MultiTracer (fan-out).
//
// Levels select scopes: phase shows driver and pass boundaries, detail adds
// one span per file, debug adds one point per InlineData site with its binding.
//
// Tracers travel through the pipeline in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
