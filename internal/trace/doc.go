// Package trace is the logging and tracing subsystem of badnames.
//
// Tracing is off by default. Enable it from the command line:
//
//	badnames check --trace=- --trace-level=detail ./...
//
// # Levels
//
//   - LevelOff: nothing is emitted
//   - LevelError: analysis errors only
//   - LevelPhase: driver boundaries (whole run, directory scan)
//   - LevelDetail: per-file spans
//   - LevelDebug: per-rule events, one for every reported node
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeFile, "check:"+path, parentID)
//	defer span.End("")
package trace
