// Package trace records what a shaderbuild run is doing.
//
// Tracing is enabled from the command line:
//
//	shaderbuild --trace=- --trace-level=detail
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Failed invocations only
//   - LevelPhase: Driver and pass boundaries (locate, discover, compile)
//   - LevelDetail: One span per compiled file
//   - LevelDebug: Everything, including directory entry
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "discover", parentID)
//	defer span.End("")
package trace
