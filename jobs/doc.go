// Package jobs provides ready-made framesched jobs.
//
// FuncJob adapts closures, Counter runs a fixed number of steps, and
// ChunkLoader streams an io.Reader one chunk per step, deferring retries
// of transient read errors with exponential backoff instead of sleeping
// on the frame loop.
package jobs
