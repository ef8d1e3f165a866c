// Package profile provides optional runtime profiling for cfglang.
//
// Profiling is backed by [github.com/pkg/profile] and compiled in only with
// the "pprof" build tag:
//
//	go build -tags pprof .
//	cfglang --pprof-mode cpu big.cfg
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op.
//
// Supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread and trace. Profiles are written to the configured directory
// with names matching the mode (cpu.pprof, mem.pprof, ...) and are read with
// go tool pprof:
//
//	go tool pprof -http=: ~/.cache/cfglang/pprof/cpu.pprof
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
