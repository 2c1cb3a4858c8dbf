// Package profile provides optional runtime profiling for acalc.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Config.Start] returns a no-op [Stopper] and [Modes]
// returns nil.
//
// # Modes
//
// The supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread, and trace. Profile files are written to the configured
// directory with names matching the mode (cpu.pprof, mem.pprof, ...) and can
// be analyzed with go tool pprof:
//
//	acalc --pprof-mode cpu batch exprs.txt
//	go tool pprof -http=: ~/.cache/acalc/pprof/cpu.pprof
//
// Builds with the tag also register the [net/http/pprof] handlers.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
