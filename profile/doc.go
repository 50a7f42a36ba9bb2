// Package profile provides optional runtime profiling for bspgen.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag every [Profiler] is a no-op and [Modes] is empty. With it,
// the bspgen command accepts --pprof-mode (one of [Modes]: allocs, block,
// clock, cpu, goroutine, heap, mem, mutex, thread, trace) and --pprof-dir,
// which defaults to the pprof directory below the user cache directory.
// Profiles are analyzed with go tool pprof:
//
//	go tool pprof -http=: ~/.cache/bspgen/pprof/cpu.pprof
//
// The pprof build also registers the net/http/pprof handlers.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
