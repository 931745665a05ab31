package builder

import (
	"io"
	"log/slog"
	"runtime"

	"omibyte.io/svdgen/generator"
)

type Options struct {
	// Inputs lists document paths. Glob patterns are expanded.
	Inputs []string
	// Output is the directory receiving one file per document.
	Output    string
	Generator generator.Options
	// Target names a catalogue entry, or AutoTarget. When empty the
	// SVDGEN_TARGET value of Environment is used.
	Target      string
	DumpModel   bool
	NumJobs     int
	Environment Env
	Logger      *slog.Logger
}

func (o Options) target() string {
	if len(o.Target) > 0 {
		return o.Target
	}
	return o.Environment.Value(EnvTarget)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o Options) jobs() int {
	if o.NumJobs > 0 {
		return o.NumJobs
	}
	return runtime.NumCPU()
}
