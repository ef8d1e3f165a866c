package profile

// Profiler configures one profiling session.
type Profiler struct {
	Mode  string // One of [Modes]; empty disables profiling
	Path  string // Output directory
	Quiet bool   // Suppress the profiler's own log lines
}

// Option modifies a [Profiler].
type Option func(Profiler) Profiler

// WithMode sets the profiling mode.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.Path = path

		return p
	}
}

// WithQuiet controls the profiler's own logging.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// Make returns a Profiler with opts applied.
func Make(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		p = opt(p)
	}

	return p
}

// Start begins profiling and returns a handle to stop it. An empty or
// unknown mode, or a build without the pprof tag, yields a no-op handle.
// Stop is always safe to call.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
