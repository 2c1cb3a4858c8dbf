package profile

// Stopper stops a running profiler and flushes its output.
type Stopper interface{ Stop() }

// Config selects a profiling mode and its output directory.
// The zero value disables profiling.
type Config struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option applies a configuration option to a Config.
type Option func(Config) Config

// Make returns a Config with opts applied.
func Make(opts ...Option) Config {
	var c Config

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

// WithMode returns a functional option for setting a profiler's mode.
func WithMode(mode string) Option {
	return func(c Config) Config {
		c.Mode = mode

		return c
	}
}

// WithPath returns a functional option for setting a profiler's output path.
func WithPath(path string) Option {
	return func(c Config) Config {
		c.Path = path

		return c
	}
}

// WithQuiet returns a functional option for setting a profiler's quiet flag.
func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		c.Quiet = quiet

		return c
	}
}

// Start starts the profiler and returns a [Stopper] for it.
//
// If built without the pprof tag, or if the mode is empty or unknown, Start
// returns a no-op implementation. Both Start and Stop are always safely
// callable.
func (c Config) Start() Stopper {
	if c.Mode == "" {
		return ignore{}
	}

	return start(c)
}

type ignore struct{}

func (ignore) Stop() {}
