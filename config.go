package stopwatch

import (
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/stopwatch/clock"
	"github.com/ygrebnov/stopwatch/monitor"
)

// HooksFunc selects the Hooks variant of a stopwatch bound to m (m may be nil).
type HooksFunc func(m monitor.Monitor) Hooks

// config holds Factory configuration.
type config struct {
	// Clock is the time source of created stopwatches.
	// Default: clock.System().
	Clock clock.Clock

	// Hooks selects the side effects of created stopwatches.
	// Default: MonitorHooks.
	Hooks HooksFunc

	// LeakDetection registers a reclamation-time check on each stopwatch and
	// warns about watches collected before Stop or Cancel. Diagnostic only.
	// Default: false.
	LeakDetection bool

	// CancelOnError makes Measure and Track cancel, instead of stop, a watch whose
	// measured function returned an error.
	// Default: true.
	CancelOnError bool
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Clock:         clock.System(),
		Hooks:         MonitorHooks,
		LeakDetection: false,
		CancelOnError: true,
	}
}

// Option configures a Factory.
type Option func(*config) error

// WithClock sets the time source.
func WithClock(c clock.Clock) Option {
	return func(cfg *config) error {
		if c == nil {
			return errorc.With(ErrInvalidOption, errorc.String("", "WithClock requires a non-nil clock"))
		}
		cfg.Clock = c
		return nil
	}
}

// WithHooks sets the Hooks variant selector.
func WithHooks(f HooksFunc) Option {
	return func(cfg *config) error {
		if f == nil {
			return errorc.With(ErrInvalidOption, errorc.String("", "WithHooks requires a non-nil function"))
		}
		cfg.Hooks = f
		return nil
	}
}

// WithLeakDetection enables reclamation-time warnings for stopwatches never stopped nor canceled.
func WithLeakDetection() Option {
	return func(cfg *config) error { cfg.LeakDetection = true; return nil }
}

// WithCancelOnError sets whether a measured function returning an error cancels its watch (default true).
func WithCancelOnError(cancel bool) Option {
	return func(cfg *config) error { cfg.CancelOnError = cancel; return nil }
}

// Factory creates stopwatches sharing one configuration. It is safe for concurrent use.
type Factory struct {
	config config
}

// NewFactory creates a Factory using functional options.
func NewFactory(opts ...Option) (*Factory, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Factory{config: cfg}, nil
}

var defaultFactory = &Factory{config: defaultConfig()}

// Default returns the Factory used by the package-level functions.
func Default() *Factory { return defaultFactory }
