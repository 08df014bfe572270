package fleetslot

import "time"

// Option configures an Allocator with optional dependencies.
type Option func(*allocatorOptions)

// allocatorOptions holds optional Allocator configuration.
type allocatorOptions struct {
	logger     Logger
	metrics    MetricsCollector
	hooks      *Hooks
	clock      func() time.Time
	strategies map[string]PlanStrategy
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (slog-style key-value pairs)
//
// Returns:
//   - Option: Functional option for NewAllocator
//
// When omitted, a logger delegating to slog.Default() is used.
func WithLogger(logger Logger) Option {
	return func(o *allocatorOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewAllocator
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *allocatorOptions) {
		o.metrics = metrics
	}
}

// WithHooks sets event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewAllocator
//
// Example:
//
//	hooks := &fleetslot.Hooks{
//	    OnBatchCommitted: func(ctx context.Context, result *fleetslot.BatchResult) error {
//	        return notifyDashboard(ctx, result)
//	    },
//	}
//	alloc, err := fleetslot.NewAllocator(&cfg, st, fleetslot.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *allocatorOptions) {
		o.hooks = hooks
	}
}

// WithClock sets the time source used for assignment timestamps.
//
// Parameters:
//   - clock: Function returning the current time (defaults to time.Now)
//
// Returns:
//   - Option: Functional option for NewAllocator
func WithClock(clock func() time.Time) Option {
	return func(o *allocatorOptions) {
		o.clock = clock
	}
}

// WithStrategy registers a custom planning strategy under the given name,
// making it selectable by requests and usable as Config.DefaultStrategy.
// Registering a built-in name overrides the built-in.
//
// Parameters:
//   - name: Strategy selector
//   - s: PlanStrategy implementation
//
// Returns:
//   - Option: Functional option for NewAllocator
func WithStrategy(name string, s PlanStrategy) Option {
	return func(o *allocatorOptions) {
		if o.strategies == nil {
			o.strategies = make(map[string]PlanStrategy)
		}
		o.strategies[name] = s
	}
}
