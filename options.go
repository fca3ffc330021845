package pulse

// Option configures a Monitor with optional dependencies.
type Option func(*monitorOptions)

// monitorOptions holds optional Monitor configuration.
type monitorOptions struct {
	metrics MetricsCollector
	logger  Logger
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewMonitor
//
// Example:
//
//	collector := myPrometheusCollector
//	mon := pulse.NewMonitor(pulse.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *monitorOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewMonitor
//
// Example:
//
//	logger := zap.NewExample().Sugar()
//	mon := pulse.NewMonitor(pulse.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *monitorOptions) {
		o.logger = logger
	}
}
