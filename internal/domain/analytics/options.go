package analytics

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWorkers bounds the head-to-head matrix fan-out.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}
