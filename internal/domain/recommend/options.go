package recommend

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLikeThreshold sets the score a rating must strictly exceed to count
// as a like. Values outside the observed 0..10 score range are ignored.
func WithLikeThreshold(threshold int) Option {
	return func(e *Engine) {
		if threshold >= 0 && threshold <= 10 {
			e.likeThreshold = threshold
		}
	}
}

// WithMinSupport sets the fraction of similar users a candidate must
// strictly exceed to stay in the running. Values outside (0, 1) are
// ignored.
func WithMinSupport(support float64) Option {
	return func(e *Engine) {
		if support > 0 && support < 1 {
			e.minSupport = support
		}
	}
}
