package montecarlo

// Option configures Estimate.
type Option func(*config)

type config struct {
	concurrency int
}

func defaultConfig() config {
	return config{concurrency: 0}
}

// WithConcurrency bounds the number of worker goroutines splitting the
// trial count. <= 0 (the default) lets Estimate pick runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}
