package queue

// Option applies a configuration option to an InMemoryQueue.
type Option func(*options)

type options struct {
	capacity int
}

// WithCapacity sets the maximum number of waiting jobs.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		if capacity > 0 {
			o.capacity = capacity
		}
	}
}
