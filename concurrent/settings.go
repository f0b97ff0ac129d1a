package concurrent

// Settings describes how many logical repetitions of a task to run and how
// many workers may run them concurrently. Settings values are immutable:
// WithThreadCount returns a new value and never mutates the receiver.
//
// A thread count of zero means unbounded - one worker per task.
type Settings struct {
	count       int
	threadCount int
}

// NewSettings creates settings for count repetitions with unbounded
// concurrency. Returns an *ArgumentError if count < 1.
func NewSettings(count int) (Settings, error) {
	if count < 1 {
		return Settings{}, &ArgumentError{
			Name:   "count",
			Value:  count,
			Reason: "must be at least 1",
		}
	}
	return Settings{count: count}, nil
}

// WithThreadCount returns a copy of the settings with an explicit worker
// bound. Returns an *ArgumentError if threadCount < 2: a single worker would
// serialize the tasks, defeating the point of a concurrency harness.
func (s Settings) WithThreadCount(threadCount int) (Settings, error) {
	if threadCount < 2 {
		return Settings{}, &ArgumentError{
			Name:   "threadCount",
			Value:  threadCount,
			Reason: "must be at least 2",
		}
	}
	s.threadCount = threadCount
	return s, nil
}

// Count returns the number of logical task executions.
func (s Settings) Count() int {
	return s.count
}

// ThreadCount returns the explicit worker bound, or zero when unbounded.
func (s Settings) ThreadCount() int {
	return s.threadCount
}

// Unbounded reports whether no explicit worker bound was set.
func (s Settings) Unbounded() bool {
	return s.threadCount == 0
}
