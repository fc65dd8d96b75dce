package gosched

import "log/slog"

type config struct {
	logger   *slog.Logger
	clock    Clock
	maxTasks int
}

// Option configures a Scheduler.
type Option func(*config)

// WithLogger enables structured lifecycle logging (create, finish, delete)
// at debug level. Without it the scheduler is silent.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithClock substitutes the time source used by Delay and NotifyTake
// timeouts. Intended for tests.
func WithClock(clk Clock) Option {
	return func(c *config) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithMaxTasks caps the number of live control blocks. Create returns
// sched.ErrNoTaskMemory once the cap is reached. Zero or negative means
// unlimited.
func WithMaxTasks(n int) Option {
	return func(c *config) { c.maxTasks = n }
}
