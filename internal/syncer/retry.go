package syncer

import "time"

// RetryPolicy bounds how a failing sync attempt is repeated: one initial
// attempt plus up to MaxRetries retries, with a fixed delay before each
// retry. Timing is injected through the sleep function so tests run fast.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// Run executes attempt until it succeeds or the policy is exhausted, and
// returns the last error.
func (p RetryPolicy) Run(sleep func(time.Duration), attempt func() error) error {
	err := attempt()
	for retry := 0; retry < p.MaxRetries && err != nil; retry++ {
		sleep(p.Delay)
		err = attempt()
	}
	return err
}
