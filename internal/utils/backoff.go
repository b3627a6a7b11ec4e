package utils

import (
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// DefaultBackoff gives a dependency about ten seconds to come up.
func DefaultBackoff() backoff.BackOff {
	boff := backoff.NewExponentialBackOff()
	boff.InitialInterval = 200 * time.Millisecond
	boff.MaxElapsedTime = 10 * time.Second

	return boff
}
