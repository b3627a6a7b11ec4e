package utils

import (
	"errors"
	"testing"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
)

func TestDefaultBackoffRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := backoff.Retry(func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, DefaultBackoff())

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDefaultBackoffStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := backoff.Retry(func() error {
		calls++
		return backoff.Permanent(errors.New("bad credentials"))
	}, DefaultBackoff())

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
