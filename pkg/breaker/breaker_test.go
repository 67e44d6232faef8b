package breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookhive/library-service/pkg/breaker"
)

func Test_circuitBreaker_Call(t *testing.T) {
	successfulService := func() error {
		return nil
	}
	failingService := func() error {
		return errors.New("service error")
	}

	cb := breaker.New(10, 50*time.Millisecond, 0.30, 3)

	// healthy traffic keeps the breaker closed
	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(successfulService))
	}

	// enough failures over the tail trip it open
	for i := 0; i < 10; i++ {
		_ = cb.Call(failingService)
	}
	require.ErrorIs(t, cb.Call(successfulService), breaker.ErrOpen)

	// after the timeout it half-opens and recovers on successes
	time.Sleep(60 * time.Millisecond)
	cb.Reset()
	for i := 0; i < 5; i++ {
		require.NoError(t, cb.Call(successfulService))
	}
}

func Test_circuitBreaker_Reset(t *testing.T) {
	failingService := func() error {
		return errors.New("service error")
	}

	cb := breaker.New(4, time.Second, 0.5, 1)
	for i := 0; i < 4; i++ {
		_ = cb.Call(failingService)
	}
	require.ErrorIs(t, cb.Call(failingService), breaker.ErrOpen)

	cb.Reset()
	require.NoError(t, cb.Call(func() error { return nil }))
}
