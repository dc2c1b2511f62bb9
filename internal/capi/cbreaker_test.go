package capi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerStaysClosedBelowThreshold(t *testing.T) {
	b := NewBreaker(3, time.Minute)

	b.OnFailure()
	b.OnFailure()

	assert.True(t, b.TryAcquire())
}

func TestBreakerOpensAtThreshold(t *testing.T) {
	b := NewBreaker(2, time.Minute)

	b.OnFailure()
	b.OnFailure()

	assert.False(t, b.TryAcquire())
}

func TestBreakerAllowsProbeAfterWindow(t *testing.T) {
	b := NewBreaker(1, 10*time.Millisecond)

	b.OnFailure()
	assert.False(t, b.TryAcquire())

	time.Sleep(20 * time.Millisecond)

	// single probe allowed, second caller blocked while it is in flight
	assert.True(t, b.TryAcquire())
	assert.False(t, b.TryAcquire())

	b.OnSuccess()
	assert.True(t, b.TryAcquire())
}

func TestBreakerReopensOnFailedProbe(t *testing.T) {
	b := NewBreaker(1, 10*time.Millisecond)

	b.OnFailure()
	time.Sleep(20 * time.Millisecond)
	assert.True(t, b.TryAcquire())

	b.OnFailure()
	assert.False(t, b.TryAcquire())
}

func TestBreakerResetsOnSuccess(t *testing.T) {
	b := NewBreaker(2, time.Minute)

	b.OnFailure()
	b.OnSuccess()
	b.OnFailure()

	assert.True(t, b.TryAcquire())
}
