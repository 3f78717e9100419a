package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreaker(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("opens after threshold and refuses until cooldown", func(t *testing.T) {
		b := New("ip-lookup", WithFailureThreshold(2), WithCooldown(time.Minute), WithClock(clock))
		assert.True(t, b.Allow())

		assert.False(t, b.RecordFailure().Opened)
		assert.True(t, b.RecordFailure().Opened)
		assert.Equal(t, StateOpen, b.State())
		assert.False(t, b.Allow())

		now = now.Add(time.Minute)
		assert.True(t, b.Allow(), "one trial call after cooldown")
		assert.False(t, b.Allow(), "second trial call waits for the next cooldown")
	})

	t.Run("successful trial call closes the circuit", func(t *testing.T) {
		b := New("ip-lookup", WithFailureThreshold(1), WithClock(clock))
		b.RecordFailure()
		change := b.RecordSuccess()
		assert.True(t, change.Closed)
		assert.Equal(t, StateClosed, b.State())
		assert.Equal(t, "closed", b.State().String())
	})

	t.Run("success while closed resets the failure streak", func(t *testing.T) {
		b := New("ip-lookup", WithFailureThreshold(2))
		b.RecordFailure()
		b.RecordSuccess()
		assert.False(t, b.RecordFailure().Opened)
		assert.Equal(t, StateClosed, b.State())
	})

	t.Run("reset closes", func(t *testing.T) {
		b := New("ip-lookup", WithFailureThreshold(1))
		b.RecordFailure()
		b.Reset()
		assert.Equal(t, StateClosed, b.State())
		assert.Equal(t, "ip-lookup", b.Name())
	})
}
