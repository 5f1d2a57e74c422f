package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_EleventhRejected(t *testing.T) {
	limiter := New(10, time.Hour)

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow("inviter:project"), "attempt %d", i)
	}
	assert.False(t, limiter.Allow("inviter:project"))

	// other keys are unaffected
	assert.True(t, limiter.Allow("inviter:other-project"))
}

func TestLimiter_WindowSlides(t *testing.T) {
	limiter := New(2, 30*time.Millisecond)

	assert.True(t, limiter.Allow("k"))
	assert.True(t, limiter.Allow("k"))
	assert.False(t, limiter.Allow("k"))

	time.Sleep(40 * time.Millisecond)
	assert.True(t, limiter.Allow("k"))
}

func TestLimiter_Remaining(t *testing.T) {
	limiter := New(3, time.Hour)

	assert.Equal(t, 3, limiter.Remaining("k"))
	limiter.Allow("k")
	limiter.Allow("k")
	assert.Equal(t, 1, limiter.Remaining("k"))
	limiter.Allow("k")
	limiter.Allow("k")
	assert.Equal(t, 0, limiter.Remaining("k"))
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter := New(1, 10*time.Millisecond)
	limiter.Allow("stale")

	time.Sleep(20 * time.Millisecond)
	limiter.Cleanup()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Empty(t, limiter.hits)
}
