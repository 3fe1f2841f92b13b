package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func testLimiter() (*MemoryRateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cfg := &Config{WindowSize: time.Minute, MaxAttempts: 3, CleanupPeriod: time.Hour, BanDuration: 5 * time.Minute}
	return newLimiter(cfg, clock.now), clock
}

func TestAllow_BansAfterMaxAttempts(t *testing.T) {
	rl, clock := testLimiter()

	for i := 0; i < 3; i++ {
		d := rl.Allow("login:1.2.3.4")
		assert.True(t, d.Allowed)
		assert.Equal(t, 3-(i+1), d.Remaining)
	}

	d := rl.Allow("login:1.2.3.4")
	assert.False(t, d.Allowed)
	assert.True(t, d.Banned)
	assert.Equal(t, 5*time.Minute, d.RetryAfter)

	clock.t = clock.t.Add(2 * time.Minute)
	d = rl.Allow("login:1.2.3.4")
	assert.False(t, d.Allowed)
	assert.Equal(t, 3*time.Minute, d.RetryAfter)

	clock.t = clock.t.Add(4 * time.Minute)
	assert.True(t, rl.Allow("login:1.2.3.4").Allowed)
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	rl, _ := testLimiter()
	for i := 0; i < 4; i++ {
		rl.Allow("login:1.2.3.4")
	}
	assert.True(t, rl.Allow("register:1.2.3.4").Allowed)
	assert.True(t, rl.Allow("login:5.6.7.8").Allowed)
}

func TestAllow_WindowResets(t *testing.T) {
	rl, clock := testLimiter()
	rl.Allow("k")
	rl.Allow("k")
	rl.Allow("k")

	clock.t = clock.t.Add(61 * time.Second)
	d := rl.Allow("k")
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestReset(t *testing.T) {
	rl, _ := testLimiter()
	for i := 0; i < 3; i++ {
		rl.Allow("k")
	}
	rl.Reset("k")
	d := rl.Allow("k")
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestCleanup(t *testing.T) {
	rl, clock := testLimiter()
	rl.Allow("old")
	clock.t = clock.t.Add(2 * time.Minute)
	rl.Allow("fresh")

	rl.cleanup()
	_, hasOld := rl.attempts["old"]
	_, hasFresh := rl.attempts["fresh"]
	assert.False(t, hasOld)
	assert.True(t, hasFresh)
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", GetClientIP(r))

	r.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", GetClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.3")
	assert.Equal(t, "203.0.113.7", GetClientIP(r))
}
