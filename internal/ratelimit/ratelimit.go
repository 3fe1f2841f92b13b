// File: internal/ratelimit/ratelimit.go
//
// Package ratelimit throttles repeated credential attempts per client.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

type Config struct {
	WindowSize    time.Duration
	MaxAttempts   int
	CleanupPeriod time.Duration
	// BanDuration is how long a client stays blocked after exceeding
	// MaxAttempts inside one window.
	BanDuration time.Duration
}

// DefaultAuthConfig is used for login and register.
func DefaultAuthConfig() *Config {
	return &Config{
		WindowSize:    15 * time.Minute,
		MaxAttempts:   10,
		CleanupPeriod: 30 * time.Minute,
		BanDuration:   15 * time.Minute,
	}
}

type attemptRecord struct {
	count     int
	firstSeen time.Time
	bannedAt  *time.Time
}

// Decision describes the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
	Banned     bool
}

// MemoryRateLimiter keeps attempt counters in process memory. Counters are
// not shared between instances.
type MemoryRateLimiter struct {
	config   *Config
	attempts map[string]*attemptRecord
	mu       sync.Mutex
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	rl := newLimiter(config, time.Now)
	go rl.cleanupLoop()
	return rl
}

func newLimiter(config *Config, now func() time.Time) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		config:   config,
		attempts: make(map[string]*attemptRecord),
		now:      now,
		stopCh:   make(chan struct{}),
	}
}

// Allow counts one attempt for key and reports whether it may proceed.
func (rl *MemoryRateLimiter) Allow(key string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	limit := rl.config.MaxAttempts
	record, ok := rl.attempts[key]

	if ok && record.bannedAt != nil {
		if left := rl.config.BanDuration - now.Sub(*record.bannedAt); left > 0 {
			return Decision{Limit: limit, ResetTime: record.bannedAt.Add(rl.config.BanDuration), RetryAfter: left, Banned: true}
		}
		ok = false
	}

	if !ok || now.Sub(record.firstSeen) > rl.config.WindowSize {
		rl.attempts[key] = &attemptRecord{count: 1, firstSeen: now}
		return Decision{Allowed: true, Limit: limit, Remaining: limit - 1, ResetTime: now.Add(rl.config.WindowSize)}
	}

	record.count++
	if record.count > limit {
		banned := now
		record.bannedAt = &banned
		return Decision{Limit: limit, ResetTime: now.Add(rl.config.BanDuration), RetryAfter: rl.config.BanDuration, Banned: true}
	}

	return Decision{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - record.count,
		ResetTime: record.firstSeen.Add(rl.config.WindowSize),
	}
}

// Reset forgets every attempt recorded for key.
func (rl *MemoryRateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, key)
}

func (rl *MemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *MemoryRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, record := range rl.attempts {
		windowExpired := now.Sub(record.firstSeen) > rl.config.WindowSize
		banExpired := record.bannedAt != nil && now.Sub(*record.bannedAt) > rl.config.BanDuration
		if (windowExpired && record.bannedAt == nil) || banExpired {
			delete(rl.attempts, key)
		}
	}
}

// Close stops the cleanup goroutine.
func (rl *MemoryRateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// GetClientIP prefers proxy headers over the socket address.
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
