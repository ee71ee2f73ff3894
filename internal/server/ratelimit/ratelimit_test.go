package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(l *Limiter, at *time.Time) {
	l.now = func() time.Time { return *at }
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fixedClock(limiter, &now)

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/render", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/render", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, float64(6*time.Second), float64(info.RetryAfter), float64(time.Millisecond))

	now = now.Add(7 * time.Second)
	allowed, _ = limiter.Allow("127.0.0.1", "/render", "POST")
	assert.True(t, allowed, "one token refills after a sixth of a minute")
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("10.0.0.1", "/render", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.1", "/render", "POST")
	assert.False(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.2", "/render", "POST")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
		Blacklist:     map[string]bool{"10.6.6.6": true},
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/render", "POST")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("10.6.6.6", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/export/pdf", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_ExportRoutesShareBudget(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/export/", Method: "POST", Limit: 2, Window: time.Minute},
		},
	})
	defer limiter.Stop()

	a, _ := limiter.Allow("c", "/export/pdf", "POST")
	b, _ := limiter.Allow("c", "/export/png", "POST")
	c, info := limiter.Allow("c", "/export/pdf", "POST")
	assert.True(t, a)
	assert.True(t, b)
	assert.False(t, c)
	assert.Equal(t, 2, info.Limit)
	assert.Equal(t, 1, limiter.Size())
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, IdleTTL: time.Minute})
	defer limiter.Stop()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fixedClock(limiter, &now)

	limiter.Allow("a", "/render", "POST")
	now = now.Add(30 * time.Second)
	limiter.Allow("b", "/render", "POST")
	assert.Equal(t, 2, limiter.Size())

	now = now.Add(45 * time.Second)
	limiter.cleanup()
	assert.Equal(t, 1, limiter.Size())
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("c", "/render", "POST"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(nil)
	limiter.Stop()
	limiter.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path, method string
		wantPath     string
		unlimited    bool
	}{
		{"/health", "GET", "", true},
		{"/templates", "GET", "", true},
		{"/templates/modern-simple", "GET", "", true},
		{"/export/pdf", "POST", "/export/", false},
		{"/export/png", "POST", "/export/", false},
		{"/measure", "POST", "/measure", false},
		{"/resumes", "POST", "/resumes", false},
		{"/resumes/abc", "PUT", "/resumes/", false},
		{"/resumes/abc", "DELETE", "/resumes/", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			require.NotNil(t, got)
			if tt.unlimited {
				assert.Equal(t, 0, got.Limit)
				return
			}
			assert.Equal(t, tt.wantPath, got.Path)
		})
	}

	assert.Nil(t, MatchEndpoint("/render", "POST", configs))
	assert.Nil(t, MatchEndpoint("/resumes", "GET", configs))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "127.0.0.1, ::1")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"127.0.0.1": true, "::1": true}, cfg.Whitelist)
	assert.NotEmpty(t, cfg.EndpointConfigs)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
