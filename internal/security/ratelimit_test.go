package security

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestRateLimiterAllow(t *testing.T) {
	defer goleak.VerifyNone(t)

	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"), "third request in the window is rejected")
	assert.True(t, rl.Allow("10.0.0.2"), "other clients have their own bucket")

	clock = clock.Add(time.Minute)
	assert.True(t, rl.Allow("10.0.0.1"), "bucket refills after the window")
}

func TestRateLimiterPrune(t *testing.T) {
	defer goleak.VerifyNone(t)

	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	rl.Allow("old")
	clock = clock.Add(90 * time.Second)
	rl.Allow("recent")
	clock = clock.Add(45 * time.Second)

	rl.prune()
	assert.Equal(t, 1, rl.Visitors())
}

func TestRateLimiterStopTwice(t *testing.T) {
	defer goleak.VerifyNone(t)

	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	rl.Stop()
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "forwarded list", remoteAddr: "10.0.0.1:80", headers: map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, trustProxy: true, want: "203.0.113.5"},
		{name: "real ip", remoteAddr: "10.0.0.1:80", headers: map[string]string{"X-Real-IP": "198.51.100.7"}, trustProxy: true, want: "198.51.100.7"},
		{name: "forwarded ignored without trust", remoteAddr: "10.0.0.1:80", headers: map[string]string{"X-Forwarded-For": "203.0.113.5"}, want: "10.0.0.1"},
		{name: "real ip ignored without trust", remoteAddr: "10.0.0.1:80", headers: map[string]string{"X-Real-IP": "198.51.100.7"}, want: "10.0.0.1"},
		{name: "no port", remoteAddr: "192.0.2.9", want: "192.0.2.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/comments", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetClientIP(r, tt.trustProxy))
		})
	}
}
