package carmuseum

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisLimiterBlocksAfterMax(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisLimiter(redis.Addr(), "", "test:ratelimit", 2, time.Second)
	if err != nil {
		t.Fatalf("new redis limiter: %v", err)
	}
	defer limiter.Close()

	if !limiter.Allow("ip-1") {
		t.Fatalf("first request should pass")
	}
	if !limiter.Allow("ip-1") {
		t.Fatalf("second request should pass")
	}
	if limiter.Allow("ip-1") {
		t.Fatalf("third request should be blocked")
	}
	if !limiter.Allow("ip-2") {
		t.Fatalf("other ip should have its own quota")
	}
}

func TestRedisLimiterFailsClosed(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisLimiter(redis.Addr(), "", "test:ratelimit", 1, time.Second)
	if err != nil {
		t.Fatalf("new redis limiter: %v", err)
	}
	defer limiter.Close()
	redis.Close()
	if limiter.Allow("ip-1") {
		t.Fatalf("limiter should fail closed on redis errors")
	}
}

func TestRedisLimiterRequiresAddrAndLimits(t *testing.T) {
	if l, err := NewRedisLimiter("", "", "", 1, time.Second); err == nil || l != nil {
		t.Fatalf("expected constructor error for empty redis addr")
	}
	if l, err := NewRedisLimiter("127.0.0.1:6379", "", "", 0, time.Second); err == nil || l != nil {
		t.Fatalf("expected constructor error for zero limit")
	}
}

func TestNewLimiterSelectsBackend(t *testing.T) {
	ctx := t.Context()

	l, err := NewLimiter(ctx, Config{RateLimit: -1})
	if err != nil || l != nil {
		t.Fatalf("disabled limiter = %v, %v; want nil, nil", l, err)
	}

	l, err = NewLimiter(ctx, Config{})
	if err != nil {
		t.Fatalf("NewLimiter: %v", err)
	}
	rl, ok := l.(*RateLimiter)
	if !ok {
		t.Fatalf("default limiter = %T, want *RateLimiter", l)
	}
	rl.Close()

	redis := miniredis.RunT(t)
	l, err = NewLimiter(ctx, Config{RedisAddr: redis.Addr()})
	if err != nil {
		t.Fatalf("NewLimiter with redis: %v", err)
	}
	rdl, ok := l.(*RedisLimiter)
	if !ok {
		t.Fatalf("redis limiter = %T, want *RedisLimiter", l)
	}
	rdl.Close()
}
