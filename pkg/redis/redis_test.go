package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewFromUniversal(rdb, zap.NewNop()), mr
}

func TestBlacklistToken(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	if err := c.BlacklistToken(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("BlacklistToken: %v", err)
	}
	if ok, _ := c.IsBlacklisted(ctx, "jti-1"); !ok {
		t.Error("jti-1 should be revoked")
	}
	if ok, _ := c.IsBlacklisted(ctx, "jti-2"); ok {
		t.Error("jti-2 was never revoked")
	}

	// expired tokens need no entry
	if err := c.BlacklistToken(ctx, "jti-3", 0); err != nil {
		t.Fatalf("BlacklistToken: %v", err)
	}
	if mr.Exists(blacklistPrefix + "jti-3") {
		t.Error("no key expected for an expired token")
	}

	mr.FastForward(2 * time.Minute)
	if ok, _ := c.IsBlacklisted(ctx, "jti-1"); ok {
		t.Error("entry should expire with the token")
	}
}

func TestRevokeSession(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	if err := c.RevokeSession(ctx, "sid-1", time.Hour); err != nil {
		t.Fatalf("RevokeSession: %v", err)
	}
	if ok, err := c.IsSessionRevoked(ctx, "sid-1"); err != nil || !ok {
		t.Errorf("sid-1 should be revoked, got %v %v", ok, err)
	}
	if ok, _ := c.IsSessionRevoked(ctx, "sid-2"); ok {
		t.Error("sid-2 is still live")
	}
	if ok, _ := c.IsSessionRevoked(ctx, ""); ok {
		t.Error("tokens without a session are never revoked")
	}
	if ttl := mr.TTL(sessionPrefix + "sid-1"); ttl != time.Hour {
		t.Errorf("expected 1h ttl, got %v", ttl)
	}

	mr.Close()
	if _, err := c.IsSessionRevoked(ctx, "sid-1"); err == nil {
		t.Error("expected an error with redis down")
	}
}

func TestCheckRateLimit(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := c.CheckRateLimit(ctx, "rl:test", 3, time.Minute)
		if err != nil || !ok {
			t.Fatalf("request %d should pass: %v %v", i+1, ok, err)
		}
	}
	if ok, _ := c.CheckRateLimit(ctx, "rl:test", 3, time.Minute); ok {
		t.Error("fourth request should be limited")
	}
	if ok, _ := c.CheckRateLimit(ctx, "rl:other", 3, time.Minute); !ok {
		t.Error("keys are limited independently")
	}
}

func TestSetNX(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	first, err := c.SetNX(ctx, "qr:nonce", time.Minute)
	if err != nil || !first {
		t.Fatalf("first SetNX should create: %v %v", first, err)
	}
	if again, _ := c.SetNX(ctx, "qr:nonce", time.Minute); again {
		t.Error("second SetNX must not create")
	}
}
