package utils

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/soapboxd/soapbox/config"
)

// Anonymous identities are free to mint, so creation is the one place worth
// throttling server-side. All checks fail open when Redis is unavailable.

func idKey(parts ...string) string {
	return "identity:" + strings.Join(parts, ":")
}

// IdentityCooldownTry enforces a short cooldown between identity creations
// per IP. Returns false when the caller must wait.
func IdentityCooldownTry(ip string) bool {
	cfg := config.Get()
	sec := cfg.IdentityAttemptCooldownSec
	if sec <= 0 {
		return true
	}
	cli := GetRedis()
	if cli == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	ok, err := cli.SetNX(ctx, idKey("cooldown", ip), "1", time.Duration(sec)*time.Second).Result()
	if err != nil {
		return true // fail-open
	}
	return ok
}

// IdentityDailyLimitCheck allows up to N identities per day per IP.
func IdentityDailyLimitCheck(ip string) bool {
	cfg := config.Get()
	limit := cfg.IdentityMaxPerIPPerDay
	if limit <= 0 {
		return true
	}
	cli := GetRedis()
	if cli == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	n, err := cli.Get(ctx, idKey("day", ip, time.Now().Format("20060102"))).Int()
	if err == redis.Nil {
		n = 0
	} else if err != nil {
		return true
	}
	return n < limit
}

// IdentityDailyIncrement bumps the per-day success counter for the IP.
func IdentityDailyIncrement(ip string) {
	cli := GetRedis()
	if cli == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := idKey("day", ip, time.Now().Format("20060102"))
	if err := cli.Incr(ctx, key).Err(); err == nil {
		ttl := time.Until(time.Now().Truncate(24 * time.Hour).Add(24 * time.Hour))
		_ = cli.Expire(ctx, key, ttl).Err()
	}
}
