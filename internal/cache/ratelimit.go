package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// rateLimitIPPrefix is the Redis key prefix for per-IP buckets.
	rateLimitIPPrefix = "ratelimit:ip:"
	// rateLimitIPTTL bounds how long an idle bucket survives.
	rateLimitIPTTL = 10 * time.Second
)

// RateLimitResult reports the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// bucketScript refills and drains a token bucket in one atomic Redis call.
// Bucket state lives in a hash: tk = tokens left, ts = last refill time.
var bucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])
	local burst = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local ttl = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tk', 'ts')
	local tokens = tonumber(state[1]) or burst
	local last = tonumber(state[2]) or now

	tokens = math.min(burst, tokens + (now - last) * rate)

	local allowed = 0
	local retry_after = 0
	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		retry_after = math.ceil((1 - tokens) / rate)
	end

	redis.call('HMSET', key, 'tk', tokens, 'ts', now)
	redis.call('EXPIRE', key, ttl)

	return {allowed, retry_after, math.floor(tokens)}
`)

// CheckIPRateLimit drains one token from the bucket belonging to the given
// IP. The IP is hashed so raw addresses never land in Redis. Redis errors
// fail open: the request is allowed.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*RateLimitResult, error) {
	key := rateLimitIPPrefix + hashIP(ip)

	res, err := bucketScript.Run(ctx, c.client,
		[]string{key},
		float64(ratePerSecond), burst, time.Now().Unix(), int(rateLimitIPTTL.Seconds()),
	).Int64Slice()
	if err != nil {
		return &RateLimitResult{Allowed: true, Remaining: int64(burst)}, nil
	}

	return &RateLimitResult{
		Allowed:    res[0] == 1,
		RetryAfter: time.Duration(res[1]) * time.Second,
		Remaining:  res[2],
	}, nil
}

// hashIP returns a truncated SHA256 digest of the IP, 16 hex characters.
func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:8])
}
