package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// rateLimitSubjectPrefix is the Redis key prefix for per-account limits.
	rateLimitSubjectPrefix = "ratelimit:subject:"
	// rateLimitAuthIPPrefix is the Redis key prefix for login/register limits.
	rateLimitAuthIPPrefix = "ratelimit:auth:ip:"
	// rateLimitSubjectTTL is the TTL for per-account rate limit keys.
	rateLimitSubjectTTL = 120 * time.Second
	// rateLimitIPTTL is the TTL for IP rate limit keys.
	rateLimitIPTTL = 10 * time.Second
)

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// tokenBucketScript refills and consumes in a single atomic step.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])      -- tokens per second
	local burst = tonumber(ARGV[2])     -- max tokens (bucket capacity)
	local now = tonumber(ARGV[3])       -- current time in seconds
	local ttl = tonumber(ARGV[4])       -- TTL in seconds

	-- Current state; a missing key starts with a full bucket
	local data = redis.call('HMGET', key, 'tokens', 'last_update')
	local tokens = tonumber(data[1]) or burst
	local last_update = tonumber(data[2]) or now

	-- Refill for the time since the last request, capped at burst
	local elapsed = now - last_update
	tokens = math.min(burst, tokens + (elapsed * rate))

	-- Take one token if available
	local allowed = 0
	local retry_after = 0

	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		-- Seconds until one whole token has refilled
		retry_after = math.ceil((1 - tokens) / rate)
	end

	-- Idle buckets expire; an expired bucket is a full one
	redis.call('HSET', key, 'tokens', tokens, 'last_update', now)
	redis.call('EXPIRE', key, ttl)

	return {allowed, retry_after, math.floor(tokens)}
`)

// CheckSubjectRateLimit checks and updates the limit for an authenticated
// account. The subject is hashed so emails never appear in Redis keys.
func (c *Cache) CheckSubjectRateLimit(ctx context.Context, subject string, ratePerMinute, burst int) (*RateLimitResult, error) {
	key := rateLimitSubjectPrefix + hashKey(subject)
	ratePerSecond := float64(ratePerMinute) / 60.0

	return c.checkRateLimit(ctx, key, ratePerSecond, burst, int(rateLimitSubjectTTL.Seconds()))
}

// CheckIPRateLimit checks and updates the limit for an unauthenticated
// client address on the login and register endpoints.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*RateLimitResult, error) {
	key := rateLimitAuthIPPrefix + hashKey(ip)

	return c.checkRateLimit(ctx, key, float64(ratePerSecond), burst, int(rateLimitIPTTL.Seconds()))
}

// checkRateLimit runs the token bucket. Redis errors fail open: the request
// is allowed and the error is returned for logging.
func (c *Cache) checkRateLimit(ctx context.Context, key string, rate float64, burst, ttl int) (*RateLimitResult, error) {
	now := time.Now().Unix()

	result, err := tokenBucketScript.Run(ctx, c.client,
		[]string{key},
		rate, burst, now, ttl,
	).Int64Slice()

	if err != nil {
		// Fail open on Redis errors - allow the request
		return &RateLimitResult{
			Allowed:   true,
			Remaining: int64(burst),
			ResetAt:   time.Now().Add(time.Minute),
		}, err
	}

	return &RateLimitResult{
		Allowed:    result[0] == 1,
		Remaining:  result[2],
		// One token refills every 1/rate seconds.
		ResetAt:    time.Now().Add(time.Duration(float64(time.Second) / rate)),
		RetryAfter: time.Duration(result[1]) * time.Second,
	}, nil
}

// hashKey creates a truncated SHA256 hash of an identifier.
func hashKey(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:8]) // 16 hex chars
}
