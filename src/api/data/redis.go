package data

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "revoked:"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// RevokeToken blacklists a session token id until the token would have
// expired anyway; logout relies on this since JWTs are otherwise stateless.
func RevokeToken(ctx context.Context, rdb *redis.Client, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, revokedPrefix+jti, "1", ttl).Err()
}

// IsTokenRevoked reports whether a token id sits on the blacklist. Redis
// being down fails open and accepts the token: it still carries a valid
// signature and expiry.
func IsTokenRevoked(ctx context.Context, rdb *redis.Client, jti string) bool {
	n, err := rdb.Exists(ctx, revokedPrefix+jti).Result()
	if err != nil {
		log.Printf("redis: revocation check failed: %v", err)
		return false
	}
	return n > 0
}
