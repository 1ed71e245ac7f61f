package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"maktaba_back_end/internal/database"
)

var ctx = context.Background()

// --- Refresh tokens ---

// StoreRefreshToken stores a user's refresh token.
func StoreRefreshToken(userID, refreshToken string, duration time.Duration) error {
	key := fmt.Sprintf("refresh:%s", userID)
	return database.Redis.Set(ctx, key, refreshToken, duration).Err()
}

// GetRefreshToken fetches the stored refresh token for a user.
func GetRefreshToken(userID string) (string, error) {
	key := fmt.Sprintf("refresh:%s", userID)
	return database.Redis.Get(ctx, key).Result()
}

// DeleteRefreshToken removes the refresh token (logout).
func DeleteRefreshToken(userID string) error {
	key := fmt.Sprintf("refresh:%s", userID)
	return database.Redis.Del(ctx, key).Err()
}

// --- JWT blacklist (revocation before expiry) ---

// BlacklistToken marks an access token id revoked for its remaining lifetime.
func BlacklistToken(tokenID string, duration time.Duration) error {
	key := fmt.Sprintf("blacklist:%s", tokenID)
	return database.Redis.Set(ctx, key, "revoked", duration).Err()
}

// IsTokenBlacklisted reports whether a token id has been revoked.
func IsTokenBlacklisted(tokenID string) bool {
	key := fmt.Sprintf("blacklist:%s", tokenID)
	exists, err := database.Redis.Exists(ctx, key).Result()
	if err != nil {
		log.Printf("⚠️ Blacklist check error: %v", err)
		return false
	}
	return exists > 0
}

// --- User bans ---

func BanUser(userID string) error {
	key := fmt.Sprintf("banned:%s", userID)
	// no expiry = permanent
	return database.Redis.Set(ctx, key, "true", 0).Err()
}

func UnbanUser(userID string) error {
	key := fmt.Sprintf("banned:%s", userID)
	return database.Redis.Del(ctx, key).Err()
}

func IsUserBanned(userID string) bool {
	key := fmt.Sprintf("banned:%s", userID)
	exists, err := database.Redis.Exists(ctx, key).Result()
	if err != nil {
		log.Printf("⚠️ Ban check error: %v", err)
		return false
	}
	return exists > 0
}

// --- Generic cache ---

func SetCache(key string, value interface{}, duration time.Duration) error {
	return database.Redis.Set(ctx, key, value, duration).Err()
}

func GetCache(key string) (string, error) {
	return database.Redis.Get(ctx, key).Result()
}

func DeleteCache(key string) error {
	return database.Redis.Del(ctx, key).Err()
}

// AcquireLock takes a one-shot lock via SETNX. Returns false when the
// lock is already held.
func AcquireLock(key string, duration time.Duration) (bool, error) {
	return database.Redis.SetNX(ctx, key, "1", duration).Result()
}

// ReleaseLock frees a lock taken with AcquireLock.
func ReleaseLock(key string) error {
	return database.Redis.Del(ctx, key).Err()
}

// --- Rate limiting ---

// IncrementRateLimit bumps a windowed counter and returns the new count.
func IncrementRateLimit(key string, window time.Duration) (int64, error) {
	pipe := database.Redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
