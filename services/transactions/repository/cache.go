package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/constants"
	"github.com/piresc/smartlocker/internal/pkg/database"
)

// CacheRepo implements transactions.CacheRepo on Redis
type CacheRepo struct {
	redis *database.RedisClient
}

// NewCacheRepository creates a new Redis backed cache repository
func NewCacheRepository(redisClient *database.RedisClient) *CacheRepo {
	return &CacheRepo{redis: redisClient}
}

// IncrementOTPFailures counts one failed pickup attempt. The counter expires ttl after the first failure.
func (r *CacheRepo) IncrementOTPFailures(ctx context.Context, txnID uuid.UUID, ttl time.Duration) (int64, error) {
	n, err := r.redis.Incr(ctx, fmt.Sprintf(constants.KeyOTPAttempts, txnID), ttl)
	if err != nil {
		return 0, fmt.Errorf("failed to increment otp attempts: %w", err)
	}
	return n, nil
}

// GetOTPFailures returns the failed pickup attempts recorded for the transaction
func (r *CacheRepo) GetOTPFailures(ctx context.Context, txnID uuid.UUID) (int64, error) {
	v, err := r.redis.Get(ctx, fmt.Sprintf(constants.KeyOTPAttempts, txnID))
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get otp attempts: %w", err)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid otp attempt counter %q: %w", v, err)
	}
	return n, nil
}

// ResetOTPFailures clears the failed pickup counter
func (r *CacheRepo) ResetOTPFailures(ctx context.Context, txnID uuid.UUID) error {
	if err := r.redis.Delete(ctx, fmt.Sprintf(constants.KeyOTPAttempts, txnID)); err != nil {
		return fmt.Errorf("failed to reset otp attempts: %w", err)
	}
	return nil
}

// AcquireSweepLease takes the named lease for holder unless another holder has it
func (r *CacheRepo) AcquireSweepLease(ctx context.Context, name, holder string, ttl time.Duration) (bool, error) {
	ok, err := r.redis.SetNX(ctx, fmt.Sprintf(constants.KeySweepLease, name), holder, ttl)
	if err != nil {
		return false, fmt.Errorf("failed to acquire sweep lease: %w", err)
	}
	return ok, nil
}

// ReleaseSweepLease drops the lease if holder still owns it
func (r *CacheRepo) ReleaseSweepLease(ctx context.Context, name, holder string) error {
	if _, err := r.redis.CompareAndDelete(ctx, fmt.Sprintf(constants.KeySweepLease, name), holder); err != nil {
		return fmt.Errorf("failed to release sweep lease: %w", err)
	}
	return nil
}
