package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CachedTechnicianRepository is a read-through cache over the user-id
// lookup, the hot path of the policy engine. Cache failures degrade to the
// underlying repository; a stale entry can outlive a profile change for at
// most the configured TTL.
type CachedTechnicianRepository struct {
	TechnicianRepository

	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedTechnicianRepository wraps inner with a redis cache.
func NewCachedTechnicianRepository(inner TechnicianRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedTechnicianRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedTechnicianRepository{
		TechnicianRepository: inner,
		client:               client,
		ttl:                  ttl,
		logger:               logger,
	}
}

func technicianUserKey(userID int64) string {
	return fmt.Sprintf("technician:user:%d", userID)
}

// GetByUserID consults the cache before hitting postgres. A cached empty
// value records a negative lookup.
func (r *CachedTechnicianRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Technician, error) {
	if r.client != nil {
		raw, err := r.client.Get(ctx, technicianUserKey(userID)).Result()
		switch {
		case err == nil:
			if raw == "" {
				return nil, nil
			}
			var technician domain.Technician
			if err := json.Unmarshal([]byte(raw), &technician); err == nil {
				return &technician, nil
			}
			r.logger.Warn("corrupt technician cache entry", zap.Int64("user_id", userID))
		case err != redis.Nil:
			r.logger.Warn("technician cache read failed", zap.Error(err))
		}
	}

	technician, err := r.TechnicianRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if r.client != nil {
		payload := ""
		if technician != nil {
			if encoded, err := json.Marshal(technician); err == nil {
				payload = string(encoded)
			}
		}
		if err := r.client.Set(ctx, technicianUserKey(userID), payload, r.ttl).Err(); err != nil {
			r.logger.Warn("technician cache write failed", zap.Error(err))
		}
	}
	return technician, nil
}

// Update writes through and invalidates the cached user lookup.
func (r *CachedTechnicianRepository) Update(ctx context.Context, technician *domain.Technician) error {
	if err := r.TechnicianRepository.Update(ctx, technician); err != nil {
		return err
	}
	r.invalidate(ctx, technician.UserID)
	return nil
}

// Delete removes the profile and invalidates the cached lookup for its user.
func (r *CachedTechnicianRepository) Delete(ctx context.Context, id int64) error {
	technician, err := r.TechnicianRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.TechnicianRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, technician.UserID)
	return nil
}

func (r *CachedTechnicianRepository) invalidate(ctx context.Context, userID int64) {
	if r.client == nil {
		return
	}
	if err := r.client.Del(ctx, technicianUserKey(userID)).Err(); err != nil {
		r.logger.Warn("technician cache invalidation failed", zap.Error(err))
	}
}
