package repository

import (
	"context"

	"github.com/sangkips/galleauto-billing/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey returns nil, nil when the key has not been seen.
	GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Delete removes one key so it can be stored again.
	Delete(ctx context.Context, key string) error
	// DeleteExpired removes expired keys and returns how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
