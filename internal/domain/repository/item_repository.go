package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
)

// ItemRepository defines the interface for inventory item persistence
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	Update(ctx context.Context, item *entity.Item) error
	// Delete soft-deletes the item so its stock history stays queryable.
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	// GetByNormalizedName returns nil, nil when no live item has the name.
	GetByNormalizedName(ctx context.Context, normalizedName string) (*entity.Item, error)
	// List returns all items ordered by name.
	List(ctx context.Context) ([]entity.Item, error)
	// Search matches term case-insensitively anywhere in the name, ordered by name.
	Search(ctx context.Context, term string) ([]entity.Item, error)
}
