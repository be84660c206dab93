package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	"github.com/sangkips/galleauto-billing/internal/domain/enum"
)

// StockBatchRepository defines the interface for stock batch persistence
type StockBatchRepository interface {
	Create(ctx context.Context, batch *entity.StockBatch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error)
	// ListByItem returns every batch of the item, oldest first.
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]entity.StockBatch, error)
	// ListAvailable returns batches with quantity > 0, oldest first.
	ListAvailable(ctx context.Context, itemID uuid.UUID) ([]entity.StockBatch, error)
	// TotalQuantity sums the remaining quantity of the item's batches (0 when none).
	TotalQuantity(ctx context.Context, itemID uuid.UUID) (int, error)
	// TotalsByItem returns the remaining quantity per item for the given ids.
	TotalsByItem(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]int, error)
	// Decrement subtracts amount only when at least amount remains. It
	// reports false when the guard rejected the update.
	Decrement(ctx context.Context, id uuid.UUID, amount int) (bool, error)
}

// StockTransactionRepository is the append-only stock movement log. Every
// query returns newest first.
type StockTransactionRepository interface {
	Append(ctx context.Context, tx *entity.StockTransaction) error
	FindAll(ctx context.Context) ([]entity.StockTransaction, error)
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]entity.StockTransaction, error)
	FindByType(ctx context.Context, t enum.TransactionType) ([]entity.StockTransaction, error)
	FindByItemAndType(ctx context.Context, itemID uuid.UUID, t enum.TransactionType) ([]entity.StockTransaction, error)
	// FindByDateRange includes both bounds.
	FindByDateRange(ctx context.Context, start, end time.Time) ([]entity.StockTransaction, error)
}
