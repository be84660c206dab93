package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	"github.com/sangkips/galleauto-billing/internal/domain/enum"
	domainRepo "github.com/sangkips/galleauto-billing/internal/domain/repository"
	"gorm.io/gorm"
)

type stockTransactionRepository struct {
	db *gorm.DB
}

// NewStockTransactionRepository creates the append-only stock transaction log
func NewStockTransactionRepository(db *gorm.DB) domainRepo.StockTransactionRepository {
	return &stockTransactionRepository{db: db}
}

func (r *stockTransactionRepository) Append(ctx context.Context, tx *entity.StockTransaction) error {
	return conn(ctx, r.db).Omit("Item").Create(tx).Error
}

// query preloads the item (including soft-deleted ones) and orders newest first
func (r *stockTransactionRepository) query(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).
		Preload("Item", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("transaction_date DESC, created_at DESC")
}

func (r *stockTransactionRepository) FindAll(ctx context.Context) ([]entity.StockTransaction, error) {
	var txs []entity.StockTransaction
	err := r.query(ctx).Find(&txs).Error
	return txs, err
}

func (r *stockTransactionRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]entity.StockTransaction, error) {
	var txs []entity.StockTransaction
	err := r.query(ctx).Where("item_id = ?", itemID).Find(&txs).Error
	return txs, err
}

func (r *stockTransactionRepository) FindByType(ctx context.Context, t enum.TransactionType) ([]entity.StockTransaction, error) {
	var txs []entity.StockTransaction
	err := r.query(ctx).Where("type = ?", t).Find(&txs).Error
	return txs, err
}

func (r *stockTransactionRepository) FindByItemAndType(ctx context.Context, itemID uuid.UUID, t enum.TransactionType) ([]entity.StockTransaction, error) {
	var txs []entity.StockTransaction
	err := r.query(ctx).Where("item_id = ? AND type = ?", itemID, t).Find(&txs).Error
	return txs, err
}

func (r *stockTransactionRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]entity.StockTransaction, error) {
	var txs []entity.StockTransaction
	err := r.query(ctx).Where("transaction_date BETWEEN ? AND ?", start, end).Find(&txs).Error
	return txs, err
}
