package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	domainRepo "github.com/sangkips/galleauto-billing/internal/domain/repository"
	"gorm.io/gorm"
)

type stockBatchRepository struct {
	db *gorm.DB
}

// NewStockBatchRepository creates a new stock batch repository
func NewStockBatchRepository(db *gorm.DB) domainRepo.StockBatchRepository {
	return &stockBatchRepository{db: db}
}

func (r *stockBatchRepository) Create(ctx context.Context, batch *entity.StockBatch) error {
	return conn(ctx, r.db).Create(batch).Error
}

func (r *stockBatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error) {
	var batch entity.StockBatch
	err := conn(ctx, r.db).
		Preload("Item", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&batch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &batch, err
}

func (r *stockBatchRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]entity.StockBatch, error) {
	var batches []entity.StockBatch
	err := conn(ctx, r.db).
		Where("item_id = ?", itemID).
		Order("batch_date ASC").
		Find(&batches).Error
	return batches, err
}

func (r *stockBatchRepository) ListAvailable(ctx context.Context, itemID uuid.UUID) ([]entity.StockBatch, error) {
	var batches []entity.StockBatch
	err := conn(ctx, r.db).
		Where("item_id = ? AND quantity > 0", itemID).
		Order("batch_date ASC").
		Find(&batches).Error
	return batches, err
}

func (r *stockBatchRepository) TotalQuantity(ctx context.Context, itemID uuid.UUID) (int, error) {
	var total int
	err := conn(ctx, r.db).Model(&entity.StockBatch{}).
		Where("item_id = ?", itemID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *stockBatchRepository) TotalsByItem(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	totals := make(map[uuid.UUID]int, len(itemIDs))
	if len(itemIDs) == 0 {
		return totals, nil
	}

	var rows []struct {
		ItemID uuid.UUID
		Total  int
	}
	err := conn(ctx, r.db).Model(&entity.StockBatch{}).
		Select("item_id, COALESCE(SUM(quantity), 0) AS total").
		Where("item_id IN ?", itemIDs).
		Group("item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		totals[row.ItemID] = row.Total
	}
	return totals, nil
}

func (r *stockBatchRepository) Decrement(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.StockBatch{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
