package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	domainRepo "github.com/sangkips/galleauto-billing/internal/domain/repository"
	"gorm.io/gorm"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) domainRepo.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	return translate(conn(ctx, r.db).Create(item).Error)
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	return translate(conn(ctx, r.db).Save(item).Error)
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Item{}, "id = ?", id).Error
}

func (r *itemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var item entity.Item
	err := conn(ctx, r.db).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) GetByNormalizedName(ctx context.Context, normalizedName string) (*entity.Item, error) {
	var item entity.Item
	err := conn(ctx, r.db).First(&item, "normalized_name = ?", normalizedName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) List(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	err := conn(ctx, r.db).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *itemRepository) Search(ctx context.Context, term string) ([]entity.Item, error) {
	var items []entity.Item
	err := conn(ctx, r.db).
		Scopes(containsFold("name", term)).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// translate maps unique violations onto the domain sentinel
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicate
	}
	return err
}
