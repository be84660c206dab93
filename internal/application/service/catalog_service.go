package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	"github.com/sangkips/galleauto-billing/internal/domain/repository"
	"github.com/sangkips/galleauto-billing/pkg/apperror"
	"github.com/sangkips/galleauto-billing/pkg/logger"
	"github.com/sangkips/galleauto-billing/pkg/similarity"
)

const minItemNameLength = 2

// CatalogService handles inventory item operations
type CatalogService struct {
	itemRepo  repository.ItemRepository
	batchRepo repository.StockBatchRepository
	threshold float64
	log       zerolog.Logger
}

// NewCatalogService creates a new catalog service. A threshold <= 0 falls
// back to similarity.DefaultThreshold.
func NewCatalogService(
	itemRepo repository.ItemRepository,
	batchRepo repository.StockBatchRepository,
	threshold float64,
) *CatalogService {
	if threshold <= 0 {
		threshold = similarity.DefaultThreshold
	}
	return &CatalogService{
		itemRepo:  itemRepo,
		batchRepo: batchRepo,
		threshold: threshold,
		log:       logger.WithComponent("catalog"),
	}
}

// NormalizeName returns the uniqueness key of an item name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	Name        string
	Description string
}

// CreateItem validates and stores a new item
func (s *CatalogService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	name, err := validateItemName(input.Name)
	if err != nil {
		return nil, err
	}

	normalized := NormalizeName(name)
	existing, err := s.itemRepo.GetByNormalizedName(ctx, normalized)
	if err != nil {
		return nil, wrapInfra("Failed to check item name", err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Item '" + name + "' already exists")
	}

	item := &entity.Item{
		Name:           name,
		NormalizedName: normalized,
		Description:    strings.TrimSpace(input.Description),
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Item '" + name + "' already exists")
		}
		return nil, wrapInfra("Failed to save item", err)
	}

	s.log.Info().Str("item_id", item.ID.String()).Str("name", item.Name).Msg("item created")
	return item, nil
}

// RenameItemInput represents the update item input
type RenameItemInput struct {
	Name        string
	Description string
}

// RenameItem changes an item's name and description
func (s *CatalogService) RenameItem(ctx context.Context, id uuid.UUID, input *RenameItemInput) (*entity.Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := validateItemName(input.Name)
	if err != nil {
		return nil, err
	}

	normalized := NormalizeName(name)
	if normalized != item.NormalizedName {
		existing, err := s.itemRepo.GetByNormalizedName(ctx, normalized)
		if err != nil {
			return nil, wrapInfra("Failed to check item name", err)
		}
		if existing != nil && existing.ID != item.ID {
			return nil, apperror.NewConflictError("Item '" + name + "' already exists")
		}
	}

	item.Name = name
	item.NormalizedName = normalized
	item.Description = strings.TrimSpace(input.Description)
	if err := s.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Item '" + name + "' already exists")
		}
		return nil, wrapInfra("Failed to update item", err)
	}
	return item, nil
}

func validateItemName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", apperror.NewFieldError("name", "Item name is required")
	}
	if utf8.RuneCountInString(name) < minItemNameLength {
		return "", apperror.NewFieldError("name", "Item name must be at least 2 characters")
	}
	return name, nil
}

// FindByNormalizedName returns the live item with the given name, or nil.
func (s *CatalogService) FindByNormalizedName(ctx context.Context, name string) (*entity.Item, error) {
	item, err := s.itemRepo.GetByNormalizedName(ctx, NormalizeName(name))
	if err != nil {
		return nil, wrapInfra("Failed to load item", err)
	}
	return item, nil
}

// GetItem retrieves an item by ID
func (s *CatalogService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapInfra("Failed to load item", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems returns every item ordered by name
func (s *CatalogService) ListItems(ctx context.Context) ([]entity.Item, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, wrapInfra("Failed to list items", err)
	}
	return items, nil
}

// Search returns items whose name contains term, ignoring case. An empty
// term lists everything.
func (s *CatalogService) Search(ctx context.Context, term string) ([]entity.Item, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListItems(ctx)
	}
	items, err := s.itemRepo.Search(ctx, term)
	if err != nil {
		return nil, wrapInfra("Failed to search items", err)
	}
	return items, nil
}

// FindSimilar returns items whose names look like candidate, exact matches
// included. A threshold <= 0 uses the configured one.
func (s *CatalogService) FindSimilar(ctx context.Context, candidate string, threshold float64) ([]entity.Item, error) {
	if threshold <= 0 {
		threshold = s.threshold
	}
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	similar := make([]entity.Item, 0)
	for _, item := range items {
		if similarity.AreSimilar(candidate, item.Name, threshold) {
			similar = append(similar, item)
		}
	}
	return similar, nil
}

// DeleteItem soft-deletes an item that has no remaining stock
func (s *CatalogService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return err
	}
	total, err := s.batchRepo.TotalQuantity(ctx, id)
	if err != nil {
		return wrapInfra("Failed to load stock", err)
	}
	if total > 0 {
		return apperror.NewConflictError("Item still has stock remaining")
	}
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return wrapInfra("Failed to delete item", err)
	}

	s.log.Info().Str("item_id", item.ID.String()).Str("name", item.Name).Msg("item deleted")
	return nil
}

// InventoryOverview lists items matching term with their remaining stock
func (s *CatalogService) InventoryOverview(ctx context.Context, term string) ([]entity.ItemStock, error) {
	items, err := s.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	totals, err := s.batchRepo.TotalsByItem(ctx, ids)
	if err != nil {
		return nil, wrapInfra("Failed to load stock totals", err)
	}

	overview := make([]entity.ItemStock, len(items))
	for i, item := range items {
		overview[i] = entity.ItemStock{Item: item, TotalQuantity: totals[item.ID]}
	}
	return overview, nil
}
