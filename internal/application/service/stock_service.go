package service

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	"github.com/sangkips/galleauto-billing/internal/domain/enum"
	"github.com/sangkips/galleauto-billing/internal/domain/repository"
	"github.com/sangkips/galleauto-billing/pkg/apperror"
	"github.com/sangkips/galleauto-billing/pkg/logger"
	"github.com/sangkips/galleauto-billing/pkg/report"
	"github.com/shopspring/decimal"
)

// StockService handles stock batches and the stock movement log
type StockService struct {
	transactor repository.Transactor
	itemRepo   repository.ItemRepository
	batchRepo  repository.StockBatchRepository
	txRepo     repository.StockTransactionRepository
	now        func() time.Time
	log        zerolog.Logger
}

// NewStockService creates a new stock service
func NewStockService(
	transactor repository.Transactor,
	itemRepo repository.ItemRepository,
	batchRepo repository.StockBatchRepository,
	txRepo repository.StockTransactionRepository,
) *StockService {
	return &StockService{
		transactor: transactor,
		itemRepo:   itemRepo,
		batchRepo:  batchRepo,
		txRepo:     txRepo,
		now:        time.Now,
		log:        logger.WithComponent("stock"),
	}
}

// StockInInput represents a purchase of an item
type StockInInput struct {
	ItemID    uuid.UUID
	Quantity  int
	BuyPrice  decimal.Decimal
	SellPrice decimal.Decimal
	Reference string
	Notes     string
}

// StockIn records a new batch and its STOCK_IN movement atomically
func (s *StockService) StockIn(ctx context.Context, input *StockInInput) (*entity.StockBatch, error) {
	var fieldErrors []apperror.FieldError
	if input.Quantity <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity", Message: "Quantity must be greater than zero"})
	}
	if !input.BuyPrice.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "buy_price", Message: "Buy price must be greater than zero"})
	}
	if !input.SellPrice.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "sell_price", Message: "Sell price must be greater than zero"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	item, err := s.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, wrapInfra("Failed to load item", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if input.SellPrice.LessThan(input.BuyPrice) {
		s.log.Warn().
			Str("item", item.Name).
			Str("buy_price", input.BuyPrice.StringFixed(2)).
			Str("sell_price", input.SellPrice.StringFixed(2)).
			Msg("sell price is lower than buy price")
	}

	now := s.now()
	reference := optionalString(input.Reference)
	batch := &entity.StockBatch{
		ItemID:          item.ID,
		Quantity:        input.Quantity,
		InitialQuantity: input.Quantity,
		BuyPrice:        input.BuyPrice,
		SellPrice:       input.SellPrice,
		BatchDate:       now,
		Reference:       reference,
	}
	buy, sell := input.BuyPrice, input.SellPrice
	movement := &entity.StockTransaction{
		ItemID:          item.ID,
		Type:            enum.TransactionTypeStockIn,
		Quantity:        input.Quantity,
		BuyPrice:        &buy,
		SellPrice:       &sell,
		Reference:       reference,
		Notes:           optionalString(input.Notes),
		TransactionDate: now,
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.batchRepo.Create(ctx, batch); err != nil {
			return err
		}
		return s.txRepo.Append(ctx, movement)
	})
	if err != nil {
		return nil, wrapInfra("Failed to save stock", err)
	}

	batch.Item = item
	s.log.Info().
		Str("item", item.Name).
		Int("quantity", batch.Quantity).
		Str("batch_id", batch.ID.String()).
		Msg("stock added")
	return batch, nil
}

// ConsumeInput represents stock taken out of a batch
type ConsumeInput struct {
	BatchID  uuid.UUID
	Quantity int
	Notes    string
}

// Consume takes stock out of a batch and logs a STOCK_OUT movement
// atomically. The batch is left unchanged when it holds less than requested.
func (s *StockService) Consume(ctx context.Context, input *ConsumeInput) (*entity.StockBatch, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewFieldError("quantity", "Quantity must be greater than zero")
	}

	var batch *entity.StockBatch
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		batch, err = s.GetBatch(ctx, input.BatchID)
		if err != nil {
			return err
		}
		if input.Quantity > batch.Quantity {
			return insufficientStock(batch.Quantity)
		}

		ok, err := s.batchRepo.Decrement(ctx, batch.ID, input.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			// Another consumer got there first; report what is left now.
			current, err := s.batchRepo.GetByID(ctx, batch.ID)
			if err != nil {
				return err
			}
			available := 0
			if current != nil {
				available = current.Quantity
			}
			return insufficientStock(available)
		}

		return s.txRepo.Append(ctx, &entity.StockTransaction{
			ItemID:          batch.ItemID,
			Type:            enum.TransactionTypeStockOut,
			Quantity:        input.Quantity,
			Reference:       batch.Reference,
			Notes:           optionalString(input.Notes),
			TransactionDate: s.now(),
		})
	})
	if err != nil {
		return nil, wrapInfra("Failed to consume stock", err)
	}

	batch.Quantity -= input.Quantity
	s.log.Info().
		Str("batch_id", batch.ID.String()).
		Int("quantity", input.Quantity).
		Int("remaining", batch.Quantity).
		Msg("stock consumed")
	return batch, nil
}

func insufficientStock(available int) error {
	return apperror.NewFieldError("quantity", "Insufficient stock. Available: "+strconv.Itoa(available))
}

// GetBatch retrieves a batch by ID
func (s *StockService) GetBatch(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error) {
	batch, err := s.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapInfra("Failed to load batch", err)
	}
	if batch == nil {
		return nil, apperror.NewNotFoundError("Stock batch")
	}
	return batch, nil
}

// TotalQuantity returns the remaining quantity across all batches of an item
func (s *StockService) TotalQuantity(ctx context.Context, itemID uuid.UUID) (int, error) {
	total, err := s.batchRepo.TotalQuantity(ctx, itemID)
	if err != nil {
		return 0, wrapInfra("Failed to load stock", err)
	}
	return total, nil
}

// AvailableBatches returns the item's non-empty batches, oldest first
func (s *StockService) AvailableBatches(ctx context.Context, itemID uuid.UUID) ([]entity.StockBatch, error) {
	batches, err := s.batchRepo.ListAvailable(ctx, itemID)
	if err != nil {
		return nil, wrapInfra("Failed to load batches", err)
	}
	return batches, nil
}

// Batches returns every batch of the item, oldest first
func (s *StockService) Batches(ctx context.Context, itemID uuid.UUID) ([]entity.StockBatch, error) {
	batches, err := s.batchRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, wrapInfra("Failed to load batches", err)
	}
	return batches, nil
}

// ItemStockDetail is an item's remaining stock and the batches holding it.
type ItemStockDetail struct {
	Item             *entity.Item        `json:"item"`
	TotalQuantity    int                 `json:"total_quantity"`
	AvailableBatches []entity.StockBatch `json:"available_batches"`
}

// ItemStock returns the stock summary of an item
func (s *StockService) ItemStock(ctx context.Context, itemID uuid.UUID) (*ItemStockDetail, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, wrapInfra("Failed to load item", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	batches, err := s.AvailableBatches(ctx, itemID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, b := range batches {
		total += b.Quantity
	}
	return &ItemStockDetail{Item: item, TotalQuantity: total, AvailableBatches: batches}, nil
}

// HistoryFilter narrows the stock movement log. Zero fields do not filter.
type HistoryFilter struct {
	ItemID *uuid.UUID
	Type   *enum.TransactionType
	Start  *time.Time
	End    *time.Time
}

// History returns stock movements matching filter, newest first
func (s *StockService) History(ctx context.Context, filter HistoryFilter) ([]entity.StockTransaction, error) {
	var (
		movements []entity.StockTransaction
		err       error
	)

	switch {
	case filter.Start != nil || filter.End != nil:
		start, end := time.Time{}, s.now()
		if filter.Start != nil {
			start = *filter.Start
		}
		if filter.End != nil {
			end = *filter.End
		}
		if end.Before(start) {
			return nil, apperror.NewFieldError("end", "End date must not be before start date")
		}
		movements, err = s.txRepo.FindByDateRange(ctx, start, end)
		if err == nil {
			movements = filterMovements(movements, filter.ItemID, filter.Type)
		}
	case filter.ItemID != nil && filter.Type != nil:
		movements, err = s.txRepo.FindByItemAndType(ctx, *filter.ItemID, *filter.Type)
	case filter.ItemID != nil:
		movements, err = s.txRepo.FindByItem(ctx, *filter.ItemID)
	case filter.Type != nil:
		movements, err = s.txRepo.FindByType(ctx, *filter.Type)
	default:
		movements, err = s.txRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, wrapInfra("Failed to load stock history", err)
	}
	return movements, nil
}

func filterMovements(in []entity.StockTransaction, itemID *uuid.UUID, t *enum.TransactionType) []entity.StockTransaction {
	if itemID == nil && t == nil {
		return in
	}
	out := make([]entity.StockTransaction, 0, len(in))
	for _, m := range in {
		if itemID != nil && m.ItemID != *itemID {
			continue
		}
		if t != nil && m.Type != *t {
			continue
		}
		out = append(out, m)
	}
	return out
}

// ExportHistoryXLSX writes the filtered stock history as a workbook to w
func (s *StockService) ExportHistoryXLSX(ctx context.Context, filter HistoryFilter, w io.Writer) error {
	movements, err := s.History(ctx, filter)
	if err != nil {
		return err
	}

	rows := make([]report.StockRow, len(movements))
	for i, m := range movements {
		row := report.StockRow{
			Date:      m.TransactionDate,
			Type:      m.Type.String(),
			Quantity:  m.Quantity,
			BuyPrice:  m.BuyPrice,
			SellPrice: m.SellPrice,
		}
		if m.Item != nil {
			row.Item = m.Item.Name
		}
		if m.Reference != nil {
			row.Reference = *m.Reference
		}
		if m.Notes != nil {
			row.Notes = *m.Notes
		}
		rows[i] = row
	}

	if err := report.WriteStockHistoryXLSX(w, rows); err != nil {
		return apperror.NewInfrastructureError("Failed to export stock history", err)
	}
	return nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
