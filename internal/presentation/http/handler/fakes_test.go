package handler

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	"github.com/sangkips/galleauto-billing/internal/domain/enum"
	"github.com/sangkips/galleauto-billing/pkg/pagination"
	"github.com/shopspring/decimal"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memItems struct{ items map[uuid.UUID]entity.Item }

func (r *memItems) Create(ctx context.Context, item *entity.Item) error {
	item.ID = uuid.New()
	r.items[item.ID] = *item
	return nil
}

func (r *memItems) Update(ctx context.Context, item *entity.Item) error {
	r.items[item.ID] = *item
	return nil
}

func (r *memItems) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *memItems) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *memItems) GetByNormalizedName(ctx context.Context, name string) (*entity.Item, error) {
	for _, item := range r.items {
		if item.NormalizedName == name {
			return &item, nil
		}
	}
	return nil, nil
}

func (r *memItems) List(ctx context.Context) ([]entity.Item, error) {
	return r.Search(ctx, "")
}

func (r *memItems) Search(ctx context.Context, term string) ([]entity.Item, error) {
	var out []entity.Item
	for _, item := range r.items {
		if strings.Contains(item.NormalizedName, strings.ToLower(term)) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memBatches struct{ batches map[uuid.UUID]entity.StockBatch }

func (r *memBatches) Create(ctx context.Context, batch *entity.StockBatch) error {
	batch.ID = uuid.New()
	r.batches[batch.ID] = *batch
	return nil
}

func (r *memBatches) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *memBatches) ListByItem(ctx context.Context, itemID uuid.UUID) ([]entity.StockBatch, error) {
	var out []entity.StockBatch
	for _, b := range r.batches {
		if b.ItemID == itemID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBatches) ListAvailable(ctx context.Context, itemID uuid.UUID) ([]entity.StockBatch, error) {
	all, _ := r.ListByItem(ctx, itemID)
	var out []entity.StockBatch
	for _, b := range all {
		if b.Quantity > 0 {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBatches) TotalQuantity(ctx context.Context, itemID uuid.UUID) (int, error) {
	all, _ := r.ListByItem(ctx, itemID)
	total := 0
	for _, b := range all {
		total += b.Quantity
	}
	return total, nil
}

func (r *memBatches) TotalsByItem(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	out := map[uuid.UUID]int{}
	for _, id := range ids {
		out[id], _ = r.TotalQuantity(ctx, id)
	}
	return out, nil
}

func (r *memBatches) Decrement(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	b, ok := r.batches[id]
	if !ok || b.Quantity < amount {
		return false, nil
	}
	b.Quantity -= amount
	r.batches[id] = b
	return true, nil
}

type memMovements struct{ log []entity.StockTransaction }

func (r *memMovements) Append(ctx context.Context, tx *entity.StockTransaction) error {
	tx.ID = uuid.New()
	r.log = append([]entity.StockTransaction{*tx}, r.log...)
	return nil
}

func (r *memMovements) FindAll(ctx context.Context) ([]entity.StockTransaction, error) {
	return r.log, nil
}

func (r *memMovements) FindByItem(ctx context.Context, itemID uuid.UUID) ([]entity.StockTransaction, error) {
	var out []entity.StockTransaction
	for _, m := range r.log {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovements) FindByType(ctx context.Context, t enum.TransactionType) ([]entity.StockTransaction, error) {
	var out []entity.StockTransaction
	for _, m := range r.log {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovements) FindByItemAndType(ctx context.Context, itemID uuid.UUID, t enum.TransactionType) ([]entity.StockTransaction, error) {
	var out []entity.StockTransaction
	for _, m := range r.log {
		if m.ItemID == itemID && m.Type == t {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovements) FindByDateRange(ctx context.Context, start, end time.Time) ([]entity.StockTransaction, error) {
	var out []entity.StockTransaction
	for _, m := range r.log {
		if !m.TransactionDate.Before(start) && !m.TransactionDate.After(end) {
			out = append(out, m)
		}
	}
	return out, nil
}

type memInvoices struct {
	invoices []*entity.Invoice
	seq      *int64
}

func (r *memInvoices) Create(ctx context.Context, invoice *entity.Invoice) error {
	invoice.ID = uuid.New()
	r.invoices = append(r.invoices, invoice)
	return nil
}

func (r *memInvoices) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *memInvoices) Count(ctx context.Context) (int64, error) {
	return int64(len(r.invoices)), nil
}

func (r *memInvoices) LastNumber(ctx context.Context) (string, error) {
	if len(r.invoices) == 0 {
		return "", nil
	}
	return r.invoices[len(r.invoices)-1].InvoiceNumber, nil
}

func (r *memInvoices) SearchByVehicle(ctx context.Context, vehicle string, params *pagination.PaginationParams) ([]*entity.Invoice, int64, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if strings.Contains(inv.VehicleNumber, strings.ToUpper(vehicle)) {
			out = append(out, inv)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memInvoices) ListBetween(ctx context.Context, start, end time.Time) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if !inv.InvoiceDate.Before(start) && inv.InvoiceDate.Before(end) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *memInvoices) TotalBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	invoices, _ := r.ListBetween(ctx, start, end)
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.TotalAmount())
	}
	return total, nil
}

func (r *memInvoices) Reserve(ctx context.Context, init func() (int64, error)) (int64, error) {
	if r.seq == nil {
		start, err := init()
		if err != nil {
			return 0, err
		}
		r.seq = &start
	}
	*r.seq++
	return *r.seq, nil
}

func (r *memInvoices) Peek(ctx context.Context) (int64, bool, error) {
	if r.seq == nil {
		return 0, false, nil
	}
	return *r.seq, true, nil
}

func (r *memInvoices) Set(ctx context.Context, value int64) error {
	r.seq = &value
	return nil
}
