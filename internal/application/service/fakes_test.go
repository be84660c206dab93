package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	"github.com/sangkips/galleauto-billing/internal/domain/enum"
	"github.com/sangkips/galleauto-billing/internal/domain/repository"
	"github.com/sangkips/galleauto-billing/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// memStore backs every fake repository. The transactor snapshots it and
// restores the snapshot when the callback fails.
type memStore struct {
	items     map[uuid.UUID]entity.Item
	batches   map[uuid.UUID]entity.StockBatch
	movements []entity.StockTransaction
	invoices  []*entity.Invoice
	seq       *int64

	failItemCreate error
	failAppend     error
	failInvoice    error
	txCount        int

	// beforeDecrement runs inside Decrement ahead of the quantity check.
	beforeDecrement func()
}

func newMemStore() *memStore {
	return &memStore{
		items:   map[uuid.UUID]entity.Item{},
		batches: map[uuid.UUID]entity.StockBatch{},
	}
}

type snapshot struct {
	items     map[uuid.UUID]entity.Item
	batches   map[uuid.UUID]entity.StockBatch
	movements []entity.StockTransaction
	invoices  []*entity.Invoice
	seq       *int64
}

func (m *memStore) snapshot() snapshot {
	s := snapshot{
		items:     make(map[uuid.UUID]entity.Item, len(m.items)),
		batches:   make(map[uuid.UUID]entity.StockBatch, len(m.batches)),
		movements: append([]entity.StockTransaction(nil), m.movements...),
		invoices:  append([]*entity.Invoice(nil), m.invoices...),
	}
	for k, v := range m.items {
		s.items[k] = v
	}
	for k, v := range m.batches {
		s.batches[k] = v
	}
	if m.seq != nil {
		v := *m.seq
		s.seq = &v
	}
	return s
}

func (m *memStore) restore(s snapshot) {
	m.items, m.batches, m.movements, m.invoices, m.seq = s.items, s.batches, s.movements, s.invoices, s.seq
}

// --- transactor ---

type fakeTransactor struct{ store *memStore }

func (t fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.txCount++
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// --- items ---

type fakeItemRepo struct{ store *memStore }

func (r fakeItemRepo) Create(ctx context.Context, item *entity.Item) error {
	if r.store.failItemCreate != nil {
		return r.store.failItemCreate
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	r.store.items[item.ID] = *item
	return nil
}

func (r fakeItemRepo) Update(ctx context.Context, item *entity.Item) error {
	r.store.items[item.ID] = *item
	return nil
}

func (r fakeItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	item := r.store.items[id]
	item.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	r.store.items[id] = item
	return nil
}

func (r fakeItemRepo) live() []entity.Item {
	var out []entity.Item
	for _, item := range r.store.items {
		if !item.DeletedAt.Valid {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r fakeItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, ok := r.store.items[id]
	if !ok || item.DeletedAt.Valid {
		return nil, nil
	}
	return &item, nil
}

func (r fakeItemRepo) GetByNormalizedName(ctx context.Context, name string) (*entity.Item, error) {
	for _, item := range r.live() {
		if item.NormalizedName == name {
			return &item, nil
		}
	}
	return nil, nil
}

func (r fakeItemRepo) List(ctx context.Context) ([]entity.Item, error) {
	return r.live(), nil
}

func (r fakeItemRepo) Search(ctx context.Context, term string) ([]entity.Item, error) {
	var out []entity.Item
	for _, item := range r.live() {
		if strings.Contains(strings.ToLower(item.Name), strings.ToLower(term)) {
			out = append(out, item)
		}
	}
	return out, nil
}

// --- batches ---

type fakeBatchRepo struct{ store *memStore }

func (r fakeBatchRepo) Create(ctx context.Context, batch *entity.StockBatch) error {
	if batch.ID == uuid.Nil {
		batch.ID = uuid.New()
	}
	r.store.batches[batch.ID] = *batch
	return nil
}

func (r fakeBatchRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error) {
	batch, ok := r.store.batches[id]
	if !ok {
		return nil, nil
	}
	if item, ok := r.store.items[batch.ItemID]; ok {
		batch.Item = &item
	}
	return &batch, nil
}

func (r fakeBatchRepo) byItem(itemID uuid.UUID, availableOnly bool) []entity.StockBatch {
	var out []entity.StockBatch
	for _, b := range r.store.batches {
		if b.ItemID == itemID && (!availableOnly || b.Quantity > 0) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BatchDate.Before(out[j].BatchDate) })
	return out
}

func (r fakeBatchRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]entity.StockBatch, error) {
	return r.byItem(itemID, false), nil
}

func (r fakeBatchRepo) ListAvailable(ctx context.Context, itemID uuid.UUID) ([]entity.StockBatch, error) {
	return r.byItem(itemID, true), nil
}

func (r fakeBatchRepo) TotalQuantity(ctx context.Context, itemID uuid.UUID) (int, error) {
	total := 0
	for _, b := range r.byItem(itemID, false) {
		total += b.Quantity
	}
	return total, nil
}

func (r fakeBatchRepo) TotalsByItem(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	totals := map[uuid.UUID]int{}
	for _, id := range itemIDs {
		totals[id], _ = r.TotalQuantity(ctx, id)
	}
	return totals, nil
}

func (r fakeBatchRepo) Decrement(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	if r.store.beforeDecrement != nil {
		r.store.beforeDecrement()
	}
	batch, ok := r.store.batches[id]
	if !ok || batch.Quantity < amount {
		return false, nil
	}
	batch.Quantity -= amount
	r.store.batches[id] = batch
	return true, nil
}

// --- stock movements ---

type fakeMovementRepo struct{ store *memStore }

func (r fakeMovementRepo) Append(ctx context.Context, tx *entity.StockTransaction) error {
	if r.store.failAppend != nil {
		return r.store.failAppend
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	r.store.movements = append(r.store.movements, *tx)
	return nil
}

func (r fakeMovementRepo) where(keep func(entity.StockTransaction) bool) []entity.StockTransaction {
	var out []entity.StockTransaction
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		m := r.store.movements[i]
		if keep(m) {
			if item, ok := r.store.items[m.ItemID]; ok {
				m.Item = &item
			}
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TransactionDate.After(out[j].TransactionDate) })
	return out
}

func (r fakeMovementRepo) FindAll(ctx context.Context) ([]entity.StockTransaction, error) {
	return r.where(func(entity.StockTransaction) bool { return true }), nil
}

func (r fakeMovementRepo) FindByItem(ctx context.Context, itemID uuid.UUID) ([]entity.StockTransaction, error) {
	return r.where(func(m entity.StockTransaction) bool { return m.ItemID == itemID }), nil
}

func (r fakeMovementRepo) FindByType(ctx context.Context, t enum.TransactionType) ([]entity.StockTransaction, error) {
	return r.where(func(m entity.StockTransaction) bool { return m.Type == t }), nil
}

func (r fakeMovementRepo) FindByItemAndType(ctx context.Context, itemID uuid.UUID, t enum.TransactionType) ([]entity.StockTransaction, error) {
	return r.where(func(m entity.StockTransaction) bool { return m.ItemID == itemID && m.Type == t }), nil
}

func (r fakeMovementRepo) FindByDateRange(ctx context.Context, start, end time.Time) ([]entity.StockTransaction, error) {
	return r.where(func(m entity.StockTransaction) bool {
		return !m.TransactionDate.Before(start) && !m.TransactionDate.After(end)
	}), nil
}

// --- invoices ---

type fakeInvoiceRepo struct{ store *memStore }

func (r fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if r.store.failInvoice != nil {
		return r.store.failInvoice
	}
	for _, existing := range r.store.invoices {
		if existing.InvoiceNumber == invoice.InvoiceNumber {
			return repository.ErrDuplicate
		}
	}
	invoice.ID = uuid.New()
	r.store.invoices = append(r.store.invoices, entity.RestoreInvoice(*invoice, invoice.Items()))
	return nil
}

func (r fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	for _, inv := range r.store.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (r fakeInvoiceRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.store.invoices)), nil
}

func (r fakeInvoiceRepo) LastNumber(ctx context.Context) (string, error) {
	if len(r.store.invoices) == 0 {
		return "", nil
	}
	return r.store.invoices[len(r.store.invoices)-1].InvoiceNumber, nil
}

func (r fakeInvoiceRepo) newestFirst(keep func(*entity.Invoice) bool) []*entity.Invoice {
	var out []*entity.Invoice
	for _, inv := range r.store.invoices {
		if keep(inv) {
			out = append(out, inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].InvoiceDate.After(out[j].InvoiceDate) })
	return out
}

func (r fakeInvoiceRepo) SearchByVehicle(ctx context.Context, vehicle string, params *pagination.PaginationParams) ([]*entity.Invoice, int64, error) {
	all := r.newestFirst(func(inv *entity.Invoice) bool {
		return strings.Contains(strings.ToLower(inv.VehicleNumber), strings.ToLower(vehicle))
	})
	start := min(params.Offset(), len(all))
	end := min(start+params.PerPage, len(all))
	return all[start:end], int64(len(all)), nil
}

func (r fakeInvoiceRepo) ListBetween(ctx context.Context, start, end time.Time) ([]*entity.Invoice, error) {
	return r.newestFirst(func(inv *entity.Invoice) bool {
		return !inv.InvoiceDate.Before(start) && inv.InvoiceDate.Before(end)
	}), nil
}

func (r fakeInvoiceRepo) TotalBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	invoices, _ := r.ListBetween(ctx, start, end)
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.TotalAmount())
	}
	return total, nil
}

// --- invoice sequence ---

type fakeSequenceRepo struct{ store *memStore }

func (r fakeSequenceRepo) Reserve(ctx context.Context, init func() (int64, error)) (int64, error) {
	if r.store.seq == nil {
		start, err := init()
		if err != nil {
			return 0, err
		}
		r.store.seq = &start
	}
	*r.store.seq++
	return *r.store.seq, nil
}

func (r fakeSequenceRepo) Peek(ctx context.Context) (int64, bool, error) {
	if r.store.seq == nil {
		return 0, false, nil
	}
	return *r.store.seq, true, nil
}

func (r fakeSequenceRepo) Set(ctx context.Context, value int64) error {
	r.store.seq = &value
	return nil
}

// clock hands out strictly increasing times.
type clock struct{ t time.Time }

func newClock(start time.Time) *clock { return &clock{t: start} }

func (c *clock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}
