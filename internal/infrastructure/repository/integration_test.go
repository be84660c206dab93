package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	"github.com/sangkips/galleauto-billing/internal/domain/enum"
	domainRepo "github.com/sangkips/galleauto-billing/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to TEST_DATABASE_DSN when INTEGRATION_TESTS=1 and
// empties every table.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") != "1" {
		t.Skip("set INTEGRATION_TESTS=1 and TEST_DATABASE_DSN to run repository tests")
	}
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Fatal("TEST_DATABASE_DSN is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	err = db.Exec("TRUNCATE items, stock_batches, stock_transactions, invoice_items, invoices, invoice_sequences, idempotency_keys CASCADE").Error
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func TestItemRepositoryUniqueLiveName(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewItemRepository(db)

	first := &entity.Item{Name: "Oil Filter", NormalizedName: "oil filter"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, &entity.Item{Name: "OIL FILTER", NormalizedName: "oil filter"})
	if !errors.Is(err, domainRepo.ErrDuplicate) {
		t.Fatalf("duplicate Create error = %v, want ErrDuplicate", err)
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Create(ctx, &entity.Item{Name: "Oil Filter", NormalizedName: "oil filter"}); err != nil {
		t.Fatalf("re-create after delete: %v", err)
	}

	found, err := repo.Search(ctx, "FIL")
	if err != nil || len(found) != 1 {
		t.Fatalf("Search = %d items, %v", len(found), err)
	}
}

func TestStockBatchDecrementGuard(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	item := &entity.Item{Name: "Brake Pad", NormalizedName: "brake pad"}
	if err := NewItemRepository(db).Create(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}
	batches := NewStockBatchRepository(db)
	batch := &entity.StockBatch{
		ItemID:          item.ID,
		Quantity:        3,
		InitialQuantity: 3,
		BuyPrice:        decimal.NewFromInt(1000),
		SellPrice:       decimal.NewFromInt(1500),
		BatchDate:       time.Now(),
	}
	if err := batches.Create(ctx, batch); err != nil {
		t.Fatalf("create batch: %v", err)
	}

	tests := []struct {
		amount int
		wantOK bool
		left   int
	}{
		{4, false, 3},
		{2, true, 1},
		{1, true, 0},
		{1, false, 0},
	}
	for _, tt := range tests {
		ok, err := batches.Decrement(ctx, batch.ID, tt.amount)
		if err != nil || ok != tt.wantOK {
			t.Fatalf("Decrement(%d) = %v, %v; want %v", tt.amount, ok, err, tt.wantOK)
		}
		total, _ := batches.TotalQuantity(ctx, item.ID)
		if total != tt.left {
			t.Fatalf("after Decrement(%d) total = %d, want %d", tt.amount, total, tt.left)
		}
	}

	available, err := batches.ListAvailable(ctx, item.ID)
	if err != nil || len(available) != 0 {
		t.Fatalf("ListAvailable = %d batches, %v", len(available), err)
	}
}

func TestTransactorRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	items := NewItemRepository(db)
	movements := NewStockTransactionRepository(db)

	item := &entity.Item{Name: "Wiper", NormalizedName: "wiper"}
	if err := items.Create(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}

	boom := errors.New("boom")
	err := NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		if err := movements.Append(ctx, &entity.StockTransaction{
			ItemID:          item.ID,
			Type:            enum.TransactionTypeStockIn,
			Quantity:        1,
			TransactionDate: time.Now(),
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTransaction error = %v, want boom", err)
	}

	all, err := movements.FindAll(ctx)
	if err != nil || len(all) != 0 {
		t.Fatalf("movements after rollback = %d, %v", len(all), err)
	}
}

func TestInvoiceSequence(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seq := NewInvoiceSequenceRepository(db)
	tx := NewTransactor(db)

	if _, ok, err := seq.Peek(ctx); ok || err != nil {
		t.Fatalf("Peek on empty = %v, %v", ok, err)
	}

	reserve := func() int64 {
		var n int64
		err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			n, err = seq.Reserve(ctx, func() (int64, error) { return 41, nil })
			return err
		})
		if err != nil {
			t.Fatalf("Reserve: %v", err)
		}
		return n
	}
	if got := reserve(); got != 42 {
		t.Fatalf("first Reserve = %d, want 42", got)
	}
	if got := reserve(); got != 43 {
		t.Fatalf("second Reserve = %d, want 43", got)
	}

	if err := seq.Set(ctx, 100); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, err := seq.Peek(ctx); v != 100 || !ok || err != nil {
		t.Fatalf("Peek after Set = %d, %v, %v", v, ok, err)
	}
}

func TestInvoiceRepositoryRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(db)

	day := time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local)
	mileage := 45000
	inv := &entity.Invoice{
		InvoiceNumber:  "INV-0000001",
		InvoiceDate:    day.Add(10 * time.Hour),
		CustomerName:   "Nimal Perera",
		ContactNumber:  "0771234567",
		VehicleNumber:  "CAB-1234",
		CurrentMileage: &mileage,
	}
	inv.AddItem("Full service", decimal.RequireFromString("4500"))
	inv.AddItem("Wash", decimal.RequireFromString("750.50"))

	if err := repo.Create(ctx, inv); err != nil {
		t.Fatalf("Create: %v", err)
	}
	dup := &entity.Invoice{InvoiceNumber: "INV-0000001", InvoiceDate: day, CustomerName: "x", ContactNumber: "0770000000", VehicleNumber: "X"}
	dup.AddItem("Oil", decimal.NewFromInt(1))
	if err := repo.Create(ctx, dup); !errors.Is(err, domainRepo.ErrDuplicate) {
		t.Fatalf("duplicate number error = %v, want ErrDuplicate", err)
	}

	got, err := repo.GetByID(ctx, inv.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID = %v, %v", got, err)
	}
	items := got.Items()
	if len(items) != 2 || items[0].SerialNo != 1 || items[1].Description != "Wash" {
		t.Fatalf("items = %+v", items)
	}
	if !got.TotalAmount().Equal(decimal.RequireFromString("5250.5")) {
		t.Fatalf("total = %s", got.TotalAmount())
	}

	total, err := repo.TotalBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil || !total.Equal(decimal.RequireFromString("5250.5")) {
		t.Fatalf("TotalBetween = %s, %v", total, err)
	}
	if last, _ := repo.LastNumber(ctx); last != "INV-0000001" {
		t.Fatalf("LastNumber = %q", last)
	}
}

func TestIdempotencyKeyFirstWriteWins(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewIdempotencyRepository(db)

	first := &entity.IdempotencyKey{Key: "k", Endpoint: "POST /api/v1/invoices", RequestHash: "a", ResponseCode: 201, ResponseBody: []byte(`{"n":1}`), ExpiresAt: time.Now().Add(time.Hour)}
	second := &entity.IdempotencyKey{Key: "k", Endpoint: "POST /api/v1/invoices", RequestHash: "b", ResponseCode: 201, ResponseBody: []byte(`{"n":2}`), ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("second Create: %v", err)
	}

	got, err := repo.GetByKey(ctx, "k")
	if err != nil || got == nil || got.RequestHash != "a" {
		t.Fatalf("GetByKey = %+v, %v", got, err)
	}
	if err := repo.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create after Delete: %v", err)
	}
	if got, _ := repo.GetByKey(ctx, "k"); got == nil || got.RequestHash != "b" {
		t.Fatalf("GetByKey after Delete = %+v", got)
	}

	if missing, err := repo.GetByKey(ctx, "nope"); missing != nil || err != nil {
		t.Fatalf("missing key = %+v, %v", missing, err)
	}
}
