package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	"github.com/sangkips/galleauto-billing/internal/domain/enum"
	"github.com/sangkips/galleauto-billing/pkg/apperror"
	"github.com/shopspring/decimal"
)

func seedItem(t *testing.T, store *memStore, name string) *entity.Item {
	t.Helper()
	item, err := newCatalog(store).CreateItem(context.Background(), &CreateItemInput{Name: name})
	if err != nil {
		t.Fatalf("CreateItem(%q): %v", name, err)
	}
	return item
}

func TestStockInValidation(t *testing.T) {
	store := newMemStore()
	item := seedItem(t, store, "Oil Filter")
	svc := newStock(store)

	tests := []struct {
		name  string
		input StockInInput
		field string
	}{
		{"zero quantity", StockInInput{ItemID: item.ID, Quantity: 0, BuyPrice: decimal.NewFromInt(1), SellPrice: decimal.NewFromInt(1)}, "quantity"},
		{"negative buy price", StockInInput{ItemID: item.ID, Quantity: 1, BuyPrice: decimal.NewFromInt(-1), SellPrice: decimal.NewFromInt(1)}, "buy_price"},
		{"zero sell price", StockInInput{ItemID: item.ID, Quantity: 1, BuyPrice: decimal.NewFromInt(1), SellPrice: decimal.Zero}, "sell_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.StockIn(context.Background(), &tt.input)
			appErr := apperror.GetAppError(err)
			if !apperror.IsValidation(err) || len(appErr.Errors) != 1 || appErr.Errors[0].Field != tt.field {
				t.Fatalf("StockIn error = %#v, want validation on %s", appErr, tt.field)
			}
			if len(store.batches) != 0 || len(store.movements) != 0 {
				t.Fatalf("invalid stock-in wrote data")
			}
		})
	}
}

func TestStockInUnknownItem(t *testing.T) {
	svc := newStock(newMemStore())
	_, err := svc.StockIn(context.Background(), &StockInInput{
		ItemID:    uuid.New(),
		Quantity:  1,
		BuyPrice:  decimal.NewFromInt(1),
		SellPrice: decimal.NewFromInt(1),
	})
	if !apperror.IsNotFound(err) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestStockInAllowsSellBelowBuy(t *testing.T) {
	store := newMemStore()
	item := seedItem(t, store, "Coolant")
	batch, err := newStock(store).StockIn(context.Background(), &StockInInput{
		ItemID:    item.ID,
		Quantity:  5,
		BuyPrice:  decimal.NewFromInt(900),
		SellPrice: decimal.NewFromInt(850),
		Reference: "  GRN-12 ",
	})
	if err != nil {
		t.Fatalf("StockIn: %v", err)
	}
	if batch.Reference == nil || *batch.Reference != "GRN-12" {
		t.Fatalf("reference = %v, want GRN-12", batch.Reference)
	}
	if m := store.movements[0]; m.Reference == nil || *m.Reference != "GRN-12" || !m.BuyPrice.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("unexpected STOCK_IN entry %+v", m)
	}
}

// Mirrors the full stock flow: stock in, consume part, inspect the ledger and log.
func TestStockLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	item := seedItem(t, store, "Oil Filter")
	svc := newStock(store)

	batch, err := svc.StockIn(ctx, &StockInInput{
		ItemID:    item.ID,
		Quantity:  10,
		BuyPrice:  decimal.NewFromInt(100),
		SellPrice: decimal.NewFromInt(150),
	})
	if err != nil {
		t.Fatalf("StockIn: %v", err)
	}
	if total, _ := svc.TotalQuantity(ctx, item.ID); total != 10 {
		t.Fatalf("TotalQuantity = %d, want 10", total)
	}

	consumed, err := svc.Consume(ctx, &ConsumeInput{BatchID: batch.ID, Quantity: 4})
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if consumed.Quantity != 6 || consumed.InitialQuantity != 10 {
		t.Fatalf("batch after consume = %d/%d, want 6/10", consumed.Quantity, consumed.InitialQuantity)
	}
	if total, _ := svc.TotalQuantity(ctx, item.ID); total != 6 {
		t.Fatalf("TotalQuantity = %d, want 6", total)
	}

	available, err := svc.AvailableBatches(ctx, item.ID)
	if err != nil || len(available) != 1 || available[0].Quantity != 6 {
		t.Fatalf("AvailableBatches = %+v, %v", available, err)
	}

	log, err := svc.History(ctx, HistoryFilter{})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(log) != 2 {
		t.Fatalf("history has %d entries, want 2", len(log))
	}
	if log[0].Type != enum.TransactionTypeStockOut || log[0].Quantity != 4 {
		t.Fatalf("newest entry = %s x%d, want STOCK_OUT x4", log[0].Type, log[0].Quantity)
	}
	if log[1].Type != enum.TransactionTypeStockIn || log[1].Quantity != 10 {
		t.Fatalf("oldest entry = %s x%d, want STOCK_IN x10", log[1].Type, log[1].Quantity)
	}
}

func TestConsumeBeyondRemainingLeavesBatchUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	item := seedItem(t, store, "Brake Pad")
	svc := newStock(store)
	batch, _ := svc.StockIn(ctx, &StockInInput{ItemID: item.ID, Quantity: 3, BuyPrice: decimal.NewFromInt(1), SellPrice: decimal.NewFromInt(2)})

	tests := []struct {
		name   string
		amount int
	}{
		{"more than remaining", 4},
		{"zero", 0},
		{"negative", -2},
	}
	for _, tt := range tests {
		if _, err := svc.Consume(ctx, &ConsumeInput{BatchID: batch.ID, Quantity: tt.amount}); !apperror.IsValidation(err) {
			t.Fatalf("%s: error = %v, want validation", tt.name, err)
		}
	}

	if got := store.batches[batch.ID].Quantity; got != 3 {
		t.Fatalf("quantity = %d, want 3", got)
	}
	if len(store.movements) != 1 {
		t.Fatalf("rejected consume wrote %d movements", len(store.movements)-1)
	}
}

func TestConsumeLosingRaceReportsCurrentStock(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	item := seedItem(t, store, "Brake Pad")
	svc := newStock(store)
	batch, _ := svc.StockIn(ctx, &StockInInput{ItemID: item.ID, Quantity: 5, BuyPrice: decimal.NewFromInt(1), SellPrice: decimal.NewFromInt(2)})

	store.beforeDecrement = func() {
		store.beforeDecrement = nil
		b := store.batches[batch.ID]
		b.Quantity = 2
		store.batches[batch.ID] = b
	}

	_, err := svc.Consume(ctx, &ConsumeInput{BatchID: batch.ID, Quantity: 4})
	if !apperror.IsValidation(err) {
		t.Fatalf("error = %v, want validation", err)
	}
	if got, want := apperror.GetAppError(err).Message, "Insufficient stock. Available: 2"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestConsumeSequenceMatchesTotals(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	item := seedItem(t, store, "Spark Plug")
	svc := newStock(store)

	first, _ := svc.StockIn(ctx, &StockInInput{ItemID: item.ID, Quantity: 8, BuyPrice: decimal.NewFromInt(1), SellPrice: decimal.NewFromInt(2)})
	second, _ := svc.StockIn(ctx, &StockInInput{ItemID: item.ID, Quantity: 5, BuyPrice: decimal.NewFromInt(1), SellPrice: decimal.NewFromInt(2)})

	steps := []struct {
		batch  uuid.UUID
		amount int
	}{
		{first.ID, 3}, {second.ID, 5}, {first.ID, 5},
	}
	consumed := 0
	for _, step := range steps {
		if _, err := svc.Consume(ctx, &ConsumeInput{BatchID: step.batch, Quantity: step.amount}); err != nil {
			t.Fatalf("Consume(%d): %v", step.amount, err)
		}
		consumed += step.amount

		total, _ := svc.TotalQuantity(ctx, item.ID)
		batches, _ := svc.Batches(ctx, item.ID)
		sum := 0
		for _, b := range batches {
			sum += b.Quantity
		}
		if total != 13-consumed || total != sum {
			t.Fatalf("after consuming %d: total %d, batch sum %d", consumed, total, sum)
		}
	}

	if available, _ := svc.AvailableBatches(ctx, item.ID); len(available) != 0 {
		t.Fatalf("depleted batches still available: %+v", available)
	}
	if batch, _ := svc.GetBatch(ctx, first.ID); !batch.IsDepleted() {
		t.Fatalf("batch %s not depleted", first.ID)
	}
}

func TestConsumeRollsBackWhenLogFails(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	item := seedItem(t, store, "Fuse")
	svc := newStock(store)
	batch, _ := svc.StockIn(ctx, &StockInInput{ItemID: item.ID, Quantity: 5, BuyPrice: decimal.NewFromInt(1), SellPrice: decimal.NewFromInt(2)})

	store.failAppend = errors.New("disk full")
	_, err := svc.Consume(ctx, &ConsumeInput{BatchID: batch.ID, Quantity: 2})
	if !apperror.IsInfrastructure(err) {
		t.Fatalf("error = %v, want infrastructure error", err)
	}
	if got := store.batches[batch.ID].Quantity; got != 5 {
		t.Fatalf("quantity = %d after failed consume, want 5", got)
	}

	_, err = svc.StockIn(ctx, &StockInInput{ItemID: item.ID, Quantity: 1, BuyPrice: decimal.NewFromInt(1), SellPrice: decimal.NewFromInt(2)})
	if !apperror.IsInfrastructure(err) || len(store.batches) != 1 {
		t.Fatalf("failed stock-in left %d batches, err %v", len(store.batches), err)
	}
}

func TestHistoryFilters(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	oil := seedItem(t, store, "Oil Filter")
	air := seedItem(t, store, "Air Filter")
	svc := newStock(store)

	oilBatch, _ := svc.StockIn(ctx, &StockInInput{ItemID: oil.ID, Quantity: 4, BuyPrice: decimal.NewFromInt(1), SellPrice: decimal.NewFromInt(2)})
	if _, err := svc.StockIn(ctx, &StockInInput{ItemID: air.ID, Quantity: 2, BuyPrice: decimal.NewFromInt(1), SellPrice: decimal.NewFromInt(2)}); err != nil {
		t.Fatalf("StockIn: %v", err)
	}
	if _, err := svc.Consume(ctx, &ConsumeInput{BatchID: oilBatch.ID, Quantity: 1}); err != nil {
		t.Fatalf("Consume: %v", err)
	}

	stockIn, stockOut := enum.TransactionTypeStockIn, enum.TransactionTypeStockOut
	all, _ := svc.History(ctx, HistoryFilter{})
	start := all[len(all)-1].TransactionDate
	end := all[1].TransactionDate

	tests := []struct {
		name   string
		filter HistoryFilter
		want   int
	}{
		{"all", HistoryFilter{}, 3},
		{"by item", HistoryFilter{ItemID: &oil.ID}, 2},
		{"by type", HistoryFilter{Type: &stockIn}, 2},
		{"by item and type", HistoryFilter{ItemID: &oil.ID, Type: &stockOut}, 1},
		{"by date range", HistoryFilter{Start: &start, End: &end}, 2},
		{"by date range and item", HistoryFilter{ItemID: &air.ID, Start: &start, End: &end}, 1},
	}
	for _, tt := range tests {
		got, err := svc.History(ctx, tt.filter)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if len(got) != tt.want {
			t.Fatalf("%s: got %d entries, want %d", tt.name, len(got), tt.want)
		}
	}

	if _, err := svc.History(ctx, HistoryFilter{Start: &end, End: &start}); !apperror.IsValidation(err) {
		t.Fatalf("reversed range error = %v, want validation", err)
	}
}

func TestExportHistoryXLSX(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	item := seedItem(t, store, "Oil Filter")
	svc := newStock(store)
	if _, err := svc.StockIn(ctx, &StockInInput{ItemID: item.ID, Quantity: 4, BuyPrice: decimal.NewFromInt(1), SellPrice: decimal.NewFromInt(2)}); err != nil {
		t.Fatalf("StockIn: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.ExportHistoryXLSX(ctx, HistoryFilter{}, &buf); err != nil {
		t.Fatalf("ExportHistoryXLSX: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Fatalf("export is not a zip container")
	}
}
