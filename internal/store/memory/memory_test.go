package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bodega/backend/internal/domain"
	"bodega/backend/internal/store"
)

func TestAccountUniqueColumns(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateAccount(ctx, domain.Account{EmployeeID: 1, Username: "maria", Password: "x"}); err != nil {
		t.Fatalf("create account failed: %v", err)
	}

	_, err := s.CreateAccount(ctx, domain.Account{EmployeeID: 2, Username: "maria", Password: "x"})
	var uerr *store.UniqueViolationError
	if !errors.As(err, &uerr) || uerr.Fields[0] != "username" {
		t.Fatalf("expected username violation, got %v", err)
	}

	_, err = s.CreateAccount(ctx, domain.Account{EmployeeID: 1, Username: "jose", Password: "x"})
	if !errors.As(err, &uerr) || uerr.Fields[0] != "employee_id" {
		t.Fatalf("expected employee_id violation, got %v", err)
	}
}

func TestUpdateStockPriceWritesBothRows(t *testing.T) {
	s := New()
	ctx := context.Background()

	stock, err := s.CreateStock(ctx, domain.Stock{DeliveryDetailID: 1, ActiveMarkup: 10, ActiveSellingPrice: 100, AccountID: 1})
	if err != nil {
		t.Fatalf("create stock failed: %v", err)
	}

	updated, entry, err := s.UpdateStockPrice(ctx, stock.StockID, 15, 120, 1)
	if err != nil {
		t.Fatalf("update stock price failed: %v", err)
	}
	if updated.ActiveMarkup != 15 || updated.ActiveSellingPrice != 120 {
		t.Fatalf("stock row not updated: %+v", updated)
	}
	if entry.StockID != stock.StockID || entry.ActiveMarkUp != 15 || entry.ActiveSellingPrice != 120 {
		t.Fatalf("price log does not match the change: %+v", entry)
	}

	logs, err := s.ListPriceLogsByStock(ctx, stock.StockID, 0)
	if err != nil {
		t.Fatalf("list price logs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected one price log, got %d", len(logs))
	}

	if _, _, err := s.UpdateStockPrice(ctx, 9999, 15, 120, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found for unknown stock, got %v", err)
	}
	logs, _ = s.ListPriceLogsByStock(ctx, stock.StockID, 0)
	if len(logs) != 1 {
		t.Fatalf("failed update must not append a log, got %d", len(logs))
	}
}

func TestCountReferences(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		if _, err := s.CreateDelivery(ctx, domain.Delivery{SupplierID: 5, AccountID: i, DRNumber: "DR", Date: "2026-08-15"}); err != nil {
			t.Fatalf("create delivery failed: %v", err)
		}
	}

	count, err := s.CountReferences(ctx, domain.KindDelivery, "supplier_id", 5)
	if err != nil {
		t.Fatalf("count references failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 references, got %d", count)
	}

	count, err = s.CountReferences(ctx, domain.KindDelivery, "supplier_id", 6)
	if err != nil {
		t.Fatalf("count references failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no references, got %d", count)
	}
}

func TestListSuppliersPageWindowIsOrdered(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if _, err := s.CreateSupplier(ctx, domain.Supplier{CompanyName: fmt.Sprintf("Supplier %02d", i)}); err != nil {
			t.Fatalf("create supplier failed: %v", err)
		}
	}

	rows, total, err := s.ListSuppliers(ctx, store.SupplierFilter{}, store.Page{Number: 2, Limit: 5})
	if err != nil {
		t.Fatalf("list suppliers failed: %v", err)
	}
	if total != 12 {
		t.Fatalf("expected total 12, got %d", total)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if want := int64(6 + i); row.SupplierID != want {
			t.Fatalf("expected id %d at offset %d, got %d", want, i, row.SupplierID)
		}
	}
}

func TestListMerchantNaturesDistinctSorted(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, nature := range []string{"restaurant", "grocery", "restaurant", ""} {
		if _, err := s.CreateMerchant(ctx, domain.Merchant{BusinessName: "B-" + nature, Nature: nature}); err != nil {
			t.Fatalf("create merchant failed: %v", err)
		}
	}

	natures, err := s.ListMerchantNatures(ctx)
	if err != nil {
		t.Fatalf("list natures failed: %v", err)
	}
	if len(natures) != 2 || natures[0] != "grocery" || natures[1] != "restaurant" {
		t.Fatalf("expected sorted distinct natures, got %v", natures)
	}
}
