package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bodega/backend/internal/domain"
	"bodega/backend/internal/store"
	"bodega/backend/internal/store/memory"
)

func newTestService() *Service {
	return New(memory.New(), nil, 0)
}

func seedEmployee(t *testing.T, svc *Service) *domain.Employee {
	t.Helper()
	employee, err := svc.CreateEmployee(context.Background(), domain.Employee{
		Firstname: "Maria",
		Lastname:  "Santos",
		Position:  "Manager",
	})
	if err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	return employee
}

func seedAccount(t *testing.T, svc *Service, employeeID int64, username string) *domain.Account {
	t.Helper()
	account, err := svc.CreateAccount(context.Background(), domain.AccountCreateRequest{
		EmployeeID: employeeID,
		Username:   username,
		Password:   "secret123",
	})
	if err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	return account
}

func seedSupplier(t *testing.T, svc *Service, name string) *domain.Supplier {
	t.Helper()
	supplier, err := svc.CreateSupplier(context.Background(), domain.Supplier{
		CompanyName: name,
		Address:     "12 Harbor Road",
	})
	if err != nil {
		t.Fatalf("create supplier failed: %v", err)
	}
	return supplier
}

func seedItem(t *testing.T, svc *Service) *domain.Item {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), domain.Item{
		Description:      "Frozen bangus, whole",
		ShortDescription: "Bangus",
		Category:         "seafood",
		Unit:             "kg",
	})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	return item
}

func seedDelivery(t *testing.T, svc *Service, supplierID, accountID int64) *domain.Delivery {
	t.Helper()
	delivery, err := svc.CreateDelivery(context.Background(), domain.Delivery{
		SupplierID:     supplierID,
		DRNumber:       "DR-1001",
		Date:           "2026-08-15",
		DeliveryBox:    10,
		DeliveryWeight: 250,
		AccountID:      accountID,
	})
	if err != nil {
		t.Fatalf("create delivery failed: %v", err)
	}
	return delivery
}

func seedDeliveryDetail(t *testing.T, svc *Service, deliveryID, itemID int64) *domain.DeliveryDetail {
	t.Helper()
	detail, err := svc.CreateDeliveryDetail(context.Background(), domain.DeliveryDetail{
		DeliveryID:     deliveryID,
		ItemID:         itemID,
		DeliveryBox:    10,
		DeliveryWeight: 250,
		ActualBox:      10,
		ActualWeight:   248.5,
		Capital:        12500,
	})
	if err != nil {
		t.Fatalf("create delivery detail failed: %v", err)
	}
	return detail
}

func seedStock(t *testing.T, svc *Service, deliveryDetailID, accountID int64) *domain.Stock {
	t.Helper()
	stock, err := svc.CreateStock(context.Background(), domain.Stock{
		DeliveryDetailID:   deliveryDetailID,
		ActiveMarkup:       15,
		ActiveSellingPrice: 180,
		AccountID:          accountID,
	})
	if err != nil {
		t.Fatalf("create stock failed: %v", err)
	}
	return stock
}

// seedStockChain builds supplier -> delivery -> detail -> stock plus the
// account the chain hangs off, and returns the stock and account.
func seedStockChain(t *testing.T, svc *Service) (*domain.Stock, *domain.Account) {
	t.Helper()
	employee := seedEmployee(t, svc)
	account := seedAccount(t, svc, employee.EmployeeID, "maria")
	supplier := seedSupplier(t, svc, "Coastal Traders")
	item := seedItem(t, svc)
	delivery := seedDelivery(t, svc, supplier.SupplierID, account.AccountID)
	detail := seedDeliveryDetail(t, svc, delivery.DeliveryID, item.ItemID)
	return seedStock(t, svc, detail.DeliveryDetailID, account.AccountID), account
}

func TestCreateEmployeeRequiresNames(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateEmployee(context.Background(), domain.Employee{Firstname: "  ", Lastname: "Santos"})
	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field != "firstname" {
		t.Fatalf("expected firstname violation, got %s", verr.Field)
	}
}

func TestUsernameUniquenessLeavesOneRow(t *testing.T) {
	svc := newTestService()
	first := seedEmployee(t, svc)
	second, err := svc.CreateEmployee(context.Background(), domain.Employee{Firstname: "Jose", Lastname: "Cruz"})
	if err != nil {
		t.Fatalf("create employee failed: %v", err)
	}

	seedAccount(t, svc, first.EmployeeID, "maria")

	_, err = svc.CreateAccount(context.Background(), domain.AccountCreateRequest{
		EmployeeID: second.EmployeeID,
		Username:   "maria",
		Password:   "secret123",
	})
	var uerr *store.UniqueViolationError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	_, total, err := svc.ListAccounts(context.Background(), store.AccountFilter{}, store.Page{})
	if err != nil {
		t.Fatalf("list accounts failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected exactly one account row, got %d", total)
	}
}

func TestAccountPasswordIsHashed(t *testing.T) {
	svc := newTestService()
	employee := seedEmployee(t, svc)
	account := seedAccount(t, svc, employee.EmployeeID, "maria")

	if account.Password == "secret123" {
		t.Fatalf("password stored in plaintext")
	}

	authed, err := svc.Authenticate(context.Background(), domain.LoginRequest{Username: "maria", Password: "secret123"})
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if authed.AccountID != account.AccountID {
		t.Fatalf("expected account %d, got %d", account.AccountID, authed.AccountID)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc := newTestService()
	employee := seedEmployee(t, svc)
	seedAccount(t, svc, employee.EmployeeID, "maria")

	_, unknownErr := svc.Authenticate(context.Background(), domain.LoginRequest{Username: "ghost", Password: "secret123"})
	_, wrongErr := svc.Authenticate(context.Background(), domain.LoginRequest{Username: "maria", Password: "wrongpass"})

	if !errors.Is(unknownErr, store.ErrUnauthorized) {
		t.Fatalf("unknown user: expected unauthorized, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, store.ErrUnauthorized) {
		t.Fatalf("wrong password: expected unauthorized, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("login failures must be indistinguishable: %q vs %q", unknownErr, wrongErr)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	svc := newTestService()
	employee := seedEmployee(t, svc)
	account := seedAccount(t, svc, employee.EmployeeID, "maria")

	inactive := false
	if _, err := svc.UpdateAccount(context.Background(), account.AccountID, domain.AccountUpdateRequest{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate account failed: %v", err)
	}

	_, err := svc.Authenticate(context.Background(), domain.LoginRequest{Username: "maria", Password: "secret123"})
	if !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected inactive account error, got %v", err)
	}
}

func TestCreateDeliveryUnknownSupplierPersistsNothing(t *testing.T) {
	svc := newTestService()
	employee := seedEmployee(t, svc)
	account := seedAccount(t, svc, employee.EmployeeID, "maria")

	_, err := svc.CreateDelivery(context.Background(), domain.Delivery{
		SupplierID: 999,
		DRNumber:   "DR-404",
		Date:       "2026-08-15",
		AccountID:  account.AccountID,
	})
	var rerr *store.ReferenceError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected reference error, got %v", err)
	}
	if rerr.Kind != domain.KindSupplier {
		t.Fatalf("expected supplier reference failure, got %s", rerr.Kind)
	}

	_, total, err := svc.ListDeliveries(context.Background(), store.DeliveryFilter{}, store.Page{})
	if err != nil {
		t.Fatalf("list deliveries failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected no delivery rows after failed create, got %d", total)
	}
}

func TestDeleteEmployeeGuardedByAccount(t *testing.T) {
	svc := newTestService()
	employee := seedEmployee(t, svc)
	account := seedAccount(t, svc, employee.EmployeeID, "maria")

	err := svc.DeleteEmployee(context.Background(), employee.EmployeeID)
	var cerr *store.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if cerr.Dependent != domain.KindAccount {
		t.Fatalf("expected account dependency, got %s", cerr.Dependent)
	}

	if err := svc.DeleteAccount(context.Background(), account.AccountID); err != nil {
		t.Fatalf("delete account failed: %v", err)
	}
	if err := svc.DeleteEmployee(context.Background(), employee.EmployeeID); err != nil {
		t.Fatalf("delete employee after removing account failed: %v", err)
	}
	if _, err := svc.GetEmployee(context.Background(), employee.EmployeeID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestDeleteSupplierGuardedByDelivery(t *testing.T) {
	svc := newTestService()
	employee := seedEmployee(t, svc)
	account := seedAccount(t, svc, employee.EmployeeID, "maria")
	supplier := seedSupplier(t, svc, "Coastal Traders")
	seedDelivery(t, svc, supplier.SupplierID, account.AccountID)

	err := svc.DeleteSupplier(context.Background(), supplier.SupplierID)
	var cerr *store.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if cerr.Dependent != domain.KindDelivery {
		t.Fatalf("expected delivery dependency, got %s", cerr.Dependent)
	}
}

func TestUpdateSupplierNoChanges(t *testing.T) {
	svc := newTestService()
	supplier := seedSupplier(t, svc, "Coastal Traders")

	same := supplier.CompanyName
	row, err := svc.UpdateSupplier(context.Background(), supplier.SupplierID, domain.SupplierUpdateRequest{CompanyName: &same})
	if !errors.Is(err, store.ErrNoChanges) {
		t.Fatalf("expected no-changes sentinel, got %v", err)
	}
	if row == nil || row.SupplierID != supplier.SupplierID {
		t.Fatalf("expected existing row alongside no-changes sentinel")
	}
}

func TestUpdateStockPriceAppendsExactlyOneLog(t *testing.T) {
	svc := newTestService()
	stock, account := seedStockChain(t, svc)

	markup := 20.0
	price := 195.0
	updated, err := svc.UpdateStockPrice(context.Background(), stock.StockID, domain.StockUpdateRequest{
		ActiveMarkup:       &markup,
		ActiveSellingPrice: &price,
	})
	if err != nil {
		t.Fatalf("update stock price failed: %v", err)
	}
	if updated.ActiveSellingPrice != 195 {
		t.Fatalf("expected selling price 195, got %v", updated.ActiveSellingPrice)
	}

	history, err := svc.ListPriceHistory(context.Background(), stock.StockID, 0)
	if err != nil {
		t.Fatalf("list price history failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected exactly one price log, got %d", len(history))
	}
	if history[0].ActiveMarkUp != 20 || history[0].ActiveSellingPrice != 195 {
		t.Fatalf("price log does not match the change: %+v", history[0])
	}
	if history[0].AccountID != account.AccountID {
		t.Fatalf("expected log attributed to account %d, got %d", account.AccountID, history[0].AccountID)
	}

	// Re-applying the same values is a no-op and must not append a second log.
	_, err = svc.UpdateStockPrice(context.Background(), stock.StockID, domain.StockUpdateRequest{
		ActiveMarkup:       &markup,
		ActiveSellingPrice: &price,
	})
	if !errors.Is(err, store.ErrNoChanges) {
		t.Fatalf("expected no-changes sentinel, got %v", err)
	}
	history, err = svc.ListPriceHistory(context.Background(), stock.StockID, 0)
	if err != nil {
		t.Fatalf("list price history failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected price log count to stay at one, got %d", len(history))
	}
}

func TestBulkUpdateStockPricesMixedBatch(t *testing.T) {
	svc := newTestService()
	stock, account := seedStockChain(t, svc)

	item := seedItem(t, svc)
	supplier := seedSupplier(t, svc, "Second Source")
	delivery := seedDelivery(t, svc, supplier.SupplierID, account.AccountID)
	detail := seedDeliveryDetail(t, svc, delivery.DeliveryID, item.ItemID)
	other := seedStock(t, svc, detail.DeliveryDetailID, account.AccountID)

	resp, err := svc.BulkUpdateStockPrices(context.Background(), domain.BulkPriceUpdateRequest{
		AccountID: account.AccountID,
		Updates: []domain.PriceUpdate{
			{StockID: stock.StockID, ActiveMarkUp: 25, ActiveSellingPrice: 210},
			{StockID: 9999, ActiveMarkUp: 10, ActiveSellingPrice: 100},
			{StockID: other.StockID, ActiveMarkUp: 18, ActiveSellingPrice: 190},
		},
	})
	if err != nil {
		t.Fatalf("bulk update failed: %v", err)
	}
	if resp.UpdatedCount != 2 {
		t.Fatalf("expected 2 updated, got %d", resp.UpdatedCount)
	}
	if len(resp.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(resp.Failures))
	}
	if resp.Failures[0].StockID != 9999 || resp.Failures[0].Reason != "stock not found" {
		t.Fatalf("unexpected failure entry: %+v", resp.Failures[0])
	}

	refreshed, err := svc.GetStock(context.Background(), other.StockID)
	if err != nil {
		t.Fatalf("get stock failed: %v", err)
	}
	if refreshed.ActiveSellingPrice != 190 {
		t.Fatalf("expected persisted price 190, got %v", refreshed.ActiveSellingPrice)
	}
}

func TestListSuppliersPagination(t *testing.T) {
	svc := newTestService()
	for i := 0; i < 25; i++ {
		seedSupplier(t, svc, fmt.Sprintf("Supplier %02d", i))
	}

	page := store.Page{Number: 3, Limit: 10}
	rows, total, err := svc.ListSuppliers(context.Background(), store.SupplierFilter{}, page)
	if err != nil {
		t.Fatalf("list suppliers failed: %v", err)
	}
	if total != 25 {
		t.Fatalf("expected total 25, got %d", total)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows on the final page, got %d", len(rows))
	}
	if got := page.Normalize().TotalPages(total); got != 3 {
		t.Fatalf("expected 3 pages, got %d", got)
	}
}

func TestDeletedSupplierIsGone(t *testing.T) {
	svc := newTestService()
	supplier := seedSupplier(t, svc, "Coastal Traders")

	if err := svc.DeleteSupplier(context.Background(), supplier.SupplierID); err != nil {
		t.Fatalf("delete supplier failed: %v", err)
	}
	if _, err := svc.GetSupplier(context.Background(), supplier.SupplierID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.DeleteSupplier(context.Background(), supplier.SupplierID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestDeliveryFinalizationIsOneWay(t *testing.T) {
	svc := newTestService()
	employee := seedEmployee(t, svc)
	account := seedAccount(t, svc, employee.EmployeeID, "maria")
	supplier := seedSupplier(t, svc, "Coastal Traders")
	delivery := seedDelivery(t, svc, supplier.SupplierID, account.AccountID)

	finalized := domain.DeliveryStatusFinalized
	if _, err := svc.UpdateDelivery(context.Background(), delivery.DeliveryID, domain.DeliveryUpdateRequest{Status: &finalized}); err != nil {
		t.Fatalf("finalize delivery failed: %v", err)
	}

	draft := domain.DeliveryStatusDraft
	_, err := svc.UpdateDelivery(context.Background(), delivery.DeliveryID, domain.DeliveryUpdateRequest{Status: &draft})
	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error reverting to draft, got %v", err)
	}
}

func TestTransactionStats(t *testing.T) {
	svc := newTestService()
	employee := seedEmployee(t, svc)
	account := seedAccount(t, svc, employee.EmployeeID, "maria")

	amounts := []struct {
		due    float64
		status string
	}{
		{1000, domain.TransactionStatusActive},
		{2000, domain.TransactionStatusActive},
		{500, domain.TransactionStatusVoid},
	}
	for i, a := range amounts {
		merchant, err := svc.CreateMerchant(context.Background(), domain.Merchant{
			BusinessName: fmt.Sprintf("Eatery %d", i),
			Nature:       "restaurant",
		})
		if err != nil {
			t.Fatalf("create merchant failed: %v", err)
		}
		_, err = svc.CreateTransaction(context.Background(), domain.Transaction{
			MerchantID: merchant.MerchantID,
			AmountDue:  a.due,
			Status:     a.status,
			AccountID:  account.AccountID,
		})
		if err != nil {
			t.Fatalf("create transaction failed: %v", err)
		}
	}

	stats, err := svc.GetTransactionStats(context.Background(), store.TransactionFilter{})
	if err != nil {
		t.Fatalf("transaction stats failed: %v", err)
	}
	if stats.TotalTransactions != 3 {
		t.Fatalf("expected 3 transactions, got %d", stats.TotalTransactions)
	}
	if stats.TotalAmountDue != 3500 {
		t.Fatalf("expected total amount due 3500, got %v", stats.TotalAmountDue)
	}
	if stats.CountByStatus[domain.TransactionStatusActive] != 2 {
		t.Fatalf("expected 2 active transactions, got %d", stats.CountByStatus[domain.TransactionStatusActive])
	}
	if stats.CountByStatus[domain.TransactionStatusVoid] != 1 {
		t.Fatalf("expected 1 void transaction, got %d", stats.CountByStatus[domain.TransactionStatusVoid])
	}
}

func TestSysSettingByAttribute(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreateSysSetting(context.Background(), domain.SysSetting{
		Attribute: "receipt_footer",
		Value:     "Thank you!",
	})
	if err != nil {
		t.Fatalf("create setting failed: %v", err)
	}

	found, err := svc.GetSysSettingByAttribute(context.Background(), "receipt_footer")
	if err != nil {
		t.Fatalf("get by attribute failed: %v", err)
	}
	if found.SysSettingID != created.SysSettingID {
		t.Fatalf("expected setting %d, got %d", created.SysSettingID, found.SysSettingID)
	}

	value := "See you again!"
	if _, err := svc.UpdateSysSetting(context.Background(), created.SysSettingID, domain.SysSettingUpdateRequest{Value: &value}); err != nil {
		t.Fatalf("update setting failed: %v", err)
	}

	found, err = svc.GetSysSettingByAttribute(context.Background(), "receipt_footer")
	if err != nil {
		t.Fatalf("get by attribute after update failed: %v", err)
	}
	if found.Value != "See you again!" {
		t.Fatalf("expected updated value, got %q", found.Value)
	}
}

func TestAuditLogsFollowActor(t *testing.T) {
	svc := newTestService()
	employee := seedEmployee(t, svc)
	account := seedAccount(t, svc, employee.EmployeeID, "maria")

	// Without an actor nothing is written.
	_, before, err := svc.ListLogs(context.Background(), store.LogFilter{}, store.Page{})
	if err != nil {
		t.Fatalf("list logs failed: %v", err)
	}
	if before != 0 {
		t.Fatalf("expected no audit rows without an actor, got %d", before)
	}

	ctx := WithActor(context.Background(), domain.Actor{AccountID: account.AccountID, Username: account.Username})
	if _, err := svc.CreateSupplier(ctx, domain.Supplier{CompanyName: "Audited Goods"}); err != nil {
		t.Fatalf("create supplier failed: %v", err)
	}

	rows, total, err := svc.ListLogs(context.Background(), store.LogFilter{Module: "suppliers"}, store.Page{})
	if err != nil {
		t.Fatalf("list logs failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected one audit row, got %d", total)
	}
	if rows[0].Event != "create" || rows[0].AccountID != account.AccountID {
		t.Fatalf("unexpected audit row: %+v", rows[0])
	}
}

func TestDeleteStockGuardedByOrder(t *testing.T) {
	svc := newTestService()
	stock, account := seedStockChain(t, svc)

	merchant, err := svc.CreateMerchant(context.Background(), domain.Merchant{BusinessName: "Riverside Eatery"})
	if err != nil {
		t.Fatalf("create merchant failed: %v", err)
	}
	tx, err := svc.CreateTransaction(context.Background(), domain.Transaction{
		MerchantID: merchant.MerchantID,
		AmountDue:  360,
		Status:     domain.TransactionStatusActive,
		AccountID:  account.AccountID,
	})
	if err != nil {
		t.Fatalf("create transaction failed: %v", err)
	}
	if _, err := svc.CreateOrder(context.Background(), domain.Order{
		TransactionID: tx.TransactionID,
		StockID:       stock.StockID,
		Quantity:      2,
		UnitCost:      180,
		Amount:        360,
	}); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	err = svc.DeleteStock(context.Background(), stock.StockID)
	var cerr *store.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if cerr.Dependent != domain.KindOrder {
		t.Fatalf("expected order dependency, got %s", cerr.Dependent)
	}
}
