package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bodega/backend/internal/domain"
	"bodega/backend/internal/service"
	"bodega/backend/internal/store/memory"
)

// newTestAPI builds a full API over an in-memory store with a real Service
// and AuthManager so handler tests exercise the complete request path. The
// service handle is returned for fixture seeding.
func newTestAPI(t *testing.T) (*API, *service.Service) {
	t.Helper()
	svc := service.New(memory.New(), nil, 0)
	auth := NewAuthManager("test-secret-key", time.Hour)
	return New(svc, auth, "*"), svc
}

// seedLogin creates an employee plus account and returns a bearer token.
func seedLogin(t *testing.T, api *API, svc *service.Service) (string, *domain.Account) {
	t.Helper()
	ctx := context.Background()
	employee, err := svc.CreateEmployee(ctx, domain.Employee{Firstname: "Maria", Lastname: "Santos"})
	if err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	account, err := svc.CreateAccount(ctx, domain.AccountCreateRequest{
		EmployeeID: employee.EmployeeID,
		Username:   "maria",
		Password:   "secret123",
	})
	if err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	token, _, err := api.auth.Sign(account)
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return token, account
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestHandleHealth(t *testing.T) {
	api, _ := newTestAPI(t)
	handler := api.Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["ok"] != true {
		t.Fatalf("expected ok:true, got %v", body["ok"])
	}
}

func TestHandleLoginSuccess(t *testing.T) {
	api, svc := newTestAPI(t)
	seedLogin(t, api, svc)
	handler := api.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/accounts/login", "", map[string]string{
		"username": "maria",
		"password": "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["access_token"] == nil || body["access_token"] == "" {
		t.Fatalf("expected access_token, got %v", body)
	}
	account, ok := body["account"].(map[string]any)
	if !ok {
		t.Fatalf("expected account object, got %v", body["account"])
	}
	if _, leaked := account["password"]; leaked {
		t.Fatalf("password must never be serialized")
	}
}

func TestHandleLoginInvalidCredentials(t *testing.T) {
	api, svc := newTestAPI(t)
	seedLogin(t, api, svc)
	handler := api.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/accounts/login", "", map[string]string{
		"username": "maria",
		"password": "wrongpass",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestCollectionsRequireAuth(t *testing.T) {
	api, _ := newTestAPI(t)
	handler := api.Handler()

	for _, path := range []string{"/api/v1/suppliers", "/api/v1/stocks/1", "/api/v1/logs"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestSupplierLifecycle(t *testing.T) {
	api, svc := newTestAPI(t)
	token, _ := seedLogin(t, api, svc)
	handler := api.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/suppliers", token, map[string]any{
		"company_name": "Coastal Traders",
		"address":      "12 Harbor Road",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	created := decodeBody(t, rec)["supplier"].(map[string]any)
	id := int64(created["supplier_id"].(float64))

	rec = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/v1/suppliers/%d", id), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPut, fmt.Sprintf("/api/v1/suppliers/%d", id), token, map[string]any{
		"address": "48 Market Street",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	// Same payload again is a no-op and is reported as such.
	rec = doJSON(t, handler, http.MethodPut, fmt.Sprintf("/api/v1/suppliers/%d", id), token, map[string]any{
		"address": "48 Market Street",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on no-op update, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["no_changes"] != true {
		t.Fatalf("expected no_changes marker, got %v", body)
	}

	rec = doJSON(t, handler, http.MethodDelete, fmt.Sprintf("/api/v1/suppliers/%d", id), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/v1/suppliers/%d", id), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestSupplierListPaginationEnvelope(t *testing.T) {
	api, svc := newTestAPI(t)
	token, _ := seedLogin(t, api, svc)
	handler := api.Handler()

	ctx := context.Background()
	for i := 0; i < 25; i++ {
		if _, err := svc.CreateSupplier(ctx, domain.Supplier{CompanyName: fmt.Sprintf("Supplier %02d", i)}); err != nil {
			t.Fatalf("seed supplier failed: %v", err)
		}
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/suppliers?page=3&limit=10", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["total"].(float64) != 25 {
		t.Fatalf("expected total 25, got %v", body["total"])
	}
	if body["total_pages"].(float64) != 3 {
		t.Fatalf("expected 3 pages, got %v", body["total_pages"])
	}
	rows := body["suppliers"].([]any)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows on page 3, got %d", len(rows))
	}
}

func TestDeleteGuardReturnsBadRequest(t *testing.T) {
	api, svc := newTestAPI(t)
	token, account := seedLogin(t, api, svc)
	handler := api.Handler()

	rec := doJSON(t, handler, http.MethodDelete, fmt.Sprintf("/api/v1/employees/%d", account.EmployeeID), token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for guarded delete, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestUnknownReferenceReturnsBadRequest(t *testing.T) {
	api, svc := newTestAPI(t)
	token, account := seedLogin(t, api, svc)
	handler := api.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/deliveries", token, map[string]any{
		"supplier_id": 999,
		"dr_number":   "DR-404",
		"date":        "2026-08-15",
		"account_id":  account.AccountID,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for dangling supplier_id, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

// seedStock walks the procurement chain far enough to produce a priced stock.
func seedStock(t *testing.T, svc *service.Service, accountID int64) *domain.Stock {
	t.Helper()
	ctx := context.Background()
	supplier, err := svc.CreateSupplier(ctx, domain.Supplier{CompanyName: "Coastal Traders"})
	if err != nil {
		t.Fatalf("create supplier failed: %v", err)
	}
	item, err := svc.CreateItem(ctx, domain.Item{Description: "Frozen bangus, whole", Unit: "kg"})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	delivery, err := svc.CreateDelivery(ctx, domain.Delivery{
		SupplierID: supplier.SupplierID,
		DRNumber:   "DR-1001",
		Date:       "2026-08-15",
		AccountID:  accountID,
	})
	if err != nil {
		t.Fatalf("create delivery failed: %v", err)
	}
	detail, err := svc.CreateDeliveryDetail(ctx, domain.DeliveryDetail{
		DeliveryID: delivery.DeliveryID,
		ItemID:     item.ItemID,
		ActualBox:  10,
		Capital:    12500,
	})
	if err != nil {
		t.Fatalf("create delivery detail failed: %v", err)
	}
	stock, err := svc.CreateStock(ctx, domain.Stock{
		DeliveryDetailID:   detail.DeliveryDetailID,
		ActiveMarkup:       15,
		ActiveSellingPrice: 180,
		AccountID:          accountID,
	})
	if err != nil {
		t.Fatalf("create stock failed: %v", err)
	}
	return stock
}

func TestStockPriceUpdateWritesHistory(t *testing.T) {
	api, svc := newTestAPI(t)
	token, account := seedLogin(t, api, svc)
	handler := api.Handler()
	stock := seedStock(t, svc, account.AccountID)

	rec := doJSON(t, handler, http.MethodPut, fmt.Sprintf("/api/v1/stocks/%d", stock.StockID), token, map[string]any{
		"active_markup":        20,
		"active_selling_price": 195,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	updated := decodeBody(t, rec)["stock"].(map[string]any)
	if updated["active_selling_price"].(float64) != 195 {
		t.Fatalf("expected selling price 195, got %v", updated["active_selling_price"])
	}

	rec = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/v1/prices/history/%d", stock.StockID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	history := decodeBody(t, rec)["history"].([]any)
	if len(history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(history))
	}
}

func TestBulkPriceUpdateRoute(t *testing.T) {
	api, svc := newTestAPI(t)
	token, account := seedLogin(t, api, svc)
	handler := api.Handler()
	stock := seedStock(t, svc, account.AccountID)

	rec := doJSON(t, handler, http.MethodPut, "/api/v1/prices/bulk-update", token, map[string]any{
		"updates": []map[string]any{
			{"stock_id": stock.StockID, "active_mark_up": 25, "active_selling_price": 210},
			{"stock_id": 9999, "active_mark_up": 10, "active_selling_price": 100},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["updated_count"].(float64) != 1 {
		t.Fatalf("expected updated_count 1, got %v", body["updated_count"])
	}
	failures := body["failures"].([]any)
	if len(failures) != 1 {
		t.Fatalf("expected one failure, got %d", len(failures))
	}
}

func TestSettingAttributeRoutes(t *testing.T) {
	api, svc := newTestAPI(t)
	token, _ := seedLogin(t, api, svc)
	handler := api.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/settings", token, map[string]any{
		"attribute": "receipt_footer",
		"value":     "Thank you!",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/settings/attribute/receipt_footer", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	setting := decodeBody(t, rec)["setting"].(map[string]any)
	if setting["value"] != "Thank you!" {
		t.Fatalf("unexpected setting value: %v", setting["value"])
	}

	rec = doJSON(t, handler, http.MethodPut, "/api/v1/settings/attribute/receipt_footer", token, map[string]any{
		"value": "See you again!",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/settings/attribute/receipt_footer", token, nil)
	setting = decodeBody(t, rec)["setting"].(map[string]any)
	if setting["value"] != "See you again!" {
		t.Fatalf("expected updated value, got %v", setting["value"])
	}
}

func TestRejectsUnknownJSONFields(t *testing.T) {
	api, svc := newTestAPI(t)
	token, _ := seedLogin(t, api, svc)
	handler := api.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/suppliers", token, map[string]any{
		"company_name": "Coastal Traders",
		"bogus_field":  true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestEmployeesWithoutAccountsRoute(t *testing.T) {
	api, svc := newTestAPI(t)
	token, _ := seedLogin(t, api, svc)
	handler := api.Handler()

	if _, err := svc.CreateEmployee(context.Background(), domain.Employee{Firstname: "Jose", Lastname: "Cruz"}); err != nil {
		t.Fatalf("create employee failed: %v", err)
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/employees/without-accounts/list", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	employees := decodeBody(t, rec)["employees"].([]any)
	if len(employees) != 1 {
		t.Fatalf("expected one employee without account, got %d", len(employees))
	}
}
