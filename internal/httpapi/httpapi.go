// Package httpapi is the REST surface. Handlers parse and decode, call the
// service, and translate the error taxonomy to status codes; no business
// rules live here.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bodega/backend/internal/domain"
	"bodega/backend/internal/service"
	"bodega/backend/internal/store"
)

type API struct {
	service       *service.Service
	auth          *AuthManager
	allowedOrigin string
	metrics       *apiMetrics
}

func New(svc *service.Service, auth *AuthManager, allowedOrigin string) *API {
	return &API{
		service:       svc,
		auth:          auth,
		allowedOrigin: allowedOrigin,
		metrics:       newAPIMetrics(),
	}
}

func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", a.handleHealth)
	mux.Handle("/metrics", a.metrics.handler())
	mux.HandleFunc("/api/v1/accounts/login", a.handleLogin)

	mux.HandleFunc("/api/v1/employees", a.requireAuth(a.handleEmployees))
	mux.HandleFunc("/api/v1/employees/", a.requireAuth(a.handleEmployeeActions))
	mux.HandleFunc("/api/v1/accounts", a.requireAuth(a.handleAccounts))
	mux.HandleFunc("/api/v1/accounts/", a.requireAuth(a.handleAccountActions))
	mux.HandleFunc("/api/v1/suppliers", a.requireAuth(a.handleSuppliers))
	mux.HandleFunc("/api/v1/suppliers/", a.requireAuth(a.handleSupplierActions))
	mux.HandleFunc("/api/v1/merchants", a.requireAuth(a.handleMerchants))
	mux.HandleFunc("/api/v1/merchants/", a.requireAuth(a.handleMerchantActions))
	mux.HandleFunc("/api/v1/items", a.requireAuth(a.handleItems))
	mux.HandleFunc("/api/v1/items/", a.requireAuth(a.handleItemActions))
	mux.HandleFunc("/api/v1/deliveries", a.requireAuth(a.handleDeliveries))
	mux.HandleFunc("/api/v1/deliveries/", a.requireAuth(a.handleDeliveryActions))
	mux.HandleFunc("/api/v1/delivery-details", a.requireAuth(a.handleDeliveryDetails))
	mux.HandleFunc("/api/v1/delivery-details/", a.requireAuth(a.handleDeliveryDetailActions))
	mux.HandleFunc("/api/v1/delivery-item-details", a.requireAuth(a.handleDeliveryItemDetails))
	mux.HandleFunc("/api/v1/delivery-item-details/", a.requireAuth(a.handleDeliveryItemDetailActions))
	mux.HandleFunc("/api/v1/stocks", a.requireAuth(a.handleStocks))
	mux.HandleFunc("/api/v1/stocks/", a.requireAuth(a.handleStockActions))
	mux.HandleFunc("/api/v1/stock-on-hand", a.requireAuth(a.handleStockOnHand))
	mux.HandleFunc("/api/v1/stock-on-hand/", a.requireAuth(a.handleStockOnHandActions))
	mux.HandleFunc("/api/v1/prices", a.requireAuth(a.handlePriceLogs))
	mux.HandleFunc("/api/v1/prices/", a.requireAuth(a.handlePriceActions))
	mux.HandleFunc("/api/v1/transactions", a.requireAuth(a.handleTransactions))
	mux.HandleFunc("/api/v1/transactions/", a.requireAuth(a.handleTransactionActions))
	mux.HandleFunc("/api/v1/orders", a.requireAuth(a.handleOrders))
	mux.HandleFunc("/api/v1/orders/", a.requireAuth(a.handleOrderActions))
	mux.HandleFunc("/api/v1/payments", a.requireAuth(a.handlePayments))
	mux.HandleFunc("/api/v1/payments/", a.requireAuth(a.handlePaymentActions))
	mux.HandleFunc("/api/v1/payment-methods", a.requireAuth(a.handlePaymentMethods))
	mux.HandleFunc("/api/v1/payment-methods/", a.requireAuth(a.handlePaymentMethodActions))
	mux.HandleFunc("/api/v1/payment-details", a.requireAuth(a.handlePaymentDetails))
	mux.HandleFunc("/api/v1/payment-details/", a.requireAuth(a.handlePaymentDetailActions))
	mux.HandleFunc("/api/v1/supplier-returns", a.requireAuth(a.handleSupplierReturns))
	mux.HandleFunc("/api/v1/supplier-returns/", a.requireAuth(a.handleSupplierReturnActions))
	mux.HandleFunc("/api/v1/supplier-return-logs", a.requireAuth(a.handleSupplierReturnLogs))
	mux.HandleFunc("/api/v1/supplier-return-logs/", a.requireAuth(a.handleSupplierReturnLogActions))
	mux.HandleFunc("/api/v1/merchant-returns", a.requireAuth(a.handleMerchantReturns))
	mux.HandleFunc("/api/v1/merchant-returns/", a.requireAuth(a.handleMerchantReturnActions))
	mux.HandleFunc("/api/v1/merchant-return-logs", a.requireAuth(a.handleMerchantReturnLogs))
	mux.HandleFunc("/api/v1/merchant-return-logs/", a.requireAuth(a.handleMerchantReturnLogActions))
	mux.HandleFunc("/api/v1/logs", a.requireAuth(a.handleLogs))
	mux.HandleFunc("/api/v1/logs/", a.requireAuth(a.handleLogActions))
	mux.HandleFunc("/api/v1/settings", a.requireAuth(a.handleSettings))
	mux.HandleFunc("/api/v1/settings/", a.requireAuth(a.handleSettingActions))

	return a.withMiddleware(mux)
}

func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorization := strings.TrimSpace(r.Header.Get("Authorization"))
		if !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
			writeError(w, http.StatusUnauthorized, errors.New("missing bearer token"))
			return
		}

		token := strings.TrimSpace(authorization[len("Bearer "):])
		actor, err := a.auth.ParseToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err)
			return
		}

		next(w, r.WithContext(service.WithActor(r.Context(), actor)))
	}
}

func (a *API) withMiddleware(next http.Handler) http.Handler {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Access-Control-Allow-Origin", a.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Vary", "Origin")

		if (r.Method == http.MethodPost || r.Method == http.MethodPut) && strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		startedAt := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(startedAt))
	})
	return a.metrics.instrument(handler)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	if err := a.service.Ping(r.Context()); err != nil {
		log.Printf("health probe failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "store unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	account, err := a.service.Authenticate(r.Context(), req)
	if err != nil {
		if errors.Is(err, store.ErrUnauthorized) || errors.Is(err, service.ErrAccountInactive) {
			writeError(w, http.StatusUnauthorized, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	token, expiresAt, err := a.auth.Sign(account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, domain.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
		Account:     *account,
	})
}

// errorStatus maps the service/store error taxonomy to a response code.
func errorStatus(err error) int {
	var validation *store.ValidationError
	var unique *store.UniqueViolationError
	var reference *store.ReferenceError
	var conflict *store.ConflictError
	switch {
	case errors.As(err, &validation),
		errors.As(err, &unique),
		errors.As(err, &reference),
		errors.As(err, &conflict):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrUnauthorized), errors.Is(err, service.ErrAccountInactive):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func pageFromQuery(r *http.Request) store.Page {
	return store.Page{
		Number: queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}.Normalize()
}

func queryInt(r *http.Request, name string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

func queryInt64(r *http.Request, name string) int64 {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

func queryBoolPtr(r *http.Request, name string) *bool {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// pathTail strips the collection prefix from the request path.
func pathTail(r *http.Request, prefix string) string {
	return strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
}

// writeList wraps a page of rows with the standard pagination envelope.
func writeList(w http.ResponseWriter, key string, rows any, total int64, page store.Page) {
	writeJSON(w, http.StatusOK, map[string]any{
		key:           rows,
		"total":       total,
		"page":        page.Number,
		"limit":       page.Limit,
		"total_pages": page.TotalPages(total),
	})
}

// writeUpdated reports a partial update. A no-op merge is a success carrying
// the unchanged row and a no_changes marker.
func writeUpdated(w http.ResponseWriter, key string, row any, err error) {
	if errors.Is(err, store.ErrNoChanges) {
		writeJSON(w, http.StatusOK, map[string]any{key: row, "no_changes": true})
		return
	}
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{key: row})
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func writeError(w http.ResponseWriter, status int, err error) {
	// 5xx details stay in the server log; clients get a generic message.
	msg := err.Error()
	if status >= 500 {
		log.Printf("internal error (status %d): %v", status, err)
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
