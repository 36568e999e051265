package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"bodega/backend/internal/domain"
	"bodega/backend/internal/store"
)

func (a *API) handleEmployees(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.EmployeeFilter{
			Search:   strings.TrimSpace(r.URL.Query().Get("search")),
			Position: strings.TrimSpace(r.URL.Query().Get("position")),
		}
		rows, total, err := a.service.ListEmployees(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "employees", rows, total, page)
	case http.MethodPost:
		var employee domain.Employee
		if err := decodeJSON(r, &employee); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateEmployee(r.Context(), employee)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"employee": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleEmployeeActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r, "/api/v1/employees/")

	if tail == "without-accounts/list" {
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w)
			return
		}
		rows, err := a.service.ListEmployeesWithoutAccounts(r.Context())
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"employees": rows})
		return
	}

	id, err := parseID(tail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		employee, err := a.service.GetEmployee(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"employee": employee})
	case http.MethodPut:
		var req domain.EmployeeUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateEmployee(r.Context(), id, req)
		writeUpdated(w, "employee", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteEmployee(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.AccountFilter{
			Search:   strings.TrimSpace(r.URL.Query().Get("search")),
			IsActive: queryBoolPtr(r, "is_active"),
		}
		rows, total, err := a.service.ListAccounts(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "accounts", rows, total, page)
	case http.MethodPost:
		var req domain.AccountCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateAccount(r.Context(), req)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"account": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleAccountActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/accounts/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		account, err := a.service.GetAccount(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"account": account})
	case http.MethodPut:
		var req domain.AccountUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateAccount(r.Context(), id, req)
		writeUpdated(w, "account", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteAccount(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleSuppliers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.SupplierFilter{Search: strings.TrimSpace(r.URL.Query().Get("search"))}
		rows, total, err := a.service.ListSuppliers(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "suppliers", rows, total, page)
	case http.MethodPost:
		var supplier domain.Supplier
		if err := decodeJSON(r, &supplier); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateSupplier(r.Context(), supplier)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"supplier": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleSupplierActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/suppliers/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		supplier, err := a.service.GetSupplier(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"supplier": supplier})
	case http.MethodPut:
		var req domain.SupplierUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateSupplier(r.Context(), id, req)
		writeUpdated(w, "supplier", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteSupplier(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleMerchants(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.MerchantFilter{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Nature: strings.TrimSpace(r.URL.Query().Get("nature")),
		}
		rows, total, err := a.service.ListMerchants(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "merchants", rows, total, page)
	case http.MethodPost:
		var merchant domain.Merchant
		if err := decodeJSON(r, &merchant); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateMerchant(r.Context(), merchant)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"merchant": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleMerchantActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r, "/api/v1/merchants/")

	if tail == "nature/list" {
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w)
			return
		}
		natures, err := a.service.ListMerchantNatures(r.Context())
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"natures": natures})
		return
	}

	id, err := parseID(tail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		merchant, err := a.service.GetMerchant(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"merchant": merchant})
	case http.MethodPut:
		var req domain.MerchantUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateMerchant(r.Context(), id, req)
		writeUpdated(w, "merchant", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteMerchant(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.ItemFilter{
			Search:   strings.TrimSpace(r.URL.Query().Get("search")),
			Category: strings.TrimSpace(r.URL.Query().Get("category")),
		}
		rows, total, err := a.service.ListItems(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "items", rows, total, page)
	case http.MethodPost:
		var item domain.Item
		if err := decodeJSON(r, &item); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateItem(r.Context(), item)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"item": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleItemActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/items/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		item, err := a.service.GetItem(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"item": item})
	case http.MethodPut:
		var req domain.ItemUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateItem(r.Context(), id, req)
		writeUpdated(w, "item", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteItem(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleDeliveries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.DeliveryFilter{
			SupplierID: queryInt64(r, "supplier_id"),
			AccountID:  queryInt64(r, "account_id"),
			Status:     strings.TrimSpace(r.URL.Query().Get("status")),
			DateFrom:   strings.TrimSpace(r.URL.Query().Get("date_from")),
			DateTo:     strings.TrimSpace(r.URL.Query().Get("date_to")),
		}
		rows, total, err := a.service.ListDeliveries(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "deliveries", rows, total, page)
	case http.MethodPost:
		var delivery domain.Delivery
		if err := decodeJSON(r, &delivery); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateDelivery(r.Context(), delivery)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"delivery": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleDeliveryActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/deliveries/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		delivery, err := a.service.GetDelivery(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"delivery": delivery})
	case http.MethodPut:
		var req domain.DeliveryUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateDelivery(r.Context(), id, req)
		writeUpdated(w, "delivery", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteDelivery(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleDeliveryDetails(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.DeliveryDetailFilter{
			DeliveryID: queryInt64(r, "delivery_id"),
			ItemID:     queryInt64(r, "item_id"),
		}
		rows, total, err := a.service.ListDeliveryDetails(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "delivery_details", rows, total, page)
	case http.MethodPost:
		var detail domain.DeliveryDetail
		if err := decodeJSON(r, &detail); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateDeliveryDetail(r.Context(), detail)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"delivery_detail": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleDeliveryDetailActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/delivery-details/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		detail, err := a.service.GetDeliveryDetail(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"delivery_detail": detail})
	case http.MethodPut:
		var req domain.DeliveryDetailUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateDeliveryDetail(r.Context(), id, req)
		writeUpdated(w, "delivery_detail", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteDeliveryDetail(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleDeliveryItemDetails(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.DeliveryItemDetailFilter{DeliveryDetailID: queryInt64(r, "delivery_detail_id")}
		rows, total, err := a.service.ListDeliveryItemDetails(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "delivery_item_details", rows, total, page)
	case http.MethodPost:
		var detail domain.DeliveryItemDetail
		if err := decodeJSON(r, &detail); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateDeliveryItemDetail(r.Context(), detail)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"delivery_item_detail": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleDeliveryItemDetailActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/delivery-item-details/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		detail, err := a.service.GetDeliveryItemDetail(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"delivery_item_detail": detail})
	case http.MethodPut:
		var req domain.DeliveryItemDetailUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateDeliveryItemDetail(r.Context(), id, req)
		writeUpdated(w, "delivery_item_detail", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteDeliveryItemDetail(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleStocks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.StockFilter{
			DeliveryDetailID: queryInt64(r, "delivery_detail_id"),
			AccountID:        queryInt64(r, "account_id"),
		}
		rows, total, err := a.service.ListStocks(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "stocks", rows, total, page)
	case http.MethodPost:
		var stock domain.Stock
		if err := decodeJSON(r, &stock); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateStock(r.Context(), stock)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"stock": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleStockActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/stocks/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		stock, err := a.service.GetStock(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"stock": stock})
	case http.MethodPut:
		var req domain.StockUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateStockPrice(r.Context(), id, req)
		writeUpdated(w, "stock", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteStock(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleStockOnHand(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.StockOnHandFilter{StockID: queryInt64(r, "stock_id")}
		rows, total, err := a.service.ListStockOnHand(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "stock_on_hand", rows, total, page)
	case http.MethodPost:
		var onHand domain.StockOnHand
		if err := decodeJSON(r, &onHand); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateStockOnHand(r.Context(), onHand)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"stock_on_hand": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleStockOnHandActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r, "/api/v1/stock-on-hand/")

	if tail == "summary/stats" {
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w)
			return
		}
		stats, err := a.service.GetStockOnHandStats(r.Context())
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
		return
	}

	id, err := parseID(tail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		onHand, err := a.service.GetStockOnHand(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"stock_on_hand": onHand})
	case http.MethodPut:
		var req domain.StockOnHandUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateStockOnHand(r.Context(), id, req)
		writeUpdated(w, "stock_on_hand", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteStockOnHand(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handlePriceLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	page := pageFromQuery(r)
	filter := store.PriceLogFilter{
		StockID:   queryInt64(r, "stock_id"),
		AccountID: queryInt64(r, "account_id"),
		DateFrom:  strings.TrimSpace(r.URL.Query().Get("date_from")),
		DateTo:    strings.TrimSpace(r.URL.Query().Get("date_to")),
	}
	rows, total, err := a.service.ListPriceLogs(r.Context(), filter, page)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	writeList(w, "price_logs", rows, total, page)
}

func (a *API) handlePriceActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r, "/api/v1/prices/")

	switch {
	case strings.HasPrefix(tail, "history/"):
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w)
			return
		}
		stockID, err := parseID(strings.TrimPrefix(tail, "history/"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		limit := queryInt(r, "limit")
		history, err := a.service.ListPriceHistory(r.Context(), stockID, limit)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"history": history})
	case tail == "current/all":
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w)
			return
		}
		page := pageFromQuery(r)
		rows, total, err := a.service.ListStocks(r.Context(), store.StockFilter{}, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "stocks", rows, total, page)
	case tail == "bulk-update":
		if r.Method != http.MethodPut {
			writeMethodNotAllowed(w)
			return
		}
		var req domain.BulkPriceUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		resp, err := a.service.BulkUpdateStockPrices(r.Context(), req)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	default:
		id, err := parseID(tail)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w)
			return
		}
		entry, err := a.service.GetPriceLog(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"price_log": entry})
	}
}

func (a *API) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		rows, total, err := a.service.ListTransactions(r.Context(), transactionFilterFromQuery(r), page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "transactions", rows, total, page)
	case http.MethodPost:
		var tx domain.Transaction
		if err := decodeJSON(r, &tx); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateTransaction(r.Context(), tx)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"transaction": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func transactionFilterFromQuery(r *http.Request) store.TransactionFilter {
	return store.TransactionFilter{
		MerchantID: queryInt64(r, "merchant_id"),
		AccountID:  queryInt64(r, "account_id"),
		Status:     strings.TrimSpace(r.URL.Query().Get("status")),
		DateFrom:   strings.TrimSpace(r.URL.Query().Get("date_from")),
		DateTo:     strings.TrimSpace(r.URL.Query().Get("date_to")),
	}
}

func (a *API) handleTransactionActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r, "/api/v1/transactions/")

	if tail == "statistics/summary" {
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w)
			return
		}
		stats, err := a.service.GetTransactionStats(r.Context(), transactionFilterFromQuery(r))
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
		return
	}

	id, err := parseID(tail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		tx, err := a.service.GetTransaction(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"transaction": tx})
	case http.MethodPut:
		var req domain.TransactionUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateTransaction(r.Context(), id, req)
		writeUpdated(w, "transaction", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteTransaction(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.OrderFilter{
			TransactionID: queryInt64(r, "transaction_id"),
			StockID:       queryInt64(r, "stock_id"),
		}
		rows, total, err := a.service.ListOrders(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "orders", rows, total, page)
	case http.MethodPost:
		var order domain.Order
		if err := decodeJSON(r, &order); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateOrder(r.Context(), order)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"order": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleOrderActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/orders/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		order, err := a.service.GetOrder(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"order": order})
	case http.MethodPut:
		var req domain.OrderUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateOrder(r.Context(), id, req)
		writeUpdated(w, "order", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteOrder(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handlePayments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.PaymentFilter{TransactionID: queryInt64(r, "transaction_id")}
		rows, total, err := a.service.ListPayments(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "payments", rows, total, page)
	case http.MethodPost:
		var payment domain.Payment
		if err := decodeJSON(r, &payment); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreatePayment(r.Context(), payment)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"payment": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handlePaymentActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/payments/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		payment, err := a.service.GetPayment(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"payment": payment})
	case http.MethodPut:
		var req domain.PaymentUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdatePayment(r.Context(), id, req)
		writeUpdated(w, "payment", updated, err)
	case http.MethodDelete:
		if err := a.service.DeletePayment(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.PaymentMethodFilter{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Type:   strings.TrimSpace(r.URL.Query().Get("type")),
		}
		rows, total, err := a.service.ListPaymentMethods(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "payment_methods", rows, total, page)
	case http.MethodPost:
		var method domain.PaymentMethod
		if err := decodeJSON(r, &method); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreatePaymentMethod(r.Context(), method)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"payment_method": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handlePaymentMethodActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r, "/api/v1/payment-methods/")

	if tail == "types/list" {
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w)
			return
		}
		types, err := a.service.ListPaymentMethodTypes(r.Context())
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"types": types})
		return
	}

	id, err := parseID(tail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		method, err := a.service.GetPaymentMethod(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"payment_method": method})
	case http.MethodPut:
		var req domain.PaymentMethodUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdatePaymentMethod(r.Context(), id, req)
		writeUpdated(w, "payment_method", updated, err)
	case http.MethodDelete:
		if err := a.service.DeletePaymentMethod(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handlePaymentDetails(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.PaymentDetailFilter{
			PaymentID:       queryInt64(r, "payment_id"),
			PaymentMethodID: queryInt64(r, "payment_method_id"),
			Status:          strings.TrimSpace(r.URL.Query().Get("status")),
		}
		rows, total, err := a.service.ListPaymentDetails(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "payment_details", rows, total, page)
	case http.MethodPost:
		var detail domain.PaymentDetail
		if err := decodeJSON(r, &detail); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreatePaymentDetail(r.Context(), detail)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"payment_detail": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handlePaymentDetailActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/payment-details/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		detail, err := a.service.GetPaymentDetail(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"payment_detail": detail})
	case http.MethodPut:
		var req domain.PaymentDetailUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdatePaymentDetail(r.Context(), id, req)
		writeUpdated(w, "payment_detail", updated, err)
	case http.MethodDelete:
		if err := a.service.DeletePaymentDetail(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleSupplierReturns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.SupplierReturnFilter{
			SupplierID:       queryInt64(r, "supplier_id"),
			DeliveryDetailID: queryInt64(r, "delivery_detail_id"),
			ActiveStatus:     queryBoolPtr(r, "active_status"),
		}
		rows, total, err := a.service.ListSupplierReturns(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "supplier_returns", rows, total, page)
	case http.MethodPost:
		var ret domain.SupplierReturn
		if err := decodeJSON(r, &ret); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateSupplierReturn(r.Context(), ret)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"supplier_return": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleSupplierReturnActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/supplier-returns/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		ret, err := a.service.GetSupplierReturn(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"supplier_return": ret})
	case http.MethodPut:
		var req domain.SupplierReturnUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateSupplierReturn(r.Context(), id, req)
		writeUpdated(w, "supplier_return", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteSupplierReturn(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleSupplierReturnLogs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.SupplierReturnLogFilter{SupplierReturnID: queryInt64(r, "supplier_return_id")}
		rows, total, err := a.service.ListSupplierReturnLogs(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "supplier_return_logs", rows, total, page)
	case http.MethodPost:
		var entry domain.SupplierReturnLog
		if err := decodeJSON(r, &entry); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateSupplierReturnLog(r.Context(), entry)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"supplier_return_log": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleSupplierReturnLogActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/supplier-return-logs/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	entry, err := a.service.GetSupplierReturnLog(r.Context(), id)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"supplier_return_log": entry})
}

func (a *API) handleMerchantReturns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.MerchantReturnFilter{
			MerchantID:   queryInt64(r, "merchant_id"),
			OrderID:      queryInt64(r, "order_id"),
			ActiveStatus: queryBoolPtr(r, "active_status"),
		}
		rows, total, err := a.service.ListMerchantReturns(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "merchant_returns", rows, total, page)
	case http.MethodPost:
		var ret domain.MerchantReturn
		if err := decodeJSON(r, &ret); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateMerchantReturn(r.Context(), ret)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"merchant_return": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleMerchantReturnActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/merchant-returns/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		ret, err := a.service.GetMerchantReturn(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"merchant_return": ret})
	case http.MethodPut:
		var req domain.MerchantReturnUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateMerchantReturn(r.Context(), id, req)
		writeUpdated(w, "merchant_return", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteMerchantReturn(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleMerchantReturnLogs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.MerchantReturnLogFilter{MerchantReturnID: queryInt64(r, "merchant_return_id")}
		rows, total, err := a.service.ListMerchantReturnLogs(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "merchant_return_logs", rows, total, page)
	case http.MethodPost:
		var entry domain.MerchantReturnLog
		if err := decodeJSON(r, &entry); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateMerchantReturnLog(r.Context(), entry)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"merchant_return_log": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleMerchantReturnLogActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathTail(r, "/api/v1/merchant-return-logs/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	entry, err := a.service.GetMerchantReturnLog(r.Context(), id)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"merchant_return_log": entry})
}

func (a *API) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	page := pageFromQuery(r)
	filter := store.LogFilter{
		AccountID: queryInt64(r, "account_id"),
		Module:    strings.TrimSpace(r.URL.Query().Get("module")),
		Event:     strings.TrimSpace(r.URL.Query().Get("event")),
		DateFrom:  strings.TrimSpace(r.URL.Query().Get("date_from")),
		DateTo:    strings.TrimSpace(r.URL.Query().Get("date_to")),
	}
	rows, total, err := a.service.ListLogs(r.Context(), filter, page)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	writeList(w, "logs", rows, total, page)
}

func (a *API) handleLogActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r, "/api/v1/logs/")

	switch tail {
	case "modules/list":
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w)
			return
		}
		modules, err := a.service.ListLogModules(r.Context())
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"modules": modules})
		return
	case "events/list":
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w)
			return
		}
		events, err := a.service.ListLogEvents(r.Context())
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"events": events})
		return
	}

	id, err := parseID(tail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		entry, err := a.service.GetLog(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"log": entry})
	case http.MethodDelete:
		if err := a.service.DeleteLog(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page := pageFromQuery(r)
		filter := store.SysSettingFilter{Search: strings.TrimSpace(r.URL.Query().Get("search"))}
		rows, total, err := a.service.ListSysSettings(r.Context(), filter, page)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeList(w, "settings", rows, total, page)
	case http.MethodPost:
		var setting domain.SysSetting
		if err := decodeJSON(r, &setting); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateSysSetting(r.Context(), setting)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"setting": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleSettingActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r, "/api/v1/settings/")

	if tail == "attributes/list" {
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w)
			return
		}
		attributes, err := a.service.ListSysSettingAttributes(r.Context())
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"attributes": attributes})
		return
	}

	if strings.HasPrefix(tail, "attribute/") {
		attribute := strings.Trim(strings.TrimPrefix(tail, "attribute/"), "/")
		if attribute == "" {
			writeError(w, http.StatusBadRequest, errors.New("attribute required"))
			return
		}
		switch r.Method {
		case http.MethodGet:
			setting, err := a.service.GetSysSettingByAttribute(r.Context(), attribute)
			if err != nil {
				writeError(w, errorStatus(err), err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"setting": setting})
		case http.MethodPut:
			existing, err := a.service.GetSysSettingByAttribute(r.Context(), attribute)
			if err != nil {
				writeError(w, errorStatus(err), err)
				return
			}
			var req domain.SysSettingUpdateRequest
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			updated, err := a.service.UpdateSysSetting(r.Context(), existing.SysSettingID, req)
			writeUpdated(w, "setting", updated, err)
		default:
			writeMethodNotAllowed(w)
		}
		return
	}

	id, err := parseID(tail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		setting, err := a.service.GetSysSetting(r.Context(), id)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"setting": setting})
	case http.MethodPut:
		var req domain.SysSettingUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateSysSetting(r.Context(), id, req)
		writeUpdated(w, "setting", updated, err)
	case http.MethodDelete:
		if err := a.service.DeleteSysSetting(r.Context(), id); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}
