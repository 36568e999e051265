// Package memory is the in-process Repository used for dev mode and tests.
// Rows live in maps keyed by id; uniqueness rules are enforced by scanning
// under the write lock, which is enough at this scale.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"bodega/backend/internal/domain"
	"bodega/backend/internal/store"
)

type Store struct {
	mu sync.RWMutex

	seq map[domain.Kind]int64

	employees           map[int64]domain.Employee
	accounts            map[int64]domain.Account
	suppliers           map[int64]domain.Supplier
	merchants           map[int64]domain.Merchant
	items               map[int64]domain.Item
	deliveries          map[int64]domain.Delivery
	deliveryDetails     map[int64]domain.DeliveryDetail
	deliveryItemDetails map[int64]domain.DeliveryItemDetail
	stocks              map[int64]domain.Stock
	stockOnHand         map[int64]domain.StockOnHand
	priceLogs           map[int64]domain.PriceLog
	transactions        map[int64]domain.Transaction
	orders              map[int64]domain.Order
	payments            map[int64]domain.Payment
	paymentMethods      map[int64]domain.PaymentMethod
	paymentDetails      map[int64]domain.PaymentDetail
	supplierReturns     map[int64]domain.SupplierReturn
	supplierReturnLogs  map[int64]domain.SupplierReturnLog
	merchantReturns     map[int64]domain.MerchantReturn
	merchantReturnLogs  map[int64]domain.MerchantReturnLog
	logs                map[int64]domain.Log
	sysSettings         map[int64]domain.SysSetting
}

func New() *Store {
	return &Store{
		seq:                 make(map[domain.Kind]int64),
		employees:           make(map[int64]domain.Employee),
		accounts:            make(map[int64]domain.Account),
		suppliers:           make(map[int64]domain.Supplier),
		merchants:           make(map[int64]domain.Merchant),
		items:               make(map[int64]domain.Item),
		deliveries:          make(map[int64]domain.Delivery),
		deliveryDetails:     make(map[int64]domain.DeliveryDetail),
		deliveryItemDetails: make(map[int64]domain.DeliveryItemDetail),
		stocks:              make(map[int64]domain.Stock),
		stockOnHand:         make(map[int64]domain.StockOnHand),
		priceLogs:           make(map[int64]domain.PriceLog),
		transactions:        make(map[int64]domain.Transaction),
		orders:              make(map[int64]domain.Order),
		payments:            make(map[int64]domain.Payment),
		paymentMethods:      make(map[int64]domain.PaymentMethod),
		paymentDetails:      make(map[int64]domain.PaymentDetail),
		supplierReturns:     make(map[int64]domain.SupplierReturn),
		supplierReturnLogs:  make(map[int64]domain.SupplierReturnLog),
		merchantReturns:     make(map[int64]domain.MerchantReturn),
		merchantReturnLogs:  make(map[int64]domain.MerchantReturnLog),
		logs:                make(map[int64]domain.Log),
		sysSettings:         make(map[int64]domain.SysSetting),
	}
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}

// nextID assigns the next identity for a kind. Caller holds the write lock.
func (s *Store) nextID(kind domain.Kind) int64 {
	s.seq[kind]++
	return s.seq[kind]
}

func (s *Store) ExistsByID(_ context.Context, kind domain.Kind, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch kind {
	case domain.KindEmployee:
		_, ok := s.employees[id]
		return ok, nil
	case domain.KindAccount:
		_, ok := s.accounts[id]
		return ok, nil
	case domain.KindSupplier:
		_, ok := s.suppliers[id]
		return ok, nil
	case domain.KindMerchant:
		_, ok := s.merchants[id]
		return ok, nil
	case domain.KindItem:
		_, ok := s.items[id]
		return ok, nil
	case domain.KindDelivery:
		_, ok := s.deliveries[id]
		return ok, nil
	case domain.KindDeliveryDetail:
		_, ok := s.deliveryDetails[id]
		return ok, nil
	case domain.KindDeliveryItemDetail:
		_, ok := s.deliveryItemDetails[id]
		return ok, nil
	case domain.KindStock:
		_, ok := s.stocks[id]
		return ok, nil
	case domain.KindStockOnHand:
		_, ok := s.stockOnHand[id]
		return ok, nil
	case domain.KindPriceLog:
		_, ok := s.priceLogs[id]
		return ok, nil
	case domain.KindTransaction:
		_, ok := s.transactions[id]
		return ok, nil
	case domain.KindOrder:
		_, ok := s.orders[id]
		return ok, nil
	case domain.KindPayment:
		_, ok := s.payments[id]
		return ok, nil
	case domain.KindPaymentMethod:
		_, ok := s.paymentMethods[id]
		return ok, nil
	case domain.KindPaymentDetail:
		_, ok := s.paymentDetails[id]
		return ok, nil
	case domain.KindSupplierReturn:
		_, ok := s.supplierReturns[id]
		return ok, nil
	case domain.KindSupplierReturnLog:
		_, ok := s.supplierReturnLogs[id]
		return ok, nil
	case domain.KindMerchantReturn:
		_, ok := s.merchantReturns[id]
		return ok, nil
	case domain.KindMerchantReturnLog:
		_, ok := s.merchantReturnLogs[id]
		return ok, nil
	case domain.KindLog:
		_, ok := s.logs[id]
		return ok, nil
	case domain.KindSysSetting:
		_, ok := s.sysSettings[id]
		return ok, nil
	}
	return false, fmt.Errorf("unknown kind %q", kind)
}

func (s *Store) CountReferences(_ context.Context, child domain.Kind, column string, id int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	switch {
	case child == domain.KindAccount && column == "employee_id":
		for _, row := range s.accounts {
			if row.EmployeeID == id {
				count++
			}
		}
	case child == domain.KindDelivery && column == "supplier_id":
		for _, row := range s.deliveries {
			if row.SupplierID == id {
				count++
			}
		}
	case child == domain.KindDelivery && column == "account_id":
		for _, row := range s.deliveries {
			if row.AccountID == id {
				count++
			}
		}
	case child == domain.KindDeliveryDetail && column == "delivery_id":
		for _, row := range s.deliveryDetails {
			if row.DeliveryID == id {
				count++
			}
		}
	case child == domain.KindDeliveryDetail && column == "item_id":
		for _, row := range s.deliveryDetails {
			if row.ItemID == id {
				count++
			}
		}
	case child == domain.KindDeliveryItemDetail && column == "delivery_detail_id":
		for _, row := range s.deliveryItemDetails {
			if row.DeliveryDetailID == id {
				count++
			}
		}
	case child == domain.KindStock && column == "delivery_detail_id":
		for _, row := range s.stocks {
			if row.DeliveryDetailID == id {
				count++
			}
		}
	case child == domain.KindStockOnHand && column == "stock_id":
		for _, row := range s.stockOnHand {
			if row.StockID == id {
				count++
			}
		}
	case child == domain.KindTransaction && column == "merchant_id":
		for _, row := range s.transactions {
			if row.MerchantID == id {
				count++
			}
		}
	case child == domain.KindOrder && column == "transaction_id":
		for _, row := range s.orders {
			if row.TransactionID == id {
				count++
			}
		}
	case child == domain.KindOrder && column == "stock_id":
		for _, row := range s.orders {
			if row.StockID == id {
				count++
			}
		}
	case child == domain.KindPayment && column == "transaction_id":
		for _, row := range s.payments {
			if row.TransactionID == id {
				count++
			}
		}
	case child == domain.KindPaymentDetail && column == "payment_id":
		for _, row := range s.paymentDetails {
			if row.PaymentID == id {
				count++
			}
		}
	case child == domain.KindPaymentDetail && column == "payment_method_id":
		for _, row := range s.paymentDetails {
			if row.PaymentMethodID == id {
				count++
			}
		}
	case child == domain.KindSupplierReturn && column == "supplier_id":
		for _, row := range s.supplierReturns {
			if row.SupplierID == id {
				count++
			}
		}
	case child == domain.KindSupplierReturn && column == "delivery_detail_id":
		for _, row := range s.supplierReturns {
			if row.DeliveryDetailID == id {
				count++
			}
		}
	case child == domain.KindMerchantReturn && column == "merchant_id":
		for _, row := range s.merchantReturns {
			if row.MerchantID == id {
				count++
			}
		}
	case child == domain.KindMerchantReturn && column == "order_id":
		for _, row := range s.merchantReturns {
			if row.OrderID == id {
				count++
			}
		}
	default:
		return 0, fmt.Errorf("unsupported reference count %s.%s", child, column)
	}
	return count, nil
}

func (s *Store) CreateEmployee(_ context.Context, employee domain.Employee) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employee.EmployeeID = s.nextID(domain.KindEmployee)
	s.employees[employee.EmployeeID] = cloneEmployee(employee)
	created := cloneEmployee(employee)
	return &created, nil
}

func (s *Store) GetEmployee(_ context.Context, id int64) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employee, ok := s.employees[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyEmployee := cloneEmployee(employee)
	return &copyEmployee, nil
}

func (s *Store) ListEmployees(_ context.Context, filter store.EmployeeFilter, page store.Page) ([]domain.Employee, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.Employee, 0, len(s.employees))
	for _, id := range sortedIDs(s.employees) {
		employee := s.employees[id]
		if filter.Search != "" && !containsFold(employee.Firstname+" "+employee.Lastname, filter.Search) {
			continue
		}
		if filter.Position != "" && employee.Position != filter.Position {
			continue
		}
		rows = append(rows, cloneEmployee(employee))
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateEmployee(_ context.Context, employee domain.Employee) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[employee.EmployeeID]; !ok {
		return nil, store.ErrNotFound
	}
	s.employees[employee.EmployeeID] = cloneEmployee(employee)
	updated := cloneEmployee(employee)
	return &updated, nil
}

func (s *Store) DeleteEmployee(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.employees, id)
	return nil
}

func (s *Store) ListEmployeesWithoutAccounts(_ context.Context) ([]domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hasAccount := make(map[int64]struct{}, len(s.accounts))
	for _, account := range s.accounts {
		hasAccount[account.EmployeeID] = struct{}{}
	}

	rows := make([]domain.Employee, 0, len(s.employees))
	for _, id := range sortedIDs(s.employees) {
		if _, ok := hasAccount[id]; ok {
			continue
		}
		rows = append(rows, cloneEmployee(s.employees[id]))
	}
	return rows, nil
}

func (s *Store) CreateAccount(_ context.Context, account domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Username == account.Username {
			return nil, &store.UniqueViolationError{Kind: domain.KindAccount, Fields: []string{"username"}}
		}
		if existing.EmployeeID == account.EmployeeID {
			return nil, &store.UniqueViolationError{Kind: domain.KindAccount, Fields: []string{"employee_id"}}
		}
	}

	account.AccountID = s.nextID(domain.KindAccount)
	s.accounts[account.AccountID] = account
	created := account
	return &created, nil
}

func (s *Store) GetAccount(_ context.Context, id int64) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyAccount := account
	return &copyAccount, nil
}

func (s *Store) GetAccountByUsername(_ context.Context, username string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if account.Username == username {
			copyAccount := account
			return &copyAccount, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListAccounts(_ context.Context, filter store.AccountFilter, page store.Page) ([]domain.Account, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.Account, 0, len(s.accounts))
	for _, id := range sortedIDs(s.accounts) {
		account := s.accounts[id]
		if filter.Search != "" && !containsFold(account.Username, filter.Search) {
			continue
		}
		if filter.IsActive != nil && account.IsActive != *filter.IsActive {
			continue
		}
		rows = append(rows, account)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateAccount(_ context.Context, account domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.AccountID]; !ok {
		return nil, store.ErrNotFound
	}
	for id, existing := range s.accounts {
		if id == account.AccountID {
			continue
		}
		if existing.Username == account.Username {
			return nil, &store.UniqueViolationError{Kind: domain.KindAccount, Fields: []string{"username"}}
		}
		if existing.EmployeeID == account.EmployeeID {
			return nil, &store.UniqueViolationError{Kind: domain.KindAccount, Fields: []string{"employee_id"}}
		}
	}
	s.accounts[account.AccountID] = account
	updated := account
	return &updated, nil
}

func (s *Store) DeleteAccount(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.accounts, id)
	return nil
}

func (s *Store) CreateSupplier(_ context.Context, supplier domain.Supplier) (*domain.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	supplier.SupplierID = s.nextID(domain.KindSupplier)
	s.suppliers[supplier.SupplierID] = supplier
	created := supplier
	return &created, nil
}

func (s *Store) GetSupplier(_ context.Context, id int64) (*domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	supplier, ok := s.suppliers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copySupplier := supplier
	return &copySupplier, nil
}

func (s *Store) ListSuppliers(_ context.Context, filter store.SupplierFilter, page store.Page) ([]domain.Supplier, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.Supplier, 0, len(s.suppliers))
	for _, id := range sortedIDs(s.suppliers) {
		supplier := s.suppliers[id]
		if filter.Search != "" && !containsFold(supplier.CompanyName, filter.Search) {
			continue
		}
		rows = append(rows, supplier)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateSupplier(_ context.Context, supplier domain.Supplier) (*domain.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.suppliers[supplier.SupplierID]; !ok {
		return nil, store.ErrNotFound
	}
	s.suppliers[supplier.SupplierID] = supplier
	updated := supplier
	return &updated, nil
}

func (s *Store) DeleteSupplier(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.suppliers[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.suppliers, id)
	return nil
}

func (s *Store) CreateMerchant(_ context.Context, merchant domain.Merchant) (*domain.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merchant.MerchantID = s.nextID(domain.KindMerchant)
	s.merchants[merchant.MerchantID] = merchant
	created := merchant
	return &created, nil
}

func (s *Store) GetMerchant(_ context.Context, id int64) (*domain.Merchant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	merchant, ok := s.merchants[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyMerchant := merchant
	return &copyMerchant, nil
}

func (s *Store) ListMerchants(_ context.Context, filter store.MerchantFilter, page store.Page) ([]domain.Merchant, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.Merchant, 0, len(s.merchants))
	for _, id := range sortedIDs(s.merchants) {
		merchant := s.merchants[id]
		if filter.Search != "" &&
			!containsFold(merchant.BusinessName, filter.Search) &&
			!containsFold(merchant.Firstname+" "+merchant.Lastname, filter.Search) {
			continue
		}
		if filter.Nature != "" && merchant.Nature != filter.Nature {
			continue
		}
		rows = append(rows, merchant)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateMerchant(_ context.Context, merchant domain.Merchant) (*domain.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.merchants[merchant.MerchantID]; !ok {
		return nil, store.ErrNotFound
	}
	s.merchants[merchant.MerchantID] = merchant
	updated := merchant
	return &updated, nil
}

func (s *Store) DeleteMerchant(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.merchants[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.merchants, id)
	return nil
}

func (s *Store) ListMerchantNatures(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return distinct(s.merchants, func(m domain.Merchant) string { return m.Nature }), nil
}

func (s *Store) CreateItem(_ context.Context, item domain.Item) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ItemID = s.nextID(domain.KindItem)
	s.items[item.ItemID] = item
	created := item
	return &created, nil
}

func (s *Store) GetItem(_ context.Context, id int64) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyItem := item
	return &copyItem, nil
}

func (s *Store) ListItems(_ context.Context, filter store.ItemFilter, page store.Page) ([]domain.Item, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.Item, 0, len(s.items))
	for _, id := range sortedIDs(s.items) {
		item := s.items[id]
		if filter.Search != "" &&
			!containsFold(item.Description, filter.Search) &&
			!containsFold(item.ShortDescription, filter.Search) {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		rows = append(rows, item)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateItem(_ context.Context, item domain.Item) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ItemID]; !ok {
		return nil, store.ErrNotFound
	}
	s.items[item.ItemID] = item
	updated := item
	return &updated, nil
}

func (s *Store) DeleteItem(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *Store) CreateDelivery(_ context.Context, delivery domain.Delivery) (*domain.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.deliveries {
		if existing.SupplierID == delivery.SupplierID && existing.AccountID == delivery.AccountID {
			return nil, &store.UniqueViolationError{Kind: domain.KindDelivery, Fields: []string{"supplier_id", "account_id"}}
		}
	}

	delivery.DeliveryID = s.nextID(domain.KindDelivery)
	if delivery.CreatedAt.IsZero() {
		delivery.CreatedAt = time.Now().UTC()
	}
	s.deliveries[delivery.DeliveryID] = delivery
	created := delivery
	return &created, nil
}

func (s *Store) GetDelivery(_ context.Context, id int64) (*domain.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	delivery, ok := s.deliveries[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyDelivery := delivery
	return &copyDelivery, nil
}

func (s *Store) ListDeliveries(_ context.Context, filter store.DeliveryFilter, page store.Page) ([]domain.Delivery, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.Delivery, 0, len(s.deliveries))
	for _, id := range sortedIDs(s.deliveries) {
		delivery := s.deliveries[id]
		if filter.SupplierID != 0 && delivery.SupplierID != filter.SupplierID {
			continue
		}
		if filter.AccountID != 0 && delivery.AccountID != filter.AccountID {
			continue
		}
		if filter.Status != "" && delivery.Status != filter.Status {
			continue
		}
		if filter.DateFrom != "" && delivery.Date < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && delivery.Date > filter.DateTo {
			continue
		}
		rows = append(rows, delivery)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateDelivery(_ context.Context, delivery domain.Delivery) (*domain.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deliveries[delivery.DeliveryID]; !ok {
		return nil, store.ErrNotFound
	}
	for id, existing := range s.deliveries {
		if id == delivery.DeliveryID {
			continue
		}
		if existing.SupplierID == delivery.SupplierID && existing.AccountID == delivery.AccountID {
			return nil, &store.UniqueViolationError{Kind: domain.KindDelivery, Fields: []string{"supplier_id", "account_id"}}
		}
	}
	s.deliveries[delivery.DeliveryID] = delivery
	updated := delivery
	return &updated, nil
}

func (s *Store) DeleteDelivery(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deliveries[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.deliveries, id)
	return nil
}

func (s *Store) CreateDeliveryDetail(_ context.Context, detail domain.DeliveryDetail) (*domain.DeliveryDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.deliveryDetails {
		if existing.DeliveryID == detail.DeliveryID && existing.ItemID == detail.ItemID {
			return nil, &store.UniqueViolationError{Kind: domain.KindDeliveryDetail, Fields: []string{"delivery_id", "item_id"}}
		}
	}

	detail.DeliveryDetailID = s.nextID(domain.KindDeliveryDetail)
	s.deliveryDetails[detail.DeliveryDetailID] = detail
	created := detail
	return &created, nil
}

func (s *Store) GetDeliveryDetail(_ context.Context, id int64) (*domain.DeliveryDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	detail, ok := s.deliveryDetails[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyDetail := detail
	return &copyDetail, nil
}

func (s *Store) ListDeliveryDetails(_ context.Context, filter store.DeliveryDetailFilter, page store.Page) ([]domain.DeliveryDetail, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.DeliveryDetail, 0, len(s.deliveryDetails))
	for _, id := range sortedIDs(s.deliveryDetails) {
		detail := s.deliveryDetails[id]
		if filter.DeliveryID != 0 && detail.DeliveryID != filter.DeliveryID {
			continue
		}
		if filter.ItemID != 0 && detail.ItemID != filter.ItemID {
			continue
		}
		rows = append(rows, detail)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateDeliveryDetail(_ context.Context, detail domain.DeliveryDetail) (*domain.DeliveryDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deliveryDetails[detail.DeliveryDetailID]; !ok {
		return nil, store.ErrNotFound
	}
	for id, existing := range s.deliveryDetails {
		if id == detail.DeliveryDetailID {
			continue
		}
		if existing.DeliveryID == detail.DeliveryID && existing.ItemID == detail.ItemID {
			return nil, &store.UniqueViolationError{Kind: domain.KindDeliveryDetail, Fields: []string{"delivery_id", "item_id"}}
		}
	}
	s.deliveryDetails[detail.DeliveryDetailID] = detail
	updated := detail
	return &updated, nil
}

func (s *Store) DeleteDeliveryDetail(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deliveryDetails[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.deliveryDetails, id)
	return nil
}

func (s *Store) CreateDeliveryItemDetail(_ context.Context, detail domain.DeliveryItemDetail) (*domain.DeliveryItemDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.deliveryItemDetails {
		if existing.DeliveryDetailID == detail.DeliveryDetailID {
			return nil, &store.UniqueViolationError{Kind: domain.KindDeliveryItemDetail, Fields: []string{"delivery_detail_id"}}
		}
	}

	detail.DeliveryItemDetailID = s.nextID(domain.KindDeliveryItemDetail)
	s.deliveryItemDetails[detail.DeliveryItemDetailID] = detail
	created := detail
	return &created, nil
}

func (s *Store) GetDeliveryItemDetail(_ context.Context, id int64) (*domain.DeliveryItemDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	detail, ok := s.deliveryItemDetails[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyDetail := detail
	return &copyDetail, nil
}

func (s *Store) ListDeliveryItemDetails(_ context.Context, filter store.DeliveryItemDetailFilter, page store.Page) ([]domain.DeliveryItemDetail, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.DeliveryItemDetail, 0, len(s.deliveryItemDetails))
	for _, id := range sortedIDs(s.deliveryItemDetails) {
		detail := s.deliveryItemDetails[id]
		if filter.DeliveryDetailID != 0 && detail.DeliveryDetailID != filter.DeliveryDetailID {
			continue
		}
		rows = append(rows, detail)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateDeliveryItemDetail(_ context.Context, detail domain.DeliveryItemDetail) (*domain.DeliveryItemDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deliveryItemDetails[detail.DeliveryItemDetailID]; !ok {
		return nil, store.ErrNotFound
	}
	for id, existing := range s.deliveryItemDetails {
		if id == detail.DeliveryItemDetailID {
			continue
		}
		if existing.DeliveryDetailID == detail.DeliveryDetailID {
			return nil, &store.UniqueViolationError{Kind: domain.KindDeliveryItemDetail, Fields: []string{"delivery_detail_id"}}
		}
	}
	s.deliveryItemDetails[detail.DeliveryItemDetailID] = detail
	updated := detail
	return &updated, nil
}

func (s *Store) DeleteDeliveryItemDetail(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deliveryItemDetails[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.deliveryItemDetails, id)
	return nil
}

func (s *Store) CreateStock(_ context.Context, stock domain.Stock) (*domain.Stock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.stocks {
		if existing.DeliveryDetailID == stock.DeliveryDetailID && existing.AccountID == stock.AccountID {
			return nil, &store.UniqueViolationError{Kind: domain.KindStock, Fields: []string{"delivery_detail_id", "account_id"}}
		}
	}

	stock.StockID = s.nextID(domain.KindStock)
	s.stocks[stock.StockID] = stock
	created := stock
	return &created, nil
}

func (s *Store) GetStock(_ context.Context, id int64) (*domain.Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stock, ok := s.stocks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyStock := stock
	return &copyStock, nil
}

func (s *Store) ListStocks(_ context.Context, filter store.StockFilter, page store.Page) ([]domain.Stock, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.Stock, 0, len(s.stocks))
	for _, id := range sortedIDs(s.stocks) {
		stock := s.stocks[id]
		if filter.DeliveryDetailID != 0 && stock.DeliveryDetailID != filter.DeliveryDetailID {
			continue
		}
		if filter.AccountID != 0 && stock.AccountID != filter.AccountID {
			continue
		}
		rows = append(rows, stock)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

// UpdateStockPrice mutates the stock's active prices and appends the matching
// PriceLog row under one lock acquisition, so readers never observe one
// without the other.
func (s *Store) UpdateStockPrice(_ context.Context, stockID int64, markUp float64, sellingPrice float64, accountID int64) (*domain.Stock, *domain.PriceLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stock, ok := s.stocks[stockID]
	if !ok {
		return nil, nil, store.ErrNotFound
	}
	stock.ActiveMarkup = markUp
	stock.ActiveSellingPrice = sellingPrice
	s.stocks[stockID] = stock

	entry := domain.PriceLog{
		PriceLogID:         s.nextID(domain.KindPriceLog),
		StockID:            stockID,
		PostDate:           time.Now().UTC(),
		ActiveMarkUp:       markUp,
		ActiveSellingPrice: sellingPrice,
		AccountID:          accountID,
	}
	s.priceLogs[entry.PriceLogID] = entry

	copyStock := stock
	copyEntry := entry
	return &copyStock, &copyEntry, nil
}

func (s *Store) DeleteStock(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stocks[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.stocks, id)
	return nil
}

func (s *Store) CreateStockOnHand(_ context.Context, onHand domain.StockOnHand) (*domain.StockOnHand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	onHand.StockOnHandID = s.nextID(domain.KindStockOnHand)
	s.stockOnHand[onHand.StockOnHandID] = onHand
	created := onHand
	return &created, nil
}

func (s *Store) GetStockOnHand(_ context.Context, id int64) (*domain.StockOnHand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	onHand, ok := s.stockOnHand[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyOnHand := onHand
	return &copyOnHand, nil
}

func (s *Store) ListStockOnHand(_ context.Context, filter store.StockOnHandFilter, page store.Page) ([]domain.StockOnHand, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.StockOnHand, 0, len(s.stockOnHand))
	for _, id := range sortedIDs(s.stockOnHand) {
		onHand := s.stockOnHand[id]
		if filter.StockID != 0 && onHand.StockID != filter.StockID {
			continue
		}
		rows = append(rows, onHand)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateStockOnHand(_ context.Context, onHand domain.StockOnHand) (*domain.StockOnHand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stockOnHand[onHand.StockOnHandID]; !ok {
		return nil, store.ErrNotFound
	}
	s.stockOnHand[onHand.StockOnHandID] = onHand
	updated := onHand
	return &updated, nil
}

func (s *Store) DeleteStockOnHand(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stockOnHand[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.stockOnHand, id)
	return nil
}

func (s *Store) GetStockOnHandStats(_ context.Context) (domain.StockOnHandStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.StockOnHandStats{}
	first := true
	for _, onHand := range s.stockOnHand {
		stats.TotalRows++
		stats.TotalBoxes += int64(onHand.NumberOfBox)
		stats.TotalQuantity += onHand.Quantity
		if first || onHand.Quantity < stats.MinQuantity {
			stats.MinQuantity = onHand.Quantity
		}
		if first || onHand.Quantity > stats.MaxQuantity {
			stats.MaxQuantity = onHand.Quantity
		}
		first = false
	}
	if stats.TotalRows > 0 {
		stats.AvgQuantity = stats.TotalQuantity / float64(stats.TotalRows)
	}
	return stats, nil
}

func (s *Store) GetPriceLog(_ context.Context, id int64) (*domain.PriceLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.priceLogs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyEntry := entry
	return &copyEntry, nil
}

func (s *Store) ListPriceLogs(_ context.Context, filter store.PriceLogFilter, page store.Page) ([]domain.PriceLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.PriceLog, 0, len(s.priceLogs))
	for _, id := range sortedIDs(s.priceLogs) {
		entry := s.priceLogs[id]
		if filter.StockID != 0 && entry.StockID != filter.StockID {
			continue
		}
		if filter.AccountID != 0 && entry.AccountID != filter.AccountID {
			continue
		}
		if filter.DateFrom != "" && entry.PostDate.Format("2006-01-02") < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && entry.PostDate.Format("2006-01-02") > filter.DateTo {
			continue
		}
		rows = append(rows, entry)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) ListPriceLogsByStock(_ context.Context, stockID int64, limit int) ([]domain.PriceLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.PriceLog, 0, 16)
	for _, entry := range s.priceLogs {
		if entry.StockID != stockID {
			continue
		}
		rows = append(rows, entry)
	}
	slices.SortFunc(rows, func(a, b domain.PriceLog) int {
		if a.PostDate.Equal(b.PostDate) {
			return int(b.PriceLogID - a.PriceLogID)
		}
		if a.PostDate.After(b.PostDate) {
			return -1
		}
		return 1
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *Store) CreateTransaction(_ context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.transactions {
		if existing.MerchantID == tx.MerchantID && existing.AccountID == tx.AccountID {
			return nil, &store.UniqueViolationError{Kind: domain.KindTransaction, Fields: []string{"merchant_id", "account_id"}}
		}
	}

	tx.TransactionID = s.nextID(domain.KindTransaction)
	if tx.TransactionDateTime.IsZero() {
		tx.TransactionDateTime = time.Now().UTC()
	}
	s.transactions[tx.TransactionID] = tx
	created := tx
	return &created, nil
}

func (s *Store) GetTransaction(_ context.Context, id int64) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyTx := tx
	return &copyTx, nil
}

func (s *Store) ListTransactions(_ context.Context, filter store.TransactionFilter, page store.Page) ([]domain.Transaction, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.Transaction, 0, len(s.transactions))
	for _, id := range sortedIDs(s.transactions) {
		tx := s.transactions[id]
		if !transactionMatches(tx, filter) {
			continue
		}
		rows = append(rows, tx)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateTransaction(_ context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[tx.TransactionID]; !ok {
		return nil, store.ErrNotFound
	}
	for id, existing := range s.transactions {
		if id == tx.TransactionID {
			continue
		}
		if existing.MerchantID == tx.MerchantID && existing.AccountID == tx.AccountID {
			return nil, &store.UniqueViolationError{Kind: domain.KindTransaction, Fields: []string{"merchant_id", "account_id"}}
		}
	}
	s.transactions[tx.TransactionID] = tx
	updated := tx
	return &updated, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) GetTransactionStats(_ context.Context, filter store.TransactionFilter) (domain.TransactionStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.TransactionStats{CountByStatus: make(map[string]int64)}
	for _, tx := range s.transactions {
		if !transactionMatches(tx, filter) {
			continue
		}
		stats.TotalTransactions++
		stats.TotalAmountDue += tx.AmountDue
		stats.TotalDiscount += tx.Discount
		stats.CountByStatus[tx.Status]++
	}
	return stats, nil
}

func (s *Store) CreateOrder(_ context.Context, order domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.orders {
		if existing.TransactionID == order.TransactionID && existing.StockID == order.StockID {
			return nil, &store.UniqueViolationError{Kind: domain.KindOrder, Fields: []string{"transaction_id", "stock_id"}}
		}
	}

	order.OrderID = s.nextID(domain.KindOrder)
	s.orders[order.OrderID] = order
	created := order
	return &created, nil
}

func (s *Store) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyOrder := order
	return &copyOrder, nil
}

func (s *Store) ListOrders(_ context.Context, filter store.OrderFilter, page store.Page) ([]domain.Order, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.Order, 0, len(s.orders))
	for _, id := range sortedIDs(s.orders) {
		order := s.orders[id]
		if filter.TransactionID != 0 && order.TransactionID != filter.TransactionID {
			continue
		}
		if filter.StockID != 0 && order.StockID != filter.StockID {
			continue
		}
		rows = append(rows, order)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateOrder(_ context.Context, order domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.OrderID]; !ok {
		return nil, store.ErrNotFound
	}
	for id, existing := range s.orders {
		if id == order.OrderID {
			continue
		}
		if existing.TransactionID == order.TransactionID && existing.StockID == order.StockID {
			return nil, &store.UniqueViolationError{Kind: domain.KindOrder, Fields: []string{"transaction_id", "stock_id"}}
		}
	}
	s.orders[order.OrderID] = order
	updated := order
	return &updated, nil
}

func (s *Store) DeleteOrder(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *Store) CreatePayment(_ context.Context, payment domain.Payment) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.payments {
		if existing.TransactionID == payment.TransactionID {
			return nil, &store.UniqueViolationError{Kind: domain.KindPayment, Fields: []string{"transaction_id"}}
		}
	}

	payment.PaymentID = s.nextID(domain.KindPayment)
	s.payments[payment.PaymentID] = payment
	created := payment
	return &created, nil
}

func (s *Store) GetPayment(_ context.Context, id int64) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payment, ok := s.payments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyPayment := payment
	return &copyPayment, nil
}

func (s *Store) ListPayments(_ context.Context, filter store.PaymentFilter, page store.Page) ([]domain.Payment, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.Payment, 0, len(s.payments))
	for _, id := range sortedIDs(s.payments) {
		payment := s.payments[id]
		if filter.TransactionID != 0 && payment.TransactionID != filter.TransactionID {
			continue
		}
		rows = append(rows, payment)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdatePayment(_ context.Context, payment domain.Payment) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[payment.PaymentID]; !ok {
		return nil, store.ErrNotFound
	}
	for id, existing := range s.payments {
		if id == payment.PaymentID {
			continue
		}
		if existing.TransactionID == payment.TransactionID {
			return nil, &store.UniqueViolationError{Kind: domain.KindPayment, Fields: []string{"transaction_id"}}
		}
	}
	s.payments[payment.PaymentID] = payment
	updated := payment
	return &updated, nil
}

func (s *Store) DeletePayment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.payments, id)
	return nil
}

func (s *Store) CreatePaymentMethod(_ context.Context, method domain.PaymentMethod) (*domain.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	method.PaymentMethodID = s.nextID(domain.KindPaymentMethod)
	s.paymentMethods[method.PaymentMethodID] = method
	created := method
	return &created, nil
}

func (s *Store) GetPaymentMethod(_ context.Context, id int64) (*domain.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	method, ok := s.paymentMethods[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyMethod := method
	return &copyMethod, nil
}

func (s *Store) ListPaymentMethods(_ context.Context, filter store.PaymentMethodFilter, page store.Page) ([]domain.PaymentMethod, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.PaymentMethod, 0, len(s.paymentMethods))
	for _, id := range sortedIDs(s.paymentMethods) {
		method := s.paymentMethods[id]
		if filter.Search != "" && !containsFold(method.Description, filter.Search) {
			continue
		}
		if filter.Type != "" && method.Type != filter.Type {
			continue
		}
		rows = append(rows, method)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdatePaymentMethod(_ context.Context, method domain.PaymentMethod) (*domain.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.paymentMethods[method.PaymentMethodID]; !ok {
		return nil, store.ErrNotFound
	}
	s.paymentMethods[method.PaymentMethodID] = method
	updated := method
	return &updated, nil
}

func (s *Store) DeletePaymentMethod(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.paymentMethods[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.paymentMethods, id)
	return nil
}

func (s *Store) ListPaymentMethodTypes(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return distinct(s.paymentMethods, func(m domain.PaymentMethod) string { return m.Type }), nil
}

func (s *Store) CreatePaymentDetail(_ context.Context, detail domain.PaymentDetail) (*domain.PaymentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.paymentDetails {
		if existing.PaymentID == detail.PaymentID &&
			existing.PaymentMethodID == detail.PaymentMethodID &&
			existing.AccountID == detail.AccountID {
			return nil, &store.UniqueViolationError{Kind: domain.KindPaymentDetail, Fields: []string{"payment_id", "payment_method_id", "account_id"}}
		}
	}

	detail.PaymentDetailID = s.nextID(domain.KindPaymentDetail)
	s.paymentDetails[detail.PaymentDetailID] = detail
	created := detail
	return &created, nil
}

func (s *Store) GetPaymentDetail(_ context.Context, id int64) (*domain.PaymentDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	detail, ok := s.paymentDetails[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyDetail := detail
	return &copyDetail, nil
}

func (s *Store) ListPaymentDetails(_ context.Context, filter store.PaymentDetailFilter, page store.Page) ([]domain.PaymentDetail, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.PaymentDetail, 0, len(s.paymentDetails))
	for _, id := range sortedIDs(s.paymentDetails) {
		detail := s.paymentDetails[id]
		if filter.PaymentID != 0 && detail.PaymentID != filter.PaymentID {
			continue
		}
		if filter.PaymentMethodID != 0 && detail.PaymentMethodID != filter.PaymentMethodID {
			continue
		}
		if filter.Status != "" && detail.Status != filter.Status {
			continue
		}
		rows = append(rows, detail)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdatePaymentDetail(_ context.Context, detail domain.PaymentDetail) (*domain.PaymentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.paymentDetails[detail.PaymentDetailID]; !ok {
		return nil, store.ErrNotFound
	}
	for id, existing := range s.paymentDetails {
		if id == detail.PaymentDetailID {
			continue
		}
		if existing.PaymentID == detail.PaymentID &&
			existing.PaymentMethodID == detail.PaymentMethodID &&
			existing.AccountID == detail.AccountID {
			return nil, &store.UniqueViolationError{Kind: domain.KindPaymentDetail, Fields: []string{"payment_id", "payment_method_id", "account_id"}}
		}
	}
	s.paymentDetails[detail.PaymentDetailID] = detail
	updated := detail
	return &updated, nil
}

func (s *Store) DeletePaymentDetail(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.paymentDetails[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.paymentDetails, id)
	return nil
}

func (s *Store) CreateSupplierReturn(_ context.Context, ret domain.SupplierReturn) (*domain.SupplierReturn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.supplierReturns {
		if existing.SupplierID == ret.SupplierID &&
			existing.DeliveryDetailID == ret.DeliveryDetailID &&
			existing.AccountID == ret.AccountID {
			return nil, &store.UniqueViolationError{Kind: domain.KindSupplierReturn, Fields: []string{"supplier_id", "delivery_detail_id", "account_id"}}
		}
	}

	ret.SupplierReturnID = s.nextID(domain.KindSupplierReturn)
	s.supplierReturns[ret.SupplierReturnID] = ret
	created := ret
	return &created, nil
}

func (s *Store) GetSupplierReturn(_ context.Context, id int64) (*domain.SupplierReturn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ret, ok := s.supplierReturns[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyRet := ret
	return &copyRet, nil
}

func (s *Store) ListSupplierReturns(_ context.Context, filter store.SupplierReturnFilter, page store.Page) ([]domain.SupplierReturn, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.SupplierReturn, 0, len(s.supplierReturns))
	for _, id := range sortedIDs(s.supplierReturns) {
		ret := s.supplierReturns[id]
		if filter.SupplierID != 0 && ret.SupplierID != filter.SupplierID {
			continue
		}
		if filter.DeliveryDetailID != 0 && ret.DeliveryDetailID != filter.DeliveryDetailID {
			continue
		}
		if filter.ActiveStatus != nil && ret.ActiveStatus != *filter.ActiveStatus {
			continue
		}
		rows = append(rows, ret)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateSupplierReturn(_ context.Context, ret domain.SupplierReturn) (*domain.SupplierReturn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.supplierReturns[ret.SupplierReturnID]; !ok {
		return nil, store.ErrNotFound
	}
	s.supplierReturns[ret.SupplierReturnID] = ret
	updated := ret
	return &updated, nil
}

func (s *Store) DeleteSupplierReturn(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.supplierReturns[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.supplierReturns, id)
	return nil
}

func (s *Store) CreateSupplierReturnLog(_ context.Context, entry domain.SupplierReturnLog) (*domain.SupplierReturnLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.SupplierReturnLogID = s.nextID(domain.KindSupplierReturnLog)
	if entry.DateTime.IsZero() {
		entry.DateTime = time.Now().UTC()
	}
	s.supplierReturnLogs[entry.SupplierReturnLogID] = entry
	created := entry
	return &created, nil
}

func (s *Store) GetSupplierReturnLog(_ context.Context, id int64) (*domain.SupplierReturnLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.supplierReturnLogs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyEntry := entry
	return &copyEntry, nil
}

func (s *Store) ListSupplierReturnLogs(_ context.Context, filter store.SupplierReturnLogFilter, page store.Page) ([]domain.SupplierReturnLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.SupplierReturnLog, 0, len(s.supplierReturnLogs))
	for _, id := range sortedIDs(s.supplierReturnLogs) {
		entry := s.supplierReturnLogs[id]
		if filter.SupplierReturnID != 0 && entry.SupplierReturnID != filter.SupplierReturnID {
			continue
		}
		rows = append(rows, entry)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) CreateMerchantReturn(_ context.Context, ret domain.MerchantReturn) (*domain.MerchantReturn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.merchantReturns {
		if existing.MerchantID == ret.MerchantID &&
			existing.OrderID == ret.OrderID &&
			existing.AccountID == ret.AccountID {
			return nil, &store.UniqueViolationError{Kind: domain.KindMerchantReturn, Fields: []string{"merchant_id", "order_id", "account_id"}}
		}
	}

	ret.MerchantReturnID = s.nextID(domain.KindMerchantReturn)
	s.merchantReturns[ret.MerchantReturnID] = ret
	created := ret
	return &created, nil
}

func (s *Store) GetMerchantReturn(_ context.Context, id int64) (*domain.MerchantReturn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ret, ok := s.merchantReturns[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyRet := ret
	return &copyRet, nil
}

func (s *Store) ListMerchantReturns(_ context.Context, filter store.MerchantReturnFilter, page store.Page) ([]domain.MerchantReturn, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.MerchantReturn, 0, len(s.merchantReturns))
	for _, id := range sortedIDs(s.merchantReturns) {
		ret := s.merchantReturns[id]
		if filter.MerchantID != 0 && ret.MerchantID != filter.MerchantID {
			continue
		}
		if filter.OrderID != 0 && ret.OrderID != filter.OrderID {
			continue
		}
		if filter.ActiveStatus != nil && ret.ActiveStatus != *filter.ActiveStatus {
			continue
		}
		rows = append(rows, ret)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateMerchantReturn(_ context.Context, ret domain.MerchantReturn) (*domain.MerchantReturn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.merchantReturns[ret.MerchantReturnID]; !ok {
		return nil, store.ErrNotFound
	}
	s.merchantReturns[ret.MerchantReturnID] = ret
	updated := ret
	return &updated, nil
}

func (s *Store) DeleteMerchantReturn(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.merchantReturns[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.merchantReturns, id)
	return nil
}

func (s *Store) CreateMerchantReturnLog(_ context.Context, entry domain.MerchantReturnLog) (*domain.MerchantReturnLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.MerchantReturnLogID = s.nextID(domain.KindMerchantReturnLog)
	if entry.DateTime.IsZero() {
		entry.DateTime = time.Now().UTC()
	}
	s.merchantReturnLogs[entry.MerchantReturnLogID] = entry
	created := entry
	return &created, nil
}

func (s *Store) GetMerchantReturnLog(_ context.Context, id int64) (*domain.MerchantReturnLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.merchantReturnLogs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyEntry := entry
	return &copyEntry, nil
}

func (s *Store) ListMerchantReturnLogs(_ context.Context, filter store.MerchantReturnLogFilter, page store.Page) ([]domain.MerchantReturnLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.MerchantReturnLog, 0, len(s.merchantReturnLogs))
	for _, id := range sortedIDs(s.merchantReturnLogs) {
		entry := s.merchantReturnLogs[id]
		if filter.MerchantReturnID != 0 && entry.MerchantReturnID != filter.MerchantReturnID {
			continue
		}
		rows = append(rows, entry)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) CreateLog(_ context.Context, entry domain.Log) (*domain.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.LogID = s.nextID(domain.KindLog)
	if entry.DateTime.IsZero() {
		entry.DateTime = time.Now().UTC()
	}
	s.logs[entry.LogID] = entry
	created := entry
	return &created, nil
}

func (s *Store) GetLog(_ context.Context, id int64) (*domain.Log, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.logs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copyEntry := entry
	return &copyEntry, nil
}

func (s *Store) ListLogs(_ context.Context, filter store.LogFilter, page store.Page) ([]domain.Log, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.Log, 0, len(s.logs))
	for _, id := range sortedIDs(s.logs) {
		entry := s.logs[id]
		if filter.AccountID != 0 && entry.AccountID != filter.AccountID {
			continue
		}
		if filter.Module != "" && entry.Module != filter.Module {
			continue
		}
		if filter.Event != "" && entry.Event != filter.Event {
			continue
		}
		if filter.DateFrom != "" && entry.DateTime.Format("2006-01-02") < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && entry.DateTime.Format("2006-01-02") > filter.DateTo {
			continue
		}
		rows = append(rows, entry)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) DeleteLog(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logs[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.logs, id)
	return nil
}

func (s *Store) ListLogModules(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return distinct(s.logs, func(l domain.Log) string { return l.Module }), nil
}

func (s *Store) ListLogEvents(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return distinct(s.logs, func(l domain.Log) string { return l.Event }), nil
}

func (s *Store) CreateSysSetting(_ context.Context, setting domain.SysSetting) (*domain.SysSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.sysSettings {
		if existing.Attribute == setting.Attribute {
			return nil, &store.UniqueViolationError{Kind: domain.KindSysSetting, Fields: []string{"attribute"}}
		}
	}

	setting.SysSettingID = s.nextID(domain.KindSysSetting)
	s.sysSettings[setting.SysSettingID] = setting
	created := setting
	return &created, nil
}

func (s *Store) GetSysSetting(_ context.Context, id int64) (*domain.SysSetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	setting, ok := s.sysSettings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copySetting := setting
	return &copySetting, nil
}

func (s *Store) GetSysSettingByAttribute(_ context.Context, attribute string) (*domain.SysSetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, setting := range s.sysSettings {
		if setting.Attribute == attribute {
			copySetting := setting
			return &copySetting, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListSysSettings(_ context.Context, filter store.SysSettingFilter, page store.Page) ([]domain.SysSetting, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.SysSetting, 0, len(s.sysSettings))
	for _, id := range sortedIDs(s.sysSettings) {
		setting := s.sysSettings[id]
		if filter.Search != "" && !containsFold(setting.Attribute, filter.Search) {
			continue
		}
		rows = append(rows, setting)
	}
	total := int64(len(rows))
	return pageWindow(rows, page.Normalize()), total, nil
}

func (s *Store) UpdateSysSetting(_ context.Context, setting domain.SysSetting) (*domain.SysSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sysSettings[setting.SysSettingID]; !ok {
		return nil, store.ErrNotFound
	}
	for id, existing := range s.sysSettings {
		if id == setting.SysSettingID {
			continue
		}
		if existing.Attribute == setting.Attribute {
			return nil, &store.UniqueViolationError{Kind: domain.KindSysSetting, Fields: []string{"attribute"}}
		}
	}
	s.sysSettings[setting.SysSettingID] = setting
	updated := setting
	return &updated, nil
}

func (s *Store) DeleteSysSetting(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sysSettings[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.sysSettings, id)
	return nil
}

func (s *Store) ListSysSettingAttributes(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return distinct(s.sysSettings, func(s domain.SysSetting) string { return s.Attribute }), nil
}

func transactionMatches(tx domain.Transaction, filter store.TransactionFilter) bool {
	if filter.MerchantID != 0 && tx.MerchantID != filter.MerchantID {
		return false
	}
	if filter.AccountID != 0 && tx.AccountID != filter.AccountID {
		return false
	}
	if filter.Status != "" && tx.Status != filter.Status {
		return false
	}
	if filter.DateFrom != "" && tx.TransactionDateTime.Format("2006-01-02") < filter.DateFrom {
		return false
	}
	if filter.DateTo != "" && tx.TransactionDateTime.Format("2006-01-02") > filter.DateTo {
		return false
	}
	return true
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func pageWindow[T any](rows []T, page store.Page) []T {
	offset := page.Offset()
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + page.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func distinct[T any](m map[int64]T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(m))
	values := make([]string, 0, len(m))
	for _, row := range m {
		v := key(row)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

func containsFold(s string, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func cloneEmployee(src domain.Employee) domain.Employee {
	dup := src
	if src.Permissions != nil {
		perms := make(map[string]bool, len(src.Permissions))
		for k, v := range src.Permissions {
			perms[k] = v
		}
		dup.Permissions = perms
	}
	return dup
}
