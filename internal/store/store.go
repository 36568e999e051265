package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bodega/backend/internal/domain"
)

var (
	// ErrNotFound reports that an id did not resolve to a row.
	ErrNotFound = errors.New("not found")
	// ErrNoChanges reports an update that supplied no differing fields. It is
	// distinct from ErrNotFound so callers can choose how to surface it.
	ErrNoChanges = errors.New("no changes applied")
	// ErrUnauthorized is returned on any login failure. Unknown username and
	// wrong password intentionally share this one value.
	ErrUnauthorized = errors.New("invalid credentials")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for a field.
func Invalid(field string, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// UniqueViolationError reports a write that collides with an existing row on
// one of the entity's unique keys.
type UniqueViolationError struct {
	Kind   domain.Kind
	Fields []string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s already exists for %s", e.Kind, strings.Join(e.Fields, ", "))
}

// ReferenceError reports a dangling foreign key on a write.
type ReferenceError struct {
	Kind domain.Kind
	ID   int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// ConflictError reports a delete refused because dependent rows exist.
type ConflictError struct {
	Kind      domain.Kind
	Dependent domain.Kind
	Count     int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot delete %s with existing %s rows", e.Kind, e.Dependent)
}

// Page carries one-based pagination parameters.
type Page struct {
	Number int
	Limit  int
}

// Normalize clamps page parameters to positive values with the collection
// defaults (page=1, limit=10).
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// TotalPages computes ceil(total/limit) for a normalized page.
func (p Page) TotalPages(total int64) int64 {
	if p.Limit < 1 {
		return 0
	}
	return (total + int64(p.Limit) - 1) / int64(p.Limit)
}

type EmployeeFilter struct {
	Search   string // substring on firstname/lastname
	Position string
}

type AccountFilter struct {
	Search   string // substring on username
	IsActive *bool
}

type SupplierFilter struct {
	Search string // substring on company_name
}

type MerchantFilter struct {
	Search string // substring on business_name/firstname/lastname
	Nature string
}

type ItemFilter struct {
	Search   string // substring on description/short_description
	Category string
}

type DeliveryFilter struct {
	SupplierID int64
	AccountID  int64
	Status     string
	DateFrom   string
	DateTo     string
}

type DeliveryDetailFilter struct {
	DeliveryID int64
	ItemID     int64
}

type DeliveryItemDetailFilter struct {
	DeliveryDetailID int64
}

type StockFilter struct {
	DeliveryDetailID int64
	AccountID        int64
}

type StockOnHandFilter struct {
	StockID int64
}

type PriceLogFilter struct {
	StockID   int64
	AccountID int64
	DateFrom  string
	DateTo    string
}

type TransactionFilter struct {
	MerchantID int64
	AccountID  int64
	Status     string
	DateFrom   string
	DateTo     string
}

type OrderFilter struct {
	TransactionID int64
	StockID       int64
}

type PaymentFilter struct {
	TransactionID int64
}

type PaymentMethodFilter struct {
	Search string // substring on description
	Type   string
}

type PaymentDetailFilter struct {
	PaymentID       int64
	PaymentMethodID int64
	Status          string
}

type SupplierReturnFilter struct {
	SupplierID       int64
	DeliveryDetailID int64
	ActiveStatus     *bool
}

type SupplierReturnLogFilter struct {
	SupplierReturnID int64
}

type MerchantReturnFilter struct {
	MerchantID   int64
	OrderID      int64
	ActiveStatus *bool
}

type MerchantReturnLogFilter struct {
	MerchantReturnID int64
}

type LogFilter struct {
	AccountID int64
	Module    string
	Event     string
	DateFrom  string
	DateTo    string
}

type SysSettingFilter struct {
	Search string // substring on attribute
}

/// Repository is the entity store: durable storage with identity assignment
// and column-level uniqueness enforcement. Cross-entity business rules
// (foreign keys, delete guards) live in the service layer, which drives them
// through ExistsByID and CountReferences.
type Repository interface {
	Ping(ctx context.Context) error

	// ExistsByID reports whether a row of the given kind exists.
	ExistsByID(ctx context.Context, kind domain.Kind, id int64) (bool, error)
	// CountReferences counts rows of child whose column equals id. Kind and
	// column pairs are whitelisted; anything else is an error.
	CountReferences(ctx context.Context, child domain.Kind, column string, id int64) (int64, error)

	CreateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter, page Page) ([]domain.Employee, int64, error)
	UpdateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	ListEmployeesWithoutAccounts(ctx context.Context) ([]domain.Employee, error)

	CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error)
	ListAccounts(ctx context.Context, filter AccountFilter, page Page) ([]domain.Account, int64, error)
	UpdateAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id int64) error

	CreateSupplier(ctx context.Context, supplier domain.Supplier) (*domain.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, filter SupplierFilter, page Page) ([]domain.Supplier, int64, error)
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error

	CreateMerchant(ctx context.Context, merchant domain.Merchant) (*domain.Merchant, error)
	GetMerchant(ctx context.Context, id int64) (*domain.Merchant, error)
	ListMerchants(ctx context.Context, filter MerchantFilter, page Page) ([]domain.Merchant, int64, error)
	UpdateMerchant(ctx context.Context, merchant domain.Merchant) (*domain.Merchant, error)
	DeleteMerchant(ctx context.Context, id int64) error
	ListMerchantNatures(ctx context.Context) ([]string, error)

	CreateItem(ctx context.Context, item domain.Item) (*domain.Item, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	ListItems(ctx context.Context, filter ItemFilter, page Page) ([]domain.Item, int64, error)
	UpdateItem(ctx context.Context, item domain.Item) (*domain.Item, error)
	DeleteItem(ctx context.Context, id int64) error

	CreateDelivery(ctx context.Context, delivery domain.Delivery) (*domain.Delivery, error)
	GetDelivery(ctx context.Context, id int64) (*domain.Delivery, error)
	ListDeliveries(ctx context.Context, filter DeliveryFilter, page Page) ([]domain.Delivery, int64, error)
	UpdateDelivery(ctx context.Context, delivery domain.Delivery) (*domain.Delivery, error)
	DeleteDelivery(ctx context.Context, id int64) error

	CreateDeliveryDetail(ctx context.Context, detail domain.DeliveryDetail) (*domain.DeliveryDetail, error)
	GetDeliveryDetail(ctx context.Context, id int64) (*domain.DeliveryDetail, error)
	ListDeliveryDetails(ctx context.Context, filter DeliveryDetailFilter, page Page) ([]domain.DeliveryDetail, int64, error)
	UpdateDeliveryDetail(ctx context.Context, detail domain.DeliveryDetail) (*domain.DeliveryDetail, error)
	DeleteDeliveryDetail(ctx context.Context, id int64) error

	CreateDeliveryItemDetail(ctx context.Context, detail domain.DeliveryItemDetail) (*domain.DeliveryItemDetail, error)
	GetDeliveryItemDetail(ctx context.Context, id int64) (*domain.DeliveryItemDetail, error)
	ListDeliveryItemDetails(ctx context.Context, filter DeliveryItemDetailFilter, page Page) ([]domain.DeliveryItemDetail, int64, error)
	UpdateDeliveryItemDetail(ctx context.Context, detail domain.DeliveryItemDetail) (*domain.DeliveryItemDetail, error)
	DeleteDeliveryItemDetail(ctx context.Context, id int64) error

	CreateStock(ctx context.Context, stock domain.Stock) (*domain.Stock, error)
	GetStock(ctx context.Context, id int64) (*domain.Stock, error)
	ListStocks(ctx context.Context, filter StockFilter, page Page) ([]domain.Stock, int64, error)
	// UpdateStockPrice changes the active markup/selling price of a stock and
	// appends exactly one PriceLog row in the same atomic operation.
	UpdateStockPrice(ctx context.Context, stockID int64, markUp float64, sellingPrice float64, accountID int64) (*domain.Stock, *domain.PriceLog, error)
	DeleteStock(ctx context.Context, id int64) error

	CreateStockOnHand(ctx context.Context, onHand domain.StockOnHand) (*domain.StockOnHand, error)
	GetStockOnHand(ctx context.Context, id int64) (*domain.StockOnHand, error)
	ListStockOnHand(ctx context.Context, filter StockOnHandFilter, page Page) ([]domain.StockOnHand, int64, error)
	UpdateStockOnHand(ctx context.Context, onHand domain.StockOnHand) (*domain.StockOnHand, error)
	DeleteStockOnHand(ctx context.Context, id int64) error
	GetStockOnHandStats(ctx context.Context) (domain.StockOnHandStats, error)

	GetPriceLog(ctx context.Context, id int64) (*domain.PriceLog, error)
	ListPriceLogs(ctx context.Context, filter PriceLogFilter, page Page) ([]domain.PriceLog, int64, error)
	ListPriceLogsByStock(ctx context.Context, stockID int64, limit int) ([]domain.PriceLog, error)

	CreateTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter, page Page) ([]domain.Transaction, int64, error)
	UpdateTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	GetTransactionStats(ctx context.Context, filter TransactionFilter) (domain.TransactionStats, error)

	CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter, page Page) ([]domain.Order, int64, error)
	UpdateOrder(ctx context.Context, order domain.Order) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error

	CreatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error)
	GetPayment(ctx context.Context, id int64) (*domain.Payment, error)
	ListPayments(ctx context.Context, filter PaymentFilter, page Page) ([]domain.Payment, int64, error)
	UpdatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id int64) error

	CreatePaymentMethod(ctx context.Context, method domain.PaymentMethod) (*domain.PaymentMethod, error)
	GetPaymentMethod(ctx context.Context, id int64) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, filter PaymentMethodFilter, page Page) ([]domain.PaymentMethod, int64, error)
	UpdatePaymentMethod(ctx context.Context, method domain.PaymentMethod) (*domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id int64) error
	ListPaymentMethodTypes(ctx context.Context) ([]string, error)

	CreatePaymentDetail(ctx context.Context, detail domain.PaymentDetail) (*domain.PaymentDetail, error)
	GetPaymentDetail(ctx context.Context, id int64) (*domain.PaymentDetail, error)
	ListPaymentDetails(ctx context.Context, filter PaymentDetailFilter, page Page) ([]domain.PaymentDetail, int64, error)
	UpdatePaymentDetail(ctx context.Context, detail domain.PaymentDetail) (*domain.PaymentDetail, error)
	DeletePaymentDetail(ctx context.Context, id int64) error

	CreateSupplierReturn(ctx context.Context, ret domain.SupplierReturn) (*domain.SupplierReturn, error)
	GetSupplierReturn(ctx context.Context, id int64) (*domain.SupplierReturn, error)
	ListSupplierReturns(ctx context.Context, filter SupplierReturnFilter, page Page) ([]domain.SupplierReturn, int64, error)
	UpdateSupplierReturn(ctx context.Context, ret domain.SupplierReturn) (*domain.SupplierReturn, error)
	DeleteSupplierReturn(ctx context.Context, id int64) error

	CreateSupplierReturnLog(ctx context.Context, entry domain.SupplierReturnLog) (*domain.SupplierReturnLog, error)
	GetSupplierReturnLog(ctx context.Context, id int64) (*domain.SupplierReturnLog, error)
	ListSupplierReturnLogs(ctx context.Context, filter SupplierReturnLogFilter, page Page) ([]domain.SupplierReturnLog, int64, error)

	CreateMerchantReturn(ctx context.Context, ret domain.MerchantReturn) (*domain.MerchantReturn, error)
	GetMerchantReturn(ctx context.Context, id int64) (*domain.MerchantReturn, error)
	ListMerchantReturns(ctx context.Context, filter MerchantReturnFilter, page Page) ([]domain.MerchantReturn, int64, error)
	UpdateMerchantReturn(ctx context.Context, ret domain.MerchantReturn) (*domain.MerchantReturn, error)
	DeleteMerchantReturn(ctx context.Context, id int64) error

	CreateMerchantReturnLog(ctx context.Context, entry domain.MerchantReturnLog) (*domain.MerchantReturnLog, error)
	GetMerchantReturnLog(ctx context.Context, id int64) (*domain.MerchantReturnLog, error)
	ListMerchantReturnLogs(ctx context.Context, filter MerchantReturnLogFilter, page Page) ([]domain.MerchantReturnLog, int64, error)

	CreateLog(ctx context.Context, entry domain.Log) (*domain.Log, error)
	GetLog(ctx context.Context, id int64) (*domain.Log, error)
	ListLogs(ctx context.Context, filter LogFilter, page Page) ([]domain.Log, int64, error)
	DeleteLog(ctx context.Context, id int64) error
	ListLogModules(ctx context.Context) ([]string, error)
	ListLogEvents(ctx context.Context) ([]string, error)

	CreateSysSetting(ctx context.Context, setting domain.SysSetting) (*domain.SysSetting, error)
	GetSysSetting(ctx context.Context, id int64) (*domain.SysSetting, error)
	GetSysSettingByAttribute(ctx context.Context, attribute string) (*domain.SysSetting, error)
	ListSysSettings(ctx context.Context, filter SysSettingFilter, page Page) ([]domain.SysSetting, int64, error)
	UpdateSysSetting(ctx context.Context, setting domain.SysSetting) (*domain.SysSetting, error)
	DeleteSysSetting(ctx context.Context, id int64) error
	ListSysSettingAttributes(ctx context.Context) ([]string, error)
}
