package domain

import "time"

// Kind identifies an entity type. The integrity rules (foreign-key checks,
// delete guards) are declared against kinds so they can be evaluated
// generically against any Repository implementation.
type Kind string

const (
	KindEmployee           Kind = "employee"
	KindAccount            Kind = "account"
	KindSupplier           Kind = "supplier"
	KindMerchant           Kind = "merchant"
	KindItem               Kind = "item"
	KindDelivery           Kind = "delivery"
	KindDeliveryDetail     Kind = "delivery_detail"
	KindDeliveryItemDetail Kind = "delivery_item_detail"
	KindStock              Kind = "stock"
	KindStockOnHand        Kind = "stock_on_hand"
	KindPriceLog           Kind = "price_log"
	KindTransaction        Kind = "transaction"
	KindOrder              Kind = "order"
	KindPayment            Kind = "payment"
	KindPaymentMethod      Kind = "payment_method"
	KindPaymentDetail      Kind = "payment_detail"
	KindSupplierReturn     Kind = "supplier_return"
	KindSupplierReturnLog  Kind = "supplier_return_log"
	KindMerchantReturn     Kind = "merchant_return"
	KindMerchantReturnLog  Kind = "merchant_return_log"
	KindLog                Kind = "log"
	KindSysSetting         Kind = "sys_setting"
)

const (
	DeliveryStatusDraft     = "Draft"
	DeliveryStatusFinalized = "Finalized"
)

const (
	TransactionStatusActive = "Active"
	TransactionStatusDraft  = "Draft"
	TransactionStatusVoid   = "Void"
)

const (
	PaymentDetailStatusActive = "Active"
	PaymentDetailStatusVoid   = "Void"
)

type Employee struct {
	EmployeeID  int64           `json:"employee_id"`
	Firstname   string          `json:"firstname"`
	Lastname    string          `json:"lastname"`
	Position    string          `json:"position"`
	Permissions map[string]bool `json:"permissions"`
}

type EmployeeUpdateRequest struct {
	Firstname   *string          `json:"firstname,omitempty"`
	Lastname    *string          `json:"lastname,omitempty"`
	Position    *string          `json:"position,omitempty"`
	Permissions *map[string]bool `json:"permissions,omitempty"`
}

// Account carries credentials for one Employee. The password column holds a
// bcrypt hash and is never serialized.
type Account struct {
	AccountID  int64  `json:"account_id"`
	EmployeeID int64  `json:"employee_id"`
	Username   string `json:"username"`
	Password   string `json:"-"`
	IsActive   bool   `json:"is_active"`
}

type AccountCreateRequest struct {
	EmployeeID int64  `json:"employee_id"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

type AccountUpdateRequest struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	ExpiresAt   string  `json:"expires_at"`
	Account     Account `json:"account"`
}

// Actor is the authenticated account attached to a request context.
type Actor struct {
	AccountID int64
	Username  string
}

type Supplier struct {
	SupplierID     int64  `json:"supplier_id"`
	CompanyName    string `json:"company_name"`
	Address        string `json:"address"`
	ContactDetails string `json:"contact_details"`
}

type SupplierUpdateRequest struct {
	CompanyName    *string `json:"company_name,omitempty"`
	Address        *string `json:"address,omitempty"`
	ContactDetails *string `json:"contact_details,omitempty"`
}

type Merchant struct {
	MerchantID   int64  `json:"merchant_id"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	Address      string `json:"address"`
	BusinessName string `json:"business_name"`
	Nature       string `json:"nature"`
}

type MerchantUpdateRequest struct {
	Firstname    *string `json:"firstname,omitempty"`
	Lastname     *string `json:"lastname,omitempty"`
	Address      *string `json:"address,omitempty"`
	BusinessName *string `json:"business_name,omitempty"`
	Nature       *string `json:"nature,omitempty"`
}

type Item struct {
	ItemID            int64  `json:"item_id"`
	Description       string `json:"description"`
	ShortDescription  string `json:"short_description"`
	Category          string `json:"category"`
	Unit              string `json:"unit"`
	ReorderLevelUpper int    `json:"reorder_level_upper"`
	ReorderLevelLower int    `json:"reorder_level_lower"`
}

type ItemUpdateRequest struct {
	Description       *string `json:"description,omitempty"`
	ShortDescription  *string `json:"short_description,omitempty"`
	Category          *string `json:"category,omitempty"`
	Unit              *string `json:"unit,omitempty"`
	ReorderLevelUpper *int    `json:"reorder_level_upper,omitempty"`
	ReorderLevelLower *int    `json:"reorder_level_lower,omitempty"`
}

type Delivery struct {
	DeliveryID     int64     `json:"delivery_id"`
	SupplierID     int64     `json:"supplier_id"`
	DRNumber       string    `json:"dr_number"`
	Date           string    `json:"date"`
	DeliveryBox    int       `json:"delivery_box"`
	DeliveryWeight float64   `json:"delivery_weight"`
	ActualBox      int       `json:"actual_box"`
	ActualWeight   float64   `json:"actual_weight"`
	TotalAmount    float64   `json:"total_amount"`
	Status         string    `json:"status"`
	AccountID      int64     `json:"account_id"`
	CreatedAt      time.Time `json:"created_at"`
}

type DeliveryUpdateRequest struct {
	DRNumber       *string  `json:"dr_number,omitempty"`
	Date           *string  `json:"date,omitempty"`
	DeliveryBox    *int     `json:"delivery_box,omitempty"`
	DeliveryWeight *float64 `json:"delivery_weight,omitempty"`
	ActualBox      *int     `json:"actual_box,omitempty"`
	ActualWeight   *float64 `json:"actual_weight,omitempty"`
	TotalAmount    *float64 `json:"total_amount,omitempty"`
	Status         *string  `json:"status,omitempty"`
}

type DeliveryDetail struct {
	DeliveryDetailID int64   `json:"delivery_detail_id"`
	DeliveryID       int64   `json:"delivery_id"`
	ItemID           int64   `json:"item_id"`
	DeliveryBox      int     `json:"delivery_box"`
	DeliveryWeight   float64 `json:"delivery_weight"`
	ActualBox        int     `json:"actual_box"`
	ActualWeight     float64 `json:"actual_weight"`
	Capital          float64 `json:"capital"`
}

type DeliveryDetailUpdateRequest struct {
	DeliveryBox    *int     `json:"delivery_box,omitempty"`
	DeliveryWeight *float64 `json:"delivery_weight,omitempty"`
	ActualBox      *int     `json:"actual_box,omitempty"`
	ActualWeight   *float64 `json:"actual_weight,omitempty"`
	Capital        *float64 `json:"capital,omitempty"`
}

type DeliveryItemDetail struct {
	DeliveryItemDetailID int64   `json:"delivery_item_detail_id"`
	DeliveryDetailID     int64   `json:"delivery_detail_id"`
	BoxCode              string  `json:"box_code"`
	DeliveryWeight       float64 `json:"delivery_weight"`
	ActualWeight         float64 `json:"actual_weight"`
}

type DeliveryItemDetailUpdateRequest struct {
	BoxCode        *string  `json:"box_code,omitempty"`
	DeliveryWeight *float64 `json:"delivery_weight,omitempty"`
	ActualWeight   *float64 `json:"actual_weight,omitempty"`
}

// Stock is a priced, sellable lot derived from one delivery line.
type Stock struct {
	StockID            int64   `json:"stock_id"`
	DeliveryDetailID   int64   `json:"delivery_detail_id"`
	ActiveMarkup       float64 `json:"active_markup"`
	ActiveSellingPrice float64 `json:"active_selling_price"`
	AccountID          int64   `json:"account_id"`
}

type StockUpdateRequest struct {
	ActiveMarkup       *float64 `json:"active_markup,omitempty"`
	ActiveSellingPrice *float64 `json:"active_selling_price,omitempty"`
}

type StockOnHand struct {
	StockOnHandID int64   `json:"stock_on_hand_id"`
	StockID       int64   `json:"stock_id"`
	NumberOfBox   int     `json:"number_of_box"`
	Quantity      float64 `json:"quantity"`
}

type StockOnHandUpdateRequest struct {
	NumberOfBox *int     `json:"number_of_box,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
}

// PriceLog is an append-only audit row capturing a price change on a Stock.
type PriceLog struct {
	PriceLogID         int64     `json:"price_log_id"`
	StockID            int64     `json:"stock_id"`
	PostDate           time.Time `json:"post_date"`
	ActiveMarkUp       float64   `json:"active_mark_up"`
	ActiveSellingPrice float64   `json:"active_selling_price"`
	AccountID          int64     `json:"account_id"`
}

type PriceUpdate struct {
	StockID            int64   `json:"stock_id"`
	ActiveMarkUp       float64 `json:"active_mark_up"`
	ActiveSellingPrice float64 `json:"active_selling_price"`
}

type BulkPriceUpdateRequest struct {
	Updates   []PriceUpdate `json:"updates"`
	AccountID int64         `json:"account_id"`
}

type BulkPriceUpdateFailure struct {
	StockID int64  `json:"stock_id"`
	Reason  string `json:"reason"`
}

type BulkPriceUpdateResponse struct {
	UpdatedCount int                      `json:"updated_count"`
	Failures     []BulkPriceUpdateFailure `json:"failures,omitempty"`
}

type Transaction struct {
	TransactionID       int64     `json:"transaction_id"`
	MerchantID          int64     `json:"merchant_id"`
	TransactionDateTime time.Time `json:"transaction_date_time"`
	AmountDue           float64   `json:"amount_due"`
	Discount            float64   `json:"discount"`
	Status              string    `json:"status"`
	AccountID           int64     `json:"account_id"`
}

type TransactionUpdateRequest struct {
	AmountDue *float64 `json:"amount_due,omitempty"`
	Discount  *float64 `json:"discount,omitempty"`
	Status    *string  `json:"status,omitempty"`
}

type Order struct {
	OrderID       int64   `json:"order_id"`
	TransactionID int64   `json:"transaction_id"`
	StockID       int64   `json:"stock_id"`
	NumberOfBox   int     `json:"number_of_box"`
	Quantity      float64 `json:"quantity"`
	UnitCost      float64 `json:"unit_cost"`
	Amount        float64 `json:"amount"`
	Discount      float64 `json:"discount"`
}

type OrderUpdateRequest struct {
	NumberOfBox *int     `json:"number_of_box,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitCost    *float64 `json:"unit_cost,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Discount    *float64 `json:"discount,omitempty"`
}

type Payment struct {
	PaymentID        int64   `json:"payment_id"`
	TransactionID    int64   `json:"transaction_id"`
	TotalPayments    float64 `json:"total_payments"`
	AvailableBalance float64 `json:"available_balance"`
}

type PaymentUpdateRequest struct {
	TotalPayments    *float64 `json:"total_payments,omitempty"`
	AvailableBalance *float64 `json:"available_balance,omitempty"`
}

type PaymentMethod struct {
	PaymentMethodID  int64  `json:"payment_method_id"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	Type             string `json:"type"`
}

type PaymentMethodUpdateRequest struct {
	Description      *string `json:"description,omitempty"`
	ShortDescription *string `json:"short_description,omitempty"`
	Type             *string `json:"type,omitempty"`
}

type PaymentDetail struct {
	PaymentDetailID int64   `json:"payment_detail_id"`
	PaymentID       int64   `json:"payment_id"`
	InvoiceNumber   int     `json:"invoice_number"`
	AmountDue       float64 `json:"amount_due"`
	PaymentMethodID int64   `json:"payment_method_id"`
	Balance         float64 `json:"balance"`
	Status          string  `json:"status"`
	Remarks         string  `json:"remarks"`
	AccountID       int64   `json:"account_id"`
}

type PaymentDetailUpdateRequest struct {
	InvoiceNumber *int     `json:"invoice_number,omitempty"`
	AmountDue     *float64 `json:"amount_due,omitempty"`
	Balance       *float64 `json:"balance,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Remarks       *string  `json:"remarks,omitempty"`
}

type SupplierReturn struct {
	SupplierReturnID int64   `json:"supplier_return_id"`
	SupplierID       int64   `json:"supplier_id"`
	DeliveryDetailID int64   `json:"delivery_detail_id"`
	NumberOfBox      int     `json:"number_of_box"`
	Quantity         float64 `json:"quantity"`
	ActiveStatus     bool    `json:"active_status"`
	AccountID        int64   `json:"account_id"`
}

type SupplierReturnUpdateRequest struct {
	NumberOfBox  *int     `json:"number_of_box,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty"`
	ActiveStatus *bool    `json:"active_status,omitempty"`
}

type SupplierReturnLog struct {
	SupplierReturnLogID int64     `json:"supplier_return_log_id"`
	SupplierReturnID    int64     `json:"supplier_return_id"`
	Status              string    `json:"status"`
	DateTime            time.Time `json:"date_time"`
	AccountID           int64     `json:"account_id"`
}

type MerchantReturn struct {
	MerchantReturnID int64   `json:"merchant_return_id"`
	MerchantID       int64   `json:"merchant_id"`
	OrderID          int64   `json:"order_id"`
	NumberOfBox      int     `json:"number_of_box"`
	Quantity         float64 `json:"quantity"`
	ActiveStatus     bool    `json:"active_status"`
	AccountID        int64   `json:"account_id"`
}

type MerchantReturnUpdateRequest struct {
	NumberOfBox  *int     `json:"number_of_box,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty"`
	ActiveStatus *bool    `json:"active_status,omitempty"`
}

type MerchantReturnLog struct {
	MerchantReturnLogID int64     `json:"merchant_return_log_id"`
	MerchantReturnID    int64     `json:"merchant_return_id"`
	Status              string    `json:"status"`
	DateTime            time.Time `json:"date_time"`
	AccountID           int64     `json:"account_id"`
}

// Log is an append-only audit event written by mutating operations.
type Log struct {
	LogID     int64     `json:"log_id"`
	AccountID int64     `json:"account_id"`
	Module    string    `json:"module"`
	Event     string    `json:"event"`
	DateTime  time.Time `json:"date_time"`
}

// SysSetting is a flat attribute→value config row. The attribute name acts as
// an alternate key alongside the numeric id.
type SysSetting struct {
	SysSettingID int64  `json:"sys_setting_id"`
	Attribute    string `json:"attribute"`
	Value        string `json:"value"`
}

type SysSettingUpdateRequest struct {
	Attribute *string `json:"attribute,omitempty"`
	Value     *string `json:"value,omitempty"`
}

// StockOnHandStats is the grouped summary for the stock-on-hand collection.
type StockOnHandStats struct {
	TotalRows     int64   `json:"total_rows"`
	TotalBoxes    int64   `json:"total_boxes"`
	TotalQuantity float64 `json:"total_quantity"`
	MinQuantity   float64 `json:"min_quantity"`
	MaxQuantity   float64 `json:"max_quantity"`
	AvgQuantity   float64 `json:"avg_quantity"`
}

// TransactionStats summarises transactions by status plus overall totals.
type TransactionStats struct {
	TotalTransactions int64            `json:"total_transactions"`
	TotalAmountDue    float64          `json:"total_amount_due"`
	TotalDiscount     float64          `json:"total_discount"`
	CountByStatus     map[string]int64 `json:"count_by_status"`
}
