// Package postgres is the durable Repository backed by PostgreSQL through
// database/sql and the pgx stdlib driver. Unique indexes in the schema are
// the source of truth for uniqueness; violations are translated to
// store.UniqueViolationError at this boundary.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"bodega/backend/internal/domain"
	"bodega/backend/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// kindTables whitelists the table and id column per kind so the generic
// existence/reference queries never interpolate caller-supplied names.
var kindTables = map[domain.Kind]struct {
	table    string
	idColumn string
}{
	domain.KindEmployee:           {"employees", "employee_id"},
	domain.KindAccount:            {"accounts", "account_id"},
	domain.KindSupplier:           {"suppliers", "supplier_id"},
	domain.KindMerchant:           {"merchants", "merchant_id"},
	domain.KindItem:               {"items", "item_id"},
	domain.KindDelivery:           {"deliveries", "delivery_id"},
	domain.KindDeliveryDetail:     {"delivery_details", "delivery_detail_id"},
	domain.KindDeliveryItemDetail: {"delivery_item_details", "delivery_item_detail_id"},
	domain.KindStock:              {"stocks", "stock_id"},
	domain.KindStockOnHand:        {"stock_on_hand", "stock_on_hand_id"},
	domain.KindPriceLog:           {"price_logs", "price_log_id"},
	domain.KindTransaction:        {"transactions", "transaction_id"},
	domain.KindOrder:              {"orders", "order_id"},
	domain.KindPayment:            {"payments", "payment_id"},
	domain.KindPaymentMethod:      {"payment_methods", "payment_method_id"},
	domain.KindPaymentDetail:      {"payment_details", "payment_detail_id"},
	domain.KindSupplierReturn:     {"supplier_returns", "supplier_return_id"},
	domain.KindSupplierReturnLog:  {"supplier_return_logs", "supplier_return_log_id"},
	domain.KindMerchantReturn:     {"merchant_returns", "merchant_return_id"},
	domain.KindMerchantReturnLog:  {"merchant_return_logs", "merchant_return_log_id"},
	domain.KindLog:                {"logs", "log_id"},
	domain.KindSysSetting:         {"sys_settings", "sys_setting_id"},
}

// referenceColumns whitelists which foreign-key columns may be counted per
// child kind.
var referenceColumns = map[domain.Kind][]string{
	domain.KindAccount:            {"employee_id"},
	domain.KindDelivery:           {"supplier_id", "account_id"},
	domain.KindDeliveryDetail:     {"delivery_id", "item_id"},
	domain.KindDeliveryItemDetail: {"delivery_detail_id"},
	domain.KindStock:              {"delivery_detail_id"},
	domain.KindStockOnHand:        {"stock_id"},
	domain.KindTransaction:        {"merchant_id"},
	domain.KindOrder:              {"transaction_id", "stock_id"},
	domain.KindPayment:            {"transaction_id"},
	domain.KindPaymentDetail:      {"payment_id", "payment_method_id"},
	domain.KindSupplierReturn:     {"supplier_id", "delivery_detail_id"},
	domain.KindMerchantReturn:     {"merchant_id", "order_id"},
}

func (s *Store) ExistsByID(ctx context.Context, kind domain.Kind, id int64) (bool, error) {
	ref, ok := kindTables[kind]
	if !ok {
		return false, fmt.Errorf("unknown kind %q", kind)
	}
	var exists bool
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, ref.table, ref.idColumn),
		id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) CountReferences(ctx context.Context, child domain.Kind, column string, id int64) (int64, error) {
	ref, ok := kindTables[child]
	if !ok {
		return 0, fmt.Errorf("unknown kind %q", child)
	}
	allowed := false
	for _, c := range referenceColumns[child] {
		if c == column {
			allowed = true
			break
		}
	}
	if !allowed {
		return 0, fmt.Errorf("unsupported reference count %s.%s", child, column)
	}
	var count int64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, ref.table, column),
		id).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) CreateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error) {
	permissions, err := json.Marshal(employee.Permissions)
	if err != nil {
		return nil, err
	}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO employees (firstname, lastname, position, permissions)
		VALUES ($1,$2,$3,$4)
		RETURNING employee_id
	`, employee.Firstname, employee.Lastname, employee.Position, permissions).Scan(&employee.EmployeeID)
	if err != nil {
		return nil, err
	}
	created := employee
	return &created, nil
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	var employee domain.Employee
	var permissions []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT employee_id, firstname, lastname, position, permissions
		FROM employees
		WHERE employee_id = $1
	`, id).Scan(&employee.EmployeeID, &employee.Firstname, &employee.Lastname, &employee.Position, &permissions)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if len(permissions) > 0 {
		if err := json.Unmarshal(permissions, &employee.Permissions); err != nil {
			return nil, err
		}
	}
	return &employee, nil
}

func (s *Store) ListEmployees(ctx context.Context, filter store.EmployeeFilter, page store.Page) ([]domain.Employee, int64, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf(`(firstname || ' ' || lastname) ILIKE $%d`, len(args)))
	}
	if filter.Position != "" {
		args = append(args, filter.Position)
		where = append(where, fmt.Sprintf(`position = $%d`, len(args)))
	}

	from := `FROM employees` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT employee_id, firstname, lastname, position, permissions
		%s
		ORDER BY employee_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0, page.Limit)
	for rows.Next() {
		var employee domain.Employee
		var permissions []byte
		if err := rows.Scan(&employee.EmployeeID, &employee.Firstname, &employee.Lastname, &employee.Position, &permissions); err != nil {
			return nil, 0, err
		}
		if len(permissions) > 0 {
			if err := json.Unmarshal(permissions, &employee.Permissions); err != nil {
				return nil, 0, err
			}
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error) {
	permissions, err := json.Marshal(employee.Permissions)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE employees
		SET firstname = $2, lastname = $3, position = $4, permissions = $5
		WHERE employee_id = $1
	`, employee.EmployeeID, employee.Firstname, employee.Lastname, employee.Position, permissions)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := employee
	return &updated, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE employee_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) ListEmployeesWithoutAccounts(ctx context.Context) ([]domain.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.employee_id, e.firstname, e.lastname, e.position, e.permissions
		FROM employees e
		LEFT JOIN accounts a ON a.employee_id = e.employee_id
		WHERE a.account_id IS NULL
		ORDER BY e.employee_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0, 16)
	for rows.Next() {
		var employee domain.Employee
		var permissions []byte
		if err := rows.Scan(&employee.EmployeeID, &employee.Firstname, &employee.Lastname, &employee.Position, &permissions); err != nil {
			return nil, err
		}
		if len(permissions) > 0 {
			if err := json.Unmarshal(permissions, &employee.Permissions); err != nil {
				return nil, err
			}
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *Store) CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (employee_id, username, password, is_active)
		VALUES ($1,$2,$3,$4)
		RETURNING account_id
	`, account.EmployeeID, account.Username, account.Password, account.IsActive).Scan(&account.AccountID)
	if err != nil {
		return nil, accountUnique(err)
	}
	created := account
	return &created, nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	var account domain.Account
	err := s.db.QueryRowContext(ctx, `
		SELECT account_id, employee_id, username, password, is_active
		FROM accounts
		WHERE account_id = $1
	`, id).Scan(&account.AccountID, &account.EmployeeID, &account.Username, &account.Password, &account.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var account domain.Account
	err := s.db.QueryRowContext(ctx, `
		SELECT account_id, employee_id, username, password, is_active
		FROM accounts
		WHERE username = $1
	`, username).Scan(&account.AccountID, &account.EmployeeID, &account.Username, &account.Password, &account.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (s *Store) ListAccounts(ctx context.Context, filter store.AccountFilter, page store.Page) ([]domain.Account, int64, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf(`username ILIKE $%d`, len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where = append(where, fmt.Sprintf(`is_active = $%d`, len(args)))
	}

	from := `FROM accounts` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT account_id, employee_id, username, password, is_active
		%s
		ORDER BY account_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, page.Limit)
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(&account.AccountID, &account.EmployeeID, &account.Username, &account.Password, &account.IsActive); err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

func (s *Store) UpdateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET employee_id = $2, username = $3, password = $4, is_active = $5
		WHERE account_id = $1
	`, account.AccountID, account.EmployeeID, account.Username, account.Password, account.IsActive)
	if err != nil {
		return nil, accountUnique(err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := account
	return &updated, nil
}

func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE account_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) CreateSupplier(ctx context.Context, supplier domain.Supplier) (*domain.Supplier, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO suppliers (company_name, address, contact_details)
		VALUES ($1,$2,$3)
		RETURNING supplier_id
	`, supplier.CompanyName, supplier.Address, supplier.ContactDetails).Scan(&supplier.SupplierID)
	if err != nil {
		return nil, err
	}
	created := supplier
	return &created, nil
}

func (s *Store) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := s.db.QueryRowContext(ctx, `
		SELECT supplier_id, company_name, address, contact_details
		FROM suppliers
		WHERE supplier_id = $1
	`, id).Scan(&supplier.SupplierID, &supplier.CompanyName, &supplier.Address, &supplier.ContactDetails)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (s *Store) ListSuppliers(ctx context.Context, filter store.SupplierFilter, page store.Page) ([]domain.Supplier, int64, error) {
	where := make([]string, 0, 1)
	args := make([]any, 0, 3)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf(`company_name ILIKE $%d`, len(args)))
	}

	from := `FROM suppliers` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT supplier_id, company_name, address, contact_details
		%s
		ORDER BY supplier_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	suppliers := make([]domain.Supplier, 0, page.Limit)
	for rows.Next() {
		var supplier domain.Supplier
		if err := rows.Scan(&supplier.SupplierID, &supplier.CompanyName, &supplier.Address, &supplier.ContactDetails); err != nil {
			return nil, 0, err
		}
		suppliers = append(suppliers, supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return suppliers, total, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, supplier domain.Supplier) (*domain.Supplier, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE suppliers
		SET company_name = $2, address = $3, contact_details = $4
		WHERE supplier_id = $1
	`, supplier.SupplierID, supplier.CompanyName, supplier.Address, supplier.ContactDetails)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := supplier
	return &updated, nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM suppliers WHERE supplier_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) CreateMerchant(ctx context.Context, merchant domain.Merchant) (*domain.Merchant, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO merchants (firstname, lastname, address, business_name, nature)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING merchant_id
	`, merchant.Firstname, merchant.Lastname, merchant.Address, merchant.BusinessName, merchant.Nature).Scan(&merchant.MerchantID)
	if err != nil {
		return nil, err
	}
	created := merchant
	return &created, nil
}

func (s *Store) GetMerchant(ctx context.Context, id int64) (*domain.Merchant, error) {
	var merchant domain.Merchant
	err := s.db.QueryRowContext(ctx, `
		SELECT merchant_id, firstname, lastname, address, business_name, nature
		FROM merchants
		WHERE merchant_id = $1
	`, id).Scan(&merchant.MerchantID, &merchant.Firstname, &merchant.Lastname, &merchant.Address, &merchant.BusinessName, &merchant.Nature)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &merchant, nil
}

func (s *Store) ListMerchants(ctx context.Context, filter store.MerchantFilter, page store.Page) ([]domain.Merchant, int64, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf(`(business_name ILIKE $%d OR (firstname || ' ' || lastname) ILIKE $%d)`, len(args), len(args)))
	}
	if filter.Nature != "" {
		args = append(args, filter.Nature)
		where = append(where, fmt.Sprintf(`nature = $%d`, len(args)))
	}

	from := `FROM merchants` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT merchant_id, firstname, lastname, address, business_name, nature
		%s
		ORDER BY merchant_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	merchants := make([]domain.Merchant, 0, page.Limit)
	for rows.Next() {
		var merchant domain.Merchant
		if err := rows.Scan(&merchant.MerchantID, &merchant.Firstname, &merchant.Lastname, &merchant.Address, &merchant.BusinessName, &merchant.Nature); err != nil {
			return nil, 0, err
		}
		merchants = append(merchants, merchant)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return merchants, total, nil
}

func (s *Store) UpdateMerchant(ctx context.Context, merchant domain.Merchant) (*domain.Merchant, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE merchants
		SET firstname = $2, lastname = $3, address = $4, business_name = $5, nature = $6
		WHERE merchant_id = $1
	`, merchant.MerchantID, merchant.Firstname, merchant.Lastname, merchant.Address, merchant.BusinessName, merchant.Nature)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := merchant
	return &updated, nil
}

func (s *Store) DeleteMerchant(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM merchants WHERE merchant_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) ListMerchantNatures(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, `SELECT DISTINCT nature FROM merchants WHERE nature <> '' ORDER BY nature`)
}

func (s *Store) CreateItem(ctx context.Context, item domain.Item) (*domain.Item, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO items (description, short_description, category, unit, reorder_level_upper, reorder_level_lower)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING item_id
	`, item.Description, item.ShortDescription, item.Category, item.Unit, item.ReorderLevelUpper, item.ReorderLevelLower).Scan(&item.ItemID)
	if err != nil {
		return nil, err
	}
	created := item
	return &created, nil
}

func (s *Store) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	err := s.db.QueryRowContext(ctx, `
		SELECT item_id, description, short_description, category, unit, reorder_level_upper, reorder_level_lower
		FROM items
		WHERE item_id = $1
	`, id).Scan(&item.ItemID, &item.Description, &item.ShortDescription, &item.Category, &item.Unit, &item.ReorderLevelUpper, &item.ReorderLevelLower)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListItems(ctx context.Context, filter store.ItemFilter, page store.Page) ([]domain.Item, int64, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf(`(description ILIKE $%d OR short_description ILIKE $%d)`, len(args), len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf(`category = $%d`, len(args)))
	}

	from := `FROM items` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT item_id, description, short_description, category, unit, reorder_level_upper, reorder_level_lower
		%s
		ORDER BY item_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]domain.Item, 0, page.Limit)
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ItemID, &item.Description, &item.ShortDescription, &item.Category, &item.Unit, &item.ReorderLevelUpper, &item.ReorderLevelLower); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) UpdateItem(ctx context.Context, item domain.Item) (*domain.Item, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE items
		SET description = $2, short_description = $3, category = $4, unit = $5, reorder_level_upper = $6, reorder_level_lower = $7
		WHERE item_id = $1
	`, item.ItemID, item.Description, item.ShortDescription, item.Category, item.Unit, item.ReorderLevelUpper, item.ReorderLevelLower)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := item
	return &updated, nil
}

func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE item_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) CreateDelivery(ctx context.Context, delivery domain.Delivery) (*domain.Delivery, error) {
	if delivery.CreatedAt.IsZero() {
		delivery.CreatedAt = time.Now().UTC()
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO deliveries (supplier_id, dr_number, date, delivery_box, delivery_weight, actual_box, actual_weight, total_amount, status, account_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING delivery_id
	`, delivery.SupplierID, delivery.DRNumber, delivery.Date, delivery.DeliveryBox, delivery.DeliveryWeight,
		delivery.ActualBox, delivery.ActualWeight, delivery.TotalAmount, delivery.Status, delivery.AccountID, delivery.CreatedAt).Scan(&delivery.DeliveryID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindDelivery, "supplier_id", "account_id")
	}
	created := delivery
	return &created, nil
}

func (s *Store) GetDelivery(ctx context.Context, id int64) (*domain.Delivery, error) {
	var delivery domain.Delivery
	var date time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT delivery_id, supplier_id, dr_number, date, delivery_box, delivery_weight, actual_box, actual_weight, total_amount, status, account_id, created_at
		FROM deliveries
		WHERE delivery_id = $1
	`, id).Scan(&delivery.DeliveryID, &delivery.SupplierID, &delivery.DRNumber, &date, &delivery.DeliveryBox, &delivery.DeliveryWeight,
		&delivery.ActualBox, &delivery.ActualWeight, &delivery.TotalAmount, &delivery.Status, &delivery.AccountID, &delivery.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	delivery.Date = date.Format("2006-01-02")
	delivery.CreatedAt = delivery.CreatedAt.UTC()
	return &delivery, nil
}

func (s *Store) ListDeliveries(ctx context.Context, filter store.DeliveryFilter, page store.Page) ([]domain.Delivery, int64, error) {
	where := make([]string, 0, 5)
	args := make([]any, 0, 7)
	if filter.SupplierID != 0 {
		args = append(args, filter.SupplierID)
		where = append(where, fmt.Sprintf(`supplier_id = $%d`, len(args)))
	}
	if filter.AccountID != 0 {
		args = append(args, filter.AccountID)
		where = append(where, fmt.Sprintf(`account_id = $%d`, len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf(`status = $%d`, len(args)))
	}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		where = append(where, fmt.Sprintf(`date >= $%d`, len(args)))
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		where = append(where, fmt.Sprintf(`date <= $%d`, len(args)))
	}

	from := `FROM deliveries` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT delivery_id, supplier_id, dr_number, date, delivery_box, delivery_weight, actual_box, actual_weight, total_amount, status, account_id, created_at
		%s
		ORDER BY delivery_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	deliveries := make([]domain.Delivery, 0, page.Limit)
	for rows.Next() {
		var delivery domain.Delivery
		var date time.Time
		if err := rows.Scan(&delivery.DeliveryID, &delivery.SupplierID, &delivery.DRNumber, &date, &delivery.DeliveryBox, &delivery.DeliveryWeight,
			&delivery.ActualBox, &delivery.ActualWeight, &delivery.TotalAmount, &delivery.Status, &delivery.AccountID, &delivery.CreatedAt); err != nil {
			return nil, 0, err
		}
		delivery.Date = date.Format("2006-01-02")
		delivery.CreatedAt = delivery.CreatedAt.UTC()
		deliveries = append(deliveries, delivery)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return deliveries, total, nil
}

func (s *Store) UpdateDelivery(ctx context.Context, delivery domain.Delivery) (*domain.Delivery, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE deliveries
		SET supplier_id = $2, dr_number = $3, date = $4, delivery_box = $5, delivery_weight = $6, actual_box = $7, actual_weight = $8, total_amount = $9, status = $10, account_id = $11
		WHERE delivery_id = $1
	`, delivery.DeliveryID, delivery.SupplierID, delivery.DRNumber, delivery.Date, delivery.DeliveryBox, delivery.DeliveryWeight,
		delivery.ActualBox, delivery.ActualWeight, delivery.TotalAmount, delivery.Status, delivery.AccountID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindDelivery, "supplier_id", "account_id")
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := delivery
	return &updated, nil
}

func (s *Store) DeleteDelivery(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM deliveries WHERE delivery_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) CreateDeliveryDetail(ctx context.Context, detail domain.DeliveryDetail) (*domain.DeliveryDetail, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO delivery_details (delivery_id, item_id, delivery_box, delivery_weight, actual_box, actual_weight, capital)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING delivery_detail_id
	`, detail.DeliveryID, detail.ItemID, detail.DeliveryBox, detail.DeliveryWeight, detail.ActualBox, detail.ActualWeight, detail.Capital).Scan(&detail.DeliveryDetailID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindDeliveryDetail, "delivery_id", "item_id")
	}
	created := detail
	return &created, nil
}

func (s *Store) GetDeliveryDetail(ctx context.Context, id int64) (*domain.DeliveryDetail, error) {
	var detail domain.DeliveryDetail
	err := s.db.QueryRowContext(ctx, `
		SELECT delivery_detail_id, delivery_id, item_id, delivery_box, delivery_weight, actual_box, actual_weight, capital
		FROM delivery_details
		WHERE delivery_detail_id = $1
	`, id).Scan(&detail.DeliveryDetailID, &detail.DeliveryID, &detail.ItemID, &detail.DeliveryBox, &detail.DeliveryWeight, &detail.ActualBox, &detail.ActualWeight, &detail.Capital)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &detail, nil
}

func (s *Store) ListDeliveryDetails(ctx context.Context, filter store.DeliveryDetailFilter, page store.Page) ([]domain.DeliveryDetail, int64, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.DeliveryID != 0 {
		args = append(args, filter.DeliveryID)
		where = append(where, fmt.Sprintf(`delivery_id = $%d`, len(args)))
	}
	if filter.ItemID != 0 {
		args = append(args, filter.ItemID)
		where = append(where, fmt.Sprintf(`item_id = $%d`, len(args)))
	}

	from := `FROM delivery_details` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT delivery_detail_id, delivery_id, item_id, delivery_box, delivery_weight, actual_box, actual_weight, capital
		%s
		ORDER BY delivery_detail_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	details := make([]domain.DeliveryDetail, 0, page.Limit)
	for rows.Next() {
		var detail domain.DeliveryDetail
		if err := rows.Scan(&detail.DeliveryDetailID, &detail.DeliveryID, &detail.ItemID, &detail.DeliveryBox, &detail.DeliveryWeight, &detail.ActualBox, &detail.ActualWeight, &detail.Capital); err != nil {
			return nil, 0, err
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (s *Store) UpdateDeliveryDetail(ctx context.Context, detail domain.DeliveryDetail) (*domain.DeliveryDetail, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE delivery_details
		SET delivery_id = $2, item_id = $3, delivery_box = $4, delivery_weight = $5, actual_box = $6, actual_weight = $7, capital = $8
		WHERE delivery_detail_id = $1
	`, detail.DeliveryDetailID, detail.DeliveryID, detail.ItemID, detail.DeliveryBox, detail.DeliveryWeight, detail.ActualBox, detail.ActualWeight, detail.Capital)
	if err != nil {
		return nil, uniqueOr(err, domain.KindDeliveryDetail, "delivery_id", "item_id")
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := detail
	return &updated, nil
}

func (s *Store) DeleteDeliveryDetail(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM delivery_details WHERE delivery_detail_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) CreateDeliveryItemDetail(ctx context.Context, detail domain.DeliveryItemDetail) (*domain.DeliveryItemDetail, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO delivery_item_details (delivery_detail_id, box_code, delivery_weight, actual_weight)
		VALUES ($1,$2,$3,$4)
		RETURNING delivery_item_detail_id
	`, detail.DeliveryDetailID, detail.BoxCode, detail.DeliveryWeight, detail.ActualWeight).Scan(&detail.DeliveryItemDetailID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindDeliveryItemDetail, "delivery_detail_id")
	}
	created := detail
	return &created, nil
}

func (s *Store) GetDeliveryItemDetail(ctx context.Context, id int64) (*domain.DeliveryItemDetail, error) {
	var detail domain.DeliveryItemDetail
	err := s.db.QueryRowContext(ctx, `
		SELECT delivery_item_detail_id, delivery_detail_id, box_code, delivery_weight, actual_weight
		FROM delivery_item_details
		WHERE delivery_item_detail_id = $1
	`, id).Scan(&detail.DeliveryItemDetailID, &detail.DeliveryDetailID, &detail.BoxCode, &detail.DeliveryWeight, &detail.ActualWeight)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &detail, nil
}

func (s *Store) ListDeliveryItemDetails(ctx context.Context, filter store.DeliveryItemDetailFilter, page store.Page) ([]domain.DeliveryItemDetail, int64, error) {
	where := make([]string, 0, 1)
	args := make([]any, 0, 3)
	if filter.DeliveryDetailID != 0 {
		args = append(args, filter.DeliveryDetailID)
		where = append(where, fmt.Sprintf(`delivery_detail_id = $%d`, len(args)))
	}

	from := `FROM delivery_item_details` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT delivery_item_detail_id, delivery_detail_id, box_code, delivery_weight, actual_weight
		%s
		ORDER BY delivery_item_detail_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	details := make([]domain.DeliveryItemDetail, 0, page.Limit)
	for rows.Next() {
		var detail domain.DeliveryItemDetail
		if err := rows.Scan(&detail.DeliveryItemDetailID, &detail.DeliveryDetailID, &detail.BoxCode, &detail.DeliveryWeight, &detail.ActualWeight); err != nil {
			return nil, 0, err
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (s *Store) UpdateDeliveryItemDetail(ctx context.Context, detail domain.DeliveryItemDetail) (*domain.DeliveryItemDetail, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE delivery_item_details
		SET delivery_detail_id = $2, box_code = $3, delivery_weight = $4, actual_weight = $5
		WHERE delivery_item_detail_id = $1
	`, detail.DeliveryItemDetailID, detail.DeliveryDetailID, detail.BoxCode, detail.DeliveryWeight, detail.ActualWeight)
	if err != nil {
		return nil, uniqueOr(err, domain.KindDeliveryItemDetail, "delivery_detail_id")
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := detail
	return &updated, nil
}

func (s *Store) DeleteDeliveryItemDetail(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM delivery_item_details WHERE delivery_item_detail_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) CreateStock(ctx context.Context, stock domain.Stock) (*domain.Stock, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO stocks (delivery_detail_id, active_markup, active_selling_price, account_id)
		VALUES ($1,$2,$3,$4)
		RETURNING stock_id
	`, stock.DeliveryDetailID, stock.ActiveMarkup, stock.ActiveSellingPrice, stock.AccountID).Scan(&stock.StockID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindStock, "delivery_detail_id", "account_id")
	}
	created := stock
	return &created, nil
}

func (s *Store) GetStock(ctx context.Context, id int64) (*domain.Stock, error) {
	var stock domain.Stock
	err := s.db.QueryRowContext(ctx, `
		SELECT stock_id, delivery_detail_id, active_markup, active_selling_price, account_id
		FROM stocks
		WHERE stock_id = $1
	`, id).Scan(&stock.StockID, &stock.DeliveryDetailID, &stock.ActiveMarkup, &stock.ActiveSellingPrice, &stock.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

func (s *Store) ListStocks(ctx context.Context, filter store.StockFilter, page store.Page) ([]domain.Stock, int64, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.DeliveryDetailID != 0 {
		args = append(args, filter.DeliveryDetailID)
		where = append(where, fmt.Sprintf(`delivery_detail_id = $%d`, len(args)))
	}
	if filter.AccountID != 0 {
		args = append(args, filter.AccountID)
		where = append(where, fmt.Sprintf(`account_id = $%d`, len(args)))
	}

	from := `FROM stocks` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT stock_id, delivery_detail_id, active_markup, active_selling_price, account_id
		%s
		ORDER BY stock_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	stocks := make([]domain.Stock, 0, page.Limit)
	for rows.Next() {
		var stock domain.Stock
		if err := rows.Scan(&stock.StockID, &stock.DeliveryDetailID, &stock.ActiveMarkup, &stock.ActiveSellingPrice, &stock.AccountID); err != nil {
			return nil, 0, err
		}
		stocks = append(stocks, stock)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return stocks, total, nil
}

// UpdateStockPrice runs the price write and the PriceLog append in one
// database transaction so a failed append rolls the price back.
func (s *Store) UpdateStockPrice(ctx context.Context, stockID int64, markUp float64, sellingPrice float64, accountID int64) (*domain.Stock, *domain.PriceLog, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var stock domain.Stock
	err = tx.QueryRowContext(ctx, `
		UPDATE stocks
		SET active_markup = $2, active_selling_price = $3
		WHERE stock_id = $1
		RETURNING stock_id, delivery_detail_id, active_markup, active_selling_price, account_id
	`, stockID, markUp, sellingPrice).Scan(&stock.StockID, &stock.DeliveryDetailID, &stock.ActiveMarkup, &stock.ActiveSellingPrice, &stock.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, store.ErrNotFound
		}
		return nil, nil, err
	}

	entry := domain.PriceLog{
		StockID:            stockID,
		ActiveMarkUp:       markUp,
		ActiveSellingPrice: sellingPrice,
		AccountID:          accountID,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO price_logs (stock_id, post_date, active_mark_up, active_selling_price, account_id)
		VALUES ($1, now(), $2, $3, $4)
		RETURNING price_log_id, post_date
	`, stockID, markUp, sellingPrice, accountID).Scan(&entry.PriceLogID, &entry.PostDate)
	if err != nil {
		return nil, nil, err
	}
	entry.PostDate = entry.PostDate.UTC()

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return &stock, &entry, nil
}

func (s *Store) DeleteStock(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM stocks WHERE stock_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) CreateStockOnHand(ctx context.Context, onHand domain.StockOnHand) (*domain.StockOnHand, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO stock_on_hand (stock_id, number_of_box, quantity)
		VALUES ($1,$2,$3)
		RETURNING stock_on_hand_id
	`, onHand.StockID, onHand.NumberOfBox, onHand.Quantity).Scan(&onHand.StockOnHandID)
	if err != nil {
		return nil, err
	}
	created := onHand
	return &created, nil
}

func (s *Store) GetStockOnHand(ctx context.Context, id int64) (*domain.StockOnHand, error) {
	var onHand domain.StockOnHand
	err := s.db.QueryRowContext(ctx, `
		SELECT stock_on_hand_id, stock_id, number_of_box, quantity
		FROM stock_on_hand
		WHERE stock_on_hand_id = $1
	`, id).Scan(&onHand.StockOnHandID, &onHand.StockID, &onHand.NumberOfBox, &onHand.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &onHand, nil
}

func (s *Store) ListStockOnHand(ctx context.Context, filter store.StockOnHandFilter, page store.Page) ([]domain.StockOnHand, int64, error) {
	where := make([]string, 0, 1)
	args := make([]any, 0, 3)
	if filter.StockID != 0 {
		args = append(args, filter.StockID)
		where = append(where, fmt.Sprintf(`stock_id = $%d`, len(args)))
	}

	from := `FROM stock_on_hand` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT stock_on_hand_id, stock_id, number_of_box, quantity
		%s
		ORDER BY stock_on_hand_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := make([]domain.StockOnHand, 0, page.Limit)
	for rows.Next() {
		var onHand domain.StockOnHand
		if err := rows.Scan(&onHand.StockOnHandID, &onHand.StockID, &onHand.NumberOfBox, &onHand.Quantity); err != nil {
			return nil, 0, err
		}
		result = append(result, onHand)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (s *Store) UpdateStockOnHand(ctx context.Context, onHand domain.StockOnHand) (*domain.StockOnHand, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE stock_on_hand
		SET stock_id = $2, number_of_box = $3, quantity = $4
		WHERE stock_on_hand_id = $1
	`, onHand.StockOnHandID, onHand.StockID, onHand.NumberOfBox, onHand.Quantity)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := onHand
	return &updated, nil
}

func (s *Store) DeleteStockOnHand(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM stock_on_hand WHERE stock_on_hand_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) GetStockOnHandStats(ctx context.Context) (domain.StockOnHandStats, error) {
	var stats domain.StockOnHandStats
	err := s.db.QueryRowContext(ctx, `
		SELECT count(*),
			COALESCE(sum(number_of_box), 0),
			COALESCE(sum(quantity), 0),
			COALESCE(min(quantity), 0),
			COALESCE(max(quantity), 0),
			COALESCE(avg(quantity), 0)
		FROM stock_on_hand
	`).Scan(&stats.TotalRows, &stats.TotalBoxes, &stats.TotalQuantity, &stats.MinQuantity, &stats.MaxQuantity, &stats.AvgQuantity)
	if err != nil {
		return domain.StockOnHandStats{}, err
	}
	return stats, nil
}

func (s *Store) GetPriceLog(ctx context.Context, id int64) (*domain.PriceLog, error) {
	var entry domain.PriceLog
	err := s.db.QueryRowContext(ctx, `
		SELECT price_log_id, stock_id, post_date, active_mark_up, active_selling_price, account_id
		FROM price_logs
		WHERE price_log_id = $1
	`, id).Scan(&entry.PriceLogID, &entry.StockID, &entry.PostDate, &entry.ActiveMarkUp, &entry.ActiveSellingPrice, &entry.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	entry.PostDate = entry.PostDate.UTC()
	return &entry, nil
}

func (s *Store) ListPriceLogs(ctx context.Context, filter store.PriceLogFilter, page store.Page) ([]domain.PriceLog, int64, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 6)
	if filter.StockID != 0 {
		args = append(args, filter.StockID)
		where = append(where, fmt.Sprintf(`stock_id = $%d`, len(args)))
	}
	if filter.AccountID != 0 {
		args = append(args, filter.AccountID)
		where = append(where, fmt.Sprintf(`account_id = $%d`, len(args)))
	}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		where = append(where, fmt.Sprintf(`post_date::date >= $%d`, len(args)))
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		where = append(where, fmt.Sprintf(`post_date::date <= $%d`, len(args)))
	}

	from := `FROM price_logs` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT price_log_id, stock_id, post_date, active_mark_up, active_selling_price, account_id
		%s
		ORDER BY price_log_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]domain.PriceLog, 0, page.Limit)
	for rows.Next() {
		var entry domain.PriceLog
		if err := rows.Scan(&entry.PriceLogID, &entry.StockID, &entry.PostDate, &entry.ActiveMarkUp, &entry.ActiveSellingPrice, &entry.AccountID); err != nil {
			return nil, 0, err
		}
		entry.PostDate = entry.PostDate.UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *Store) ListPriceLogsByStock(ctx context.Context, stockID int64, limit int) ([]domain.PriceLog, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT price_log_id, stock_id, post_date, active_mark_up, active_selling_price, account_id
		FROM price_logs
		WHERE stock_id = $1
		ORDER BY post_date DESC, price_log_id DESC
		LIMIT $2
	`, stockID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.PriceLog, 0, limit)
	for rows.Next() {
		var entry domain.PriceLog
		if err := rows.Scan(&entry.PriceLogID, &entry.StockID, &entry.PostDate, &entry.ActiveMarkUp, &entry.ActiveSellingPrice, &entry.AccountID); err != nil {
			return nil, err
		}
		entry.PostDate = entry.PostDate.UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	if tx.TransactionDateTime.IsZero() {
		tx.TransactionDateTime = time.Now().UTC()
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO transactions (merchant_id, transaction_date_time, amount_due, discount, status, account_id)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING transaction_id
	`, tx.MerchantID, tx.TransactionDateTime, tx.AmountDue, tx.Discount, tx.Status, tx.AccountID).Scan(&tx.TransactionID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindTransaction, "merchant_id", "account_id")
	}
	created := tx
	return &created, nil
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := s.db.QueryRowContext(ctx, `
		SELECT transaction_id, merchant_id, transaction_date_time, amount_due, discount, status, account_id
		FROM transactions
		WHERE transaction_id = $1
	`, id).Scan(&tx.TransactionID, &tx.MerchantID, &tx.TransactionDateTime, &tx.AmountDue, &tx.Discount, &tx.Status, &tx.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	tx.TransactionDateTime = tx.TransactionDateTime.UTC()
	return &tx, nil
}

func transactionWhere(filter store.TransactionFilter) ([]string, []any) {
	where := make([]string, 0, 5)
	args := make([]any, 0, 7)
	if filter.MerchantID != 0 {
		args = append(args, filter.MerchantID)
		where = append(where, fmt.Sprintf(`merchant_id = $%d`, len(args)))
	}
	if filter.AccountID != 0 {
		args = append(args, filter.AccountID)
		where = append(where, fmt.Sprintf(`account_id = $%d`, len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf(`status = $%d`, len(args)))
	}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		where = append(where, fmt.Sprintf(`transaction_date_time::date >= $%d`, len(args)))
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		where = append(where, fmt.Sprintf(`transaction_date_time::date <= $%d`, len(args)))
	}
	return where, args
}

func (s *Store) ListTransactions(ctx context.Context, filter store.TransactionFilter, page store.Page) ([]domain.Transaction, int64, error) {
	where, args := transactionWhere(filter)

	from := `FROM transactions` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT transaction_id, merchant_id, transaction_date_time, amount_due, discount, status, account_id
		%s
		ORDER BY transaction_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0, page.Limit)
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(&tx.TransactionID, &tx.MerchantID, &tx.TransactionDateTime, &tx.AmountDue, &tx.Discount, &tx.Status, &tx.AccountID); err != nil {
			return nil, 0, err
		}
		tx.TransactionDateTime = tx.TransactionDateTime.UTC()
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET merchant_id = $2, transaction_date_time = $3, amount_due = $4, discount = $5, status = $6, account_id = $7
		WHERE transaction_id = $1
	`, tx.TransactionID, tx.MerchantID, tx.TransactionDateTime, tx.AmountDue, tx.Discount, tx.Status, tx.AccountID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindTransaction, "merchant_id", "account_id")
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := tx
	return &updated, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) GetTransactionStats(ctx context.Context, filter store.TransactionFilter) (domain.TransactionStats, error) {
	where, args := transactionWhere(filter)
	from := `FROM transactions` + whereClause(where)

	stats := domain.TransactionStats{CountByStatus: make(map[string]int64)}
	err := s.db.QueryRowContext(ctx, `
		SELECT count(*), COALESCE(sum(amount_due), 0), COALESCE(sum(discount), 0) `+from, args...).
		Scan(&stats.TotalTransactions, &stats.TotalAmountDue, &stats.TotalDiscount)
	if err != nil {
		return domain.TransactionStats{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT status, count(*) `+from+` GROUP BY status`, args...)
	if err != nil {
		return domain.TransactionStats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return domain.TransactionStats{}, err
		}
		stats.CountByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return domain.TransactionStats{}, err
	}
	return stats, nil
}

func (s *Store) CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO orders (transaction_id, stock_id, number_of_box, quantity, unit_cost, amount, discount)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING order_id
	`, order.TransactionID, order.StockID, order.NumberOfBox, order.Quantity, order.UnitCost, order.Amount, order.Discount).Scan(&order.OrderID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindOrder, "transaction_id", "stock_id")
	}
	created := order
	return &created, nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	err := s.db.QueryRowContext(ctx, `
		SELECT order_id, transaction_id, stock_id, number_of_box, quantity, unit_cost, amount, discount
		FROM orders
		WHERE order_id = $1
	`, id).Scan(&order.OrderID, &order.TransactionID, &order.StockID, &order.NumberOfBox, &order.Quantity, &order.UnitCost, &order.Amount, &order.Discount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *Store) ListOrders(ctx context.Context, filter store.OrderFilter, page store.Page) ([]domain.Order, int64, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.TransactionID != 0 {
		args = append(args, filter.TransactionID)
		where = append(where, fmt.Sprintf(`transaction_id = $%d`, len(args)))
	}
	if filter.StockID != 0 {
		args = append(args, filter.StockID)
		where = append(where, fmt.Sprintf(`stock_id = $%d`, len(args)))
	}

	from := `FROM orders` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT order_id, transaction_id, stock_id, number_of_box, quantity, unit_cost, amount, discount
		%s
		ORDER BY order_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, page.Limit)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.OrderID, &order.TransactionID, &order.StockID, &order.NumberOfBox, &order.Quantity, &order.UnitCost, &order.Amount, &order.Discount); err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *Store) UpdateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET transaction_id = $2, stock_id = $3, number_of_box = $4, quantity = $5, unit_cost = $6, amount = $7, discount = $8
		WHERE order_id = $1
	`, order.OrderID, order.TransactionID, order.StockID, order.NumberOfBox, order.Quantity, order.UnitCost, order.Amount, order.Discount)
	if err != nil {
		return nil, uniqueOr(err, domain.KindOrder, "transaction_id", "stock_id")
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := order
	return &updated, nil
}

func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE order_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) CreatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO payments (transaction_id, total_payments, available_balance)
		VALUES ($1,$2,$3)
		RETURNING payment_id
	`, payment.TransactionID, payment.TotalPayments, payment.AvailableBalance).Scan(&payment.PaymentID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindPayment, "transaction_id")
	}
	created := payment
	return &created, nil
}

func (s *Store) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	var payment domain.Payment
	err := s.db.QueryRowContext(ctx, `
		SELECT payment_id, transaction_id, total_payments, available_balance
		FROM payments
		WHERE payment_id = $1
	`, id).Scan(&payment.PaymentID, &payment.TransactionID, &payment.TotalPayments, &payment.AvailableBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (s *Store) ListPayments(ctx context.Context, filter store.PaymentFilter, page store.Page) ([]domain.Payment, int64, error) {
	where := make([]string, 0, 1)
	args := make([]any, 0, 3)
	if filter.TransactionID != 0 {
		args = append(args, filter.TransactionID)
		where = append(where, fmt.Sprintf(`transaction_id = $%d`, len(args)))
	}

	from := `FROM payments` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT payment_id, transaction_id, total_payments, available_balance
		%s
		ORDER BY payment_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0, page.Limit)
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(&payment.PaymentID, &payment.TransactionID, &payment.TotalPayments, &payment.AvailableBalance); err != nil {
			return nil, 0, err
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (s *Store) UpdatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE payments
		SET transaction_id = $2, total_payments = $3, available_balance = $4
		WHERE payment_id = $1
	`, payment.PaymentID, payment.TransactionID, payment.TotalPayments, payment.AvailableBalance)
	if err != nil {
		return nil, uniqueOr(err, domain.KindPayment, "transaction_id")
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := payment
	return &updated, nil
}

func (s *Store) DeletePayment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE payment_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) CreatePaymentMethod(ctx context.Context, method domain.PaymentMethod) (*domain.PaymentMethod, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO payment_methods (description, short_description, type)
		VALUES ($1,$2,$3)
		RETURNING payment_method_id
	`, method.Description, method.ShortDescription, method.Type).Scan(&method.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	created := method
	return &created, nil
}

func (s *Store) GetPaymentMethod(ctx context.Context, id int64) (*domain.PaymentMethod, error) {
	var method domain.PaymentMethod
	err := s.db.QueryRowContext(ctx, `
		SELECT payment_method_id, description, short_description, type
		FROM payment_methods
		WHERE payment_method_id = $1
	`, id).Scan(&method.PaymentMethodID, &method.Description, &method.ShortDescription, &method.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

func (s *Store) ListPaymentMethods(ctx context.Context, filter store.PaymentMethodFilter, page store.Page) ([]domain.PaymentMethod, int64, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf(`description ILIKE $%d`, len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf(`type = $%d`, len(args)))
	}

	from := `FROM payment_methods` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT payment_method_id, description, short_description, type
		%s
		ORDER BY payment_method_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	methods := make([]domain.PaymentMethod, 0, page.Limit)
	for rows.Next() {
		var method domain.PaymentMethod
		if err := rows.Scan(&method.PaymentMethodID, &method.Description, &method.ShortDescription, &method.Type); err != nil {
			return nil, 0, err
		}
		methods = append(methods, method)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return methods, total, nil
}

func (s *Store) UpdatePaymentMethod(ctx context.Context, method domain.PaymentMethod) (*domain.PaymentMethod, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE payment_methods
		SET description = $2, short_description = $3, type = $4
		WHERE payment_method_id = $1
	`, method.PaymentMethodID, method.Description, method.ShortDescription, method.Type)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := method
	return &updated, nil
}

func (s *Store) DeletePaymentMethod(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM payment_methods WHERE payment_method_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) ListPaymentMethodTypes(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, `SELECT DISTINCT type FROM payment_methods WHERE type <> '' ORDER BY type`)
}

func (s *Store) CreatePaymentDetail(ctx context.Context, detail domain.PaymentDetail) (*domain.PaymentDetail, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO payment_details (payment_id, invoice_number, amount_due, payment_method_id, balance, status, remarks, account_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING payment_detail_id
	`, detail.PaymentID, detail.InvoiceNumber, detail.AmountDue, detail.PaymentMethodID, detail.Balance, detail.Status, detail.Remarks, detail.AccountID).Scan(&detail.PaymentDetailID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindPaymentDetail, "payment_id", "payment_method_id", "account_id")
	}
	created := detail
	return &created, nil
}

func (s *Store) GetPaymentDetail(ctx context.Context, id int64) (*domain.PaymentDetail, error) {
	var detail domain.PaymentDetail
	err := s.db.QueryRowContext(ctx, `
		SELECT payment_detail_id, payment_id, invoice_number, amount_due, payment_method_id, balance, status, remarks, account_id
		FROM payment_details
		WHERE payment_detail_id = $1
	`, id).Scan(&detail.PaymentDetailID, &detail.PaymentID, &detail.InvoiceNumber, &detail.AmountDue, &detail.PaymentMethodID, &detail.Balance, &detail.Status, &detail.Remarks, &detail.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &detail, nil
}

func (s *Store) ListPaymentDetails(ctx context.Context, filter store.PaymentDetailFilter, page store.Page) ([]domain.PaymentDetail, int64, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.PaymentID != 0 {
		args = append(args, filter.PaymentID)
		where = append(where, fmt.Sprintf(`payment_id = $%d`, len(args)))
	}
	if filter.PaymentMethodID != 0 {
		args = append(args, filter.PaymentMethodID)
		where = append(where, fmt.Sprintf(`payment_method_id = $%d`, len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf(`status = $%d`, len(args)))
	}

	from := `FROM payment_details` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT payment_detail_id, payment_id, invoice_number, amount_due, payment_method_id, balance, status, remarks, account_id
		%s
		ORDER BY payment_detail_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	details := make([]domain.PaymentDetail, 0, page.Limit)
	for rows.Next() {
		var detail domain.PaymentDetail
		if err := rows.Scan(&detail.PaymentDetailID, &detail.PaymentID, &detail.InvoiceNumber, &detail.AmountDue, &detail.PaymentMethodID, &detail.Balance, &detail.Status, &detail.Remarks, &detail.AccountID); err != nil {
			return nil, 0, err
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (s *Store) UpdatePaymentDetail(ctx context.Context, detail domain.PaymentDetail) (*domain.PaymentDetail, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE payment_details
		SET payment_id = $2, invoice_number = $3, amount_due = $4, payment_method_id = $5, balance = $6, status = $7, remarks = $8, account_id = $9
		WHERE payment_detail_id = $1
	`, detail.PaymentDetailID, detail.PaymentID, detail.InvoiceNumber, detail.AmountDue, detail.PaymentMethodID, detail.Balance, detail.Status, detail.Remarks, detail.AccountID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindPaymentDetail, "payment_id", "payment_method_id", "account_id")
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := detail
	return &updated, nil
}

func (s *Store) DeletePaymentDetail(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM payment_details WHERE payment_detail_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) CreateSupplierReturn(ctx context.Context, ret domain.SupplierReturn) (*domain.SupplierReturn, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO supplier_returns (supplier_id, delivery_detail_id, number_of_box, quantity, active_status, account_id)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING supplier_return_id
	`, ret.SupplierID, ret.DeliveryDetailID, ret.NumberOfBox, ret.Quantity, ret.ActiveStatus, ret.AccountID).Scan(&ret.SupplierReturnID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindSupplierReturn, "supplier_id", "delivery_detail_id", "account_id")
	}
	created := ret
	return &created, nil
}

func (s *Store) GetSupplierReturn(ctx context.Context, id int64) (*domain.SupplierReturn, error) {
	var ret domain.SupplierReturn
	err := s.db.QueryRowContext(ctx, `
		SELECT supplier_return_id, supplier_id, delivery_detail_id, number_of_box, quantity, active_status, account_id
		FROM supplier_returns
		WHERE supplier_return_id = $1
	`, id).Scan(&ret.SupplierReturnID, &ret.SupplierID, &ret.DeliveryDetailID, &ret.NumberOfBox, &ret.Quantity, &ret.ActiveStatus, &ret.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

func (s *Store) ListSupplierReturns(ctx context.Context, filter store.SupplierReturnFilter, page store.Page) ([]domain.SupplierReturn, int64, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.SupplierID != 0 {
		args = append(args, filter.SupplierID)
		where = append(where, fmt.Sprintf(`supplier_id = $%d`, len(args)))
	}
	if filter.DeliveryDetailID != 0 {
		args = append(args, filter.DeliveryDetailID)
		where = append(where, fmt.Sprintf(`delivery_detail_id = $%d`, len(args)))
	}
	if filter.ActiveStatus != nil {
		args = append(args, *filter.ActiveStatus)
		where = append(where, fmt.Sprintf(`active_status = $%d`, len(args)))
	}

	from := `FROM supplier_returns` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT supplier_return_id, supplier_id, delivery_detail_id, number_of_box, quantity, active_status, account_id
		%s
		ORDER BY supplier_return_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	returns := make([]domain.SupplierReturn, 0, page.Limit)
	for rows.Next() {
		var ret domain.SupplierReturn
		if err := rows.Scan(&ret.SupplierReturnID, &ret.SupplierID, &ret.DeliveryDetailID, &ret.NumberOfBox, &ret.Quantity, &ret.ActiveStatus, &ret.AccountID); err != nil {
			return nil, 0, err
		}
		returns = append(returns, ret)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return returns, total, nil
}

func (s *Store) UpdateSupplierReturn(ctx context.Context, ret domain.SupplierReturn) (*domain.SupplierReturn, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE supplier_returns
		SET supplier_id = $2, delivery_detail_id = $3, number_of_box = $4, quantity = $5, active_status = $6, account_id = $7
		WHERE supplier_return_id = $1
	`, ret.SupplierReturnID, ret.SupplierID, ret.DeliveryDetailID, ret.NumberOfBox, ret.Quantity, ret.ActiveStatus, ret.AccountID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindSupplierReturn, "supplier_id", "delivery_detail_id", "account_id")
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := ret
	return &updated, nil
}

func (s *Store) DeleteSupplierReturn(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM supplier_returns WHERE supplier_return_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) CreateSupplierReturnLog(ctx context.Context, entry domain.SupplierReturnLog) (*domain.SupplierReturnLog, error) {
	if entry.DateTime.IsZero() {
		entry.DateTime = time.Now().UTC()
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO supplier_return_logs (supplier_return_id, status, date_time, account_id)
		VALUES ($1,$2,$3,$4)
		RETURNING supplier_return_log_id
	`, entry.SupplierReturnID, entry.Status, entry.DateTime, entry.AccountID).Scan(&entry.SupplierReturnLogID)
	if err != nil {
		return nil, err
	}
	created := entry
	return &created, nil
}

func (s *Store) GetSupplierReturnLog(ctx context.Context, id int64) (*domain.SupplierReturnLog, error) {
	var entry domain.SupplierReturnLog
	err := s.db.QueryRowContext(ctx, `
		SELECT supplier_return_log_id, supplier_return_id, status, date_time, account_id
		FROM supplier_return_logs
		WHERE supplier_return_log_id = $1
	`, id).Scan(&entry.SupplierReturnLogID, &entry.SupplierReturnID, &entry.Status, &entry.DateTime, &entry.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	entry.DateTime = entry.DateTime.UTC()
	return &entry, nil
}

func (s *Store) ListSupplierReturnLogs(ctx context.Context, filter store.SupplierReturnLogFilter, page store.Page) ([]domain.SupplierReturnLog, int64, error) {
	where := make([]string, 0, 1)
	args := make([]any, 0, 3)
	if filter.SupplierReturnID != 0 {
		args = append(args, filter.SupplierReturnID)
		where = append(where, fmt.Sprintf(`supplier_return_id = $%d`, len(args)))
	}

	from := `FROM supplier_return_logs` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT supplier_return_log_id, supplier_return_id, status, date_time, account_id
		%s
		ORDER BY supplier_return_log_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]domain.SupplierReturnLog, 0, page.Limit)
	for rows.Next() {
		var entry domain.SupplierReturnLog
		if err := rows.Scan(&entry.SupplierReturnLogID, &entry.SupplierReturnID, &entry.Status, &entry.DateTime, &entry.AccountID); err != nil {
			return nil, 0, err
		}
		entry.DateTime = entry.DateTime.UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *Store) CreateMerchantReturn(ctx context.Context, ret domain.MerchantReturn) (*domain.MerchantReturn, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO merchant_returns (merchant_id, order_id, number_of_box, quantity, active_status, account_id)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING merchant_return_id
	`, ret.MerchantID, ret.OrderID, ret.NumberOfBox, ret.Quantity, ret.ActiveStatus, ret.AccountID).Scan(&ret.MerchantReturnID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindMerchantReturn, "merchant_id", "order_id", "account_id")
	}
	created := ret
	return &created, nil
}

func (s *Store) GetMerchantReturn(ctx context.Context, id int64) (*domain.MerchantReturn, error) {
	var ret domain.MerchantReturn
	err := s.db.QueryRowContext(ctx, `
		SELECT merchant_return_id, merchant_id, order_id, number_of_box, quantity, active_status, account_id
		FROM merchant_returns
		WHERE merchant_return_id = $1
	`, id).Scan(&ret.MerchantReturnID, &ret.MerchantID, &ret.OrderID, &ret.NumberOfBox, &ret.Quantity, &ret.ActiveStatus, &ret.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

func (s *Store) ListMerchantReturns(ctx context.Context, filter store.MerchantReturnFilter, page store.Page) ([]domain.MerchantReturn, int64, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.MerchantID != 0 {
		args = append(args, filter.MerchantID)
		where = append(where, fmt.Sprintf(`merchant_id = $%d`, len(args)))
	}
	if filter.OrderID != 0 {
		args = append(args, filter.OrderID)
		where = append(where, fmt.Sprintf(`order_id = $%d`, len(args)))
	}
	if filter.ActiveStatus != nil {
		args = append(args, *filter.ActiveStatus)
		where = append(where, fmt.Sprintf(`active_status = $%d`, len(args)))
	}

	from := `FROM merchant_returns` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT merchant_return_id, merchant_id, order_id, number_of_box, quantity, active_status, account_id
		%s
		ORDER BY merchant_return_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	returns := make([]domain.MerchantReturn, 0, page.Limit)
	for rows.Next() {
		var ret domain.MerchantReturn
		if err := rows.Scan(&ret.MerchantReturnID, &ret.MerchantID, &ret.OrderID, &ret.NumberOfBox, &ret.Quantity, &ret.ActiveStatus, &ret.AccountID); err != nil {
			return nil, 0, err
		}
		returns = append(returns, ret)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return returns, total, nil
}

func (s *Store) UpdateMerchantReturn(ctx context.Context, ret domain.MerchantReturn) (*domain.MerchantReturn, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE merchant_returns
		SET merchant_id = $2, order_id = $3, number_of_box = $4, quantity = $5, active_status = $6, account_id = $7
		WHERE merchant_return_id = $1
	`, ret.MerchantReturnID, ret.MerchantID, ret.OrderID, ret.NumberOfBox, ret.Quantity, ret.ActiveStatus, ret.AccountID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindMerchantReturn, "merchant_id", "order_id", "account_id")
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := ret
	return &updated, nil
}

func (s *Store) DeleteMerchantReturn(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM merchant_returns WHERE merchant_return_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) CreateMerchantReturnLog(ctx context.Context, entry domain.MerchantReturnLog) (*domain.MerchantReturnLog, error) {
	if entry.DateTime.IsZero() {
		entry.DateTime = time.Now().UTC()
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO merchant_return_logs (merchant_return_id, status, date_time, account_id)
		VALUES ($1,$2,$3,$4)
		RETURNING merchant_return_log_id
	`, entry.MerchantReturnID, entry.Status, entry.DateTime, entry.AccountID).Scan(&entry.MerchantReturnLogID)
	if err != nil {
		return nil, err
	}
	created := entry
	return &created, nil
}

func (s *Store) GetMerchantReturnLog(ctx context.Context, id int64) (*domain.MerchantReturnLog, error) {
	var entry domain.MerchantReturnLog
	err := s.db.QueryRowContext(ctx, `
		SELECT merchant_return_log_id, merchant_return_id, status, date_time, account_id
		FROM merchant_return_logs
		WHERE merchant_return_log_id = $1
	`, id).Scan(&entry.MerchantReturnLogID, &entry.MerchantReturnID, &entry.Status, &entry.DateTime, &entry.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	entry.DateTime = entry.DateTime.UTC()
	return &entry, nil
}

func (s *Store) ListMerchantReturnLogs(ctx context.Context, filter store.MerchantReturnLogFilter, page store.Page) ([]domain.MerchantReturnLog, int64, error) {
	where := make([]string, 0, 1)
	args := make([]any, 0, 3)
	if filter.MerchantReturnID != 0 {
		args = append(args, filter.MerchantReturnID)
		where = append(where, fmt.Sprintf(`merchant_return_id = $%d`, len(args)))
	}

	from := `FROM merchant_return_logs` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT merchant_return_log_id, merchant_return_id, status, date_time, account_id
		%s
		ORDER BY merchant_return_log_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]domain.MerchantReturnLog, 0, page.Limit)
	for rows.Next() {
		var entry domain.MerchantReturnLog
		if err := rows.Scan(&entry.MerchantReturnLogID, &entry.MerchantReturnID, &entry.Status, &entry.DateTime, &entry.AccountID); err != nil {
			return nil, 0, err
		}
		entry.DateTime = entry.DateTime.UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *Store) CreateLog(ctx context.Context, entry domain.Log) (*domain.Log, error) {
	if entry.DateTime.IsZero() {
		entry.DateTime = time.Now().UTC()
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO logs (account_id, module, event, date_time)
		VALUES ($1,$2,$3,$4)
		RETURNING log_id
	`, entry.AccountID, entry.Module, entry.Event, entry.DateTime).Scan(&entry.LogID)
	if err != nil {
		return nil, err
	}
	created := entry
	return &created, nil
}

func (s *Store) GetLog(ctx context.Context, id int64) (*domain.Log, error) {
	var entry domain.Log
	err := s.db.QueryRowContext(ctx, `
		SELECT log_id, account_id, module, event, date_time
		FROM logs
		WHERE log_id = $1
	`, id).Scan(&entry.LogID, &entry.AccountID, &entry.Module, &entry.Event, &entry.DateTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	entry.DateTime = entry.DateTime.UTC()
	return &entry, nil
}

func (s *Store) ListLogs(ctx context.Context, filter store.LogFilter, page store.Page) ([]domain.Log, int64, error) {
	where := make([]string, 0, 5)
	args := make([]any, 0, 7)
	if filter.AccountID != 0 {
		args = append(args, filter.AccountID)
		where = append(where, fmt.Sprintf(`account_id = $%d`, len(args)))
	}
	if filter.Module != "" {
		args = append(args, filter.Module)
		where = append(where, fmt.Sprintf(`module = $%d`, len(args)))
	}
	if filter.Event != "" {
		args = append(args, filter.Event)
		where = append(where, fmt.Sprintf(`event = $%d`, len(args)))
	}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		where = append(where, fmt.Sprintf(`date_time::date >= $%d`, len(args)))
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		where = append(where, fmt.Sprintf(`date_time::date <= $%d`, len(args)))
	}

	from := `FROM logs` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT log_id, account_id, module, event, date_time
		%s
		ORDER BY log_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]domain.Log, 0, page.Limit)
	for rows.Next() {
		var entry domain.Log
		if err := rows.Scan(&entry.LogID, &entry.AccountID, &entry.Module, &entry.Event, &entry.DateTime); err != nil {
			return nil, 0, err
		}
		entry.DateTime = entry.DateTime.UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *Store) DeleteLog(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM logs WHERE log_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) ListLogModules(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, `SELECT DISTINCT module FROM logs WHERE module <> '' ORDER BY module`)
}

func (s *Store) ListLogEvents(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, `SELECT DISTINCT event FROM logs WHERE event <> '' ORDER BY event`)
}

func (s *Store) CreateSysSetting(ctx context.Context, setting domain.SysSetting) (*domain.SysSetting, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sys_settings (attribute, value)
		VALUES ($1,$2)
		RETURNING sys_setting_id
	`, setting.Attribute, setting.Value).Scan(&setting.SysSettingID)
	if err != nil {
		return nil, uniqueOr(err, domain.KindSysSetting, "attribute")
	}
	created := setting
	return &created, nil
}

func (s *Store) GetSysSetting(ctx context.Context, id int64) (*domain.SysSetting, error) {
	var setting domain.SysSetting
	err := s.db.QueryRowContext(ctx, `
		SELECT sys_setting_id, attribute, value
		FROM sys_settings
		WHERE sys_setting_id = $1
	`, id).Scan(&setting.SysSettingID, &setting.Attribute, &setting.Value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &setting, nil
}

func (s *Store) GetSysSettingByAttribute(ctx context.Context, attribute string) (*domain.SysSetting, error) {
	var setting domain.SysSetting
	err := s.db.QueryRowContext(ctx, `
		SELECT sys_setting_id, attribute, value
		FROM sys_settings
		WHERE attribute = $1
	`, attribute).Scan(&setting.SysSettingID, &setting.Attribute, &setting.Value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &setting, nil
}

func (s *Store) ListSysSettings(ctx context.Context, filter store.SysSettingFilter, page store.Page) ([]domain.SysSetting, int64, error) {
	where := make([]string, 0, 1)
	args := make([]any, 0, 3)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf(`attribute ILIKE $%d`, len(args)))
	}

	from := `FROM sys_settings` + whereClause(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	args = append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT sys_setting_id, attribute, value
		%s
		ORDER BY sys_setting_id
		LIMIT $%d OFFSET $%d
	`, from, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	settings := make([]domain.SysSetting, 0, page.Limit)
	for rows.Next() {
		var setting domain.SysSetting
		if err := rows.Scan(&setting.SysSettingID, &setting.Attribute, &setting.Value); err != nil {
			return nil, 0, err
		}
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return settings, total, nil
}

func (s *Store) UpdateSysSetting(ctx context.Context, setting domain.SysSetting) (*domain.SysSetting, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sys_settings
		SET attribute = $2, value = $3
		WHERE sys_setting_id = $1
	`, setting.SysSettingID, setting.Attribute, setting.Value)
	if err != nil {
		return nil, uniqueOr(err, domain.KindSysSetting, "attribute")
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated := setting
	return &updated, nil
}

func (s *Store) DeleteSysSetting(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sys_settings WHERE sys_setting_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) ListSysSettingAttributes(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, `SELECT DISTINCT attribute FROM sys_settings WHERE attribute <> '' ORDER BY attribute`)
}

func (s *Store) distinctColumn(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0, 16)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func uniqueOr(err error, kind domain.Kind, fields ...string) error {
	if isUniqueViolation(err) {
		return &store.UniqueViolationError{Kind: kind, Fields: fields}
	}
	return err
}

// accountUnique distinguishes the two single-column unique indexes on
// accounts by constraint name so the message points at the right field.
func accountUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "username") {
			return &store.UniqueViolationError{Kind: domain.KindAccount, Fields: []string{"username"}}
		}
		return &store.UniqueViolationError{Kind: domain.KindAccount, Fields: []string{"employee_id"}}
	}
	return err
}
