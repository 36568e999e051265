// Package service holds the business rules on top of the entity store:
// input validation, foreign-key existence checks, delete guards, credential
// handling and the price-change audit trail. The store only enforces
// column-level uniqueness; everything cross-entity happens here.
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bodega/backend/internal/cache"
	"bodega/backend/internal/domain"
	"bodega/backend/internal/store"
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

// ErrAccountInactive is returned when credentials are valid but the account
// has been deactivated.
var ErrAccountInactive = errors.New("account is inactive")

type Service struct {
	repo       store.Repository
	settings   cache.SettingCache
	settingTTL time.Duration
}

func New(repo store.Repository, settings cache.SettingCache, settingTTL time.Duration) *Service {
	if settings == nil {
		settings = cache.NoopSettingCache{}
	}
	if settingTTL <= 0 {
		settingTTL = 5 * time.Minute
	}

	return &Service{
		repo:       repo,
		settings:   settings,
		settingTTL: settingTTL,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// requireRef verifies a foreign key before a write. A zero id is a validation
// error; a non-existent target is a ReferenceError. Either way nothing has
// been written yet, so a failed check leaves the store untouched.
func (s *Service) requireRef(ctx context.Context, kind domain.Kind, field string, id int64) error {
	if id < 1 {
		return store.Invalid(field, "is required")
	}
	exists, err := s.repo.ExistsByID(ctx, kind, id)
	if err != nil {
		return err
	}
	if !exists {
		return &store.ReferenceError{Kind: kind, ID: id}
	}
	return nil
}

// guardDelete refuses a delete while dependent child rows reference the row.
func (s *Service) guardDelete(ctx context.Context, kind domain.Kind, id int64, child domain.Kind, column string) error {
	count, err := s.repo.CountReferences(ctx, child, column, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &store.ConflictError{Kind: kind, Dependent: child, Count: count}
	}
	return nil
}

// logEvent appends an audit row for a mutation. Requests without an
// authenticated actor (startup, tests) are not logged. Failures are reported
// but never fail the operation that triggered them.
func (s *Service) logEvent(ctx context.Context, module string, event string) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.AccountID < 1 {
		return
	}
	_, err := s.repo.CreateLog(ctx, domain.Log{
		AccountID: actor.AccountID,
		Module:    module,
		Event:     event,
		DateTime:  time.Now().UTC(),
	})
	if err != nil {
		log.Printf("[audit] WARN: failed to write log module=%s event=%s: %v", module, event, err)
	}
}

func (s *Service) CreateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error) {
	employee.Firstname = strings.TrimSpace(employee.Firstname)
	employee.Lastname = strings.TrimSpace(employee.Lastname)
	employee.Position = strings.TrimSpace(employee.Position)
	if employee.Firstname == "" {
		return nil, store.Invalid("firstname", "is required")
	}
	if employee.Lastname == "" {
		return nil, store.Invalid("lastname", "is required")
	}

	created, err := s.repo.CreateEmployee(ctx, employee)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "employees", "create")
	return created, nil
}

func (s *Service) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.repo.GetEmployee(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context, filter store.EmployeeFilter, page store.Page) ([]domain.Employee, int64, error) {
	return s.repo.ListEmployees(ctx, filter, page)
}

func (s *Service) ListEmployeesWithoutAccounts(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.ListEmployeesWithoutAccounts(ctx)
}

func (s *Service) UpdateEmployee(ctx context.Context, id int64, req domain.EmployeeUpdateRequest) (*domain.Employee, error) {
	existing, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Firstname != nil {
		name := strings.TrimSpace(*req.Firstname)
		if name == "" {
			return nil, store.Invalid("firstname", "is required")
		}
		updated.Firstname = name
	}
	if req.Lastname != nil {
		name := strings.TrimSpace(*req.Lastname)
		if name == "" {
			return nil, store.Invalid("lastname", "is required")
		}
		updated.Lastname = name
	}
	if req.Position != nil {
		updated.Position = strings.TrimSpace(*req.Position)
	}
	if req.Permissions != nil {
		updated.Permissions = *req.Permissions
	}

	if employeeEqual(updated, *existing) {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateEmployee(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "employees", "update")
	return saved, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	if _, err := s.repo.GetEmployee(ctx, id); err != nil {
		return err
	}
	if err := s.guardDelete(ctx, domain.KindEmployee, id, domain.KindAccount, "employee_id"); err != nil {
		return err
	}
	if err := s.repo.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "employees", "delete")
	return nil
}

func (s *Service) CreateAccount(ctx context.Context, req domain.AccountCreateRequest) (*domain.Account, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return nil, store.Invalid("username", "is required")
	}
	if len(req.Password) < 6 {
		return nil, store.Invalid("password", "must be at least 6 characters")
	}
	if err := s.requireRef(ctx, domain.KindEmployee, "employee_id", req.EmployeeID); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := domain.Account{
		EmployeeID: req.EmployeeID,
		Username:   req.Username,
		Password:   hash,
		IsActive:   true,
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	created, err := s.repo.CreateAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "accounts", "create")
	return created, nil
}

func (s *Service) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) ListAccounts(ctx context.Context, filter store.AccountFilter, page store.Page) ([]domain.Account, int64, error) {
	return s.repo.ListAccounts(ctx, filter, page)
}

func (s *Service) UpdateAccount(ctx context.Context, id int64, req domain.AccountUpdateRequest) (*domain.Account, error) {
	existing, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, store.Invalid("username", "is required")
		}
		updated.Username = username
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return nil, store.Invalid("password", "must be at least 6 characters")
		}
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		updated.Password = hash
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateAccount(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "accounts", "update")
	return saved, nil
}

func (s *Service) DeleteAccount(ctx context.Context, id int64) error {
	if _, err := s.repo.GetAccount(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteAccount(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "accounts", "delete")
	return nil
}

// Authenticate resolves login credentials to an account. Unknown usernames
// and wrong passwords fail with the same ErrUnauthorized so the response
// never reveals which half was wrong.
func (s *Service) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.Account, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, store.ErrUnauthorized
	}

	account, err := s.repo.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrUnauthorized
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)) != nil {
		return nil, store.ErrUnauthorized
	}
	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	s.logEvent(WithActor(ctx, domain.Actor{AccountID: account.AccountID, Username: account.Username}), "accounts", "login")
	return account, nil
}

func (s *Service) CreateSupplier(ctx context.Context, supplier domain.Supplier) (*domain.Supplier, error) {
	supplier.CompanyName = strings.TrimSpace(supplier.CompanyName)
	if supplier.CompanyName == "" {
		return nil, store.Invalid("company_name", "is required")
	}

	created, err := s.repo.CreateSupplier(ctx, supplier)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "suppliers", "create")
	return created, nil
}

func (s *Service) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	return s.repo.GetSupplier(ctx, id)
}

func (s *Service) ListSuppliers(ctx context.Context, filter store.SupplierFilter, page store.Page) ([]domain.Supplier, int64, error) {
	return s.repo.ListSuppliers(ctx, filter, page)
}

func (s *Service) UpdateSupplier(ctx context.Context, id int64, req domain.SupplierUpdateRequest) (*domain.Supplier, error) {
	existing, err := s.repo.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.CompanyName != nil {
		name := strings.TrimSpace(*req.CompanyName)
		if name == "" {
			return nil, store.Invalid("company_name", "is required")
		}
		updated.CompanyName = name
	}
	if req.Address != nil {
		updated.Address = strings.TrimSpace(*req.Address)
	}
	if req.ContactDetails != nil {
		updated.ContactDetails = strings.TrimSpace(*req.ContactDetails)
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateSupplier(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "suppliers", "update")
	return saved, nil
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	if _, err := s.repo.GetSupplier(ctx, id); err != nil {
		return err
	}
	if err := s.guardDelete(ctx, domain.KindSupplier, id, domain.KindDelivery, "supplier_id"); err != nil {
		return err
	}
	if err := s.repo.DeleteSupplier(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "suppliers", "delete")
	return nil
}

func (s *Service) CreateMerchant(ctx context.Context, merchant domain.Merchant) (*domain.Merchant, error) {
	merchant.Firstname = strings.TrimSpace(merchant.Firstname)
	merchant.Lastname = strings.TrimSpace(merchant.Lastname)
	merchant.BusinessName = strings.TrimSpace(merchant.BusinessName)
	if merchant.BusinessName == "" {
		return nil, store.Invalid("business_name", "is required")
	}

	created, err := s.repo.CreateMerchant(ctx, merchant)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "merchants", "create")
	return created, nil
}

func (s *Service) GetMerchant(ctx context.Context, id int64) (*domain.Merchant, error) {
	return s.repo.GetMerchant(ctx, id)
}

func (s *Service) ListMerchants(ctx context.Context, filter store.MerchantFilter, page store.Page) ([]domain.Merchant, int64, error) {
	return s.repo.ListMerchants(ctx, filter, page)
}

func (s *Service) ListMerchantNatures(ctx context.Context) ([]string, error) {
	return s.repo.ListMerchantNatures(ctx)
}

func (s *Service) UpdateMerchant(ctx context.Context, id int64, req domain.MerchantUpdateRequest) (*domain.Merchant, error) {
	existing, err := s.repo.GetMerchant(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Firstname != nil {
		updated.Firstname = strings.TrimSpace(*req.Firstname)
	}
	if req.Lastname != nil {
		updated.Lastname = strings.TrimSpace(*req.Lastname)
	}
	if req.Address != nil {
		updated.Address = strings.TrimSpace(*req.Address)
	}
	if req.BusinessName != nil {
		name := strings.TrimSpace(*req.BusinessName)
		if name == "" {
			return nil, store.Invalid("business_name", "is required")
		}
		updated.BusinessName = name
	}
	if req.Nature != nil {
		updated.Nature = strings.TrimSpace(*req.Nature)
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateMerchant(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "merchants", "update")
	return saved, nil
}

func (s *Service) DeleteMerchant(ctx context.Context, id int64) error {
	if _, err := s.repo.GetMerchant(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteMerchant(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "merchants", "delete")
	return nil
}

func (s *Service) CreateItem(ctx context.Context, item domain.Item) (*domain.Item, error) {
	item.Description = strings.TrimSpace(item.Description)
	item.ShortDescription = strings.TrimSpace(item.ShortDescription)
	if item.Description == "" {
		return nil, store.Invalid("description", "is required")
	}
	if item.ReorderLevelUpper < 0 || item.ReorderLevelLower < 0 {
		return nil, store.Invalid("reorder_level", "must not be negative")
	}
	if item.ReorderLevelUpper > 0 && item.ReorderLevelLower > item.ReorderLevelUpper {
		return nil, store.Invalid("reorder_level_lower", "must not exceed reorder_level_upper")
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "items", "create")
	return created, nil
}

func (s *Service) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) ListItems(ctx context.Context, filter store.ItemFilter, page store.Page) ([]domain.Item, int64, error) {
	return s.repo.ListItems(ctx, filter, page)
}

func (s *Service) UpdateItem(ctx context.Context, id int64, req domain.ItemUpdateRequest) (*domain.Item, error) {
	existing, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, store.Invalid("description", "is required")
		}
		updated.Description = description
	}
	if req.ShortDescription != nil {
		updated.ShortDescription = strings.TrimSpace(*req.ShortDescription)
	}
	if req.Category != nil {
		updated.Category = strings.TrimSpace(*req.Category)
	}
	if req.Unit != nil {
		updated.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.ReorderLevelUpper != nil {
		if *req.ReorderLevelUpper < 0 {
			return nil, store.Invalid("reorder_level_upper", "must not be negative")
		}
		updated.ReorderLevelUpper = *req.ReorderLevelUpper
	}
	if req.ReorderLevelLower != nil {
		if *req.ReorderLevelLower < 0 {
			return nil, store.Invalid("reorder_level_lower", "must not be negative")
		}
		updated.ReorderLevelLower = *req.ReorderLevelLower
	}
	if updated.ReorderLevelUpper > 0 && updated.ReorderLevelLower > updated.ReorderLevelUpper {
		return nil, store.Invalid("reorder_level_lower", "must not exceed reorder_level_upper")
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateItem(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "items", "update")
	return saved, nil
}

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	if _, err := s.repo.GetItem(ctx, id); err != nil {
		return err
	}
	if err := s.guardDelete(ctx, domain.KindItem, id, domain.KindDeliveryDetail, "item_id"); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "items", "delete")
	return nil
}

func (s *Service) CreateDelivery(ctx context.Context, delivery domain.Delivery) (*domain.Delivery, error) {
	delivery.DRNumber = strings.TrimSpace(delivery.DRNumber)
	if delivery.DRNumber == "" {
		return nil, store.Invalid("dr_number", "is required")
	}
	if err := validateDate("date", delivery.Date); err != nil {
		return nil, err
	}
	if delivery.Status == "" {
		delivery.Status = domain.DeliveryStatusDraft
	}
	if !isDeliveryStatus(delivery.Status) {
		return nil, store.Invalid("status", "must be Draft or Finalized")
	}
	if err := s.requireRef(ctx, domain.KindSupplier, "supplier_id", delivery.SupplierID); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, domain.KindAccount, "account_id", delivery.AccountID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateDelivery(ctx, delivery)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "deliveries", "create")
	return created, nil
}

func (s *Service) GetDelivery(ctx context.Context, id int64) (*domain.Delivery, error) {
	return s.repo.GetDelivery(ctx, id)
}

func (s *Service) ListDeliveries(ctx context.Context, filter store.DeliveryFilter, page store.Page) ([]domain.Delivery, int64, error) {
	return s.repo.ListDeliveries(ctx, filter, page)
}

func (s *Service) UpdateDelivery(ctx context.Context, id int64, req domain.DeliveryUpdateRequest) (*domain.Delivery, error) {
	existing, err := s.repo.GetDelivery(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.DRNumber != nil {
		number := strings.TrimSpace(*req.DRNumber)
		if number == "" {
			return nil, store.Invalid("dr_number", "is required")
		}
		updated.DRNumber = number
	}
	if req.Date != nil {
		if err := validateDate("date", *req.Date); err != nil {
			return nil, err
		}
		updated.Date = *req.Date
	}
	if req.DeliveryBox != nil {
		updated.DeliveryBox = *req.DeliveryBox
	}
	if req.DeliveryWeight != nil {
		updated.DeliveryWeight = *req.DeliveryWeight
	}
	if req.ActualBox != nil {
		updated.ActualBox = *req.ActualBox
	}
	if req.ActualWeight != nil {
		updated.ActualWeight = *req.ActualWeight
	}
	if req.TotalAmount != nil {
		updated.TotalAmount = *req.TotalAmount
	}
	if req.Status != nil {
		if !isDeliveryStatus(*req.Status) {
			return nil, store.Invalid("status", "must be Draft or Finalized")
		}
		// Finalization is one-way.
		if existing.Status == domain.DeliveryStatusFinalized && *req.Status == domain.DeliveryStatusDraft {
			return nil, store.Invalid("status", "a finalized delivery cannot return to draft")
		}
		updated.Status = *req.Status
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateDelivery(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "deliveries", "update")
	return saved, nil
}

func (s *Service) DeleteDelivery(ctx context.Context, id int64) error {
	if _, err := s.repo.GetDelivery(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteDelivery(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "deliveries", "delete")
	return nil
}

func (s *Service) CreateDeliveryDetail(ctx context.Context, detail domain.DeliveryDetail) (*domain.DeliveryDetail, error) {
	if detail.DeliveryBox < 0 || detail.DeliveryWeight < 0 || detail.ActualBox < 0 || detail.ActualWeight < 0 {
		return nil, store.Invalid("quantities", "must not be negative")
	}
	if detail.Capital < 0 {
		return nil, store.Invalid("capital", "must not be negative")
	}
	if err := s.requireRef(ctx, domain.KindDelivery, "delivery_id", detail.DeliveryID); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, domain.KindItem, "item_id", detail.ItemID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateDeliveryDetail(ctx, detail)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "delivery_details", "create")
	return created, nil
}

func (s *Service) GetDeliveryDetail(ctx context.Context, id int64) (*domain.DeliveryDetail, error) {
	return s.repo.GetDeliveryDetail(ctx, id)
}

func (s *Service) ListDeliveryDetails(ctx context.Context, filter store.DeliveryDetailFilter, page store.Page) ([]domain.DeliveryDetail, int64, error) {
	return s.repo.ListDeliveryDetails(ctx, filter, page)
}

func (s *Service) UpdateDeliveryDetail(ctx context.Context, id int64, req domain.DeliveryDetailUpdateRequest) (*domain.DeliveryDetail, error) {
	existing, err := s.repo.GetDeliveryDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.DeliveryBox != nil {
		updated.DeliveryBox = *req.DeliveryBox
	}
	if req.DeliveryWeight != nil {
		updated.DeliveryWeight = *req.DeliveryWeight
	}
	if req.ActualBox != nil {
		updated.ActualBox = *req.ActualBox
	}
	if req.ActualWeight != nil {
		updated.ActualWeight = *req.ActualWeight
	}
	if req.Capital != nil {
		if *req.Capital < 0 {
			return nil, store.Invalid("capital", "must not be negative")
		}
		updated.Capital = *req.Capital
	}
	if updated.DeliveryBox < 0 || updated.DeliveryWeight < 0 || updated.ActualBox < 0 || updated.ActualWeight < 0 {
		return nil, store.Invalid("quantities", "must not be negative")
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateDeliveryDetail(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "delivery_details", "update")
	return saved, nil
}

func (s *Service) DeleteDeliveryDetail(ctx context.Context, id int64) error {
	if _, err := s.repo.GetDeliveryDetail(ctx, id); err != nil {
		return err
	}
	if err := s.guardDelete(ctx, domain.KindDeliveryDetail, id, domain.KindStock, "delivery_detail_id"); err != nil {
		return err
	}
	if err := s.repo.DeleteDeliveryDetail(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "delivery_details", "delete")
	return nil
}

func (s *Service) CreateDeliveryItemDetail(ctx context.Context, detail domain.DeliveryItemDetail) (*domain.DeliveryItemDetail, error) {
	detail.BoxCode = strings.TrimSpace(detail.BoxCode)
	if detail.DeliveryWeight < 0 || detail.ActualWeight < 0 {
		return nil, store.Invalid("weights", "must not be negative")
	}
	if err := s.requireRef(ctx, domain.KindDeliveryDetail, "delivery_detail_id", detail.DeliveryDetailID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateDeliveryItemDetail(ctx, detail)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "delivery_item_details", "create")
	return created, nil
}

func (s *Service) GetDeliveryItemDetail(ctx context.Context, id int64) (*domain.DeliveryItemDetail, error) {
	return s.repo.GetDeliveryItemDetail(ctx, id)
}

func (s *Service) ListDeliveryItemDetails(ctx context.Context, filter store.DeliveryItemDetailFilter, page store.Page) ([]domain.DeliveryItemDetail, int64, error) {
	return s.repo.ListDeliveryItemDetails(ctx, filter, page)
}

func (s *Service) UpdateDeliveryItemDetail(ctx context.Context, id int64, req domain.DeliveryItemDetailUpdateRequest) (*domain.DeliveryItemDetail, error) {
	existing, err := s.repo.GetDeliveryItemDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.BoxCode != nil {
		updated.BoxCode = strings.TrimSpace(*req.BoxCode)
	}
	if req.DeliveryWeight != nil {
		if *req.DeliveryWeight < 0 {
			return nil, store.Invalid("delivery_weight", "must not be negative")
		}
		updated.DeliveryWeight = *req.DeliveryWeight
	}
	if req.ActualWeight != nil {
		if *req.ActualWeight < 0 {
			return nil, store.Invalid("actual_weight", "must not be negative")
		}
		updated.ActualWeight = *req.ActualWeight
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateDeliveryItemDetail(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "delivery_item_details", "update")
	return saved, nil
}

func (s *Service) DeleteDeliveryItemDetail(ctx context.Context, id int64) error {
	if _, err := s.repo.GetDeliveryItemDetail(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteDeliveryItemDetail(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "delivery_item_details", "delete")
	return nil
}

func (s *Service) CreateStock(ctx context.Context, stock domain.Stock) (*domain.Stock, error) {
	if stock.ActiveMarkup < 0 {
		return nil, store.Invalid("active_markup", "must not be negative")
	}
	if stock.ActiveSellingPrice < 0 {
		return nil, store.Invalid("active_selling_price", "must not be negative")
	}
	if err := s.requireRef(ctx, domain.KindDeliveryDetail, "delivery_detail_id", stock.DeliveryDetailID); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, domain.KindAccount, "account_id", stock.AccountID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateStock(ctx, stock)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "stocks", "create")
	return created, nil
}

func (s *Service) GetStock(ctx context.Context, id int64) (*domain.Stock, error) {
	return s.repo.GetStock(ctx, id)
}

func (s *Service) ListStocks(ctx context.Context, filter store.StockFilter, page store.Page) ([]domain.Stock, int64, error) {
	return s.repo.ListStocks(ctx, filter, page)
}

// UpdateStockPrice applies a price change and its PriceLog entry in one
// atomic store operation. Identical values are a no-op and append nothing.
func (s *Service) UpdateStockPrice(ctx context.Context, stockID int64, req domain.StockUpdateRequest) (*domain.Stock, error) {
	existing, err := s.repo.GetStock(ctx, stockID)
	if err != nil {
		return nil, err
	}

	markUp := existing.ActiveMarkup
	sellingPrice := existing.ActiveSellingPrice
	if req.ActiveMarkup != nil {
		if *req.ActiveMarkup < 0 {
			return nil, store.Invalid("active_markup", "must not be negative")
		}
		markUp = *req.ActiveMarkup
	}
	if req.ActiveSellingPrice != nil {
		if *req.ActiveSellingPrice < 0 {
			return nil, store.Invalid("active_selling_price", "must not be negative")
		}
		sellingPrice = *req.ActiveSellingPrice
	}

	if markUp == existing.ActiveMarkup && sellingPrice == existing.ActiveSellingPrice {
		return existing, store.ErrNoChanges
	}

	accountID := existing.AccountID
	if actor, ok := ActorFromContext(ctx); ok && actor.AccountID > 0 {
		accountID = actor.AccountID
	}

	updated, _, err := s.repo.UpdateStockPrice(ctx, stockID, markUp, sellingPrice, accountID)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "stocks", "price_update")
	return updated, nil
}

// BulkUpdateStockPrices applies many price changes independently. One bad
// entry never aborts the batch; it is reported in the failures list instead.
func (s *Service) BulkUpdateStockPrices(ctx context.Context, req domain.BulkPriceUpdateRequest) (domain.BulkPriceUpdateResponse, error) {
	if len(req.Updates) == 0 {
		return domain.BulkPriceUpdateResponse{}, store.Invalid("updates", "is required")
	}

	accountID := req.AccountID
	if actor, ok := ActorFromContext(ctx); ok && actor.AccountID > 0 {
		accountID = actor.AccountID
	}

	resp := domain.BulkPriceUpdateResponse{}
	for _, update := range req.Updates {
		if update.ActiveMarkUp < 0 || update.ActiveSellingPrice < 0 {
			resp.Failures = append(resp.Failures, domain.BulkPriceUpdateFailure{
				StockID: update.StockID,
				Reason:  "price values must not be negative",
			})
			continue
		}

		existing, err := s.repo.GetStock(ctx, update.StockID)
		if err != nil {
			resp.Failures = append(resp.Failures, domain.BulkPriceUpdateFailure{
				StockID: update.StockID,
				Reason:  failureReason(err),
			})
			continue
		}
		if existing.ActiveMarkup == update.ActiveMarkUp && existing.ActiveSellingPrice == update.ActiveSellingPrice {
			resp.UpdatedCount++
			continue
		}

		if _, _, err := s.repo.UpdateStockPrice(ctx, update.StockID, update.ActiveMarkUp, update.ActiveSellingPrice, accountID); err != nil {
			resp.Failures = append(resp.Failures, domain.BulkPriceUpdateFailure{
				StockID: update.StockID,
				Reason:  failureReason(err),
			})
			continue
		}
		resp.UpdatedCount++
	}

	if resp.UpdatedCount > 0 {
		s.logEvent(ctx, "stocks", "bulk_price_update")
	}
	return resp, nil
}

func (s *Service) DeleteStock(ctx context.Context, id int64) error {
	if _, err := s.repo.GetStock(ctx, id); err != nil {
		return err
	}
	if err := s.guardDelete(ctx, domain.KindStock, id, domain.KindOrder, "stock_id"); err != nil {
		return err
	}
	if err := s.repo.DeleteStock(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "stocks", "delete")
	return nil
}

func (s *Service) CreateStockOnHand(ctx context.Context, onHand domain.StockOnHand) (*domain.StockOnHand, error) {
	if onHand.NumberOfBox < 0 || onHand.Quantity < 0 {
		return nil, store.Invalid("quantities", "must not be negative")
	}
	if err := s.requireRef(ctx, domain.KindStock, "stock_id", onHand.StockID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateStockOnHand(ctx, onHand)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "stock_on_hand", "create")
	return created, nil
}

func (s *Service) GetStockOnHand(ctx context.Context, id int64) (*domain.StockOnHand, error) {
	return s.repo.GetStockOnHand(ctx, id)
}

func (s *Service) ListStockOnHand(ctx context.Context, filter store.StockOnHandFilter, page store.Page) ([]domain.StockOnHand, int64, error) {
	return s.repo.ListStockOnHand(ctx, filter, page)
}

func (s *Service) GetStockOnHandStats(ctx context.Context) (domain.StockOnHandStats, error) {
	return s.repo.GetStockOnHandStats(ctx)
}

func (s *Service) UpdateStockOnHand(ctx context.Context, id int64, req domain.StockOnHandUpdateRequest) (*domain.StockOnHand, error) {
	existing, err := s.repo.GetStockOnHand(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.NumberOfBox != nil {
		if *req.NumberOfBox < 0 {
			return nil, store.Invalid("number_of_box", "must not be negative")
		}
		updated.NumberOfBox = *req.NumberOfBox
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, store.Invalid("quantity", "must not be negative")
		}
		updated.Quantity = *req.Quantity
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateStockOnHand(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "stock_on_hand", "update")
	return saved, nil
}

func (s *Service) DeleteStockOnHand(ctx context.Context, id int64) error {
	if _, err := s.repo.GetStockOnHand(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteStockOnHand(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "stock_on_hand", "delete")
	return nil
}

func (s *Service) GetPriceLog(ctx context.Context, id int64) (*domain.PriceLog, error) {
	return s.repo.GetPriceLog(ctx, id)
}

func (s *Service) ListPriceLogs(ctx context.Context, filter store.PriceLogFilter, page store.Page) ([]domain.PriceLog, int64, error) {
	return s.repo.ListPriceLogs(ctx, filter, page)
}

func (s *Service) ListPriceHistory(ctx context.Context, stockID int64, limit int) ([]domain.PriceLog, error) {
	if _, err := s.repo.GetStock(ctx, stockID); err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = 50
	}
	return s.repo.ListPriceLogsByStock(ctx, stockID, limit)
}

func (s *Service) CreateTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	if tx.AmountDue < 0 {
		return nil, store.Invalid("amount_due", "must not be negative")
	}
	if tx.Discount < 0 {
		return nil, store.Invalid("discount", "must not be negative")
	}
	if tx.Status == "" {
		tx.Status = domain.TransactionStatusDraft
	}
	if !isTransactionStatus(tx.Status) {
		return nil, store.Invalid("status", "must be Active, Draft or Void")
	}
	if err := s.requireRef(ctx, domain.KindMerchant, "merchant_id", tx.MerchantID); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, domain.KindAccount, "account_id", tx.AccountID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "transactions", "create")
	return created, nil
}

func (s *Service) GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) ListTransactions(ctx context.Context, filter store.TransactionFilter, page store.Page) ([]domain.Transaction, int64, error) {
	return s.repo.ListTransactions(ctx, filter, page)
}

func (s *Service) GetTransactionStats(ctx context.Context, filter store.TransactionFilter) (domain.TransactionStats, error) {
	return s.repo.GetTransactionStats(ctx, filter)
}

func (s *Service) UpdateTransaction(ctx context.Context, id int64, req domain.TransactionUpdateRequest) (*domain.Transaction, error) {
	existing, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.AmountDue != nil {
		if *req.AmountDue < 0 {
			return nil, store.Invalid("amount_due", "must not be negative")
		}
		updated.AmountDue = *req.AmountDue
	}
	if req.Discount != nil {
		if *req.Discount < 0 {
			return nil, store.Invalid("discount", "must not be negative")
		}
		updated.Discount = *req.Discount
	}
	if req.Status != nil {
		if !isTransactionStatus(*req.Status) {
			return nil, store.Invalid("status", "must be Active, Draft or Void")
		}
		updated.Status = *req.Status
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateTransaction(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "transactions", "update")
	return saved, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id int64) error {
	if _, err := s.repo.GetTransaction(ctx, id); err != nil {
		return err
	}
	if err := s.guardDelete(ctx, domain.KindTransaction, id, domain.KindOrder, "transaction_id"); err != nil {
		return err
	}
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "transactions", "delete")
	return nil
}

func (s *Service) CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	if order.NumberOfBox < 0 || order.Quantity < 0 {
		return nil, store.Invalid("quantities", "must not be negative")
	}
	if order.UnitCost < 0 || order.Amount < 0 || order.Discount < 0 {
		return nil, store.Invalid("amounts", "must not be negative")
	}
	if err := s.requireRef(ctx, domain.KindTransaction, "transaction_id", order.TransactionID); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, domain.KindStock, "stock_id", order.StockID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "orders", "create")
	return created, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, filter store.OrderFilter, page store.Page) ([]domain.Order, int64, error) {
	return s.repo.ListOrders(ctx, filter, page)
}

func (s *Service) UpdateOrder(ctx context.Context, id int64, req domain.OrderUpdateRequest) (*domain.Order, error) {
	existing, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.NumberOfBox != nil {
		updated.NumberOfBox = *req.NumberOfBox
	}
	if req.Quantity != nil {
		updated.Quantity = *req.Quantity
	}
	if req.UnitCost != nil {
		updated.UnitCost = *req.UnitCost
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.Discount != nil {
		updated.Discount = *req.Discount
	}
	if updated.NumberOfBox < 0 || updated.Quantity < 0 {
		return nil, store.Invalid("quantities", "must not be negative")
	}
	if updated.UnitCost < 0 || updated.Amount < 0 || updated.Discount < 0 {
		return nil, store.Invalid("amounts", "must not be negative")
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateOrder(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "orders", "update")
	return saved, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	if _, err := s.repo.GetOrder(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "orders", "delete")
	return nil
}

func (s *Service) CreatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	if payment.TotalPayments < 0 {
		return nil, store.Invalid("total_payments", "must not be negative")
	}
	if err := s.requireRef(ctx, domain.KindTransaction, "transaction_id", payment.TransactionID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreatePayment(ctx, payment)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "payments", "create")
	return created, nil
}

func (s *Service) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *Service) ListPayments(ctx context.Context, filter store.PaymentFilter, page store.Page) ([]domain.Payment, int64, error) {
	return s.repo.ListPayments(ctx, filter, page)
}

func (s *Service) UpdatePayment(ctx context.Context, id int64, req domain.PaymentUpdateRequest) (*domain.Payment, error) {
	existing, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.TotalPayments != nil {
		if *req.TotalPayments < 0 {
			return nil, store.Invalid("total_payments", "must not be negative")
		}
		updated.TotalPayments = *req.TotalPayments
	}
	if req.AvailableBalance != nil {
		updated.AvailableBalance = *req.AvailableBalance
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdatePayment(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "payments", "update")
	return saved, nil
}

func (s *Service) DeletePayment(ctx context.Context, id int64) error {
	if _, err := s.repo.GetPayment(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeletePayment(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "payments", "delete")
	return nil
}

func (s *Service) CreatePaymentMethod(ctx context.Context, method domain.PaymentMethod) (*domain.PaymentMethod, error) {
	method.Description = strings.TrimSpace(method.Description)
	method.ShortDescription = strings.TrimSpace(method.ShortDescription)
	method.Type = strings.TrimSpace(method.Type)
	if method.Description == "" {
		return nil, store.Invalid("description", "is required")
	}

	created, err := s.repo.CreatePaymentMethod(ctx, method)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "payment_methods", "create")
	return created, nil
}

func (s *Service) GetPaymentMethod(ctx context.Context, id int64) (*domain.PaymentMethod, error) {
	return s.repo.GetPaymentMethod(ctx, id)
}

func (s *Service) ListPaymentMethods(ctx context.Context, filter store.PaymentMethodFilter, page store.Page) ([]domain.PaymentMethod, int64, error) {
	return s.repo.ListPaymentMethods(ctx, filter, page)
}

func (s *Service) ListPaymentMethodTypes(ctx context.Context) ([]string, error) {
	return s.repo.ListPaymentMethodTypes(ctx)
}

func (s *Service) UpdatePaymentMethod(ctx context.Context, id int64, req domain.PaymentMethodUpdateRequest) (*domain.PaymentMethod, error) {
	existing, err := s.repo.GetPaymentMethod(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, store.Invalid("description", "is required")
		}
		updated.Description = description
	}
	if req.ShortDescription != nil {
		updated.ShortDescription = strings.TrimSpace(*req.ShortDescription)
	}
	if req.Type != nil {
		updated.Type = strings.TrimSpace(*req.Type)
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdatePaymentMethod(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "payment_methods", "update")
	return saved, nil
}

func (s *Service) DeletePaymentMethod(ctx context.Context, id int64) error {
	if _, err := s.repo.GetPaymentMethod(ctx, id); err != nil {
		return err
	}
	if err := s.guardDelete(ctx, domain.KindPaymentMethod, id, domain.KindPaymentDetail, "payment_method_id"); err != nil {
		return err
	}
	if err := s.repo.DeletePaymentMethod(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "payment_methods", "delete")
	return nil
}

func (s *Service) CreatePaymentDetail(ctx context.Context, detail domain.PaymentDetail) (*domain.PaymentDetail, error) {
	if detail.AmountDue < 0 {
		return nil, store.Invalid("amount_due", "must not be negative")
	}
	if detail.Status == "" {
		detail.Status = domain.PaymentDetailStatusActive
	}
	if !isPaymentDetailStatus(detail.Status) {
		return nil, store.Invalid("status", "must be Active or Void")
	}
	if err := s.requireRef(ctx, domain.KindPayment, "payment_id", detail.PaymentID); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, domain.KindPaymentMethod, "payment_method_id", detail.PaymentMethodID); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, domain.KindAccount, "account_id", detail.AccountID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreatePaymentDetail(ctx, detail)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "payment_details", "create")
	return created, nil
}

func (s *Service) GetPaymentDetail(ctx context.Context, id int64) (*domain.PaymentDetail, error) {
	return s.repo.GetPaymentDetail(ctx, id)
}

func (s *Service) ListPaymentDetails(ctx context.Context, filter store.PaymentDetailFilter, page store.Page) ([]domain.PaymentDetail, int64, error) {
	return s.repo.ListPaymentDetails(ctx, filter, page)
}

func (s *Service) UpdatePaymentDetail(ctx context.Context, id int64, req domain.PaymentDetailUpdateRequest) (*domain.PaymentDetail, error) {
	existing, err := s.repo.GetPaymentDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.InvoiceNumber != nil {
		updated.InvoiceNumber = *req.InvoiceNumber
	}
	if req.AmountDue != nil {
		if *req.AmountDue < 0 {
			return nil, store.Invalid("amount_due", "must not be negative")
		}
		updated.AmountDue = *req.AmountDue
	}
	if req.Balance != nil {
		updated.Balance = *req.Balance
	}
	if req.Status != nil {
		if !isPaymentDetailStatus(*req.Status) {
			return nil, store.Invalid("status", "must be Active or Void")
		}
		updated.Status = *req.Status
	}
	if req.Remarks != nil {
		updated.Remarks = strings.TrimSpace(*req.Remarks)
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdatePaymentDetail(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "payment_details", "update")
	return saved, nil
}

func (s *Service) DeletePaymentDetail(ctx context.Context, id int64) error {
	if _, err := s.repo.GetPaymentDetail(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeletePaymentDetail(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "payment_details", "delete")
	return nil
}

func (s *Service) CreateSupplierReturn(ctx context.Context, ret domain.SupplierReturn) (*domain.SupplierReturn, error) {
	if ret.NumberOfBox < 0 || ret.Quantity < 0 {
		return nil, store.Invalid("quantities", "must not be negative")
	}
	if err := s.requireRef(ctx, domain.KindSupplier, "supplier_id", ret.SupplierID); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, domain.KindDeliveryDetail, "delivery_detail_id", ret.DeliveryDetailID); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, domain.KindAccount, "account_id", ret.AccountID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateSupplierReturn(ctx, ret)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "supplier_returns", "create")
	return created, nil
}

func (s *Service) GetSupplierReturn(ctx context.Context, id int64) (*domain.SupplierReturn, error) {
	return s.repo.GetSupplierReturn(ctx, id)
}

func (s *Service) ListSupplierReturns(ctx context.Context, filter store.SupplierReturnFilter, page store.Page) ([]domain.SupplierReturn, int64, error) {
	return s.repo.ListSupplierReturns(ctx, filter, page)
}

func (s *Service) UpdateSupplierReturn(ctx context.Context, id int64, req domain.SupplierReturnUpdateRequest) (*domain.SupplierReturn, error) {
	existing, err := s.repo.GetSupplierReturn(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.NumberOfBox != nil {
		if *req.NumberOfBox < 0 {
			return nil, store.Invalid("number_of_box", "must not be negative")
		}
		updated.NumberOfBox = *req.NumberOfBox
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, store.Invalid("quantity", "must not be negative")
		}
		updated.Quantity = *req.Quantity
	}
	if req.ActiveStatus != nil {
		updated.ActiveStatus = *req.ActiveStatus
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateSupplierReturn(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "supplier_returns", "update")
	return saved, nil
}

func (s *Service) DeleteSupplierReturn(ctx context.Context, id int64) error {
	if _, err := s.repo.GetSupplierReturn(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteSupplierReturn(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "supplier_returns", "delete")
	return nil
}

func (s *Service) CreateSupplierReturnLog(ctx context.Context, entry domain.SupplierReturnLog) (*domain.SupplierReturnLog, error) {
	entry.Status = strings.TrimSpace(entry.Status)
	if entry.Status == "" {
		return nil, store.Invalid("status", "is required")
	}
	if err := s.requireRef(ctx, domain.KindSupplierReturn, "supplier_return_id", entry.SupplierReturnID); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, domain.KindAccount, "account_id", entry.AccountID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateSupplierReturnLog(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "supplier_return_logs", "create")
	return created, nil
}

func (s *Service) GetSupplierReturnLog(ctx context.Context, id int64) (*domain.SupplierReturnLog, error) {
	return s.repo.GetSupplierReturnLog(ctx, id)
}

func (s *Service) ListSupplierReturnLogs(ctx context.Context, filter store.SupplierReturnLogFilter, page store.Page) ([]domain.SupplierReturnLog, int64, error) {
	return s.repo.ListSupplierReturnLogs(ctx, filter, page)
}

func (s *Service) CreateMerchantReturn(ctx context.Context, ret domain.MerchantReturn) (*domain.MerchantReturn, error) {
	if ret.NumberOfBox < 0 || ret.Quantity < 0 {
		return nil, store.Invalid("quantities", "must not be negative")
	}
	if err := s.requireRef(ctx, domain.KindMerchant, "merchant_id", ret.MerchantID); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, domain.KindOrder, "order_id", ret.OrderID); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, domain.KindAccount, "account_id", ret.AccountID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateMerchantReturn(ctx, ret)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "merchant_returns", "create")
	return created, nil
}

func (s *Service) GetMerchantReturn(ctx context.Context, id int64) (*domain.MerchantReturn, error) {
	return s.repo.GetMerchantReturn(ctx, id)
}

func (s *Service) ListMerchantReturns(ctx context.Context, filter store.MerchantReturnFilter, page store.Page) ([]domain.MerchantReturn, int64, error) {
	return s.repo.ListMerchantReturns(ctx, filter, page)
}

func (s *Service) UpdateMerchantReturn(ctx context.Context, id int64, req domain.MerchantReturnUpdateRequest) (*domain.MerchantReturn, error) {
	existing, err := s.repo.GetMerchantReturn(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.NumberOfBox != nil {
		if *req.NumberOfBox < 0 {
			return nil, store.Invalid("number_of_box", "must not be negative")
		}
		updated.NumberOfBox = *req.NumberOfBox
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, store.Invalid("quantity", "must not be negative")
		}
		updated.Quantity = *req.Quantity
	}
	if req.ActiveStatus != nil {
		updated.ActiveStatus = *req.ActiveStatus
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateMerchantReturn(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "merchant_returns", "update")
	return saved, nil
}

func (s *Service) DeleteMerchantReturn(ctx context.Context, id int64) error {
	if _, err := s.repo.GetMerchantReturn(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteMerchantReturn(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, "merchant_returns", "delete")
	return nil
}

func (s *Service) CreateMerchantReturnLog(ctx context.Context, entry domain.MerchantReturnLog) (*domain.MerchantReturnLog, error) {
	entry.Status = strings.TrimSpace(entry.Status)
	if entry.Status == "" {
		return nil, store.Invalid("status", "is required")
	}
	if err := s.requireRef(ctx, domain.KindMerchantReturn, "merchant_return_id", entry.MerchantReturnID); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, domain.KindAccount, "account_id", entry.AccountID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateMerchantReturnLog(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, "merchant_return_logs", "create")
	return created, nil
}

func (s *Service) GetMerchantReturnLog(ctx context.Context, id int64) (*domain.MerchantReturnLog, error) {
	return s.repo.GetMerchantReturnLog(ctx, id)
}

func (s *Service) ListMerchantReturnLogs(ctx context.Context, filter store.MerchantReturnLogFilter, page store.Page) ([]domain.MerchantReturnLog, int64, error) {
	return s.repo.ListMerchantReturnLogs(ctx, filter, page)
}

func (s *Service) GetLog(ctx context.Context, id int64) (*domain.Log, error) {
	return s.repo.GetLog(ctx, id)
}

func (s *Service) ListLogs(ctx context.Context, filter store.LogFilter, page store.Page) ([]domain.Log, int64, error) {
	return s.repo.ListLogs(ctx, filter, page)
}

// DeleteLog prunes a single audit row. There is no update path; audit rows
// are otherwise append-only.
func (s *Service) DeleteLog(ctx context.Context, id int64) error {
	if _, err := s.repo.GetLog(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteLog(ctx, id)
}

func (s *Service) ListLogModules(ctx context.Context) ([]string, error) {
	return s.repo.ListLogModules(ctx)
}

func (s *Service) ListLogEvents(ctx context.Context) ([]string, error) {
	return s.repo.ListLogEvents(ctx)
}

func (s *Service) CreateSysSetting(ctx context.Context, setting domain.SysSetting) (*domain.SysSetting, error) {
	setting.Attribute = strings.TrimSpace(setting.Attribute)
	if setting.Attribute == "" {
		return nil, store.Invalid("attribute", "is required")
	}

	created, err := s.repo.CreateSysSetting(ctx, setting)
	if err != nil {
		return nil, err
	}
	if err := s.settings.Invalidate(ctx, created.Attribute); err != nil {
		log.Printf("[cache] WARN: failed to invalidate setting %s: %v", created.Attribute, err)
	}
	s.logEvent(ctx, "sys_settings", "create")
	return created, nil
}

func (s *Service) GetSysSetting(ctx context.Context, id int64) (*domain.SysSetting, error) {
	return s.repo.GetSysSetting(ctx, id)
}

// GetSysSettingByAttribute reads through the setting cache. A cache miss or
// cache error falls back to the store.
func (s *Service) GetSysSettingByAttribute(ctx context.Context, attribute string) (*domain.SysSetting, error) {
	attribute = strings.TrimSpace(attribute)
	if attribute == "" {
		return nil, store.Invalid("attribute", "is required")
	}

	if cached, ok, err := s.settings.Get(ctx, attribute); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Printf("[cache] WARN: setting lookup %s failed: %v", attribute, err)
	}

	setting, err := s.repo.GetSysSettingByAttribute(ctx, attribute)
	if err != nil {
		return nil, err
	}
	if err := s.settings.Set(ctx, attribute, setting, s.settingTTL); err != nil {
		log.Printf("[cache] WARN: failed to cache setting %s: %v", attribute, err)
	}
	return setting, nil
}

func (s *Service) ListSysSettings(ctx context.Context, filter store.SysSettingFilter, page store.Page) ([]domain.SysSetting, int64, error) {
	return s.repo.ListSysSettings(ctx, filter, page)
}

func (s *Service) ListSysSettingAttributes(ctx context.Context) ([]string, error) {
	return s.repo.ListSysSettingAttributes(ctx)
}

func (s *Service) UpdateSysSetting(ctx context.Context, id int64, req domain.SysSettingUpdateRequest) (*domain.SysSetting, error) {
	existing, err := s.repo.GetSysSetting(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Attribute != nil {
		attribute := strings.TrimSpace(*req.Attribute)
		if attribute == "" {
			return nil, store.Invalid("attribute", "is required")
		}
		updated.Attribute = attribute
	}
	if req.Value != nil {
		updated.Value = *req.Value
	}

	if updated == *existing {
		return existing, store.ErrNoChanges
	}

	saved, err := s.repo.UpdateSysSetting(ctx, updated)
	if err != nil {
		return nil, err
	}
	for _, attribute := range []string{existing.Attribute, saved.Attribute} {
		if err := s.settings.Invalidate(ctx, attribute); err != nil {
			log.Printf("[cache] WARN: failed to invalidate setting %s: %v", attribute, err)
		}
	}
	s.logEvent(ctx, "sys_settings", "update")
	return saved, nil
}

func (s *Service) DeleteSysSetting(ctx context.Context, id int64) error {
	existing, err := s.repo.GetSysSetting(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteSysSetting(ctx, id); err != nil {
		return err
	}
	if err := s.settings.Invalidate(ctx, existing.Attribute); err != nil {
		log.Printf("[cache] WARN: failed to invalidate setting %s: %v", existing.Attribute, err)
	}
	s.logEvent(ctx, "sys_settings", "delete")
	return nil
}

func isDeliveryStatus(status string) bool {
	switch status {
	case domain.DeliveryStatusDraft, domain.DeliveryStatusFinalized:
		return true
	default:
		return false
	}
}

func isTransactionStatus(status string) bool {
	switch status {
	case domain.TransactionStatusActive, domain.TransactionStatusDraft, domain.TransactionStatusVoid:
		return true
	default:
		return false
	}
}

func isPaymentDetailStatus(status string) bool {
	switch status {
	case domain.PaymentDetailStatusActive, domain.PaymentDetailStatusVoid:
		return true
	default:
		return false
	}
}

func validateDate(field string, value string) error {
	if strings.TrimSpace(value) == "" {
		return store.Invalid(field, "is required")
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return store.Invalid(field, "must be formatted YYYY-MM-DD")
	}
	return nil
}

func failureReason(err error) string {
	if errors.Is(err, store.ErrNotFound) {
		return "stock not found"
	}
	return err.Error()
}

// employeeEqual compares employees including the permission map, which rules
// out the plain struct comparison used for the other entities.
func employeeEqual(a, b domain.Employee) bool {
	if a.EmployeeID != b.EmployeeID || a.Firstname != b.Firstname || a.Lastname != b.Lastname || a.Position != b.Position {
		return false
	}
	if len(a.Permissions) != len(b.Permissions) {
		return false
	}
	for key, value := range a.Permissions {
		if other, ok := b.Permissions[key]; !ok || other != value {
			return false
		}
	}
	return true
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
