package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/instanthaul/haul-platform/internal/model"
)

var _ Storage = (*GormStorage)(nil)

// GormStorage is the relational implementation of the storage port.
// The schema enforces referential integrity on top of the explicit
// checks below; collection queries order by id so results stay stable
// regardless of how the engine returns rows.
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage wraps an opened gorm connection. The connection must be
// opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}

// Users

func (s *GormStorage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStorage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStorage) CreateUser(ctx context.Context, user *model.User) error {
	if user.Email == "" {
		return validationf("email", "must not be empty")
	}
	user.ID = 0
	user.CreatedAt = time.Now().UTC()
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

// Service providers

func (s *GormStorage) GetServiceProvider(ctx context.Context, id int64) (*model.ServiceProvider, error) {
	var p model.ServiceProvider
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStorage) ListServiceProviders(ctx context.Context) ([]model.ServiceProvider, error) {
	providers := make([]model.ServiceProvider, 0)
	err := s.db.WithContext(ctx).Order("id ASC").Find(&providers).Error
	return providers, translate(err)
}

func (s *GormStorage) ListAvailableServiceProviders(ctx context.Context) ([]model.ServiceProvider, error) {
	providers := make([]model.ServiceProvider, 0)
	err := s.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("id ASC").
		Find(&providers).Error
	return providers, translate(err)
}

func (s *GormStorage) CreateServiceProvider(ctx context.Context, provider *model.ServiceProvider) error {
	provider.ID = 0
	provider.Rating = decimal.Zero
	provider.TotalJobs = 0
	provider.IsAvailable = true
	provider.CreatedAt = time.Now().UTC()
	return translate(s.db.WithContext(ctx).Create(provider).Error)
}

func (s *GormStorage) UpdateServiceProviderAvailability(ctx context.Context, id int64, isAvailable bool) error {
	res := s.db.WithContext(ctx).
		Model(&model.ServiceProvider{}).
		Where("id = ?", id).
		Update("is_available", isAvailable)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		// Updating to the current value still affects the row in
		// Postgres; zero rows means the id is unknown.
		var count int64
		if err := s.db.WithContext(ctx).Model(&model.ServiceProvider{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return translate(err)
		}
		if count == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// Service categories

func (s *GormStorage) GetServiceCategory(ctx context.Context, id int64) (*model.ServiceCategory, error) {
	var c model.ServiceCategory
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *GormStorage) ListServiceCategories(ctx context.Context) ([]model.ServiceCategory, error) {
	categories := make([]model.ServiceCategory, 0)
	err := s.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, translate(err)
}

func (s *GormStorage) CreateServiceCategory(ctx context.Context, category *model.ServiceCategory) error {
	category.ID = 0
	return translate(s.db.WithContext(ctx).Create(category).Error)
}

// Pricing items

func (s *GormStorage) ListPricingItems(ctx context.Context) ([]model.PricingItem, error) {
	items := make([]model.PricingItem, 0)
	err := s.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, translate(err)
}

func (s *GormStorage) ListPricingItemsByCategory(ctx context.Context, categoryID int64) ([]model.PricingItem, error) {
	items := make([]model.PricingItem, 0)
	err := s.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id ASC").
		Find(&items).Error
	return items, translate(err)
}

func (s *GormStorage) CreatePricingItem(ctx context.Context, item *model.PricingItem) error {
	if item.MinPrice.GreaterThan(item.MaxPrice) {
		return validationf("minPrice", "must not exceed maxPrice")
	}
	if err := s.requireRow(ctx, &model.ServiceCategory{}, item.CategoryID, "categoryId", "service category"); err != nil {
		return err
	}
	item.ID = 0
	return translate(s.db.WithContext(ctx).Create(item).Error)
}

// Service requests

func (s *GormStorage) GetServiceRequest(ctx context.Context, id int64) (*model.ServiceRequest, error) {
	var r model.ServiceRequest
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *GormStorage) ListUserServiceRequests(ctx context.Context, userID int64) ([]model.ServiceRequest, error) {
	requests := make([]model.ServiceRequest, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&requests).Error
	return requests, translate(err)
}

func (s *GormStorage) CreateServiceRequest(ctx context.Context, request *model.ServiceRequest) error {
	if err := s.requireRow(ctx, &model.User{}, request.UserID, "userId", "user"); err != nil {
		return err
	}
	if err := s.requireRow(ctx, &model.ServiceCategory{}, request.CategoryID, "categoryId", "service category"); err != nil {
		return err
	}

	now := time.Now().UTC()
	request.ID = 0
	request.Status = model.RequestStatusPending
	if request.Photos == nil {
		request.Photos = []string{}
	}
	request.BaseFee = decimal.NullDecimal{}
	request.ItemsFee = decimal.NullDecimal{}
	request.TotalCost = decimal.NullDecimal{}
	request.ProviderID = nil
	request.CreatedAt = now
	request.UpdatedAt = now
	return translate(s.db.WithContext(ctx).Create(request).Error)
}

func (s *GormStorage) UpdateServiceRequest(ctx context.Context, id int64, patch ServiceRequestPatch) (*model.ServiceRequest, error) {
	var out model.ServiceRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r model.ServiceRequest
		if err := tx.First(&r, "id = ?", id).Error; err != nil {
			return translate(err)
		}

		updates := map[string]any{"updated_at": time.Now().UTC()}
		if patch.ProviderID != nil {
			var count int64
			if err := tx.Model(&model.ServiceProvider{}).Where("id = ?", *patch.ProviderID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return validationf("providerId", "service provider %d does not exist", *patch.ProviderID)
			}
			updates["provider_id"] = *patch.ProviderID
		}
		if patch.Status != nil {
			updates["status"] = *patch.Status
		}
		if patch.ItemDescription != nil {
			updates["item_description"] = *patch.ItemDescription
		}
		if patch.Details != nil {
			updates["details"] = *patch.Details
		}
		if patch.Photos != nil {
			updates["photos"] = datatypes.NewJSONSlice(*patch.Photos)
		}
		if patch.BaseFee != nil {
			updates["base_fee"] = *patch.BaseFee
		}
		if patch.ItemsFee != nil {
			updates["items_fee"] = *patch.ItemsFee
		}
		if patch.TotalCost != nil {
			updates["total_cost"] = *patch.TotalCost
		}

		if err := tx.Model(&model.ServiceRequest{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return translate(err)
		}
		return translate(tx.First(&out, "id = ?", id).Error)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders

func (s *GormStorage) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	if err := s.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (s *GormStorage) ListUserOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	orders := make([]model.Order, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&orders).Error
	return orders, translate(err)
}

func (s *GormStorage) ListProviderOrders(ctx context.Context, providerID int64) ([]model.Order, error) {
	orders := make([]model.Order, 0)
	err := s.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("id ASC").
		Find(&orders).Error
	return orders, translate(err)
}

// GetUserActiveOrder filters non-terminal statuses in the query itself;
// row order from the engine must not decide what "active" means. Lowest
// id wins if legacy data holds more than one.
func (s *GormStorage) GetUserActiveOrder(ctx context.Context, userID int64) (*model.Order, error) {
	var o model.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status NOT IN ?", []model.OrderStatus{model.OrderStatusCompleted, model.OrderStatusCancelled}).
		Order("id ASC").
		First(&o).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (s *GormStorage) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g := &GormStorage{db: tx}
		if err := g.requireRow(ctx, &model.ServiceRequest{}, order.RequestID, "requestId", "service request"); err != nil {
			return err
		}
		if err := g.requireRow(ctx, &model.User{}, order.UserID, "userId", "user"); err != nil {
			return err
		}
		if err := g.requireRow(ctx, &model.ServiceProvider{}, order.ProviderID, "providerId", "service provider"); err != nil {
			return err
		}

		// One active order per user, checked inside the insert transaction.
		var active int64
		err := tx.Model(&model.Order{}).
			Where("user_id = ?", order.UserID).
			Where("status NOT IN ?", []model.OrderStatus{model.OrderStatusCompleted, model.OrderStatusCancelled}).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrConflict
		}

		now := time.Now().UTC()
		order.ID = 0
		order.Status = model.OrderStatusConfirmed
		order.PaymentStatus = model.PaymentStatusPending
		order.Rating = nil
		order.Review = nil
		order.CreatedAt = now
		order.UpdatedAt = now
		return translate(tx.Create(order).Error)
	})
}

func (s *GormStorage) UpdateOrder(ctx context.Context, id int64, patch OrderPatch) (*model.Order, error) {
	if patch.Rating != nil && (*patch.Rating < 1 || *patch.Rating > 5) {
		return nil, validationf("rating", "must be between 1 and 5")
	}

	var out model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o model.Order
		if err := tx.First(&o, "id = ?", id).Error; err != nil {
			return translate(err)
		}

		updates := map[string]any{"updated_at": time.Now().UTC()}
		if patch.Status != nil {
			updates["status"] = *patch.Status
		}
		if patch.PaymentStatus != nil {
			updates["payment_status"] = *patch.PaymentStatus
		}
		if patch.Rating != nil {
			updates["rating"] = *patch.Rating
		}
		if patch.Review != nil {
			updates["review"] = *patch.Review
		}

		if err := tx.Model(&model.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return translate(err)
		}
		return translate(tx.First(&out, "id = ?", id).Error)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Audit events

func (s *GormStorage) RecordEvent(ctx context.Context, event *model.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = time.Now().UTC()
	return translate(s.db.WithContext(ctx).Create(event).Error)
}

func (s *GormStorage) ListEvents(ctx context.Context, limit int) ([]model.Event, error) {
	events := make([]model.Event, 0)
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&events).Error
	return events, translate(err)
}

// requireRow fails with a ValidationError when the referenced row does
// not exist.
func (s *GormStorage) requireRow(ctx context.Context, entity any, id int64, field, name string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(entity).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return validationf(field, "%s %d does not exist", name, id)
	}
	return nil
}
