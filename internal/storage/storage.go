package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/instanthaul/haul-platform/internal/model"
)

// Storage is the persistence port of the booking core. Every caller goes
// through this interface; no other access to records exists.
//
// Creates accept a record without server-assigned fields (id, status,
// derived fees, timestamps) and fill them in place. Point lookups return
// ErrNotFound when the id has no row. Collection queries return an empty
// slice, never an error, when nothing matches; the in-memory store keeps
// insertion order, the relational store orders by id.
//
// Partial updates apply a sparse patch atomically and refresh UpdatedAt.
// The stores deliberately do not police status monotonicity on generic
// patches; that policy belongs to the lifecycle layer.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error

	// Service providers
	GetServiceProvider(ctx context.Context, id int64) (*model.ServiceProvider, error)
	ListServiceProviders(ctx context.Context) ([]model.ServiceProvider, error)
	ListAvailableServiceProviders(ctx context.Context) ([]model.ServiceProvider, error)
	CreateServiceProvider(ctx context.Context, provider *model.ServiceProvider) error
	UpdateServiceProviderAvailability(ctx context.Context, id int64, isAvailable bool) error

	// Service categories
	GetServiceCategory(ctx context.Context, id int64) (*model.ServiceCategory, error)
	ListServiceCategories(ctx context.Context) ([]model.ServiceCategory, error)
	CreateServiceCategory(ctx context.Context, category *model.ServiceCategory) error

	// Pricing items
	ListPricingItems(ctx context.Context) ([]model.PricingItem, error)
	ListPricingItemsByCategory(ctx context.Context, categoryID int64) ([]model.PricingItem, error)
	CreatePricingItem(ctx context.Context, item *model.PricingItem) error

	// Service requests
	GetServiceRequest(ctx context.Context, id int64) (*model.ServiceRequest, error)
	ListUserServiceRequests(ctx context.Context, userID int64) ([]model.ServiceRequest, error)
	CreateServiceRequest(ctx context.Context, request *model.ServiceRequest) error
	UpdateServiceRequest(ctx context.Context, id int64, patch ServiceRequestPatch) (*model.ServiceRequest, error)

	// Orders
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	ListUserOrders(ctx context.Context, userID int64) ([]model.Order, error)
	ListProviderOrders(ctx context.Context, providerID int64) ([]model.Order, error)
	GetUserActiveOrder(ctx context.Context, userID int64) (*model.Order, error)
	CreateOrder(ctx context.Context, order *model.Order) error
	UpdateOrder(ctx context.Context, id int64, patch OrderPatch) (*model.Order, error)

	// Audit events
	RecordEvent(ctx context.Context, event *model.Event) error
	ListEvents(ctx context.Context, limit int) ([]model.Event, error)
}

// ServiceRequestPatch names the request fields a caller may change.
// Identity, foreign key to the user/category, and timestamps are not
// patchable. Nil fields are left untouched.
type ServiceRequestPatch struct {
	Status          *model.RequestStatus
	ItemDescription *string
	Details         *string
	Photos          *[]string
	BaseFee         *decimal.Decimal
	ItemsFee        *decimal.Decimal
	TotalCost       *decimal.Decimal
	ProviderID      *int64
}

// IsZero reports whether the patch changes nothing.
func (p ServiceRequestPatch) IsZero() bool {
	return p == ServiceRequestPatch{}
}

// OrderPatch names the order fields a caller may change.
type OrderPatch struct {
	Status        *model.OrderStatus
	PaymentStatus *model.PaymentStatus
	Rating        *int
	Review        *string
}

// IsZero reports whether the patch changes nothing.
func (p OrderPatch) IsZero() bool {
	return p == OrderPatch{}
}
