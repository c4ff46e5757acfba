package storage

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/instanthaul/haul-platform/internal/model"
)

var _ Storage = (*MemoryStorage)(nil)

// MemoryStorage is the process-local reference implementation of the
// storage port: one map per entity type plus a monotonic id counter,
// behind a single RWMutex. Ids are never reused, so ascending-id
// iteration equals insertion order. Seeded with fixed catalog data at
// construction; nothing survives a restart.
type MemoryStorage struct {
	mu sync.RWMutex

	users        map[int64]model.User
	providers    map[int64]model.ServiceProvider
	categories   map[int64]model.ServiceCategory
	pricingItems map[int64]model.PricingItem
	requests     map[int64]model.ServiceRequest
	orders       map[int64]model.Order
	events       []model.Event

	nextUserID        int64
	nextProviderID    int64
	nextCategoryID    int64
	nextPricingItemID int64
	nextRequestID     int64
	nextOrderID       int64
}

// NewMemoryStorage creates a seeded in-memory store.
func NewMemoryStorage() *MemoryStorage {
	s := &MemoryStorage{
		users:             make(map[int64]model.User),
		providers:         make(map[int64]model.ServiceProvider),
		categories:        make(map[int64]model.ServiceCategory),
		pricingItems:      make(map[int64]model.PricingItem),
		requests:          make(map[int64]model.ServiceRequest),
		orders:            make(map[int64]model.Order),
		nextUserID:        1,
		nextProviderID:    1,
		nextCategoryID:    1,
		nextPricingItemID: 1,
		nextRequestID:     1,
		nextOrderID:       1,
	}
	s.seed()
	return s
}

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Users

func (s *MemoryStorage) GetUser(_ context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStorage) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range sortedIDs(s.users) {
		if s.users[id].Email == email {
			u := s.users[id]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) CreateUser(_ context.Context, user *model.User) error {
	if user.Email == "" {
		return validationf("email", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrConflict
		}
	}

	user.ID = s.nextUserID
	s.nextUserID++
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	return nil
}

// Service providers

func (s *MemoryStorage) GetServiceProvider(_ context.Context, id int64) (*model.ServiceProvider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.providers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStorage) ListServiceProviders(_ context.Context) ([]model.ServiceProvider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	providers := make([]model.ServiceProvider, 0, len(s.providers))
	for _, id := range sortedIDs(s.providers) {
		providers = append(providers, s.providers[id])
	}
	return providers, nil
}

func (s *MemoryStorage) ListAvailableServiceProviders(_ context.Context) ([]model.ServiceProvider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	providers := make([]model.ServiceProvider, 0, len(s.providers))
	for _, id := range sortedIDs(s.providers) {
		if s.providers[id].IsAvailable {
			providers = append(providers, s.providers[id])
		}
	}
	return providers, nil
}

func (s *MemoryStorage) CreateServiceProvider(_ context.Context, provider *model.ServiceProvider) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	provider.ID = s.nextProviderID
	s.nextProviderID++
	provider.Rating = decimal.Zero
	provider.TotalJobs = 0
	provider.IsAvailable = true
	provider.CreatedAt = time.Now().UTC()
	s.providers[provider.ID] = *provider
	return nil
}

func (s *MemoryStorage) UpdateServiceProviderAvailability(_ context.Context, id int64, isAvailable bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.providers[id]
	if !ok {
		return ErrNotFound
	}
	p.IsAvailable = isAvailable
	s.providers[id] = p
	return nil
}

// Service categories

func (s *MemoryStorage) GetServiceCategory(_ context.Context, id int64) (*model.ServiceCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStorage) ListServiceCategories(_ context.Context) ([]model.ServiceCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]model.ServiceCategory, 0, len(s.categories))
	for _, id := range sortedIDs(s.categories) {
		categories = append(categories, s.categories[id])
	}
	return categories, nil
}

func (s *MemoryStorage) CreateServiceCategory(_ context.Context, category *model.ServiceCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	category.ID = s.nextCategoryID
	s.nextCategoryID++
	s.categories[category.ID] = *category
	return nil
}

// Pricing items

func (s *MemoryStorage) ListPricingItems(_ context.Context) ([]model.PricingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]model.PricingItem, 0, len(s.pricingItems))
	for _, id := range sortedIDs(s.pricingItems) {
		items = append(items, s.pricingItems[id])
	}
	return items, nil
}

func (s *MemoryStorage) ListPricingItemsByCategory(_ context.Context, categoryID int64) ([]model.PricingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]model.PricingItem, 0)
	for _, id := range sortedIDs(s.pricingItems) {
		if s.pricingItems[id].CategoryID == categoryID {
			items = append(items, s.pricingItems[id])
		}
	}
	return items, nil
}

func (s *MemoryStorage) CreatePricingItem(_ context.Context, item *model.PricingItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[item.CategoryID]; !ok {
		return validationf("categoryId", "service category %d does not exist", item.CategoryID)
	}
	if item.MinPrice.GreaterThan(item.MaxPrice) {
		return validationf("minPrice", "must not exceed maxPrice")
	}

	item.ID = s.nextPricingItemID
	s.nextPricingItemID++
	s.pricingItems[item.ID] = *item
	return nil
}

// Service requests

func (s *MemoryStorage) GetServiceRequest(_ context.Context, id int64) (*model.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	r.Photos = slices.Clone(r.Photos)
	return &r, nil
}

func (s *MemoryStorage) ListUserServiceRequests(_ context.Context, userID int64) ([]model.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	requests := make([]model.ServiceRequest, 0)
	for _, id := range sortedIDs(s.requests) {
		if s.requests[id].UserID == userID {
			r := s.requests[id]
			r.Photos = slices.Clone(r.Photos)
			requests = append(requests, r)
		}
	}
	return requests, nil
}

func (s *MemoryStorage) CreateServiceRequest(_ context.Context, request *model.ServiceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[request.UserID]; !ok {
		return validationf("userId", "user %d does not exist", request.UserID)
	}
	if _, ok := s.categories[request.CategoryID]; !ok {
		return validationf("categoryId", "service category %d does not exist", request.CategoryID)
	}

	now := time.Now().UTC()
	request.ID = s.nextRequestID
	s.nextRequestID++
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
	s.requests[request.ID] = *request
	return nil
}

func (s *MemoryStorage) UpdateServiceRequest(_ context.Context, id int64, patch ServiceRequestPatch) (*model.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.ProviderID != nil {
		if _, ok := s.providers[*patch.ProviderID]; !ok {
			return nil, validationf("providerId", "service provider %d does not exist", *patch.ProviderID)
		}
		pid := *patch.ProviderID
		r.ProviderID = &pid
	}
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	if patch.ItemDescription != nil {
		r.ItemDescription = *patch.ItemDescription
	}
	if patch.Details != nil {
		r.Details = *patch.Details
	}
	if patch.Photos != nil {
		r.Photos = slices.Clone(*patch.Photos)
	}
	if patch.BaseFee != nil {
		r.BaseFee = decimal.NewNullDecimal(*patch.BaseFee)
	}
	if patch.ItemsFee != nil {
		r.ItemsFee = decimal.NewNullDecimal(*patch.ItemsFee)
	}
	if patch.TotalCost != nil {
		r.TotalCost = decimal.NewNullDecimal(*patch.TotalCost)
	}
	r.UpdatedAt = time.Now().UTC()

	s.requests[id] = r
	out := r
	out.Photos = slices.Clone(out.Photos)
	return &out, nil
}

// Orders

func (s *MemoryStorage) GetOrder(_ context.Context, id int64) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (s *MemoryStorage) ListUserOrders(_ context.Context, userID int64) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]model.Order, 0)
	for _, id := range sortedIDs(s.orders) {
		if s.orders[id].UserID == userID {
			orders = append(orders, s.orders[id])
		}
	}
	return orders, nil
}

func (s *MemoryStorage) ListProviderOrders(_ context.Context, providerID int64) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]model.Order, 0)
	for _, id := range sortedIDs(s.orders) {
		if s.orders[id].ProviderID == providerID {
			orders = append(orders, s.orders[id])
		}
	}
	return orders, nil
}

// GetUserActiveOrder returns the user's single non-terminal order. Should
// legacy data ever hold more than one, the lowest id wins.
func (s *MemoryStorage) GetUserActiveOrder(_ context.Context, userID int64) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range sortedIDs(s.orders) {
		o := s.orders[id]
		if o.UserID == userID && !o.Status.Terminal() {
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) CreateOrder(_ context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[order.RequestID]; !ok {
		return validationf("requestId", "service request %d does not exist", order.RequestID)
	}
	if _, ok := s.users[order.UserID]; !ok {
		return validationf("userId", "user %d does not exist", order.UserID)
	}
	if _, ok := s.providers[order.ProviderID]; !ok {
		return validationf("providerId", "service provider %d does not exist", order.ProviderID)
	}

	// One active order per user; the write lock makes this check and the
	// insert a single atomic step.
	for _, o := range s.orders {
		if o.UserID == order.UserID && !o.Status.Terminal() {
			return ErrConflict
		}
	}

	now := time.Now().UTC()
	order.ID = s.nextOrderID
	s.nextOrderID++
	order.Status = model.OrderStatusConfirmed
	order.PaymentStatus = model.PaymentStatusPending
	order.Rating = nil
	order.Review = nil
	order.CreatedAt = now
	order.UpdatedAt = now
	s.orders[order.ID] = *order
	return nil
}

func (s *MemoryStorage) UpdateOrder(_ context.Context, id int64, patch OrderPatch) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Rating != nil && (*patch.Rating < 1 || *patch.Rating > 5) {
		return nil, validationf("rating", "must be between 1 and 5")
	}

	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.PaymentStatus != nil {
		o.PaymentStatus = *patch.PaymentStatus
	}
	if patch.Rating != nil {
		rating := *patch.Rating
		o.Rating = &rating
	}
	if patch.Review != nil {
		review := *patch.Review
		o.Review = &review
	}
	o.UpdatedAt = time.Now().UTC()

	s.orders[id] = o
	return &o, nil
}

// Audit events

func (s *MemoryStorage) RecordEvent(_ context.Context, event *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = time.Now().UTC()
	s.events = append(s.events, *event)
	return nil
}

func (s *MemoryStorage) ListEvents(_ context.Context, limit int) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.events)
	if limit <= 0 || limit > n {
		limit = n
	}
	// Newest first.
	events := make([]model.Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		events = append(events, s.events[i])
	}
	return events, nil
}
