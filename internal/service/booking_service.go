package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/instanthaul/haul-platform/internal/lifecycle"
	"github.com/instanthaul/haul-platform/internal/model"
	"github.com/instanthaul/haul-platform/internal/storage"
)

var (
	// ErrInvalidTransition means the requested status change is not
	// allowed from the entity's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrProviderUnavailable means the chosen provider is not taking jobs.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// BookingService drives the request -> order workflow on top of the
// storage port: submit, quote, assign, start, complete, cancel, review.
// It owns the transition policy the stores deliberately leave to callers
// and records an audit event for every step.
type BookingService struct {
	store storage.Storage
}

func NewBookingService(store storage.Storage) *BookingService {
	return &BookingService{store: store}
}

// SubmitRequest creates a pending service request for the user.
func (s *BookingService) SubmitRequest(
	ctx context.Context,
	userID, categoryID int64,
	itemDescription, details string,
	photos []string,
) (*model.ServiceRequest, error) {
	if itemDescription == "" {
		return nil, &storage.ValidationError{Field: "itemDescription", Reason: "must not be empty"}
	}

	request := &model.ServiceRequest{
		UserID:          userID,
		CategoryID:      categoryID,
		ItemDescription: itemDescription,
		Details:         details,
		Photos:          photos,
	}
	if err := s.store.CreateServiceRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.recordEvent(ctx, model.EventTypeRequestCreated, &request.ID, nil,
		fmt.Sprintf("user %d requested %q", userID, itemDescription))
	return request, nil
}

// QuoteRequest prices a pending request: base fee from the category plus
// the minimum price of each selected pricing item. The band maximum is
// advisory and never stored.
func (s *BookingService) QuoteRequest(ctx context.Context, requestID int64, itemIDs []int64) (*model.ServiceRequest, error) {
	request, err := s.store.GetServiceRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if request.Status != model.RequestStatusPending {
		return nil, fmt.Errorf("%w: quote only applies to pending requests", ErrInvalidTransition)
	}

	category, err := s.store.GetServiceCategory(ctx, request.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	items, err := s.store.ListPricingItemsByCategory(ctx, request.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("list pricing items: %w", err)
	}
	byID := make(map[int64]model.PricingItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	itemsFee := decimal.Zero
	for _, id := range itemIDs {
		item, ok := byID[id]
		if !ok {
			return nil, &storage.ValidationError{
				Field:  "itemIds",
				Reason: fmt.Sprintf("pricing item %d does not belong to category %d", id, request.CategoryID),
			}
		}
		itemsFee = itemsFee.Add(item.MinPrice)
	}

	baseFee := category.BasePrice
	totalCost := baseFee.Add(itemsFee)

	updated, err := s.store.UpdateServiceRequest(ctx, requestID, storage.ServiceRequestPatch{
		BaseFee:   &baseFee,
		ItemsFee:  &itemsFee,
		TotalCost: &totalCost,
	})
	if err != nil {
		return nil, fmt.Errorf("store quote: %w", err)
	}

	s.recordEvent(ctx, model.EventTypeRequestQuoted, &requestID, nil,
		fmt.Sprintf("quoted %s (base %s + items %s)", totalCost, baseFee, itemsFee))
	return updated, nil
}

// AssignProvider books an available provider for a pending request:
// creates the confirmed order, marks the request assigned and flips the
// provider unavailable. Fails with storage.ErrConflict when the user
// already has an active order.
func (s *BookingService) AssignProvider(ctx context.Context, requestID, providerID int64) (*model.Order, error) {
	request, err := s.store.GetServiceRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if !lifecycle.CanTransitionRequest(request.Status, model.RequestStatusAssigned) {
		return nil, fmt.Errorf("%w: request is %s", ErrInvalidTransition, request.Status)
	}

	provider, err := s.store.GetServiceProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("get provider: %w", err)
	}
	if !provider.IsAvailable {
		return nil, ErrProviderUnavailable
	}

	order := &model.Order{
		RequestID:  requestID,
		UserID:     request.UserID,
		ProviderID: providerID,
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	assigned := model.RequestStatusAssigned
	if _, err := s.store.UpdateServiceRequest(ctx, requestID, storage.ServiceRequestPatch{
		Status:     &assigned,
		ProviderID: &providerID,
	}); err != nil {
		return nil, fmt.Errorf("mark request assigned: %w", err)
	}
	if err := s.store.UpdateServiceProviderAvailability(ctx, providerID, false); err != nil {
		return nil, fmt.Errorf("mark provider busy: %w", err)
	}

	s.recordEvent(ctx, model.EventTypeOrderCreated, &requestID, &order.ID,
		fmt.Sprintf("provider %d assigned to request %d", providerID, requestID))
	return order, nil
}

// StartOrder moves a confirmed order (and its request) into execution.
func (s *BookingService) StartOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return s.transitionOrder(ctx, orderID, model.OrderStatusInProgress, model.RequestStatusInProgress)
}

// CompleteOrder finishes an in-progress order, completes the linked
// request and frees the provider.
func (s *BookingService) CompleteOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return s.transitionOrder(ctx, orderID, model.OrderStatusCompleted, model.RequestStatusCompleted)
}

// CancelOrder cancels a non-terminal order, cancels the linked request
// and frees the provider.
func (s *BookingService) CancelOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return s.transitionOrder(ctx, orderID, model.OrderStatusCancelled, model.RequestStatusCancelled)
}

func (s *BookingService) transitionOrder(
	ctx context.Context,
	orderID int64,
	to model.OrderStatus,
	requestTo model.RequestStatus,
) (*model.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !lifecycle.CanTransitionOrder(order.Status, to) {
		return nil, fmt.Errorf("%w: order is %s, cannot become %s", ErrInvalidTransition, order.Status, to)
	}

	updated, err := s.store.UpdateOrder(ctx, orderID, storage.OrderPatch{Status: &to})
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	request, err := s.store.GetServiceRequest(ctx, order.RequestID)
	if err == nil && lifecycle.CanTransitionRequest(request.Status, requestTo) {
		if _, err := s.store.UpdateServiceRequest(ctx, order.RequestID, storage.ServiceRequestPatch{
			Status: &requestTo,
		}); err != nil {
			return nil, fmt.Errorf("update request: %w", err)
		}
	}

	if to.Terminal() {
		if err := s.store.UpdateServiceProviderAvailability(ctx, order.ProviderID, true); err != nil {
			return nil, fmt.Errorf("free provider: %w", err)
		}
	}

	s.recordEvent(ctx, model.EventTypeOrderStatusChanged, &order.RequestID, &orderID,
		fmt.Sprintf("order %d: %s -> %s", orderID, order.Status, to))
	return updated, nil
}

// CancelRequest cancels a non-terminal request. If an order was already
// created for it, the order is cancelled too and the provider freed.
func (s *BookingService) CancelRequest(ctx context.Context, requestID int64) (*model.ServiceRequest, error) {
	request, err := s.store.GetServiceRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if !lifecycle.CanTransitionRequest(request.Status, model.RequestStatusCancelled) {
		return nil, fmt.Errorf("%w: request is %s", ErrInvalidTransition, request.Status)
	}

	orders, err := s.store.ListUserOrders(ctx, request.UserID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	for _, order := range orders {
		if order.RequestID == requestID && !order.Status.Terminal() {
			if _, err := s.CancelOrder(ctx, order.ID); err != nil {
				return nil, err
			}
			return s.store.GetServiceRequest(ctx, requestID)
		}
	}

	cancelled := model.RequestStatusCancelled
	updated, err := s.store.UpdateServiceRequest(ctx, requestID, storage.ServiceRequestPatch{Status: &cancelled})
	if err != nil {
		return nil, fmt.Errorf("cancel request: %w", err)
	}
	s.recordEvent(ctx, model.EventTypeOrderStatusChanged, &requestID, nil,
		fmt.Sprintf("request %d cancelled", requestID))
	return updated, nil
}

// ReviewOrder attaches a 1-5 rating and review text to a completed order.
func (s *BookingService) ReviewOrder(ctx context.Context, orderID int64, rating int, review string) (*model.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order.Status != model.OrderStatusCompleted {
		return nil, fmt.Errorf("%w: only completed orders can be reviewed", ErrInvalidTransition)
	}

	updated, err := s.store.UpdateOrder(ctx, orderID, storage.OrderPatch{
		Rating: &rating,
		Review: &review,
	})
	if err != nil {
		return nil, fmt.Errorf("store review: %w", err)
	}

	s.recordEvent(ctx, model.EventTypeOrderReviewed, &order.RequestID, &orderID,
		fmt.Sprintf("order %d rated %d", orderID, rating))
	return updated, nil
}

// Audit trail is best effort; a failed event write never fails the
// operation it describes.
func (s *BookingService) recordEvent(ctx context.Context, typ model.EventType, requestID, orderID *int64, details string) {
	_ = s.store.RecordEvent(ctx, &model.Event{
		EventType: typ,
		RequestID: requestID,
		OrderID:   orderID,
		Details:   details,
	})
}
