package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/instanthaul/haul-platform/internal/model"
	"github.com/instanthaul/haul-platform/internal/storage"
)

// The seeded memory store ships user 1, categories 1-6 (Furniture
// Removal first, base 85.00) and providers 1-2, both available.
func newBookingFixture(t *testing.T) (*BookingService, storage.Storage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	return NewBookingService(store), store
}

func submitCouchRequest(t *testing.T, svc *BookingService) *model.ServiceRequest {
	t.Helper()
	request, err := svc.SubmitRequest(context.Background(), 1, 1, "Old couch", "third floor, no elevator", nil)
	if err != nil {
		t.Fatalf("submit request: %v", err)
	}
	return request
}

func TestSubmitRequest(t *testing.T) {
	svc, _ := newBookingFixture(t)

	request := submitCouchRequest(t, svc)
	if request.Status != model.RequestStatusPending {
		t.Fatalf("expected pending, got %s", request.Status)
	}
	if request.TotalCost.Valid {
		t.Fatalf("fees must be null until quoted")
	}

	if _, err := svc.SubmitRequest(context.Background(), 1, 1, "", "", nil); !storage.IsValidation(err) {
		t.Fatalf("empty item description: expected validation error, got %v", err)
	}
	if _, err := svc.SubmitRequest(context.Background(), 999, 1, "Old couch", "", nil); !storage.IsValidation(err) {
		t.Fatalf("unknown user: expected validation error, got %v", err)
	}
}

func TestQuoteRequest(t *testing.T) {
	svc, store := newBookingFixture(t)
	ctx := context.Background()

	request := submitCouchRequest(t, svc)

	// Couch/Sofa is pricing item 1 (min 85.00) in category 1 (base 85.00).
	quoted, err := svc.QuoteRequest(ctx, request.ID, []int64{1})
	if err != nil {
		t.Fatalf("quote request: %v", err)
	}
	if !quoted.BaseFee.Valid || !quoted.BaseFee.Decimal.Equal(decimal.RequireFromString("85.00")) {
		t.Fatalf("unexpected base fee: %+v", quoted.BaseFee)
	}
	if !quoted.ItemsFee.Decimal.Equal(decimal.RequireFromString("85.00")) {
		t.Fatalf("unexpected items fee: %+v", quoted.ItemsFee)
	}
	if !quoted.TotalCost.Decimal.Equal(decimal.RequireFromString("170.00")) {
		t.Fatalf("unexpected total: %+v", quoted.TotalCost)
	}

	// Item from another category is rejected.
	if _, err := svc.QuoteRequest(ctx, request.ID, []int64{5}); !storage.IsValidation(err) {
		t.Fatalf("foreign pricing item: expected validation error, got %v", err)
	}

	// Quoting is for pending requests only.
	cancelled := model.RequestStatusCancelled
	if _, err := store.UpdateServiceRequest(ctx, request.ID, storage.ServiceRequestPatch{Status: &cancelled}); err != nil {
		t.Fatalf("cancel request: %v", err)
	}
	if _, err := svc.QuoteRequest(ctx, request.ID, nil); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestAssignProvider(t *testing.T) {
	svc, store := newBookingFixture(t)
	ctx := context.Background()

	request := submitCouchRequest(t, svc)
	order, err := svc.AssignProvider(ctx, request.ID, 1)
	if err != nil {
		t.Fatalf("assign provider: %v", err)
	}
	if order.Status != model.OrderStatusConfirmed {
		t.Fatalf("expected confirmed order, got %s", order.Status)
	}

	updated, err := store.GetServiceRequest(ctx, request.ID)
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if updated.Status != model.RequestStatusAssigned {
		t.Fatalf("expected assigned request, got %s", updated.Status)
	}
	if updated.ProviderID == nil || *updated.ProviderID != 1 {
		t.Fatalf("provider not recorded on request: %+v", updated.ProviderID)
	}

	provider, err := store.GetServiceProvider(ctx, 1)
	if err != nil {
		t.Fatalf("get provider: %v", err)
	}
	if provider.IsAvailable {
		t.Fatalf("assigned provider must be unavailable")
	}

	// The busy provider cannot take another request.
	other := submitCouchRequest(t, svc)
	if _, err := svc.AssignProvider(ctx, other.ID, 1); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}

	// User 1 already has an active order, so even a free provider conflicts.
	if _, err := svc.AssignProvider(ctx, other.ID, 2); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestOrderProgression(t *testing.T) {
	svc, store := newBookingFixture(t)
	ctx := context.Background()

	request := submitCouchRequest(t, svc)
	order, err := svc.AssignProvider(ctx, request.ID, 1)
	if err != nil {
		t.Fatalf("assign provider: %v", err)
	}

	// Cannot complete before starting.
	if _, err := svc.CompleteOrder(ctx, order.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	started, err := svc.StartOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("start order: %v", err)
	}
	if started.Status != model.OrderStatusInProgress {
		t.Fatalf("expected in_progress, got %s", started.Status)
	}

	completed, err := svc.CompleteOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("complete order: %v", err)
	}
	if completed.Status != model.OrderStatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}

	finalRequest, err := store.GetServiceRequest(ctx, request.ID)
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if finalRequest.Status != model.RequestStatusCompleted {
		t.Fatalf("expected completed request, got %s", finalRequest.Status)
	}

	provider, err := store.GetServiceProvider(ctx, 1)
	if err != nil {
		t.Fatalf("get provider: %v", err)
	}
	if !provider.IsAvailable {
		t.Fatalf("provider must be freed after completion")
	}

	if _, err := svc.StartOrder(ctx, order.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("completed order cannot restart, got %v", err)
	}
}

func TestCancelFlows(t *testing.T) {
	svc, store := newBookingFixture(t)
	ctx := context.Background()

	// Cancelling a pending request touches no orders.
	pending := submitCouchRequest(t, svc)
	cancelled, err := svc.CancelRequest(ctx, pending.ID)
	if err != nil {
		t.Fatalf("cancel pending request: %v", err)
	}
	if cancelled.Status != model.RequestStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if _, err := svc.CancelRequest(ctx, pending.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("double cancel must fail, got %v", err)
	}

	// Cancelling an assigned request cancels its order and frees the provider.
	assigned := submitCouchRequest(t, svc)
	order, err := svc.AssignProvider(ctx, assigned.ID, 1)
	if err != nil {
		t.Fatalf("assign provider: %v", err)
	}
	after, err := svc.CancelRequest(ctx, assigned.ID)
	if err != nil {
		t.Fatalf("cancel assigned request: %v", err)
	}
	if after.Status != model.RequestStatusCancelled {
		t.Fatalf("expected cancelled request, got %s", after.Status)
	}
	gotOrder, err := store.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if gotOrder.Status != model.OrderStatusCancelled {
		t.Fatalf("expected cancelled order, got %s", gotOrder.Status)
	}
	provider, err := store.GetServiceProvider(ctx, 1)
	if err != nil {
		t.Fatalf("get provider: %v", err)
	}
	if !provider.IsAvailable {
		t.Fatalf("provider must be freed after cancellation")
	}
}

func TestReviewOrder(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	request := submitCouchRequest(t, svc)
	order, err := svc.AssignProvider(ctx, request.ID, 1)
	if err != nil {
		t.Fatalf("assign provider: %v", err)
	}

	if _, err := svc.ReviewOrder(ctx, order.ID, 5, "great"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("review before completion must fail, got %v", err)
	}

	if _, err := svc.StartOrder(ctx, order.ID); err != nil {
		t.Fatalf("start order: %v", err)
	}
	if _, err := svc.CompleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("complete order: %v", err)
	}

	reviewed, err := svc.ReviewOrder(ctx, order.ID, 5, "fast and friendly")
	if err != nil {
		t.Fatalf("review order: %v", err)
	}
	if reviewed.Rating == nil || *reviewed.Rating != 5 {
		t.Fatalf("rating not stored: %+v", reviewed.Rating)
	}
	if reviewed.Review == nil || *reviewed.Review != "fast and friendly" {
		t.Fatalf("review not stored: %+v", reviewed.Review)
	}

	if _, err := svc.ReviewOrder(ctx, order.ID, 7, "nope"); !storage.IsValidation(err) {
		t.Fatalf("out of range rating must be a validation error, got %v", err)
	}
}

func TestWorkflowRecordsEvents(t *testing.T) {
	svc, store := newBookingFixture(t)
	ctx := context.Background()

	request := submitCouchRequest(t, svc)
	if _, err := svc.QuoteRequest(ctx, request.ID, []int64{1}); err != nil {
		t.Fatalf("quote: %v", err)
	}
	if _, err := svc.AssignProvider(ctx, request.ID, 1); err != nil {
		t.Fatalf("assign: %v", err)
	}

	events, err := store.ListEvents(ctx, 0)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	// Newest first.
	if events[0].EventType != model.EventTypeOrderCreated {
		t.Fatalf("expected order_created first, got %s", events[0].EventType)
	}
	if events[2].EventType != model.EventTypeRequestCreated {
		t.Fatalf("expected request_created last, got %s", events[2].EventType)
	}
}
