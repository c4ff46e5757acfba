package lifecycle

import (
	"testing"

	"github.com/instanthaul/haul-platform/internal/model"
)

func TestCanTransitionRequest_ForwardChain(t *testing.T) {
	chain := []model.RequestStatus{
		model.RequestStatusPending,
		model.RequestStatusAssigned,
		model.RequestStatusInProgress,
		model.RequestStatusCompleted,
	}
	for i := 0; i < len(chain)-1; i++ {
		if !CanTransitionRequest(chain[i], chain[i+1]) {
			t.Fatalf("expected %s -> %s to be allowed", chain[i], chain[i+1])
		}
	}
}

func TestCanTransitionRequest_NoBackward(t *testing.T) {
	if CanTransitionRequest(model.RequestStatusAssigned, model.RequestStatusPending) {
		t.Fatalf("assigned -> pending must be rejected")
	}
	if CanTransitionRequest(model.RequestStatusCompleted, model.RequestStatusInProgress) {
		t.Fatalf("completed -> in_progress must be rejected")
	}
	if CanTransitionRequest(model.RequestStatusPending, model.RequestStatusCompleted) {
		t.Fatalf("skipping ahead pending -> completed must be rejected")
	}
}

func TestCanTransitionRequest_Cancel(t *testing.T) {
	for _, from := range []model.RequestStatus{
		model.RequestStatusPending,
		model.RequestStatusAssigned,
		model.RequestStatusInProgress,
	} {
		if !CanTransitionRequest(from, model.RequestStatusCancelled) {
			t.Fatalf("expected %s -> cancelled to be allowed", from)
		}
	}
	if CanTransitionRequest(model.RequestStatusCompleted, model.RequestStatusCancelled) {
		t.Fatalf("completed -> cancelled must be rejected")
	}
	if CanTransitionRequest(model.RequestStatusCancelled, model.RequestStatusCancelled) {
		t.Fatalf("cancelled -> cancelled must be rejected")
	}
}

func TestCanTransitionOrder(t *testing.T) {
	if !CanTransitionOrder(model.OrderStatusConfirmed, model.OrderStatusInProgress) {
		t.Fatalf("confirmed -> in_progress must be allowed")
	}
	if !CanTransitionOrder(model.OrderStatusInProgress, model.OrderStatusCompleted) {
		t.Fatalf("in_progress -> completed must be allowed")
	}
	if CanTransitionOrder(model.OrderStatusCompleted, model.OrderStatusInProgress) {
		t.Fatalf("completed -> in_progress must be rejected")
	}
	if !CanTransitionOrder(model.OrderStatusConfirmed, model.OrderStatusCancelled) {
		t.Fatalf("confirmed -> cancelled must be allowed")
	}
	if CanTransitionOrder(model.OrderStatusCancelled, model.OrderStatusInProgress) {
		t.Fatalf("cancelled is terminal")
	}
}

func TestCanTransitionPayment(t *testing.T) {
	if !CanTransitionPayment(model.PaymentStatusPending, model.PaymentStatusPaid) {
		t.Fatalf("pending -> paid must be allowed")
	}
	if !CanTransitionPayment(model.PaymentStatusPending, model.PaymentStatusFailed) {
		t.Fatalf("pending -> failed must be allowed")
	}
	if CanTransitionPayment(model.PaymentStatusPaid, model.PaymentStatusPending) {
		t.Fatalf("paid -> pending must be rejected")
	}
	if CanTransitionPayment(model.PaymentStatusFailed, model.PaymentStatusPaid) {
		t.Fatalf("failed -> paid must be rejected")
	}
}
