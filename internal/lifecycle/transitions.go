// Package lifecycle holds the status transition policy for service
// requests and orders. The storage port applies patches blindly; callers
// consult these tables before patching a status so no entity ever moves
// backward. Cancellation is reachable from any non-terminal status.
package lifecycle

import "github.com/instanthaul/haul-platform/internal/model"

var requestNext = map[model.RequestStatus]model.RequestStatus{
	model.RequestStatusPending:    model.RequestStatusAssigned,
	model.RequestStatusAssigned:   model.RequestStatusInProgress,
	model.RequestStatusInProgress: model.RequestStatusCompleted,
}

var orderNext = map[model.OrderStatus]model.OrderStatus{
	model.OrderStatusConfirmed:  model.OrderStatusInProgress,
	model.OrderStatusInProgress: model.OrderStatusCompleted,
}

// CanTransitionRequest reports whether a request may move from one
// status to the next.
func CanTransitionRequest(from, to model.RequestStatus) bool {
	if from == to {
		return false
	}
	if to == model.RequestStatusCancelled {
		return !from.Terminal()
	}
	return requestNext[from] == to
}

// CanTransitionOrder reports whether an order may move from one status
// to the next.
func CanTransitionOrder(from, to model.OrderStatus) bool {
	if from == to {
		return false
	}
	if to == model.OrderStatusCancelled {
		return !from.Terminal()
	}
	return orderNext[from] == to
}

// CanTransitionPayment reports whether the payment axis may move.
// Settlement is one-way: pending resolves to paid or failed.
func CanTransitionPayment(from, to model.PaymentStatus) bool {
	if from != model.PaymentStatusPending {
		return false
	}
	return to == model.PaymentStatusPaid || to == model.PaymentStatusFailed
}
