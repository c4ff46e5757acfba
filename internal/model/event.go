package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit event tags.
type EventType string

const (
	EventTypeRequestCreated     EventType = "request_created"
	EventTypeRequestQuoted      EventType = "request_quoted"
	EventTypeOrderCreated       EventType = "order_created"
	EventTypeOrderStatusChanged EventType = "order_status_changed"
	EventTypeOrderReviewed      EventType = "order_reviewed"
)

// events — append-only audit trail for the booking workflow.
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	EventType EventType `gorm:"type:varchar(64);not null;index" json:"eventType"`

	RequestID *int64 `gorm:"index" json:"requestId"`
	OrderID   *int64 `gorm:"index" json:"orderId"`

	Details string `gorm:"type:text" json:"details"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}
