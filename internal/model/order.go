package model

import "time"

// Lifecycle of an order. Orders are created already confirmed.
type OrderStatus string

const (
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Payment settlement axis, independent of the order status.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// orders — a confirmed, assigned job tracked through execution.
// Rating/review stay null until the user leaves a review.
type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	RequestID  int64 `gorm:"not null;index" json:"requestId"`
	UserID     int64 `gorm:"not null;index" json:"userId"`
	ProviderID int64 `gorm:"not null;index" json:"providerId"`

	Status        OrderStatus   `gorm:"type:varchar(32);not null;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(32);not null" json:"paymentStatus"`

	Rating *int    `json:"rating"`
	Review *string `gorm:"type:text" json:"review"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	Request  *ServiceRequest  `gorm:"foreignKey:RequestID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	User     *User            `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Provider *ServiceProvider `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
