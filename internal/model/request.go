package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Lifecycle of a service request.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusAssigned   RequestStatus = "assigned"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

// Terminal reports whether no further transition is possible.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusCancelled
}

// service_requests — a user's submitted job description awaiting pricing
// and provider assignment. Fees and provider stay null until the request
// is quoted/assigned.
type ServiceRequest struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID     int64 `gorm:"not null;index" json:"userId"`
	CategoryID int64 `gorm:"not null;index" json:"categoryId"`

	ItemDescription string `gorm:"type:text;not null" json:"itemDescription"`
	Details         string `gorm:"type:text" json:"details"`

	Photos datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"photos"`

	Status RequestStatus `gorm:"type:varchar(32);not null;index" json:"status"`

	BaseFee   decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"baseFee"`
	ItemsFee  decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"itemsFee"`
	TotalCost decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"totalCost"`

	ProviderID *int64 `gorm:"index" json:"providerId"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	User     *User            `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Category *ServiceCategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Provider *ServiceProvider `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
