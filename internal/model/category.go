package model

import "github.com/shopspring/decimal"

// How a category's jobs are carried out.
type ServiceType string

const (
	ServiceTypeStandard   ServiceType = "standard"
	ServiceTypeDemolition ServiceType = "demolition"
	ServiceTypeYouLoad    ServiceType = "you_load"
)

// service_categories — catalog data, effectively immutable after seeding.
type ServiceCategory struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`

	BasePrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"basePrice"`

	Image       string      `gorm:"type:text;not null" json:"image"`
	ServiceType ServiceType `gorm:"type:varchar(32);not null" json:"serviceType"`
	IsRecurring bool        `gorm:"not null" json:"isRecurring"`
}
