package model

import "github.com/shopspring/decimal"

// pricing_items — priced line items scoped to a category. Add-ons are
// optional extras layered on top of the category base price.
type PricingItem struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	CategoryID int64 `gorm:"not null;index" json:"categoryId"`

	ServiceDescription string `gorm:"type:varchar(255);not null" json:"serviceDescription"`

	// Price band; MinPrice <= MaxPrice always holds.
	MinPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"minPrice"`
	MaxPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"maxPrice"`

	IsAddOn bool `gorm:"not null" json:"isAddOn"`

	Category *ServiceCategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
