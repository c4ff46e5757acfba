package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceProvider is a hauler who picks up and removes items.
// IsAvailable is the only field the core mutates after creation; rating
// and totalJobs are reference data carried for display.
type ServiceProvider struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Email   string `gorm:"type:varchar(255);not null" json:"email"`
	Phone   string `gorm:"type:varchar(32);not null" json:"phone"`
	Vehicle string `gorm:"type:varchar(255);not null" json:"vehicle"`
	License string `gorm:"type:varchar(64);not null" json:"license"`

	Rating    decimal.Decimal `gorm:"type:numeric(3,2);not null" json:"rating"`
	TotalJobs int             `gorm:"not null" json:"totalJobs"`

	IsAvailable bool `gorm:"not null;index" json:"isAvailable"`

	ProfileImage *string `gorm:"type:text" json:"profileImage"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
