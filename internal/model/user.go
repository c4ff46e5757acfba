package model

import "time"

// users
type User struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Username string `gorm:"type:varchar(64);not null" json:"username"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`

	// Opaque credential string; hashing lives in the auth layer, not here.
	Password string `gorm:"type:varchar(255);not null" json:"password"`

	Address string  `gorm:"type:text;not null" json:"address"`
	Phone   *string `gorm:"type:varchar(32)" json:"phone"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
