package models

import (
	"time"
)

// User represents a storefront account
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"` // stored as entered; never serialized
	Name         string    `gorm:"not null" json:"name"`
	Phone        *string   `json:"phone"`
	ProfileImage *string   `json:"profile_image"`                // data URI, asset path or upload key
	ProfileSrc   *string   `gorm:"-" json:"profile_src,omitempty"` // computed field, resolved image URL
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// ProfileStats holds the counters shown on the profile screen
type ProfileStats struct {
	Orders    int64 `json:"orders"`
	Reviews   int64 `json:"reviews"`
	CartItems int64 `json:"cart_items"`
}
