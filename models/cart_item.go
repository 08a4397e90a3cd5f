package models

import (
	"time"
)

// CartItem is one pending (product, color, size, quantity) line.
// Lines are never merged: adding the same configuration twice creates two rows.
type CartItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index:idx_cart_user" json:"user_id"`
	User          *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID     uint      `gorm:"not null" json:"product_id"`
	Product       *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Quantity      int       `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	SelectedColor *string   `json:"selected_color"`
	SelectedSize  *string   `json:"selected_size"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for the CartItem model
func (CartItem) TableName() string {
	return "cart"
}

// CartLine is a cart row joined with the live product data
type CartLine struct {
	ID            uint    `json:"id"`
	ProductID     uint    `json:"product_id"`
	Quantity      int     `json:"quantity"`
	SelectedColor *string `json:"selected_color"`
	SelectedSize  *string `json:"selected_size"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"image_url"`
	ImageSrc      *string `gorm:"-" json:"image_src,omitempty"`
}

// LineTotal returns price times quantity
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}
