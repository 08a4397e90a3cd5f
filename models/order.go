package models

import (
	"time"
)

// Order statuses. Only processing -> completed and processing -> cancelled exist.
const (
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Payment methods accepted at checkout
const (
	PaymentCOD   = "cod"
	PaymentGCash = "gcash"
	PaymentCard  = "card"
)

// ValidOrderStatus reports whether status is one of the known order statuses
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// ShippingDetails is persisted as a JSON document in orders.shipping_address
type ShippingDetails struct {
	Address        string            `json:"address"`
	Contact        string            `json:"contact"`
	Notes          string            `json:"notes,omitempty"`
	PaymentMethod  string            `json:"paymentMethod"`
	PaymentDetails map[string]string `json:"paymentDetails,omitempty"`
}

// Order represents a placed order. Total is computed once at creation and never recalculated.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index:idx_orders_user" json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Subtotal        float64         `gorm:"not null;default:0" json:"subtotal"`
	ShippingFee     float64         `gorm:"not null;default:0" json:"shipping_fee"`
	Total           float64         `gorm:"not null" json:"total"`
	Status          string          `gorm:"not null;default:'processing'" json:"status"` // processing, completed, cancelled
	ShippingAddress ShippingDetails `gorm:"type:text;serializer:json" json:"shipping_address"`
	PaymentProof    string          `json:"payment_proof"` // "paid" for online payments, empty for cash on delivery
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is an immutable snapshot of a cart line taken when the order was placed
type OrderItem struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	OrderID       uint     `gorm:"not null;index" json:"order_id"`
	ProductID     uint     `gorm:"not null" json:"product_id"`
	Product       *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity      int      `gorm:"not null" json:"quantity"`
	Price         float64  `gorm:"not null" json:"price"` // unit price at order time
	SelectedColor *string  `json:"selected_color"`
	SelectedSize  *string  `json:"selected_size"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderStats holds per-status order counts for a user
type OrderStats struct {
	Total      int64 `json:"total"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}
