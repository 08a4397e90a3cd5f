package services

import (
	"fmt"
	"strings"

	"github.com/furnitune/furnitune-api/models"
	"gorm.io/gorm"
)

// OrderService turns carts into orders and manages the order lifecycle.
// It is the only place an order total is computed.
type OrderService struct {
	db            *gorm.DB
	shippingFee   float64
	notifications *NotificationService
}

// NewOrderService creates an order service that charges shippingFee per order
func NewOrderService(db *gorm.DB, shippingFee float64) *OrderService {
	return &OrderService{
		db:            db,
		shippingFee:   shippingFee,
		notifications: NewNotificationService(db),
	}
}

// CreateOrder converts the user's cart into an order in one transaction:
// the order row, one snapshot item per cart line, and the cart cleared.
// An empty cart returns ErrCartEmpty and writes nothing.
func (s *OrderService) CreateOrder(userID uint, shipping models.ShippingDetails, paymentProof string) (*models.Order, error) {
	shipping.Address = strings.TrimSpace(shipping.Address)
	if shipping.Address == "" {
		return nil, invalidInput("shipping address is required")
	}
	if shipping.PaymentMethod == "" {
		shipping.PaymentMethod = models.PaymentCOD
	}
	if !validPaymentMethod(shipping.PaymentMethod) {
		return nil, invalidInput(fmt.Sprintf("unsupported payment method %q", shipping.PaymentMethod))
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		lines, err := cartLines(tx, userID)
		if err != nil {
			return databaseError("read cart", err)
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		subtotal := CartSubtotal(lines)
		order = models.Order{
			UserID:          userID,
			Subtotal:        subtotal,
			ShippingFee:     s.shippingFee,
			Total:           subtotal + s.shippingFee,
			Status:          models.OrderStatusProcessing,
			ShippingAddress: shipping,
			PaymentProof:    paymentProof,
		}
		if err := tx.Create(&order).Error; err != nil {
			return databaseError("create order", err)
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.OrderItem{
				OrderID:       order.ID,
				ProductID:     line.ProductID,
				Quantity:      line.Quantity,
				Price:         line.Price,
				SelectedColor: line.SelectedColor,
				SelectedSize:  line.SelectedSize,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return databaseError("create order items", err)
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return databaseError("clear cart", err)
		}
		return nil
	})
	if err != nil {
		return nil, asServiceError("create order", err)
	}

	s.notifications.Notify(userID, "Order Received",
		fmt.Sprintf("Your order #%d has been placed and is now being processed.", order.ID),
		models.NotificationOrder)

	return s.GetOrderByID(order.ID, userID)
}

// GetUserOrders returns the user's orders, newest first, with items and their products.
// Items are loaded in batches rather than per order.
func (s *OrderService) GetUserOrders(userID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id ASC")
	}).Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, databaseError("get orders", err)
	}
	return orders, nil
}

// GetOrderByID returns one of the user's orders with its items, or ErrNotFound
func (s *OrderService) GetOrderByID(orderID, userID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id ASC")
	}).Preload("Items.Product").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, lookupError("order", "get order", err)
	}
	return &order, nil
}

// UpdateOrderStatus sets an order's status. This is an administrative action: the
// value must be a known status, but the transition itself is not checked.
func (s *OrderService) UpdateOrderStatus(orderID uint, status string) error {
	if !models.ValidOrderStatus(status) {
		return invalidInput(fmt.Sprintf("unknown order status %q", status))
	}

	var order models.Order
	if err := s.db.Select("id", "user_id").First(&order, orderID).Error; err != nil {
		return lookupError("order", "get order", err)
	}

	if err := s.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status).Error; err != nil {
		return databaseError("update order status", err)
	}

	s.notifications.Notify(order.UserID, "Order Status Updated",
		fmt.Sprintf("Your order #%d is now %s.", orderID, status),
		models.NotificationOrderStatus)
	return nil
}

// CancelOrder cancels one of the user's orders. Only processing orders can be cancelled;
// the status check and the update are a single guarded statement.
func (s *OrderService) CancelOrder(orderID, userID uint) error {
	var order models.Order
	if err := s.db.Select("id").Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		return lookupError("order", "get order", err)
	}

	result := s.db.Model(&models.Order{}).
		Where("id = ? AND user_id = ? AND status = ?", orderID, userID, models.OrderStatusProcessing).
		Update("status", models.OrderStatusCancelled)
	if result.Error != nil {
		return databaseError("cancel order", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotCancellable
	}

	s.notifications.Notify(userID, "Order Cancelled",
		fmt.Sprintf("Your order #%d has been cancelled.", orderID),
		models.NotificationOrderStatus)
	return nil
}

// GetOrderStats counts the user's orders per status in one aggregate query
func (s *OrderService) GetOrderStats(userID uint) (*models.OrderStats, error) {
	var stats models.OrderStats
	err := s.db.Raw(`SELECT
		COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS processing,
		COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed,
		COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS cancelled
		FROM orders WHERE user_id = ?`,
		models.OrderStatusProcessing, models.OrderStatusCompleted, models.OrderStatusCancelled, userID).
		Scan(&stats).Error
	if err != nil {
		return nil, databaseError("get order stats", err)
	}
	return &stats, nil
}

func validPaymentMethod(method string) bool {
	switch method {
	case models.PaymentCOD, models.PaymentGCash, models.PaymentCard:
		return true
	}
	return false
}
