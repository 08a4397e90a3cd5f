package services

import (
	"github.com/furnitune/furnitune-api/models"
	"gorm.io/gorm"
)

// CartService manages a user's pending cart lines
type CartService struct {
	db *gorm.DB
}

// NewCartService creates a cart service on top of db
func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddToCart inserts a new cart line. Lines are never merged.
func (s *CartService) AddToCart(userID, productID uint, quantity int, color, size string) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, invalidInput("quantity must be at least 1")
	}

	var product models.Product
	if err := s.db.Select("id").First(&product, productID).Error; err != nil {
		return nil, lookupError("product", "get product", err)
	}

	item := models.CartItem{
		UserID:        userID,
		ProductID:     productID,
		Quantity:      quantity,
		SelectedColor: nullable(color),
		SelectedSize:  nullable(size),
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, databaseError("add to cart", err)
	}
	return &item, nil
}

// GetCart returns the user's cart lines joined with live product data, oldest first
func (s *CartService) GetCart(userID uint) ([]models.CartLine, error) {
	lines, err := cartLines(s.db, userID)
	if err != nil {
		return nil, databaseError("get cart", err)
	}
	return lines, nil
}

// UpdateQuantity changes the quantity of one of the user's cart lines
func (s *CartService) UpdateQuantity(userID, cartID uint, quantity int) error {
	if quantity < 1 {
		return invalidInput("quantity must be at least 1")
	}

	result := s.db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", cartID, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return databaseError("update cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("cart item")
	}
	return nil
}

// RemoveItem deletes one of the user's cart lines
func (s *CartService) RemoveItem(userID, cartID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", cartID, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return databaseError("remove cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("cart item")
	}
	return nil
}

// ClearCart deletes every cart line of the user
func (s *CartService) ClearCart(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return databaseError("clear cart", err)
	}
	return nil
}

// CountItems returns the number of cart lines the user has
func (s *CartService) CountItems(userID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, databaseError("count cart items", err)
	}
	return count, nil
}

// CartSubtotal sums price times quantity over lines
func CartSubtotal(lines []models.CartLine) float64 {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.LineTotal()
	}
	return subtotal
}

// cartLines reads the user's cart joined with product name, price and image.
// The order service calls it with a transaction handle.
func cartLines(db *gorm.DB, userID uint) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	err := db.Table("cart").
		Select("cart.id, cart.product_id, cart.quantity, cart.selected_color, cart.selected_size, " +
			"products.name, products.price, products.image_url").
		Joins("JOIN products ON products.id = cart.product_id").
		Where("cart.user_id = ?", userID).
		Order("cart.created_at ASC, cart.id ASC").
		Scan(&lines).Error
	return lines, err
}
