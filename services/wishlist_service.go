package services

import (
	"github.com/furnitune/furnitune-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistService manages the set of products a user has wished for
type WishlistService struct {
	db *gorm.DB
}

// NewWishlistService creates a wishlist service on top of db
func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// AddToWishlist adds a product to the user's wishlist. Adding it again is a no-op.
func (s *WishlistService) AddToWishlist(userID, productID uint) error {
	var product models.Product
	if err := s.db.Select("id").First(&product, productID).Error; err != nil {
		return lookupError("product", "get product", err)
	}

	item := models.WishlistItem{UserID: userID, ProductID: productID}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(&item).Error
	if err != nil {
		return databaseError("add to wishlist", err)
	}
	return nil
}

// RemoveFromWishlist removes a product from the user's wishlist. Removing an absent entry succeeds.
func (s *WishlistService) RemoveFromWishlist(userID, productID uint) error {
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).Error
	if err != nil {
		return databaseError("remove from wishlist", err)
	}
	return nil
}

// IsInWishlist reports whether the product is on the user's wishlist
func (s *WishlistService) IsInWishlist(userID, productID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, databaseError("check wishlist", err)
	}
	return count > 0, nil
}

// GetWishlistProductIDs returns the ids of the products on the user's wishlist
func (s *WishlistService) GetWishlistProductIDs(userID uint) ([]uint, error) {
	ids := []uint{}
	err := s.db.Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, databaseError("get wishlist", err)
	}
	return ids, nil
}

// GetWishlistProducts returns the wished-for products, most recently added first
func (s *WishlistService) GetWishlistProducts(userID uint) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.Table("products").
		Select("products.*").
		Joins("JOIN wishlists ON wishlists.product_id = products.id").
		Where("wishlists.user_id = ?", userID).
		Order("wishlists.created_at DESC, wishlists.id DESC").
		Scan(&products).Error
	if err != nil {
		return nil, databaseError("get wishlist products", err)
	}
	return products, nil
}
