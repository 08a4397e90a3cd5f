package services

import (
	"errors"

	"github.com/furnitune/furnitune-api/models"
	"gorm.io/gorm"
)

// ReviewService manages product reviews and keeps product rating aggregates in sync
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a review service on top of db
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReview writes the user's review of a product. A second review of the same
// product updates the first in place. The product's rating aggregate is recomputed
// in the same transaction.
func (s *ReviewService) CreateReview(userID, productID uint, rating int, message string, orderID *uint) (*models.Review, error) {
	if !models.ValidRating(rating) {
		return nil, ErrInvalidRating
	}

	var product models.Product
	if err := s.db.Select("id").First(&product, productID).Error; err != nil {
		return nil, lookupError("product", "get product", err)
	}

	if orderID != nil {
		var count int64
		err := s.db.Model(&models.Order{}).Where("id = ? AND user_id = ?", *orderID, userID).Count(&count).Error
		if err != nil {
			return nil, databaseError("check review order", err)
		}
		if count == 0 {
			return nil, invalidInput("order does not belong to the user")
		}
	}

	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&review).Error
		switch {
		case err == nil:
			err = tx.Model(&review).Updates(map[string]interface{}{
				"rating":  rating,
				"message": nullable(message),
			}).Error
			if err != nil {
				return databaseError("update review", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			review = models.Review{
				UserID:    userID,
				ProductID: productID,
				OrderID:   orderID,
				Rating:    rating,
				Message:   nullable(message),
			}
			if err := tx.Create(&review).Error; err != nil {
				return databaseError("create review", err)
			}
		default:
			return databaseError("get review", err)
		}

		return UpdateProductRating(tx, productID)
	})
	if err != nil {
		return nil, asServiceError("save review", err)
	}

	return s.GetUserProductReview(userID, productID)
}

// GetProductReviews returns a product's reviews with reviewer names, newest first
func (s *ReviewService) GetProductReviews(productID uint) ([]models.ProductReview, error) {
	reviews := []models.ProductReview{}
	err := s.db.Table("reviews").
		Select("reviews.*, users.name AS user_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.created_at DESC, reviews.id DESC").
		Scan(&reviews).Error
	if err != nil {
		return nil, databaseError("get product reviews", err)
	}
	return reviews, nil
}

// GetUserReviews returns the user's reviews with product names and images, newest first
func (s *ReviewService) GetUserReviews(userID uint) ([]models.UserReview, error) {
	reviews := []models.UserReview{}
	err := s.db.Table("reviews").
		Select("reviews.*, products.name AS product_name, products.image_url AS product_image").
		Joins("JOIN products ON products.id = reviews.product_id").
		Where("reviews.user_id = ?", userID).
		Order("reviews.created_at DESC, reviews.id DESC").
		Scan(&reviews).Error
	if err != nil {
		return nil, databaseError("get user reviews", err)
	}
	return reviews, nil
}

// CanUserReview reports whether the user has received the product in a completed order
func (s *ReviewService) CanUserReview(userID, productID uint) (bool, error) {
	var count int64
	err := s.db.Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ? AND orders.status = ?",
			userID, productID, models.OrderStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, databaseError("check review eligibility", err)
	}
	return count > 0, nil
}

// GetUserProductReview returns the user's review of a product, or ErrNotFound
func (s *ReviewService) GetUserProductReview(userID, productID uint) (*models.Review, error) {
	var review models.Review
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&review).Error
	if err != nil {
		return nil, lookupError("review", "get review", err)
	}
	return &review, nil
}

// DeleteReview removes one of the user's reviews and recomputes the product rating
func (s *ReviewService) DeleteReview(reviewID, userID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.Where("id = ? AND user_id = ?", reviewID, userID).First(&review).Error; err != nil {
			return lookupError("review", "get review", err)
		}

		if err := tx.Delete(&review).Error; err != nil {
			return databaseError("delete review", err)
		}

		return UpdateProductRating(tx, review.ProductID)
	})
	if err != nil {
		return asServiceError("delete review", err)
	}
	return nil
}

// GetRatingDistribution counts a product's reviews per star value. Every value 1..5 is present.
func (s *ReviewService) GetRatingDistribution(productID uint) (models.RatingDistribution, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := s.db.Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, databaseError("get rating distribution", err)
	}

	distribution := models.NewRatingDistribution()
	for _, row := range rows {
		distribution[row.Rating] = row.Count
	}
	return distribution, nil
}
