package models

import (
	"time"
)

// Rating bounds enforced by the reviews table CHECK constraint
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a product. There is at most one review per (user, product);
// the review service enforces this with update-or-insert.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID uint      `gorm:"not null;index:idx_reviews_product" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	OrderID   *uint     `json:"order_id"`
	Order     *Order    `gorm:"foreignKey:OrderID;constraint:OnDelete:SET NULL" json:"-"`
	Rating    int       `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Message   *string   `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}

// ValidRating reports whether rating is within the allowed range
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// ProductReview is a review joined with the reviewer's name
type ProductReview struct {
	Review
	UserName string `json:"user_name"`
}

// UserReview is a review joined with the reviewed product
type UserReview struct {
	Review
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	ImageSrc     *string `gorm:"-" json:"image_src,omitempty"`
}

// RatingDistribution maps each star value 1..5 to its review count
type RatingDistribution map[int]int64

// NewRatingDistribution returns a distribution with every bucket set to zero
func NewRatingDistribution() RatingDistribution {
	d := make(RatingDistribution, MaxRating)
	for r := MinRating; r <= MaxRating; r++ {
		d[r] = 0
	}
	return d
}
