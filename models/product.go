package models

import (
	"strings"
	"time"
)

// Product represents a catalog entry.
// RatingAvg and ReviewsCount are derived from the reviews table and are only
// written by the rating recompute.
type Product struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	Price        float64   `gorm:"not null" json:"price"`
	Category     string    `gorm:"not null;index" json:"category"`
	ImageURL     string    `json:"image_url"`                          // raw reference as stored
	ImageSrc     *string   `gorm:"-" json:"image_src,omitempty"`       // computed field, resolved image URL
	Stock        int       `gorm:"default:0" json:"stock"`
	RatingAvg    float64   `gorm:"default:0" json:"rating_avg"`
	ReviewsCount int       `gorm:"default:0" json:"reviews_count"`
	Colors       string    `json:"colors"` // comma-joined
	Sizes        string    `json:"sizes"`  // comma-joined
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ColorList returns the product colors as a list
func (p Product) ColorList() []string {
	return SplitList(p.Colors)
}

// SizeList returns the product sizes as a list
func (p Product) SizeList() []string {
	return SplitList(p.Sizes)
}

// SplitList parses a comma-joined attribute field. Empty entries are dropped,
// so an empty field yields an empty (non-nil) list.
func SplitList(field string) []string {
	values := []string{}
	for _, part := range strings.Split(field, ",") {
		if v := strings.TrimSpace(part); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// JoinList is the inverse of SplitList
func JoinList(values []string) string {
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			trimmed = append(trimmed, v)
		}
	}
	return strings.Join(trimmed, ",")
}
