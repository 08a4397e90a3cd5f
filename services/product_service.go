package services

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/furnitune/furnitune-api/models"
	"gorm.io/gorm"
)

// Categories shown in the storefront, in display order
var Categories = []string{"Sofas", "Chairs", "Beds", "Sectionals", "Ottomans", "Tables"}

// ProductQuery filters a catalog listing. Zero values mean "no filter".
type ProductQuery struct {
	Category string
	Search   string
	Limit    uint64
}

// ProductService reads the catalog and maintains the rating aggregates
type ProductService struct {
	db *gorm.DB
}

// NewProductService creates a product service on top of db
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// ListProducts returns the products matching q, newest first.
// Search is a case-insensitive substring match on name or description.
func (s *ProductService) ListProducts(q ProductQuery) ([]models.Product, error) {
	query := sq.Select("*").From("products").OrderBy("created_at DESC", "id DESC")

	if category := strings.TrimSpace(q.Category); category != "" {
		query = query.Where(sq.Eq{"category": category})
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		pattern := "%" + term + "%"
		query = query.Where(sq.Or{
			sq.Expr("LOWER(name) LIKE LOWER(?)", pattern),
			sq.Expr("LOWER(description) LIKE LOWER(?)", pattern),
		})
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, databaseError("build product query", err)
	}

	products := []models.Product{}
	if err := s.db.Raw(sql, args...).Scan(&products).Error; err != nil {
		return nil, databaseError("list products", err)
	}
	return products, nil
}

// GetAllProducts returns the whole catalog, newest first
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.ListProducts(ProductQuery{})
}

// GetProductsByCategory returns the products of one category, newest first
func (s *ProductService) GetProductsByCategory(category string) ([]models.Product, error) {
	return s.ListProducts(ProductQuery{Category: category})
}

// SearchProducts returns the products whose name or description contains term
func (s *ProductService) SearchProducts(term string) ([]models.Product, error) {
	return s.ListProducts(ProductQuery{Search: term})
}

// GetProductByID returns a product or ErrNotFound
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		return nil, lookupError("product", "get product", err)
	}
	return &product, nil
}

// ReconcileRatings recomputes the rating aggregates of every product and
// returns how many products were updated
func (s *ProductService) ReconcileRatings() (int, error) {
	var ids []uint
	if err := s.db.Model(&models.Product{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return 0, databaseError("list products", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			if err := UpdateProductRating(tx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, asServiceError("reconcile ratings", err)
	}
	return len(ids), nil
}

// UpdateProductRating overwrites a product's rating_avg and reviews_count with the
// aggregate over its reviews. It runs on tx so callers can make it part of their
// own transaction.
func UpdateProductRating(tx *gorm.DB, productID uint) error {
	var agg struct {
		Average float64
		Count   int64
	}
	err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&agg).Error
	if err != nil {
		return databaseError("aggregate ratings", err)
	}

	err = tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating_avg":    agg.Average,
			"reviews_count": agg.Count,
		}).Error
	if err != nil {
		return databaseError("update product rating", err)
	}
	return nil
}
