package controllers

import (
	"net/http"
	"strconv"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/models"
	"github.com/furnitune/furnitune-api/services"
	"github.com/gin-gonic/gin"
)

// ProductDetail is a product with its color and size options split out
type ProductDetail struct {
	models.Product
	ColorOptions []string `json:"color_options"`
	SizeOptions  []string `json:"size_options"`
}

// ListProducts handles GET /api/v1/products - lists the catalog, optionally
// filtered by ?category= and ?q=
func ListProducts(c *gin.Context) {
	query := services.ProductQuery{
		Category: c.Query("category"),
		Search:   c.Query("q"),
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.ParseUint(limit, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "limit must be a positive number",
				},
			})
			return
		}
		query.Limit = n
	}

	products, err := services.NewProductService(config.GetDB()).ListProducts(query)
	if err != nil {
		respondError(c, err)
		return
	}

	services.ResolveProductImages(products)
	respondOK(c, http.StatusOK, products)
}

// ListCategories handles GET /api/v1/products/categories
func ListCategories(c *gin.Context) {
	respondOK(c, http.StatusOK, services.Categories)
}

// GetProduct handles GET /api/v1/products/:id
func GetProduct(c *gin.Context) {
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	product, err := services.NewProductService(config.GetDB()).GetProductByID(productID)
	if err != nil {
		respondError(c, err)
		return
	}

	product.ImageSrc = services.ResolveImageURL(product.ImageURL)
	respondOK(c, http.StatusOK, ProductDetail{
		Product:      *product,
		ColorOptions: product.ColorList(),
		SizeOptions:  product.SizeList(),
	})
}

// GetProductReviews handles GET /api/v1/products/:id/reviews - newest first, with reviewer names
func GetProductReviews(c *gin.Context) {
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	reviews, err := services.NewReviewService(config.GetDB()).GetProductReviews(productID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, reviews)
}

// GetRatingDistribution handles GET /api/v1/products/:id/rating-distribution
func GetRatingDistribution(c *gin.Context) {
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	distribution, err := services.NewReviewService(config.GetDB()).GetRatingDistribution(productID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, distribution)
}

// CanReviewProduct handles GET /api/v1/products/:id/can-review
func CanReviewProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	canReview, err := services.NewReviewService(config.GetDB()).CanUserReview(userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"can_review": canReview})
}

// GetMyProductReview handles GET /api/v1/products/:id/my-review
func GetMyProductReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	review, err := services.NewReviewService(config.GetDB()).GetUserProductReview(userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, review)
}
