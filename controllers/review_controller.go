package controllers

import (
	"net/http"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/services"
	"github.com/gin-gonic/gin"
)

// CreateReviewRequest represents the request body for writing a review.
// Reviewing a product twice replaces the earlier rating and message.
type CreateReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Message   string `json:"message"`
	OrderID   *uint  `json:"order_id"`
}

// CreateReview handles POST /api/v1/reviews
func CreateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Parse request body
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	review, err := services.NewReviewService(config.GetDB()).
		CreateReview(userID, req.ProductID, req.Rating, req.Message, req.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, review)
}

// ListMyReviews handles GET /api/v1/reviews/me
func ListMyReviews(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reviews, err := services.NewReviewService(config.GetDB()).GetUserReviews(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	services.ResolveReviewImages(reviews)
	respondOK(c, http.StatusOK, reviews)
}

// DeleteReview handles DELETE /api/v1/reviews/:id - only the author can delete a review
func DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reviewID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewReviewService(config.GetDB()).DeleteReview(reviewID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review deleted",
	})
}
