package controllers

import (
	"net/http"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/services"
	"github.com/gin-gonic/gin"
)

// GetWishlist handles GET /api/v1/wishlist - wished-for products, most recent first
func GetWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	products, err := services.NewWishlistService(config.GetDB()).GetWishlistProducts(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	services.ResolveProductImages(products)
	respondOK(c, http.StatusOK, products)
}

// GetWishlistIDs handles GET /api/v1/wishlist/ids
func GetWishlistIDs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ids, err := services.NewWishlistService(config.GetDB()).GetWishlistProductIDs(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, ids)
}

// AddToWishlist handles POST /api/v1/wishlist/:productId
func AddToWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := idParam(c, "productId")
	if !ok {
		return
	}

	if err := services.NewWishlistService(config.GetDB()).AddToWishlist(userID, productID); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"product_id": productID, "in_wishlist": true})
}

// RemoveFromWishlist handles DELETE /api/v1/wishlist/:productId
func RemoveFromWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := idParam(c, "productId")
	if !ok {
		return
	}

	if err := services.NewWishlistService(config.GetDB()).RemoveFromWishlist(userID, productID); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"product_id": productID, "in_wishlist": false})
}

// CheckWishlist handles GET /api/v1/wishlist/:productId
func CheckWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := idParam(c, "productId")
	if !ok {
		return
	}

	inWishlist, err := services.NewWishlistService(config.GetDB()).IsInWishlist(userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"product_id": productID, "in_wishlist": inWishlist})
}
