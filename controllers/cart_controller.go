package controllers

import (
	"net/http"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/models"
	"github.com/furnitune/furnitune-api/services"
	"github.com/gin-gonic/gin"
)

// AddToCartRequest represents the request body for adding a cart line
type AddToCartRequest struct {
	ProductID     uint   `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selected_color"`
	SelectedSize  string `json:"selected_size"`
}

// UpdateCartItemRequest represents the request body for changing a line's quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CartResponse is the cart with its derived subtotal
type CartResponse struct {
	Items    []models.CartLine `json:"items"`
	Subtotal float64           `json:"subtotal"`
	Count    int               `json:"count"`
}

// GetCart handles GET /api/v1/cart
func GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	lines, err := services.NewCartService(config.GetDB()).GetCart(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	services.ResolveCartImages(lines)
	respondOK(c, http.StatusOK, CartResponse{
		Items:    lines,
		Subtotal: services.CartSubtotal(lines),
		Count:    len(lines),
	})
}

// AddToCart handles POST /api/v1/cart - adds a new line; quantity defaults to 1
func AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Parse request body
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := services.NewCartService(config.GetDB()).
		AddToCart(userID, req.ProductID, req.Quantity, req.SelectedColor, req.SelectedSize)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, item)
}

// UpdateCartItem handles PUT /api/v1/cart/:id
func UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}

	// Parse request body
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	if err := services.NewCartService(config.GetDB()).UpdateQuantity(userID, cartID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart updated",
	})
}

// RemoveCartItem handles DELETE /api/v1/cart/:id
func RemoveCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewCartService(config.GetDB()).RemoveItem(userID, cartID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item removed from cart",
	})
}

// ClearCart handles DELETE /api/v1/cart
func ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := services.NewCartService(config.GetDB()).ClearCart(userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart cleared",
	})
}
