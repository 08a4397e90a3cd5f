package controllers

import (
	"net/http"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/models"
	"github.com/furnitune/furnitune-api/services"
	"github.com/gin-gonic/gin"
)

// CreateOrderRequest represents the checkout request body
type CreateOrderRequest struct {
	ShippingAddress models.ShippingDetails `json:"shipping_address"`
	PaymentProof    string                 `json:"payment_proof"`
}

// UpdateOrderStatusRequest represents the request body for an administrative status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func newOrderService() *services.OrderService {
	var fee float64
	if cfg := config.GetConfig(); cfg != nil {
		fee = cfg.ShippingFee
	}
	return services.NewOrderService(config.GetDB(), fee)
}

// CreateOrder handles POST /api/v1/orders - checks out the current user's cart
func CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Parse request body
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	// Online payments are settled at checkout
	proof := req.PaymentProof
	method := req.ShippingAddress.PaymentMethod
	if proof == "" && method != "" && method != models.PaymentCOD {
		proof = "paid"
	}

	order, err := newOrderService().CreateOrder(userID, req.ShippingAddress, proof)
	if err != nil {
		respondError(c, err)
		return
	}

	services.ResolveOrderImages([]models.Order{*order})
	respondOK(c, http.StatusCreated, order)
}

// ListOrders handles GET /api/v1/orders - the current user's orders, newest first
func ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := newOrderService().GetUserOrders(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	services.ResolveOrderImages(orders)
	respondOK(c, http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:id - only the owner can see an order
func GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	order, err := newOrderService().GetOrderByID(orderID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	orders := []models.Order{*order}
	services.ResolveOrderImages(orders)
	respondOK(c, http.StatusOK, orders[0])
}

// GetOrderStats handles GET /api/v1/orders/stats
func GetOrderStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := newOrderService().GetOrderStats(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, stats)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel
func CancelOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := newOrderService().CancelOrder(orderID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order cancelled",
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status.
// Routed behind the orders:manage scope.
func UpdateOrderStatus(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	// Parse request body
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	if err := newOrderService().UpdateOrderStatus(orderID, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated",
	})
}
