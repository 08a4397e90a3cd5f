package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/furnitune/furnitune-api/models"
	"github.com/furnitune/furnitune-api/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductRouter(userID uint) *gin.Engine {
	router := setupTestRouter()
	auth := testutil.MockAuthMiddleware(userID)
	router.GET("/products", auth, ListProducts)
	router.GET("/products/categories", auth, ListCategories)
	router.GET("/products/:id", auth, GetProduct)
	router.GET("/products/:id/reviews", auth, GetProductReviews)
	router.GET("/products/:id/rating-distribution", auth, GetRatingDistribution)
	router.GET("/products/:id/can-review", auth, CanReviewProduct)
	router.GET("/products/:id/my-review", auth, GetMyProductReview)
	return router
}

func productNamesFrom(list []interface{}) []string {
	names := make([]string, 0, len(list))
	for _, item := range list {
		names = append(names, item.(map[string]interface{})["name"].(string))
	}
	return names
}

func createCompletedOrder(t *testing.T, db *gorm.DB, userID uint, product *models.Product) *models.Order {
	t.Helper()

	order := &models.Order{
		UserID:          userID,
		Subtotal:        product.Price,
		ShippingFee:     100,
		Total:           product.Price + 100,
		Status:          models.OrderStatusCompleted,
		ShippingAddress: models.ShippingDetails{Address: "1 Main St", PaymentMethod: models.PaymentCOD},
		Items: []models.OrderItem{
			{ProductID: product.ID, Quantity: 1, Price: product.Price},
		},
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestListProducts(t *testing.T) {
	db, _ := setupControllerTest(t)
	user := testutil.CreateUser(t, db, "jake@example.com", "Jake")
	testutil.CreateProduct(t, db, "Classic Sofa", "Sofas", 15999)
	testutil.CreateProduct(t, db, "Cinder Chair", "Chairs", 4999)
	testutil.CreateProduct(t, db, "Harbor Sofa", "Sofas", 18999)

	router := setupProductRouter(user.ID)

	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{"all products newest first", "/products", []string{"Harbor Sofa", "Cinder Chair", "Classic Sofa"}},
		{"by category", "/products?category=Sofas", []string{"Harbor Sofa", "Classic Sofa"}},
		{"search is case-insensitive", "/products?q=cHaIr", []string{"Cinder Chair"}},
		{"category and search", "/products?category=Sofas&q=classic", []string{"Classic Sofa"}},
		{"limit", "/products?limit=1", []string{"Harbor Sofa"}},
		{"no match", "/products?q=lamp", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())
			assert.Equal(t, tt.expected, productNamesFrom(responseList(t, w)))
		})
	}

	t.Run("invalid limit", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/products?limit=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("images are resolved", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/products?q=cinder", nil)
		product := responseList(t, w)[0].(map[string]interface{})
		assert.Equal(t, "../Assets/Chairs/Cinder Chair.jpg", product["image_url"])
		assert.Equal(t, "/assets/Chairs/Cinder Chair.jpg", product["image_src"])
	})
}

func TestListCategories(t *testing.T) {
	setupControllerTest(t)
	router := setupProductRouter(1)

	w := performRequest(router, http.MethodGet, "/products/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"Sofas", "Chairs", "Beds", "Sectionals", "Ottomans", "Tables"}, responseList(t, w))
}

func TestGetProduct(t *testing.T) {
	db, _ := setupControllerTest(t)
	product := testutil.CreateProduct(t, db, "Classic Sofa", "Sofas", 15999)
	router := setupProductRouter(1)

	w := performRequest(router, http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	data := responseData(t, w)
	assert.Equal(t, "Classic Sofa", data["name"])
	assert.Equal(t, "Gray,Beige", data["colors"])
	assert.Equal(t, []interface{}{"Gray", "Beige"}, data["color_options"])
	assert.Equal(t, []interface{}{"Standard"}, data["size_options"])

	w = performRequest(router, http.MethodGet, "/products/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))

	w = performRequest(router, http.MethodGet, "/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", errorCode(t, w))
}

func TestProductReviewEndpoints(t *testing.T) {
	db, _ := setupControllerTest(t)
	jake := testutil.CreateUser(t, db, "jake@example.com", "Jake")
	anna := testutil.CreateUser(t, db, "anna@example.com", "Anna")
	product := testutil.CreateProduct(t, db, "Classic Sofa", "Sofas", 15999)
	createCompletedOrder(t, db, jake.ID, product)

	message := "Comfy"
	require.NoError(t, db.Create(&models.Review{UserID: jake.ID, ProductID: product.ID, Rating: 5, Message: &message}).Error)
	require.NoError(t, db.Create(&models.Review{UserID: anna.ID, ProductID: product.ID, Rating: 3}).Error)

	t.Run("reviews carry reviewer names", func(t *testing.T) {
		router := setupProductRouter(jake.ID)
		w := performRequest(router, http.MethodGet, fmt.Sprintf("/products/%d/reviews", product.ID), nil)
		require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

		reviews := responseList(t, w)
		require.Len(t, reviews, 2)
		assert.Equal(t, "Anna", reviews[0].(map[string]interface{})["user_name"])
		assert.Equal(t, "Jake", reviews[1].(map[string]interface{})["user_name"])
	})

	t.Run("distribution has every star value", func(t *testing.T) {
		router := setupProductRouter(jake.ID)
		w := performRequest(router, http.MethodGet, fmt.Sprintf("/products/%d/rating-distribution", product.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := responseData(t, w)
		assert.Equal(t, map[string]interface{}{
			"1": float64(0), "2": float64(0), "3": float64(1), "4": float64(0), "5": float64(1),
		}, data)
	})

	t.Run("can review after a completed order", func(t *testing.T) {
		w := performRequest(setupProductRouter(jake.ID), http.MethodGet, fmt.Sprintf("/products/%d/can-review", product.ID), nil)
		assert.Equal(t, true, responseData(t, w)["can_review"])

		w = performRequest(setupProductRouter(anna.ID), http.MethodGet, fmt.Sprintf("/products/%d/can-review", product.ID), nil)
		assert.Equal(t, false, responseData(t, w)["can_review"])
	})

	t.Run("my review", func(t *testing.T) {
		w := performRequest(setupProductRouter(jake.ID), http.MethodGet, fmt.Sprintf("/products/%d/my-review", product.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Comfy", responseData(t, w)["message"])

		other := testutil.CreateUser(t, db, "other@example.com", "Other")
		w = performRequest(setupProductRouter(other.ID), http.MethodGet, fmt.Sprintf("/products/%d/my-review", product.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
