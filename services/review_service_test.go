package services

import (
	"testing"

	"github.com/furnitune/furnitune-api/models"
	"github.com/furnitune/furnitune-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func reloadProduct(t *testing.T, db *gorm.DB, id uint) models.Product {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return product
}

func TestCreateReviewUpdatesAggregate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewReviewService(db)
	user := testutil.CreateUser(t, db, "jake@gmail.com", "Jake")
	other := testutil.CreateUser(t, db, "enrico@gmail.com", "Enrico")
	sofa := testutil.CreateProduct(t, db, "Classic Sofa", "Sofas", 14999)

	review, err := service.CreateReview(user.ID, sofa.ID, 5, "Excellent quality sofa!", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	require.NotNil(t, review.Message)
	assert.Equal(t, "Excellent quality sofa!", *review.Message)

	_, err = service.CreateReview(other.ID, sofa.ID, 4, "", nil)
	require.NoError(t, err)

	product := reloadProduct(t, db, sofa.ID)
	assert.Equal(t, 4.5, product.RatingAvg)
	assert.Equal(t, 2, product.ReviewsCount)
}

func TestCreateReviewUpsertsPerUserAndProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewReviewService(db)
	user := testutil.CreateUser(t, db, "jake@gmail.com", "Jake")
	sofa := testutil.CreateProduct(t, db, "Classic Sofa", "Sofas", 14999)

	first, err := service.CreateReview(user.ID, sofa.ID, 2, "Meh", nil)
	require.NoError(t, err)
	second, err := service.CreateReview(user.ID, sofa.ID, 5, "Grew on me", nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "the existing review is updated in place")
	assert.Equal(t, int64(1), countRows(t, db, &models.Review{}))
	assert.Equal(t, 5, second.Rating)
	require.NotNil(t, second.Message)
	assert.Equal(t, "Grew on me", *second.Message)

	product := reloadProduct(t, db, sofa.ID)
	assert.Equal(t, 5.0, product.RatingAvg)
	assert.Equal(t, 1, product.ReviewsCount)
}

func TestCreateReviewValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewReviewService(db)
	user := testutil.CreateUser(t, db, "jake@gmail.com", "Jake")
	sofa := testutil.CreateProduct(t, db, "Classic Sofa", "Sofas", 14999)

	for _, rating := range []int{0, 6, -1} {
		_, err := service.CreateReview(user.ID, sofa.ID, rating, "", nil)
		assert.ErrorIs(t, err, ErrInvalidRating)
		assert.Equal(t, CodeValidation, CodeOf(err))
	}

	_, err := service.CreateReview(user.ID, 999, 5, "", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Zero(t, countRows(t, db, &models.Review{}))
	product := reloadProduct(t, db, sofa.ID)
	assert.Equal(t, 0, product.ReviewsCount)
}

func TestCanUserReview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewReviewService(db)
	orders := NewOrderService(db, 100)
	user := testutil.CreateUser(t, db, "jake@gmail.com", "Jake")
	sofa := testutil.CreateProduct(t, db, "Classic Sofa", "Sofas", 14999)
	chair := testutil.CreateProduct(t, db, "Cinder Chair", "Chairs", 2999)

	can, err := service.CanUserReview(user.ID, sofa.ID)
	require.NoError(t, err)
	assert.False(t, can, "no order at all")

	_, err = NewCartService(db).AddToCart(user.ID, sofa.ID, 1, "", "")
	require.NoError(t, err)
	order, err := orders.CreateOrder(user.ID, models.ShippingDetails{Address: "Manila"}, "")
	require.NoError(t, err)

	can, err = service.CanUserReview(user.ID, sofa.ID)
	require.NoError(t, err)
	assert.False(t, can, "processing orders do not qualify")

	require.NoError(t, orders.UpdateOrderStatus(order.ID, models.OrderStatusCompleted))

	can, err = service.CanUserReview(user.ID, sofa.ID)
	require.NoError(t, err)
	assert.True(t, can, "completed orders qualify")

	can, err = service.CanUserReview(user.ID, chair.ID)
	require.NoError(t, err)
	assert.False(t, can, "only ordered products qualify")
}

func TestGetProductAndUserReviews(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewReviewService(db)
	user := testutil.CreateUser(t, db, "jake@gmail.com", "Jake")
	other := testutil.CreateUser(t, db, "enrico@gmail.com", "Enrico")
	sofa := testutil.CreateProduct(t, db, "Classic Sofa", "Sofas", 14999)
	chair := testutil.CreateProduct(t, db, "Cinder Chair", "Chairs", 2999)

	_, err := service.CreateReview(user.ID, sofa.ID, 5, "Great", nil)
	require.NoError(t, err)
	_, err = service.CreateReview(other.ID, sofa.ID, 3, "Okay", nil)
	require.NoError(t, err)
	_, err = service.CreateReview(user.ID, chair.ID, 4, "Nice", nil)
	require.NoError(t, err)

	productReviews, err := service.GetProductReviews(sofa.ID)
	require.NoError(t, err)
	require.Len(t, productReviews, 2)
	assert.Equal(t, "Enrico", productReviews[0].UserName, "newest first")
	assert.Equal(t, "Jake", productReviews[1].UserName)
	assert.Equal(t, 3, productReviews[0].Rating)

	userReviews, err := service.GetUserReviews(user.ID)
	require.NoError(t, err)
	require.Len(t, userReviews, 2)
	assert.Equal(t, "Cinder Chair", userReviews[0].ProductName)
	assert.Equal(t, chair.ImageURL, userReviews[0].ProductImage)
	assert.Equal(t, "Classic Sofa", userReviews[1].ProductName)
}

func TestGetUserProductReview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewReviewService(db)
	user := testutil.CreateUser(t, db, "jake@gmail.com", "Jake")
	sofa := testutil.CreateProduct(t, db, "Classic Sofa", "Sofas", 14999)

	_, err := service.GetUserProductReview(user.ID, sofa.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.CreateReview(user.ID, sofa.ID, 4, "", nil)
	require.NoError(t, err)

	review, err := service.GetUserProductReview(user.ID, sofa.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Nil(t, review.Message, "an empty message is stored as NULL")
}

func TestDeleteReview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewReviewService(db)
	user := testutil.CreateUser(t, db, "jake@gmail.com", "Jake")
	other := testutil.CreateUser(t, db, "enrico@gmail.com", "Enrico")
	sofa := testutil.CreateProduct(t, db, "Classic Sofa", "Sofas", 14999)

	mine, err := service.CreateReview(user.ID, sofa.ID, 5, "", nil)
	require.NoError(t, err)
	_, err = service.CreateReview(other.ID, sofa.ID, 1, "", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, service.DeleteReview(mine.ID, other.ID), ErrNotFound, "only the author can delete")

	require.NoError(t, service.DeleteReview(mine.ID, user.ID))
	assert.ErrorIs(t, service.DeleteReview(mine.ID, user.ID), ErrNotFound)

	product := reloadProduct(t, db, sofa.ID)
	assert.Equal(t, 1.0, product.RatingAvg)
	assert.Equal(t, 1, product.ReviewsCount)
}

func TestGetRatingDistribution(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewReviewService(db)
	sofa := testutil.CreateProduct(t, db, "Classic Sofa", "Sofas", 14999)

	empty, err := service.GetRatingDistribution(sofa.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RatingDistribution{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, empty)

	emails := []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com"}
	for i, rating := range []int{5, 5, 4, 3} {
		user := testutil.CreateUser(t, db, emails[i], "Reviewer")
		_, err := service.CreateReview(user.ID, sofa.ID, rating, "", nil)
		require.NoError(t, err)
	}

	distribution, err := service.GetRatingDistribution(sofa.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RatingDistribution{1: 0, 2: 0, 3: 1, 4: 1, 5: 2}, distribution)

	product := reloadProduct(t, db, sofa.ID)
	assert.Equal(t, 4.25, product.RatingAvg)
	assert.Equal(t, 4, product.ReviewsCount)
}

func TestReviewOrderReferenceSurvivesOrderDeletion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewReviewService(db)
	orders := NewOrderService(db, 100)
	user := testutil.CreateUser(t, db, "jake@gmail.com", "Jake")
	sofa := testutil.CreateProduct(t, db, "Classic Sofa", "Sofas", 14999)

	_, err := NewCartService(db).AddToCart(user.ID, sofa.ID, 1, "", "")
	require.NoError(t, err)
	order, err := orders.CreateOrder(user.ID, models.ShippingDetails{Address: "Manila"}, "")
	require.NoError(t, err)

	review, err := service.CreateReview(user.ID, sofa.ID, 5, "", &order.ID)
	require.NoError(t, err)
	require.NotNil(t, review.OrderID)

	require.NoError(t, db.Delete(&models.Order{}, order.ID).Error)

	kept, err := service.GetUserProductReview(user.ID, sofa.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.OrderID, "the order reference is cleared, the review stays")
}

func TestCreateReviewRejectsForeignOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewReviewService(db)
	jake := testutil.CreateUser(t, db, "jake@gmail.com", "Jake")
	anna := testutil.CreateUser(t, db, "anna@gmail.com", "Anna")
	sofa := testutil.CreateProduct(t, db, "Classic Sofa", "Sofas", 14999)

	_, err := NewCartService(db).AddToCart(anna.ID, sofa.ID, 1, "", "")
	require.NoError(t, err)
	annasOrder, err := NewOrderService(db, 100).CreateOrder(anna.ID, models.ShippingDetails{Address: "Cebu"}, "")
	require.NoError(t, err)

	missing := uint(999)
	for _, orderID := range []*uint{&annasOrder.ID, &missing} {
		_, err := service.CreateReview(jake.ID, sofa.ID, 5, "", orderID)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, CodeValidation, CodeOf(err))
	}

	assert.Zero(t, countRows(t, db, &models.Review{}))
}
