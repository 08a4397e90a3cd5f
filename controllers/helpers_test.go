package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/services"
	"github.com/furnitune/furnitune-api/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testAdminEmail = "admin@furnitune.test"

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// setupControllerTest installs a fresh database, a test configuration and a mock image service
func setupControllerTest(t *testing.T) (*gorm.DB, *services.MockImageService) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	originalDB := config.GetDB()
	originalConfig := config.GetConfig()
	originalImages := services.GetImageService()

	config.SetDB(db)
	config.SetConfig(&config.Config{
		GoEnv:       "test",
		JWTSecret:   "test-secret",
		JWTIssuer:   "furnitune-api",
		JWTAudience: "furnitune-app",
		TokenTTL:    time.Hour,
		AdminEmails: []string{testAdminEmail},
		ShippingFee: 100,
	})
	images := services.NewMockImageService()
	images.SetAsMockForTesting()

	t.Cleanup(func() {
		config.SetDB(originalDB)
		config.SetConfig(originalConfig)
		services.SetImageService(originalImages)
	})
	return db, images
}

// performRequest sends body (if any) as JSON
func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "Response body: %s", w.Body.String())
	return response
}

// errorCode returns error.code from an error envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	response := decodeResponse(t, w)
	errorData, ok := response["error"].(map[string]interface{})
	require.True(t, ok, "Response body: %s", w.Body.String())
	return errorData["code"].(string)
}

func responseData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	response := decodeResponse(t, w)
	require.Equal(t, true, response["success"], "Response body: %s", w.Body.String())
	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok, "Response body: %s", w.Body.String())
	return data
}

func responseList(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()

	response := decodeResponse(t, w)
	require.Equal(t, true, response["success"], "Response body: %s", w.Body.String())
	data, ok := response["data"].([]interface{})
	require.True(t, ok, "Response body: %s", w.Body.String())
	return data
}
