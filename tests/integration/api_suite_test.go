package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/routes"
	"github.com/furnitune/furnitune-api/services"
	"github.com/furnitune/furnitune-api/tests/testutil"
	"github.com/furnitune/furnitune-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const adminEmail = "admin@furnitune.test"

// apiSuite runs requests through the full router, real token validation included
type apiSuite struct {
	suite.Suite
	router    *gin.Engine
	db        *gorm.DB
	cfg       *config.Config
	uploadDir string
}

func (s *apiSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
}

func (s *apiSuite) SetupTest() {
	s.db = testutil.SetupTestDB(s.T())
	config.SetDB(s.db)

	s.uploadDir = s.T().TempDir()
	utils.UploadDir = s.uploadDir

	s.cfg = &config.Config{
		GoEnv:          "test",
		JWTSecret:      "integration-secret",
		JWTIssuer:      "furnitune-api",
		JWTAudience:    "furnitune-app",
		TokenTTL:       time.Hour,
		AdminEmails:    []string{adminEmail},
		AllowedOrigins: []string{"http://localhost:5173"},
		ShippingFee:    100,
		UploadDir:      s.uploadDir,
	}
	config.SetConfig(s.cfg)

	services.SetImageService(services.NewLocalImageService(s.uploadDir))
	s.router = routes.SetupRouter(s.cfg)
}

func (s *apiSuite) TearDownTest() {
	config.SetDB(nil)
	config.SetConfig(nil)
	services.SetImageService(nil)
}

// request sends body (if any) as JSON with an optional bearer token
func (s *apiSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// requestWithHeader sends a bodiless request with a raw Authorization header
func (s *apiSuite) requestWithHeader(method, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *apiSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response), "Response body: %s", w.Body.String())
	return response
}

func (s *apiSuite) data(w *httptest.ResponseRecorder) map[string]interface{} {
	response := s.decode(w)
	data, ok := response["data"].(map[string]interface{})
	s.Require().True(ok, "Response body: %s", w.Body.String())
	return data
}

func (s *apiSuite) list(w *httptest.ResponseRecorder) []interface{} {
	response := s.decode(w)
	data, ok := response["data"].([]interface{})
	s.Require().True(ok, "Response body: %s", w.Body.String())
	return data
}

// register creates an account through the API and returns its token and id
func (s *apiSuite) register(email, name string) (string, uint) {
	w := s.request(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret",
		"name":     name,
	})
	s.Require().Equal(http.StatusCreated, w.Code, "Response body: %s", w.Body.String())

	data := s.data(w)
	user := data["user"].(map[string]interface{})
	return data["token"].(string), uint(user["id"].(float64))
}
