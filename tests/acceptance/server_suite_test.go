package acceptance

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/routes"
	"github.com/furnitune/furnitune-api/services"
	"github.com/furnitune/furnitune-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

// serverSuite boots the application the way `furnitune serve` does, against a
// throwaway SQLite file, and talks to it over real HTTP
type serverSuite struct {
	suite.Suite
	server *httptest.Server
	cfg    *config.Config
}

func (s *serverSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	dir := s.T().TempDir()
	s.T().Setenv("GO_ENV", "test")
	s.T().Setenv("DB_DRIVER", "sqlite")
	s.T().Setenv("DATABASE_URL", filepath.Join(dir, "furnitune.db"))
	s.T().Setenv("UPLOAD_DIR", filepath.Join(dir, "uploads"))
	s.T().Setenv("AUTO_SEED", "true")
	s.T().Setenv("LOG_LEVEL", "silent")
	s.T().Setenv("JWT_SECRET", "acceptance-secret")
	s.T().Setenv("ADMIN_EMAILS", "enrico@gmail.com")
	s.T().Setenv("SHIPPING_FEE", "100")
	s.T().Setenv("AWS_S3_BUCKET", "")

	config.SetConfig(nil)
	cfg, err := config.Load()
	s.Require().NoError(err)
	s.cfg = cfg

	_, err = config.Connection()
	s.Require().NoError(err)

	_, err = services.InitImageServiceFromConfig(cfg)
	s.Require().NoError(err)
	utils.UploadDir = cfg.UploadDir

	s.server = httptest.NewServer(routes.SetupRouter(cfg))
}

func (s *serverSuite) TearDownSuite() {
	s.server.Close()
	s.Require().NoError(config.CloseDatabase())
	config.SetConfig(nil)
	services.SetImageService(nil)
}

// call performs a request and decodes the JSON envelope
func (s *serverSuite) call(method, path, token string, body interface{}) (int, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(raw, &response), "Response body: %s", raw)
	return resp.StatusCode, response
}

// login signs in a seeded account (password "12345")
func (s *serverSuite) login(email string) string {
	status, response := s.call(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": "12345",
	})
	s.Require().Equal(http.StatusOK, status, "Response: %v", response)
	return response["data"].(map[string]interface{})["token"].(string)
}
