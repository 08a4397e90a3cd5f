package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/furnitune/furnitune-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUploadRouter(t *testing.T) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)

	tmpDir := t.TempDir()
	previous := utils.UploadDir
	utils.UploadDir = tmpDir
	t.Cleanup(func() { utils.UploadDir = previous })

	router := gin.New()
	router.GET("/uploads/:filename", GetUploadedImage)
	return router, tmpDir
}

func TestGetUploadedImage_Success(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
	}{
		{"a.png", "image/png"},
		{"b.jpg", "image/jpeg"},
		{"c.jpeg", "image/jpeg"},
		{"d.webp", "image/webp"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			router, dir := setupUploadRouter(t)

			content := []byte("fake image content")
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.filename), content, 0644))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/uploads/"+tt.filename, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
			assert.Equal(t, content, w.Body.Bytes())
		})
	}
}

func TestGetUploadedImage_FileNotFound(t *testing.T) {
	router, _ := setupUploadRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/uploads/nonexistent.png", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_NOT_FOUND")
}

func TestGetUploadedImage_InvalidFileType(t *testing.T) {
	router, dir := setupUploadRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0644))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/uploads/notes.txt", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_FILE_TYPE")
}

func TestGetUploadedImage_DirectoryTraversal(t *testing.T) {
	router, _ := setupUploadRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/uploads/..secret.png", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_FILENAME")
}
