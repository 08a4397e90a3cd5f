package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/furnitune/furnitune-api/middleware"
	"github.com/furnitune/furnitune-api/services"
	"github.com/furnitune/furnitune-api/utils"
	"github.com/gin-gonic/gin"
)

// respondError writes the error envelope for an error returned by a service
func respondError(c *gin.Context, err error) {
	var fileErr *utils.FileUploadError
	if errors.As(err, &fileErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    fileErr.Code,
				"message": fileErr.Message,
			},
		})
		return
	}

	code := services.CodeOf(err)
	message := "An unexpected error occurred"
	var serviceErr *services.ServiceError
	if errors.As(err, &serviceErr) {
		message = serviceErr.Message
	}

	c.JSON(statusForCode(code), gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func statusForCode(code string) int {
	switch code {
	case services.CodeNotFound:
		return http.StatusNotFound
	case services.CodeConflict:
		return http.StatusConflict
	case services.CodeValidation:
		return http.StatusBadRequest
	case services.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondUploadError writes the envelope for a failed image upload. Rejected files
// are the client's fault; anything else is a storage failure.
func respondUploadError(c *gin.Context, err error) {
	var fileErr *utils.FileUploadError
	if errors.As(err, &fileErr) {
		respondError(c, err)
		return
	}

	log.Printf("Image upload failed: %v", err)
	c.JSON(http.StatusBadGateway, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "STORAGE_ERROR",
			"message": "Failed to store image",
		},
	})
}

// respondInvalidRequest writes a 400 for a request body that failed to bind
func respondInvalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

// currentUserID returns the authenticated user's id, or writes a 401 and returns false
func currentUserID(c *gin.Context) (uint, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return 0, false
	}
	return userID, true
}

// idParam parses a numeric path parameter, or writes a 400 and returns false
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid " + name,
			},
		})
		return 0, false
	}
	return uint(id), true
}

// respondOK writes the success envelope
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}
