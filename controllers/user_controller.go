package controllers

import (
	"log"
	"net/http"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/services"
	"github.com/furnitune/furnitune-api/utils"
	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest represents the request body for updating a user profile.
// ProfileImage may be a data URI, URL or asset path; omit it to keep the current image.
// Upload keys are only set by the image upload endpoint.
type UpdateProfileRequest struct {
	Name         string  `json:"name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        string  `json:"phone"`
	ProfileImage *string `json:"profile_image"`
}

// ChangePasswordRequest represents the request body for changing the password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// GetMyProfile handles GET /api/v1/users/me - gets current user's profile
func GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := services.NewUserService(config.GetDB()).GetUserByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	services.ResolveUserImage(user)
	respondOK(c, http.StatusOK, user)
}

// UpdateMyProfile handles PUT /api/v1/users/me - overwrites the current user's profile
func UpdateMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Parse request body
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	if req.ProfileImage != nil && utils.IsUploadKey(*req.ProfileImage) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Upload the image through /users/me/image",
			},
		})
		return
	}

	user, err := services.NewUserService(config.GetDB()).UpdateProfile(userID, services.ProfileUpdate{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	services.ResolveUserImage(user)
	respondOK(c, http.StatusOK, user)
}

// ChangeMyPassword handles PUT /api/v1/users/me/password
func ChangeMyPassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Parse request body
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	if err := services.NewUserService(config.GetDB()).ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password updated",
	})
}

// UploadProfileImage handles POST /api/v1/users/me/image - stores an image file
// and makes it the current user's profile image
func UploadProfileImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "An image file is required in the 'image' field",
			},
		})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	userService := services.NewUserService(config.GetDB())
	user, err := userService.GetUserByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	imageKey, err := imageService.UploadImage(fileHeader)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	previous := user.ProfileImage
	user, err = userService.UpdateProfile(userID, services.ProfileUpdate{
		Name:         user.Name,
		Email:        user.Email,
		Phone:        derefString(user.Phone),
		ProfileImage: &imageKey,
	})
	if err != nil {
		if deleteErr := imageService.DeleteImage(imageKey); deleteErr != nil {
			log.Printf("Failed to remove unused upload %s: %v", imageKey, deleteErr)
		}
		respondError(c, err)
		return
	}

	// The replaced upload is no longer referenced
	if previous != nil && *previous != imageKey && utils.IsUploadKey(*previous) {
		if err := imageService.DeleteImage(*previous); err != nil {
			c.Error(err)
		}
	}

	services.ResolveUserImage(user)
	respondOK(c, http.StatusOK, user)
}

// GetMyStats handles GET /api/v1/users/me/stats - profile counters
func GetMyStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := services.NewUserService(config.GetDB()).GetProfileStats(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, stats)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
