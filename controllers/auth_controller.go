package controllers

import (
	"net/http"
	"time"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/models"
	"github.com/furnitune/furnitune-api/services"
	"github.com/gin-gonic/gin"
)

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse is returned after a successful login or registration
type SessionResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Register handles POST /api/v1/auth/register - creates an account and starts a session
func Register(c *gin.Context) {
	// Parse request body
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	user, err := services.NewUserService(config.GetDB()).Register(req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSession(c, http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login - checks credentials and starts a session
func Login(c *gin.Context) {
	// Parse request body
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	user, err := services.NewUserService(config.GetDB()).Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSession(c, http.StatusOK, user)
}

func respondSession(c *gin.Context, status int, user *models.User) {
	token, expiresAt, err := services.NewTokenService(config.GetConfig()).IssueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOKEN_ERROR",
				"message": "Failed to create session",
			},
		})
		return
	}

	services.ResolveUserImage(user)
	respondOK(c, status, SessionResponse{User: user, Token: token, ExpiresAt: expiresAt})
}
