package testutil

import (
	"strconv"
	"strings"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/furnitune/furnitune-api/middleware"
	"github.com/gin-gonic/gin"
)

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(userID uint, issuer string, scopes []string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: strconv.FormatUint(uint64(userID), 10),
		},
		CustomClaims: &middleware.CustomClaims{
			Scope: strings.Join(scopes, " "),
		},
	}
}

// SetMockAuthContext sets up a mock authenticated context for testing
func SetMockAuthContext(c *gin.Context, userID uint, issuer string, scopes []string) {
	c.Set(middleware.UserIDKey, userID)
	c.Set(middleware.ClaimsKey, MockValidatedClaims(userID, issuer, scopes))
}

// MockAuthMiddleware authenticates every request as userID with the given scopes
func MockAuthMiddleware(userID uint, scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetMockAuthContext(c, userID, "furnitune-api", scopes)
		c.Next()
	}
}
