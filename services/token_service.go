package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/models"
	"github.com/golang-jwt/jwt/v5"
)

// ScopeManageOrders allows changing the status of any order
const ScopeManageOrders = "orders:manage"

// SessionClaims are the claims carried by a session token
type SessionClaims struct {
	Name  string `json:"name"`
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues HS256 session tokens after login or registration
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	admins   func(email string) bool
}

// NewTokenService creates a token service from the JWT settings in cfg
func NewTokenService(cfg *config.Config) *TokenService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		ttl:      ttl,
		admins:   cfg.IsAdmin,
	}
}

// ScopesFor returns the scopes granted to a user
func (s *TokenService) ScopesFor(user *models.User) []string {
	if s.admins != nil && s.admins(user.Email) {
		return []string{ScopeManageOrders}
	}
	return nil
}

// IssueToken signs a session token for user and returns it with its expiry
func (s *TokenService) IssueToken(user *models.User) (string, time.Time, error) {
	if user == nil || user.ID == 0 {
		return "", time.Time{}, errors.New("required inputs are missing to generate token")
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := SessionClaims{
		Name:  user.Name,
		Scope: strings.Join(s.ScopesFor(user), " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.New("unable to sign the token")
	}
	return token, expiresAt, nil
}
