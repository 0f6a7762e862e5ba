package http

import (
	"net/http"
	"time"

	"github.com/cfarhan/shopping/configs"
	"github.com/cfarhan/shopping/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type TokenHandler struct {
	cfg configs.Config
}

func NewTokenHandler(cfg configs.Config) *TokenHandler {
	return &TokenHandler{cfg: cfg}
}

type signInReq struct {
	Email  string `json:"email" binding:"required"`
	Secret string `json:"secret" binding:"required"`
}

// SignIn exchanges shopper credentials for a bearer JWT whose subject is the
// shopper id. Everything under /v1 requires it.
func (h *TokenHandler) SignIn(c *gin.Context) {
	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	s, ok := security.Shoppers[req.Email]
	if !ok || !s.Enabled || req.Secret != s.Secret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": h.cfg.Security.Issuer,
		"aud": h.cfg.Security.Audience,
		"sub": s.ID,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": now.Add(h.cfg.Security.TTL * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Security.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"token_type":   "Bearer",
		"expires_in":   h.cfg.Security.TTL,
	})
}
