package middleware

import (
	"crypto/subtle"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"firsgate/internal/config"
)

var bearerPattern = regexp.MustCompile(`(?i)^Bearer\s+(.*)$`)

// abort writes the standard error envelope and stops the chain.
func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"error":      gin.H{"code": code, "message": msg},
		"request_id": GetRequestID(c),
		"timestamp":  time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// Credential returns the API key from X-API-Key or an Authorization bearer
// token, in that order.
func Credential(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	if m := bearerPattern.FindStringSubmatch(c.GetHeader("Authorization")); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// IsPublic reports whether path falls under one of the public endpoints.
func IsPublic(path string, publicEndpoints []string) bool {
	for _, p := range publicEndpoints {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// KeyVerifier checks presented API credentials against the configured key,
// its bcrypt hash, or an HS256 token signed with the API secret.
type KeyVerifier struct {
	key    string
	hash   []byte
	secret []byte
}

// NewKeyVerifier creates a KeyVerifier from the API config.
func NewKeyVerifier(cfg config.APIConfig) *KeyVerifier {
	v := &KeyVerifier{key: cfg.Key}
	if cfg.KeyHash != "" {
		v.hash = []byte(cfg.KeyHash)
	}
	if cfg.Secret != "" {
		v.secret = []byte(cfg.Secret)
	}
	return v
}

// Verify reports whether credential is accepted.
func (v *KeyVerifier) Verify(credential string) bool {
	if credential == "" {
		return false
	}
	if v.key != "" && subtle.ConstantTimeCompare([]byte(credential), []byte(v.key)) == 1 {
		return true
	}
	if v.hash != nil && bcrypt.CompareHashAndPassword(v.hash, []byte(credential)) == nil {
		return true
	}
	if v.secret != nil && v.verifyToken(credential) {
		return true
	}
	return false
}

func (v *KeyVerifier) verifyToken(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err == nil && token.Valid
}

// APIKeyAuth rejects requests without an accepted API credential. Paths
// under the configured public endpoints pass through.
func APIKeyAuth(cfg config.APIConfig) gin.HandlerFunc {
	verifier := NewKeyVerifier(cfg)
	return func(c *gin.Context) {
		if IsPublic(c.Request.URL.Path, cfg.PublicEndpoints) {
			c.Next()
			return
		}
		credential := Credential(c)
		if !verifier.Verify(credential) {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing API key")
			return
		}
		c.Set(ContextKeyClientID, credential)
		c.Next()
	}
}
