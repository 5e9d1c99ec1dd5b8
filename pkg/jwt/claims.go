package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity inside access and refresh tokens
type Claims struct {
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Picture       string `json:"picture,omitempty"`
	Provider      string `json:"provider"`
	Anonymous     bool   `json:"anonymous"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// UID returns the identity the token was issued for
func (c *Claims) UID() string {
	return c.Subject
}
