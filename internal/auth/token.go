// Package auth keeps the bearer token and derives UI hints from it.
package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/meharshop/storefront/internal/storage"
)

// TokenKey is the durable storage key the bearer token lives under.
const TokenKey = "token"

// Hint is a rendering capability derived from the token claims. It is NOT
// an authorization decision: the payload is decoded without signature
// verification, and the backend re-enforces the role on every request.
type Hint struct {
	IsAdminUI bool
}

// UIHint decodes the token payload without verifying the signature and
// reports whether admin-only UI should be shown. Any decode failure yields
// the zero hint.
func UIHint(token string) Hint {
	if token == "" {
		return Hint{}
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Hint{}
	}
	role, _ := claims["role"].(string)
	return Hint{IsAdminUI: role == "admin"}
}

// Tokens persists the bearer token in durable storage.
type Tokens struct {
	storage storage.Store
}

func NewTokens(st storage.Store) *Tokens {
	return &Tokens{storage: st}
}

// Load returns the stored token, or "" when absent or unreadable.
func (t *Tokens) Load() string {
	raw, ok, err := t.storage.Read(TokenKey)
	if err != nil || !ok {
		return ""
	}
	return string(raw)
}

// Save stores the token.
func (t *Tokens) Save(token string) error {
	return t.storage.Write(TokenKey, []byte(token))
}

// Clear removes the token (logout).
func (t *Tokens) Clear() error {
	return t.storage.Delete(TokenKey)
}
