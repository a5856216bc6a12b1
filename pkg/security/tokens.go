package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token scopes. Every token carries the scope it was minted for so a
// refresh token can't be replayed where an access token is expected
const (
	ScopeAccess  = "access_token"
	ScopeRefresh = "refresh_token"
	ScopeConfirm = "email_token"
)

var (
	ErrInvalidToken   = errors.New("token is invalid or expired")
	ErrWrongTokenType = errors.New("wrong token type")
)

type tokenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies the JWT tokens used by the API. The secret
// and lifetimes are process-wide configuration loaded once at startup
type Tokens struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	confirmTTL time.Duration
}

func NewTokens(secret string, accessTTL, refreshTTL, confirmTTL time.Duration) (*Tokens, error) {
	if len(secret) < 16 {
		return nil, errors.New("JWT secret must be at least 16 characters")
	}

	return &Tokens{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		confirmTTL: confirmTTL,
	}, nil
}

// CreateAccessToken issues a short-lived token identifying email
func (t *Tokens) CreateAccessToken(email string) (string, error) {
	return t.create(email, ScopeAccess, t.accessTTL)
}

// CreateRefreshToken issues a long-lived token. Its value is also
// persisted on the user record so it can be revoked
func (t *Tokens) CreateRefreshToken(email string) (string, error) {
	return t.create(email, ScopeRefresh, t.refreshTTL)
}

// CreateConfirmationToken issues the token embedded in confirmation
// mail links
func (t *Tokens) CreateConfirmationToken(email string) (string, error) {
	return t.create(email, ScopeConfirm, t.confirmTTL)
}

func (t *Tokens) create(email, scope string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := tokenClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token, %w", err)
	}

	return signed, nil
}

// ResolveSubject verifies signature, expiry and scope and returns the
// email the token was issued for. A valid token presented with the
// wrong scope fails with ErrWrongTokenType
func (t *Tokens) ResolveSubject(tokenStr, scope string) (string, error) {
	var claims tokenClaims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(tk *jwt.Token) (any, error) {
		if tk.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", tk.Method.Alg())
		}

		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Scope != scope {
		return "", ErrWrongTokenType
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
