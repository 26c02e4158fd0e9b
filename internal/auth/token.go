// Package auth provides token issuance/verification, password hashing, and the
// request authorization middleware.
//
// Tokens are HS256 JWTs carrying the user's id, email and display name. The
// same codec signs both access and refresh tokens; they differ only in TTL.
// Refresh tokens are additionally checked against the owner's stored session
// list by the auth service — the codec itself is stateless.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "gamestore"

// Verification failure modes. ErrTokenExpired means the signature checked out
// but the expiry has passed; every other failure (tampering, malformed string,
// wrong secret, wrong algorithm) is ErrTokenInvalid.
var (
	ErrTokenExpired = errors.New("auth: token expired")
	ErrTokenInvalid = errors.New("auth: token invalid")
)

// Identity is the payload carried inside every token and attached to the
// request context by the middleware after verification.
type Identity struct {
	ID       string `json:"uid"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
}

type claims struct {
	Identity
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies identity tokens with a shared HMAC secret.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a TokenCodec. The secret should be at least 32 bytes
// of random data in production; anything under 16 is rejected outright.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenCodec{secret: []byte(secret)}, nil
}

// Issue signs a token for id, valid for ttl from now.
func (c *TokenCodec) Issue(id Identity, ttl time.Duration) (string, error) {
	now := time.Now()

	cl := claims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and returns the identity
// it carries. Fails with ErrTokenExpired or ErrTokenInvalid.
func (c *TokenCodec) Verify(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	cl, ok := token.Claims.(*claims)
	if !ok || !token.Valid || cl.Identity.ID == "" {
		return Identity{}, ErrTokenInvalid
	}

	return cl.Identity, nil
}
