// Package token issues and verifies the signed bearer tokens that carry a
// user's identity between requests. Tokens are stateless: every
// authorization fact must round-trip through the signed payload.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/headcount/account-service/internal/core/domain"
)

// ErrInvalidToken is returned for every verification failure: bad signature,
// expired, malformed payload, or missing required claims. Callers get no
// finer detail.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the identity facts embedded in a token.
type Claims struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

// Codec signs and verifies tokens with a symmetric secret.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewCodec builds a Codec for the named HMAC algorithm (HS256, HS384,
// HS512). Expiration is computed at issue time as now+ttl and enforced at
// verify time.
func NewCodec(secret, algorithm string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret must not be empty")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token: algorithm %q is not an HMAC method", algorithm)
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Codec{secret: []byte(secret), method: method, ttl: ttl}, nil
}

// Issue signs a token embedding the user's id, username, and role.
func (c *Codec) Issue(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(c.ttl).Unix(),
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Verify checks signature and expiration and extracts the claims. The signing
// algorithm on the wire must match the configured one; required claims
// (user_id, username, role) must all be present.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	raw := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	id, _ := raw["user_id"].(string)
	username, _ := raw["username"].(string)
	role, _ := raw["role"].(string)
	if id == "" || username == "" || role == "" {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, Username: username, Role: role}, nil
}
