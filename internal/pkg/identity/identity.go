// Package identity verifies ID tokens issued by the identity provider and
// decodes them into an Identity.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid identity token")
	ErrMissingToken = errors.New("missing identity token")
)

// Identity is the decoded identity-provider subject.
type Identity struct {
	UserId      string
	IsAnonymous bool
	Email       string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Claims follows the Firebase ID token layout closely enough that tokens from
// either a Firebase emulator or our own issuer decode the same way.
type Claims struct {
	UID         string         `json:"uid,omitempty"`
	Email       string         `json:"email,omitempty"`
	IsAnonymous bool           `json:"is_anonymous,omitempty"`
	Firebase    *FirebaseClaim `json:"firebase,omitempty"`
	jwt.RegisteredClaims
}

type FirebaseClaim struct {
	SignInProvider string `json:"sign_in_provider"`
}

func (c *Claims) anonymous() bool {
	return c.IsAnonymous || (c.Firebase != nil && c.Firebase.SignInProvider == "anonymous")
}

func (c *Claims) subject() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject
}

// HMACVerifier verifies HS256 tokens signed with a shared secret. It can also
// issue tokens, which local development and tests rely on.
type HMACVerifier struct {
	secret   []byte
	audience string
	now      func() time.Time
}

func NewHMACVerifier(secret, audience string) *HMACVerifier {
	return &HMACVerifier{
		secret:   []byte(secret),
		audience: audience,
		now:      time.Now,
	}
}

func (v *HMACVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: verifier has no secret configured", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	uid := claims.subject()
	if uid == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrInvalidToken)
	}

	return &Identity{
		UserId:      uid,
		IsAnonymous: claims.anonymous(),
		Email:       claims.Email,
	}, nil
}

// Issue signs a token for id that expires after ttl.
func (v *HMACVerifier) Issue(id Identity, ttl time.Duration) (string, error) {
	now := v.now()
	claims := Claims{
		UID:         id.UserId,
		Email:       id.Email,
		IsAnonymous: id.IsAnonymous,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserId,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
