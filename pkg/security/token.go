package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AccessToken is a signed bearer credential and its expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies HS256 access tokens scoped to one account.
type TokenIssuer struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret, issuer string, ttl time.Duration) (*TokenIssuer, error) {
	key, err := DeriveKey(secret, PurposeAccessToken)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	return &TokenIssuer{
		key:    key,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue creates an access token for accountID.
func (t *TokenIssuer) Issue(accountID uuid.UUID) (AccessToken, error) {
	now := t.now().UTC()
	expiresAt := now.Add(t.ttl)

	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   accountID.String(),
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}

	return AccessToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks signature, issuer and expiry and returns the account ID.
func (t *TokenIssuer) Verify(token string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return accountID, nil
}
