package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kingrain94/support-desk-api/internal/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload of an access token.
type Claims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
	Expiry    time.Duration
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	config TokenConfig
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	switch {
	case cfg.SecretKey == "":
		return nil, errors.New("token signing key is not configured")
	case cfg.Issuer == "":
		return nil, errors.New("token issuer is not configured")
	case cfg.Audience == "":
		return nil, errors.New("token audience is not configured")
	case cfg.Expiry <= 0:
		return nil, errors.New("token expiry must be positive")
	}

	return &TokenIssuer{
		config: cfg,
		secret: []byte(cfg.SecretKey),
		now:    time.Now,
	}, nil
}

func (i *TokenIssuer) Issue(userID, tenantID, email string, role domain.Role) (string, error) {
	now := i.now()
	claims := &Claims{
		Email:    email,
		Role:     string(role),
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    i.config.Issuer,
			Audience:  jwt.ClaimStrings{i.config.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.config.Expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer, audience and expiry with no clock skew allowance.
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.config.Issuer),
		jwt.WithAudience(i.config.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (i *TokenIssuer) Expiry() time.Duration {
	return i.config.Expiry
}
