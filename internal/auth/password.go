package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kingrain94/support-desk-api/internal/config"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

// PasswordHasher turns a plaintext password into its stored form and checks
// candidates against it. Verify never fails loudly: bad input is a mismatch.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, stored string) bool
}

// NewPasswordHasher picks the hasher named by configuration. It is called once
// at startup and the result is injected where needed.
func NewPasswordHasher(kind string, cost int, log *logger.Logger) (PasswordHasher, error) {
	switch kind {
	case config.HasherBcrypt:
		return NewBcryptHasher(cost, log), nil
	case config.HasherPlaintext:
		log.Warn("plaintext password hasher is enabled; do not use outside of testing")
		return PlaintextHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", kind)
	}
}

// PlaintextHasher stores passwords as-is. Testing only.
type PlaintextHasher struct{}

func (PlaintextHasher) Hash(plaintext string) (string, error) {
	return plaintext, nil
}

func (PlaintextHasher) Verify(plaintext, stored string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(plaintext), []byte(stored)) == 1
}

type BcryptHasher struct {
	cost int
	log  *logger.Logger
}

func NewBcryptHasher(cost int, log *logger.Logger) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost, log: log}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Verify(plaintext, stored string) bool {
	if stored == "" {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext))
	if err == nil {
		return true
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		h.log.Warn("stored password hash could not be verified", zap.Error(err))
	}
	return false
}
