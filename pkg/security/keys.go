// Package security issues bearer access tokens and stateless confirmation codes.
package security

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	PurposeAccessToken      = "media-review/access-token"
	PurposeConfirmationCode = "media-review/confirmation-code"
)

// DeriveKey expands the configured secret into a 32-byte key bound to purpose,
// so access tokens and confirmation codes never share signing material.
func DeriveKey(secret, purpose string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("derive %s key: empty secret", purpose)
	}

	key := make([]byte, 32)
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}
	return key, nil
}
