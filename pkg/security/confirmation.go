package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// clockSkew tolerates codes stamped slightly ahead of the verifying node.
const clockSkew = time.Minute

// CodeGenerator produces time-bound confirmation codes signed over an account
// state fingerprint. Any change to the fingerprint invalidates earlier codes,
// which is also what makes a code single-use once the exchange updates state.
type CodeGenerator struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewCodeGenerator(secret string, ttl time.Duration) (*CodeGenerator, error) {
	key, err := DeriveKey(secret, PurposeConfirmationCode)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("confirmation code ttl must be positive, got %s", ttl)
	}

	return &CodeGenerator{key: key, ttl: ttl, now: time.Now}, nil
}

// Generate returns "<base36 unix seconds>-<hex mac>".
func (g *CodeGenerator) Generate(state string) string {
	issued := g.now().Unix()
	stamp := strconv.FormatInt(issued, 36)
	return stamp + "-" + g.sign(state, stamp)
}

// Verify reports whether code was issued for state and has not expired.
// Callers must not distinguish the failure reasons.
func (g *CodeGenerator) Verify(state, code string) bool {
	stamp, mac, ok := strings.Cut(code, "-")
	if !ok || stamp == "" || mac == "" {
		return false
	}

	issued, err := strconv.ParseInt(stamp, 36, 64)
	if err != nil {
		return false
	}

	issuedAt := time.Unix(issued, 0)
	now := g.now()
	if issuedAt.After(now.Add(clockSkew)) || now.Sub(issuedAt) > g.ttl {
		return false
	}

	return hmac.Equal([]byte(mac), []byte(g.sign(state, stamp)))
}

func (g *CodeGenerator) sign(state, stamp string) string {
	h := hmac.New(sha256.New, g.key)
	h.Write([]byte(state))
	h.Write([]byte{'|'})
	h.Write([]byte(stamp))
	return hex.EncodeToString(h.Sum(nil))[:32]
}
