package security

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-unit-tests"

func TestDeriveKey(t *testing.T) {
	access, err := DeriveKey(testSecret, PurposeAccessToken)
	require.NoError(t, err)
	confirm, err := DeriveKey(testSecret, PurposeConfirmationCode)
	require.NoError(t, err)

	assert.Len(t, access, 32)
	assert.NotEqual(t, access, confirm)

	again, err := DeriveKey(testSecret, PurposeAccessToken)
	require.NoError(t, err)
	assert.Equal(t, access, again)

	_, err = DeriveKey("", PurposeAccessToken)
	assert.Error(t, err)
}

func TestTokenIssuer(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, "media-review", time.Hour)
	require.NoError(t, err)

	accountID := uuid.New()

	t.Run("round trip", func(t *testing.T) {
		token, err := issuer.Issue(accountID)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

		got, err := issuer.Verify(token.Token)
		require.NoError(t, err)
		assert.Equal(t, accountID, got)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := issuer.Issue(accountID)
		require.NoError(t, err)

		late := *issuer
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err = late.Verify(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := NewTokenIssuer(testSecret, "someone-else", time.Hour)
		require.NoError(t, err)
		token, err := other.Issue(accountID)
		require.NoError(t, err)

		_, err = issuer.Verify(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenIssuer("another-secret", "media-review", time.Hour)
		require.NoError(t, err)
		token, err := other.Issue(accountID)
		require.NoError(t, err)

		_, err = issuer.Verify(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewTokenIssuerRejectsBadTTL(t *testing.T) {
	_, err := NewTokenIssuer(testSecret, "media-review", 0)
	assert.Error(t, err)
}

func TestCodeGenerator(t *testing.T) {
	gen, err := NewCodeGenerator(testSecret, 72*time.Hour)
	require.NoError(t, err)

	const state = "account-1|alice|alice@example.com|user|false|0|1700000000000000"

	t.Run("valid for the same state", func(t *testing.T) {
		code := gen.Generate(state)
		assert.True(t, gen.Verify(state, code))
	})

	t.Run("state change invalidates", func(t *testing.T) {
		code := gen.Generate(state)
		assert.False(t, gen.Verify(state+"-changed", code))
	})

	t.Run("expired", func(t *testing.T) {
		code := gen.Generate(state)

		later := *gen
		later.now = func() time.Time { return time.Now().Add(73 * time.Hour) }
		assert.False(t, later.Verify(state, code))
	})

	t.Run("issued in the future", func(t *testing.T) {
		early := *gen
		early.now = func() time.Time { return time.Now().Add(time.Hour) }
		code := early.Generate(state)
		assert.False(t, gen.Verify(state, code))
	})

	t.Run("tampered", func(t *testing.T) {
		code := gen.Generate(state)
		stamp, _, _ := strings.Cut(code, "-")

		for _, bad := range []string{"", "-", stamp, stamp + "-", "zz-" + strings.Repeat("0", 32), stamp + "-" + strings.Repeat("0", 32)} {
			assert.False(t, gen.Verify(state, bad), bad)
		}
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewCodeGenerator("another-secret", 72*time.Hour)
		require.NoError(t, err)
		assert.False(t, gen.Verify(state, other.Generate(state)))
	})
}
