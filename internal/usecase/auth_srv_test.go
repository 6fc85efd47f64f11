package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-review/internal/data/entity"
	"media-review/internal/dto/request"
	"media-review/pkg/apperr"
)

func TestSignupRejectsReservedHandle(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Auth.Signup(context.Background(), &request.SignupRequest{Username: "me", Email: "me@example.com"})
	ae := requireStatus(t, err, statusBadRequest)
	assert.Contains(t, ae.Details, "username")
	assert.Empty(t, f.mail.sent)
}

func TestSignupValidatesInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, req := range []request.SignupRequest{
		{Username: "", Email: "a@example.com"},
		{Username: "alice", Email: ""},
		{Username: "alice", Email: "not-an-email"},
		{Username: "bad name!", Email: "a@example.com"},
	} {
		_, err := f.svc.Auth.Signup(ctx, &req)
		requireStatus(t, err, statusBadRequest)
	}
}

func TestSignupIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := &request.SignupRequest{Username: "alice", Email: "alice@example.com"}

	first, err := f.svc.Auth.Signup(ctx, req)
	require.NoError(t, err)
	second, err := f.svc.Auth.Signup(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, f.mail.sent, 2)
	assert.Equal(t, "alice@example.com", f.mail.sent[1].to)

	total, err := f.repo.User.CountAll(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	u, err := f.repo.User.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
}

func TestSignupRejectsIdentityCollisions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Auth.Signup(ctx, &request.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = f.svc.Auth.Signup(ctx, &request.SignupRequest{Username: "alice", Email: "other@example.com"})
	ae := requireStatus(t, err, statusBadRequest)
	assert.Contains(t, ae.Details, "username")

	_, err = f.svc.Auth.Signup(ctx, &request.SignupRequest{Username: "alicia", Email: "alice@example.com"})
	ae = requireStatus(t, err, statusBadRequest)
	assert.Contains(t, ae.Details, "email")
}

func TestSignupSurfacesMailFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mail.fail = errMailDown

	_, err := f.svc.Auth.Signup(ctx, &request.SignupRequest{Username: "alice", Email: "alice@example.com"})
	ae := requireStatus(t, err, http.StatusServiceUnavailable)
	assert.Equal(t, apperr.CodeUnavailable, ae.Code)

	// the account stays so a retry succeeds
	f.mail.fail = nil
	_, err = f.svc.Auth.Signup(ctx, &request.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
}

func TestTokenExchange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Auth.Signup(ctx, &request.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	code := f.mail.lastCode(t)

	resp, err := f.svc.Auth.Token(ctx, &request.TokenRequest{Username: "alice", ConfirmationCode: code})
	require.NoError(t, err)

	accountID, err := f.tokens.Verify(resp.Token)
	require.NoError(t, err)
	u, err := f.repo.User.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, accountID)
	assert.NotNil(t, u.LastLogin)

	t.Run("code is single use", func(t *testing.T) {
		_, err := f.svc.Auth.Token(ctx, &request.TokenRequest{Username: "alice", ConfirmationCode: code})
		ae := requireStatus(t, err, statusBadRequest)
		assert.Equal(t, "invalid confirmation code", ae.Message)
	})
}

func TestTokenRejectsCodeAfterStateChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Auth.Signup(ctx, &request.SignupRequest{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, err)
	code := f.mail.lastCode(t)

	u, err := f.repo.User.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	u.Role = entity.RoleModerator
	require.NoError(t, f.repo.User.Update(ctx, u))

	_, err = f.svc.Auth.Token(ctx, &request.TokenRequest{Username: "bob", ConfirmationCode: code})
	ae := requireStatus(t, err, statusBadRequest)
	assert.Equal(t, "invalid confirmation code", ae.Message)
}

func TestTokenFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Auth.Token(ctx, &request.TokenRequest{Username: "ghost", ConfirmationCode: "abc-123"})
	requireStatus(t, err, statusNotFound)

	_, err = f.svc.Auth.Signup(ctx, &request.SignupRequest{Username: "carol", Email: "carol@example.com"})
	require.NoError(t, err)

	for _, code := range []string{"wrong", "1-deadbeef", f.mail.lastCode(t) + "0"} {
		_, err = f.svc.Auth.Token(ctx, &request.TokenRequest{Username: "carol", ConfirmationCode: code})
		ae := requireStatus(t, err, statusBadRequest)
		assert.Equal(t, "invalid confirmation code", ae.Message)
	}

	_, err = f.svc.Auth.Token(ctx, &request.TokenRequest{Username: "carol"})
	requireStatus(t, err, statusBadRequest)
}
