package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"media-review/internal/access"
	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/data/repository/repotest"
	"media-review/internal/usecase"
	"media-review/pkg/apperr"
	"media-review/pkg/security"
)

const testSecret = "usecase-test-secret"

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

var codePattern = regexp.MustCompile(`code is: (\S+)`)

func (m *recordingMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	match := codePattern.FindStringSubmatch(m.sent[len(m.sent)-1].body)
	require.Len(t, match, 2)
	return match[1]
}

type fixture struct {
	svc    *usecase.Service
	store  *repotest.Store
	repo   *repository.Repository
	mail   *recordingMailer
	tokens *security.TokenIssuer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := security.NewTokenIssuer(testSecret, "media-review", time.Hour)
	require.NoError(t, err)
	codes, err := security.NewCodeGenerator(testSecret, 72*time.Hour)
	require.NoError(t, err)

	store := repotest.NewStore()
	repo := store.Repository()
	mail := &recordingMailer{}

	return &fixture{
		svc:    usecase.NewService(repo, tokens, codes, mail, zap.NewNop()),
		store:  store,
		repo:   repo,
		mail:   mail,
		tokens: tokens,
	}
}

func (f *fixture) user(name string, role entity.Role) (*entity.User, access.Subject) {
	u := f.store.SeedUser(entity.User{Username: name, Email: name + "@example.com", Role: role})
	return u, access.SubjectFromUser(u)
}

func (f *fixture) title(t *testing.T, name string) uuid.UUID {
	t.Helper()
	title := &entity.Title{
		Base: entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name: name,
		Year: 2000,
	}
	require.NoError(t, f.repo.Title.Create(context.Background(), title, nil))
	return title.ID
}

func requireStatus(t *testing.T, err error, status int) *apperr.AppError {
	t.Helper()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae, "expected *apperr.AppError, got %T: %v", err, err)
	require.Equal(t, status, ae.HTTPStatus, ae.Message)
	return ae
}

var errMailDown = errors.New("smtp: connection refused")

const (
	statusBadRequest   = http.StatusBadRequest
	statusUnauthorized = http.StatusUnauthorized
	statusForbidden    = http.StatusForbidden
	statusNotFound     = http.StatusNotFound
)
