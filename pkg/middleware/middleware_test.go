package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"media-review/internal/access"
	"media-review/internal/data/entity"
	"media-review/internal/data/repository/repotest"
	"media-review/pkg/middleware"
	"media-review/pkg/security"
	"media-review/pkg/utils"
)

func whoAmI(w http.ResponseWriter, r *http.Request) {
	subject := access.SubjectFromContext(r.Context())
	if !subject.Authenticated {
		w.Write([]byte("anonymous"))
		return
	}
	w.Write([]byte(subject.ID.String() + ":" + string(subject.Role)))
}

func newAuthRouter(t *testing.T) (http.Handler, *security.TokenIssuer, *repotest.Store) {
	t.Helper()
	tokens, err := security.NewTokenIssuer("middleware-secret", "media-review", time.Hour)
	require.NoError(t, err)
	store := repotest.NewStore()

	r := chi.NewRouter()
	r.Use(middleware.Authenticate(tokens, store.Repository().User, zap.NewNop()))
	r.Get("/whoami", whoAmI)
	r.With(middleware.Authorize(access.ResourceCategory, access.ActionCreate, zap.NewNop())).
		Post("/categories", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
	return r, tokens, store
}

func do(h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	h, tokens, store := newAuthRouter(t)
	user := store.SeedUser(entity.User{Username: "ann", Email: "ann@example.com", Role: entity.RoleModerator})
	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	rec := do(h, http.MethodGet, "/whoami", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())

	rec = do(h, http.MethodGet, "/whoami", token.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID.String()+":moderator", rec.Body.String())

	rec = do(h, http.MethodGet, "/whoami", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token "+token.Token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	require.NoError(t, store.Repository().User.Delete(req.Context(), user.ID))
	rec = do(h, http.MethodGet, "/whoami", token.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthorize(t *testing.T) {
	h, tokens, store := newAuthRouter(t)
	plain := store.SeedUser(entity.User{Username: "joe", Email: "joe@example.com"})
	admin := store.SeedUser(entity.User{Username: "root", Email: "root@example.com", IsSuperuser: true})

	plainToken, err := tokens.Issue(plain.ID)
	require.NoError(t, err)
	adminToken, err := tokens.Issue(admin.ID)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPost, "/categories", "").Code)
	assert.Equal(t, http.StatusForbidden, do(h, http.MethodPost, "/categories", plainToken.Token).Code)
	assert.Equal(t, http.StatusCreated, do(h, http.MethodPost, "/categories", adminToken.Token).Code)
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := middleware.Recover(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.Equal(t, 1, logs.FilterMessage("PANIC recovered").Len())
}

func TestLoggerRecordsRoute(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := chi.NewRouter()
	r.Use(middleware.Logger(zap.New(core)))
	r.Get("/titles/{title_id}", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "title not found")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/titles/abc", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/titles/{title_id}", fields["route"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
}

func TestRateLimitByIP(t *testing.T) {
	h := middleware.RateLimitByIP(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	disabled := middleware.RateLimitByIP(0, time.Minute)(http.NotFoundHandler())
	rec := httptest.NewRecorder()
	disabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := middleware.CORS([]string{"https://app.example.com"})(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/titles", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsExposed(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.Metrics())
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	r.Handle("/metrics", middleware.MetricsHandler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/ping",status_code="204"}`)
}
