package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-study-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-study-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-study-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-study-engine/internal/platform/logger"
)

type testEnv struct {
	router   *gin.Engine
	catalog  *repository.InMemoryCatalog
	progress *repository.InMemoryProgressRepository
	logins   *repository.InMemoryLoginDayRepository
	users    *repository.InMemoryUserRepository
	tokens   *services.TokenService
	userID   string
	token    string
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		catalog:  repository.NewInMemoryCatalog(),
		progress: repository.NewInMemoryProgressRepository(),
		logins:   repository.NewInMemoryLoginDayRepository(),
		users:    repository.NewInMemoryUserRepository(),
		// 23:30 UTC is already the next day in Rome.
		now: time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC),
	}
	votes := repository.NewInMemoryVoteRepository()
	log := logger.NewNop()
	clock := func() time.Time { return env.now }

	ctx := context.Background()
	require.NoError(t, env.catalog.AddModuleContents(ctx, "m1", "c1", "c2"))
	require.NoError(t, env.catalog.AddModuleContents(ctx, "m2", "c3"))

	env.tokens = services.NewTokenService("handler-test-secret", "handler-test", time.Hour, env.users)
	progressSvc := services.NewProgressService(env.catalog, env.progress, nil)
	loginSvc := services.NewLoginService(env.logins, 30)
	statsSvc := services.NewStatsService(env.progress, env.progress, env.logins, 30)
	voteSvc := services.NewVoteService(votes, env.catalog)

	env.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		ProgressHandler: adapterHTTP.NewProgressHandler(progressSvc, nil, log),
		LoginHandler:    adapterHTTP.NewLoginHandler(loginSvc, log, clock),
		StatsHandler:    adapterHTTP.NewStatsHandler(statsSvc, log, clock),
		VoteHandler:     adapterHTTP.NewVoteHandler(voteSvc, log),
		Tokens:          env.tokens,
		Logger:          log,
		ServiceName:     "study-engine-test",
		StartTime:       env.now,
	})

	user, err := domain.NewUser("user-1")
	require.NoError(t, err)
	require.NoError(t, env.users.Ensure(ctx, user))
	env.userID = user.ID
	env.token, err = env.tokens.GenerateToken(user.ID)
	require.NoError(t, err)

	return env
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body == "" {
		reader = &bytes.Buffer{}
	} else {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestRouter_ProvisionsNewSubjects(t *testing.T) {
	env := newTestEnv(t)

	token, err := env.tokens.GenerateToken("first-visit")
	require.NoError(t, err)
	env.token = token

	w := env.do(http.MethodGet, "/api/v1/streak", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	user, err := env.users.GetByID(context.Background(), "first-visit")
	require.NoError(t, err)
	require.Equal(t, "first-visit", user.ID)
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t)
	env.token = ""

	w := env.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decode(t, w, &body)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "disabled", body["database"])
	require.Equal(t, "disabled", body["redis"])
}
