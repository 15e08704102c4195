package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/jobly-api/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router     *gin.Engine
	jobs       *fakeJobs
	companies  *fakeCompanies
	users      *fakeUsers
	events     *recordingPublisher
	tokens     *auth.TokenManager
	userToken  string
	adminToken string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		jobs:      newFakeJobs(),
		companies: newFakeCompanies(),
		users:     newFakeUsers(),
		events:    &recordingPublisher{},
		tokens:    auth.NewTokenManager("secret-test", time.Hour),
	}
	var err error
	env.userToken, err = env.tokens.Issue("u1", false)
	require.NoError(t, err)
	env.adminToken, err = env.tokens.Issue("a1", true)
	require.NoError(t, err)

	env.router = NewRouter(Deps{
		Jobs:      env.jobs,
		Companies: env.companies,
		Users:     env.users,
		Tokens:    env.tokens,
		Events:    env.events,
	})
	return env
}

// do sends a request with an optional JSON body and bearer token.
func (env *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// errorOf returns the {"error": {...}} member of a failure response.
func errorOf(t *testing.T, w *httptest.ResponseRecorder) (string, int) {
	t.Helper()
	body := decode(t, w)
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, w.Body.String())
	return e["message"].(string), int(e["status"].(float64))
}
