package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/config"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/middleware"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/models"
	routes "github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// testEnv levanta el router completo con stores en memoria, igual que lo
// arma main pero sin Postgres ni SMTP
type testEnv struct {
	router     *gin.Engine
	users      *fakeUserStore
	portfolios *fakePortfolioStore
	strategies *fakeStrategyStore
	trades     *fakeTradeStore
	notifier   *fakeNotifier
	cfg        *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:      newFakeUserStore(),
		portfolios: newFakePortfolioStore(),
		strategies: newFakeStrategyStore(),
		trades:     newFakeTradeStore(),
		notifier:   &fakeNotifier{},
		cfg: &config.Config{
			Port:      "8080",
			BaseURL:   "http://localhost:8080",
			JWTSecret: "test-secret",
			AdminKey:  "admin-key",
		},
	}

	handlers := &routes.Handlers{
		Auth:       middleware.NewAuthHandler(env.users, env.notifier, env.cfg),
		Users:      middleware.NewUserHandler(env.users),
		Admin:      middleware.NewAdminHandler(env.users),
		Portfolio:  middleware.NewPortfolioHandler(env.portfolios),
		Strategies: middleware.NewStrategyHandler(env.strategies),
		Trades:     middleware.NewTradeHandler(env.trades),
	}

	env.router = gin.New()
	routes.RegisterRoutes(env.router, handlers, env.cfg)
	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (env *testEnv) signup(t *testing.T, email, password string) {
	t.Helper()

	w := env.do(t, http.MethodPost, "/user/signup", gin.H{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

var verificationLinkRe = regexp.MustCompile(`/user/verify/([A-Za-z0-9._\-]+)`)

// lastVerificationToken extrae el token del último email enviado
func (env *testEnv) lastVerificationToken(t *testing.T) string {
	t.Helper()

	msg, ok := env.notifier.lastMessage()
	require.True(t, ok, "no se envió ningún email")
	match := verificationLinkRe.FindStringSubmatch(msg.Body)
	require.Len(t, match, 2, "el email no contiene el enlace de verificación")
	return match[1]
}

var mfaCodeRe = regexp.MustCompile(`\d{6}`)

func (env *testEnv) lastMfaCode(t *testing.T) string {
	t.Helper()

	msg, ok := env.notifier.lastMessage()
	require.True(t, ok, "no se envió ningún email")
	code := mfaCodeRe.FindString(msg.Body)
	require.NotEmpty(t, code, "el email no contiene el código MFA")
	return code
}

// registerVerified deja un usuario registrado y verificado, y devuelve
// su token de sesión
func (env *testEnv) registerVerified(t *testing.T, email, password string) string {
	t.Helper()

	env.signup(t, email, password)
	verifyToken := env.lastVerificationToken(t)
	w := env.do(t, http.MethodGet, "/user/verify/"+verifyToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	return env.login(t, email, password)
}

func (env *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	w := env.do(t, http.MethodPost, "/user/login", gin.H{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func newAdminRequest(t *testing.T, method, path, adminKey string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if adminKey != "" {
		req.Header.Set("Admin-Key", adminKey)
	}
	return req
}

func serveAdmin(env *testEnv, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) enableMfa(t *testing.T, email string) {
	t.Helper()
	env.users.mutate(email, func(u *models.User) { u.IsMfaEnabled = true })
}
