package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	domainauth "github.com/target/dialtone/internal/domain/auth"
	mocks "github.com/target/dialtone/internal/mocks/auth"
	"github.com/target/dialtone/internal/service"
)

// testEnv wires real services over in-memory stores for handler tests.
type testEnv struct {
	credentials *mocks.MemoryCredentialStore
	sessions    *mocks.MemorySessionStore
	tokens      *mocks.MemoryTokenStore
	exchanger   *mocks.FakeExchanger
	router      http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	creds := mocks.NewMemoryCredentialStore()
	sessStore := mocks.NewMemorySessionStore()
	tokStore := mocks.NewMemoryTokenStore()
	exch := mocks.NewFakeExchanger()

	sessions := service.NewSessionManager(service.SessionManagerOptions{
		Sessions: sessStore,
		Logger:   logger,
	})
	login := service.NewLoginService(service.LoginServiceOptions{
		Credentials: creds,
		Sessions:    sessions,
	})
	tokens := service.NewTokenService(service.TokenServiceOptions{
		Exchanger: exch,
		Tokens:    tokStore,
		Logger:    logger,
	})

	return &testEnv{
		credentials: creds,
		sessions:    sessStore,
		tokens:      tokStore,
		exchanger:   exch,
		router: NewRouter(RouterServices{
			Login:    login,
			Sessions: sessions,
			Tokens:   tokens,
			Logger:   logger,
		}),
	}
}

// seedUser registers a user and returns it.
func (e *testEnv) seedUser(phone, password string) domainauth.User {
	u := domainauth.User{ID: "user-" + phone, Phone: phone}
	e.credentials.AddUser(u, password)
	return u
}

// signIn submits the login form and returns the session cookie.
func (e *testEnv) signIn(t *testing.T, phone, password string) *http.Cookie {
	t.Helper()

	form := url.Values{"phone": {phone}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	cookie := sessionCookie(rec.Result().Cookies())
	require.NotNil(t, cookie)
	return cookie
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(cookies []*http.Cookie) *http.Cookie {
	for _, c := range cookies {
		if c.Name == service.SessionCookieName {
			return c
		}
	}
	return nil
}
