package httptransport_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ErlanBelekov/tinyapp/internal/email"
	"github.com/ErlanBelekov/tinyapp/internal/infrastructure/memory"
	"github.com/ErlanBelekov/tinyapp/internal/password"
	"github.com/ErlanBelekov/tinyapp/internal/session"
	httptransport "github.com/ErlanBelekov/tinyapp/internal/transport/http"
	"github.com/ErlanBelekov/tinyapp/internal/transport/http/handler"
	"github.com/ErlanBelekov/tinyapp/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// browser replays the session cookie between requests.
type browser struct {
	t       *testing.T
	router  http.Handler
	session *http.Cookie
}

func newBrowser(t *testing.T) *browser {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := memory.NewUserRepository()
	links := memory.NewLinkRepository()
	sessions := session.NewManager([]byte("test-secret-test-secret-test-secret"), session.DefaultTTL)
	cookie := session.CookieOptions{}

	authUsecase := usecase.NewAuthUsecase(users, password.NewHasher(bcrypt.MinCost),
		email.NewSender("local", "", "", logger), logger, "http://localhost:8080")
	linkUsecase := usecase.NewLinkUsecase(links)

	r := httptransport.NewRouter(logger,
		handler.NewAuthHandler(authUsecase, sessions, cookie, logger),
		handler.NewLinkHandler(linkUsecase, "http://localhost:8080", logger),
		httptransport.SessionConfig{Manager: sessions, Users: authUsecase, Cookie: cookie},
	)
	return &browser{t: t, router: r}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if b.session != nil {
		req.AddCookie(b.session)
	}

	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name != session.CookieName {
			continue
		}
		if c.MaxAge < 0 || c.Value == "" {
			b.session = nil
		} else {
			b.session = c
		}
	}
	return w
}

func (b *browser) register(emailAddr, pw string) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, "/register", url.Values{"email": {emailAddr}, "password": {pw}})
}

func (b *browser) createLink(longURL string) string {
	b.t.Helper()
	w := b.do(http.MethodPost, "/urls", url.Values{"longURL": {longURL}})
	require.Equal(b.t, http.StatusFound, w.Code)
	loc := w.Header().Get("Location")
	require.True(b.t, strings.HasPrefix(loc, "/urls/"), "location %q", loc)
	return strings.TrimPrefix(loc, "/urls/")
}

func TestRegister_ThenNewFormRenders(t *testing.T) {
	b := newBrowser(t)

	w := b.register("a@b.com", "pw")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/urls", w.Header().Get("Location"))
	require.NotNil(t, b.session)

	w = b.do(http.MethodGet, "/urls/new", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="longURL"`)
	assert.Contains(t, w.Body.String(), "a@b.com")
}

func TestRegister_LongPassword_ThenLogin(t *testing.T) {
	b := newBrowser(t)
	long := strings.Repeat("p", 80)

	w := b.register("long@b.com", long)
	require.Equal(t, http.StatusFound, w.Code, "body: %s", w.Body.String())
	b.do(http.MethodPost, "/logout", nil)

	w = b.do(http.MethodPost, "/login", url.Values{"email": {"long@b.com"}, "password": {long}})
	assert.Equal(t, http.StatusFound, w.Code)
	require.NotNil(t, b.session)
}

func TestRegister_DuplicateEmail_Returns400(t *testing.T) {
	b := newBrowser(t)
	require.Equal(t, http.StatusFound, b.register("a@b.com", "pw").Code)

	w := newBrowserSharing(b).register("a@b.com", "other")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestRegister_EmptyFields_Returns400(t *testing.T) {
	b := newBrowser(t)

	w := b.register("", "pw")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Enter a valid email and/or password.", w.Body.String())
	assert.Nil(t, b.session)
}

func TestNewForm_Anonymous_Returns403(t *testing.T) {
	w := newBrowser(t).do(http.MethodGet, "/urls/new", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateLink_Anonymous_Returns403(t *testing.T) {
	w := newBrowser(t).do(http.MethodPost, "/urls", url.Values{"longURL": {"http://x.com"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateLink_ThenRedirect(t *testing.T) {
	b := newBrowser(t)
	b.register("a@b.com", "pw")

	code := b.createLink("http://x.com")
	assert.Len(t, code, 6)

	w := b.do(http.MethodGet, "/u/"+code, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://x.com", w.Header().Get("Location"))

	w = b.do(http.MethodGet, "/urls", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), code)
}

func TestCreateLink_EmptyURL_Returns400(t *testing.T) {
	b := newBrowser(t)
	b.register("a@b.com", "pw")

	w := b.do(http.MethodPost, "/urls", url.Values{"longURL": {"  "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRedirect_UnknownCode_Returns400(t *testing.T) {
	w := newBrowser(t).do(http.MethodGet, "/u/doesnotexist", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Page does not exist!", w.Body.String())
}

func TestShow_UnknownCode_Returns404(t *testing.T) {
	w := newBrowser(t).do(http.MethodGet, "/urls/nope42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShow_EditFormOnlyForOwner(t *testing.T) {
	owner := newBrowser(t)
	owner.register("a@b.com", "pw")
	code := owner.createLink("http://x.com")

	w := owner.do(http.MethodGet, "/urls/"+code, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/urls/`+code+`"`)

	other := newBrowserSharing(owner)
	w = other.do(http.MethodGet, "/urls/"+code, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `action="/urls/`+code+`"`)
}

func TestDelete_NotOwner_Returns403(t *testing.T) {
	owner := newBrowser(t)
	owner.register("a@b.com", "pw")
	code := owner.createLink("http://x.com")

	other := newBrowserSharing(owner)
	other.register("c@d.com", "pw")
	w := other.do(http.MethodPost, "/urls/"+code+"/delete", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = other.do(http.MethodGet, "/u/"+code, nil)
	assert.Equal(t, http.StatusFound, w.Code, "link must survive")
}

func TestDelete_Owner_RemovesLink(t *testing.T) {
	b := newBrowser(t)
	b.register("a@b.com", "pw")
	code := b.createLink("http://x.com")

	w := b.do(http.MethodPost, "/urls/"+code+"/delete", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/urls", w.Header().Get("Location"))

	w = b.do(http.MethodGet, "/u/"+code, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate_OwnerAndNonOwner(t *testing.T) {
	owner := newBrowser(t)
	owner.register("a@b.com", "pw")
	code := owner.createLink("http://x.com")

	other := newBrowserSharing(owner)
	other.register("c@d.com", "pw")
	w := other.do(http.MethodPost, "/urls/"+code, url.Values{"longURL": {"http://evil.com"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = owner.do(http.MethodPost, "/urls/"+code, url.Values{"longURL": {"http://y.com"}})
	assert.Equal(t, http.StatusFound, w.Code)

	w = owner.do(http.MethodGet, "/u/"+code, nil)
	assert.Equal(t, "http://y.com", w.Header().Get("Location"))
}

func TestLoginLogout(t *testing.T) {
	b := newBrowser(t)
	b.register("a@b.com", "pw")
	b.do(http.MethodPost, "/logout", nil)
	require.Nil(t, b.session)

	w := b.do(http.MethodPost, "/login", url.Values{"email": {"a@b.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	wrongPassword := w.Body.String()

	w = b.do(http.MethodPost, "/login", url.Values{"email": {"nobody@b.com"}, "password": {"pw"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, wrongPassword, w.Body.String(), "unknown user and bad password look the same")

	w = b.do(http.MethodPost, "/login", url.Values{"email": {"a@b.com"}, "password": {"pw"}})
	assert.Equal(t, http.StatusFound, w.Code)
	require.NotNil(t, b.session)

	w = b.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/urls", w.Header().Get("Location"))
}

func TestRoot_RedirectsBySession(t *testing.T) {
	b := newBrowser(t)
	w := b.do(http.MethodGet, "/", nil)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	b.register("a@b.com", "pw")
	w = b.do(http.MethodGet, "/", nil)
	assert.Equal(t, "/urls", w.Header().Get("Location"))
}

func TestListLinks_OnlyOwnLinks(t *testing.T) {
	owner := newBrowser(t)
	owner.register("a@b.com", "pw")
	code := owner.createLink("http://x.com")

	anon := newBrowserSharing(owner)
	w := anon.do(http.MethodGet, "/urls", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), code)

	anon.register("c@d.com", "pw")
	w = anon.do(http.MethodGet, "/urls", nil)
	assert.NotContains(t, w.Body.String(), code)
}

// newBrowserSharing returns a fresh cookie-less browser against the same app.
func newBrowserSharing(b *browser) *browser {
	return &browser{t: b.t, router: b.router}
}
