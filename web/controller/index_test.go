package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"quizbank/database"
	"quizbank/logger"
	"quizbank/web/entity"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

// newTestServer wires the controllers the way web.Server does, on a fresh
// store seeded with the default admin account.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("QB_LOG_FOLDER", t.TempDir())
	logger.InitLogger(logging.ERROR)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := database.InitDB(dbPath); err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.CloseDB()
	})

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", "/")
	})
	engine.Use(sessions.Sessions("quizbank", cookie.NewStore([]byte("test-secret"))))

	g := engine.Group("/")
	NewIndexController(g)
	NewPanelController(g)

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)
	return server
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func postForm(t *testing.T, client *http.Client, rawURL string, values url.Values) entity.Msg {
	t.Helper()
	resp, err := client.PostForm(rawURL, values)
	if err != nil {
		t.Fatalf("post %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	var msg entity.Msg
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		t.Fatalf("decode %s: %v", rawURL, err)
	}
	return msg
}

func get(t *testing.T, client *http.Client, rawURL string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(rawURL)
	if err != nil {
		t.Fatalf("get %s: %v", rawURL, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", rawURL, err)
	}
	return resp, string(body)
}

func TestGateRejectsWrongCode(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	msg := postForm(t, client, server.URL+"/gate", url.Values{"code": {"WRONG"}})
	assert.False(t, msg.Success)

	// The caller stays ungated: panel routes bounce back to the gate.
	resp, body := get(t, client, server.URL+"/panel/questions/list")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/gate", resp.Request.URL.Path)
	assert.Contains(t, body, "invite code required")
}

func TestGateChainToPanel(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	// Pass the invite gate with the default code.
	msg := postForm(t, client, server.URL+"/gate", url.Values{"code": {"RYUKYU2025"}})
	assert.True(t, msg.Success)

	// The durable marker was issued alongside the session flag.
	serverURL, _ := url.Parse(server.URL)
	markerFound := false
	for _, ck := range client.Jar.Cookies(serverURL) {
		if ck.Name == "invited_ok" && ck.Value != "" {
			markerFound = true
		}
	}
	assert.True(t, markerFound)

	// Invited but not logged in: panel bounces to the login entry.
	resp, _ := get(t, client, server.URL+"/panel/")
	assert.Equal(t, "/", resp.Request.URL.Path)

	// Login gate with a wrong secret fails.
	msg = postForm(t, client, server.URL+"/login", url.Values{
		"username": {"admin"}, "password": {"wrong"},
	})
	assert.False(t, msg.Success)

	// The seeded admin account passes.
	msg = postForm(t, client, server.URL+"/login", url.Values{
		"username": {"admin"}, "password": {"admin"},
	})
	assert.True(t, msg.Success)

	resp, body := get(t, client, server.URL+"/panel/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/panel/", resp.Request.URL.Path)
	assert.Contains(t, body, `"isAdmin":true`)

	// Admin tier is reachable for the admin account.
	resp, body = get(t, client, server.URL+"/panel/admin/users")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"username":"admin"`)
}

func TestAdminTierForbiddenForRegularUser(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	msg := postForm(t, client, server.URL+"/gate", url.Values{"code": {"RYUKYU2025"}})
	assert.True(t, msg.Success)

	msg = postForm(t, client, server.URL+"/register", url.Values{
		"username": {"carol"}, "password": {"pw"},
	})
	assert.True(t, msg.Success)

	msg = postForm(t, client, server.URL+"/login", url.Values{
		"username": {"carol"}, "password": {"pw"},
	})
	assert.True(t, msg.Success)

	// Browser callers are bounced back to the ordinary panel view.
	resp, _ := get(t, client, server.URL+"/panel/admin/users")
	assert.Equal(t, "/panel/", resp.Request.URL.Path)

	// XHR callers get a plain Forbidden.
	req, err := http.NewRequest(http.MethodGet, server.URL+"/panel/admin/users", nil)
	assert.NoError(t, err)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	xhrResp, err := client.Do(req)
	assert.NoError(t, err)
	defer xhrResp.Body.Close()
	assert.Equal(t, http.StatusForbidden, xhrResp.StatusCode)
}

func TestRegisterValidationOverHTTP(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	msg := postForm(t, client, server.URL+"/gate", url.Values{"code": {"RYUKYU2025"}})
	assert.True(t, msg.Success)

	msg = postForm(t, client, server.URL+"/register", url.Values{
		"username": {"  "}, "password": {"pw"},
	})
	assert.False(t, msg.Success)

	msg = postForm(t, client, server.URL+"/register", url.Values{
		"username": {"dave"}, "password": {"pw"},
	})
	assert.True(t, msg.Success)

	msg = postForm(t, client, server.URL+"/register", url.Values{
		"username": {"dave"}, "password": {"other"},
	})
	assert.False(t, msg.Success)
	assert.True(t, strings.Contains(msg.Msg, "taken"))
}
