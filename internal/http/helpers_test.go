package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"

	"ecoloop/internal/config"
	"ecoloop/internal/http/handlers"
	"ecoloop/internal/repos"
	"ecoloop/internal/services"
	"ecoloop/web"
)

func testConfig() config.Config {
	return config.Config{DBDSN: ":memory:", AuthDelay: 0, RedirectDelay: time.Hour}
}

func sqliteStorage(t *testing.T) handlers.StorageFunc {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	r := repos.NewStorageRepo(db)
	return func(sid string) services.Storage { return r.For(sid) }
}

// newTestApp wires the real middleware stack and routes.
func newTestApp(t *testing.T, cfg config.Config, storage handlers.StorageFunc) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		Views:        web.Engine(),
		ErrorHandler: handlers.ErrorHandler,
		Immutable:    true,
	})
	app.Use(requestid.New())
	app.Use(handlers.CSRF(false))
	handlers.NewDeps(cfg, storage).Mount(app)
	return app
}

// client carries cookies between requests and sends the CSRF token header on
// unsafe requests once it has one.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
	noCSRF  bool
}

func newClient(t *testing.T, app *fiber.App) *client {
	return &client{t: t, app: app, cookies: map[string]string{}}
}

func (c *client) do(req *http.Request) *http.Response {
	c.t.Helper()
	for k, v := range c.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	if tok := c.cookies["csrf_"]; tok != "" && req.Method != http.MethodGet && !c.noCSRF {
		req.Header.Set("X-Csrf-Token", tok)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	for _, ck := range resp.Cookies() {
		if ck.Value == "" || ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck.Value
	}
	return resp
}

func (c *client) get(path string) *http.Response {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) form(method, path string, vals url.Values) *http.Response {
	req := httptest.NewRequest(method, path, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) json(method, path string, body any) *http.Response {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// login fetches a CSRF token and signs in with the given role.
func (c *client) login(role string) {
	c.t.Helper()
	c.get("/login")
	resp := c.form(http.MethodPost, "/login", url.Values{
		"email":    {"ops@greencycle.in"},
		"password": {"secret"},
		"role":     {role},
	})
	require.Equal(c.t, fiber.StatusSeeOther, resp.StatusCode)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	SID    string         `json:"sid"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func hasAction(entries []logEntry, action string) bool {
	for _, e := range entries {
		if e.Action == action {
			return true
		}
	}
	return false
}

var errStorageDown = errors.New("storage down")

type brokenStorage struct{}

func (brokenStorage) Get(string) (string, bool, error) { return "", false, errStorageDown }
func (brokenStorage) Set(string, string) error         { return errStorageDown }
func (brokenStorage) Remove(string) error              { return errStorageDown }
