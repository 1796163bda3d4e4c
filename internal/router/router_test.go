package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/risegum/internal/content"
	"github.com/risegum/internal/db"
	"github.com/risegum/internal/gateway"
	"github.com/risegum/internal/handler"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouterTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:router-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := gdb.AutoMigrate(db.Models()...); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() {
		db.DB = prev
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
}

// startServer 启动一个真实监听的服务，落地页通过网关回调自身的 /api。
func startServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	setupRouterTestDB(t)

	var engine http.Handler
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		engine.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	opts.Handler.Gateway = gateway.New(srv.URL, gateway.WithAdminToken(opts.Handler.AdminToken), gateway.WithTimeout(5*time.Second))
	engine = SetupRouter(opts)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return string(b)
}

func submitForm(t *testing.T, client *http.Client, base string, form url.Values) string {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, base+"/waitlist", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return readBody(t, resp)
}

func TestLandingWaitlistRoundTrip(t *testing.T) {
	srv := startServer(t, Options{SessionSecret: "test-secret", Handler: handler.Options{AdminToken: "admin-token"}})
	client := newClient(t)

	resp, err := client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get landing failed: %v", err)
	}
	page := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if !strings.Contains(page, content.Default().ContactInfo.Email) {
		t.Fatalf("landing page should render bundled content")
	}
	base, _ := url.Parse(srv.URL)
	if len(client.Jar.Cookies(base)) == 0 {
		t.Fatalf("expected visitor cookie to be set")
	}

	form := url.Values{"name": {"Asha Rao"}, "email": {"asha@example.com"}, "city": {"Pune"}}
	fragment := submitForm(t, client, srv.URL, form)
	if !strings.Contains(fragment, "status-success") || !strings.Contains(fragment, "Welcome to the Rise Gum waitlist!") {
		t.Fatalf("expected success status, got %q", fragment)
	}

	fragment = submitForm(t, client, srv.URL, form)
	if !strings.Contains(fragment, "already on the waitlist") {
		t.Fatalf("expected duplicate message, got %q", fragment)
	}

	fragment = submitForm(t, client, srv.URL, url.Values{})
	if !strings.Contains(fragment, "Please fill in all fields") {
		t.Fatalf("expected required-fields message, got %q", fragment)
	}

	gw := gateway.New(srv.URL, gateway.WithAdminToken("admin-token"))
	list, err := gw.ListEntries(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("list entries failed: %v", err)
	}
	if !list.Success || list.Count != 1 || len(list.Entries) != 1 {
		t.Fatalf("expected exactly one stored entry, got %+v", list)
	}
	if list.Entries[0].Email != "asha@example.com" {
		t.Fatalf("unexpected entry %+v", list.Entries[0])
	}
}

func TestAdminWaitlistRequiresCredentials(t *testing.T) {
	srv := startServer(t, Options{Handler: handler.Options{AdminToken: "admin-token"}})
	client := newClient(t)

	resp, err := client.Get(srv.URL + "/api/waitlist")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}

	resp, err = client.Get(srv.URL + "/admin")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	readBody(t, resp)
	if loc := resp.Header.Get("Location"); loc != "/admin/waitlist" {
		t.Fatalf("expected redirect to /admin/waitlist, got %q", loc)
	}

	resp, err = client.Get(srv.URL + "/admin/waitlist")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	readBody(t, resp)
	if loc := resp.Header.Get("Location"); loc != "/admin/login" {
		t.Fatalf("expected redirect to login, got %q", loc)
	}
}

func TestStoredContentReachesLandingPage(t *testing.T) {
	srv := startServer(t, Options{Handler: handler.Options{AdminToken: "admin-token"}})
	client := newClient(t)

	model := content.Default()
	model.ContactInfo.Email = "campus@risegum.example"
	payload, err := json.Marshal(model)
	if err != nil {
		t.Fatalf("marshal content: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/admin/api/content", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("put content failed: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp, err = client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get landing failed: %v", err)
	}
	if page := readBody(t, resp); !strings.Contains(page, "campus@risegum.example") {
		t.Fatalf("landing page should render stored content")
	}
}

func TestOperationalEndpoints(t *testing.T) {
	srv := startServer(t, Options{})
	client := newClient(t)

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{path: "/ping", contentType: "application/json", contains: "pong"},
		{path: "/api/", contentType: "application/json", contains: "Hello World"},
		{path: "/metrics", contentType: "text/plain", contains: "risegum_"},
		{path: "/og.png", contentType: "image/png", contains: "PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := client.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			body := readBody(t, resp)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
			}
			if !strings.HasPrefix(resp.Header.Get("Content-Type"), tt.contentType) {
				t.Fatalf("unexpected content type %q", resp.Header.Get("Content-Type"))
			}
			if !strings.Contains(body, tt.contains) {
				t.Fatalf("expected body to contain %q", tt.contains)
			}
		})
	}
}

func TestMetricsRestrictedByCIDR(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupRouterTestDB(t)

	tests := []struct {
		name    string
		proxies []string
		remote  string
		headers map[string]string
		allowed bool
	}{
		{name: "outside range", remote: "192.0.2.10:5555"},
		{name: "forwarded header ignored", remote: "192.0.2.10:5555", headers: map[string]string{"X-Forwarded-For": "10.1.2.3"}},
		{name: "internal header overwritten", remote: "192.0.2.10:5555", headers: map[string]string{clientIPHeader: "10.1.2.3"}},
		{name: "inside range", remote: "10.0.0.5:5555", allowed: true},
		{name: "via trusted proxy", proxies: []string{"192.0.2.10"}, remote: "192.0.2.10:5555", headers: map[string]string{"X-Forwarded-For": "10.1.2.3"}, allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := SetupRouter(Options{MetricsAllowedIPs: "10.0.0.0/8", TrustedProxies: tt.proxies})

			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if tt.allowed && rr.Code != http.StatusOK {
				t.Fatalf("expected metrics to be served, got %d", rr.Code)
			}
			if !tt.allowed && rr.Code == http.StatusOK {
				t.Fatalf("expected metrics to be denied")
			}
		})
	}
}

func TestWaitlistRateLimitIgnoresSpoofedLoopback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupRouterTestDB(t)
	r := SetupRouter(Options{Handler: handler.Options{RatePerMinute: 1}})

	var codes []int
	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"name":"Asha Rao","email":"spoof%d@example.com","city":"Pune"}`, i)
		req := httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "127.0.0.1")
		req.RemoteAddr = "203.0.113.9:41000"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusCreated || codes[1] != http.StatusTooManyRequests || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected one accepted request then 429s, got %v", codes)
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupRouterTestDB(t)
	r := SetupRouter(Options{CORSOrigins: []string{"https://risegum.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/waitlist", nil)
	req.Header.Set("Origin", "https://risegum.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://risegum.example" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}
