package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/denmor86/ya-orderbot/internal/config"
	"github.com/denmor86/ya-orderbot/internal/logger"
	"github.com/denmor86/ya-orderbot/internal/network/middleware"
	"github.com/denmor86/ya-orderbot/internal/services"
	"github.com/prometheus/client_golang/prometheus"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.DefaultConfig().Server.LogLevel); err != nil {
		logger.Panic(err)
	}
	os.Exit(m.Run())
}

type toggle struct {
	mu      sync.Mutex
	enabled bool
}

func (t *toggle) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

func (t *toggle) Set(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}

type breakerState string

func (p breakerState) BackendState() string {
	return string(p)
}

func newTestServer(t *testing.T, sw *toggle) (*httptest.Server, *services.Identity) {
	identity := services.NewIdentity(config.ServerConfig{JWTSecret: "test-secret"})
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "orderbot_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()

	r := NewRouter(identity, sw, breakerState("closed"), registry)
	srv := httptest.NewServer(r.HandleRouter())
	t.Cleanup(srv.Close)
	return srv, identity
}

func doRequest(t *testing.T, method, url, token, body string) (*http.Response, string) {
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return resp, string(data)
}

func TestRouter_Health(t *testing.T) {
	srv, _ := newTestServer(t, &toggle{enabled: true})

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/healthz", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"backend":"closed"`) {
		t.Errorf("Unexpected body %s", body)
	}
	if resp.Header.Get(middleware.RequestIDHeader) == "" {
		t.Errorf("Expected request id header")
	}

	resp, body = doRequest(t, http.MethodGet, srv.URL+"/metrics", "", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "orderbot_test_total 1") {
		t.Errorf("Unexpected metrics response %d:\n%s", resp.StatusCode, body)
	}
}

func TestRouter_Notifications(t *testing.T) {
	sw := &toggle{enabled: true}
	srv, identity := newTestServer(t, sw)
	token, err := identity.GenerateJWT("alice", time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	url := srv.URL + "/api/notifications"

	testCases := []struct {
		TestName       string
		Method         string
		Token          string
		Body           string
		ExpectedStatus int
		ExpectedState  bool
	}{
		{TestName: "Error. No token #1", Method: http.MethodPut, Body: `{"enabled":false}`, ExpectedStatus: http.StatusUnauthorized, ExpectedState: true},
		{TestName: "Error. Bad token #2", Method: http.MethodPut, Token: "garbage", Body: `{"enabled":false}`, ExpectedStatus: http.StatusUnauthorized, ExpectedState: true},
		{TestName: "Error. Missing field #3", Method: http.MethodPut, Token: token, Body: `{}`, ExpectedStatus: http.StatusBadRequest, ExpectedState: true},
		{TestName: "Success. Disable #4", Method: http.MethodPut, Token: token, Body: `{"enabled":false}`, ExpectedStatus: http.StatusOK, ExpectedState: false},
		{TestName: "Success. Read state #5", Method: http.MethodGet, Token: token, ExpectedStatus: http.StatusOK, ExpectedState: false},
		{TestName: "Success. Enable #6", Method: http.MethodPut, Token: token, Body: `{"enabled":true}`, ExpectedStatus: http.StatusOK, ExpectedState: true},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			resp, body := doRequest(t, tc.Method, url, tc.Token, tc.Body)
			if resp.StatusCode != tc.ExpectedStatus {
				t.Fatalf("Expected status %d, got %d (%s)", tc.ExpectedStatus, resp.StatusCode, body)
			}
			if sw.Enabled() != tc.ExpectedState {
				t.Errorf("Expected notifications %v, got %v", tc.ExpectedState, sw.Enabled())
			}
			if tc.ExpectedStatus == http.StatusOK && !strings.Contains(body, `"enabled":`) {
				t.Errorf("Unexpected body %s", body)
			}
		})
	}
}
