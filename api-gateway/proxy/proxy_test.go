package proxy

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/stokq/stock-ledger/api-gateway/config"
	"github.com/stokq/stock-ledger/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("gateway-test", true)
	logger.SetLevel("error")
	os.Exit(m.Run())
}

func newProxyApp(backendURL string) *fiber.App {
	cfg := &config.GatewayConfig{
		Services: map[string]config.ServiceConfig{
			"ledger": {
				Name:      "ledger-service",
				BaseURL:   backendURL,
				Instances: []string{backendURL},
				Timeout:   5 * time.Second,
			},
		},
	}

	p := NewReverseProxy(cfg)
	app := fiber.New()
	app.All("/*", func(c *fiber.Ctx) error {
		return p.ProxyRequest(c, "ledger")
	})
	return app
}

// droppingBackend counts requests and kills each connection before any
// response bytes are written, so every client.Do fails in-flight.
func droppingBackend(hits *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			return
		}
		conn.Close()
	}))
}

func TestProxyDoesNotRetryWrites(t *testing.T) {
	var hits int32
	backend := droppingBackend(&hits)
	defer backend.Close()

	app := newProxyApp(backend.URL)

	req := httptest.NewRequest("POST", "/api/items/1/movements", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadGateway {
		t.Errorf("expected 502, got %d", resp.StatusCode)
	}

	// A failed write must reach the backend exactly once. A retried POST
	// could record the same movement twice.
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("backend saw %d POST attempts, want 1", got)
	}
}

func TestProxyRetriesReads(t *testing.T) {
	var hits int32
	backend := droppingBackend(&hits)
	defer backend.Close()

	app := newProxyApp(backend.URL)

	req := httptest.NewRequest("GET", "/api/items", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadGateway {
		t.Errorf("expected 502, got %d", resp.StatusCode)
	}

	if got := atomic.LoadInt32(&hits); got != maxProxyAttempts {
		t.Errorf("backend saw %d GET attempts, want %d", got, maxProxyAttempts)
	}
}
