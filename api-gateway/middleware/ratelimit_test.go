package middleware

import (
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestWriteOnlyGatesByMethod(t *testing.T) {
	var gated int32

	app := fiber.New()
	app.Use(WriteOnly(func(c *fiber.Ctx) error {
		atomic.AddInt32(&gated, 1)
		return c.Next()
	}))
	app.All("/api/items", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for _, method := range []string{"GET", "HEAD"} {
		resp, err := app.Test(httptest.NewRequest(method, "/api/items", nil))
		if err != nil {
			t.Fatalf("%s: %v", method, err)
		}
		resp.Body.Close()
	}
	if got := atomic.LoadInt32(&gated); got != 0 {
		t.Fatalf("reads went through the write limiter %d times", got)
	}

	for _, method := range []string{"POST", "PUT", "PATCH", "DELETE"} {
		resp, err := app.Test(httptest.NewRequest(method, "/api/items", nil))
		if err != nil {
			t.Fatalf("%s: %v", method, err)
		}
		resp.Body.Close()
	}
	if got := atomic.LoadInt32(&gated); got != 4 {
		t.Errorf("expected 4 gated writes, got %d", got)
	}
}
