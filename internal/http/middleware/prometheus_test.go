package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelsMatch(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(m *dto.Metric, want map[string]string) bool {
	got := map[string]string{}
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestPrometheusMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/users/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("counts requests with route pattern labels", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest("GET", "/users/abc", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		resp, _ = app.Test(httptest.NewRequest("GET", "/users/def", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		// both requests share the /users/:id pattern label
		v := counterValue(t, reg, "http_requests_total", map[string]string{
			"method": "GET",
			"path":   "/users/:id",
			"status": "200",
		})
		assert.Equal(t, float64(2), v)
	})

	t.Run("metrics endpoint itself is excluded", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest("GET", "/metrics", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		v := counterValue(t, reg, "http_requests_total", map[string]string{
			"path": "/metrics",
		})
		assert.Equal(t, float64(0), v)
	})

	t.Run("double registration fails", func(t *testing.T) {
		_, err := NewPrometheusMiddleware(reg)
		assert.Error(t, err)
	})
}
