package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddlewareRecordsRequests(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/ping/:id", func(c fiber.Ctx) error {
		return c.SendString("pong")
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ping/:id", "200"))

	resp, err := app.Test(httptest.NewRequest("GET", "/ping/42", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The route template, not the concrete path, is the label
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ping/:id", "200"))
	assert.Equal(t, before+1, after)
}

func TestClusteringCollectorsRegistered(t *testing.T) {
	before := testutil.ToFloat64(ClusteringRunsTotal.WithLabelValues("success"))
	ClusteringRunsTotal.WithLabelValues("success").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ClusteringRunsTotal.WithLabelValues("success")))

	ClusteringBacklog.Set(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(ClusteringBacklog))
}
