package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/teamcipx/portofolio-sub000/metrics"
)

// Prometheus records request counts and latencies for every route.
func Prometheus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		route := c.Path()
		latency := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		metrics.HttpRequestsTotal.WithLabelValues(status, route).Inc()
		metrics.HttpRequestDurationSeconds.WithLabelValues(route).Observe(latency)
		return err
	}
}
