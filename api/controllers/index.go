package controllers

import (
	"net/http"

	"github.com/abenezer-t/bizpredict-backend/api/responses"
)

const serviceVersion = "1.0.0"

// Root lists the service surface for anyone poking at the base URL.
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"message": "Welcome to BizPredict API",
			"version": serviceVersion,
			"endpoints": map[string]string{
				"health":     "/health/ready",
				"metrics":    "/metrics",
				"stats":      "/api/stats",
				"forecast":   "/api/forecast",
				"insights":   "/api/insights",
				"products":   "/api/products",
				"regions":    "/api/regions",
				"segments":   "/api/segments",
				"categories": "/api/categories",
				"trends":     "/api/trends",
				"historical": "/api/historical",
			},
		})
	}
}
