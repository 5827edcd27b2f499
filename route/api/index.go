package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	service "student-performance-dashboard/app/service/dashboard"
)

// SetupAPIRoutes registers the JSON API and the metrics endpoint.
func SetupAPIRoutes(app *fiber.App, dashboard *service.DashboardService) {
	api := app.Group("/api")
	api.Get("/class/:classId", dashboard.ClassAPI)
	api.Get("/student/:studentId", dashboard.StudentAPI)
	api.Post("/predict", dashboard.PredictAPI)
	api.Post("/upload", dashboard.UploadAPI)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
