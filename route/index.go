package route

import (
	"github.com/gofiber/fiber/v2"

	service "student-performance-dashboard/app/service/dashboard"
)

// SetupRoutes registers the page, fragment, chart and export routes.
func SetupRoutes(app *fiber.App, dashboard *service.DashboardService) {
	// Pages
	app.Get("/", dashboard.Index)
	app.Post("/predict", dashboard.PredictPage)
	app.Post("/upload", dashboard.UploadPage)

	// Fragments
	fragments := app.Group("/fragments")
	fragments.Get("/class/:classId", dashboard.ClassFragment)
	fragments.Get("/student/:studentId", dashboard.StudentFragment)
	fragments.Post("/predict", dashboard.PredictFragment)

	// Charts
	charts := app.Group("/charts")
	charts.Get("/:slot/svg", dashboard.ChartSVG)
	charts.Get("/:slot/config", dashboard.ChartConfig)

	// Export
	app.Get("/export/student/:studentId", dashboard.ExportStudent)
}
