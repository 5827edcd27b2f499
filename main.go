package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student-performance-dashboard/app/chart"
	repoAnalytics "student-performance-dashboard/app/repository/analytics"
	service "student-performance-dashboard/app/service/dashboard"
	"student-performance-dashboard/app/templates"
	"student-performance-dashboard/config"
	FiberApp "student-performance-dashboard/fiber"
	"student-performance-dashboard/route"
	"student-performance-dashboard/route/api"
)

func main() {

	// 1. Load .env file
	config.LoadEnv()
	cfg := config.Load()

	// 2. Backend client + chart registry
	analyticsRepo := repoAnalytics.NewAnalyticsRepository(repoAnalytics.Options{
		BaseURL:     cfg.BackendURL,
		Timeout:     cfg.BackendTimeout,
		TokenSecret: cfg.TokenSecret,
	})
	charts := chart.NewManager(nil)
	defer charts.Close()

	dashboardService := service.NewDashboardService(analyticsRepo, charts, cfg.Classes)
	log.Printf("Analytics backend: %s", cfg.BackendURL)

	// 3. Setup Fiber App
	app := FiberApp.SetupFiber(templates.NewEngine(cfg.TemplateDir))

	// 4. Setup Route
	route.SetupRoutes(app, dashboardService)
	api.SetupAPIRoutes(app, dashboardService)
	log.Println("Setup route berhasil")

	// 5. Start server
	go func() {
		log.Printf("Server running on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
