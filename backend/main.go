package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/database"
	"learnhub/backend/routes"
	"learnhub/backend/scheduler"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

// @title LearnHub API
// @version 1.0
// @description Courses, lessons, quizzes, enrollments, discussions and subscriptions.
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	format := "text"
	if !cfg.IsDevelopment() {
		format = "json"
	}
	logger := utils.InitLogger(utils.LoggerConfig{Format: format, EnableColors: cfg.IsDevelopment()})

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Error initializing database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Printf("Error closing database: %v", err)
		}
	}()

	jobs, err := scheduler.StartSubscriptionScheduler(cfg.SubscriptionCron, services.NewSubscriptionService(db), logger)
	if err != nil {
		logger.Fatalf("Error starting scheduler: %v", err)
	}

	app := routes.NewApp(db, cfg, logger)

	go func() {
		logger.Printf("Server running in %s mode on port %s", cfg.Environment, cfg.ServerPort)
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			logger.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Println("Shutting down...")

	<-jobs.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Printf("Error during shutdown: %v", err)
	}
}
