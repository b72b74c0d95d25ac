package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Nazarious-ucu/cluemart-landing/internal/app"
	"github.com/Nazarious-ucu/cluemart-landing/internal/config"
	"github.com/Nazarious-ucu/cluemart-landing/internal/logger"
	"github.com/Nazarious-ucu/cluemart-landing/internal/metrics"
)

// @title ClueMart Landing API
// @version 1.0
// @description Countdown, teasers and launch mailing list signup for ClueMart
// @host localhost:8080
// @BasePath /api/
func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	l, err := logger.NewLogger(cfg.LogsPath, "cluemart")
	if err != nil {
		log.Panicf("failed to create logger: %v", err)
	}

	metr := metrics.NewMetrics("cluemart")

	application := app.New(*cfg, l, metr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		log.Panic(err)
	}
}
