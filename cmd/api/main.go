package main

import (
	"log"

	"github.com/joho/godotenv"

	"statcanvas/adapters/memory"
	"statcanvas/app"
	"statcanvas/internal"
	"statcanvas/internal/config"
	"statcanvas/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	logger := internal.NewDefaultLogger()

	history := memory.NewHistoryStore()
	analyzer := app.NewAnalyzer(history, logger)

	server := ui.NewServer(analyzer, cfg, logger)
	if err := server.Start(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
