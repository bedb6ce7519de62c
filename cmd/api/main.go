package main

import (
	"log"

	"github.com/joho/godotenv"

	"mindlyst/internal/server"
)

// @title MindLyst Contact Service
// @version 1.0
// @description Contact requests, contacts and user directory of MindLyst.
// @BasePath /api
func main() {
	_ = godotenv.Load()

	application, err := server.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
