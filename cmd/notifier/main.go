package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"mindlyst/internal/config"
	"mindlyst/internal/notifier"
	"mindlyst/internal/store"
	"mindlyst/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required for the notifier")
	}

	// The notifier only reads the user directory, so the file backend is
	// enough even when the API runs on another store.
	directory := user.NewRepository(store.NewFileStore(cfg.Storage.DataDir))
	mailer := notifier.NewMailer(cfg.SMTP)
	consumer := notifier.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, directory, mailer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil {
		log.Fatalf("Notifier error: %v", err)
	}
}
