package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"essay-backend/infrastructure/config"
	"essay-backend/infrastructure/di"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateFor(config.ProfileWorker); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	worker, err := di.InitializeWorker(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize worker: %v", err)
	}
	defer worker.Logger.Sync()

	lambda.Start(worker.Handler.Handle)
}
