package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"despeses/internal/amqp"
	"despeses/internal/cli"
	"despeses/internal/sheets"
	"despeses/internal/worker"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the sync worker")
		os.Exit(1)
	}

	st, err := cli.OpenStore(cfg)
	if err != nil {
		logger.Error("Failed to open store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	defer st.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheet, err := sheets.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}

	w := worker.NewSyncWorker(st, sheet)

	logger.Info("Starting sheet sync worker", "queue", cfg.AMQPQueue)
	err = client.ConsumeDocumentSaved(ctx, func(msg *amqp.DocumentSavedMessage) error {
		return w.HandleDocumentSaved(ctx, msg)
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("Consumer stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
