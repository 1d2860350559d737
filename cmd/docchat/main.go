package main

import (
	"context"
	"net/http"
	"os"

	"go.uber.org/zap"

	"docchat-client/internal/config"
	"docchat-client/internal/conversation"
	"docchat-client/internal/integrations/ragapi"
	"docchat-client/internal/logger"
	"docchat-client/internal/session"
	"docchat-client/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg := config.Load()

	log := logger.New(cfg.LogFile, cfg.Debug)
	defer func() { _ = log.Sync() }()

	// ---- Clients ----
	client, err := ragapi.NewClient(cfg.APIBaseURL,
		ragapi.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)
	if err != nil {
		log.Error("failed to create API client", zap.Error(err))
		os.Exit(1)
	}

	// ---- Services ----
	convLog := conversation.NewLog()

	chatService, err := usecase.NewChatService(convLog, client, client, cfg.TopK)
	if err != nil {
		log.Error("failed to create chat service", zap.Error(err))
		os.Exit(1)
	}
	ingestService, err := usecase.NewIngestService(convLog, client)
	if err != nil {
		log.Error("failed to create ingest service", zap.Error(err))
		os.Exit(1)
	}
	datasetService, err := usecase.NewDatasetService(client, log)
	if err != nil {
		log.Error("failed to create dataset service", zap.Error(err))
		os.Exit(1)
	}
	reportService, err := usecase.NewReportService(client)
	if err != nil {
		log.Error("failed to create report service", zap.Error(err))
		os.Exit(1)
	}

	// ---- Session ----
	sess, err := session.New(chatService, ingestService, datasetService, reportService, convLog, os.Stdin, os.Stdout)
	if err != nil {
		log.Error("failed to create session", zap.Error(err))
		os.Exit(1)
	}

	log.Info("docchat starting", zap.String("api", cfg.APIBaseURL), zap.Int("top_k", cfg.TopK))
	if err := sess.Run(ctx); err != nil {
		log.Error("session ended with error", zap.Error(err))
		os.Exit(1)
	}
}
