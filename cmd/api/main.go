package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cortedigital/salon-api/internal/cache"
	"github.com/cortedigital/salon-api/internal/config"
	"github.com/cortedigital/salon-api/internal/db"
	"github.com/cortedigital/salon-api/internal/messaging"
	"github.com/cortedigital/salon-api/internal/observability"
	"github.com/cortedigital/salon-api/internal/realtime"
	"github.com/cortedigital/salon-api/internal/routes"
)

// autoCompleteInterval define de quanto em quanto tempo os agendamentos
// vencidos são marcados como concluídos.
const autoCompleteInterval = 5 * time.Minute

func main() {
	cfg := config.Load()

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	database := db.NewDB(cfg)

	metrics := observability.NewMetrics()

	redisCache := cache.New(cfg, logger)
	defer redisCache.Close()

	var publisher *messaging.RabbitPublisher
	if cfg.RabbitURL != "" {
		publisher, err = messaging.NewRabbitPublisher(cfg.RabbitURL, cfg.RabbitQueue, logger, metrics)
		if err != nil {
			logger.Warn("rabbitmq unavailable, events disabled", zap.Error(err))
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	hub := realtime.NewHub(logger)

	r := gin.New()
	r.Use(gin.Recovery())

	autoComplete := routes.RegisterRoutes(r, database, cfg, logger, metrics, hub, redisCache, publisher)

	// varredura periódica dos agendamentos vencidos
	go func() {
		ticker := time.NewTicker(autoCompleteInterval)
		defer ticker.Stop()

		for range ticker.C {
			updated, err := autoComplete.Execute(context.Background())
			if err != nil {
				logger.Warn("auto-complete sweep failed", zap.Error(err))
				continue
			}
			if updated > 0 {
				logger.Info("appointments auto-completed", zap.Int("count", updated))
			}
		}
	}()

	logger.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
