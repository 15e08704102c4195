package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/justsurfingit/jobly-api/internal/auth"
	"github.com/justsurfingit/jobly-api/internal/config"
	"github.com/justsurfingit/jobly-api/internal/database"
	"github.com/justsurfingit/jobly-api/internal/events"
	"github.com/justsurfingit/jobly-api/internal/handlers"
	"github.com/justsurfingit/jobly-api/internal/logger"
	"github.com/justsurfingit/jobly-api/internal/services"
	"github.com/justsurfingit/jobly-api/internal/tracing"
)

func main() {
	// 1. Configuration and logging
	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Tracing (optional)
	if cfg.OTLPEndpoint != "" {
		tp, err := tracing.InitTracer(ctx, cfg.OTLPEndpoint, "jobly-api")
		if err != nil {
			log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
		}
	}

	// 3. Database
	db, err := database.Connect(ctx, cfg.DatabaseURL)
	fatalOnErr(err, "connect to postgres")
	defer db.Close()
	fatalOnErr(db.Migrate(ctx), "migrate")

	// 4. Events (optional)
	var publisher events.Publisher = events.Nop{}
	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			log.Warn("rabbitmq unavailable, events disabled", zap.Error(err))
		} else {
			defer conn.Close()
			pub, err := events.NewAMQPPublisher(conn, cfg.RabbitMQExchange)
			fatalOnErr(err, "create event publisher")
			defer pub.Close()
			publisher = pub
		}
	}

	// 5. Services and routes
	router := handlers.NewRouter(handlers.Deps{
		Jobs:        services.NewJobService(db.Pool),
		Companies:   services.NewCompanyService(db.Pool),
		Users:       services.NewUserService(db.Gorm, db.Pool, cfg.BcryptCost),
		Tokens:      auth.NewTokenManager(cfg.SecretKey, cfg.TokenTTL),
		Events:      publisher,
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("jobly-api stopped")
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
