package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appoutbox "motorent/internal/app/outbox"
	authsvc "motorent/internal/app/services/auth"
	deliverersvc "motorent/internal/app/services/deliverer"
	motosvc "motorent/internal/app/services/moto"
	notifysvc "motorent/internal/app/services/notify"
	rentsvc "motorent/internal/app/services/rent"
	domainauth "motorent/internal/domain/auth"
	domaindeliverer "motorent/internal/domain/deliverer"
	domainmoto "motorent/internal/domain/moto"
	domainnotification "motorent/internal/domain/notification"
	domainplan "motorent/internal/domain/plan"
	"motorent/internal/domain/pricing"
	domainrent "motorent/internal/domain/rent"
	"motorent/internal/domain/shared/clock"
	"motorent/internal/infra/broker/kafka"
	"motorent/internal/infra/config"
	mongodb "motorent/internal/infra/db/mongo"
	ginserver "motorent/internal/infra/http/gin"
	"motorent/internal/infra/inbox"
	"motorent/internal/infra/obs"
	infraoutbox "motorent/internal/infra/outbox"
	"motorent/internal/infra/security"
	"motorent/internal/infra/storage/memory"
	"motorent/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.PricingMode = config.PricingPenalty
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	for _, run := range app.workers {
		go run(ctx)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	app.close(logger)
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	workers  []func(context.Context)
	ready    func() error
	closers  []func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	var app application

	var (
		deliverers    domaindeliverer.Repository
		motos         domainmoto.Repository
		plans         domainplan.Repository
		rents         domainrent.Repository
		sessions      domainauth.SessionStore
		notifications domainnotification.Store
		box           appoutbox.Outbox
	)

	var (
		outboxStore *infraoutbox.Store
		inboxStore  *inbox.Store
	)
	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, err
		}
		planRepo := mongodb.NewPlanRepository(client.DB)
		if err := planRepo.Seed(ctx, domainplan.DefaultCatalog()); err != nil {
			return application{}, err
		}
		deliverers = mongodb.NewDelivererRepository(client.DB)
		motos = mongodb.NewMotoRepository(client.DB)
		plans = planRepo
		rents = mongodb.NewRentRepository(client.DB)
		sessions = mongodb.NewSessionStore(client.DB)
		notifications = mongodb.NewNotificationStore(client.DB)
		outboxStore = infraoutbox.NewStore(client.DB)
		inboxStore = inbox.NewStore(client.DB, cfg.KafkaConsumerGroup)
		box = outboxStore
		app.ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		app.closers = append(app.closers, func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Close(closeCtx)
		})
		logger.Info("mongo storage configured", "db", cfg.MongoDB)
	} else {
		deliverers = memory.NewDelivererRepository()
		motos = memory.NewMotoRepository()
		plans = memory.NewPlanRepository()
		rents = memory.NewRentRepository()
		sessions = memory.NewSessionStore()
		notifications = memory.NewNotificationStore()
		box = memory.NewOutbox()
		app.ready = func() error { return nil }
		logger.Warn("running on in-memory storage")
	}

	var uploader deliverersvc.Uploader = s3.NoopUploader{}
	if cfg.S3Endpoint != "" {
		store, err := s3.NewDocumentStore(s3.Config{
			Endpoint:      cfg.S3Endpoint,
			UseSSL:        cfg.S3UseSSL,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.S3PublicEndpoint,
		}, logger)
		if err != nil {
			logger.Warn("s3 storage unavailable, cnh uploads disabled", "error", err)
		} else {
			uploader = store
		}
	}

	var strategy pricing.Strategy
	switch cfg.PricingMode {
	case config.PricingFlat:
		strategy = pricing.FlatDaily{}
	default:
		strategy = pricing.PlanPenalty{}
	}

	sysClock := clock.System{}
	encoder := appoutbox.JSONEventEncoder{}

	authService := &authsvc.Service{
		Deliverers: deliverers,
		Sessions:   sessions,
		Passwords:  security.BcryptHasher{},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}
	delivererService := &deliverersvc.Service{
		Deliverers: deliverers,
		Storage:    uploader,
		Clock:      sysClock,
		Logger:     logger,
	}
	motoService := &motosvc.Service{
		Motos:   motos,
		Rents:   rents,
		Outbox:  box,
		Encoder: encoder,
		Clock:   sysClock,
		Logger:  logger,
	}
	rentService := &rentsvc.Service{
		Deliverers: deliverers,
		Motos:      motos,
		Catalog:    plans,
		Rents:      rents,
		Outbox:     box,
		Encoder:    encoder,
		Clock:      sysClock,
		Logger:     logger,
	}
	budgetService := &rentsvc.BudgetService{
		Rents:    rents,
		Strategy: strategy,
		Outbox:   box,
		Encoder:  encoder,
		Clock:    sysClock,
		Logger:   logger,
	}
	notifyService := &notifysvc.Service{
		Store:  notifications,
		Logger: logger,
	}

	if len(cfg.KafkaBrokers) > 0 && outboxStore != nil {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, err
		}
		app.closers = append(app.closers, producer.Close)
		worker := &infraoutbox.Worker{
			Store:       outboxStore,
			Producer:    producer,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Backoff:     cfg.RetryBackoff,
		}
		app.workers = append(app.workers, func(ctx context.Context) {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		})

		bridge := kafka.FleetNotifyBridge{
			Service: notifyService,
			Logger:  logger,
		}
		if inboxStore != nil {
			bridge.Inbox = inboxStore
		}
		consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaConsumerGroup, bridge, logger)
		if err != nil {
			return application{}, err
		}
		app.closers = append(app.closers, consumer.Close)
		topics := []string{cfg.KafkaTopicPrefix + "moto.events.v1"}
		app.workers = append(app.workers, func(ctx context.Context) {
			if err := consumer.Run(ctx, topics); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("fleet consumer stopped", "error", err)
			}
		})
		logger.Info("kafka configured", "brokers", cfg.KafkaBrokers, "group", cfg.KafkaConsumerGroup)
	} else {
		logger.Warn("kafka not configured, events stay in the outbox")
	}

	authMiddleware := ginserver.AuthMiddleware{Service: authService, Logger: logger}
	app.handlers = ginserver.Handlers{
		Auth:           ginserver.AuthHandler{Service: authService, Logger: logger},
		Deliverer:      ginserver.DelivererHandler{Auth: authService, Service: delivererService, Logger: logger},
		Moto:           ginserver.MotoHandler{Service: motoService, Logger: logger},
		Rent:           ginserver.RentHandler{Service: rentService, Budget: budgetService, Logger: logger},
		AuthMiddleware: authMiddleware.Handle,
	}
	return app, nil
}

func (a application) close(logger *slog.Logger) {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
