package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/config"
	"github.com/spec-kit/clinic-portal/internal/login"
	"github.com/spec-kit/clinic-portal/internal/notify"
	"github.com/spec-kit/clinic-portal/internal/observability"
	"github.com/spec-kit/clinic-portal/internal/portal"
	"github.com/spec-kit/clinic-portal/internal/records"
	"github.com/spec-kit/clinic-portal/internal/session"
	"github.com/spec-kit/clinic-portal/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	store, closeStore, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build token store", zap.Error(err))
	}
	defer closeStore()

	sess := session.NewSession(store,
		cfg.Records.BaseURL+"/auth/logout",
		cfg.Records.CredentialHeader,
		&http.Client{Timeout: cfg.Records.Timeout()},
		logger)

	notifier := notify.NewNotifier(logger)
	metrics := observability.NewMetrics()
	tracker := transport.NewTracker(func(busy bool) {
		logger.Debug("busy indicator", zap.Bool("busy", busy))
	})

	pipeline := transport.NewPipeline(nil, sess, tracker, portal.NewHooks(notifier),
		cfg.Records.CredentialHeader, metrics, logger)
	client := transport.NewClient(cfg.Records.Timeout(), pipeline)

	recordsClient := records.NewClient(cfg.Records.BaseURL, client)
	flow := login.NewCoordinator(cfg.Records.BaseURL+"/auth/login", client, sess, notifier, logger)

	app := fiber.New()
	portal.RegisterMiddlewares(app, logger)
	portal.RegisterRoutes(app, portal.RouteConfig{
		Session:   sess,
		Login:     portal.NewLoginHandler(flow, sess),
		Clinician: portal.NewClinicianHandler(recordsClient),
		Patient:   portal.NewPatientHandler(recordsClient, sess),
		Status:    portal.NewStatusHandler(tracker, notifier),
		Health:    portal.NewHealthHandler(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func buildStore(cfg *config.Config, logger *zap.Logger) (session.Store, func(), error) {
	if cfg.Session.Backend == "redis" {
		store := session.NewRedisStore(cfg.Redis, cfg.Session.RedisKey, logger)
		return store, store.Close, nil
	}

	var sealer *session.Sealer
	if cfg.Session.Passphrase != "" {
		var err error
		sealer, err = session.NewSealer(cfg.Session.Passphrase)
		if err != nil {
			return nil, nil, err
		}
	}
	return session.NewFileStore(cfg.Session.TokenPath, sealer), func() {}, nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
