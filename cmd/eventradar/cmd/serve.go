package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"eventradar/config"
	_ "eventradar/docs"
	"eventradar/internal/adapters/auth"
	"eventradar/internal/adapters/push"
	"eventradar/internal/adapters/storage"
	deliveryhttp "eventradar/internal/delivery/http"
	"eventradar/internal/delivery/http/controllers"
	"eventradar/internal/delivery/http/middleware"
	"eventradar/internal/delivery/trigger"
	"eventradar/internal/repository/postgres"
	"eventradar/internal/services"
)

var (
	serverPort  string
	noTrigger   bool
	autoMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and the trigger listener",
	Long: `Start the callable HTTP server and the announcement trigger listener.

Examples:
  # Start with configuration from the environment
  eventradar serve

  # Start on another port without the trigger listener
  eventradar serve --port 9090 --no-trigger`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverPort, "port", "", "server port (default: $PORT or 8080)")
	serveCmd.Flags().BoolVar(&noTrigger, "no-trigger", false, "do not listen for created documents")
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply pending migrations before serving")
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverPort != "" {
		cfg.Port = serverPort
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	if autoMigrate {
		if err := postgres.MigrateUp(ctx, cfg.DBUrl, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	images, err := storage.NewImageStorage(storage.Config{
		Provider: cfg.Storage.Provider,
		Minio: storage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		},
	}, logger)
	if err != nil {
		return err
	}
	publisher, err := push.NewPublisher(push.PublisherConfig{
		Provider: cfg.Push.Provider,
		SNS: push.SNSConfig{
			Region:          cfg.Push.Region,
			AccessKeyID:     cfg.Push.AccessKeyID,
			SecretAccessKey: cfg.Push.SecretAccessKey,
			TopicARNPrefix:  cfg.Push.TopicARNPrefix,
		},
	}, logger)
	if err != nil {
		return err
	}

	eventRepo := postgres.NewEventRepository(db, cfg.BulkDeleteEnabled)
	participantRepo := postgres.NewParticipantRepository(db)
	channelRepo := postgres.NewChannelRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	userRepo := postgres.NewUserRepository(db)

	eventService := services.NewEventService(eventRepo, participantRepo, channelRepo, messageRepo,
		images, logger, cfg.ContextTimeout, cfg.DeleteConcurrency)
	participantService := services.NewParticipantService(participantRepo, userRepo,
		cfg.ContextTimeout, cfg.DeleteConcurrency)
	notificationService := services.NewNotificationService(eventRepo, channelRepo, messageRepo, userRepo,
		publisher, push.NewTemplateRenderer(), logger, cfg.ContextTimeout)

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
			Logger:         logger,
			Events:         controllers.NewEventController(logger, eventService),
			Participants:   controllers.NewParticipantController(logger, participantService),
			Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
			RateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
			AllowedOrigins: cfg.AllowedOrigins,
			DB:             db,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.ContextTimeout + 10*time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "addr", server.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if !noTrigger {
		listener := trigger.NewListener(cfg.DBUrl, postgres.DocumentCreatedChannel,
			trigger.NewDispatcher(notificationService, logger), logger)
		g.Go(func() error {
			return listener.Run(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
