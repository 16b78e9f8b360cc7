package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dennismutuku2005/stream-wisp-sub001/config"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/api"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/cache"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/gateway"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/repository"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/services"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title           ISP Messaging Service
// @version         1.0
// @description     Bulk SMS and WhatsApp dispatch to ISP customers, gated by prepaid credits

// @host      localhost:8080
// @BasePath  /api
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbPool, redisClient, err := setupDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to setup dependencies", zap.Error(err))
	}
	defer dbPool.Close()
	defer redisClient.Close()

	server := buildApplication(dbPool, redisClient, cfg, logger)

	startServer(server, logger)

	waitForShutdown(server, cancel, logger)

	logger.Info("Server gracefully stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func setupDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, *redis.Client, error) {
	dbPool, err := repository.NewConnection(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	redisClient, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
	if err != nil {
		dbPool.Close()
		return nil, nil, fmt.Errorf("failed to establish Redis connection: %w", err)
	}

	return dbPool, redisClient, nil
}

func buildApplication(dbPool *pgxpool.Pool, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) *http.Server {
	creditRepository := repository.NewCreditRepository(dbPool)
	customerRepository := repository.NewCustomerRepository(dbPool)
	dispatchCache := cache.NewDispatchCache(redisClient)
	suggestionCache := cache.NewSuggestionCache(redisClient, cfg.SuggestCacheTTL)

	transports := gateway.Registry{
		domain.ChannelSMS: gateway.NewSMSGateway(gateway.SMSConfig{
			URL:      cfg.SMS.URL,
			APIKey:   cfg.SMS.APIKey,
			UserID:   cfg.SMS.UserID,
			Password: cfg.SMS.Password,
			SenderID: cfg.SMS.SenderID,
		}, cfg.SendTimeout, logger),
		domain.ChannelWhatsApp: gateway.NewWhatsAppGateway(gateway.WhatsAppConfig{
			URL:    cfg.WhatsApp.URL,
			Token:  cfg.WhatsApp.Token,
			Sender: cfg.WhatsApp.Sender,
		}, cfg.SendTimeout, logger),
	}

	creditService := services.NewCreditService(creditRepository, services.Pricing{
		SMS:      cfg.Pricing.SMS,
		WhatsApp: cfg.Pricing.WhatsApp,
		Currency: cfg.Pricing.Currency,
	})
	resolver := services.NewRecipientResolver(customerRepository)
	suggestionService := services.NewSuggestionService(customerRepository, suggestionCache, cfg.SuggestLimit, logger)
	dispatchService := services.NewDispatchService(
		resolver,
		creditService,
		transports,
		worker.NewPool(cfg.DispatchWorkers, logger),
		dispatchCache,
		services.DispatchOptions{SendTimeout: cfg.SendTimeout},
		logger,
	)

	apiHandler := api.NewHandler(dispatchService, creditService, suggestionService, logger)

	router := api.NewRouter(apiHandler)
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	logger.Info("Application components built successfully.",
		zap.Int("dispatch_workers", cfg.DispatchWorkers),
		zap.Duration("send_timeout", cfg.SendTimeout),
	)
	return server
}

func startServer(server *http.Server, logger *zap.Logger) {
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Unexpected error while starting server", zap.Error(err))
		}
	}()
}

func waitForShutdown(server *http.Server, cancelApp context.CancelFunc, logger *zap.Logger) {
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	<-shutdownChan

	logger.Info("Shutting down gracefully...")

	// in-flight dispatches get 15 seconds to settle
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Unexpected error while shutting down server", zap.Error(err))
	}

	cancelApp()
}
