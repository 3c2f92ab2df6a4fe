package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"phrase-bridge/internal/api"
	"phrase-bridge/internal/pair_store"
	"phrase-bridge/internal/services"
	"phrase-bridge/internal/translation_resolver"
	"phrase-bridge/internal/translator_provider"
	"phrase-bridge/pkg/database"
	"phrase-bridge/pkg/types"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "phrase-bridge",
	Short: "Translation lookup service",
	Long: `Serves exact-match translations from per-language-pair lookup tables,
falling back to an external translation model when no entry matches.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", ".env", "env file to read configuration from")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().String("host", "", "address to listen on")
		cmd.Flags().String("port", "", "port to listen on")
	}
	rootCmd.AddCommand(serveCmd, pairsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	config *types.Config
	logger *zap.Logger
	db     *database.DB
}

// setup loads configuration, builds the logger and connects to the database.
func setup(cmd *cobra.Command) (*app, error) {
	// Load application configuration from the env file, environment variables and flags
	globalConfig, err := types.LoadConfig(configFile, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger with human-readable timestamps
	logConfig := zap.NewProductionConfig()
	logConfig.EncoderConfig.TimeKey = "time"
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logLevel := zap.InfoLevel
	if globalConfig.Server.LogLevel != "" {
		if err := logLevel.UnmarshalText([]byte(globalConfig.Server.LogLevel)); err != nil {
			logLevel = zap.InfoLevel
		}
	}
	logConfig.Level = zap.NewAtomicLevelAt(logLevel)
	logger, err := logConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// Initialize database connection
	dbConfig := database.Config{
		Driver:   globalConfig.Database.Driver,
		Path:     globalConfig.Database.Path,
		Host:     globalConfig.Database.Host,
		Port:     globalConfig.Database.Port,
		User:     globalConfig.Database.User,
		Password: globalConfig.Database.Password,
		DBName:   globalConfig.Database.Name,
		SSLMode:  globalConfig.Database.SSLMode,
	}

	db, err := database.NewDB(dbConfig, logger)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		_ = logger.Sync()
		return nil, err
	}

	return &app{config: globalConfig, logger: logger, db: db}, nil
}

func (a *app) close() {
	_ = a.db.Close()
	_ = a.logger.Sync()
}

// newResolver wires the pair store and the model fallback.
func (a *app) newResolver() (*translation_resolver.TranslationResolverService, error) {
	providerFactory := translator_provider.NewFactory(a.config)
	providerType := providerFactory.ProviderType()
	provider, err := providerFactory.CreateProvider(providerType)
	if err != nil {
		return nil, fmt.Errorf("failed to create translator provider: %w", err)
	}

	fallback := translator_provider.NewFallback(a.logger, providerType, provider, a.config.Model.Timeout)
	if fallback.Enabled() {
		a.logger.Info("model fallback enabled",
			zap.String("provider", string(providerType)),
			zap.Duration("timeout", a.config.Model.Timeout),
		)
	} else {
		a.logger.Warn("model translation endpoint is not configured, fallback disabled")
	}
	store := pair_store.NewPairStore(a.db.DB)
	return translation_resolver.NewTranslationResolverService(a.logger, store, fallback), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	resolverService, err := a.newResolver()
	if err != nil {
		a.logger.Error("failed to initialize services", zap.Error(err))
		return err
	}

	svc := services.NewServices(resolverService)

	// Start the HTTP server
	return runServer(a.logger, a.config, svc)
}

func runServer(logger *zap.Logger, cfg *types.Config, svc *services.Services) error {
	apiServer := api.NewGinServer(logger, svc, cfg.Server.CORSAllowOrigin)
	// Create HTTP server
	addr := cfg.Server.GetServerAddress()
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      apiServer.GetRouter(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	// Start server in goroutine
	go func() {
		logger.Info("starting server", zap.String("address", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Create channel to listen for interrupt signals (Ctrl+C)
	quit := make(chan os.Signal, 1)
	// Notify on SIGINT (Ctrl+C) and SIGTERM (kill command)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or the listener fails
	select {
	case err := <-serverErr:
		logger.Error("server failed to start", zap.Error(err))
		return err
	case <-quit:
	}
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
	return nil
}
