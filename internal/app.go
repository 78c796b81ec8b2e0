package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/adapters/inmovilla_client"
	logger_adapter "github.com/alex-potenzzia/inmovilla-api-client/internal/adapters/logger"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/adapters/rest"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/configs"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/contracts"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/port"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/usecase"
	fluentlogger "github.com/alex-potenzzia/inmovilla-api-client/pkg/fluent_logger"
	"github.com/fluent/fluent-logger-golang/fluent"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := newLogger(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	// Клиент Inmovilla и репозитории поверх него
	inmovillaClient, err := inmovilla_client.NewClient(inmovilla_client.Config{
		BaseURL:  appConfig.Inmovilla.APIURL,
		Agency:   appConfig.Inmovilla.Agency,
		Password: appConfig.Inmovilla.Password,
		Language: appConfig.Inmovilla.Language,
		Domain:   appConfig.Inmovilla.Domain,
		Timeout:  appConfig.Inmovilla.Timeout,
	})
	if err != nil {
		appLogger.Error("Failed to configure Inmovilla client", err, nil)
		closeFluent(fluentClient)
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	propertyRepository := inmovilla_client.NewPropertyRepository(inmovillaClient)
	propertyDetailsRepository := inmovilla_client.NewPropertyDetailsRepository(inmovillaClient)
	appLogger.Debug("Inmovilla client initialized", port.Fields{
		"api_url":  appConfig.Inmovilla.APIURL,
		"language": appConfig.Inmovilla.Language,
		"domain":   appConfig.Inmovilla.Domain,
	})

	validator, err := contracts.NewValidator()
	if err != nil {
		appLogger.Error("Failed to compile request schemas", err, nil)
		closeFluent(fluentClient)
		return nil, err
	}

	// Use cases
	searchUseCase := usecase.NewSearchPropertiesUseCase(propertyRepository)
	getByReferenceUseCase := usecase.NewGetPropertyByReferenceUseCase(propertyRepository, propertyDetailsRepository)

	// REST API Server
	handlers := rest.NewPropertyHandler(searchUseCase, getByReferenceUseCase, validator, appConfig.Rest.ExposeUpstreamErrors)
	apiServer := rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Rest.PORT,
		BasePath:       appConfig.Rest.BasePath,
		AllowedOrigins: appConfig.Rest.AllowedOrigins,
	}, handlers, baseLogger)
	appLogger.Info("REST API server configured.", port.Fields{
		"base_path":              appConfig.Rest.BasePath,
		"expose_upstream_errors": appConfig.Rest.ExposeUpstreamErrors,
	})

	return &App{
		config:       appConfig,
		apiServer:    apiServer,
		fluentClient: fluentClient,
		logger:       appLogger,
	}, nil
}

// newLogger собирает stdout-логгер и, если включен, Fluent Bit логгер в один MultiLogger.
func newLogger(cfg *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:  parseLogLevel(cfg.StdoutLogger.Level),
		Format: cfg.StdoutLogger.Format,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if cfg.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(cfg.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			closeFluent(fluentClient)
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		closeFluent(fluentClient)
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": cfg.AppName})
	baseLogger.Debug("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": cfg.FluentBit.Enabled,
	})
	return baseLogger, fluentClient, nil
}

// Run запускает HTTP-сервер и ждет сигнала завершения или ошибки сервера.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Application shut down gracefully.", nil)
		// Логируем в stdout, так как fluent может быть уже недоступен
		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", port.Fields{"address": a.apiServer.Addr()})

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case runErr = <-serverErrors:
		a.logger.Error("Server failed, shutting down", runErr, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(ctx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
		if runErr == nil {
			runErr = err
		}
	}

	return runErr
}

func closeFluent(client *fluent.Fluent) {
	if client != nil {
		_ = client.Close()
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
