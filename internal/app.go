package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	logger_adapter "vehicle-search-service/internal/adapters/logger"
	"vehicle-search-service/internal/adapters/mcpserver"
	postgres_adapter "vehicle-search-service/internal/adapters/postgres"
	"vehicle-search-service/internal/adapters/rest"
	"vehicle-search-service/internal/configs"
	"vehicle-search-service/internal/core/port"
	"vehicle-search-service/internal/core/usecase"
	"vehicle-search-service/internal/gateway"
)

// App wires every dependency together. This is the composition root; nothing
// below it knows about concrete adapters.
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	mcpServer *mcpserver.Server
	apiServer *rest.Server
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		UseColor: appConfig.MCP.Transport != "stdio",
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = logger_adapter.NewFluentClient(logger_adapter.FluentConfig{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluent client", err, nil)
			return nil, fmt.Errorf("failed to create fluent client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluent adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	appLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers),
		"fluent_enabled": appConfig.FluentBit.Enabled,
	})

	dbPool, err := postgres_adapter.NewClient(context.Background(), postgres_adapter.Config{
		DatabaseURL: appConfig.Database.URL,
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool", nil)

	searchAdapter, err := postgres_adapter.NewVehicleSearchAdapter(dbPool, appConfig.Database.QueryTimeout)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create vehicle search adapter: %w", err)
	}
	facetRepository, err := postgres_adapter.NewFacetRepository(dbPool, appConfig.Database.QueryTimeout)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create facet repository: %w", err)
	}

	gw := gateway.NewGateway(
		usecase.NewSearchVehiclesUseCase(searchAdapter),
		usecase.NewListDistinctUseCase(facetRepository),
		usecase.NewGetRangeUseCase(facetRepository),
	)

	mcpServer := mcpserver.NewServer(appConfig.MCP.ServerName, appConfig.MCP.ServerVersion, gw, appLogger)

	var apiServer *rest.Server
	if appConfig.MCP.Transport == "http" {
		apiServer = rest.NewServer(appConfig.Rest.PORT, mcpServer.HTTPHandler(), appLogger)
	}

	return &App{
		config:       appConfig,
		dbPool:       dbPool,
		fluentClient: fluentClient,
		logger:       appLogger,
		mcpServer:    mcpServer,
		apiServer:    apiServer,
	}, nil
}

// Run serves tool calls until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.config.MCP.Transport == "stdio" {
		a.logger.Info("Serving MCP over stdio", nil)
		return a.mcpServer.Run(ctx, &mcp.StdioTransport{})
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("REST server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.apiServer.Stop(shutdownCtx)
	}
}

// Shutdown releases every held resource.
func (a *App) Shutdown() {
	a.logger.Info("Shutting down...", nil)
	if a.dbPool != nil {
		a.dbPool.Close()
	}
	if a.fluentClient != nil {
		a.fluentClient.Close()
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
