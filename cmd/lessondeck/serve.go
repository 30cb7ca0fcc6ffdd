package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/fredcamaral/lessondeck/internal/adapters/primary/http"
	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/logging"
	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/monitoring"
	"github.com/fredcamaral/lessondeck/internal/domain/entities"
)

// staleArtifactAge is how old a leftover artifact must be before startup removes it
const staleArtifactAge = time.Hour

var (
	port          int
	host          string
	modelName     string
	modelTimeout  int
	outputDir     string
	keepArtifacts bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the deck generation API",
	Long: `Start the HTTP API. POST /api/generate-slides with {"topic": "..."} returns
a PowerPoint deck as an attachment; GET /api/health reports readiness.

GOOGLE_API_KEY must be set in the environment or in the .env file.

Example:
  lessondeck serve
  lessondeck serve --port 9000 --model gemini-2.0-flash`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Add command flags - defaults will be overridden by config loading
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().StringVar(&host, "host", "", "Host to bind to (overrides config)")
	addGenerationFlags(serveCmd)
}

// addGenerationFlags registers the flags shared by every command that generates decks
func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&modelName, "model", "m", "", "Model name (overrides config)")
	cmd.Flags().IntVar(&modelTimeout, "model-timeout", 0, "Seconds to wait for the model; 0 waits indefinitely (overrides config)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for rendered decks (overrides config)")
	cmd.Flags().BoolVar(&keepArtifacts, "keep-artifacts", false, "Keep rendered decks after they are served (overrides config)")
}

// validateServeConfig validates serve-specific settings after the config is merged
func validateServeConfig(config *entities.Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("invalid port number: %d", config.Server.Port)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	finalConfig, err := loadAndMergeConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateServeConfig(finalConfig); err != nil {
		return err
	}

	closeLog, err := logging.Setup(finalConfig.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	logger := logging.FromConfig("lessondeck", finalConfig.Logging)
	printStartupInfo(logger, finalConfig)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	application, err := newApp(ctx, finalConfig, logger)
	if err != nil {
		logger.Error("Cannot start: %v", err)
		return err
	}
	defer func() { _ = application.Close() }()

	if removed, err := application.store.CleanupStale(staleArtifactAge); err != nil {
		logger.Warn("Failed to clean stale artifacts: %v", err)
	} else if removed > 0 {
		logger.Info("Removed %d stale artifacts from %s", removed, application.store.Dir())
	}

	monitor := monitoring.NewMonitor(0)
	monitor.Start(ctx)
	defer monitor.Stop()
	application.decks.SetMetrics(monitor)

	server := httpadapter.NewServer(application.decks, &finalConfig.Server, logger.Named("http"))
	server.SetStatsSource(func() interface{} { return monitor.Snapshot() })
	return startAndManageServer(ctx, server, finalConfig, logger)
}

// printStartupInfo logs the effective settings
func printStartupInfo(logger *logging.Logger, config *entities.Config) {
	logger.Info("Starting lessondeck %s (log level %s)", Version, logger.Level())
	logger.Debug("Model: %s (timeout %v)", config.Model.Name, config.Model.GetTimeout())
	logger.Debug("Output directory: %s (keep artifacts: %t)", config.Output.Directory, config.Output.KeepArtifacts)
	logger.Debug("CORS origins: %v", config.Server.GetCORSOrigins())
}

// startAndManageServer starts the server and blocks until ctx is cancelled
func startAndManageServer(ctx context.Context, server *httpadapter.Server, config *entities.Config, logger *logging.Logger) error {
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("port %d cannot be bound: %w", config.Server.Port, err)
	}
	logger.Success("Server running at: %s", getServerURL(server.Addr()))

	return handleServerShutdown(ctx, server, config, logger)
}

// handleServerShutdown waits for cancellation and stops the server gracefully
func handleServerShutdown(ctx context.Context, server *httpadapter.Server, config *entities.Config, logger *logging.Logger) error {
	<-ctx.Done()
	logger.Info("Shutting down server...")

	// ctx is already cancelled; the shutdown gets its own deadline
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Server.GetShutdownTimeout())
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("Error during shutdown: %v", err)
		return err
	}

	return nil
}

// getServerURL constructs the server URL from the bound address
func getServerURL(addr string) string {
	return "http://" + addr
}
