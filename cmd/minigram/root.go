// ABOUTME: Root Cobra command and global flags for minigram CLI.
// ABOUTME: Sets up lifecycle hooks for env, config, logging, and the metrics endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/2389-research/minigram/internal/config"
	"github.com/2389-research/minigram/internal/feed"
	"github.com/2389-research/minigram/internal/logging"
	"github.com/2389-research/minigram/internal/metrics"
	"github.com/2389-research/minigram/internal/storage"
)

// fullScreen marks commands that own the terminal; their logs never go to stderr.
const fullScreen = "fullscreen"

var globalConfig *config.Config
var globalLogger = zerolog.Nop()
var globalLogCloser io.Closer
var globalMetrics *metrics.Metrics
var globalMetricsServer *http.Server

var metricsAddr string

var rootCmd = &cobra.Command{
	Use:   "minigram",
	Short: "A terminal photo feed",
	Long: `
███╗   ███╗██╗███╗   ██╗██╗ ██████╗ ██████╗  █████╗ ███╗   ███╗
████╗ ████║██║████╗  ██║██║██╔════╝ ██╔══██╗██╔══██╗████╗ ████║
██╔████╔██║██║██╔██╗ ██║██║██║  ███╗██████╔╝███████║██╔████╔██║
██║╚██╔╝██║██║██║╚██╗██║██║██║   ██║██╔══██╗██╔══██║██║╚██╔╝██║
██║ ╚═╝ ██║██║██║ ╚████║██║╚██████╔╝██║  ██║██║  ██║██║ ╚═╝ ██║
╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝

Browse, search, and post to a photo feed from your terminal.
Works against any JSONPlaceholder-compatible /posts API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ApplyEnv(); err != nil {
			return fmt.Errorf("failed to apply environment: %w", err)
		}
		globalConfig = cfg

		logFile, err := cfg.GetLogFile()
		if err != nil {
			return fmt.Errorf("failed to resolve log file: %w", err)
		}
		var fallback io.Writer = os.Stderr
		if cmd.Annotations[fullScreen] == "true" {
			fallback = io.Discard
		}
		logger, closer, err := logging.New(logging.Options{Level: cfg.GetLogLevel(), File: logFile}, fallback)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		globalLogger = logger
		globalLogCloser = closer

		globalMetrics = metrics.New()
		if metricsAddr != "" {
			startMetricsServer(metricsAddr)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

// shutdown stops the metrics endpoint and closes the log file. It runs after
// every command, including ones that return an error.
func shutdown() {
	if globalMetricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = globalMetricsServer.Shutdown(ctx)
		globalMetricsServer = nil
	}
	if globalLogCloser != nil {
		_ = globalLogCloser.Close()
		globalLogCloser = nil
	}
}

func startMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", globalMetrics.Handler())
	globalMetricsServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	srv := globalMetricsServer
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	globalLogger.Info().Str("addr", addr).Msg("serving metrics")
}

// newRemoteClient builds the post API client from the loaded config.
func newRemoteClient() *storage.RemoteClient {
	return storage.NewRemoteClient(globalConfig.GetBaseURL(),
		storage.WithLocalIDThreshold(globalConfig.GetLocalIDThreshold()),
		storage.WithTimeout(globalConfig.GetTimeout()),
		storage.WithListLimit(globalConfig.API.ListLimit),
		storage.WithLogger(globalLogger),
		storage.WithMetrics(globalMetrics),
	)
}

// newController wires a feed controller over the remote API and the given sink.
func newController(sink feed.Sink) *feed.Controller {
	return feed.NewController(newRemoteClient(), sink,
		feed.WithLogger(globalLogger),
		feed.WithPageSize(globalConfig.GetPageSize()),
		feed.WithSearch(globalConfig.SearchEnabled()),
		feed.WithLocalIDThreshold(globalConfig.GetLocalIDThreshold()),
	)
}

// newProfileStore opens the profile file named by the config.
func newProfileStore() (*storage.ProfileYAMLStore, error) {
	path, err := globalConfig.GetProfilePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile path: %w", err)
	}
	return storage.NewProfileYAMLStore(path), nil
}
