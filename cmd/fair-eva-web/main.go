// Package main is the entry point for the FAIR EVA web client.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/IFCA-Advanced-Computing/fair-eva-web-client/internal/config"
	"github.com/IFCA-Advanced-Computing/fair-eva-web-client/internal/evaluator"
	"github.com/IFCA-Advanced-Computing/fair-eva-web-client/internal/web"
)

var rootCmd = &cobra.Command{
	Use:   "fair-eva-web",
	Short: "Web client for the FAIR EVA evaluation API",
	Long: `fair-eva-web serves a small web UI for FAIR evaluations: it collects a
persistent identifier and a plugin selection, forwards them to a FAIR EVA
API instance, and renders the aggregated per-principle and overall FAIR
scores as HTML.

In development mode (--dev) evaluations are read from a local JSON sample
file instead of calling the API.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()
	f.String("config", "", "path to config file")
	f.String("host", "", "host to bind")
	f.Int("port", 0, "port for the web server")
	f.String("api-url", "", "base URL of the FAIR EVA API")
	f.Int("api-port", 0, "port of the FAIR EVA API")
	f.String("title", "", "page title")
	f.String("logo-url", "", "URL to link the logo")
	f.String("logo-image", "", "logo image file in the static img directory")
	f.Bool("dev", false, "development mode: load evaluations from the sample file")
	f.String("sample-file", "", "path to sample JSON file for --dev")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg)

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	var loader evaluator.Client
	if cfg.Evaluation.DevMode {
		loader = evaluator.NewFileClient(cfg.Evaluation.SampleFile)
		logger.Info("development mode: loading evaluations from file", "sample_file", cfg.Evaluation.SampleFile)
	} else {
		loader = evaluator.NewHTTPClient(cfg.API.URL, cfg.API.Port, cfg.APITimeout())
		logger.Info("using FAIR EVA API", "api_url", cfg.API.URL, "api_port", cfg.API.Port)
	}

	webServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: web.NewRouter(loader, cfg, logger),
	}
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.MetricsPort),
		Handler: web.NewMetricsRouter(),
	}

	go func() {
		logger.Info("web server starting", "addr", webServer.Addr)
		if err := webServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("web server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = webServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
	return nil
}

// applyFlags layers command-line overrides on top of the file/env config.
// Only flags the user actually set are applied.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("host") {
		cfg.Server.Host, _ = f.GetString("host")
	}
	if f.Changed("port") {
		cfg.Server.Port, _ = f.GetInt("port")
	}
	if f.Changed("api-url") {
		cfg.API.URL, _ = f.GetString("api-url")
	}
	if f.Changed("api-port") {
		cfg.API.Port, _ = f.GetInt("api-port")
	}
	if f.Changed("title") {
		cfg.UI.Title, _ = f.GetString("title")
	}
	if f.Changed("logo-url") {
		cfg.UI.LogoURL, _ = f.GetString("logo-url")
	}
	if f.Changed("logo-image") {
		cfg.UI.LogoImage, _ = f.GetString("logo-image")
	}
	if f.Changed("dev") {
		cfg.Evaluation.DevMode, _ = f.GetBool("dev")
	}
	if f.Changed("sample-file") {
		cfg.Evaluation.SampleFile, _ = f.GetString("sample-file")
	}
}

func newLogger(lc config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(lc.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
