package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	appLogger "github.com/FACorreiaa/go-tourism-chatbot/app/logger"
	"github.com/FACorreiaa/go-tourism-chatbot/config"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/bridge"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/container"
)

var rootCmd = &cobra.Command{
	Use:   "tourism-cli",
	Short: "Sri Lanka tourism chatbot tools",
	Long: `tourism-cli manages the Sri Lanka tourism knowledge base and talks to the
assistant from the terminal. It shares configuration with the HTTP server
(config.yml and .env).`,
	SilenceUsage: true,
}

var logFile string

// ExecuteContext runs the root command with ctx available to every
// subcommand through cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
}

// openLogger honours --log-file. When quiet is set and no file was given,
// logs are discarded so they do not draw over the terminal UI.
func openLogger(mode string, quiet bool) (*slog.Logger, func(), error) {
	if logFile == "" {
		if quiet {
			return appLogger.New(mode, io.Discard), func() {}, nil
		}
		return appLogger.New(mode, os.Stderr), func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return appLogger.New(mode, f), func() { _ = f.Close() }, nil
}

// app bundles what a command needs once configuration is loaded.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	container *container.Container
	closeLog  func()
}

func (a *app) Close() {
	if a.container != nil {
		a.container.Close()
	}
	bridge.ShutdownDefault()
	a.closeLog()
}

// bootstrap loads configuration, configures the process-wide bridge and
// builds the application container on top of it.
func bootstrap(ctx context.Context, quiet bool) (*app, error) {
	_ = godotenv.Load()

	cfg, err := config.InitConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := openLogger(cfg.Mode, quiet)
	if err != nil {
		return nil, err
	}

	bridge.Configure(container.BridgeOptions(cfg.Bridge, logger, nil)...)
	b, err := bridge.Default()
	if err != nil {
		closeLog()
		return nil, err
	}

	c, err := container.NewContainer(ctx, &cfg, logger, nil, b)
	if err != nil {
		bridge.ShutdownDefault()
		closeLog()
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, container: c, closeLog: closeLog}, nil
}
