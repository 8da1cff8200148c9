// ====================================
// File: cmd/memeterm/main.go
// ====================================
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rovshanmuradov/memeterm/internal/app"
	"github.com/rovshanmuradov/memeterm/internal/config"
	"github.com/rovshanmuradov/memeterm/internal/logger"
	"github.com/rovshanmuradov/memeterm/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version value, injected via go build `ldflags` at build time
var Version = "dev"

// Commit sha1 value, injected via go build `ldflags` at build time
var Commit = ""

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func version() string {
	short := Commit
	if len(short) >= 7 {
		short = short[:7]
	}
	if short == "" {
		short = "adhoc"
	}
	return Version + "-" + short
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "memeterm",
		Short:        "Terminal for discovering and trading memecoins on Solana",
		Version:      version(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runTerminal,
	}
	root.PersistentFlags().String("config", "", "Path to config file (default: ./"+config.DefaultPath+" when present)")
	root.PersistentFlags().String("env-file", ".env", "Path to a .env file with MEMETERM_* overrides")
	root.Flags().String("open", "/", "Path to open on start, e.g. /token/<mint> or /profile")

	root.AddCommand(newQuoteCmd())
	return root
}

// loadConfig loads .env and then the configuration named by the persistent flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString("config")
	return config.LoadConfig(path)
}

func runTerminal(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	appLogger, closeLogger, err := logger.New(logger.Options{
		File:  cfg.Logging.File,
		Debug: cfg.DebugLogging,
		Color: cfg.Logging.Color,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		_ = closeLogger()
	}()

	appLogger.Info("🚀 Starting memeterm", zap.String("version", version()))

	runner, err := app.NewRunner(cfg, appLogger)
	if err != nil {
		appLogger.Error("💥 Failed to initialize", zap.Error(err))
		return err
	}
	defer runner.Shutdown()

	open, _ := cmd.Flags().GetString("open")
	if err := runner.Run(cmd.Context(), ui.ParseRoute(open)); err != nil {
		appLogger.Error("💥 Terminal failed", zap.Error(err))
		return err
	}
	return nil
}
