package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/filamentd/filament/internal/config"
	"github.com/filamentd/filament/internal/daemon"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "filamentd",
	Short: "Wayland notification daemon with layered popup layouts",
	Long: `filamentd is a freedesktop notification daemon for Wayland desktops.

It claims org.freedesktop.Notifications on the session bus and renders
incoming notifications as layer-shell popups, laid out from a template
of anchored blocks with scrolling text, images and timed expiry.

Running filamentd without a subcommand starts the daemon.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		path := globalOpts.configPath
		if path == "" {
			var err error
			path, err = config.Path()
			if err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}
		}
		globalOpts.configPath = path

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/filament/filamentd.toml)")
}

// runDaemon starts the daemon and blocks until a signal arrives or the
// GTK application quits.
func runDaemon() error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting filamentd", "version", version, "config", globalOpts.configPath)

	d := daemon.New(cfg, globalOpts.configPath, logger)
	if code := d.Run(ctx); code != 0 {
		return fmt.Errorf("daemon exited with code %d", code)
	}
	return nil
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelInfo
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for subcommand output.
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}
