package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/limbo/dayslide/internal/service"
	"github.com/limbo/dayslide/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Dayslide onboarding and dashboard API",
	Long: `Dayslide turns a long-term vision into a seven-tier goal plan and
serves a daily action, motivation and focus timer for it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		logger, err := newLogger(cfg.GetStringOr("LOG_LEVEL", "info"), cfg.GetStringOr("LOG_FORMAT", "text"))
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	service.InitValidator()
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", format)
	}
}
