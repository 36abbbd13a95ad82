package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vporto/almanac/internal/app"
	"github.com/vporto/almanac/internal/config"
	"github.com/vporto/almanac/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "almanac",
	Short: "Almanac is a weather, files and country-facts tool server",
	Long: `Almanac exposes a small fixed set of tools (weather lookup, file
reading, directory listing, country facts and AI-backed analysis) over MCP
and a plain HTTP API.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "almanac.yaml", "Path to the optional yaml config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// newApp loads configuration, installs the default logger and wires the
// tool registry. Every subcommand starts here.
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	logger := logging.New(logging.ParseLevel(level))
	slog.SetDefault(logger)

	return app.New(cfg, logger), nil
}
