// Command server runs the home inventory API and its companion tools.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/home-inventory/internal/config"
	"github.com/iliyamo/home-inventory/internal/logging"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// configFile is set by the --config flag.
	configFile string

	// cfg and logger are loaded once before any subcommand runs.
	cfg         config.Config
	logger      *slog.Logger
	closeLogger = func() {}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Home inventory API server",
	Long: `Serves the home inventory REST API over the House, Room, Location,
Container and Item hierarchy. Running without a subcommand starts the
HTTP server.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { closeLogger(); return nil },
	RunE:               runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (yaml, toml or json)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(consumeCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and the logger for every command but version.
func setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, closeLogger, err = logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "home-inventory "+version)
	},
}
