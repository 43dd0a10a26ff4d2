package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/slp-results/internal/config"
	"github.com/pable/slp-results/internal/logging"
)

var (
	dbPath     string
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "slpresults",
	Short: "Slippi replay results tool",
	Long:  "Resolve who won Slippi netplay replays and keep a local win/loss record.",

	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaults := config.Defaults()
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaults.DBPath, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to ini config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaults.LogLevel, "debug, info, warn or error")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
}

// loadConfig layers explicit flags over the config file and environment.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		loaded.DBPath = dbPath
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if flags.Changed("workers") {
		loaded.Workers = parseWorkers
	}
	cfg = loaded
	logger = logging.New(os.Stderr, cfg.LogLevel)
	return nil
}
