package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/webscraper-chat/internal"
	"github.com/iksnae/webscraper-chat/internal/config"
	"github.com/spf13/cobra"
)

var (
	verbose         bool
	configPath      string
	storageDriver   string
	storagePath     string
	aiProvider      string
	logLevel        string
	metricsTextfile string
	version         string = "dev"
	commit          string = "unknown"
	date            string = "unknown"
)

// cfg is loaded once per invocation by PersistentPreRunE
var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "webscraper-chat",
	Short: "Chat with WebScraper AI from the terminal",
	Long: `A CLI for WebScraper AI, an assistant for web scraping and data extraction.

Conversations are kept as chat sessions in a single state document that
survives restarts. The document can live in SQLite (default), Pebble,
Redis, or in memory.

Features:
  • Ask questions and get answers from Gemini or OpenAI
  • Scraping prompts cite the sources they were collected from
  • Multiple sessions with a current session pointer
  • Export in multiple formats (JSONL, Markdown, YAML, JSON)

Quick Start:
  webscraper-chat ask "scrape laptop prices from amazon"
  webscraper-chat list                  # List all sessions
  webscraper-chat show                  # View the current session
  webscraper-chat export --format md    # Export as Markdown`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath, config.Overrides{
			StorageDriver:   storageDriver,
			StoragePath:     storagePath,
			AIProvider:      aiProvider,
			LogLevel:        logLevel,
			MetricsTextfile: metricsTextfile,
		})
		if err != nil {
			return err
		}
		cfg = loaded

		internal.ConfigureLogger(cmd.ErrOrStderr(), cfg.Log.Format)
		level, err := internal.ParseLogLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		internal.SetLogLevel(level)
		if verbose {
			internal.SetVerbose(true)
		}
		if cfg.Path != "" {
			internal.LogDebug("Loaded config from %s", cfg.Path)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: config.yaml in the user config dir)")
	rootCmd.PersistentFlags().StringVar(&storageDriver, "storage-driver", "", "Storage backend: sqlite, pebble, redis or memory")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage-path", "", "SQLite file or Pebble directory holding the chat state")
	rootCmd.PersistentFlags().StringVar(&aiProvider, "provider", "", "AI provider: gemini, openai or none")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: error, warn, info or debug")
	rootCmd.PersistentFlags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file on exit")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
