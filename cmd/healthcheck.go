package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/webscraper-chat/internal"
	"github.com/iksnae/webscraper-chat/internal/config"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the chat state can be read and written",
	Long: `Check the health of webscraper-chat by verifying:
  • Configuration loading
  • Storage backend access
  • The stored state document
  • AI provider credentials

This command is useful for debugging storage issues, especially in CI/CD environments.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHealthcheck(cmd.OutOrStdout(), cfg, healthcheckVerbose)
	},
}

func runHealthcheck(out io.Writer, cfg *config.Config, verbose bool) error {
	line := func(a ...any) { _, _ = fmt.Fprintln(out, a...) }
	linef := func(format string, a ...any) { _, _ = fmt.Fprintf(out, format, a...) }

	line(sectionStyle.Render("🔍 WebScraper Chat Health Check"))
	line()

	// Step 1: Configuration
	line(infoStyle.Render("Step 1: Loading configuration..."))
	if cfg.Path != "" {
		line(successStyle.Render("✅ Config file loaded"))
	} else {
		line(warningStyle.Render("⚠️  No config file, using defaults"))
	}
	if verbose {
		linef("   Config file: %s\n", cfg.Path)
		linef("   Storage driver: %s\n", cfg.Storage.Driver)
		linef("   Storage path: %s\n", cfg.Storage.Path)
		linef("   Storage key: %s\n", cfg.Storage.Key)
	}
	line()

	// Step 2: Storage backend
	line(infoStyle.Render("Step 2: Opening storage backend..."))
	kv, err := internal.OpenKeyValueStore(cfg.Storage.KVOptions())
	if err != nil {
		line(errorStyle.Render("❌ Failed to open storage:"), err)
		return fmt.Errorf("health check failed: %w", err)
	}
	defer func() { _ = kv.Close() }()
	line(successStyle.Render(fmt.Sprintf("✅ %s storage opened", kv.Name())))
	if lister, ok := kv.(internal.KeyLister); ok && verbose {
		keys, err := lister.Keys("")
		if err != nil {
			line(warningStyle.Render("⚠️  Failed to list keys:"), err)
		} else {
			linef("   Keys: %d\n", len(keys))
			for i, k := range keys {
				if i == 5 {
					linef("   ... and %d more\n", len(keys)-5)
					break
				}
				linef("   [%d] %s\n", i+1, k)
			}
		}
	}
	line()

	// Step 3: State document
	line(infoStyle.Render("Step 3: Reading state document..."))
	raw, found, err := kv.Get(cfg.Storage.Key)
	if err != nil {
		line(errorStyle.Render("❌ Failed to read state:"), err)
		return fmt.Errorf("health check failed: %w", err)
	}
	sessionCount := 0
	state, decodeErr := internal.DecodeState(raw)
	switch {
	case !found || internal.IsAbsent(decodeErr):
		line(warningStyle.Render("⚠️  No chat state stored yet"))
	case decodeErr != nil:
		line(errorStyle.Render("❌ Stored state is unreadable and will be reset on next use:"), decodeErr)
	default:
		sessionCount = len(state.Sessions)
		line(successStyle.Render(fmt.Sprintf("✅ Found %d session(s)", sessionCount)))
		if verbose {
			linef("   Size: %d bytes\n", len(raw))
			linef("   Current session: %s\n", state.CurrentID())
		}
	}
	line()

	// Step 4: AI provider
	line(infoStyle.Render("Step 4: Checking AI provider..."))
	switch {
	case cfg.AI.Provider == config.ProviderNone:
		line(warningStyle.Render("⚠️  AI disabled, replies use the fallback message"))
	case cfg.AI.APIKey == "":
		line(warningStyle.Render(fmt.Sprintf("⚠️  No API key for %s, replies use the fallback message", cfg.AI.Provider)))
	default:
		line(successStyle.Render(fmt.Sprintf("✅ %s configured (model %s)", cfg.AI.Provider, cfg.AI.Model)))
	}
	line()

	// Summary
	line(sectionStyle.Render("📊 Summary"))
	line()
	if decodeErr != nil && found && !internal.IsAbsent(decodeErr) {
		line(errorStyle.Render("❌ Health check failed"))
		return fmt.Errorf("health check failed: stored state is corrupt: %w", decodeErr)
	}
	line(successStyle.Render("✅ Health check passed!"))
	line(successStyle.Render(fmt.Sprintf("   • Storage: %s", kv.Name())))
	line(successStyle.Render(fmt.Sprintf("   • Sessions: %d found", sessionCount)))
	return nil
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckVerbose, "verbose", "v", false, "Show detailed information")
}
