package cmd

import (
	"fmt"
	"time"

	"github.com/iksnae/webscraper-chat/internal"
	"github.com/iksnae/webscraper-chat/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
	sessionID string
	toStdout  bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions to file",
	Long: `Export chat sessions to various formats (jsonl, md, yaml, json).

Each session is written to <out>/<session-id>.<ext> and a sessions.yaml
index is written next to them. Use --session-id to export one session and
--stdout to print it instead of writing files.
Use 'webscraper-chat list' to see available session IDs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}
		if toStdout && sessionID == "" {
			return fmt.Errorf("--stdout needs --session-id")
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		state := store.State()
		sessions := state.Sessions
		if sessionID != "" {
			session, ok := store.Session(sessionID)
			if !ok {
				return fmt.Errorf("session not found: %s (use 'webscraper-chat list' to see available sessions)", sessionID)
			}
			if toStdout {
				return exporter.Export(&session, cmd.OutOrStdout())
			}
			sessions = []internal.ChatSession{session}
		}

		if len(sessions) == 0 {
			internal.PrintInfo("No sessions to export")
			return nil
		}

		var index *export.SessionIndex
		err = internal.ShowProgress(cmd.Context(), fmt.Sprintf("Exporting %d session(s) to %s", len(sessions), outputDir), func() error {
			var writeErr error
			index, writeErr = export.WriteSessions(outputDir, sessions, state.CurrentID(), exporter, export.IndexMetadata{
				Backend:     store.Backend(),
				StorageKey:  store.Key(),
				GeneratedAt: time.Now().UTC(),
			})
			return writeErr
		})
		if err != nil {
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Export complete: %d session(s) exported to %s", len(index.Sessions), outputDir))
		if skipped := len(sessions) - len(index.Sessions); skipped > 0 {
			return fmt.Errorf("%d session(s) failed to export", skipped)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&sessionID, "session-id", "", "Export a specific session by ID")
	exportCmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the session given by --session-id instead of writing files")
}
