package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <session-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a chat session",
	Long: `Delete a chat session. Deleting the current session makes the newest
remaining session current. Deleting an unknown ID does nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		_, existed := store.Session(args[0])
		if err := store.DeleteSession(args[0]); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !existed {
			_, _ = fmt.Fprintf(out, "No session %s\n", args[0])
			return nil
		}
		_, _ = fmt.Fprintf(out, "Deleted %s\n", args[0])
		if current, ok := store.GetCurrentSession(); ok {
			_, _ = fmt.Fprintf(out, "Current session: %s\n", current.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
