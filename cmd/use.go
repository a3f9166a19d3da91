package cmd

import (
	"fmt"

	"github.com/iksnae/webscraper-chat/internal"
	"github.com/spf13/cobra"
)

var useNone bool

// useCmd represents the use command
var useCmd = &cobra.Command{
	Use:   "use <session-id>",
	Short: "Select the current session",
	Long: `Make a session the current one. The ID is not checked: selecting an
unknown ID means the next message starts a fresh session.

Use --none to clear the current session.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if useNone {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		var id *string
		if !useNone {
			id = internal.StringPtr(args[0])
			if _, ok := store.Session(args[0]); !ok {
				internal.LogWarn("Session %s does not exist; the next message will start a new session", args[0])
			}
		}
		if err := store.SetCurrentSession(id); err != nil {
			return err
		}

		if id == nil {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No current session")
		} else {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Current session: %s\n", *id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
	useCmd.Flags().BoolVar(&useNone, "none", false, "Clear the current session")
}
