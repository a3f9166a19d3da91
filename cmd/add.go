package cmd

import (
	"fmt"
	"strings"

	"github.com/iksnae/webscraper-chat/internal"
	"github.com/spf13/cobra"
)

var addRole string

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Append a message to the current session",
	Long: `Append a message to the current session without asking the assistant.
A session is created first when there is no usable current session.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := internal.Role(strings.ToLower(addRole))
		if !role.Valid() {
			return fmt.Errorf("invalid --role %q (supported: user, assistant)", addRole)
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		msg, err := store.AddMessage(internal.MessageInput{
			Content: strings.Join(args, " "),
			Role:    role,
		})
		if err != nil {
			return err
		}
		current, _ := store.GetCurrentSession()
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", msg.ID, current.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addRole, "role", string(internal.RoleUser), "Message role: user or assistant")
}
