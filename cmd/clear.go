package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all sessions and reset preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to clear all sessions without --yes")
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		n := len(store.State().Sessions)
		if err := store.Clear(); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d session(s)\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Confirm clearing all sessions")
}
