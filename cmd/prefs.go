package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sidebarCollapsed bool

// prefsCmd represents the prefs command
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change preferences",
	Long:  `Show the stored preferences, or change them with flags. The theme is always dark.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		prefs := store.State().Preferences
		if cmd.Flags().Changed("sidebar-collapsed") {
			prefs.SidebarCollapsed = sidebarCollapsed
			if err := store.SetPreferences(prefs); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "theme: %s\n", prefs.Theme)
		_, _ = fmt.Fprintf(out, "sidebar_collapsed: %t\n", prefs.SidebarCollapsed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.Flags().BoolVar(&sidebarCollapsed, "sidebar-collapsed", false, "Collapse the session sidebar")
}
