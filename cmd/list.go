package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/webscraper-chat/internal"
	"github.com/spf13/cobra"
)

var (
	listSearch string
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List chat sessions",
	Long:  `List all chat sessions, newest first. The current session is marked with *.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		state := store.State()
		sessions := store.Sessions(listSearch)
		displaySessions(cmd.OutOrStdout(), sessions, state.CurrentID(), time.Now())
		return nil
	},
}

func displaySessions(out io.Writer, sessions []internal.ChatSession, currentID string, now time.Time) {
	if len(sessions) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render("📋 No sessions found"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("📋 Found %d session(s)", len(sessions)))
	_, _ = fmt.Fprintln(out, header)
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, " \t"+titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Updated")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, s := range sessions {
		marker := " "
		if s.ID == currentID {
			marker = currentStyle.Render("*")
		}

		title := s.Title
		if title == "" {
			title = internal.DefaultSessionTitle
		}
		if len(title) > 50 {
			title = title[:47] + "..."
		}

		msgCount := countStyle.Render(strconv.Itoa(len(s.Messages)))
		updated := dateStyle.Render(formatRelative(s.UpdatedAt, now))

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", marker, idStyle.Render(s.ID), title, msgCount, updated)
	}

	_ = w.Flush()
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, idStyle.Render("💡 Tip: Use the ID with `webscraper-chat show <id>` or `webscraper-chat use <id>`"))
}

// formatRelative renders a stored timestamp relative to now
func formatRelative(ts string, now time.Time) string {
	if ts == "" {
		return "-"
	}
	t, err := internal.ParseTime(ts)
	if err != nil {
		return ts
	}
	t = t.Local()
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only list sessions whose title contains this text")
}
