package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/iksnae/webscraper-chat/internal"
	"github.com/iksnae/webscraper-chat/internal/assistant"
	"github.com/spf13/cobra"
)

var askImage string

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <prompt>",
	Short: "Ask WebScraper AI a question",
	Long: `Send a prompt to the assistant and record both sides in the current session.

Prompts about prices, scraping, websites or data cite the target website as
a source, and the source is tracked through a short scrape simulation.
Without a usable API key the assistant answers with a fallback message.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if askImage != "" {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.Join(args, " ")

		var image *internal.Attachment
		if askImage != "" {
			var err error
			image, err = loadImage(askImage)
			if err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		responder, err := assistant.NewResponder(ctx, cfg.AI)
		if err != nil {
			if !errors.Is(err, assistant.ErrNoAPIKey) {
				return err
			}
			internal.PrintWarning(fmt.Sprintf("No API key for %s; answering offline", cfg.AI.Provider))
			responder = nil
		}

		conv := assistant.NewConversation(store, responder,
			assistant.WithScraper(&assistant.Scraper{
				Delay:   assistant.JitterDelay(cfg.Scrape.StageDelay, cfg.Scrape.Jitter),
				Metrics: store.Metrics(),
			}),
		)

		// The spinner must outlive ctx so turn is only read after Send returns
		var turn assistant.Turn
		err = internal.ShowProgress(context.WithoutCancel(ctx), "Thinking...", func() error {
			var sendErr error
			turn, sendErr = conv.Send(ctx, prompt, image)
			return sendErr
		})

		out := cmd.OutOrStdout()
		if turn.Assistant.ID != "" {
			_, _ = fmt.Fprintln(out, turn.Assistant.Content)
			if len(turn.Assistant.Sources) > 0 {
				_, _ = fmt.Fprintln(out)
				_, _ = fmt.Fprintln(out, "Sources:")
				internal.PrintSources(out, turn.Assistant.Sources)
			}
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// loadImage reads an image file for the assistant. The MIME type is sniffed
// from the content.
func loadImage(path string) (*internal.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%s is not an image (detected %s)", path, mime)
	}
	return &internal.Attachment{
		Name:     filepath.Base(path),
		MIMEType: mime,
		Data:     data,
	}, nil
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askImage, "image", "", "Attach an image file to the prompt")
}
