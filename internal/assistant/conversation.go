package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iksnae/webscraper-chat/internal"
)

// ErrEmptyPrompt is returned when neither text nor an image was given
var ErrEmptyPrompt = errors.New("prompt is empty")

// Turn is the outcome of one Send
type Turn struct {
	SessionID string
	User      internal.Message
	Assistant internal.Message
	// FromModel is false when the reply is FallbackText
	FromModel bool
}

// Conversation runs prompt/reply turns against a SessionStore
type Conversation struct {
	store     *internal.SessionStore
	responder *FallbackResponder
	scraper   *Scraper
	now       internal.Clock
	ids       internal.IDGenerator
	onSources func([]internal.SourceRecord)
}

// ConversationOption customizes a Conversation
type ConversationOption func(*Conversation)

// WithScraper replaces the default scrape simulation
func WithScraper(s *Scraper) ConversationOption {
	return func(c *Conversation) { c.scraper = s }
}

// WithSourceUpdates registers a callback for every scrape stage
func WithSourceUpdates(fn func([]internal.SourceRecord)) ConversationOption {
	return func(c *Conversation) { c.onSources = fn }
}

// WithConversationClock overrides the time source for source timestamps
func WithConversationClock(now internal.Clock) ConversationOption {
	return func(c *Conversation) { c.now = now }
}

// WithConversationIDs overrides source ID minting
func WithConversationIDs(ids internal.IDGenerator) ConversationOption {
	return func(c *Conversation) { c.ids = ids }
}

// NewConversation creates a Conversation. responder may be nil, in which
// case every reply is FallbackText.
func NewConversation(store *internal.SessionStore, responder Responder, opts ...ConversationOption) *Conversation {
	c := &Conversation{
		store:     store,
		responder: NewFallbackResponder(responder),
		scraper:   &Scraper{Delay: JitterDelay(1500*time.Millisecond, time.Second)},
		now:       time.Now,
		ids:       internal.DefaultIDs{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send records the user's prompt, asks the responder and records the
// reply. When the prompt asks for website data the reply cites sources,
// which are then walked through the scrape simulation with every stage
// persisted.
func (c *Conversation) Send(ctx context.Context, prompt string, image *internal.Attachment) (Turn, error) {
	if strings.TrimSpace(prompt) == "" && image == nil {
		return Turn{}, ErrEmptyPrompt
	}

	user, err := c.store.AddMessage(internal.MessageInput{
		Content: prompt,
		Role:    internal.RoleUser,
		Image:   image,
	})
	if err != nil {
		return Turn{}, fmt.Errorf("failed to record prompt: %w", err)
	}
	session, ok := c.store.GetCurrentSession()
	if !ok {
		return Turn{}, internal.ErrSessionNotFound
	}
	turn := Turn{SessionID: session.ID, User: user}

	text, fromModel := c.responder.Answer(ctx, Request{Prompt: prompt, Image: image})
	turn.FromModel = fromModel

	var sources []internal.SourceRecord
	if fromModel {
		sources = DetectSources(prompt, c.now(), c.ids)
		for i := range sources {
			sources[i].Status = internal.SourceLoading
		}
	}

	reply, err := c.store.AddMessage(internal.MessageInput{
		Content: text,
		Role:    internal.RoleAssistant,
		Sources: sources,
	})
	if err != nil {
		return turn, fmt.Errorf("failed to record reply: %w", err)
	}
	turn.Assistant = reply
	if len(sources) == 0 {
		return turn, nil
	}

	final, err := c.scraper.Run(ctx, sources, func(stage []internal.SourceRecord) error {
		if err := c.store.UpdateSources(turn.SessionID, reply.ID, stage); err != nil {
			return err
		}
		if c.onSources != nil {
			c.onSources(stage)
		}
		return nil
	})
	turn.Assistant.Sources = final
	return turn, err
}
