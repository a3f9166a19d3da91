package internal

// DefaultSessionTitle is the title given to sessions created without one
const DefaultSessionTitle = "New Chat"

// ChatSession is one conversation thread
type ChatSession struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Messages  []Message `json:"messages" yaml:"messages"`
	CreatedAt string    `json:"createdAt" yaml:"created_at"`
	UpdatedAt string    `json:"updatedAt" yaml:"updated_at"`
}

// Message is one turn in a conversation
type Message struct {
	ID        string         `json:"id" yaml:"id"`
	Content   string         `json:"content" yaml:"content"`
	Role      Role           `json:"role" yaml:"role"`
	Timestamp string         `json:"timestamp" yaml:"timestamp"`
	Sources   []SourceRecord `json:"sources,omitempty" yaml:"sources,omitempty"`

	// Image lives only as long as the process that attached it.
	Image *Attachment `json:"-" yaml:"-"`
}

// MessageInput is the caller-supplied part of a message; the store
// assigns the ID and timestamp.
type MessageInput struct {
	Content string
	Role    Role
	Sources []SourceRecord
	Image   *Attachment
}

// Attachment is a binary companion to a message (an uploaded image)
type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte
}

// MessageCount returns the number of messages in the session
func (s *ChatSession) MessageCount() int {
	return len(s.Messages)
}

// LastMessage returns the most recent message, if any
func (s *ChatSession) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// findMessage returns the index of the message with the given ID or -1
func (s *ChatSession) findMessage(id string) int {
	for i := range s.Messages {
		if s.Messages[i].ID == id {
			return i
		}
	}
	return -1
}

func (s ChatSession) clone() ChatSession {
	out := s
	if s.Messages != nil {
		out.Messages = make([]Message, len(s.Messages))
		for i, m := range s.Messages {
			out.Messages[i] = m.clone()
		}
	}
	return out
}

func (m Message) clone() Message {
	out := m
	if m.Sources != nil {
		out.Sources = append([]SourceRecord(nil), m.Sources...)
	}
	return out
}
