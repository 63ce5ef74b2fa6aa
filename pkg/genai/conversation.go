package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ha1tch/semgraph/pkg/model"
)

// ErrBusy is returned when a question arrives while another is in flight.
// Requests are rejected, never queued.
var ErrBusy = errors.New("a request is already in flight")

// Role identifies who produced a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation.
type Message struct {
	Role Role
	Text string
}

// Conversation is a chat session over a semantic model. At most one request
// is in flight at a time; history only grows. A collaborator failure still
// appends an assistant turn, carrying the fallback text, so the transcript
// never has an unanswered question.
type Conversation struct {
	client *Client

	mu      sync.Mutex
	history []Message
	pending bool
}

// NewConversation creates a conversation backed by the given client.
func NewConversation(client *Client) *Conversation {
	return &Conversation{client: client}
}

// History returns a copy of the transcript so far.
func (c *Conversation) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.history))
	copy(out, c.history)
	return out
}

// Busy reports whether a request is currently in flight.
func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Ask sends a question about the model and returns the answer. The model
// summary and prior turns are folded into the prompt. A second Ask while
// one is pending returns ErrBusy; a collaborator failure returns the
// fallback text with a nil error, since the chat surface treats it as a
// normal answer.
func (c *Conversation) Ask(ctx context.Context, m *model.SemanticModel, question string) (string, error) {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return "", ErrBusy
	}
	c.pending = true
	c.history = append(c.history, Message{Role: RoleUser, Text: question})
	prompt := c.buildPrompt(m, question)
	c.mu.Unlock()

	answer, err := c.client.Complete(ctx, prompt)
	if err != nil || answer == "" {
		answer = Fallback
	}

	c.mu.Lock()
	c.history = append(c.history, Message{Role: RoleAssistant, Text: answer})
	c.pending = false
	c.mu.Unlock()

	return answer, nil
}

// buildPrompt folds the model summary and transcript into a single prompt.
// Caller holds the lock.
func (c *Conversation) buildPrompt(m *model.SemanticModel, question string) string {
	var sb strings.Builder
	sb.WriteString("You are a data analyst assistant answering questions about a semantic model.\n\n")

	if m != nil {
		sb.WriteString("MODEL:\n")
		for _, e := range m.Entities {
			sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", e.Name, e.Type, e.Description))
		}
		for _, r := range m.Relationships {
			source := m.Entity(r.SourceEntityID)
			target := m.Entity(r.TargetEntityID)
			if source == nil || target == nil {
				continue
			}
			sb.WriteString(fmt.Sprintf("- %s %s %s (%s)\n",
				source.Name, r.Type.Shorthand(), target.Name, r.Label))
		}
		sb.WriteString("\n")
	}

	// Prior turns, excluding the question just appended.
	if len(c.history) > 1 {
		sb.WriteString("CONVERSATION SO FAR:\n")
		for _, msg := range c.history[:len(c.history)-1] {
			sb.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Text))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("QUESTION: " + question + "\n")
	sb.WriteString("Answer concisely in plain prose.")
	return sb.String()
}
