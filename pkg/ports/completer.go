package ports

import "context"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a chat conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Completer sends a conversation to a language model and returns the text of its reply.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
