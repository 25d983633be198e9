package chat

import (
	"context"

	"github.com/tanakakogyo/shopkb/internal/domain/match"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string
	Content string
}

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Generator produces a completion for a conversation.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
	Name() string
}

// Searcher retrieves knowledge-base context for a query.
type Searcher interface {
	Search(ctx context.Context, query string, history []string) match.Result
}
