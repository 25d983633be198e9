// Package chat answers shop-floor questions by combining knowledge-base
// retrieval with a chat model. Retrieval failure never blocks a reply; the
// model just answers without extra context.
package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tanakakogyo/shopkb/internal/domain"
	"github.com/tanakakogyo/shopkb/internal/usecase/search"
)

// Service orchestrates retrieval and generation for one chat turn.
type Service struct {
	searcher Searcher
	primary  Generator
	fallback Generator
	logger   *zap.Logger
}

// New creates a chat service. fallback can be nil.
func New(searcher Searcher, primary, fallback Generator, logger *zap.Logger) *Service {
	return &Service{
		searcher: searcher,
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Reply produces the assistant's answer to the latest user message. The
// knowledge base is searched with the latest message as the query and the
// earlier user turns as history; the formatted result is injected into the
// system prompt.
func (s *Service) Reply(ctx context.Context, conversation []Message) (string, error) {
	query, history := splitConversation(conversation)
	if query == "" {
		return "", fmt.Errorf("conversation has no user message")
	}

	result := s.searcher.Search(ctx, query, history)
	contextBlock := search.FormatResults(result)

	messages := buildMessages(contextBlock, conversation)

	reply, err := s.primary.Generate(ctx, messages)
	if err == nil {
		return reply, nil
	}
	s.logger.Warn("primary chat model failed",
		zap.String("provider", s.primary.Name()), zap.Error(err))

	if s.fallback == nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGeneratorUnavailable, err)
	}

	reply, fbErr := s.fallback.Generate(ctx, messages)
	if fbErr != nil {
		s.logger.Error("fallback chat model failed",
			zap.String("provider", s.fallback.Name()), zap.Error(fbErr))
		return "", fmt.Errorf("%w: %w", domain.ErrGeneratorUnavailable, fbErr)
	}
	return reply, nil
}

// splitConversation returns the latest user message as the search query and
// the preceding user messages as history, oldest first.
func splitConversation(conversation []Message) (query string, history []string) {
	for i := len(conversation) - 1; i >= 0; i-- {
		if conversation[i].Role != RoleUser {
			continue
		}
		if query == "" {
			query = strings.TrimSpace(conversation[i].Content)
			continue
		}
		history = append([]string{conversation[i].Content}, history...)
	}
	return query, history
}
