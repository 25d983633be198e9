// Package chi exposes the HTTP API: chat, knowledge search, health, and
// metrics.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tanakakogyo/shopkb/internal/domain"
	"github.com/tanakakogyo/shopkb/internal/logger"
	chatuc "github.com/tanakakogyo/shopkb/internal/usecase/chat"
	healthuc "github.com/tanakakogyo/shopkb/internal/usecase/health"
	searchuc "github.com/tanakakogyo/shopkb/internal/usecase/search"
)

// Server handles the HTTP API.
type Server struct {
	chat   *chatuc.Service
	search *searchuc.Service
	health *healthuc.Service
}

// NewServer creates an HTTP API server. Handlers log through the
// request-scoped logger placed in the context by the wide-event middleware.
func NewServer(chat *chatuc.Service, search *searchuc.Service, health *healthuc.Service) *Server {
	return &Server{chat: chat, search: search, health: health}
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/api/chat", s.Chat)
	r.Post("/api/search", s.SearchKnowledge)
	r.Get("/health", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// Chat handles POST /api/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "messages is required")
		return
	}

	conversation := make([]chatuc.Message, len(req.Messages))
	for i, m := range req.Messages {
		if m.Role != chatuc.RoleUser && m.Role != chatuc.RoleAssistant {
			writeError(w, http.StatusBadRequest, "validation_failed", "message role must be user or assistant")
			return
		}
		conversation[i] = chatuc.Message{Role: m.Role, Content: m.Content}
	}

	reply, err := s.chat.Reply(r.Context(), conversation)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: reply})
}

// SearchKnowledge handles POST /api/search. Useful for debugging retrieval
// without burning model tokens.
func (s *Server) SearchKnowledge(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	result := s.search.Search(r.Context(), req.Query, req.History)
	writeJSON(w, http.StatusOK, searchResultToDTO(result))
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, result := range report.Checks {
		checks[name] = string(result)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{Status: string(report.Status), Checks: checks})
}

// handleDomainError maps domain sentinels to HTTP statuses.
func handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrGeneratorUnavailable):
		writeError(w, http.StatusBadGateway, "chat_model_unavailable",
			"エラーが発生しました。しばらく経ってからもう一度お試しください。")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		logger.FromContext(r.Context()).Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
