package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/travelbestbets/travelbot/internal/events"
	"github.com/travelbestbets/travelbot/internal/memory"
	"github.com/travelbestbets/travelbot/internal/store"
)

// Responder answers one user query against a session's memory window. The
// boolean reports whether the exchange completed (and should be persisted).
type Responder interface {
	Respond(ctx context.Context, query string, mem *memory.Window) (string, bool)
	RespondPipeline(ctx context.Context, query string, mem *memory.Window) (string, bool)
}

// TurnStore is the persisted conversation log.
type TurnStore interface {
	AppendTurn(ctx context.Context, rec store.TurnRecord) error
	ListTurns(ctx context.Context, q store.ListQuery) ([]store.TurnRecord, int, int, error)
}

// TurnPublisher mirrors completed turns onto the event bus.
type TurnPublisher interface {
	PublishTurn(evt events.TurnEvent) error
}

type Server struct {
	router    *chi.Mux
	port      int
	bot       Responder
	memory    *memory.Manager
	store     TurnStore
	publisher TurnPublisher // nil when events are disabled
	timeout   time.Duration
	logger    *slog.Logger
}

func NewServer(port int, bot Responder, mem *memory.Manager, turns TurnStore, publisher TurnPublisher, timeout time.Duration, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		port:      port,
		bot:       bot,
		memory:    mem,
		store:     turns,
		publisher: publisher,
		timeout:   timeout,
		logger:    logger,
	}

	router.Get("/", s.home)
	router.Get("/get", s.chat)
	router.Get("/chat", s.chat)
	router.Get("/history", s.history)
	router.Get("/api/data", s.history)
	router.Get("/health", s.health)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
