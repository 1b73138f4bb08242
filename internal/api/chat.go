package api

import (
	"context"
	_ "embed"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/travelbestbets/travelbot/internal/events"
	"github.com/travelbestbets/travelbot/internal/store"
)

//go:embed index.html
var chatPage []byte

const sessionCookie = "travelbot_session"

// home resets the caller's conversation and serves the chat page.
func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	sessionID := s.sessionID(w, r)
	s.memory.Reset(sessionID)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(chatPage)
}

// chat answers one user message. The response body is the raw HTML answer
// text, not JSON; the widget injects it straight into the page.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	msg := r.URL.Query().Get("msg")
	if msg == "" {
		http.Error(w, "msg is required", http.StatusBadRequest)
		return
	}

	sessionID := s.sessionID(w, r)
	mem := s.memory.Get(sessionID)

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	s.logger.Debug("conversation customer", "session", sessionID, "msg", msg)

	var answer string
	var ok bool
	if isTrue(r.URL.Query().Get("fallback")) {
		answer, ok = s.bot.RespondPipeline(ctx, msg, mem)
	} else {
		answer, ok = s.bot.Respond(ctx, msg, mem)
	}

	s.logger.Debug("conversation chatbot", "session", sessionID, "answer", answer)

	if ok {
		s.recordTurn(sessionID, msg, answer)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(answer))
}

// recordTurn writes the completed exchange to the conversation log and
// mirrors it onto the event bus. Logging failures never fail the request;
// the user already has their answer.
func (s *Server) recordTurn(sessionID, question, answer string) {
	rec := store.TurnRecord{
		ID:        uuid.New(),
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.store.AppendTurn(ctx, rec); err != nil {
		s.logger.Error("failed to persist turn", "session", sessionID, "error", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTurn(events.TurnEvent{
			ID:        rec.ID.String(),
			SessionID: rec.SessionID,
			Question:  rec.Question,
			Answer:    rec.Answer,
			CreatedAt: rec.CreatedAt,
		}); err != nil {
			s.logger.Warn("failed to publish turn event", "session", sessionID, "error", err)
		}
	}
}

// sessionID reads the session cookie, falling back to a `session` query
// parameter, minting a fresh ID when neither is present.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if v := r.URL.Query().Get("session"); v != "" {
		return v
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func isTrue(v string) bool {
	switch v {
	case "1", "true", "True", "yes", "on":
		return true
	}
	return false
}
