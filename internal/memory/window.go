package memory

import (
	"strings"
	"sync"
	"time"
)

// Turn is one completed question/answer exchange.
type Turn struct {
	Question string
	Answer   string
	At       time.Time
}

// Window is a bounded FIFO log of the most recent turns. It is injected into
// synthesis prompts as formatted history; once at capacity, appending evicts
// the oldest turn. Safe for concurrent use: the same session cookie can carry
// overlapping requests.
type Window struct {
	mu       sync.Mutex
	capacity int
	turns    []Turn
}

func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{capacity: capacity}
}

func (w *Window) Append(t Turn) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.turns) == w.capacity {
		w.turns = w.turns[1:]
	}
	w.turns = append(w.turns, t)
}

// FormattedHistory renders the window oldest-first as alternating
// human/bot lines for prompt injection. Empty window renders empty.
func (w *Window) FormattedHistory() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.turns) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range w.turns {
		b.WriteString("Human: ")
		b.WriteString(t.Question)
		b.WriteString("\nTravelBot: ")
		b.WriteString(t.Answer)
		b.WriteString("\n")
	}
	return b.String()
}

// Reset replaces the turn list wholesale.
func (w *Window) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.turns = nil
}

func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.turns)
}
