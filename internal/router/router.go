package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/travelbestbets/travelbot/internal/anthropic"
	"github.com/travelbestbets/travelbot/internal/google"
	"github.com/travelbestbets/travelbot/internal/knowledge"
	"github.com/travelbestbets/travelbot/internal/memory"
)

// FailureMessage is the only text a caller ever sees when a collaborator
// fails. The chat UI has no error-detail channel; detail goes to the log.
const FailureMessage = "Unable to complete request. Please retry."

// Completer is the text-generation collaborator.
type Completer interface {
	Complete(ctx context.Context, system string, messages []anthropic.Message, maxTokens int) (string, error)
}

// Retriever is the vector-search collaborator.
type Retriever interface {
	Retrieve(ctx context.Context, query, corpus string, k int) ([]knowledge.Snippet, error)
}

// Searcher is the web-search collaborator.
type Searcher interface {
	Search(ctx context.Context, query string) (google.Result, error)
}

// WeatherProvider is the weather collaborator.
type WeatherProvider interface {
	Current(ctx context.Context, location string) (string, error)
}

// Config holds the router's startup-time knobs.
type Config struct {
	DealsCorpus     string
	GenericCorpus   string
	DealsDocCount   int
	GenericDocCount int
	ApprovedDomain  string
	NoAnswerMarkers []string
}

// Router decides which answer-producing path a query takes, executes it, and
// rewrites untrustworthy output into the business fallback. It never returns
// an error to its caller; the boundary contract is displayable text.
type Router struct {
	llm       Completer
	retriever Retriever
	search    Searcher
	weather   WeatherProvider
	detector  *Detector
	cfg       Config
	logger    *slog.Logger
	tools     []Tool
}

func New(llm Completer, retriever Retriever, search Searcher, weather WeatherProvider, cfg Config, logger *slog.Logger) *Router {
	rt := &Router{
		llm:       llm,
		retriever: retriever,
		search:    search,
		weather:   weather,
		detector:  NewDetector(cfg.NoAnswerMarkers...),
		cfg:       cfg,
		logger:    logger,
	}
	rt.tools = rt.buildTools()
	return rt
}

// Respond answers the query via tool dispatch. The second return reports
// whether the exchange completed; on success the turn has been appended to
// the session memory.
func (rt *Router) Respond(ctx context.Context, query string, mem *memory.Window) (string, bool) {
	answer, err := rt.respond(ctx, query, mem)
	if err != nil {
		rt.logger.Error("respond failed", "query", query, "error", err)
		return FailureMessage, false
	}

	mem.Append(memory.Turn{Question: query, Answer: answer, At: time.Now()})
	return answer, true
}

// RespondPipeline answers the query via the fixed two-corpus retrieval
// pipeline instead of tool dispatch. Same boundary contract as Respond.
func (rt *Router) RespondPipeline(ctx context.Context, query string, mem *memory.Window) (string, bool) {
	answer, err := rt.pipeline(ctx, query, mem)
	if err != nil {
		rt.logger.Error("pipeline respond failed", "query", query, "error", err)
		return FailureMessage, false
	}

	mem.Append(memory.Turn{Question: query, Answer: answer, At: time.Now()})
	return answer, true
}

func (rt *Router) respond(ctx context.Context, query string, mem *memory.Window) (string, error) {
	tool, input, err := rt.selectTool(ctx, query)
	if err != nil {
		return "", fmt.Errorf("tool selection: %w", err)
	}

	rt.logger.Info("tool selected", "tool", tool.Name, "input", input)

	// Every tool hands its output straight back; chaining is capped at the
	// single selected invocation.
	raw, err := tool.run(ctx, input, mem)
	if err != nil {
		return "", fmt.Errorf("tool %s: %w", tool.Name, err)
	}

	if !tool.guarded {
		return raw, nil
	}
	return rt.guard(raw), nil
}

// selectTool runs the single tool-selection reasoning call. A failed call is
// a collaborator failure and surfaces as an error; a garbled or unknown
// selection falls back to the web-search tool.
func (rt *Router) selectTool(ctx context.Context, query string) (*Tool, string, error) {
	system := fmt.Sprintf(selectionSystemPrompt, rt.toolList())

	raw, err := rt.llm.Complete(ctx, system, []anthropic.Message{{Role: "user", Content: query}}, 256)
	if err != nil {
		return nil, "", fmt.Errorf("selection call: %w", err)
	}

	sel, err := parseSelection(raw)
	if err != nil {
		rt.logger.Warn("unusable tool selection, using web search", "reply", raw, "error", err)
		return rt.toolByName("Google"), query, nil
	}

	tool := rt.toolByName(sel.Tool)
	if tool == nil {
		rt.logger.Warn("unknown tool selected, using web search", "tool", sel.Tool)
		return rt.toolByName("Google"), query, nil
	}

	input := strings.TrimSpace(sel.Input)
	if input == "" {
		input = query
	}
	return tool, input, nil
}

// guard applies the trust policy to a synthesized answer: a no-answer reply
// becomes the full fallback block, an untrusted-link sentinel becomes the
// quote-request anchor, and everything else gets the HTML output encoding.
func (rt *Router) guard(answer string) string {
	if rt.detector.IsNoAnswer(answer) {
		return FallbackBlock()
	}
	answer = htmlize(answer)
	if strings.Contains(answer, UntrustedLinkSentinel) {
		answer = ReplaceUntrustedLink(answer)
	}
	return answer
}

// runGreeter handles greetings and small talk with no retrieval context.
func (rt *Router) runGreeter(ctx context.Context, input string, mem *memory.Window) (string, error) {
	return rt.synthesize(ctx, genericSystemPrompt, "", mem, input, 512)
}

// runWebSearch answers general travel questions from web-search context.
func (rt *Router) runWebSearch(ctx context.Context, input string, mem *memory.Window) (string, error) {
	result, err := rt.search.Search(ctx, input)
	if err != nil {
		return "", fmt.Errorf("web search: %w", err)
	}
	return rt.synthesize(ctx, genericSystemPrompt, result.Text, mem, input, 1024)
}

// runWeather returns the weather collaborator's text untouched.
func (rt *Router) runWeather(ctx context.Context, input string, _ *memory.Window) (string, error) {
	report, err := rt.weather.Current(ctx, input)
	if err != nil {
		return "", fmt.Errorf("weather lookup: %w", err)
	}
	return report, nil
}

// runDealLookup is the three-stage deal pipeline: a constrained URL lookup
// over the deals corpus, a web search anchored on that URL, then a strict
// deal-answer synthesis over the verified search context. Separating "find
// the right page" from "answer from verified sources" keeps the model from
// inventing deal specifics.
func (rt *Router) runDealLookup(ctx context.Context, query string, mem *memory.Window) (string, error) {
	snippets, err := rt.retriever.Retrieve(ctx, query, rt.cfg.DealsCorpus, rt.cfg.DealsDocCount)
	if err != nil {
		return "", fmt.Errorf("deal retrieval: %w", err)
	}
	lookupContext := snippetBlock(snippets)

	url, err := rt.llm.Complete(ctx, urlLookupSystemPrompt,
		[]anthropic.Message{{Role: "user", Content: fmt.Sprintf(urlLookupUserPrompt, lookupContext, query)}}, 256)
	if err != nil {
		return "", fmt.Errorf("url lookup: %w", err)
	}
	url = strings.TrimSpace(url)
	if rt.detector.IsNoAnswer(url) {
		url = rt.cfg.ApprovedDomain
	}

	result, err := rt.search.Search(ctx, url+" "+query)
	if err != nil {
		return "", fmt.Errorf("deal search: %w", err)
	}

	link := result.Link
	if link == "" || !strings.Contains(link, rt.cfg.ApprovedDomain) {
		link = UntrustedLinkSentinel
	}

	searchContext := result.Text
	if searchContext == "" {
		searchContext = lookupContext
	}

	answer, err := rt.synthesizeDeal(ctx, searchContext+"\nsource: "+link, mem, query)
	if err != nil {
		return "", fmt.Errorf("deal synthesis: %w", err)
	}
	answer = strings.TrimSpace(answer)

	if rt.detector.IsNoAnswer(answer) {
		return answer, nil
	}

	// The caller-facing answer always carries its source reference: the
	// verified deal page, or the sentinel for guard to rewrite.
	switch {
	case link == UntrustedLinkSentinel && !strings.Contains(answer, UntrustedLinkSentinel):
		answer += "\n" + UntrustedLinkSentinel
	case link != UntrustedLinkSentinel && !strings.Contains(answer, link):
		answer += "\nSource: " + link
	}
	return answer, nil
}

// pipeline is the fixed-retrieval strategy: deals-corpus snippets first, then
// generic-corpus snippets, one synthesis over the combined block.
func (rt *Router) pipeline(ctx context.Context, query string, mem *memory.Window) (string, error) {
	deals, err := rt.retriever.Retrieve(ctx, query, rt.cfg.DealsCorpus, rt.cfg.DealsDocCount)
	if err != nil {
		return "", fmt.Errorf("deals retrieval: %w", err)
	}
	generic, err := rt.retriever.Retrieve(ctx, query, rt.cfg.GenericCorpus, rt.cfg.GenericDocCount)
	if err != nil {
		return "", fmt.Errorf("generic retrieval: %w", err)
	}

	block := snippetBlock(append(deals, generic...))

	answer, err := rt.synthesize(ctx, pipelineSystemPrompt, block, mem, query, 1024)
	if err != nil {
		return "", fmt.Errorf("pipeline synthesis: %w", err)
	}
	return rt.guard(answer), nil
}

func (rt *Router) synthesize(ctx context.Context, system, contextBlock string, mem *memory.Window, question string, maxTokens int) (string, error) {
	prompt := fmt.Sprintf(contextUserPrompt, contextBlock, mem.FormattedHistory(), question)
	answer, err := rt.llm.Complete(ctx, system, []anthropic.Message{{Role: "user", Content: prompt}}, maxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func (rt *Router) synthesizeDeal(ctx context.Context, contextBlock string, mem *memory.Window, question string) (string, error) {
	return rt.synthesize(ctx, dealSystemPrompt, contextBlock, mem, question, 1024)
}

func snippetBlock(snippets []knowledge.Snippet) string {
	var b strings.Builder
	for _, s := range snippets {
		b.WriteString(s.Text)
		if s.SourceLink != "" {
			b.WriteString("\nsource: ")
			b.WriteString(s.SourceLink)
		}
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}
