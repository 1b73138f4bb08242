package knowledge

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

// Snippet is one retrieved fragment of indexed source text.
type Snippet struct {
	Text       string
	SourceLink string
	Corpus     string
}

// Retriever performs semantic lookups against the Weaviate corpora. Each
// corpus is a class with a server-side text2vec module, so queries are
// vectorised by Weaviate itself.
type Retriever struct {
	client *weaviate.Client
}

// New connects to Weaviate at url ("host:port" or full scheme://host). The
// API key is optional for unauthenticated local instances.
func New(url, apiKey string) (*Retriever, error) {
	scheme := "http"
	host := url
	if i := strings.Index(url, "://"); i >= 0 {
		scheme = url[:i]
		host = url[i+3:]
	}

	cfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if apiKey != "" {
		cfg.AuthConfig = auth.ApiKey{Value: apiKey}
	}

	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("weaviate client: %w", err)
	}
	return &Retriever{client: client}, nil
}

// Retrieve returns up to k snippets from the corpus class, most relevant
// first.
func (r *Retriever) Retrieve(ctx context.Context, query, corpus string, k int) ([]Snippet, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if k < 1 {
		k = 1
	}

	nearText := r.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	fields := []graphql.Field{
		{Name: "text"},
		{Name: "sourceLink"},
		{Name: "_additional { certainty }"},
	}

	result, err := r.client.GraphQL().Get().
		WithClassName(corpus).
		WithFields(fields...).
		WithNearText(nearText).
		WithLimit(k).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("semantic search %s: %w", corpus, err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("search error: %s", result.Errors[0].Message)
	}

	return parseSnippets(result, corpus)
}

func parseSnippets(result *models.GraphQLResponse, corpus string) ([]Snippet, error) {
	get, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected response shape: missing Get")
	}
	items, ok := get[corpus].([]interface{})
	if !ok {
		// Class exists but matched nothing.
		return nil, nil
	}

	type scored struct {
		snippet   Snippet
		certainty float64
	}
	var out []scored

	for _, raw := range items {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		s := Snippet{Corpus: corpus}
		if v, ok := obj["text"].(string); ok {
			s.Text = v
		}
		if v, ok := obj["sourceLink"].(string); ok {
			s.SourceLink = v
		}
		certainty := 0.0
		if add, ok := obj["_additional"].(map[string]interface{}); ok {
			if c, ok := add["certainty"].(float64); ok {
				certainty = c
			}
		}
		if s.Text == "" {
			continue
		}
		out = append(out, scored{snippet: s, certainty: certainty})
	}

	// Callers rely on descending relevance order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].certainty > out[j].certainty })

	snippets := make([]Snippet, len(out))
	for i, sc := range out {
		snippets[i] = sc.snippet
	}
	return snippets, nil
}
