package google

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// Result is the condensed outcome of a web search: joined snippet text from
// the top hits plus the first hit's link.
type Result struct {
	Text string
	Link string
}

// Client queries the Google Custom Search JSON API.
type Client struct {
	apiKey  string
	cseID   string
	baseURL string
	client  *resty.Client
}

func NewClient(apiKey, cseID string) *Client {
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(500 * time.Millisecond)

	return &Client{
		apiKey:  apiKey,
		cseID:   cseID,
		baseURL: defaultBaseURL,
		client:  client,
	}
}

// SetTestTransport points the client at a test server.
func (c *Client) SetTestTransport(url string) {
	c.baseURL = url
}

type searchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search runs the query and condenses the top results. Returns an empty
// Result (no error) when the search matched nothing.
func (c *Client) Search(ctx context.Context, query string) (Result, error) {
	var body searchResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key": c.apiKey,
			"cx":  c.cseID,
			"q":   query,
			"num": "5",
		}).
		SetResult(&body).
		Get(c.baseURL)
	if err != nil {
		return Result{}, fmt.Errorf("search request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Result{}, fmt.Errorf("search error %d: %s", resp.StatusCode(), resp.String())
	}

	if len(body.Items) == 0 {
		return Result{}, nil
	}

	snippets := make([]string, 0, len(body.Items))
	for _, item := range body.Items {
		if item.Snippet != "" {
			snippets = append(snippets, item.Snippet)
		}
	}

	return Result{
		Text: strings.Join(snippets, " "),
		Link: body.Items[0].Link,
	}, nil
}
