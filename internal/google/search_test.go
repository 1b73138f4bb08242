package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch_CondensesTopResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected key test-key, got %q", r.URL.Query().Get("key"))
		}
		if r.URL.Query().Get("cx") != "test-cse" {
			t.Errorf("expected cx test-cse, got %q", r.URL.Query().Get("cx"))
		}
		if r.URL.Query().Get("q") != "travelbestbets.com deals to mexico" {
			t.Errorf("unexpected query %q", r.URL.Query().Get("q"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"title": "Mexico Deals", "link": "https://travelbestbets.com/mexico-deals/", "snippet": "Cancun from $999."},
				{"title": "More Deals", "link": "https://travelbestbets.com/deals/", "snippet": "Weekly specials."},
			},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-cse")
	c.SetTestTransport(server.URL)

	result, err := c.Search(context.Background(), "travelbestbets.com deals to mexico")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Link != "https://travelbestbets.com/mexico-deals/" {
		t.Errorf("expected first item link, got %q", result.Link)
	}
	if result.Text != "Cancun from $999. Weekly specials." {
		t.Errorf("expected joined snippets, got %q", result.Text)
	}
}

func TestSearch_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-cse")
	c.SetTestTransport(server.URL)

	result, err := c.Search(context.Background(), "nothing here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "" || result.Link != "" {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestSearch_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 403, "message": "quota exceeded"},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-cse")
	c.SetTestTransport(server.URL)

	_, err := c.Search(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
