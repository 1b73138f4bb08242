package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/travelbestbets/travelbot/internal/memory"
)

// Tool is one entry in the router's capability menu. The natural-language
// description is what the selection call sees; the run function is what gets
// invoked. Every tool's output goes straight to the caller; guarded tools
// additionally pass through the no-answer and untrusted-link rewrites.
type Tool struct {
	Name        string
	Description string

	guarded bool
	run     func(ctx context.Context, input string, mem *memory.Window) (string, error)
}

func (rt *Router) buildTools() []Tool {
	return []Tool{
		{
			Name:        "Greeter",
			Description: "useful when the user greets, makes small talk, or asks something that is not a travel question.",
			run:         rt.runGreeter,
		},
		{
			Name:        "TravelBestBets",
			Description: "useful for questions about travel packages, deals and pricing. Pass the whole question as input. Provides a source link with the answer.",
			guarded:     true,
			run:         rt.runDealLookup,
		},
		{
			Name:        "Google",
			Description: "useful for any other travel question. Do not use for travel deal or pricing questions.",
			guarded:     true,
			run:         rt.runWebSearch,
		},
		{
			Name:        "Weather",
			Description: "useful for current weather questions. Pass only the location name as input.",
			run:         rt.runWeather,
		},
	}
}

func (rt *Router) toolByName(name string) *Tool {
	for i := range rt.tools {
		if strings.EqualFold(rt.tools[i].Name, name) {
			return &rt.tools[i]
		}
	}
	return nil
}

func (rt *Router) toolList() string {
	var b strings.Builder
	for _, t := range rt.tools {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
	}
	return strings.TrimSpace(b.String())
}

type toolSelection struct {
	Tool  string `json:"tool"`
	Input string `json:"input"`
}

// parseSelection pulls the JSON object out of the model's reply. Models
// occasionally wrap the JSON in prose or code fences.
func parseSelection(raw string) (toolSelection, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return toolSelection{}, fmt.Errorf("no JSON object in selection reply")
	}

	var sel toolSelection
	if err := json.Unmarshal([]byte(raw[start:end+1]), &sel); err != nil {
		return toolSelection{}, fmt.Errorf("parse selection: %w", err)
	}
	if sel.Tool == "" {
		return toolSelection{}, fmt.Errorf("selection names no tool")
	}
	return sel, nil
}
