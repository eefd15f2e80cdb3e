// Package comps discovers comparable sales for auction items through a
// web-search agent and validates what the agent returns.
package comps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bidhouse-backend/internal/models"
)

const (
	agentModel     = "gpt-4.1"
	requestTimeout = 120 * time.Second
)

// Query describes the item whose comparable sales are wanted.
type Query struct {
	Brand string
	Model string
	Year  string
	Notes string
}

// Searcher produces exactly three comparable-sale candidates for a query.
// Candidates with source "none" are the agent's way of reporting a miss.
type Searcher interface {
	FindComparables(q Query) ([]models.CompCandidate, error)
}

// Client is a Searcher backed by the OpenAI responses API with the
// web_search tool enabled.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type agentRequest struct {
	Model string         `json:"model"`
	Input string         `json:"input"`
	Tools []agentTool    `json:"tools"`
	Text  *agentTextSpec `json:"text,omitempty"`
}

type agentTool struct {
	Type              string `json:"type"`
	SearchContextSize string `json:"search_context_size,omitempty"`
}

type agentTextSpec struct {
	Format agentFormat `json:"format"`
}

type agentFormat struct {
	Type   string         `json:"type"`
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
	Strict bool           `json:"strict"`
}

type agentResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

type agentOutput struct {
	Comp1 models.CompCandidate `json:"comp_1"`
	Comp2 models.CompCandidate `json:"comp_2"`
	Comp3 models.CompCandidate `json:"comp_3"`
}

// FindComparables runs one agent pass and returns its three candidates.
// Validation and retries belong to the Finder, not the client.
func (c *Client) FindComparables(q Query) ([]models.CompCandidate, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("comps api key not configured")
	}

	req := agentRequest{
		Model: agentModel,
		Input: buildInstructions(q),
		Tools: []agentTool{
			{Type: "web_search", SearchContextSize: "medium"},
		},
		Text: &agentTextSpec{
			Format: agentFormat{
				Type:   "json_schema",
				Name:   "comparable_sales",
				Schema: compSchema(),
				Strict: true,
			},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal agent request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create agent request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("agent request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read agent response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed agentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode agent response: %w", err)
	}

	var text strings.Builder
	for _, out := range parsed.Output {
		for _, content := range out.Content {
			if content.Type == "output_text" {
				text.WriteString(content.Text)
			}
		}
	}

	var output agentOutput
	if err := json.Unmarshal([]byte(text.String()), &output); err != nil {
		return nil, fmt.Errorf("agent output is not valid json: %w", err)
	}
	return []models.CompCandidate{output.Comp1, output.Comp2, output.Comp3}, nil
}

func buildInstructions(q Query) string {
	year := time.Now().Year()
	return fmt.Sprintf(`Find exactly 3 recently sold comparable items for this product:

Brand: %s
Model: %s
Year: %s
Notes: %s

Rules:
- Only use completed sales with a verifiable listing URL (eBay sold listings, auction house results, marketplace sold pages).
- Every sale must have closed in %d or %d. Older sales do not count.
- For each comp report: source (the marketplace name), url, sale_date (YYYY-MM-DD), price (numeric USD), notes (condition and how it compares).
- If you cannot find a real sale for a slot, set its source to "none" and leave the other fields empty.`,
		orUnknown(q.Brand), orUnknown(q.Model), orUnknown(q.Year), q.Notes, year-1, year)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

func compSchema() map[string]any {
	comp := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"source":    map[string]any{"type": "string"},
			"url":       map[string]any{"type": "string"},
			"sale_date": map[string]any{"type": "string"},
			"price":     map[string]any{"type": "string"},
			"notes":     map[string]any{"type": "string"},
		},
		"required":             []string{"source", "url", "sale_date", "price", "notes"},
		"additionalProperties": false,
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"comp_1": comp,
			"comp_2": comp,
			"comp_3": comp,
		},
		"required":             []string{"comp_1", "comp_2", "comp_3"},
		"additionalProperties": false,
	}
}
