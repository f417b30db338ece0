package drivers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"VentureScanner/internal/domain"
)

const defaultTavilyEndpoint = "https://api.tavily.com/search"

// TavilyDriver runs a web search for the company through the Tavily API.
type TavilyDriver struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

var _ Driver = (*TavilyDriver)(nil)

// NewTavilyDriver wires credentials; endpoint override is for tests.
func NewTavilyDriver(apiKey string, client *http.Client, endpoint string) *TavilyDriver {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if endpoint == "" {
		endpoint = defaultTavilyEndpoint
	}
	return &TavilyDriver{endpoint: endpoint, apiKey: apiKey, client: client}
}

func (d *TavilyDriver) Name() string         { return "tavily" }
func (d *TavilyDriver) DisplayName() string  { return "Tavily Search" }
func (d *TavilyDriver) RequiresAPIKey() bool { return true }

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Fetch searches for the company and returns snippets plus URLs worth
// scraping in full.
func (d *TavilyDriver) Fetch(ctx context.Context, company domain.CompanyDescriptor) (Payload, error) {
	body, err := json.Marshal(map[string]any{
		"api_key":     d.apiKey,
		"query":       fmt.Sprintf("%s company technology funding", company.Name),
		"max_results": 5,
	})
	if err != nil {
		return Payload{}, fmt.Errorf("marshal search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return Payload{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("tavily search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Payload{}, fmt.Errorf("tavily returned %s", resp.Status)
	}

	var decoded tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Payload{}, fmt.Errorf("decode tavily response: %w", err)
	}

	payload := Payload{}
	for _, r := range decoded.Results {
		payload.Snippets = append(payload.Snippets, Snippet{
			URL:     r.URL,
			Title:   r.Title,
			Content: r.Content,
		})
		payload.URLs = append(payload.URLs, r.URL)
	}
	return payload, nil
}
