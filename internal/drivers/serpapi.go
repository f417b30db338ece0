package drivers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"VentureScanner/internal/domain"
)

const defaultSerpAPIEndpoint = "https://serpapi.com/search.json"

// SerpAPIDriver runs a Google search for the company through SerpAPI.
type SerpAPIDriver struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

var _ Driver = (*SerpAPIDriver)(nil)

// NewSerpAPIDriver wires credentials; endpoint override is for tests.
func NewSerpAPIDriver(apiKey string, client *http.Client, endpoint string) *SerpAPIDriver {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if endpoint == "" {
		endpoint = defaultSerpAPIEndpoint
	}
	return &SerpAPIDriver{endpoint: endpoint, apiKey: apiKey, client: client}
}

func (d *SerpAPIDriver) Name() string         { return "serpapi" }
func (d *SerpAPIDriver) DisplayName() string  { return "SerpAPI" }
func (d *SerpAPIDriver) RequiresAPIKey() bool { return true }

type serpAPIResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Fetch searches for the company and returns organic results as
// snippets plus their URLs.
func (d *SerpAPIDriver) Fetch(ctx context.Context, company domain.CompanyDescriptor) (Payload, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("%q startup technology", company.Name))
	query.Set("num", "5")
	query.Set("api_key", d.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return Payload{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("serpapi search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Payload{}, fmt.Errorf("serpapi returned %s", resp.Status)
	}

	var decoded serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Payload{}, fmt.Errorf("decode serpapi response: %w", err)
	}

	payload := Payload{}
	for _, r := range decoded.OrganicResults {
		payload.Snippets = append(payload.Snippets, Snippet{
			URL:     r.Link,
			Title:   r.Title,
			Content: r.Snippet,
		})
		payload.URLs = append(payload.URLs, r.Link)
	}
	return payload, nil
}
