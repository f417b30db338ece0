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

const defaultCrunchbaseEndpoint = "https://api.crunchbase.com/api/v4/data/autocompletes"

// CrunchbaseDriver looks the company up in the Crunchbase organization
// index for funding and profile signals.
type CrunchbaseDriver struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

var _ Driver = (*CrunchbaseDriver)(nil)

// NewCrunchbaseDriver wires credentials; endpoint override is for tests.
func NewCrunchbaseDriver(apiKey string, client *http.Client, endpoint string) *CrunchbaseDriver {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if endpoint == "" {
		endpoint = defaultCrunchbaseEndpoint
	}
	return &CrunchbaseDriver{endpoint: endpoint, apiKey: apiKey, client: client}
}

func (d *CrunchbaseDriver) Name() string         { return "crunchbase" }
func (d *CrunchbaseDriver) DisplayName() string  { return "Crunchbase" }
func (d *CrunchbaseDriver) RequiresAPIKey() bool { return true }

type crunchbaseResponse struct {
	Entities []struct {
		Identifier struct {
			Value     string `json:"value"`
			Permalink string `json:"permalink"`
		} `json:"identifier"`
		ShortDescription string `json:"short_description"`
	} `json:"entities"`
}

// Fetch queries the autocomplete index for the company name.
func (d *CrunchbaseDriver) Fetch(ctx context.Context, company domain.CompanyDescriptor) (Payload, error) {
	query := url.Values{}
	query.Set("query", company.Name)
	query.Set("collection_ids", "organizations")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return Payload{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-cb-user-key", d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("crunchbase lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Payload{}, fmt.Errorf("crunchbase returned %s", resp.Status)
	}

	var decoded crunchbaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Payload{}, fmt.Errorf("decode crunchbase response: %w", err)
	}

	payload := Payload{}
	for _, e := range decoded.Entities {
		profileURL := "https://www.crunchbase.com/organization/" + e.Identifier.Permalink
		payload.Snippets = append(payload.Snippets, Snippet{
			URL:     profileURL,
			Title:   e.Identifier.Value,
			Content: e.ShortDescription,
		})
	}
	return payload, nil
}
