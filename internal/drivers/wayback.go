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

const defaultWaybackEndpoint = "https://archive.org/wayback/available"

// WaybackDriver looks up the closest historical snapshot of the company
// homepage in the Internet Archive. No API key required.
type WaybackDriver struct {
	endpoint string
	client   *http.Client
}

var _ Driver = (*WaybackDriver)(nil)

// NewWaybackDriver wires an HTTP client; endpoint override is for tests.
func NewWaybackDriver(client *http.Client, endpoint string) *WaybackDriver {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if endpoint == "" {
		endpoint = defaultWaybackEndpoint
	}
	return &WaybackDriver{endpoint: endpoint, client: client}
}

func (d *WaybackDriver) Name() string         { return "wayback" }
func (d *WaybackDriver) DisplayName() string  { return "Wayback Machine" }
func (d *WaybackDriver) RequiresAPIKey() bool { return false }

type waybackResponse struct {
	ArchivedSnapshots struct {
		Closest struct {
			Available bool   `json:"available"`
			URL       string `json:"url"`
			Timestamp string `json:"timestamp"`
		} `json:"closest"`
	} `json:"archived_snapshots"`
}

// Fetch queries the availability API for the homepage.
func (d *WaybackDriver) Fetch(ctx context.Context, company domain.CompanyDescriptor) (Payload, error) {
	if company.Homepage == "" {
		return Payload{
			Wayback: &domain.WaybackAnnotation{Note: "no homepage known, wayback lookup skipped"},
		}, nil
	}

	query := url.Values{}
	query.Set("url", company.Homepage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return Payload{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("wayback lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Payload{}, fmt.Errorf("wayback returned %s", resp.Status)
	}

	var decoded waybackResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Payload{}, fmt.Errorf("decode wayback response: %w", err)
	}

	closest := decoded.ArchivedSnapshots.Closest
	if !closest.Available {
		return Payload{
			Wayback: &domain.WaybackAnnotation{Note: "no archived snapshot found"},
		}, nil
	}

	snapshotURL := closest.URL
	snapshotTime := formatWaybackTimestamp(closest.Timestamp)
	return Payload{
		Wayback: &domain.WaybackAnnotation{
			SnapshotURL:      &snapshotURL,
			SnapshotDatetime: &snapshotTime,
			Note:             "closest snapshot from Internet Archive",
		},
	}, nil
}

// formatWaybackTimestamp converts the archive's YYYYMMDDhhmmss form to
// RFC 3339; unparseable values pass through unchanged.
func formatWaybackTimestamp(ts string) string {
	parsed, err := time.Parse("20060102150405", ts)
	if err != nil {
		return ts
	}
	return parsed.UTC().Format(time.RFC3339)
}
