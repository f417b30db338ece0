package drivers

import (
	"context"
	"time"

	"VentureScanner/internal/domain"
)

// Status tags the outcome of one driver execution.
type Status string

const (
	StatusIdle          Status = "idle"
	StatusCompleted     Status = "completed"
	StatusFailed        Status = "failed"
	StatusDisabled      Status = "disabled"
	StatusMissingAPIKey Status = "missing_api_key"
)

// Snippet is one piece of content a source found for the company.
type Snippet struct {
	URL     string
	Title   string
	Content string
}

// Payload is what a driver delivers on success.
type Payload struct {
	Snippets []Snippet
	// URLs worth scraping in full, beyond what the snippets carry.
	URLs []string
	// Wayback annotation, set only by the wayback source.
	Wayback *domain.WaybackAnnotation
}

// Result is the tagged outcome of one driver run. A failed driver keeps
// its error here; it never invalidates sibling results.
type Result struct {
	Source      string
	Status      Status
	Payload     Payload
	Error       string
	StartedAt   time.Time
	CompletedAt time.Time
}

// Duration reports how long the driver ran.
func (r Result) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// Driver is a single external data source (Wayback, Tavily, ...).
type Driver interface {
	Name() string
	DisplayName() string
	RequiresAPIKey() bool
	Fetch(ctx context.Context, company domain.CompanyDescriptor) (Payload, error)
}
