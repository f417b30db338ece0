package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"VentureScanner/internal/config"
	"VentureScanner/internal/domain"
)

const maxTextLength = 50000

// Scraper fetches pages and extracts readable text with goquery.
type Scraper struct {
	client     *http.Client
	maxSources int
}

// New wires an HTTP client; maxSources caps how many URLs one company
// research run may fetch.
func New(cfg config.ScraperConfig, client *http.Client) *Scraper {
	if client == nil {
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	maxSources := cfg.MaxSources
	if maxSources <= 0 {
		maxSources = 5
	}
	return &Scraper{client: client, maxSources: maxSources}
}

// Scrape fetches one URL and returns a tagged result; failures are
// recorded on the result, never returned as an error.
func (s *Scraper) Scrape(ctx context.Context, url string) domain.SourceResult {
	result := domain.SourceResult{URL: url}

	doc, err := s.fetchDocument(ctx, url)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Title = strings.TrimSpace(doc.Find("title").First().Text())
	result.Text = extractText(doc)
	result.Success = true
	return result
}

// ScrapeAll fetches up to maxSources URLs concurrently. Every URL gets
// an entry in the returned slice, failed ones included, preserving input
// order.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string) []domain.SourceResult {
	if len(urls) > s.maxSources {
		urls = urls[:s.maxSources]
	}

	results := make([]domain.SourceResult, len(urls))
	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			results[i] = s.Scrape(ctx, url)
		}(i, url)
	}
	wg.Wait()

	return results
}

func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "VentureScanner/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func extractText(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer").Remove()

	root := doc.Find("main").First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}

	text := strings.TrimSpace(root.Text())
	text = collapseWhitespace(text)
	if len(text) > maxTextLength {
		text = text[:maxTextLength]
	}
	return text
}

func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
