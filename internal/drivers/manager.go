package drivers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"VentureScanner/internal/domain"
)

// registration pairs a driver with its runtime gating.
type registration struct {
	driver  Driver
	enabled bool
	hasKey  bool
}

func (r registration) status() Status {
	switch {
	case !r.enabled:
		return StatusDisabled
	case r.driver.RequiresAPIKey() && !r.hasKey:
		return StatusMissingAPIKey
	default:
		return StatusIdle
	}
}

// Manager orchestrates all registered data-source drivers: it fans the
// enabled ones out in parallel per company and aggregates their tagged
// results, one entry per driver, failures included.
type Manager struct {
	order         []string
	registrations map[string]registration
	logger        *slog.Logger
}

// NewManager builds an empty manager.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		registrations: map[string]registration{},
		logger:        logger,
	}
}

// Register adds or replaces a driver. hasKey reports whether an API key
// is configured; drivers that need one but lack it never run.
func (m *Manager) Register(driver Driver, enabled, hasKey bool) {
	name := driver.Name()
	if _, exists := m.registrations[name]; !exists {
		m.order = append(m.order, name)
	}
	m.registrations[name] = registration{driver: driver, enabled: enabled, hasKey: hasKey}

	if m.logger != nil {
		m.logger.Info("registered driver",
			"driver", name, "status", string(m.registrations[name].status()))
	}
}

// Runnable returns the drivers that will actually execute.
func (m *Manager) Runnable() []Driver {
	out := make([]Driver, 0, len(m.order))
	for _, name := range m.order {
		reg := m.registrations[name]
		if reg.status() == StatusIdle {
			out = append(out, reg.driver)
		}
	}
	return out
}

// RunAll executes every runnable driver concurrently and waits for all
// of them. One result per runnable driver, in registration order; a
// failing source is recorded and never blocks the others.
func (m *Manager) RunAll(ctx context.Context, company domain.CompanyDescriptor) []Result {
	runnable := m.Runnable()
	if len(runnable) == 0 {
		if m.logger != nil {
			m.logger.Warn("no data-source drivers runnable", "company", company.Name)
		}
		return nil
	}

	results := make([]Result, len(runnable))
	var wg sync.WaitGroup
	for i, driver := range runnable {
		wg.Add(1)
		go func(i int, driver Driver) {
			defer wg.Done()
			results[i] = m.runOne(ctx, driver, company)
		}(i, driver)
	}
	wg.Wait()

	if m.logger != nil {
		successful := 0
		for _, r := range results {
			if r.Status == StatusCompleted {
				successful++
			}
		}
		m.logger.Info("source fan-out complete",
			"company", company.Name,
			"sources", len(results),
			"successful", successful,
			"failed", len(results)-successful)
	}

	return results
}

func (m *Manager) runOne(ctx context.Context, driver Driver, company domain.CompanyDescriptor) Result {
	result := Result{
		Source:    driver.Name(),
		StartedAt: time.Now(),
	}

	payload, err := driver.Fetch(ctx, company)
	result.CompletedAt = time.Now()

	if err != nil {
		result.Status = StatusFailed
		result.Error = err.Error()
		if m.logger != nil {
			m.logger.Warn("driver failed",
				"driver", driver.Name(), "company", company.Name, "error", err)
		}
		return result
	}

	result.Status = StatusCompleted
	result.Payload = payload
	return result
}
