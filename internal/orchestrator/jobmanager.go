package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"VentureScanner/internal/domain"
	"VentureScanner/internal/ports"
)

// JobManager executes batches of company analyses with bounded
// parallelism. The semaphore is shared across jobs: it models one fixed
// external-API budget for the whole process.
type JobManager struct {
	analyzer ports.Analyzer
	repo     ports.AnalysisRepository
	exporter ports.Exporter
	limiter  *semaphore.Weighted
	logger   *slog.Logger
	now      func() time.Time

	// mu guards the registry and all job/task state transitions, so
	// SnapshotJob sees consistent state mid-run.
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

// NewJobManager wires the analysis protocol and optional sinks.
// maxConcurrent bounds simultaneously running analyses.
func NewJobManager(analyzer ports.Analyzer, repo ports.AnalysisRepository, exporter ports.Exporter, maxConcurrent int, logger *slog.Logger) *JobManager {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &JobManager{
		analyzer: analyzer,
		repo:     repo,
		exporter: exporter,
		limiter:  semaphore.NewWeighted(int64(maxConcurrent)),
		logger:   logger,
		now:      time.Now,
		jobs:     map[string]*domain.Job{},
	}
}

// CreateJob builds one pending task per descriptor, preserving input
// order, and stores the job without starting any work.
func (m *JobManager) CreateJob(descriptors []domain.CompanyDescriptor) (*domain.Job, error) {
	if len(descriptors) == 0 {
		return nil, fmt.Errorf("%w: empty company list", domain.ErrInvalidInput)
	}

	seen := map[string]struct{}{}
	tasks := make([]*domain.Task, 0, len(descriptors))
	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("descriptor %q: %w", d.Name, err)
		}
		if _, dup := seen[d.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate company %q", domain.ErrInvalidInput, d.Name)
		}
		seen[d.Name] = struct{}{}
		tasks = append(tasks, &domain.Task{Company: d, Status: domain.StatusPending})
	}

	job := &domain.Job{
		ID:        uuid.NewString(),
		Tasks:     tasks,
		Status:    domain.StatusPending,
		CreatedAt: m.now(),
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	m.info("created job", "job", job.ID, "companies", len(tasks))
	return job, nil
}

// GetJob looks a job up by id.
func (m *JobManager) GetJob(jobID string) (*domain.Job, error) {
	m.mu.RLock()
	job, ok := m.jobs[jobID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("job %s: %w", jobID, domain.ErrNotFound)
	}
	return job, nil
}

// SnapshotJob returns a consistent copy of the job, safe to read while
// workers are still mutating task state.
func (m *JobManager) SnapshotJob(jobID string) (*domain.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job %s: %w", jobID, domain.ErrNotFound)
	}

	snapshot := *job
	snapshot.Tasks = make([]*domain.Task, len(job.Tasks))
	for i, task := range job.Tasks {
		t := *task
		snapshot.Tasks[i] = &t
	}
	return &snapshot, nil
}

// ProcessJob runs every task in the job under the shared concurrency
// limiter and blocks until all of them reach a terminal state. A failing
// task never aborts its siblings; the job ends Completed only when every
// task completed. A job can be processed at most once: repeated calls
// fail with ErrInvalidInput instead of re-running terminal tasks.
func (m *JobManager) ProcessJob(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := m.claimJob(jobID)
	if err != nil {
		return nil, err
	}
	m.runJob(ctx, job)
	return job, nil
}

// StartJob claims the job and processes it in the background, detached
// from the caller's lifetime. The claim itself is synchronous, so a
// second start attempt fails immediately with ErrInvalidInput.
func (m *JobManager) StartJob(jobID string) error {
	job, err := m.claimJob(jobID)
	if err != nil {
		return err
	}
	go m.runJob(context.Background(), job)
	return nil
}

// claimJob transitions a Pending job to Processing. Terminal states are
// sinks and no task is ever re-run, so only a Pending job may be claimed.
func (m *JobManager) claimJob(jobID string) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job %s: %w", jobID, domain.ErrNotFound)
	}
	if job.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: job %s is %s, not pending", domain.ErrInvalidInput, job.ID, job.Status)
	}
	job.Status = domain.StatusProcessing
	job.StartedAt = m.now()
	return job, nil
}

func (m *JobManager) runJob(ctx context.Context, job *domain.Job) {
	m.info("processing job", "job", job.ID, "companies", len(job.Tasks))

	var wg sync.WaitGroup
	for _, task := range job.Tasks {
		wg.Add(1)
		go func(task *domain.Task) {
			defer wg.Done()
			m.runTask(ctx, task)
		}(task)
	}
	wg.Wait()

	m.mu.Lock()
	job.CompletedAt = m.now()
	job.Status = domain.StatusCompleted
	for _, task := range job.Tasks {
		if task.Status != domain.StatusCompleted {
			job.Status = domain.StatusFailed
			break
		}
	}
	m.mu.Unlock()

	progress := job.Progress()
	m.info("job finished",
		"job", job.ID,
		"status", string(job.Status),
		"completed", progress.Completed,
		"failed", progress.Failed)
}

// runTask executes one company analysis inside a limiter slot. The slot
// is released on every exit path; any error is recorded on the task and
// goes no further.
func (m *JobManager) runTask(ctx context.Context, task *domain.Task) {
	if err := m.limiter.Acquire(ctx, 1); err != nil {
		m.failTask(task, fmt.Errorf("acquire worker slot: %w", err))
		return
	}
	defer m.limiter.Release(1)

	m.mu.Lock()
	task.Status = domain.StatusProcessing
	task.StartedAt = m.now()
	m.mu.Unlock()

	result, err := m.analyzer.AnalyzeCompany(ctx, task.Company)
	if err != nil {
		m.failTask(task, err)
		return
	}

	if m.repo != nil {
		if err := m.repo.SaveResult(ctx, task.Company, result); err != nil {
			m.failTask(task, fmt.Errorf("persist result: %w", err))
			return
		}
	}

	if m.exporter != nil {
		if err := m.exporter.Export(ctx, result); err != nil {
			m.failTask(task, fmt.Errorf("export result: %w", err))
			return
		}
	}

	m.mu.Lock()
	task.Result = result
	task.Status = domain.StatusCompleted
	task.CompletedAt = m.now()
	m.mu.Unlock()
}

func (m *JobManager) failTask(task *domain.Task, err error) {
	m.mu.Lock()
	task.Error = err.Error()
	task.Status = domain.StatusFailed
	task.CompletedAt = m.now()
	if task.StartedAt.IsZero() {
		task.StartedAt = task.CompletedAt
	}
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Error("task failed", "company", task.Company.Name, "error", err)
	}
}

func (m *JobManager) info(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Info(msg, args...)
	}
}
