package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"VentureScanner/internal/domain"
	"VentureScanner/internal/orchestrator"
	"VentureScanner/internal/ports"
)

// JobHandler serves job creation, processing and progress endpoints.
type JobHandler struct {
	manager *orchestrator.JobManager
	repo    ports.AnalysisRepository
	logger  *slog.Logger
}

// NewJobHandler creates a new JobHandler. repo may be nil when
// persistence is disabled; the results endpoint then always 404s.
func NewJobHandler(manager *orchestrator.JobManager, repo ports.AnalysisRepository, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		manager: manager,
		repo:    repo,
		logger:  logger.With("component", "api"),
	}
}

// Register mounts the handler routes on the echo group.
func (h *JobHandler) Register(g *echo.Group) {
	g.POST("/jobs", h.CreateJob)
	g.POST("/jobs/:id/process", h.ProcessJob)
	g.GET("/jobs/:id", h.GetJob)
	g.GET("/results/:runID", h.GetResult)
}

type companyRequest struct {
	Name     string `json:"name" validate:"required"`
	Homepage string `json:"homepage" validate:"omitempty,url"`
}

type createJobRequest struct {
	Companies []companyRequest `json:"companies" validate:"required,min=1,dive"`
}

type taskView struct {
	Company     string              `json:"company"`
	Status      domain.Status       `json:"status"`
	Error       string              `json:"error,omitempty"`
	Result      *domain.ScoreResult `json:"result,omitempty"`
	StartedAt   *time.Time          `json:"started_at,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
}

type jobView struct {
	ID        string          `json:"id"`
	Status    domain.Status   `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	Progress  domain.Progress `json:"progress"`
	Tasks     []taskView      `json:"tasks"`
}

func newJobView(job *domain.Job, includeResults bool) jobView {
	view := jobView{
		ID:        job.ID,
		Status:    job.Status,
		CreatedAt: job.CreatedAt,
		Progress:  job.Progress(),
		Tasks:     make([]taskView, 0, len(job.Tasks)),
	}
	for _, task := range job.Tasks {
		tv := taskView{
			Company: task.Company.Name,
			Status:  task.Status,
			Error:   task.Error,
		}
		if includeResults {
			tv.Result = task.Result
		}
		if !task.StartedAt.IsZero() {
			t := task.StartedAt
			tv.StartedAt = &t
		}
		if !task.CompletedAt.IsZero() {
			t := task.CompletedAt
			tv.CompletedAt = &t
		}
		view.Tasks = append(view.Tasks, tv)
	}
	return view
}

// CreateJob registers a batch of companies for analysis without
// starting any work.
func (h *JobHandler) CreateJob(c echo.Context) error {
	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	descriptors := make([]domain.CompanyDescriptor, 0, len(req.Companies))
	for _, company := range req.Companies {
		descriptors = append(descriptors, domain.CompanyDescriptor{
			Name:     company.Name,
			Homepage: company.Homepage,
		})
	}

	job, err := h.manager.CreateJob(descriptors)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, newJobView(job, false))
}

// ProcessJob starts processing the job asynchronously; the analysis
// outlives the HTTP call and progress is polled via GetJob.
func (h *JobHandler) ProcessJob(c echo.Context) error {
	jobID := c.Param("id")
	if err := h.manager.StartJob(jobID); err != nil {
		// The claim is atomic, so a non-pending job is a conflict, not
		// a malformed request.
		if errors.Is(err, domain.ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusConflict, "job already started")
		}
		return err
	}

	h.logger.Info("job processing started", "job", jobID)

	return JSON(c, http.StatusAccepted, map[string]string{
		"id":     jobID,
		"status": string(domain.StatusProcessing),
	})
}

// GetJob returns the job with derived progress and per-task results.
func (h *JobHandler) GetJob(c echo.Context) error {
	job, err := h.manager.SnapshotJob(c.Param("id"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, newJobView(job, job.Status.Terminal()))
}

// GetResult returns a persisted analysis by its run id.
func (h *JobHandler) GetResult(c echo.Context) error {
	if h.repo == nil {
		return domain.ErrNotFound
	}
	result, err := h.repo.GetResult(c.Request().Context(), c.Param("runID"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, result)
}
