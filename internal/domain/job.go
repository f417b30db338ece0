package domain

import "time"

// Status enumerates task and job lifecycle states.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var terminalStatuses = map[Status]bool{
	StatusCompleted: true,
	StatusFailed:    true,
}

// Terminal reports whether the status is a sink state.
func (s Status) Terminal() bool {
	return terminalStatuses[s]
}

// Task is one company's analysis run. It is owned by its parent job and
// mutated only by the single worker executing it; once a terminal status
// is set the task is never touched again.
type Task struct {
	Company     CompanyDescriptor
	Status      Status
	Result      *ScoreResult
	Error       string
	StartedAt   time.Time
	CompletedAt time.Time
}

// Job aggregates the fixed task list created from one descriptor batch.
type Job struct {
	ID          string
	Tasks       []*Task
	Status      Status
	CreatedAt   time.Time
	StartedAt   time.Time
	CompletedAt time.Time
}

// Progress is a derived snapshot of task states, never cached.
type Progress struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Failed     int     `json:"failed"`
	Processing int     `json:"processing"`
	Pending    int     `json:"pending"`
	Percent    float64 `json:"percent"`
}

// Progress recomputes counters by scanning the live task statuses.
func (j *Job) Progress() Progress {
	p := Progress{Total: len(j.Tasks)}
	for _, t := range j.Tasks {
		switch t.Status {
		case StatusCompleted:
			p.Completed++
		case StatusFailed:
			p.Failed++
		case StatusProcessing:
			p.Processing++
		}
	}
	p.Pending = p.Total - p.Completed - p.Failed - p.Processing
	if p.Total > 0 {
		p.Percent = float64(p.Completed) / float64(p.Total) * 100
	}
	return p
}
