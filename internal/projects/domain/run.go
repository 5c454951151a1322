package domain

import "time"

const (
	RunPending   = "pending"
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// Run is one execution of the generation pipeline for a project.
type Run struct {
	RunID     string    `json:"run_id"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
	Error     string    `json:"error,omitempty"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Run) Terminal() bool {
	return r.Status == RunCompleted || r.Status == RunFailed
}

// Progress is reported by the pipeline after each step.
type Progress struct {
	Message   string
	Completed int
	Total     int
}
