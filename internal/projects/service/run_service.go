package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/screenforge/screenforge-backend/internal/logging"
	"github.com/screenforge/screenforge-backend/internal/projects/domain"
)

// Pipeline is implemented by GenerationService.
type Pipeline interface {
	GenerateProject(ctx context.Context, userID, projectID string, report func(domain.Progress)) error
}

// RunService executes the generation pipeline in the background and tracks it as a Run.
type RunService struct {
	projects ProjectStore
	runs     RunStore
	pipeline Pipeline
	timeout  time.Duration

	wg sync.WaitGroup
}

func NewRunService(projects ProjectStore, runs RunStore, pipeline Pipeline, timeout time.Duration) *RunService {
	if timeout <= 0 {
		timeout = 15 * time.Minute
	}
	return &RunService{projects: projects, runs: runs, pipeline: pipeline, timeout: timeout}
}

// Start queues a pipeline run for the project. Only one run per project may be active.
func (s *RunService) Start(ctx context.Context, userID, projectID string) (*domain.Run, error) {
	if _, err := s.projects.Get(ctx, userID, projectID); err != nil {
		return nil, err
	}

	now := time.Now()
	run := &domain.Run{
		RunID:     uuid.NewString(),
		ProjectID: projectID,
		UserID:    userID,
		Status:    domain.RunPending,
		Message:   "Queued",
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := s.runs.Start(ctx, run); err != nil {
		return nil, err
	}
	snapshot := *run

	base := logging.WithRequestID(context.Background(), logging.RequestID(ctx))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.execute(base, run)
	}()

	return &snapshot, nil
}

func (s *RunService) execute(base context.Context, run *domain.Run) {
	logger := logging.New(base)
	ctx, cancel := context.WithTimeout(base, s.timeout)
	defer cancel()

	run.Status = domain.RunRunning
	run.Message = "Starting generation..."
	if err := s.runs.Update(ctx, run); err != nil {
		logger.Errorf("generation_run", "run_id=%s update failed: %v", run.RunID, err)
	}

	err := s.pipeline.GenerateProject(ctx, run.UserID, run.ProjectID, func(p domain.Progress) {
		run.Message = p.Message
		run.Completed = p.Completed
		run.Total = p.Total
		if err := s.runs.Update(ctx, run); err != nil {
			logger.Errorf("generation_run", "run_id=%s progress update failed: %v", run.RunID, err)
		}
	})

	if err != nil {
		run.Status = domain.RunFailed
		run.Error = err.Error()
		run.Message = "Generation failed"
		logger.Errorf("generation_run", "run_id=%s project_id=%s error=%v", run.RunID, run.ProjectID, err)
	} else {
		run.Status = domain.RunCompleted
	}

	// the run context may already be expired
	fctx, fcancel := context.WithTimeout(base, 5*time.Second)
	defer fcancel()
	if err := s.runs.Update(fctx, run); err != nil {
		logger.Errorf("generation_run", "run_id=%s final update failed: %v", run.RunID, err)
	}
}

// Get returns the latest run for a project owned by userID.
func (s *RunService) Get(ctx context.Context, userID, projectID string) (*domain.Run, error) {
	run, err := s.runs.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if run.UserID != userID {
		return nil, domain.ErrRunNotFound
	}
	return run, nil
}

// Watch returns the current run and a stream of its later updates.
func (s *RunService) Watch(ctx context.Context, userID, projectID string) (*domain.Run, <-chan *domain.Run, func(), error) {
	events, stop, err := s.runs.Watch(ctx, projectID)
	if err != nil {
		return nil, nil, nil, err
	}
	run, err := s.Get(ctx, userID, projectID)
	if err != nil {
		stop()
		return nil, nil, nil, err
	}
	return run, events, stop, nil
}

// Wait blocks until all background runs have finished.
func (s *RunService) Wait() {
	s.wg.Wait()
}
