package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenforge/screenforge-backend/internal/projects/domain"
	"github.com/screenforge/screenforge-backend/internal/projects/repository"
)

type pipelineFunc func(ctx context.Context, userID, projectID string, report func(domain.Progress)) error

func (f pipelineFunc) GenerateProject(ctx context.Context, userID, projectID string, report func(domain.Progress)) error {
	return f(ctx, userID, projectID, report)
}

func newRunStore(t *testing.T) *repository.RunRepository {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return repository.NewRunRepository(client, time.Minute)
}

func TestRunService_CompletesAndRecordsProgress(t *testing.T) {
	ctx := context.Background()
	runs := newRunStore(t)
	pipeline := pipelineFunc(func(ctx context.Context, userID, projectID string, report func(domain.Progress)) error {
		report(domain.Progress{Message: "Generating screen 1 of 1: Home...", Total: 1})
		report(domain.Progress{Message: "Generated 1 of 1 screens", Completed: 1, Total: 1})
		return nil
	})
	svc := NewRunService(newMemProjects(baseProject()), runs, pipeline, time.Minute)

	run, err := svc.Start(ctx, owner, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunPending, run.Status)
	assert.NotEmpty(t, run.RunID)

	svc.Wait()

	got, err := svc.Get(ctx, owner, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, got.Status)
	assert.Equal(t, "Generated 1 of 1 screens", got.Message)
	assert.Equal(t, 1, got.Completed)

	// lock released, a new run can start
	_, err = svc.Start(ctx, owner, "p1")
	require.NoError(t, err)
	svc.Wait()
}

func TestRunService_RejectsConcurrentRun(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	pipeline := pipelineFunc(func(ctx context.Context, _, _ string, _ func(domain.Progress)) error {
		<-release
		return nil
	})
	svc := NewRunService(newMemProjects(baseProject()), newRunStore(t), pipeline, time.Minute)

	_, err := svc.Start(ctx, owner, "p1")
	require.NoError(t, err)

	_, err = svc.Start(ctx, owner, "p1")
	assert.ErrorIs(t, err, domain.ErrRunInProgress)

	close(release)
	svc.Wait()
}

func TestRunService_Failure(t *testing.T) {
	ctx := context.Background()
	pipeline := pipelineFunc(func(context.Context, string, string, func(domain.Progress)) error {
		return errors.New("invalid JSON response from AI")
	})
	svc := NewRunService(newMemProjects(baseProject()), newRunStore(t), pipeline, time.Minute)

	_, err := svc.Start(ctx, owner, "p1")
	require.NoError(t, err)
	svc.Wait()

	got, err := svc.Get(ctx, owner, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunFailed, got.Status)
	assert.Contains(t, got.Error, "invalid JSON")
}

func TestRunService_Ownership(t *testing.T) {
	ctx := context.Background()
	pipeline := pipelineFunc(func(context.Context, string, string, func(domain.Progress)) error { return nil })
	svc := NewRunService(newMemProjects(baseProject()), newRunStore(t), pipeline, time.Minute)

	_, err := svc.Start(ctx, "eve@example.com", "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Start(ctx, owner, "p1")
	require.NoError(t, err)
	svc.Wait()

	_, err = svc.Get(ctx, "eve@example.com", "p1")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestRunService_Watch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	release := make(chan struct{})
	pipeline := pipelineFunc(func(ctx context.Context, _, _ string, report func(domain.Progress)) error {
		<-release
		report(domain.Progress{Message: "step", Total: 1})
		return nil
	})
	svc := NewRunService(newMemProjects(baseProject()), newRunStore(t), pipeline, time.Minute)

	_, err := svc.Start(ctx, owner, "p1")
	require.NoError(t, err)

	initial, events, stop, err := svc.Watch(ctx, owner, "p1")
	require.NoError(t, err)
	defer stop()
	assert.Contains(t, []string{domain.RunPending, domain.RunRunning}, initial.Status)

	close(release)
	for {
		select {
		case ev := <-events:
			if ev.Terminal() {
				assert.Equal(t, domain.RunCompleted, ev.Status)
				svc.Wait()
				return
			}
		case <-ctx.Done():
			t.Fatal("no terminal event")
		}
	}
}
