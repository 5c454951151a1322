package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenforge/screenforge-backend/internal/projects/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func newRun(projectID string) *domain.Run {
	return &domain.Run{
		RunID:     "run-1",
		ProjectID: projectID,
		UserID:    "ada@example.com",
		Status:    domain.RunPending,
		StartedAt: time.Now(),
	}
}

func TestRunRepository_StartAndGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRunRepository(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Start(ctx, newRun("p1")))
	assert.True(t, mr.Exists("gen:run:p1"))
	assert.True(t, mr.Exists("gen:lock:p1"))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunPending, got.Status)
	assert.Equal(t, "ada@example.com", got.UserID)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestRunRepository_SecondStartIsRejected(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRunRepository(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Start(ctx, newRun("p1")))
	assert.ErrorIs(t, repo.Start(ctx, newRun("p1")), domain.ErrRunInProgress)

	// other projects are independent
	require.NoError(t, repo.Start(ctx, newRun("p2")))
}

func TestRunRepository_TerminalUpdateReleasesLock(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRunRepository(client, time.Minute)
	ctx := context.Background()

	run := newRun("p1")
	require.NoError(t, repo.Start(ctx, run))

	run.Status = domain.RunRunning
	require.NoError(t, repo.Update(ctx, run))
	assert.True(t, mr.Exists("gen:lock:p1"))

	run.Status = domain.RunCompleted
	require.NoError(t, repo.Update(ctx, run))
	assert.False(t, mr.Exists("gen:lock:p1"))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, got.Status)

	require.NoError(t, repo.Start(ctx, newRun("p1")))
}

func TestRunRepository_LockExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRunRepository(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Start(ctx, newRun("p1")))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, repo.Start(ctx, newRun("p1")))
}

func TestRunRepository_StaleRunCannotTouchNewerRun(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRunRepository(client, time.Minute)
	ctx := context.Background()

	old := newRun("p1")
	require.NoError(t, repo.Start(ctx, old))
	mr.FastForward(2 * time.Minute)

	fresh := newRun("p1")
	fresh.RunID = "run-2"
	require.NoError(t, repo.Start(ctx, fresh))

	old.Status = domain.RunFailed
	err := repo.Update(ctx, old)
	assert.ErrorIs(t, err, domain.ErrRunSuperseded)

	holder, err := mr.Get("gen:lock:p1")
	require.NoError(t, err)
	assert.Equal(t, "run-2", holder)

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "run-2", got.RunID)
	assert.Equal(t, domain.RunPending, got.Status)
}

func TestRunRepository_UpdateAfterLockExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRunRepository(client, time.Minute)
	ctx := context.Background()

	run := newRun("p1")
	require.NoError(t, repo.Start(ctx, run))
	mr.FastForward(2 * time.Minute)

	run.Status = domain.RunCompleted
	require.NoError(t, repo.Update(ctx, run))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, got.Status)
}

func TestRunRepository_Watch(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRunRepository(client, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, stop, err := repo.Watch(ctx, "p1")
	require.NoError(t, err)
	defer stop()

	run := newRun("p1")
	require.NoError(t, repo.Start(ctx, run))
	run.Status = domain.RunRunning
	run.Message = "Generating screen 1 of 2: Home..."
	require.NoError(t, repo.Update(ctx, run))

	var seen []*domain.Run
	for len(seen) < 2 {
		select {
		case ev := <-events:
			seen = append(seen, ev)
		case <-ctx.Done():
			t.Fatal("timed out waiting for run events")
		}
	}
	assert.Equal(t, domain.RunPending, seen[0].Status)
	assert.Equal(t, "Generating screen 1 of 2: Home...", seen[1].Message)
}
