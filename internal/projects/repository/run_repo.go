package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/screenforge/screenforge-backend/internal/projects/domain"
)

const (
	runKeyPrefix          = "gen:run:"         // gen:run:{project_id} -> run JSON
	runLockPrefix         = "gen:lock:"        // gen:lock:{project_id} -> run_id while active
	runEventChannelPrefix = "gen:events:"      // pub/sub channel per project
	runTTL                = 7 * 24 * time.Hour // finished runs stay readable for a week
)

// updateRun saves and publishes a run only while the lock is free or held by that
// run, and releases the lock on a terminal status.
// KEYS: lock, run, channel. ARGV: run_id, payload, ttl_ms, terminal.
var updateRun = redis.NewScript(`
local holder = redis.call('GET', KEYS[1])
if holder and holder ~= ARGV[1] then
  return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
redis.call('PUBLISH', KEYS[3], ARGV[2])
if ARGV[4] == '1' and holder then
  redis.call('DEL', KEYS[1])
end
return 1
`)

// RunRepository keeps generation run state in Redis and publishes every update.
type RunRepository struct {
	client  *redis.Client
	lockTTL time.Duration
}

// NewRunRepository creates a RunRepository. lockTTL bounds how long a crashed run blocks new ones.
func NewRunRepository(client *redis.Client, lockTTL time.Duration) *RunRepository {
	if lockTTL <= 0 {
		lockTTL = 15 * time.Minute
	}
	return &RunRepository{client: client, lockTTL: lockTTL}
}

// Start records run as the project's active run.
// It fails with ErrRunInProgress while a previous run still holds the lock.
func (r *RunRepository) Start(ctx context.Context, run *domain.Run) error {
	ok, err := r.client.SetNX(ctx, r.lockKey(run.ProjectID), run.RunID, r.lockTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !ok {
		return domain.ErrRunInProgress
	}

	if err := r.save(ctx, run); err != nil {
		r.client.Del(ctx, r.lockKey(run.ProjectID))
		return err
	}
	return nil
}

// Get returns the latest run for the project.
func (r *RunRepository) Get(ctx context.Context, projectID string) (*domain.Run, error) {
	data, err := r.client.Get(ctx, r.runKey(projectID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var run domain.Run
	if err := json.Unmarshal([]byte(data), &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run data: %w", err)
	}
	return &run, nil
}

// Update stores run and publishes it. A terminal status releases the lock.
// A run whose lock has passed to a newer run gets ErrRunSuperseded and changes nothing.
func (r *RunRepository) Update(ctx context.Context, run *domain.Run) error {
	run.UpdatedAt = time.Now()
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run data: %w", err)
	}

	terminal := "0"
	if run.Terminal() {
		terminal = "1"
	}
	keys := []string{r.lockKey(run.ProjectID), r.runKey(run.ProjectID), r.eventChannel(run.ProjectID)}
	applied, err := updateRun.Run(ctx, r.client, keys, run.RunID, data, runTTL.Milliseconds(), terminal).Int()
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	if applied == 0 {
		return domain.ErrRunSuperseded
	}
	return nil
}

func (r *RunRepository) save(ctx context.Context, run *domain.Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run data: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.runKey(run.ProjectID), data, runTTL)
	pipe.Publish(ctx, r.eventChannel(run.ProjectID), data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// Watch subscribes to run updates for the project until ctx ends or the returned stop is called.
func (r *RunRepository) Watch(ctx context.Context, projectID string) (<-chan *domain.Run, func(), error) {
	sub := r.client.Subscribe(ctx, r.eventChannel(projectID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan *domain.Run, 16)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var run domain.Run
			if err := json.Unmarshal([]byte(msg.Payload), &run); err != nil {
				continue
			}
			select {
			case out <- &run:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() { _ = sub.Close() }, nil
}

func (r *RunRepository) runKey(projectID string) string {
	return runKeyPrefix + projectID
}

func (r *RunRepository) lockKey(projectID string) string {
	return runLockPrefix + projectID
}

func (r *RunRepository) eventChannel(projectID string) string {
	return runEventChannelPrefix + projectID
}
