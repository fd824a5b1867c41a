// Package jobs runs render work asynchronously: a submitted job is queued,
// picked up by a bounded worker pool, and its result is held in memory
// until a TTL expires. The HTTP API creates a job, polls its status and
// fetches the finished image; nothing is persisted.
package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrQueueFull is returned when the render backlog is at capacity.
	ErrQueueFull = errors.New("render queue is full")

	// ErrClosed is returned for submissions after shutdown began.
	ErrClosed = errors.New("job manager is closed")
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Work produces the job result. It must honor ctx cancellation and may
// report coarse progress in percent through the callback.
type Work func(ctx context.Context, progress func(int)) (data []byte, contentType string, err error)

// Job is a point-in-time snapshot of a job's state.
type Job struct {
	ID          string
	Status      Status
	Progress    int
	Error       string
	ContentType string
	CreatedAt   time.Time
}

// job is the mutable record behind a snapshot. All fields except the
// immutable ones are guarded by the manager mutex.
type job struct {
	Job
	work   Work
	data   []byte
	doneAt time.Time
}

// Manager owns the queue, the worker pool and the TTL janitor.
type Manager struct {
	mu     sync.RWMutex
	jobs   map[string]*job
	queue  chan *job
	closed bool

	ttl    time.Duration
	log    zerolog.Logger
	group  *errgroup.Group
	cancel context.CancelFunc
}

// NewManager starts workers goroutines plus the eviction janitor. Close
// must be called to release them.
func NewManager(workers int, ttl time.Duration, log zerolog.Logger) *Manager {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	m := &Manager{
		jobs:   make(map[string]*job),
		queue:  make(chan *job, maxQueued),
		ttl:    ttl,
		log:    log,
		group:  group,
		cancel: cancel,
	}

	for range workers {
		group.Go(func() error {
			m.run(ctx)
			return nil
		})
	}
	group.Go(func() error {
		m.evictLoop(ctx)
		return nil
	})
	return m
}

// Submit queues work and returns the pending job snapshot.
func (m *Manager) Submit(work Work) (Job, error) {
	j := &job{
		Job: Job{
			ID:        uuid.New().String(),
			Status:    StatusPending,
			CreatedAt: time.Now(),
		},
		work: work,
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return Job{}, ErrClosed
	}
	select {
	case m.queue <- j:
		m.jobs[j.ID] = j
	default:
		m.mu.Unlock()
		return Job{}, ErrQueueFull
	}
	snapshot := j.Job
	m.mu.Unlock()

	m.log.Debug().Str("job_id", j.ID).Msg("render job queued")
	return snapshot, nil
}

// Get returns a snapshot of the job.
func (m *Manager) Get(id string) (Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}
	return j.Job, true
}

// Image returns the result bytes and content type of a completed job.
// The second return is false when the job is unknown or not completed.
func (m *Manager) Image(id string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok || j.Status != StatusCompleted {
		return nil, "", false
	}
	return j.data, j.ContentType, true
}

// Len reports the number of tracked jobs, finished ones included.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.jobs)
}

// Close stops accepting work, cancels running jobs and waits for the
// workers and the janitor to exit.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	m.cancel()
	_ = m.group.Wait()
}

// run is one worker: it drains the queue until cancellation.
func (m *Manager) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-m.queue:
			m.process(ctx, j)
		}
	}
}

func (m *Manager) process(ctx context.Context, j *job) {
	m.setStatus(j, StatusProcessing, nil, "", "")

	progress := func(p int) {
		m.mu.Lock()
		j.Progress = min(max(p, 0), maxProgress)
		m.mu.Unlock()
	}

	start := time.Now()
	data, contentType, err := j.work(ctx, progress)
	if err != nil {
		m.log.Warn().Str("job_id", j.ID).Err(err).Msg("render job failed")
		m.setStatus(j, StatusFailed, nil, "", err.Error())
		return
	}

	m.log.Info().
		Str("job_id", j.ID).
		Int("bytes", len(data)).
		Dur("took", time.Since(start)).
		Msg("render job completed")
	m.setStatus(j, StatusCompleted, data, contentType, "")
}

func (m *Manager) setStatus(j *job, s Status, data []byte, contentType, errMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j.Status = s
	j.Error = errMsg
	switch s {
	case StatusCompleted:
		j.Progress = maxProgress
		j.data = data
		j.ContentType = contentType
		j.doneAt = time.Now()
	case StatusFailed:
		j.doneAt = time.Now()
	}
}

// evictLoop drops finished jobs once they outlive the TTL.
func (m *Manager) evictLoop(ctx context.Context) {
	tick := m.ttl / evictionsPerTTL
	if tick <= 0 {
		tick = time.Second
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.evict(now)
		}
	}
}

func (m *Manager) evict(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, j := range m.jobs {
		if !j.doneAt.IsZero() && now.Sub(j.doneAt) > m.ttl {
			delete(m.jobs, id)
		}
	}
}
