// Package jobstore tracks asynchronous optimization runs. The store is
// the single owner of job state; HTTP handlers and background runners
// mutate jobs only through Update, so reads never observe a job mid-write.
package jobstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

// ErrNotFound is returned for lookups of unknown or already-deleted jobs.
var ErrNotFound = errors.New("job not found")

// Job is the full record of one optimization run.
type Job struct {
	ID        string             `json:"job_id"`
	Status    optimizerun.Status `json:"status"`
	Phase     optimizerun.Phase  `json:"phase"`
	Progress  int                `json:"progress"`
	ProjectID string             `json:"project_id"`
	Stats     optimizerun.Stats  `json:"stats"`
	Error     string             `json:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	// ArchivePath is set once packaging succeeds. Not serialized; clients
	// download through the job ID, never a server path.
	ArchivePath string `json:"-"`

	// Cancel aborts the run's context. Nil once the run has finished.
	Cancel context.CancelFunc `json:"-"`
}

// Store is an in-memory job registry safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

func NewStore() *Store {
	return &Store{jobs: make(map[string]*Job)}
}

// Create registers a new job in the processing state and returns its ID.
func (s *Store) Create(projectID string, cancel context.CancelFunc) *Job {
	now := time.Now().UTC()
	job := &Job{
		ID:        uuid.NewString(),
		Status:    optimizerun.StatusProcessing,
		Phase:     optimizerun.PhaseAcquiring,
		ProjectID: projectID,
		CreatedAt: now,
		UpdatedAt: now,
		Cancel:    cancel,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
	return job
}

// Get returns a snapshot of the job. Mutating the returned value does not
// affect the store.
func (s *Store) Get(id string) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return *job, nil
}

// Update applies fn to the job under the store lock and bumps UpdatedAt.
func (s *Store) Update(id string, fn func(*Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	fn(job)
	job.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes the job, cancelling it first if it is still running. It
// returns the removed snapshot so the caller can clean up its artifacts.
func (s *Store) Delete(id string) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	if job.Cancel != nil {
		job.Cancel()
	}
	delete(s.jobs, id)
	return *job, nil
}

// List returns snapshots of all jobs, newest first.
func (s *Store) List() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	jobs := make([]Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, *job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs
}
