package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/zeebo/xxh3"
)

// JobStatus represents the state of an annotation job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusAnnotating JobStatus = "annotating"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
)

// Finished reports whether no more work will happen for the job.
func (s JobStatus) Finished() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusPartial
}

// Job tracks the annotation of every tree in one uploaded file.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	results  []TreeResult
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalTrees     int      `json:"total_trees"`
	TreesAnnotated int      `json:"trees_annotated"`
	TreesFailed    int      `json:"trees_failed"`
	Errors         []string `json:"errors"`
}

// TreeResult is the outcome for one tree of a job, in file order.
type TreeResult struct {
	Index  int     `json:"index"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// NewJob returns a queued job for an uploaded file.
func NewJob(filename string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:          generateULID(),
		Status:      StatusQueued,
		Phase:       "queued",
		Filename:    filename,
		ContentHash: ContentHashHex(data),
		CreatedAt:   now,
		UpdatedAt:   now,
		fileData:    data,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// ByHash returns the newest job for the same content that has not failed.
func (s *JobStore) ByHash(hash string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *Job
	for _, job := range s.jobs {
		snap := job.Snapshot()
		if snap.ContentHash != hash || snap.Status == StatusFailed {
			continue
		}
		if best == nil || job.CreatedAt.After(best.CreatedAt) {
			best = job
		}
	}
	return best
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records a job-level error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetTotalTrees records how many trees the file held and sizes the result
// list.
func (j *Job) SetTotalTrees(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalTrees = n
	j.results = make([]TreeResult, n)
	for i := range j.results {
		j.results[i].Index = i
	}
	j.UpdatedAt = time.Now()
}

// RecordTree stores the outcome for tree i.
func (j *Job) RecordTree(i int, res *Result, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if i < 0 || i >= len(j.results) {
		return
	}
	if err != nil {
		msg := fmt.Sprintf("tree %d: %s", i+1, err)
		j.results[i].Error = err.Error()
		j.errors = append(j.errors, msg)
		j.Progress.Errors = j.errors
		j.Progress.TreesFailed++
	} else {
		j.results[i].Result = res
		j.Progress.TreesAnnotated++
	}
	j.UpdatedAt = time.Now()
}

// Results returns a copy of the per-tree outcomes.
func (j *Job) Results() []TreeResult {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]TreeResult(nil), j.results...)
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// releaseFileData drops the upload once it has been parsed.
func (j *Job) releaseFileData() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = nil
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	ContentHash string    `json:"content_hash"`
	Progress    Progress  `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.Progress.Errors...)
	return JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		ContentHash: j.ContentHash,
		Progress: Progress{
			TotalTrees:     j.Progress.TotalTrees,
			TreesAnnotated: j.Progress.TreesAnnotated,
			TreesFailed:    j.Progress.TreesFailed,
			Errors:         errs,
		},
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// ContentHashHex returns the xxh3 hash of data as 16 hex digits.
func ContentHashHex(data []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(data))
}
