package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/docedit/internal/editor"
)

// JobStatus represents the state of a batch edit job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusParsing   JobStatus = "parsing"
	StatusEditing   JobStatus = "editing"
	StatusRendering JobStatus = "rendering"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusPartial   JobStatus = "partial"
)

// Job tracks the state of one batch edit: a document plus an ordered
// op list, applied off the request path.
type Job struct {
	mu sync.Mutex

	ID       string `json:"job_id"`
	Filename string `json:"filename"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	// OutputFormat selects the rendered result: "markdown" or "ooxml".
	OutputFormat string `json:"output_format"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	ops      []editor.Op
	result   []byte
	errors   []string
}

// Progress tracks batch edit progress.
type Progress struct {
	BlocksParsed int      `json:"blocks_parsed"`
	OpsApplied   int      `json:"ops_applied"`
	OpsTotal     int      `json:"ops_total"`
	Changed      int      `json:"changed"`
	Errors       []string `json:"errors"`
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

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
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

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetInput sets the raw file bytes and the ops to run against them.
func (j *Job) SetInput(data []byte, ops []editor.Op) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
	j.ops = ops
	j.Progress.OpsTotal = len(ops)
}

// RecordParse notes how many blocks the parser produced.
func (j *Job) RecordParse(blocks int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.BlocksParsed = blocks
	j.UpdatedAt = time.Now()
}

// RecordOp notes one applied op and its change count.
func (j *Job) RecordOp(changed int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.OpsApplied++
	j.Progress.Changed += changed
	j.UpdatedAt = time.Now()
}

// SetResult stores the rendered output.
func (j *Job) SetResult(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = data
	j.UpdatedAt = time.Now()
}

// Result returns the rendered output, nil until the job completes.
func (j *Job) Result() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID           string    `json:"job_id"`
	Filename     string    `json:"filename"`
	Status       JobStatus `json:"status"`
	Phase        string    `json:"phase"`
	OutputFormat string    `json:"output_format"`
	Progress     Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:           j.ID,
		Filename:     j.Filename,
		Status:       j.Status,
		Phase:        j.Phase,
		OutputFormat: j.OutputFormat,
		Progress: Progress{
			BlocksParsed: j.Progress.BlocksParsed,
			OpsApplied:   j.Progress.OpsApplied,
			OpsTotal:     j.Progress.OpsTotal,
			Changed:      j.Progress.Changed,
			Errors:       errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
