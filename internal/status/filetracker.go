package status

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/Prajanya-g/videoSumarizer/internal/errs"
	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

// FileTracker is the default job-status collaborator for the CLI: it
// mirrors each transition into status.json in the job directory.
// Deployments with a real job store supply their own ports.Tracker.
type FileTracker struct {
	dir func(jobID string) string
}

func NewFileTracker(jobDir func(jobID string) string) *FileTracker {
	return &FileTracker{dir: jobDir}
}

type statusFile struct {
	JobID     string          `json:"job_id"`
	Status    types.JobStatus `json:"status"`
	Error     string          `json:"error,omitempty"`
	UpdatedAt string          `json:"updated_at"`
}

func (t *FileTracker) Update(jobID string, st types.JobStatus, errMsg string) error {
	dir := t.dir(jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &errs.ResourceError{Path: dir, Err: err}
	}
	path := filepath.Join(dir, "status.json")
	b, err := json.MarshalIndent(statusFile{
		JobID:     jobID,
		Status:    st,
		Error:     errMsg,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return &errs.ResourceError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return &errs.ResourceError{Path: path, Err: err}
	}
	return nil
}
