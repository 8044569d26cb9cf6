// Package drive implements the drive-item upload orchestrator: batch uploads
// through backend-issued presigned URLs with per-file job tracking, progress
// callbacks and failure compensation, plus path-based item lookup.
package drive

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// JobStatus is the lifecycle state of one file's upload.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusUploading JobStatus = "uploading"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// terminal reports whether the status permits no further transitions.
func (s JobStatus) terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// UploadJob tracks one file's upload lifecycle. Jobs are created in pending
// state from the per-file descriptors the backend returns with the upload
// creation response, and advance monotonically:
// pending -> uploading -> completed | failed. Terminal states are final.
type UploadJob struct {
	// ID is the server-assigned upload job id.
	ID string

	// Name, Size and MimeType describe the file as declared to the server.
	Name     string
	Size     int64
	MimeType string

	// Path is the target path inside the drive.
	Path string

	// PresignedURL is the time-limited URL for the direct storage upload;
	// ExpiresAt is its server-enforced deadline.
	PresignedURL string
	ExpiresAt    time.Time

	// StatusURL and FailedURL are optional callback endpoints for reporting
	// the job's terminal state back to the API.
	StatusURL string
	FailedURL string

	// StartedAt is when the direct upload began.
	StartedAt time.Time

	mu     sync.Mutex
	status JobStatus
	err    error
}

// Status returns the job's current state.
func (j *UploadJob) Status() JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Err returns the failure that moved the job to StatusFailed, or nil.
func (j *UploadJob) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// transition advances the job to the given state. Transitions out of a
// terminal state are refused; the return value reports whether the
// transition took effect.
func (j *UploadJob) transition(to JobStatus) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.status.terminal() {
		return false
	}
	j.status = to
	return true
}

// fail marks the job failed and records the cause. A no-op once terminal.
func (j *UploadJob) fail(err error) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.status.terminal() {
		return false
	}
	j.status = StatusFailed
	j.err = err
	return true
}

// jobDescriptor is the wire shape of one entry in the upload creation
// response's data.files array.
type jobDescriptor struct {
	UploadJobID  string `json:"upload_job_id"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
	Path         string `json:"path"`
	PresignedURL string `json:"presigned_url"`
	ExpiresAt    string `json:"expires_at"`
	StatusURL    string `json:"status_url"`
	FailedURL    string `json:"failed_url"`
}

// uploadCreateData is the data payload of the upload creation response.
type uploadCreateData struct {
	Message      string          `json:"message"`
	Files        []jobDescriptor `json:"files"`
	Instructions string          `json:"instructions"`
}

// newJob materializes a pending UploadJob from its wire descriptor.
func newJob(desc jobDescriptor) (*UploadJob, error) {
	if desc.PresignedURL == "" {
		return nil, fmt.Errorf("upload descriptor for %q has no presigned URL", desc.Name)
	}
	job := &UploadJob{
		ID:           desc.UploadJobID,
		Name:         desc.Name,
		Size:         desc.Size,
		MimeType:     desc.MimeType,
		Path:         desc.Path,
		PresignedURL: desc.PresignedURL,
		StatusURL:    desc.StatusURL,
		FailedURL:    desc.FailedURL,
		status:       StatusPending,
	}
	if desc.ExpiresAt != "" {
		expires, err := time.Parse(time.RFC3339, desc.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("upload descriptor for %q has invalid expires_at %q: %w",
				desc.Name, desc.ExpiresAt, err)
		}
		job.ExpiresAt = expires
	}
	return job, nil
}

// decodeCreateData parses the upload creation response payload.
func decodeCreateData(raw json.RawMessage) (*uploadCreateData, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("upload response missing data")
	}
	var data uploadCreateData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if len(data.Files) == 0 {
		return nil, fmt.Errorf("upload response contains no file descriptors")
	}
	return &data, nil
}
