package drive

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadJob_MonotonicTransitions(t *testing.T) {
	job := &UploadJob{status: StatusPending}

	assert.True(t, job.transition(StatusUploading))
	assert.Equal(t, StatusUploading, job.Status())

	assert.True(t, job.transition(StatusCompleted))
	assert.Equal(t, StatusCompleted, job.Status())

	// Terminal states are final.
	assert.False(t, job.transition(StatusUploading))
	assert.False(t, job.fail(fmt.Errorf("late failure")))
	assert.Equal(t, StatusCompleted, job.Status())
	assert.NoError(t, job.Err())
}

func TestUploadJob_FailRecordsCause(t *testing.T) {
	job := &UploadJob{status: StatusUploading}

	cause := fmt.Errorf("connection reset")
	assert.True(t, job.fail(cause))
	assert.Equal(t, StatusFailed, job.Status())
	assert.Equal(t, cause, job.Err())

	// A failed job cannot be resurrected.
	assert.False(t, job.transition(StatusCompleted))
	assert.Equal(t, StatusFailed, job.Status())
}

func TestNewJob(t *testing.T) {
	expires := time.Now().Add(15 * time.Minute).UTC().Truncate(time.Second)
	job, err := newJob(jobDescriptor{
		UploadJobID:  "job-1",
		Name:         "report.pdf",
		Size:         2048,
		MimeType:     "application/pdf",
		Path:         "/reports",
		PresignedURL: "https://storage.example.com/put/abc",
		ExpiresAt:    expires.Format(time.RFC3339),
		StatusURL:    "https://api.example.com/v1/jobs/job-1",
		FailedURL:    "https://api.example.com/v1/jobs/job-1/failed",
	})
	require.NoError(t, err)

	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, StatusPending, job.Status())
	assert.True(t, job.ExpiresAt.Equal(expires))
}

func TestNewJob_RequiresPresignedURL(t *testing.T) {
	_, err := newJob(jobDescriptor{UploadJobID: "job-1", Name: "a.txt"})
	assert.Error(t, err)
}

func TestNewJob_RejectsBadExpiry(t *testing.T) {
	_, err := newJob(jobDescriptor{
		UploadJobID:  "job-1",
		Name:         "a.txt",
		PresignedURL: "https://storage.example.com/put/abc",
		ExpiresAt:    "tomorrow-ish",
	})
	assert.Error(t, err)
}

func TestDecodeCreateData(t *testing.T) {
	raw := json.RawMessage(`{
		"message": "3 upload jobs created",
		"files": [{"upload_job_id": "j1", "name": "a.txt", "presigned_url": "https://s/1"}],
		"instructions": "PUT each file to its presigned URL"
	}`)

	data, err := decodeCreateData(raw)
	require.NoError(t, err)
	assert.Equal(t, "3 upload jobs created", data.Message)
	assert.Len(t, data.Files, 1)
	assert.Equal(t, "PUT each file to its presigned URL", data.Instructions)
}

func TestDecodeCreateData_Invalid(t *testing.T) {
	_, err := decodeCreateData(nil)
	assert.Error(t, err)

	_, err = decodeCreateData(json.RawMessage(`{"files": []}`))
	assert.Error(t, err)
}
