package drive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atriumhq/atrium-go/pkg/config"
	"github.com/atriumhq/atrium-go/pkg/transport"
)

func pollUploader(t *testing.T, handler http.HandlerFunc) (*Uploader, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := config.NewStore(config.Config{
		APIURL:  server.URL,
		Version: "1",
		APIKey:  "test-key",
	})
	return NewUploader(transport.NewClient(store), "/drives/d1/uploads"), server
}

func TestWaitForJob_CompletesAfterPolling(t *testing.T) {
	var polls int32
	u, server := pollUploader(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&polls, 1)
		status := "uploading"
		if n >= 3 {
			status = "completed"
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"status": "` + status + `"}}`))
	})

	job := &UploadJob{
		ID:        "job-1",
		StatusURL: server.URL + "/v1/uploads/job-1/status",
		status:    StatusPending,
	}
	require.NoError(t, u.WaitForJob(context.Background(), job))
	assert.Equal(t, StatusCompleted, job.Status())
	assert.GreaterOrEqual(t, atomic.LoadInt32(&polls), int32(3))
}

func TestWaitForJob_ServerReportsFailure(t *testing.T) {
	u, server := pollUploader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"status": "failed"}}`))
	})

	job := &UploadJob{
		ID:        "job-1",
		StatusURL: server.URL + "/v1/uploads/job-1/status",
		status:    StatusPending,
	}
	require.NoError(t, u.WaitForJob(context.Background(), job))
	assert.Equal(t, StatusFailed, job.Status())
	assert.Error(t, job.Err())
}

func TestWaitForJob_RequiresStatusURL(t *testing.T) {
	u, _ := pollUploader(t, func(w http.ResponseWriter, r *http.Request) {})

	err := u.WaitForJob(context.Background(), &UploadJob{ID: "job-1", status: StatusPending})
	assert.Error(t, err)
}

func TestWaitForJob_AlreadyTerminal(t *testing.T) {
	var polls int32
	u, server := pollUploader(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&polls, 1)
	})

	job := &UploadJob{
		ID:        "job-1",
		StatusURL: server.URL + "/v1/uploads/job-1/status",
		status:    StatusCompleted,
	}
	require.NoError(t, u.WaitForJob(context.Background(), job))
	assert.Zero(t, atomic.LoadInt32(&polls))
}
