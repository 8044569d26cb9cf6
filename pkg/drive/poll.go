package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// errJobInFlight signals the poll loop to keep waiting.
var errJobInFlight = fmt.Errorf("upload job still in flight")

// WaitForJob polls the job's status endpoint until the server reports a
// terminal state, updating the local job to match. It is intended for jobs
// whose direct upload is performed out of band (for example by a browser the
// presigned URL was handed to); jobs driven by UploadFiles settle on their
// own.
func (u *Uploader) WaitForJob(ctx context.Context, job *UploadJob) error {
	if job.StatusURL == "" {
		return fmt.Errorf("atrium: job %s has no status URL", job.ID)
	}
	if job.Status().terminal() {
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 10 * time.Second
	policy.MaxElapsedTime = 0 // rely on ctx and the URL expiry

	operation := func() error {
		status, err := u.fetchStatus(ctx, job)
		if err != nil {
			return backoff.Permanent(err)
		}
		switch status {
		case StatusCompleted:
			job.transition(StatusCompleted)
			return nil
		case StatusFailed:
			job.fail(fmt.Errorf("server reported upload job %s as failed", job.ID))
			return nil
		default:
			return errJobInFlight
		}
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return fmt.Errorf("atrium: waiting for job %s: %w", job.ID, err)
	}
	return nil
}

func (u *Uploader) fetchStatus(ctx context.Context, job *UploadJob) (JobStatus, error) {
	env, err := u.client.DoURL(ctx, http.MethodGet, job.StatusURL, nil)
	if err != nil {
		return "", err
	}
	var data struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", fmt.Errorf("failed to decode job status: %w", err)
	}
	return JobStatus(data.Status), nil
}
