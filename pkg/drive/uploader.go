package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/atriumhq/atrium-go/pkg/transport"
)

// ProgressFunc receives upload progress for one job as percent complete in
// the range (0, 100].
type ProgressFunc func(job *UploadJob, percent float64)

// UploadOptions carries optional batch metadata and execution knobs for
// UploadFiles.
type UploadOptions struct {
	// Path is the target directory inside the drive.
	Path string

	// RelativePaths preserves directory structure during reconstruction;
	// when set it must carry one entry per valid file in the batch.
	RelativePaths []string

	// PreserveStructure asks the server to recreate the directory layout
	// described by RelativePaths.
	PreserveStructure bool

	// Progress is invoked as each job's direct upload advances.
	Progress ProgressFunc

	// MaxConcurrent caps the number of simultaneous direct uploads.
	// Zero means no cap.
	MaxConcurrent int
}

func (o *UploadOptions) validate(validFiles int) error {
	if o == nil {
		return nil
	}
	if err := validation.ValidateStruct(o,
		validation.Field(&o.MaxConcurrent, validation.Min(0)),
	); err != nil {
		return err
	}
	if len(o.RelativePaths) > 0 && len(o.RelativePaths) != validFiles {
		return fmt.Errorf("relative paths count (%d) does not match file count (%d)",
			len(o.RelativePaths), validFiles)
	}
	return nil
}

// UploadResult is the aggregate outcome of one batch. Callers inspect the
// individual jobs to learn which files succeeded; the batch itself succeeds
// as long as the creation request did.
type UploadResult struct {
	// Message is the server's human-readable summary.
	Message string

	// Jobs holds one entry per uploaded file, carrying its final status.
	Jobs []*UploadJob

	// Skipped lists the names of files excluded from the batch for
	// reporting a non-positive size.
	Skipped []string

	// Instructions are server-provided follow-up instructions, if any.
	Instructions string
}

// Err summarizes the failed jobs as a single error, or nil when every job
// completed. It exists for callers that treat any partial failure as fatal;
// UploadFiles itself never fails because individual jobs did.
func (r *UploadResult) Err() error {
	var result *multierror.Error
	for _, job := range r.Jobs {
		if job.Status() == StatusFailed {
			result = multierror.Append(result,
				fmt.Errorf("upload of %q failed: %w", job.Name, job.Err()))
		}
	}
	return result.ErrorOrNil()
}

// Uploader coordinates batch uploads into one drive. Files are declared to
// the API with a single multipart request; the returned presigned URLs are
// then exercised with one direct storage upload per file, each independently
// tracked so partial failures never abort the batch.
type Uploader struct {
	client  *transport.Client
	path    string
	storage *http.Client
	logger  hclog.Logger
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithUploaderLogger sets the uploader's logger.
func WithUploaderLogger(logger hclog.Logger) UploaderOption {
	return func(u *Uploader) { u.logger = logger }
}

// WithStorageClient overrides the HTTP client used for direct storage
// uploads. Presigned requests carry their credentials in the URL, so this
// client must not inject Authorization headers.
func WithStorageClient(hc *http.Client) UploaderOption {
	return func(u *Uploader) { u.storage = hc }
}

// NewUploader creates an uploader posting batches to path (a drive's uploads
// collection, e.g. "/drives/abc/uploads").
func NewUploader(client *transport.Client, path string, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		client:  client,
		path:    path,
		storage: client.HTTPClient(),
		logger:  hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.logger = u.logger.Named("uploader")
	return u
}

// UploadFiles uploads a batch of files through presigned URLs.
//
// Files reporting a non-positive size are excluded from the batch and listed
// in the result's Skipped field; an entirely empty or entirely excluded
// batch is an error before any network call. Per-file upload failures are
// recorded on the corresponding job and compensated server-side; they do not
// fail the call. The call returns only after every job has settled.
func (u *Uploader) UploadFiles(ctx context.Context, files []FileSource, opts *UploadOptions) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("atrium: no files to upload")
	}

	valid := make([]FileSource, 0, len(files))
	var skipped []string
	for _, f := range files {
		if f.Size() <= 0 {
			u.logger.Warn("skipping file with non-positive size", "name", f.Name(), "size", f.Size())
			skipped = append(skipped, f.Name())
			continue
		}
		valid = append(valid, f)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("atrium: all %d files in the batch are empty", len(files))
	}
	if err := opts.validate(len(valid)); err != nil {
		return nil, fmt.Errorf("atrium: invalid upload options: %w", err)
	}

	data, err := u.createJobs(ctx, valid, opts)
	if err != nil {
		return nil, err
	}

	jobs, sources, err := u.materializeJobs(data.Files, valid)
	if err != nil {
		return nil, err
	}

	u.runJobs(ctx, jobs, sources, opts)

	return &UploadResult{
		Message:      data.Message,
		Jobs:         jobs,
		Skipped:      skipped,
		Instructions: data.Instructions,
	}, nil
}

// createJobs sends the multipart creation request declaring the batch.
func (u *Uploader) createJobs(ctx context.Context, files []FileSource, opts *UploadOptions) (*uploadCreateData, error) {
	form := &transport.MultipartForm{}
	if opts != nil {
		if opts.Path != "" {
			form.AddField("path", opts.Path)
		}
		if len(opts.RelativePaths) > 0 {
			encoded, err := json.Marshal(opts.RelativePaths)
			if err != nil {
				return nil, fmt.Errorf("failed to encode relative paths: %w", err)
			}
			form.AddField("relativePaths", string(encoded))
		}
		if opts.PreserveStructure {
			form.AddField("preserveStructure", strconv.FormatBool(opts.PreserveStructure))
		}
	}

	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	for _, f := range files {
		r, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %q: %w", f.Name(), err)
		}
		closers = append(closers, r)
		form.AddFile("files", f.Name(), f.MimeType(), r)
	}

	env, err := u.client.DoMultipart(ctx, u.path, form)
	if err != nil {
		return nil, fmt.Errorf("atrium: upload %s: %w", u.path, err)
	}
	data, err := decodeCreateData(env.Data)
	if err != nil {
		return nil, fmt.Errorf("atrium: upload %s: %w", u.path, err)
	}
	return data, nil
}

// materializeJobs converts descriptors into pending jobs and pairs each with
// its file source. Descriptors are matched positionally; the server returns
// them in batch order.
func (u *Uploader) materializeJobs(descs []jobDescriptor, files []FileSource) ([]*UploadJob, []FileSource, error) {
	if len(descs) != len(files) {
		return nil, nil, fmt.Errorf("atrium: server returned %d upload descriptors for %d files",
			len(descs), len(files))
	}
	jobs := make([]*UploadJob, 0, len(descs))
	for _, desc := range descs {
		job, err := newJob(desc)
		if err != nil {
			return nil, nil, fmt.Errorf("atrium: upload %s: %w", u.path, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, files, nil
}

// runJobs executes every job's direct upload concurrently and joins on all
// of them, regardless of individual outcomes.
func (u *Uploader) runJobs(ctx context.Context, jobs []*UploadJob, sources []FileSource, opts *UploadOptions) {
	var progress ProgressFunc
	maxConcurrent := 0
	if opts != nil {
		progress = opts.Progress
		maxConcurrent = opts.MaxConcurrent
	}

	var sem chan struct{}
	if maxConcurrent > 0 {
		sem = make(chan struct{}, maxConcurrent)
	}

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(job *UploadJob, source FileSource) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			u.runJob(ctx, job, source, progress)
		}(jobs[i], sources[i])
	}
	wg.Wait()
}

// runJob performs one direct storage upload and persists the job's terminal
// state back to the API.
func (u *Uploader) runJob(ctx context.Context, job *UploadJob, source FileSource, progress ProgressFunc) {
	job.transition(StatusUploading)
	job.StartedAt = time.Now()

	if err := u.putPresigned(ctx, job, source, progress); err != nil {
		u.logger.Error("direct upload failed", "name", job.Name, "job_id", job.ID, "error", err)
		job.fail(err)
		u.compensate(ctx, job, err)
		return
	}

	job.transition(StatusCompleted)
	u.logger.Debug("upload completed", "name", job.Name, "job_id", job.ID)
	u.notifyCompleted(ctx, job)
}

// putPresigned streams the file to the job's presigned URL.
func (u *Uploader) putPresigned(ctx context.Context, job *UploadJob, source FileSource, progress ProgressFunc) error {
	body, err := source.Open()
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", source.Name(), err)
	}
	defer body.Close()

	var reader io.Reader = body
	if progress != nil {
		reader = &progressReader{
			r:     body,
			total: job.Size,
			callback: func(pct float64) {
				progress(job, pct)
			},
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, job.PresignedURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create storage request: %w", err)
	}
	req.ContentLength = job.Size
	if job.MimeType != "" {
		req.Header.Set("Content-Type", job.MimeType)
	}

	resp, err := u.storage.Do(req)
	if err != nil {
		return fmt.Errorf("storage upload failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("storage upload returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// compensate marks the job failed server-side so the backend reverts the
// quota it reserved. A failure here is logged and suppressed: it must not
// mask the original upload failure already recorded on the job.
func (u *Uploader) compensate(ctx context.Context, job *UploadJob, cause error) {
	if job.FailedURL == "" {
		return
	}
	payload := map[string]any{"reason": cause.Error()}
	if _, err := u.client.DoURL(ctx, http.MethodPost, job.FailedURL, payload); err != nil {
		u.logger.Warn("failed to report upload failure", "name", job.Name, "job_id", job.ID, "error", err)
	}
}

// notifyCompleted persists the job's completion back to the API. Best
// effort: the file is already in storage, so a notification failure is
// logged rather than surfaced.
func (u *Uploader) notifyCompleted(ctx context.Context, job *UploadJob) {
	if job.StatusURL == "" {
		return
	}
	payload := map[string]any{"status": string(StatusCompleted)}
	if _, err := u.client.DoURL(ctx, http.MethodPost, job.StatusURL, payload); err != nil {
		u.logger.Warn("failed to report upload completion", "name", job.Name, "job_id", job.ID, "error", err)
	}
}
