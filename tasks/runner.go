package tasks

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/ingestion"
	"github.com/poiesic/docrag/storage"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 2 * time.Second
)

// Runner executes ingestion jobs on a worker pool and tracks their state
// in a task repository.
type Runner struct {
	tasks       storage.TaskRepository
	pipeline    *ingestion.Pipeline
	pool        *ants.Pool
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) RunnerOption {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithRetryPolicy sets the attempt count and base backoff delay for
// transient ingestion failures.
func WithRetryPolicy(maxAttempts int, baseDelay time.Duration) RunnerOption {
	return func(r *Runner) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		r.maxAttempts = maxAttempts
		r.baseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a new background task runner.
func NewRunner(tasks storage.TaskRepository, pipeline *ingestion.Pipeline, opts ...RunnerOption) (*Runner, error) {
	if tasks == nil {
		return nil, ErrTaskRepositoryRequired
	}
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		tasks:       tasks,
		pipeline:    pipeline,
		pool:        pool,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}

	return r, nil
}

// Submit queues one file for background ingestion and returns the task id.
// The task record is persisted as PENDING before this returns, so the id
// can be polled immediately.
func (r *Runner) Submit(ctx context.Context, filePath string) (string, error) {
	task := &core.Task{
		ID:       uuid.NewString(),
		FilePath: filePath,
		Status:   core.TaskPending,
	}
	if err := r.tasks.Put(ctx, task); err != nil {
		return "", err
	}

	if err := r.pool.Submit(func() {
		r.run(task.ID, filePath)
	}); err != nil {
		task.Status = core.TaskFailure
		task.Error = err.Error()
		if putErr := r.tasks.Put(ctx, task); putErr != nil {
			r.logger.Error("failed to record task submission failure", "task_id", task.ID, "err", putErr)
		}
		return "", err
	}

	return task.ID, nil
}

// SubmitFolder scans root for supported documents and submits each one.
// Returns file path to task id for every submitted file.
func (r *Runner) SubmitFolder(ctx context.Context, root string) (map[string]string, error) {
	files, err := core.ScanFolder(root)
	if err != nil {
		return nil, err
	}

	submitted := make(map[string]string, len(files))
	for _, file := range files {
		taskID, err := r.Submit(ctx, file)
		if err != nil {
			return submitted, err
		}
		submitted[file] = taskID
	}
	return submitted, nil
}

// Status retrieves the task record for a submitted job.
func (r *Runner) Status(ctx context.Context, taskID string) (*core.Task, error) {
	task, err := r.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, core.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// Release shuts down the worker pool.
// The runner should not be used after calling Release.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// run executes one ingestion job, updating the task record as it goes.
func (r *Runner) run(taskID, filePath string) {
	ctx := context.Background()

	task := &core.Task{ID: taskID, FilePath: filePath, Status: core.TaskStarted}
	if err := r.tasks.Put(ctx, task); err != nil {
		r.logger.Error("failed to mark task started", "task_id", taskID, "err", err)
	}

	var assetID string
	err := RetryWithBackoff(ctx, func() error {
		id, ingestErr := r.pipeline.IngestFile(ctx, filePath)
		if ingestErr != nil {
			if isPermanent(ingestErr) {
				return Permanent(ingestErr)
			}
			return ingestErr
		}
		assetID = id
		return nil
	}, r.maxAttempts, r.baseDelay, func(attempt int, attemptErr error) {
		task.Status = core.TaskRetry
		task.Error = attemptErr.Error()
		if putErr := r.tasks.Put(ctx, task); putErr != nil {
			r.logger.Error("failed to mark task retrying", "task_id", taskID, "err", putErr)
		}
	})

	if err != nil {
		task.Status = core.TaskFailure
		task.Error = err.Error()
		r.logger.Error("ingestion task failed", "task_id", taskID, "file_path", filePath, "err", err)
	} else {
		task.Status = core.TaskSuccess
		task.AssetID = assetID
		task.Error = ""
		r.logger.Info("ingestion task completed", "task_id", taskID, "asset_id", assetID)
	}

	if err := r.tasks.Put(ctx, task); err != nil {
		r.logger.Error("failed to record task result", "task_id", taskID, "err", err)
	}
}

// isPermanent reports whether an ingestion error cannot succeed on retry.
func isPermanent(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidPath,
		core.ErrPathTraversal,
		core.ErrNotFound,
		core.ErrNotAFile,
		core.ErrUnsupportedFormat,
		core.ErrExtractionFailed,
		core.ErrDuplicateFileName,
		core.ErrEmptyEmbeddingInput,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
