package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/docrag/ai"
	"github.com/poiesic/docrag/ai/mock"
	"github.com/poiesic/docrag/chunk"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/ingestion"
	"github.com/poiesic/docrag/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestRunner(t *testing.T, provider ai.AIProvider) (*Runner, *badger.MemoryRepositories) {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	pipeline, err := ingestion.NewPipeline(repos.Vectors, provider,
		ingestion.WithChunkOptions(chunk.Options{Size: 5, Overlap: 2}))
	require.NoError(t, err)

	runner, err := NewRunner(repos.Tasks, pipeline,
		WithPoolSize(1),
		WithRetryPolicy(3, 5*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(runner.Release)
	return runner, repos
}

func waitForTerminal(t *testing.T, runner *Runner, taskID string) *core.Task {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		task, err := runner.Status(context.Background(), taskID)
		require.NoError(t, err)
		if task.Status == core.TaskSuccess || task.Status == core.TaskFailure {
			return task
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("task did not reach a terminal status")
	return nil
}

func TestRunnerSubmit_Success(t *testing.T) {
	runner, repos := newTestRunner(t, mock.NewMockProvider())
	ctx := context.Background()

	path := writeTestFile(t, "doc.txt", "one two three four five six seven")
	taskID, err := runner.Submit(ctx, path)
	require.NoError(t, err)
	require.NotEmpty(t, taskID)

	task := waitForTerminal(t, runner, taskID)
	assert.Equal(t, core.TaskSuccess, task.Status)
	assert.NotEmpty(t, task.AssetID)
	assert.Empty(t, task.Error)

	exists, err := repos.Vectors.AssetExists(ctx, task.AssetID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRunnerSubmit_PermanentFailureSkipsRetry(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	runner, _ := newTestRunner(t, mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator()))

	// Unsupported extension fails validation; one attempt, no retries
	path := writeTestFile(t, "doc.png", "binary-ish")
	taskID, err := runner.Submit(context.Background(), path)
	require.NoError(t, err)

	task := waitForTerminal(t, runner, taskID)
	assert.Equal(t, core.TaskFailure, task.Status)
	assert.Contains(t, task.Error, core.ErrUnsupportedFormat.Error())
	assert.Equal(t, 0, embedder.CallCount())
}

func TestRunnerSubmit_TransientFailureRetries(t *testing.T) {
	embedder := mock.NewMockEmbedder()

	attempts := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("embedding host unavailable")
		}
		out := make([][]float32, len(texts))
		for i := range out {
			out[i] = []float32{1, 0, 0}
		}
		return out, nil
	}

	runner, _ := newTestRunner(t, mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator()))
	path := writeTestFile(t, "doc.txt", "one two three four five")
	taskID, err := runner.Submit(context.Background(), path)
	require.NoError(t, err)

	task := waitForTerminal(t, runner, taskID)
	assert.Equal(t, core.TaskSuccess, task.Status)
	assert.Equal(t, 3, attempts)
}

func TestRunnerSubmit_ExhaustedRetriesFail(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding host unavailable")
	}

	runner, _ := newTestRunner(t, mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator()))
	path := writeTestFile(t, "doc.txt", "one two three")
	taskID, err := runner.Submit(context.Background(), path)
	require.NoError(t, err)

	task := waitForTerminal(t, runner, taskID)
	assert.Equal(t, core.TaskFailure, task.Status)
	assert.Contains(t, task.Error, "embedding host unavailable")
}

func TestRunnerStatus_Unknown(t *testing.T) {
	runner, _ := newTestRunner(t, mock.NewMockProvider())

	_, err := runner.Status(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrTaskNotFound)
}

func TestRunnerSubmitFolder(t *testing.T) {
	runner, _ := newTestRunner(t, mock.NewMockProvider())
	ctx := context.Background()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha beta gamma"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("delta epsilon zeta"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.bin"), []byte("ignored"), 0644))

	submitted, err := runner.SubmitFolder(ctx, dir)
	require.NoError(t, err)
	require.Len(t, submitted, 2)

	for _, taskID := range submitted {
		task := waitForTerminal(t, runner, taskID)
		assert.Equal(t, core.TaskSuccess, task.Status)
	}
}

func TestRetryWithBackoff_InvalidAttempts(t *testing.T) {
	err := RetryWithBackoff(context.Background(), func() error { return nil }, 0, time.Millisecond, nil)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestRetryWithBackoff_PermanentStops(t *testing.T) {
	sentinel := errors.New("bad input")
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return Permanent(sentinel)
	}, 5, time.Millisecond, nil)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_OnRetryCalled(t *testing.T) {
	retries := 0
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, 5, time.Millisecond, func(attempt int, err error) {
		retries++
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, retries)
}
