package storage

import (
	"context"

	"github.com/poiesic/docrag/core"
)

// VectorRepository persists document chunks with their embedding vectors and
// metadata, and serves metadata-filtered similarity retrieval.
// Implementations must be thread-safe and support concurrent access.
type VectorRepository interface {
	// Store persists all chunks of one asset in a single transaction.
	// Requires len(embeddings) == len(texts); chunk ids are assigned as
	// "{asset_id}_{i}" with contiguous indices from 0, and meta is attached
	// identically to every chunk.
	Store(ctx context.Context, assetID string, embeddings [][]float32, texts []string, meta core.DocumentMeta) error

	// FileExists reports whether any stored chunk's metadata carries the
	// exact file name. Used to reject duplicate ingestion by name.
	FileExists(ctx context.Context, fileName string) (bool, error)

	// AssetExists reports whether any chunk carries the asset id.
	AssetExists(ctx context.Context, assetID string) (bool, error)

	// Search finds up to k chunks of the given asset ranked by similarity
	// to the query vector. Chunks of other assets are never returned.
	Search(ctx context.Context, assetID string, vector []float32, k int) ([]*core.SearchResult, error)

	// ListChunks returns id/metadata pairs for every stored chunk, for
	// reconstruction by the document-listing reporter. Vectors are omitted.
	ListChunks(ctx context.Context) ([]*core.Chunk, error)

	// Close releases repository resources.
	Close() error
}

// ThreadRepository is the durable registry of chat threads.
type ThreadRepository interface {
	// Create generates a new thread id bound to the asset and persists the
	// record with created_at = last_used = now. Thread ids are never reused.
	Create(ctx context.Context, assetID string) (*core.Thread, error)

	// Get retrieves a thread record.
	// Returns ErrNotFound if the thread doesn't exist.
	Get(ctx context.Context, threadID string) (*core.Thread, error)

	// Touch advances last_used to now if the thread exists.
	// Silent no-op for unknown threads.
	Touch(ctx context.Context, threadID string) error

	// List returns all threads, optionally filtered by asset id (empty
	// string matches all), sorted by last_used descending.
	List(ctx context.Context, assetID string) ([]*core.Thread, error)

	// Close releases repository resources.
	Close() error
}

// HistoryRepository is the append-only per-thread message log.
// Threads are referenced weakly: callers are expected to have resolved the
// thread through ThreadRepository first.
type HistoryRepository interface {
	// Append adds one message to the end of the thread's log.
	Append(ctx context.Context, threadID string, msg *core.Message) error

	// Read returns the thread's messages in insertion order, or an empty
	// slice if the thread has no history.
	Read(ctx context.Context, threadID string) ([]*core.Message, error)

	// Close releases repository resources.
	Close() error
}

// TaskRepository records the state of background ingestion tasks.
type TaskRepository interface {
	// Put inserts or updates a task record.
	Put(ctx context.Context, task *core.Task) error

	// Get retrieves a task record.
	// Returns ErrNotFound if the task doesn't exist.
	Get(ctx context.Context, taskID string) (*core.Task, error)

	// Close releases repository resources.
	Close() error
}
