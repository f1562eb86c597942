package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/storage"
)

// TaskRepository implements storage.TaskRepository for BadgerDB.
type TaskRepository struct {
	backend *Backend
}

var _ storage.TaskRepository = (*TaskRepository)(nil)

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(backend *Backend) *TaskRepository {
	return &TaskRepository{backend: backend}
}

// Close releases repository resources.
func (r *TaskRepository) Close() error {
	return nil
}

// Put inserts or updates a task record, stamping UpdatedAt.
func (r *TaskRepository) Put(ctx context.Context, task *core.Task) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		task.UpdatedAt = time.Now().UTC()
		value, err := storage.MarshalTask(task)
		if err != nil {
			return err
		}
		if err := tx.Set(makeTaskKey(task.ID), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Get retrieves a task record.
func (r *TaskRepository) Get(ctx context.Context, taskID string) (*core.Task, error) {
	var result *core.Task
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeTaskKey(taskID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalTask(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}
