package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/storage"
)

// ThreadRepository implements storage.ThreadRepository for BadgerDB.
type ThreadRepository struct {
	backend *Backend
}

var _ storage.ThreadRepository = (*ThreadRepository)(nil)

// NewThreadRepository creates a new ThreadRepository.
func NewThreadRepository(backend *Backend) *ThreadRepository {
	return &ThreadRepository{backend: backend}
}

// Close releases repository resources.
func (r *ThreadRepository) Close() error {
	return nil
}

// Create persists a new thread bound to the asset. Thread ids are random
// UUIDs and are never reused.
func (r *ThreadRepository) Create(ctx context.Context, assetID string) (*core.Thread, error) {
	now := time.Now().UTC()
	thread := &core.Thread{
		ID:        uuid.NewString(),
		AssetID:   assetID,
		CreatedAt: now,
		LastUsed:  now,
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		value, err := storage.MarshalThread(thread)
		if err != nil {
			return err
		}
		if err := tx.Set(makeThreadKey(thread.ID), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return thread, nil
}

// Get retrieves a thread record.
func (r *ThreadRepository) Get(ctx context.Context, threadID string) (*core.Thread, error) {
	var result *core.Thread
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readThread(tx, makeThreadKey(threadID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// Touch advances the thread's last_used timestamp to now.
// Unknown threads are a silent no-op.
func (r *ThreadRepository) Touch(ctx context.Context, threadID string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeThreadKey(threadID)
		thread, err := readThread(tx, key)
		if err != nil {
			return err
		}
		if thread == nil {
			return nil
		}

		thread.LastUsed = time.Now().UTC()
		value, err := storage.MarshalThread(thread)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// List returns threads sorted by last_used descending. An empty assetID
// matches every thread.
func (r *ThreadRepository) List(ctx context.Context, assetID string) ([]*core.Thread, error) {
	var threads []*core.Thread

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeThreadScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var thread *core.Thread
			err := iter.Item().Value(func(val []byte) error {
				var err error
				thread, err = storage.UnmarshalThread(val)
				return err
			})
			if err != nil {
				return err
			}
			if thread == nil {
				continue
			}
			if assetID != "" && thread.AssetID != assetID {
				continue
			}
			threads = append(threads, thread)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	slices.SortFunc(threads, func(a, b *core.Thread) int {
		if a.LastUsed.After(b.LastUsed) {
			return -1
		}
		if a.LastUsed.Before(b.LastUsed) {
			return 1
		}
		return 0
	})

	return threads, nil
}

// readThread reads a thread record from the transaction.
func readThread(tx *badger.Txn, key []byte) (*core.Thread, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var thread *core.Thread
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		thread, unmarshalErr = storage.UnmarshalThread(val)
		return unmarshalErr
	})
	return thread, err
}
