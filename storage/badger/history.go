package badger

import (
	"bytes"
	"context"
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/storage"
)

// HistoryRepository implements storage.HistoryRepository for BadgerDB.
//
// Messages are stored under per-thread sequence keys. Sequence numbers are
// assigned inside the append transaction, so concurrent appends to the same
// thread serialize through badger's conflict detection.
type HistoryRepository struct {
	backend *Backend
}

var _ storage.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(backend *Backend) *HistoryRepository {
	return &HistoryRepository{backend: backend}
}

// Close releases repository resources.
func (r *HistoryRepository) Close() error {
	return nil
}

// Append adds one message to the end of the thread's log.
func (r *HistoryRepository) Append(ctx context.Context, threadID string, msg *core.Message) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		seq := nextHistorySeq(tx, threadID)

		value, err := storage.MarshalMessage(msg)
		if err != nil {
			return err
		}
		if err := tx.Set(makeHistoryKey(threadID, seq), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Read returns the thread's messages in insertion order.
func (r *HistoryRepository) Read(ctx context.Context, threadID string) ([]*core.Message, error) {
	var messages []*core.Message

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeHistoryPrefix(threadID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var msg *core.Message
			err := iter.Item().Value(func(val []byte) error {
				var err error
				msg, err = storage.UnmarshalMessage(val)
				return err
			})
			if err != nil {
				return err
			}
			if msg != nil {
				messages = append(messages, msg)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	return messages, nil
}

// nextHistorySeq finds the sequence number following the thread's newest
// message, or 0 for an empty log. Keys sort by BigEndian sequence, so the
// newest message is the first hit of a reverse scan from past the prefix.
func nextHistorySeq(tx *badger.Txn, threadID string) uint64 {
	prefix := makeHistoryPrefix(threadID)

	opts := badger.DefaultIteratorOptions
	opts.Reverse = true
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	seekKey := makeHistoryKey(threadID, ^uint64(0))
	iter.Seek(seekKey)
	if !iter.Valid() {
		return 0
	}

	key := iter.Item().Key()
	if !bytes.HasPrefix(key, prefix) || len(key) != len(prefix)+8 {
		return 0
	}
	return binary.BigEndian.Uint64(key[len(prefix):]) + 1
}
