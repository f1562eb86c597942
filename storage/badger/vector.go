package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/storage"
)

// VectorRepository implements storage.VectorRepository for BadgerDB.
//
// Similarity search is a brute-force scan over the asset's chunk records.
// Embedding models in use here emit normalized vectors, so the dot product
// is the cosine similarity.
type VectorRepository struct {
	backend *Backend
}

var _ storage.VectorRepository = (*VectorRepository)(nil)

// NewVectorRepository creates a new VectorRepository.
func NewVectorRepository(backend *Backend) *VectorRepository {
	return &VectorRepository{backend: backend}
}

// Close releases repository resources.
func (r *VectorRepository) Close() error {
	return nil
}

// Store persists all chunks of one asset in a single transaction.
// Chunk indices are assigned contiguously from 0 in slice order.
func (r *VectorRepository) Store(ctx context.Context, assetID string, embeddings [][]float32, texts []string, meta core.DocumentMeta) error {
	if len(embeddings) != len(texts) {
		return storage.ErrLengthMismatch
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for i := range texts {
			chunk := &core.Chunk{
				AssetID: assetID,
				Index:   i,
				Text:    texts[i],
				Vector:  embeddings[i],
				Meta:    meta,
			}
			value, err := storage.MarshalChunk(chunk)
			if err != nil {
				return err
			}
			if err := tx.Set(makeChunkKey(assetID, i), value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// FileExists reports whether any stored chunk's metadata carries fileName.
func (r *VectorRepository) FileExists(ctx context.Context, fileName string) (bool, error) {
	var found bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk != nil && chunk.Meta.FileName == fileName {
				found = true
				return nil
			}
		}
		return nil
	}, false)

	return found, err
}

// AssetExists reports whether any chunk carries the asset id.
func (r *VectorRepository) AssetExists(ctx context.Context, assetID string) (bool, error) {
	var found bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeAssetPrefix(assetID)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		iter.Rewind()
		found = iter.Valid()
		return nil
	}, false)

	return found, err
}

// Search finds up to k chunks of the asset ranked by similarity to vector.
func (r *VectorRepository) Search(ctx context.Context, assetID string, vector []float32, k int) ([]*core.SearchResult, error) {
	var results []*core.SearchResult

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeAssetPrefix(assetID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk == nil || len(chunk.Vector) == 0 {
				continue
			}

			results = append(results, &core.SearchResult{
				Chunk: chunk,
				Score: dotProduct(vector, chunk.Vector),
			})
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > k {
		results = results[:k]
	}

	return results, nil
}

// ListChunks returns every stored chunk with its vector omitted.
func (r *VectorRepository) ListChunks(ctx context.Context) ([]*core.Chunk, error) {
	var chunks []*core.Chunk

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk == nil {
				continue
			}
			chunk.Vector = nil
			chunks = append(chunks, chunk)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	return chunks, nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
