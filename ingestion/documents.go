package ingestion

import (
	"context"
	"slices"
	"strings"

	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/storage"
)

// ListDocuments reconstructs per-asset document summaries from the chunk
// store. Documents are sorted by file name; chunks by index.
func ListDocuments(ctx context.Context, vectors storage.VectorRepository) ([]*core.StoredDocument, error) {
	chunks, err := vectors.ListChunks(ctx)
	if err != nil {
		return nil, err
	}

	byAsset := make(map[string]*core.StoredDocument)
	for _, chunk := range chunks {
		doc, ok := byAsset[chunk.AssetID]
		if !ok {
			doc = &core.StoredDocument{
				AssetID:   chunk.AssetID,
				FileName:  chunk.Meta.FileName,
				FileType:  chunk.Meta.FileType,
				FileSize:  chunk.Meta.FileSize,
				CreatedAt: chunk.Meta.CreatedAt,
			}
			byAsset[chunk.AssetID] = doc
		}
		doc.Chunks = append(doc.Chunks, core.ChunkInfo{
			ChunkID:  chunk.ChunkID(),
			ChunkIdx: chunk.Index,
		})
	}

	docs := make([]*core.StoredDocument, 0, len(byAsset))
	for _, doc := range byAsset {
		slices.SortFunc(doc.Chunks, func(a, b core.ChunkInfo) int {
			return a.ChunkIdx - b.ChunkIdx
		})
		docs = append(docs, doc)
	}

	slices.SortFunc(docs, func(a, b *core.StoredDocument) int {
		if c := strings.Compare(a.FileName, b.FileName); c != 0 {
			return c
		}
		return strings.Compare(a.AssetID, b.AssetID)
	})

	return docs, nil
}
