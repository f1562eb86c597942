package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/docrag/ai/mock"
	"github.com/poiesic/docrag/chunk"
	"github.com/poiesic/docrag/core"
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

func newTestPipeline(t *testing.T) (*Pipeline, *badger.MemoryRepositories) {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	pipeline, err := NewPipeline(repos.Vectors, mock.NewMockProvider(),
		WithChunkOptions(chunk.Options{Size: 5, Overlap: 2}))
	require.NoError(t, err)
	return pipeline, repos
}

func TestNewPipeline_MissingDependencies(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = NewPipeline(nil, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrVectorRepositoryRequired)

	_, err = NewPipeline(repos.Vectors, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestIngestFile(t *testing.T) {
	pipeline, repos := newTestPipeline(t)
	ctx := context.Background()

	path := writeTestFile(t, "notes.txt", "one two three four five six seven eight nine")

	assetID, err := pipeline.IngestFile(ctx, path)
	require.NoError(t, err)
	require.NotEmpty(t, assetID)

	exists, err := repos.Vectors.AssetExists(ctx, assetID)
	require.NoError(t, err)
	assert.True(t, exists)

	chunks, err := repos.Vectors.ListChunks(ctx)
	require.NoError(t, err)
	// 9 words, size 5, overlap 2: windows at offsets 0, 3, 6
	require.Len(t, chunks, 3)
	assert.Equal(t, "one two three four five", chunks[0].Text)
	assert.Equal(t, "notes.txt", chunks[0].Meta.FileName)
	assert.Equal(t, core.FileTypeTXT, chunks[0].Meta.FileType)
	assert.NotEmpty(t, chunks[0].Meta.Checksum)
}

func TestIngestFile_DuplicateName(t *testing.T) {
	pipeline, _ := newTestPipeline(t)
	ctx := context.Background()

	path := writeTestFile(t, "dup.txt", "some words to store here")
	_, err := pipeline.IngestFile(ctx, path)
	require.NoError(t, err)

	// Same name from a different directory is still a duplicate
	other := writeTestFile(t, "dup.txt", "entirely different words in this one")
	_, err = pipeline.IngestFile(ctx, other)
	assert.ErrorIs(t, err, core.ErrDuplicateFileName)
}

func TestIngestFile_DistinctAssetIDs(t *testing.T) {
	pipeline, _ := newTestPipeline(t)
	ctx := context.Background()

	first, err := pipeline.IngestFile(ctx, writeTestFile(t, "a.txt", "alpha beta gamma"))
	require.NoError(t, err)
	second, err := pipeline.IngestFile(ctx, writeTestFile(t, "b.txt", "delta epsilon zeta"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestIngestFile_EmptyDocument(t *testing.T) {
	pipeline, _ := newTestPipeline(t)

	path := writeTestFile(t, "empty.txt", "   \n\t  \n")
	_, err := pipeline.IngestFile(context.Background(), path)
	assert.ErrorIs(t, err, core.ErrEmptyEmbeddingInput)
}

func TestIngestFile_InvalidPath(t *testing.T) {
	pipeline, _ := newTestPipeline(t)
	ctx := context.Background()

	_, err := pipeline.IngestFile(ctx, "relative/path.txt")
	assert.ErrorIs(t, err, core.ErrInvalidPath)

	_, err = pipeline.IngestFile(ctx, filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestIngestFile_UnsupportedFormat(t *testing.T) {
	pipeline, _ := newTestPipeline(t)

	path := writeTestFile(t, "image.png", "not really a png")
	_, err := pipeline.IngestFile(context.Background(), path)
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
}

func TestListDocuments(t *testing.T) {
	pipeline, repos := newTestPipeline(t)
	ctx := context.Background()

	idB, err := pipeline.IngestFile(ctx, writeTestFile(t, "b.txt", "one two three four five six"))
	require.NoError(t, err)
	idA, err := pipeline.IngestFile(ctx, writeTestFile(t, "a.txt", "alpha beta gamma"))
	require.NoError(t, err)

	docs, err := ListDocuments(ctx, repos.Vectors)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Sorted by file name
	assert.Equal(t, "a.txt", docs[0].FileName)
	assert.Equal(t, idA, docs[0].AssetID)
	assert.Equal(t, "b.txt", docs[1].FileName)
	assert.Equal(t, idB, docs[1].AssetID)

	// 6 words, size 5, overlap 2: windows at offsets 0 and 3
	require.Len(t, docs[1].Chunks, 2)
	assert.Equal(t, core.ChunkID(idB, 0), docs[1].Chunks[0].ChunkID)
	assert.Equal(t, 1, docs[1].Chunks[1].ChunkIdx)
}

func TestListDocuments_Empty(t *testing.T) {
	_, repos := newTestPipeline(t)

	docs, err := ListDocuments(context.Background(), repos.Vectors)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
