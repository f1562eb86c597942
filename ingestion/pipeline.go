package ingestion

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/poiesic/docrag/ai"
	"github.com/poiesic/docrag/chunk"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/extract"
	"github.com/poiesic/docrag/storage"
)

// Pipeline turns a source file into a stored asset.
type Pipeline struct {
	vectors   storage.VectorRepository
	embedder  ai.Embedder
	chunkOpts chunk.Options
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithChunkOptions overrides the window size and overlap used for splitting.
func WithChunkOptions(opts chunk.Options) Option {
	return func(p *Pipeline) error {
		p.chunkOpts = opts
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(vectors storage.VectorRepository, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if vectors == nil {
		return nil, ErrVectorRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	p := &Pipeline{
		vectors:   vectors,
		embedder:  provider.Embedder(),
		chunkOpts: chunk.DefaultOptions(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			return nil, optErr
		}
	}

	return p, nil
}

// IngestFile validates, extracts, chunks, embeds and stores one document.
// Returns the asset id of the stored document.
//
// A file whose name matches an already stored document is rejected with
// core.ErrDuplicateFileName; a document that yields no words is rejected
// with core.ErrEmptyEmbeddingInput. Nothing is persisted on any failure.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (string, error) {
	normalized, fileType, err := core.ValidatePath(path)
	if err != nil {
		return "", err
	}

	meta, err := core.MetaFromFile(normalized, fileType)
	if err != nil {
		return "", err
	}

	exists, err := p.vectors.FileExists(ctx, meta.FileName)
	if err != nil {
		return "", err
	}
	if exists {
		return "", core.ErrDuplicateFileName
	}

	texts, checksum, err := p.splitFile(normalized, fileType)
	if err != nil {
		return "", err
	}
	if len(texts) == 0 {
		return "", core.ErrEmptyEmbeddingInput
	}
	meta.Checksum = checksum

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return "", err
	}

	assetID := uuid.NewString()
	if err := p.vectors.Store(ctx, assetID, embeddings, texts, meta); err != nil {
		return "", err
	}

	p.logger.Info("document ingested",
		"asset_id", assetID,
		"file_name", meta.FileName,
		"chunks", len(texts))

	return assetID, nil
}

// splitFile streams the file's text segments through the splitter and
// returns the resulting windows plus a checksum of the full content.
func (p *Pipeline) splitFile(path string, fileType core.FileType) ([]string, string, error) {
	var (
		texts    []string
		content  strings.Builder
		splitter = chunk.NewSplitter(p.chunkOpts)
	)

	err := extract.Segments(path, fileType, func(segment string) error {
		if content.Len() > 0 {
			content.WriteString("\n")
		}
		content.WriteString(segment)
		texts = append(texts, splitter.Write(segment)...)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	texts = append(texts, splitter.Flush()...)

	return texts, core.ChecksumFromContent(content.String()), nil
}
