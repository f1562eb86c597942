package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/docrag/ai"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/storage"
)

// defaultTopK is the number of chunks retrieved per message turn.
const defaultTopK = 2

// Orchestrator drives the message turn state machine for chat threads.
type Orchestrator struct {
	threads   storage.ThreadRepository
	history   storage.HistoryRepository
	vectors   storage.VectorRepository
	embedder  ai.Embedder
	generator ai.Generator
	topK      int
	logger    *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator) error

// WithTopK sets how many chunks are retrieved per message.
// Default is 2; values below 1 are clamped to 1.
func WithTopK(k int) OrchestratorOption {
	return func(o *Orchestrator) error {
		if k < 1 {
			k = 1
		}
		o.topK = k
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a chat orchestrator.
func NewOrchestrator(
	threads storage.ThreadRepository,
	history storage.HistoryRepository,
	vectors storage.VectorRepository,
	provider ai.AIProvider,
	opts ...OrchestratorOption,
) (*Orchestrator, error) {
	if threads == nil {
		return nil, ErrThreadRepositoryRequired
	}
	if history == nil {
		return nil, ErrHistoryRepositoryRequired
	}
	if vectors == nil {
		return nil, ErrVectorRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	o := &Orchestrator{
		threads:   threads,
		history:   history,
		vectors:   vectors,
		embedder:  provider.Embedder(),
		generator: provider.Generator(),
		topK:      defaultTopK,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			return nil, optErr
		}
	}

	return o, nil
}

// StartThread creates a new thread bound to an ingested asset.
// Returns core.ErrAssetNotFound for an asset id nothing was stored under.
func (o *Orchestrator) StartThread(ctx context.Context, assetID string) (*core.Thread, error) {
	exists, err := o.vectors.AssetExists(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, core.ErrAssetNotFound
	}
	return o.threads.Create(ctx, assetID)
}

// Send runs one message turn and returns the token channel of the answer.
//
// Validation and lookup failures are returned synchronously before any
// history write. The user message is recorded before retrieval; the agent
// message is recorded only when a streamed answer completes, or for the
// relevance-gate fallback. The returned channel is closed by the producer
// once the answer (or terminal notice) has been fully emitted.
func (o *Orchestrator) Send(ctx context.Context, threadID, message string) (<-chan string, error) {
	if strings.TrimSpace(message) == "" {
		return nil, core.ErrEmptyMessage
	}

	thread, err := o.threads.Get(ctx, threadID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, core.ErrThreadNotFound
		}
		return nil, err
	}

	if err := o.threads.Touch(ctx, threadID); err != nil {
		return nil, err
	}

	userMsg := &core.Message{
		Sender:    core.SenderUser,
		Text:      message,
		Timestamp: time.Now().UTC(),
	}
	if err := o.history.Append(ctx, threadID, userMsg); err != nil {
		return nil, err
	}

	out := make(chan string)
	go o.answer(ctx, thread, message, out)
	return out, nil
}

// History returns the thread's messages in order, touching last_used.
// Returns core.ErrThreadNotFound when the thread has no history.
func (o *Orchestrator) History(ctx context.Context, threadID string) ([]*core.Message, error) {
	messages, err := o.history.Read(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, core.ErrThreadNotFound
	}
	if err := o.threads.Touch(ctx, threadID); err != nil {
		return nil, err
	}
	return messages, nil
}

// Threads lists thread summaries, newest activity first. An empty assetID
// matches every thread.
func (o *Orchestrator) Threads(ctx context.Context, assetID string) ([]*core.Thread, error) {
	return o.threads.List(ctx, assetID)
}

// answer produces the agent's side of one turn. It always closes out.
func (o *Orchestrator) answer(ctx context.Context, thread *core.Thread, message string, out chan<- string) {
	defer close(out)

	contextText, err := o.retrieveContext(ctx, thread.AssetID, message)
	if err != nil {
		o.logger.Error("context retrieval failed", "thread_id", thread.ID, "err", err)
		o.emit(ctx, out, StreamErrorToken)
		return
	}

	if contextText == "" {
		o.emit(ctx, out, NoContextNotice)
		return
	}

	if isMetaQuestion(message) {
		o.emit(ctx, out, CapabilityNotice)
		return
	}

	relevant, err := o.generator.IsRelevant(ctx, contextText, message)
	if err != nil {
		o.logger.Error("relevance gate failed", "thread_id", thread.ID, "err", err)
		o.emit(ctx, out, StreamErrorToken)
		return
	}
	if !relevant {
		o.emit(ctx, out, NotRelevantFallback)
		o.record(thread.ID, NotRelevantFallback)
		return
	}

	var answer strings.Builder
	err = o.generator.StreamAnswer(ctx, contextText, message, func(ctx context.Context, token string) error {
		answer.WriteString(token)
		select {
		case out <- token:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil {
		// Partial answers are never persisted
		o.logger.Error("answer stream failed", "thread_id", thread.ID, "err", err)
		o.emit(ctx, out, StreamErrorToken)
		return
	}

	o.record(thread.ID, answer.String())
}

// retrieveContext embeds the question and joins the asset's best-matching
// chunk texts.
func (o *Orchestrator) retrieveContext(ctx context.Context, assetID, message string) (string, error) {
	vector, err := o.embedder.EmbedText(ctx, message)
	if err != nil {
		return "", err
	}

	results, err := o.vectors.Search(ctx, assetID, vector, o.topK)
	if err != nil {
		return "", err
	}

	texts := make([]string, 0, len(results))
	for _, result := range results {
		if result.Chunk.Text != "" {
			texts = append(texts, result.Chunk.Text)
		}
	}
	return strings.Join(texts, "\n\n"), nil
}

// record appends the agent's answer to the thread's history.
// Uses a background context: the turn already produced output the client
// saw, so persistence should not be lost to consumer cancellation.
func (o *Orchestrator) record(threadID, text string) {
	msg := &core.Message{
		Sender:    core.SenderAgent,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	if err := o.history.Append(context.Background(), threadID, msg); err != nil {
		o.logger.Error("failed to record agent message", "thread_id", threadID, "err", err)
	}
}

// emit pushes one token unless the consumer has gone away.
func (o *Orchestrator) emit(ctx context.Context, out chan<- string, token string) {
	select {
	case out <- token:
	case <-ctx.Done():
	}
}
