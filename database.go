// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package docrag

import (
	"log/slog"

	"github.com/poiesic/docrag/ai"
	"github.com/poiesic/docrag/ai/openai"
	"github.com/poiesic/docrag/chat"
	"github.com/poiesic/docrag/ingestion"
	"github.com/poiesic/docrag/storage"
	"github.com/poiesic/docrag/storage/badger"
	"github.com/poiesic/docrag/tasks"
)

// Database owns the shared storage backend, its repositories and the AI
// provider. Services (pipeline, runner, orchestrator) are constructed on
// top of it and injected wherever they are needed.
type Database struct {
	backend     *badger.Backend
	vectorRepo  storage.VectorRepository
	threadRepo  storage.ThreadRepository
	historyRepo storage.HistoryRepository
	taskRepo    storage.TaskRepository
	provider    ai.AIProvider
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithAIProvider injects a pre-built provider instead of constructing the
// OpenAI-compatible one. Used for tests and embedding scenarios.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps all state in memory. Used for tests.
func WithInMemoryStorage() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens the storage backend at filePath and wires the
// repositories and AI provider.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:     backend,
		vectorRepo:  badger.NewVectorRepository(backend),
		threadRepo:  badger.NewThreadRepository(backend),
		historyRepo: badger.NewHistoryRepository(backend),
		taskRepo:    badger.NewTaskRepository(backend),
		provider:    provider,
		logger:      slog.Default(),
	}, nil
}

// Close shuts down the provider, repositories and backend.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	for _, repo := range []interface{ Close() error }{
		db.vectorRepo, db.threadRepo, db.historyRepo, db.taskRepo,
	} {
		if err := repo.Close(); err != nil {
			db.logger.Error("error closing repository", "err", err)
			return err
		}
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) VectorRepository() storage.VectorRepository {
	return db.vectorRepo
}

func (db *Database) ThreadRepository() storage.ThreadRepository {
	return db.threadRepo
}

func (db *Database) HistoryRepository() storage.HistoryRepository {
	return db.historyRepo
}

func (db *Database) TaskRepository() storage.TaskRepository {
	return db.taskRepo
}

// NewIngestionPipeline builds a pipeline over this database's repositories.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.vectorRepo, db.provider, opts...)
}

// NewTaskRunner builds a background runner over an ingestion pipeline.
func (db *Database) NewTaskRunner(pipeline *ingestion.Pipeline, opts ...tasks.RunnerOption) (*tasks.Runner, error) {
	return tasks.NewRunner(db.taskRepo, pipeline, opts...)
}

// NewChatOrchestrator builds a chat orchestrator over this database.
func (db *Database) NewChatOrchestrator(opts ...chat.OrchestratorOption) (*chat.Orchestrator, error) {
	return chat.NewOrchestrator(db.threadRepo, db.historyRepo, db.vectorRepo, db.provider, opts...)
}
