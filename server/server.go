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


package server

import (
	"errors"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/poiesic/docrag/chat"
	"github.com/poiesic/docrag/storage"
	"github.com/poiesic/docrag/tasks"
)

var (
	// ErrRunnerRequired is returned when a task runner is not provided.
	ErrRunnerRequired = errors.New("task runner required")

	// ErrOrchestratorRequired is returned when a chat orchestrator is not provided.
	ErrOrchestratorRequired = errors.New("chat orchestrator required")

	// ErrVectorRepositoryRequired is returned when a vector repository is not provided.
	ErrVectorRepositoryRequired = errors.New("vector repository required")
)

// Server bundles the HTTP handlers over the docrag services.
type Server struct {
	runner       *tasks.Runner
	orchestrator *chat.Orchestrator
	vectors      storage.VectorRepository
	docsDir      string
	logger       *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithDocsDir sets the directory reported by GET /documents/files.
// Empty disables the route's listing (it reports an empty array).
func WithDocsDir(dir string) ServerOption {
	return func(s *Server) {
		s.docsDir = dir
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewServer creates the HTTP server facade.
func NewServer(runner *tasks.Runner, orchestrator *chat.Orchestrator, vectors storage.VectorRepository, opts ...ServerOption) (*Server, error) {
	if runner == nil {
		return nil, ErrRunnerRequired
	}
	if orchestrator == nil {
		return nil, ErrOrchestratorRequired
	}
	if vectors == nil {
		return nil, ErrVectorRepositoryRequired
	}

	s := &Server{
		runner:       runner,
		orchestrator: orchestrator,
		vectors:      vectors,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", s.healthCheck)

	documents := router.Group("/documents")
	{
		documents.POST("/process", s.processDocument)
		documents.POST("/process_folder", s.processFolder)
		documents.GET("/status/:task_id", s.documentStatus)
		documents.GET("/list", s.listDocuments)
		documents.GET("/files", s.listFiles)
	}

	chatRoutes := router.Group("/chat")
	{
		chatRoutes.POST("/start", s.startChat)
		chatRoutes.POST("/message", s.sendMessage)
		chatRoutes.GET("/history", s.chatHistory)
		chatRoutes.GET("/threads", s.listThreads)
	}

	return router
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
