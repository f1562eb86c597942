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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/docrag"
	"github.com/poiesic/docrag/ai"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/server"
	"github.com/poiesic/docrag/tasks"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func main() {
	// Optional .env for API tokens and hosts
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "docrag",
		Usage: "Document question answering over local files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Listen address for the HTTP server",
						Value: ":8000",
					},
					&cli.StringFlag{
						Name:  "docs-dir",
						Usage: "Directory reported by GET /documents/files",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to YAML config file (flags override it)",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Ingestion worker pool size (0 = auto)",
					},
				),
			},
			{
				Name:      "ingest",
				Usage:     "Ingest a file or folder synchronously and print asset ids",
				ArgsUsage: "<path>",
				Action:    ingestCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL for embeddings and generation",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "all-minilm",
		},
		&cli.StringFlag{
			Name:  "generator-model",
			Usage: "Generation model name for relevance checks and answers",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token for the AI service",
			EnvVars: []string{"DOCRAG_API_TOKEN", "OPENAI_API_KEY"},
		},
	}
}

// fileConfig is the optional YAML config for the serve command.
type fileConfig struct {
	Listen  string    `yaml:"listen"`
	DocsDir string    `yaml:"docs_dir"`
	AI      ai.Config `yaml:"ai"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{AI: *ai.DefaultConfig()}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// aiConfigFromCLI merges file config and flags; a flag set on the command
// line wins over the file.
func aiConfigFromCLI(c *cli.Context, base ai.Config) (*ai.Config, error) {
	cfg := base
	if c.IsSet("ai-host") || cfg.EmbeddingHost == "" {
		cfg.EmbeddingHost = c.String("ai-host")
		cfg.GeneratorHost = c.String("ai-host")
	}
	if c.IsSet("embedding-model") || cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = c.String("embedding-model")
	}
	if c.IsSet("generator-model") || cfg.GeneratorModel == "" {
		cfg.GeneratorModel = c.String("generator-model")
	}
	if c.IsSet("token") || cfg.Token == "" {
		cfg.Token = c.String("token")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func serveCommand(c *cli.Context) error {
	fileCfg, err := loadFileConfig(c.String("config"))
	if err != nil {
		return err
	}

	aiCfg, err := aiConfigFromCLI(c, fileCfg.AI)
	if err != nil {
		return err
	}

	listen := fileCfg.Listen
	if c.IsSet("listen") || listen == "" {
		listen = c.String("listen")
	}
	docsDir := fileCfg.DocsDir
	if c.IsSet("docs-dir") {
		docsDir = c.String("docs-dir")
	}

	db, err := docrag.NewDatabase(c.String("db"), docrag.WithAIConfig(aiCfg))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return err
	}

	var runnerOpts []tasks.RunnerOption
	if size := c.Int("pool-size"); size > 0 {
		runnerOpts = append(runnerOpts, tasks.WithPoolSize(size))
	}
	runner, err := db.NewTaskRunner(pipeline, runnerOpts...)
	if err != nil {
		return err
	}
	defer runner.Release()

	orchestrator, err := db.NewChatOrchestrator()
	if err != nil {
		return err
	}

	srv, err := server.NewServer(runner, orchestrator, db.VectorRepository(),
		server.WithDocsDir(docsDir))
	if err != nil {
		return err
	}

	slog.Info("starting HTTP server", "listen", listen, "db", c.String("db"))
	return srv.Router().Run(listen)
}

func ingestCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("a file or folder path is required")
	}

	aiCfg, err := aiConfigFromCLI(c, *ai.DefaultConfig())
	if err != nil {
		return err
	}

	db, err := docrag.NewDatabase(c.String("db"), docrag.WithAIConfig(aiCfg))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return err
	}

	ctx := context.Background()
	files := []string{path}
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		files, err = core.ScanFolder(path)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no supported documents found in %s", path)
		}
	}

	for _, file := range files {
		assetID, err := pipeline.IngestFile(ctx, file)
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", file, err)
		}
		fmt.Printf("%s\t%s\n", assetID, file)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
