// Copyright 2025 Voicetask Labs
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
	"github.com/urfave/cli/v2"

	"github.com/voicetask/docingest"
	"github.com/voicetask/docingest/ai"
	"github.com/voicetask/docingest/ai/openai"
	"github.com/voicetask/docingest/chunk"
	"github.com/voicetask/docingest/core"
	"github.com/voicetask/docingest/docintel"
	"github.com/voicetask/docingest/extract"
)

func main() {
	app := &cli.App{
		Name:  "docingest",
		Usage: "Document ingestion pipeline for retrieval-augmented chat",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to an env file with service credentials",
				Value: ".env",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Extract, chunk, and optionally embed a batch of documents",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Directory for extraction artifacts",
						Value:   "extracted",
					},
					&cli.StringFlag{
						Name:    "di-endpoint",
						Usage:   "Document analysis service endpoint",
						EnvVars: []string{"DOCUMENT_INTELLIGENCE_ENDPOINT"},
					},
					&cli.StringFlag{
						Name:    "di-key",
						Usage:   "Document analysis subscription key",
						EnvVars: []string{"DOCUMENT_INTELLIGENCE_SUBSCRIPTION_KEY"},
					},
					&cli.BoolFlag{
						Name:  "embed",
						Usage: "Embed chunks after extraction",
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "AI provider API key (required with --embed)",
						EnvVars: []string{"API_KEY"},
					},
					&cli.StringFlag{
						Name:    "endpoint",
						Usage:   "AI provider resource endpoint (required with --embed)",
						EnvVars: []string{"ENDPOINT"},
					},
					&cli.StringFlag{
						Name:    "api-version",
						Usage:   "AI provider API version",
						Value:   "2023-05-15",
						EnvVars: []string{"OPENAI_API_VERSION"},
					},
					&cli.StringFlag{
						Name:  "embedding-deployment",
						Usage: "Embedding model deployment identifier",
						Value: "text-embedding-ada-002",
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Maximum chunk length in bytes",
						Value: chunk.DefaultChunkSize,
					},
					&cli.IntFlag{
						Name:  "chunk-overlap",
						Usage: "Bytes carried over between adjacent chunks",
						Value: chunk.DefaultChunkOverlap,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for the embedding pass",
					},
				},
			},
			{
				Name:      "count",
				Usage:     "Report content units (pages, slides, or lines) per file",
				ArgsUsage: "FILE [FILE...]",
				Action:    countCommand,
			},
			{
				Name:      "chunk",
				Usage:     "Split a text file into overlapping chunks",
				ArgsUsage: "FILE",
				Action:    chunkCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Maximum chunk length in bytes",
						Value: chunk.DefaultChunkSize,
					},
					&cli.IntFlag{
						Name:  "chunk-overlap",
						Usage: "Bytes carried over between adjacent chunks",
						Value: chunk.DefaultChunkOverlap,
					},
				},
			},
			{
				Name:      "condense",
				Usage:     "Rewrite a follow-up question as a standalone question",
				ArgsUsage: "QUESTION",
				Action:    condenseCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "history-file",
						Usage: "File holding the conversation history",
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "AI provider API key",
						EnvVars: []string{"API_KEY"},
					},
					&cli.StringFlag{
						Name:    "endpoint",
						Usage:   "AI provider resource endpoint",
						EnvVars: []string{"ENDPOINT"},
					},
					&cli.StringFlag{
						Name:    "api-version",
						Usage:   "AI provider API version",
						Value:   "2023-05-15",
						EnvVars: []string{"OPENAI_API_VERSION"},
					},
					&cli.StringFlag{
						Name:  "chat-deployment",
						Usage: "Chat model deployment identifier",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	// Build the remote analysis client
	diConfig := docintel.NewConfig(
		docintel.WithEndpoint(c.String("di-endpoint")),
		docintel.WithKey(c.String("di-key")),
	)
	if err := diConfig.Validate(); err != nil {
		return fmt.Errorf("invalid document analysis configuration: %w", err)
	}

	analyzer, err := docintel.NewClient(diConfig)
	if err != nil {
		return fmt.Errorf("failed to create analysis client: %w", err)
	}

	extractor := extract.NewExtractor(analyzer)

	opts := []docingest.Option{
		docingest.WithSplitter(chunk.NewSplitter(
			chunk.WithChunkSize(c.Int("chunk-size")),
			chunk.WithChunkOverlap(c.Int("chunk-overlap")),
		)),
	}
	if c.Int("pool-size") > 0 {
		opts = append(opts, docingest.WithPoolSize(c.Int("pool-size")))
	}

	if c.Bool("embed") {
		aiConfig := ai.NewConfig(
			ai.WithAPIKey(c.String("api-key")),
			ai.WithEndpoint(c.String("endpoint")),
			ai.WithAPIVersion(c.String("api-version")),
			ai.WithEmbeddingDeployment(c.String("embedding-deployment")),
		)
		if err := aiConfig.Validate(); err != nil {
			return fmt.Errorf("invalid AI configuration: %w", err)
		}

		embedder, err := openai.NewEmbedder(aiConfig)
		if err != nil {
			return fmt.Errorf("failed to create embedder: %w", err)
		}
		opts = append(opts, docingest.WithEmbedder(embedder))
	}

	ingestor, err := docingest.NewIngestor(extractor, opts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestor: %w", err)
	}
	defer ingestor.Release()

	files, closeFiles, err := openUploads(c.Args().Slice())
	if err != nil {
		return err
	}
	defer closeFiles()

	// Reject unsupported uploads before any work happens.
	accepted := files[:0]
	for _, file := range files {
		if !core.IsAllowed(file.Name) {
			fmt.Printf("%s: unsupported file type, skipped\n", file.Name)
			continue
		}
		accepted = append(accepted, file)
	}

	report, err := ingestor.Ingest(ctx, accepted, c.String("out"))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	for _, doc := range report.Documents {
		if doc.Err != nil {
			fmt.Printf("%s: FAILED (%v)\n", doc.Name, doc.Err)
			continue
		}
		if c.Bool("embed") {
			fmt.Printf("%s: %s (%d chunks, %d vectors)\n", doc.Name, doc.ArtifactPath, len(doc.Chunks), len(doc.Vectors))
		} else {
			fmt.Printf("%s: %s (%d chunks)\n", doc.Name, doc.ArtifactPath, len(doc.Chunks))
		}
	}

	return nil
}

func countCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	files, closeFiles, err := openUploads(c.Args().Slice())
	if err != nil {
		return err
	}
	defer closeFiles()

	for _, file := range files {
		count := extract.CountUnits(file)
		if count == extract.UnitCountUnknown {
			fmt.Printf("%s: unknown\n", file.Name)
			continue
		}
		fmt.Printf("%s: %d\n", file.Name, count)
	}

	return nil
}

func chunkCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one input file is required")
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	splitter := chunk.NewSplitter(
		chunk.WithChunkSize(c.Int("chunk-size")),
		chunk.WithChunkOverlap(c.Int("chunk-overlap")),
	)

	for i, piece := range splitter.Split(string(data)) {
		fmt.Printf("--- chunk %d (%d bytes)\n%s\n", i+1, len(piece), piece)
	}

	return nil
}

func condenseCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("exactly one question argument is required")
	}
	question := c.Args().First()

	var history string
	if path := c.String("history-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		history = string(data)
	}

	aiConfig := ai.NewConfig(
		ai.WithAPIKey(c.String("api-key")),
		ai.WithEndpoint(c.String("endpoint")),
		ai.WithAPIVersion(c.String("api-version")),
		ai.WithChatDeployment(c.String("chat-deployment")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	condenser, err := openai.NewCondenser(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create condenser: %w", err)
	}

	standalone, err := condenser.Condense(ctx, history, question)
	if err != nil {
		return fmt.Errorf("condensation failed: %w", err)
	}

	fmt.Println(standalone)
	return nil
}

// openUploads opens every path for reading and wraps each file as an upload.
// The returned cleanup closes all opened files.
func openUploads(paths []string) ([]*core.UploadedFile, func(), error) {
	files := make([]*core.UploadedFile, 0, len(paths))
	handles := make([]*os.File, 0, len(paths))

	closeAll := func() {
		for _, h := range handles {
			h.Close()
		}
	}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		handles = append(handles, f)
		files = append(files, &core.UploadedFile{
			Name: f.Name(),
			Data: f,
		})
	}

	return files, closeAll, nil
}

func setup(c *cli.Context) error {
	// Load credentials from the env file when present. Flags and real
	// environment variables take precedence over file values.
	if err := godotenv.Load(c.String("env-file")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
