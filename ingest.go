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


// Package docingest wires the ingestion stages together: batch content
// extraction, text chunking, and an optional embedding pass over the
// resulting chunks. Extraction runs strictly in input order; only the
// embedding pass fans out across a worker pool.
package docingest

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/voicetask/docingest/ai"
	"github.com/voicetask/docingest/chunk"
	"github.com/voicetask/docingest/core"
	"github.com/voicetask/docingest/extract"
)

// Document is the per-source outcome of one ingestion run.
type Document struct {
	// ID is a deterministic identifier derived from the source file name.
	ID core.ID

	// Name is the original uploaded file name.
	Name string

	// ArtifactPath is the extraction artifact on disk. Empty when Err is set.
	ArtifactPath string

	// Chunks are the overlapping segments produced from the artifact text.
	Chunks []string

	// Vectors holds one embedding per chunk when embedding is enabled.
	Vectors [][]float32

	// Err is the extraction or post-processing failure for this document.
	Err error
}

// Report summarizes one ingestion run. Documents appear in input order.
type Report struct {
	Documents []Document
}

// ArtifactPaths returns the artifact paths of successfully extracted
// documents, preserving input order.
func (r *Report) ArtifactPaths() []string {
	paths := make([]string, 0, len(r.Documents))
	for _, doc := range r.Documents {
		if doc.Err == nil {
			paths = append(paths, doc.ArtifactPath)
		}
	}
	return paths
}

// Ingestor orchestrates extraction, chunking, and optional embedding for
// batches of uploaded files.
type Ingestor struct {
	extractor *extract.Extractor
	splitter  *chunk.Splitter
	embedder  ai.Embedder
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor) error

// WithSplitter replaces the default chunk splitter.
func WithSplitter(splitter *chunk.Splitter) Option {
	return func(ing *Ingestor) error {
		if splitter != nil {
			ing.splitter = splitter
		}
		return nil
	}
}

// WithEmbedder enables the embedding pass over extracted chunks.
// Without an embedder, ingestion stops after chunking.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(ing *Ingestor) error {
		ing.embedder = embedder
		return nil
	}
}

// WithPoolSize sets the worker pool size for the embedding pass.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(ing *Ingestor) error {
		if size < 1 {
			size = 1
		}
		if ing.pool != nil {
			ing.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ing.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ing *Ingestor) error {
		if logger == nil {
			logger = slog.Default()
		}
		ing.logger = logger
		return nil
	}
}

// NewIngestor creates an ingestion facade around the given extractor.
func NewIngestor(extractor *extract.Extractor, opts ...Option) (*Ingestor, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ing := &Ingestor{
		extractor: extractor,
		splitter:  chunk.NewSplitter(),
		pool:      pool,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(ing); optErr != nil {
			ing.Release()
			return nil, optErr
		}
	}

	return ing, nil
}

// Ingest extracts the batch into outputDir, chunks every artifact, and,
// when an embedder is configured, embeds the chunks concurrently. The
// returned report has one entry per input file, in input order; per-file
// failures are recorded on their entry and never fail the run.
func (ing *Ingestor) Ingest(ctx context.Context, files []*core.UploadedFile, outputDir string) (*Report, error) {
	results := ing.extractor.Extract(ctx, files, outputDir)

	report := &Report{Documents: make([]Document, len(results))}
	for i, result := range results {
		doc := Document{
			ID:   core.IDFromContent(result.Name),
			Name: result.Name,
			Err:  result.Err,
		}

		if result.Err == nil {
			doc.ArtifactPath = result.Path
			text, err := os.ReadFile(result.Path)
			if err != nil {
				ing.logger.Error("error reading artifact", "path", result.Path, "err", err)
				doc.Err = err
			} else {
				doc.Chunks = ing.splitter.Split(string(text))
			}
		}

		report.Documents[i] = doc
	}

	if ing.embedder != nil {
		ing.embedChunks(ctx, report)
	}

	return report, nil
}

// embedChunks embeds every document's chunks, one pool task per document.
// Results land back in the report by index, so document order is stable
// regardless of completion order.
func (ing *Ingestor) embedChunks(ctx context.Context, report *Report) {
	var wg sync.WaitGroup

	for i := range report.Documents {
		doc := &report.Documents[i]
		if doc.Err != nil || len(doc.Chunks) == 0 {
			continue
		}

		wg.Add(1)
		submitErr := ing.pool.Submit(func() {
			defer wg.Done()

			vectors, err := ing.embedder.EmbedTexts(ctx, doc.Chunks)
			if err != nil {
				ing.logger.Error("error embedding chunks", "document", doc.Name, "err", err)
				doc.Err = err
				return
			}
			doc.Vectors = vectors
		})
		if submitErr != nil {
			wg.Done()
			ing.logger.Error("error submitting embedding task", "document", doc.Name, "err", submitErr)
			doc.Err = submitErr
		}
	}

	wg.Wait()
}

// Release releases the worker pool. The ingestor should not be used after
// calling Release.
func (ing *Ingestor) Release() {
	if ing.pool != nil {
		ing.pool.Release()
	}
}
