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


package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/voicetask/docingest/core"
	"github.com/voicetask/docingest/docintel"
	"github.com/voicetask/docingest/pptx"
)

// artifactSuffix is appended to a source document's base name to form its
// extraction artifact filename.
const artifactSuffix = "_extracted.txt"

// Result is the per-file outcome of a batch extraction.
type Result struct {
	// Name is the original (unsanitized) file name.
	Name string

	// Path is the written artifact path. Empty unless Err is nil.
	Path string

	// Err is the failure reason. core.ErrUnsupportedFileType marks a
	// skipped file rather than a genuine failure.
	Err error
}

// Paths returns the artifact paths of the successful results, preserving
// their relative order.
func Paths(results []Result) []string {
	paths := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

// Extractor extracts plain text from a batch of uploaded files and writes
// one UTF-8 artifact per successful file. PDFs go through the remote
// document-analysis service; text and slide-deck files are parsed locally.
type Extractor struct {
	analyzer docintel.Analyzer
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor creates an extractor. The analyzer may be nil when the
// document-analysis service is not configured; in that case every Extract
// call logs the configuration error and returns no results, regardless of
// the batch contents.
func NewExtractor(analyzer docintel.Analyzer, opts ...Option) *Extractor {
	e := &Extractor{
		analyzer: analyzer,
		logger:   slog.Default().With("component", "extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes files strictly in input order and writes an artifact
// named "<base>_extracted.txt" into outputDir (created if absent) for each
// file it can extract. Per-file failures are logged and recorded in that
// file's Result; they never stop the batch. Unsupported extensions are
// skipped with a warning. If the output directory cannot be created, every
// result carries the directory error.
//
// The returned slice holds one Result per input file, in input order.
// Use Paths to reduce it to the successfully written artifact paths.
func (e *Extractor) Extract(ctx context.Context, files []*core.UploadedFile, outputDir string) []Result {
	if e.analyzer == nil {
		e.logger.Error("document analysis credentials are missing", "err", ErrAnalyzerNotConfigured)
		return nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		e.logger.Error("error creating output directory", "dir", outputDir, "err", err)
		results := make([]Result, len(files))
		for i, file := range files {
			results[i] = Result{
				Name: file.Name,
				Err:  fmt.Errorf("create output directory: %w", err),
			}
		}
		return results
	}
	e.logger.Info("output directory ready", "dir", outputDir)

	results := make([]Result, 0, len(files))
	for _, file := range files {
		result := Result{Name: file.Name}

		path, err := e.extractOne(ctx, file, outputDir)
		if err != nil {
			if err == core.ErrUnsupportedFileType {
				e.logger.Warn("unsupported file type", "file", file.Name)
			} else {
				e.logger.Error("error processing file", "file", file.Name, "err", err)
			}
			result.Err = err
		} else {
			e.logger.Info("extracted content saved", "file", file.Name, "path", path)
			result.Path = path
		}

		results = append(results, result)
	}

	return results
}

// extractOne dispatches on the sanitized filename's extension, extracts the
// file's text, and writes the artifact.
func (e *Extractor) extractOne(ctx context.Context, file *core.UploadedFile, outputDir string) (string, error) {
	if file.Data == nil {
		return "", core.ErrNilStream
	}

	name := core.SanitizeFilename(file.Name)
	if name == "" {
		return "", core.ErrEmptyFilename
	}

	var text string
	switch core.FileExt(name) {
	case "pdf":
		content, err := readAll(file)
		if err != nil {
			return "", err
		}
		e.logger.Info("processing PDF file", "file", file.Name)
		analysis, err := e.analyzer.Analyze(ctx, content)
		if err != nil {
			return "", err
		}
		text = analysis.Text()

	case "txt":
		content, err := readAll(file)
		if err != nil {
			return "", err
		}
		e.logger.Info("processing TXT file", "file", file.Name)
		if !utf8.Valid(content) {
			return "", ErrInvalidUTF8
		}
		text = string(content)

	case "pptx":
		content, err := readAll(file)
		if err != nil {
			return "", err
		}
		e.logger.Info("processing PPTX file", "file", file.Name)
		deck, err := pptx.OpenDeckBytes(content)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		for _, slide := range deck.Slides() {
			for _, shape := range slide.Shapes {
				b.WriteString(shape)
				b.WriteByte('\n')
			}
		}
		text = b.String()

	default:
		return "", core.ErrUnsupportedFileType
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	path := filepath.Join(outputDir, base+artifactSuffix)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}
