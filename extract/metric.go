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
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/voicetask/docingest/core"
	"github.com/voicetask/docingest/pptx"
)

// UnitCountUnknown is the sentinel returned when a file's size metric
// cannot be determined.
const UnitCountUnknown = -1

// CountUnits returns a type-appropriate size metric for an uploaded file:
// pages for PDFs, slides for slide decks, newline-delimited lines for text
// files. The file's stream position is restored to the start before
// returning, in every path, so the caller can re-read it for extraction.
//
// Any parse or decode failure, and any unsupported extension, is logged
// and reported as UnitCountUnknown; errors never propagate to the caller.
func CountUnits(file *core.UploadedFile) int {
	if file == nil || file.Data == nil {
		slog.Error("cannot count units of file without a stream")
		return UnitCountUnknown
	}

	defer func() {
		if _, err := file.Data.Seek(0, io.SeekStart); err != nil {
			slog.Error("error rewinding file", "file", file.Name, "err", err)
		}
	}()

	switch ext := file.Ext(); ext {
	case "pdf":
		content, err := readAll(file)
		if err != nil {
			slog.Error("error checking file", "file", file.Name, "err", err)
			return UnitCountUnknown
		}
		pages, err := countPDFPages(content)
		if err != nil {
			slog.Error("error checking file", "file", file.Name, "err", err)
			return UnitCountUnknown
		}
		return pages

	case "pptx":
		content, err := readAll(file)
		if err != nil {
			slog.Error("error checking file", "file", file.Name, "err", err)
			return UnitCountUnknown
		}
		deck, err := pptx.OpenDeckBytes(content)
		if err != nil {
			slog.Error("error checking file", "file", file.Name, "err", err)
			return UnitCountUnknown
		}
		return deck.SlideCount()

	case "txt":
		content, err := readAll(file)
		if err != nil {
			slog.Error("error checking file", "file", file.Name, "err", err)
			return UnitCountUnknown
		}
		if !utf8.Valid(content) {
			slog.Error("error checking file", "file", file.Name, "err", ErrInvalidUTF8)
			return UnitCountUnknown
		}
		return countLines(string(content))

	default:
		slog.Error("unsupported file extension", "file", file.Name, "ext", ext)
		return UnitCountUnknown
	}
}

// readAll rewinds the stream and reads it fully.
func readAll(file *core.UploadedFile) ([]byte, error) {
	if _, err := file.Data.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(file.Data)
}

// countPDFPages parses content as a PDF and returns its page count.
// The PDF parser can panic on malformed input, so panics are converted
// to errors here.
func countPDFPages(content []byte) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}

// countLines counts newline-delimited lines the way a text editor would:
// a trailing newline does not start an empty final line, and an empty
// file has zero lines.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Count(text, "\n") + 1
}
